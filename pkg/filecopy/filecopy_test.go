package filecopy

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGetTempCopy(t *testing.T) {
	src := filepath.Join(t.TempDir(), "data.sqlite")
	if err := os.WriteFile(src, []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}

	first, err := GetTempCopy("filecopy-test", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(first)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "v1" {
		t.Errorf("unexpected copy content: %q", data)
	}

	// 源未变化时复用同一份拷贝
	second, err := GetTempCopy("filecopy-test", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second != first {
		t.Errorf("expected cached copy, got %s and %s", first, second)
	}

	// 源变化后内容刷新
	time.Sleep(10 * time.Millisecond)
	if err := os.WriteFile(src, []byte("v2-longer"), 0o644); err != nil {
		t.Fatal(err)
	}
	third, err := GetTempCopy("filecopy-test", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err = os.ReadFile(third)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "v2-longer" {
		t.Errorf("expected refreshed content, got %q", data)
	}
}

func TestGetTempCopyMissing(t *testing.T) {
	if _, err := GetTempCopy("filecopy-test", filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing source")
	}
}
