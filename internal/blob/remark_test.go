package blob

import (
	"testing"

	"github.com/xleven/wxminer/internal/errors"
)

func TestDecodeRemark(t *testing.T) {
	buf := []byte{
		10, 3, 'T', 'o', 'm',
		26, 5, 'w', 'x', '1', '2', '3',
	}
	fields, err := DecodeRemark(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fields["nickname"] != "Tom" {
		t.Errorf("expected nickname Tom, got %q", fields["nickname"])
	}
	if fields["alias"] != "wx123" {
		t.Errorf("expected alias wx123, got %q", fields["alias"])
	}
}

func TestDecodeRemarkEmpty(t *testing.T) {
	fields, err := DecodeRemark(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fields) != 0 {
		t.Errorf("expected empty fields, got %v", fields)
	}
}

func TestDecodeRemarkUnknownTag(t *testing.T) {
	buf := []byte{99, 2, 'h', 'i'}
	fields, err := DecodeRemark(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fields["99"] != "hi" {
		t.Errorf("expected unknown tag under key 99, got %v", fields)
	}
}

func TestDecodeRemarkTruncated(t *testing.T) {
	// length 声明 5 字节但只剩 2 字节
	buf := []byte{10, 5, 'a', 'b'}
	_, err := DecodeRemark(buf)
	if err == nil {
		t.Fatal("expected error for truncated blob")
	}
	if !errors.Is(err, errors.ErrTypeDecode) {
		t.Errorf("expected decode error, got %v", err)
	}

	// 只有 tag 没有 length
	if _, err := DecodeRemark([]byte{10}); err == nil {
		t.Fatal("expected error for missing length byte")
	}
}

func TestDecodeRemarkZeroLength(t *testing.T) {
	fields, err := DecodeRemark([]byte{10, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := fields["nickname"]; !ok || v != "" {
		t.Errorf("expected empty nickname present, got %v", fields)
	}
}

func TestRemarkRoundTrip(t *testing.T) {
	fields := map[string]string{
		"nickname": "测试昵称",
		"alias":    "alias_01",
		"tag":      "work",
		"99":       "unknown",
	}
	decoded, err := DecodeRemark(EncodeRemark(fields))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(decoded) != len(fields) {
		t.Fatalf("expected %d fields, got %d", len(fields), len(decoded))
	}
	for k, v := range fields {
		if decoded[k] != v {
			t.Errorf("field %s: expected %q, got %q", k, v, decoded[k])
		}
	}
}
