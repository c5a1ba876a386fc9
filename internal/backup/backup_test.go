package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"howett.net/plist"

	"github.com/xleven/wxminer/internal/errors"
)

const testUDID = "00008030-000A1B2C3D4E5F6G"

// makeDevice 在 root 下构造一个最小设备备份
func makeDevice(t *testing.T, root, udid string, encrypted bool, files map[string]string) string {
	t.Helper()
	device := filepath.Join(root, udid)
	if err := os.MkdirAll(device, 0o755); err != nil {
		t.Fatal(err)
	}

	manifest, err := plist.Marshal(map[string]interface{}{
		"IsEncrypted": encrypted,
		"Lockdown": map[string]interface{}{
			"DeviceName":     "test iPhone",
			"ProductType":    "iPhone12,1",
			"ProductVersion": "15.0",
			"UniqueDeviceID": udid,
		},
	}, plist.BinaryFormat)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(device, "Manifest.plist"), manifest, 0o644); err != nil {
		t.Fatal(err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(device, "Manifest.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if _, err := db.Exec(`CREATE TABLE Files (
		fileID TEXT PRIMARY KEY,
		domain TEXT,
		relativePath TEXT,
		flags INTEGER,
		file BLOB
	)`); err != nil {
		t.Fatal(err)
	}

	// fileID 不必是真实 sha1，仅作磁盘定位
	i := 0
	for rel, content := range files {
		fileID := "aa0000000000000000000000000000000000000" + string(rune('0'+i))
		i++
		if _, err := db.Exec(
			`INSERT INTO Files (fileID, domain, relativePath, flags) VALUES (?, ?, ?, 1)`,
			fileID, AppDomain, rel,
		); err != nil {
			t.Fatal(err)
		}
		dir := filepath.Join(device, fileID[:2])
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, fileID), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	// 其他域的文件不应入索引
	if _, err := db.Exec(
		`INSERT INTO Files (fileID, domain, relativePath, flags) VALUES (?, ?, ?, 1)`,
		"bb00000000000000000000000000000000000000", "AppDomain-com.other.app", "Documents/other.txt",
	); err != nil {
		t.Fatal(err)
	}

	return device
}

func TestNew(t *testing.T) {
	root := t.TempDir()
	makeDevice(t, root, testUDID, false, map[string]string{
		"Documents/MMappedKV/mmsetting.archive.user_0001": "blob",
		"Documents/abc/DB/WCDB_Contact.sqlite":            "db",
	})

	b, err := New(root, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Info == nil || b.Info.DeviceName != "test iPhone" {
		t.Errorf("unexpected info: %+v", b.Info)
	}

	files := b.Files()
	if len(files) != 2 {
		t.Fatalf("expected 2 indexed files, got %v", files)
	}
	if !b.Exists("Documents/abc/DB/WCDB_Contact.sqlite") {
		t.Error("expected contact db indexed")
	}
	if b.Exists("Documents/other.txt") {
		t.Error("expected other domain excluded")
	}

	data, err := b.ReadFile("Documents/MMappedKV/mmsetting.archive.user_0001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "blob" {
		t.Errorf("unexpected content: %q", data)
	}
}

func TestNewDeviceDirDirectly(t *testing.T) {
	root := t.TempDir()
	device := makeDevice(t, root, testUDID, false, map[string]string{"Documents/a": "x"})

	b, err := New(device, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !b.Exists("Documents/a") {
		t.Error("expected file indexed when opening device dir directly")
	}
}

func TestNewEncrypted(t *testing.T) {
	root := t.TempDir()
	makeDevice(t, root, testUDID, true, nil)

	_, err := New(root, "")
	if err == nil {
		t.Fatal("expected error for encrypted backup")
	}
	if !errors.Is(err, errors.ErrTypeBackup) {
		t.Errorf("expected backup error, got %v", err)
	}
}

func TestNewUDIDSelection(t *testing.T) {
	root := t.TempDir()
	makeDevice(t, root, "aaaa", false, map[string]string{"Documents/a": "1"})
	makeDevice(t, root, "bbbb", false, map[string]string{"Documents/b": "2"})

	b, err := New(root, "bbbb")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !b.Exists("Documents/b") {
		t.Error("expected second device selected")
	}

	if _, err := New(root, "cccc"); err == nil {
		t.Fatal("expected error for unknown udid")
	}

	// 未指定 udid 时取字典序第一个
	b, err = New(root, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !b.Exists("Documents/a") {
		t.Error("expected first device by sort order")
	}
}

func TestNewMissing(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "nope"), ""); err == nil {
		t.Fatal("expected error for missing path")
	}
	if _, err := New(t.TempDir(), ""); err == nil {
		t.Fatal("expected error for empty root")
	}
}
