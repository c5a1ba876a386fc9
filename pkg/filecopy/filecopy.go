package filecopy

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash"
)

// 被系统占用的 sqlite 文件无法直接打开，退而读取临时拷贝
// 拷贝以源路径哈希命名，源文件未变化时直接复用

var (
	mutex  sync.Mutex
	copies = make(map[string]copyInfo)
)

type copyInfo struct {
	tempPath string
	modTime  int64
	size     int64
}

// GetTempCopy 返回 path 的最新临时拷贝路径
// id 用于隔离不同调用方的临时目录
func GetTempCopy(id, path string) (string, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return "", err
	}

	mutex.Lock()
	defer mutex.Unlock()

	if info, ok := copies[path]; ok {
		if info.modTime == stat.ModTime().UnixNano() && info.size == stat.Size() {
			return info.tempPath, nil
		}
	}

	dir := filepath.Join(os.TempDir(), id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%x%s", xxhash.Sum64String(path), filepath.Ext(path))
	tempPath := filepath.Join(dir, name)

	if err := copyFile(path, tempPath); err != nil {
		return "", err
	}

	copies[path] = copyInfo{
		tempPath: tempPath,
		modTime:  stat.ModTime().UnixNano(),
		size:     stat.Size(),
	}
	return tempPath, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.CreateTemp(filepath.Dir(dst), ".copy-*")
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(out.Name())
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(out.Name())
		return err
	}
	return os.Rename(out.Name(), dst)
}
