package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/xleven/wxminer/internal/errors"
)

const (
	// AppDomain 微信在 iTunes 备份中的域名
	AppDomain = "AppDomain-com.tencent.xin"

	manifestDBFile    = "Manifest.db"
	manifestPlistFile = "Manifest.plist"
	infoPlistFile     = "Info.plist"
)

// Backup 一份已解密的 iTunes 备份中单个设备的文件索引
// 只索引微信域下的文件，relativePath -> 磁盘绝对路径
type Backup struct {
	Path string // 设备备份目录
	Info *Info  // 设备元信息

	files map[string]string
}

// New 打开备份目录并建立微信文件索引
// path 为备份根目录或设备目录均可，udid 在多设备时指定
func New(path, udid string) (*Backup, error) {
	device, err := selectDevice(path, udid)
	if err != nil {
		return nil, err
	}

	b := &Backup{Path: device}
	if err := b.loadManifestPlist(); err != nil {
		return nil, err
	}
	b.loadInfoPlist()
	if err := b.loadFiles(); err != nil {
		return nil, err
	}

	log.Debug().Str("device", device).Int("files", len(b.files)).Msg("backup indexed")
	return b, nil
}

// selectDevice 定位设备目录：目录本身含 Manifest.db 则直接使用，
// 否则在子目录中挑选。多设备时优先匹配 udid，否则取字典序第一个
func selectDevice(path, udid string) (string, error) {
	if path == "" {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); err != nil {
		return "", errors.BackupNotFound(path)
	}
	if isDeviceDir(path) {
		return path, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return "", errors.BackupNotFound(path)
	}
	devices := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(path, e.Name())
		if isDeviceDir(dir) {
			devices = append(devices, dir)
		}
	}
	sort.Strings(devices)

	if len(devices) == 0 {
		return "", errors.BackupNotFound(path)
	}
	if udid != "" {
		want := filepath.Join(path, udid)
		for _, d := range devices {
			if d == want {
				return d, nil
			}
		}
		return "", errors.DeviceNotFound(udid)
	}
	if len(devices) > 1 {
		log.Warn().Msgf("multiple devices found, using %s", filepath.Base(devices[0]))
	}
	return devices[0], nil
}

func isDeviceDir(path string) bool {
	_, err := os.Stat(filepath.Join(path, manifestDBFile))
	return err == nil
}

// loadFiles 读取 Manifest.db 的 Files 表建立索引
// fileID 在磁盘上为两级哈希布局，旧备份为平铺布局
func (b *Backup) loadFiles() error {
	dbPath := filepath.Join(b.Path, manifestDBFile)
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return errors.DBConnectFailed(dbPath, err)
	}
	defer db.Close()

	query := `SELECT fileID, relativePath FROM Files WHERE domain = ? AND flags = 1`
	rows, err := db.Query(query, AppDomain)
	if err != nil {
		return errors.QueryFailed(query, err)
	}
	defer rows.Close()

	b.files = make(map[string]string)
	for rows.Next() {
		var fileID, relativePath string
		if err := rows.Scan(&fileID, &relativePath); err != nil {
			log.Warn().Err(err).Msg("skip unreadable manifest row")
			continue
		}
		if len(fileID) < 2 || relativePath == "" {
			continue
		}
		hashed := filepath.Join(b.Path, fileID[:2], fileID)
		if _, err := os.Stat(hashed); err == nil {
			b.files[relativePath] = hashed
			continue
		}
		flat := filepath.Join(b.Path, fileID)
		if _, err := os.Stat(flat); err == nil {
			b.files[relativePath] = flat
		}
	}
	return rows.Err()
}

// Files 返回微信域下全部相对路径，字典序
func (b *Backup) Files() []string {
	list := make([]string, 0, len(b.files))
	for rel := range b.files {
		list = append(list, rel)
	}
	sort.Strings(list)
	return list
}

// Exists 判断相对路径是否存在于索引
func (b *Backup) Exists(relativePath string) bool {
	_, ok := b.files[relativePath]
	return ok
}

// FilePath 返回相对路径对应的磁盘绝对路径
func (b *Backup) FilePath(relativePath string) (string, error) {
	path, ok := b.files[relativePath]
	if !ok {
		return "", errors.NotFound(relativePath, nil)
	}
	return path, nil
}

// ReadFile 读取相对路径对应文件的内容
func (b *Backup) ReadFile(relativePath string) ([]byte, error) {
	path, err := b.FilePath(relativePath)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}
