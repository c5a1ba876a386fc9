package backup

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog/log"
	"howett.net/plist"

	"github.com/xleven/wxminer/internal/errors"
)

// Info 设备元信息，来自 Info.plist，缺失时仅留空
type Info struct {
	DeviceName     string `plist:"Device Name"`
	DisplayName    string `plist:"Display Name"`
	ProductType    string `plist:"Product Type"`
	ProductVersion string `plist:"Product Version"`
	SerialNumber   string `plist:"Serial Number"`
	UDID           string `plist:"Unique Identifier"`
	LastBackupDate string `plist:"-"`
}

type manifestPlist struct {
	IsEncrypted bool             `plist:"IsEncrypted"`
	Lockdown    manifestLockdown `plist:"Lockdown"`
}

type manifestLockdown struct {
	DeviceName     string `plist:"DeviceName"`
	ProductType    string `plist:"ProductType"`
	ProductVersion string `plist:"ProductVersion"`
	UDID           string `plist:"UniqueDeviceID"`
}

// loadManifestPlist 检查备份是否加密，加密备份直接拒绝
func (b *Backup) loadManifestPlist() error {
	path := filepath.Join(b.Path, manifestPlistFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.ManifestBroken(path, err)
	}

	var m manifestPlist
	if _, err := plist.Unmarshal(data, &m); err != nil {
		return errors.ManifestBroken(path, err)
	}
	if m.IsEncrypted {
		return errors.BackupEncrypted(b.Path)
	}

	if b.Info == nil {
		b.Info = &Info{
			DeviceName:     m.Lockdown.DeviceName,
			ProductType:    m.Lockdown.ProductType,
			ProductVersion: m.Lockdown.ProductVersion,
			UDID:           m.Lockdown.UDID,
		}
	}
	return nil
}

// loadInfoPlist 补充设备元信息，失败不致命
func (b *Backup) loadInfoPlist() {
	path := filepath.Join(b.Path, infoPlistFile)
	data, err := os.ReadFile(path)
	if err != nil {
		log.Debug().Err(err).Msg("no Info.plist in backup")
		return
	}

	var info Info
	if _, err := plist.Unmarshal(data, &info); err != nil {
		log.Warn().Err(err).Msg("failed to parse Info.plist")
		return
	}
	if b.Info != nil && info.UDID == "" {
		info.UDID = b.Info.UDID
	}
	b.Info = &info
}

// DefaultPath iTunes/Finder 备份的默认位置
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "MobileSync", "Backup")
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "Apple Computer", "MobileSync", "Backup")
	}
	return ""
}
