package errors

import (
	"fmt"
	"net/http"
)

// 备份容器相关错误
func BackupNotFound(path string) *AppError {
	return New(ErrTypeBackup, fmt.Sprintf("backup not found: %s", path), nil, http.StatusNotFound).WithStack()
}

func BackupEncrypted(path string) *AppError {
	return New(ErrTypeBackup, fmt.Sprintf("backup is encrypted, decrypt it first: %s", path), nil, http.StatusBadRequest).WithStack()
}

func DeviceNotFound(udid string) *AppError {
	return New(ErrTypeBackup, fmt.Sprintf("device not found: %s", udid), nil, http.StatusNotFound).WithStack()
}

func ManifestBroken(path string, cause error) *AppError {
	return New(ErrTypeBackup, fmt.Sprintf("manifest unreadable: %s", path), cause, http.StatusInternalServerError).WithStack()
}

// 账号发现与选择相关错误
func NoAccountFound() *AppError {
	return New(ErrTypeNotFound, "no account found in backup", nil, http.StatusNotFound).WithStack()
}

func AccountNotFound(username string) *AppError {
	return New(ErrTypeNotFound, fmt.Sprintf("account not found: %s", username), nil, http.StatusNotFound).WithStack()
}

func AccountNotSelected() *AppError {
	return New(ErrTypeInvalidArg, "no account selected", nil, http.StatusBadRequest).WithStack()
}

// 数据库访问相关错误
func DBFileNotFound(path string, cause error) *AppError {
	return New(ErrTypeDatabase, fmt.Sprintf("db file not found: %s", path), cause, http.StatusNotFound).WithStack()
}

func DBConnectFailed(path string, cause error) *AppError {
	return New(ErrTypeDatabase, fmt.Sprintf("db connect failed: %s", path), cause, http.StatusInternalServerError).WithStack()
}

func QueryFailed(query string, cause error) *AppError {
	return New(ErrTypeDatabase, fmt.Sprintf("query failed: %s", query), cause, http.StatusInternalServerError).WithStack()
}

func ScanRowFailed(cause error) *AppError {
	return New(ErrTypeDatabase, "scan row failed", cause, http.StatusInternalServerError).WithStack()
}

func ContactNotFound(key string) *AppError {
	return New(ErrTypeNotFound, fmt.Sprintf("contact not found: %s", key), nil, http.StatusNotFound).WithStack()
}

func ChatRoomNotFound(key string) *AppError {
	return New(ErrTypeNotFound, fmt.Sprintf("chat room not found: %s", key), nil, http.StatusNotFound).WithStack()
}

// TruncatedRemark 备注 TLV 声明长度越过 blob 末尾
func TruncatedRemark(offset, size int) *AppError {
	return New(ErrTypeDecode, fmt.Sprintf("remark blob truncated at offset %d (size %d)", offset, size), nil, http.StatusInternalServerError).WithStack()
}
