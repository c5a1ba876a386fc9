package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

// TestNew 测试创建新错误
func TestNew(t *testing.T) {
	err := New(ErrTypeDatabase, "db error", nil, http.StatusInternalServerError)

	if err.Type != ErrTypeDatabase {
		t.Errorf("expected type %s, got %s", ErrTypeDatabase, err.Type)
	}
	if err.Message != "db error" {
		t.Errorf("expected message 'db error', got %s", err.Message)
	}
	if err.Code != http.StatusInternalServerError {
		t.Errorf("expected code %d, got %d", http.StatusInternalServerError, err.Code)
	}
}

// TestError 测试错误字符串格式
func TestError(t *testing.T) {
	cause := errors.New("underlying")
	err := New(ErrTypeDatabase, "db error", cause, http.StatusInternalServerError)

	want := "database: db error: underlying"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}

	noCause := New(ErrTypeHTTP, "http error", nil, http.StatusBadGateway)
	if noCause.Error() != "http: http error" {
		t.Errorf("unexpected error string: %q", noCause.Error())
	}
}

// TestWrap 测试错误包装
func TestWrap(t *testing.T) {
	if Wrap(nil, ErrTypeDatabase, "ignored", 500) != nil {
		t.Error("wrapping nil should return nil")
	}

	plain := errors.New("plain")
	wrapped := Wrap(plain, ErrTypeDatabase, "wrapped", http.StatusInternalServerError)
	if wrapped.Cause != plain {
		t.Error("expected cause to be preserved")
	}

	// 包装 AppError 保留原始类型
	app := New(ErrTypeNotFound, "original", nil, http.StatusNotFound)
	rewrapped := Wrap(app, ErrTypeDatabase, "new message", http.StatusInternalServerError)
	if rewrapped.Type != ErrTypeNotFound {
		t.Errorf("expected original type preserved, got %s", rewrapped.Type)
	}
	if rewrapped.Message != "new message" {
		t.Errorf("expected updated message, got %s", rewrapped.Message)
	}
	if rewrapped.Code != http.StatusNotFound {
		t.Errorf("expected original code preserved, got %d", rewrapped.Code)
	}
}

// TestIs 测试错误类型检查
func TestIs(t *testing.T) {
	err := Database("db error", nil)

	if !Is(err, ErrTypeDatabase) {
		t.Error("expected Is to match database type")
	}
	if Is(err, ErrTypeHTTP) {
		t.Error("expected Is not to match http type")
	}
	if Is(nil, ErrTypeDatabase) {
		t.Error("expected Is(nil) to be false")
	}

	// 经过 fmt.Errorf 包装仍可识别
	chained := fmt.Errorf("outer: %w", err)
	if !Is(chained, ErrTypeDatabase) {
		t.Error("expected Is to unwrap chained error")
	}
}

// TestGetTypeAndCode 测试类型和状态码提取
func TestGetTypeAndCode(t *testing.T) {
	if GetType(nil) != "" {
		t.Error("expected empty type for nil")
	}
	if GetType(errors.New("plain")) != "unknown" {
		t.Error("expected unknown type for plain error")
	}
	if GetType(NotFound("contact", nil)) != ErrTypeNotFound {
		t.Error("expected not_found type")
	}

	if GetCode(nil) != http.StatusOK {
		t.Error("expected 200 for nil")
	}
	if GetCode(errors.New("plain")) != http.StatusInternalServerError {
		t.Error("expected 500 for plain error")
	}
	if GetCode(ErrInvalidArg("talker")) != http.StatusBadRequest {
		t.Error("expected 400 for invalid arg")
	}
}

// TestRootCause 测试根因提取
func TestRootCause(t *testing.T) {
	root := errors.New("root")
	err := Wrap(fmt.Errorf("mid: %w", root), ErrTypeDatabase, "outer", 500)

	if RootCause(err) != root {
		t.Errorf("expected root cause, got %v", RootCause(err))
	}
	if RootCause(nil) != nil {
		t.Error("expected nil root cause for nil")
	}
}

// TestWithStack 测试堆栈采集
func TestWithStack(t *testing.T) {
	err := Database("db error", nil)
	if len(err.Stack) == 0 {
		t.Fatal("expected non-empty stack")
	}
	for _, frame := range err.Stack {
		if strings.Contains(frame, "runtime/") {
			t.Errorf("runtime frame leaked into stack: %s", frame)
		}
	}
}

// TestDomainConstructors 测试领域错误构造器
func TestDomainConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantType string
		wantCode int
	}{
		{"BackupNotFound", BackupNotFound("/tmp/backup"), ErrTypeBackup, http.StatusNotFound},
		{"BackupEncrypted", BackupEncrypted("/tmp/backup"), ErrTypeBackup, http.StatusBadRequest},
		{"DeviceNotFound", DeviceNotFound("udid"), ErrTypeBackup, http.StatusNotFound},
		{"NoAccountFound", NoAccountFound(), ErrTypeNotFound, http.StatusNotFound},
		{"AccountNotSelected", AccountNotSelected(), ErrTypeInvalidArg, http.StatusBadRequest},
		{"DBConnectFailed", DBConnectFailed("a.db", nil), ErrTypeDatabase, http.StatusInternalServerError},
		{"TruncatedRemark", TruncatedRemark(4, 5), ErrTypeDecode, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Type != tt.wantType {
				t.Errorf("expected type %s, got %s", tt.wantType, tt.err.Type)
			}
			if tt.err.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, tt.err.Code)
			}
		})
	}
}
