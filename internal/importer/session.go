package importer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrSessionNotFound 令牌对应的上传文件不存在（已过期、已执行或令牌被篡改）
var ErrSessionNotFound = errors.New("import session expired or file not found")

// ErrInvalidUpload 上传缺失或工作簿无法读取
var ErrInvalidUpload = errors.New("invalid upload")

// SessionStore 导入会话管理
// 会话 = uploads 目录下的一个工作簿文件，令牌就是存储文件名（不含路径），
// 不信任调用方提供的原始文件名。
type SessionStore struct {
	uploadsDir string
}

// NewSessionStore 创建会话管理器
func NewSessionStore(uploadsDir string) (*SessionStore, error) {
	if err := os.MkdirAll(uploadsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &SessionStore{uploadsDir: uploadsDir}, nil
}

// NewSessionPath 为一次上传分配存储路径
// 文件名用 UUID 生成，只保留原始文件的扩展名，令牌即该文件名。
func (s *SessionStore) NewSessionPath(originalName string) (token, path string) {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	token = uuid.New().String() + ext
	return token, filepath.Join(s.uploadsDir, token)
}

// Resolve 把令牌解析回存储路径
// 只按文件名解析：含路径分隔符的令牌一律拒绝，防止目录穿越。
func (s *SessionStore) Resolve(token string) (string, error) {
	if token == "" || strings.ContainsAny(token, `/\`) || filepath.Base(token) != token {
		return "", ErrSessionNotFound
	}

	path := filepath.Join(s.uploadsDir, token)
	if _, err := os.Stat(path); err != nil {
		return "", ErrSessionNotFound
	}
	return path, nil
}

// Remove 删除会话文件（会话一次性使用，Execute 结束后即销毁）
func (s *SessionStore) Remove(token string) {
	path := filepath.Join(s.uploadsDir, filepath.Base(token))
	_ = os.Remove(path)
}
