package ui

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// LoadOrCreateUserID 读取本机持久化的用户 ID，不存在则生成一个
func LoadOrCreateUserID() (int64, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return 0, err
	}

	dir := filepath.Join(homeDir, ".truth-or-dare")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}

	path := filepath.Join(dir, "identity")
	if data, err := os.ReadFile(path); err == nil {
		if id, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64); err == nil && id > 0 {
			return id, nil
		}
	}

	// 生成一个正的随机 ID 并持久化
	id := rand.Int64N(1<<62) + 1
	if err := os.WriteFile(path, []byte(strconv.FormatInt(id, 10)), 0o644); err != nil {
		return 0, err
	}
	return id, nil
}
