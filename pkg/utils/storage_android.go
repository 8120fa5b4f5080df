//go:build android

package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// PrepareStorage 在打开 gdata 之前创建 Android 应用数据目录
//
// gdata 在 Android 上写入 /data/data/{package}/ 下的子目录，但不会预先创建它们
//
// 参数：
//   - appName: gdata 应用名（子目录名）
func PrepareStorage(appName string) error {
	root, err := androidDataRoot()
	if err != nil {
		return fmt.Errorf("failed to detect Android package: %w", err)
	}
	dir := filepath.Join(root, appName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}
	return nil
}

// androidDataRoot 由 /proc/self/cmdline 中的包名推出 /data/data/{package}
func androidDataRoot() (string, error) {
	cmdline, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", err
	}
	pkg := string(bytes.TrimSpace(bytes.SplitN(cmdline, []byte{0}, 2)[0]))
	if pkg == "" {
		return "", fmt.Errorf("empty /proc/self/cmdline")
	}
	return filepath.Join("/data/data", pkg), nil
}
