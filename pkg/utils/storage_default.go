//go:build !android

package utils

// PrepareStorage 非 Android 平台上 gdata 会自行创建目录
func PrepareStorage(appName string) error {
	return nil
}
