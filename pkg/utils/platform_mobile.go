//go:build mobile

package utils

// IsTouchPlatform 移动端构建总是触摸设备
func IsTouchPlatform() bool {
	return true
}
