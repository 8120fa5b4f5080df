//go:build !mobile

package utils

import "os"

// IsTouchPlatform 当前构建是否面向触摸设备
// 桌面端返回 false；设置 ROOMDECOR_TOUCH=1 可在桌面上模拟触摸操作提示
func IsTouchPlatform() bool {
	return os.Getenv("ROOMDECOR_TOUCH") == "1"
}
