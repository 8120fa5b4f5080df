//go:build !mobile

// stub.go - 桌面构建时的占位文件
//
// 编辑器的移动端入口在 mobile.go 中，只有 -tags mobile 时才会编译；
// 普通构建只保留导出的 Dummy，保证 go build ./... 能通过
package mobile

// Dummy 占位导出函数
func Dummy() {}
