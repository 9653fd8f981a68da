//go:build !linux && !android && !ios

// Package session - 桌面平台事实
// Windows/macOS等桌面系统的摄像头结构上没有后置闪光灯
package session

// desktopInfo 桌面平台事实实现
type desktopInfo struct{}

// isHandheldDevice 桌面平台不是手持设备
func (d *desktopInfo) isHandheldDevice() bool {
	return false
}

// supportsFlashControl 桌面平台没有程序化闪光灯控制
func (d *desktopInfo) supportsFlashControl() bool {
	return false
}

// getPlatformInfo 获取桌面平台的事实实现
func getPlatformInfo() platformInfo {
	return &desktopInfo{}
}
