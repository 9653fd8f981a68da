//go:build android || ios

// Package session - 移动平台事实
// Android/iOS均为手持设备，闪光灯能力最终由活动视频轨道的查询结果决定
package session

// mobileInfo 移动平台事实实现
type mobileInfo struct{}

// isHandheldDevice 移动平台必然是手持设备
func (m *mobileInfo) isHandheldDevice() bool {
	return true
}

// supportsFlashControl 移动平台支持程序化闪光灯控制
// 个别机型的限制在探测的获取步骤中体现
func (m *mobileInfo) supportsFlashControl() bool {
	return true
}

// getPlatformInfo 获取移动平台的事实实现
func getPlatformInfo() platformInfo {
	return &mobileInfo{}
}
