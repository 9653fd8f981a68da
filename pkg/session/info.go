// Package session 系统环境信息
package session

import (
	"runtime"
)

// GetSystemInfo 获取完整的系统信息
// 返回操作系统名称、设备形态描述和闪光灯支持描述
func GetSystemInfo() (osName, deviceForm, flashSupport string) {
	// 获取操作系统名称
	switch runtime.GOOS {
	case "windows":
		osName = "Windows"
	case "linux":
		osName = "Linux"
	case "darwin":
		osName = "macOS"
	case "android":
		osName = "Android"
	case "ios":
		osName = "iOS"
	default:
		osName = runtime.GOOS
	}

	platform := getPlatformInfo()

	if platform.isHandheldDevice() {
		deviceForm = "手持设备 (可能有后置闪光灯)"
	} else {
		deviceForm = "桌面/笔记本 (没有后置闪光灯)"
	}

	if platform.supportsFlashControl() {
		flashSupport = "支持程序化闪光灯控制"
	} else {
		flashSupport = "不支持程序化闪光灯控制"
	}

	return
}

// GetOSName 获取操作系统名称
func GetOSName() string {
	osName, _, _ := GetSystemInfo()
	return osName
}

// GetDeviceFormStatus 获取设备形态描述
func GetDeviceFormStatus() string {
	_, deviceForm, _ := GetSystemInfo()
	return deviceForm
}

// GetFlashSupportStatus 获取闪光灯支持描述
func GetFlashSupportStatus() string {
	_, _, flashSupport := GetSystemInfo()
	return flashSupport
}
