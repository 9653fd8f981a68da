//go:build linux && !android

// Package session - Linux平台事实
// 通过LED类设备中的手电筒项判断闪光灯能力，桌面Linux通常两者皆无
package session

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// linuxInfo Linux平台事实实现
type linuxInfo struct{}

// ledsDir LED类设备目录，手机内核在这里暴露闪光灯
const ledsDir = "/sys/class/leds"

// isHandheldDevice 判断是否为手持设备
// 手持Linux设备（手机内核）会在LED类设备中暴露手电筒/闪光灯项，
// 桌面和笔记本没有对应硬件
func (l *linuxInfo) isHandheldDevice() bool {
	return findTorchLED() != ""
}

// supportsFlashControl 判断闪光灯是否可程序化控制
// 要求手电筒LED的brightness节点可写
func (l *linuxInfo) supportsFlashControl() bool {
	led := findTorchLED()
	if led == "" {
		return false
	}

	brightness := filepath.Join(ledsDir, led, "brightness")
	return unix.Access(brightness, unix.W_OK) == nil
}

// findTorchLED 查找手电筒/闪光灯LED设备名，找不到返回空字符串
func findTorchLED() string {
	entries, err := os.ReadDir(ledsDir)
	if err != nil {
		return ""
	}

	for _, entry := range entries {
		name := strings.ToLower(entry.Name())
		if strings.Contains(name, "torch") || strings.Contains(name, "flash") {
			return entry.Name()
		}
	}
	return ""
}

// getPlatformInfo 获取Linux平台的事实实现
func getPlatformInfo() platformInfo {
	return &linuxInfo{}
}
