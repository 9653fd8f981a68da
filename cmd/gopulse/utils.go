package main

import (
	"fmt"

	"github.com/Kevin-Rudy/gopulse/pkg/session"
)

// 程序信息常量
const (
	AppName    = "gopulse"
	AppVersion = "0.1.0"
	AppDesc    = "基于摄像头亮度信号的可视化心率测量工具"
)

// showSystemInfo 显示系统环境和配置信息
func showSystemInfo() {
	fmt.Println("\n系统信息:")
	fmt.Printf("  操作系统: %s\n", session.GetOSName())
	fmt.Printf("  设备形态: %s\n", session.GetDeviceFormStatus())
	fmt.Printf("  闪光灯控制: %s\n", session.GetFlashSupportStatus())
}

// printUsageInstructions 显示TUI操作说明
func printUsageInstructions() {
	fmt.Println("操作说明:")
	fmt.Println("  将指尖完全覆盖摄像头镜头和闪光灯")
	fmt.Println("  保持手指稳定，等待信号质量上升")
	fmt.Println("  q 或 Ctrl+C - 退出程序")
	fmt.Println("========================================")
}
