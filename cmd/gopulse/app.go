package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kevin-Rudy/gopulse/pkg/core"
	"github.com/Kevin-Rudy/gopulse/pkg/session"
	"github.com/Kevin-Rudy/gopulse/pkg/tui"
	"github.com/urfave/cli/v2"
)

// unavailableControl 没有真实摄像头后端时的占位实现
// 当前宿主上没有接入真实摄像头驱动，获取总是失败，
// 能力探测会把失败折叠成可读的不支持原因
type unavailableControl struct{}

func (unavailableControl) Acquire(ctx context.Context, facing core.CameraFacing) (core.Device, error) {
	return nil, errors.New("当前构建没有接入真实摄像头后端")
}

// runApp 主要应用逻辑处理函数
func runApp(c *cli.Context) error {
	// 构建配置
	appConfig := buildConfigFromCLI(c)

	// 验证配置
	if err := validateConfig(appConfig); err != nil {
		return cli.Exit(fmt.Sprintf("配置验证失败: %v", err), 1)
	}

	// 显示运行配置
	printRunningConfig(appConfig)

	// 显示系统环境信息
	showSystemInfo()

	// 选择设备来源
	var control core.DeviceControl
	if appConfig.Demo {
		fmt.Println("\n演示模式：使用模拟摄像头")
		control = session.NewSimulatedCamera(appConfig.SimConfig)
	} else {
		// 真实硬件路径先做能力探测，不支持时给出原因后退出
		control = unavailableControl{}
		prober := session.NewProber(control)
		caps := prober.Probe(context.Background())
		if !caps.IsSupported {
			printCapabilityReport(caps)
			return cli.Exit("当前环境不支持测量，可使用 --demo 体验演示模式", 1)
		}
	}

	fmt.Println("\n正在初始化测量会话...")

	// 创建测量会话
	sess, err := session.NewSession(control, appConfig.SessionConfig, appConfig.PPGConfig)
	if err != nil {
		return cli.Exit(fmt.Sprintf("无法创建测量会话: %v", err), 1)
	}

	fmt.Println("测量会话初始化成功")
	fmt.Println("\n正在启动TUI界面...")

	// 显示使用说明
	printUsageInstructions()

	// 创建并启动TUI实例，内部会启动测量会话
	tuiInstance := tui.NewTUI(sess, appConfig.TUIConfig)

	// 启动TUI界面 - 这会阻塞直到用户退出
	if err := tuiInstance.Run(context.Background()); err != nil {
		return cli.Exit(fmt.Sprintf("TUI运行出错: %v", err), 1)
	}

	fmt.Println("\n程序已退出")
	return nil
}

// printRunningConfig 打印运行配置信息
func printRunningConfig(config *AppConfig) {
	fmt.Printf("采样率: %.0f fps\n", config.PPGConfig.SampleRate)
	fmt.Printf("缓冲区大小: %d\n", config.PPGConfig.BufferSize)
	fmt.Printf("心率范围: %d-%d BPM\n", config.PPGConfig.MinBPM, config.PPGConfig.MaxBPM)
	if config.Demo {
		fmt.Printf("模拟心率: %.0f BPM (噪声幅度 %.1f)\n", config.SimConfig.BPM, config.SimConfig.Noise)
	}
}

// printCapabilityReport 打印能力探测结果
func printCapabilityReport(caps core.CameraCapabilities) {
	fmt.Println("\n能力探测结果:")
	fmt.Printf("  平台支持闪光灯控制: %v\n", caps.IsSupportedPlatform)
	fmt.Printf("  手持设备形态: %v\n", caps.IsHandheldDevice)
	fmt.Printf("  摄像头有闪光灯: %v\n", caps.HasFlashControl)
	fmt.Printf("  不支持原因: %s\n", caps.UnsupportedReason)
}
