package main

import (
	"fmt"
	"time"

	"github.com/Kevin-Rudy/gopulse/pkg/session"
	"github.com/urfave/cli/v2"
)

// createCliApp 创建CLI应用实例
func createCliApp() *cli.App {
	app := &cli.App{
		Name:    AppName,
		Version: AppVersion,
		Usage:   AppDesc,
		Flags:   createCliFlags(),
		Action:  runApp,
		Before: func(c *cli.Context) error {
			// 显示启动信息
			fmt.Printf("正在启动 %s v%s...\n", AppName, AppVersion)
			return nil
		},
	}

	// 添加版本子命令
	app.Commands = createCommands()

	return app
}

// createCliFlags 创建CLI参数定义
func createCliFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "demo",
			Aliases: []string{"d"},
			Usage:   "演示模式：使用模拟摄像头产生合成脉搏信号",
		},
		&cli.IntFlag{
			Name:  "sim-bpm",
			Value: 75,
			Usage: "演示模式下模拟的心率 (BPM)",
		},
		&cli.Float64Flag{
			Name:  "sim-noise",
			Value: 0.5,
			Usage: "演示模式下叠加的噪声幅度",
		},
		&cli.IntFlag{
			Name:    "fps",
			Aliases: []string{"f"},
			Value:   30,
			Usage:   "摄像头采样率 (帧/秒)",
		},
		&cli.IntFlag{
			Name:    "buffer",
			Aliases: []string{"b"},
			Value:   300,
			Usage:   "信号环形缓冲区大小 (采样点数)",
		},
		&cli.BoolFlag{
			Name:  "fft",
			Usage: "使用FFT代替直接DFT进行频谱分析",
		},
		&cli.DurationFlag{
			Name:    "refresh-rate",
			Aliases: []string{"r"},
			Value:   200 * time.Millisecond,
			Usage:   "UI刷新频率 (例如: 100ms, 500ms)",
		},
		&cli.IntFlag{
			Name:  "chart-width",
			Value: 20,
			Usage: "最小图表宽度",
		},
		&cli.IntFlag{
			Name:  "chart-height",
			Value: 5,
			Usage: "最小图表高度",
		},
	}
}

// createCommands 创建子命令
func createCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:    "version",
			Aliases: []string{"v"},
			Usage:   "显示详细版本信息",
			Action: func(c *cli.Context) error {
				fmt.Printf("%s v%s\n", AppName, AppVersion)
				fmt.Printf("描述: %s\n", AppDesc)
				fmt.Printf("系统: %s\n", session.GetOSName())
				fmt.Printf("设备形态: %s\n", session.GetDeviceFormStatus())
				return nil
			},
		},
	}
}
