package main

import (
	"fmt"

	"github.com/Kevin-Rudy/gopulse/pkg/ppg"
	"github.com/Kevin-Rudy/gopulse/pkg/session"
	"github.com/Kevin-Rudy/gopulse/pkg/tui"
	"github.com/urfave/cli/v2"
)

// AppConfig 应用层配置聚合
type AppConfig struct {
	PPGConfig     *ppg.Config
	SessionConfig *session.Config
	TUIConfig     *tui.Config
	SimConfig     session.SimulatedConfig
	Demo          bool
}

// buildConfigFromCLI 从命令行参数构建配置
func buildConfigFromCLI(c *cli.Context) *AppConfig {
	// 构建 ppg 配置
	ppgConfig := ppg.DefaultConfig()
	if c.IsSet("fps") {
		ppgConfig.SampleRate = float64(c.Int("fps"))
	}
	if c.IsSet("buffer") {
		ppgConfig.BufferSize = c.Int("buffer")
	}
	if c.Bool("fft") {
		ppgConfig.UseFFT = true
	}

	// 构建 session 配置
	sessionConfig := session.DefaultConfig()

	// 构建模拟摄像头配置
	simConfig := session.DefaultSimulatedConfig()
	simConfig.NominalRate = ppgConfig.SampleRate
	if c.IsSet("sim-bpm") {
		simConfig.BPM = float64(c.Int("sim-bpm"))
	}
	if c.IsSet("sim-noise") {
		simConfig.Noise = c.Float64("sim-noise")
	}

	// 演示模式使用模拟设备，跳过针对真实硬件的能力检查
	demo := c.Bool("demo")
	if demo {
		sessionConfig.SkipCapabilityCheck = true
	}

	// 构建 TUI 配置
	tuiConfig := tui.DefaultConfig()
	if c.IsSet("refresh-rate") {
		tuiConfig.RefreshInterval = c.Duration("refresh-rate")
	}
	if c.IsSet("chart-width") {
		tuiConfig.MinChartWidth = c.Int("chart-width")
	}
	if c.IsSet("chart-height") {
		tuiConfig.MinChartHeight = c.Int("chart-height")
	}

	return &AppConfig{
		PPGConfig:     ppgConfig,
		SessionConfig: sessionConfig,
		TUIConfig:     tuiConfig,
		SimConfig:     simConfig,
		Demo:          demo,
	}
}

// validateConfig 验证配置的合理性
func validateConfig(config *AppConfig) error {
	// 验证 ppg 配置
	if err := config.PPGConfig.Validate(); err != nil {
		return fmt.Errorf("ppg配置错误: %v", err)
	}

	// 验证 session 配置
	if err := config.SessionConfig.Validate(); err != nil {
		return fmt.Errorf("session配置错误: %v", err)
	}

	// 验证 TUI 配置
	if err := config.TUIConfig.Validate(); err != nil {
		return fmt.Errorf("tui配置错误: %v", err)
	}

	return nil
}
