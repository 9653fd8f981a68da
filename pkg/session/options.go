// Package session 选项模式支持
package session

import (
	"time"

	"github.com/Kevin-Rudy/gopulse/pkg/core"
)

// Option 配置选项函数类型
type Option func(*Config)

// WithFacing 设置摄像头朝向
func WithFacing(facing core.CameraFacing) Option {
	return func(c *Config) {
		c.Facing = facing
	}
}

// WithROIFraction 设置中心感兴趣区域比例
func WithROIFraction(fraction float64) Option {
	return func(c *Config) {
		c.ROIFraction = fraction
	}
}

// WithPixelStride 设置像素抽样步长
func WithPixelStride(stride int) Option {
	return func(c *Config) {
		c.PixelStride = stride
	}
}

// WithReadingBuffer 设置读数通道缓冲区大小
func WithReadingBuffer(size int) Option {
	return func(c *Config) {
		c.ReadingBuffer = size
	}
}

// WithFlashOffTimeout 设置关闭闪光灯的最长等待时间
func WithFlashOffTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.FlashOffTimeout = timeout
	}
}

// WithSkipCapabilityCheck 跳过能力检查（模拟设备宿主）
func WithSkipCapabilityCheck(skip bool) Option {
	return func(c *Config) {
		c.SkipCapabilityCheck = skip
	}
}

// NewConfigWithOptions 使用选项模式创建配置
func NewConfigWithOptions(opts ...Option) (*Config, error) {
	config := DefaultConfig()

	// 应用所有选项
	for _, opt := range opts {
		opt(config)
	}

	// 验证配置
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}
