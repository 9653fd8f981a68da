// Package session 配置定义
package session

import (
	"errors"
	"time"

	"github.com/Kevin-Rudy/gopulse/pkg/core"
)

// Config 测量会话的配置结构
type Config struct {
	Facing              core.CameraFacing // 摄像头朝向，默认后置（闪光灯所在一侧）
	ROIFraction         float64           // 中心感兴趣区域占画面的比例(0,1]
	PixelStride         int               // 像素抽样步长，每个轴取1/stride（stride=4即1/16像素）
	ReadingBuffer       int               // 读数通道缓冲区大小
	FlashOffTimeout     time.Duration     // 停止时关闭闪光灯的最长等待时间
	SkipCapabilityCheck bool              // 跳过能力检查，供模拟设备/测试宿主使用
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Facing:          core.FacingBack,
		ROIFraction:     0.5,                    // 画面中央一半区域
		PixelStride:     4,                      // 每16个像素采样1个
		ReadingBuffer:   16,                     // 默认16个读数缓冲
		FlashOffTimeout: 500 * time.Millisecond, // 关闪光灯最多等500ms
	}
}

// Validate 验证配置的合理性
func (c *Config) Validate() error {
	if c.Facing != core.FacingBack && c.Facing != core.FacingFront {
		return errors.New("摄像头朝向必须是back或front")
	}

	if c.ROIFraction <= 0 || c.ROIFraction > 1 {
		return errors.New("感兴趣区域比例必须在(0, 1]内")
	}

	if c.PixelStride <= 0 {
		return errors.New("像素抽样步长必须大于0")
	}

	if c.ReadingBuffer <= 0 {
		return errors.New("读数缓冲区大小必须大于0")
	}

	if c.FlashOffTimeout <= 0 {
		return errors.New("闪光灯关闭超时必须大于0")
	}

	return nil
}
