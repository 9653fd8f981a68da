// Package session 模拟摄像头设备
// 在没有真实摄像头/闪光灯硬件的宿主上提供可复现的测量输入，
// 供演示模式和测试使用
package session

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/Kevin-Rudy/gopulse/pkg/core"
)

// SimulatedConfig 模拟摄像头的配置结构
type SimulatedConfig struct {
	BPM           float64       // 模拟心率（次/分钟）
	Amplitude     float64       // 脉搏波的亮度幅度（0-255亮度单位）
	Noise         float64       // 确定性噪声幅度（亮度单位）
	NominalRate   float64       // 信号的名义采样率(Hz)，与ppg配置的采样率一致
	FrameInterval time.Duration // 实际产帧的墙钟间隔，测试可调小加速
	Width         int           // 帧宽度（像素）
	Height        int           // 帧高度（像素）
	NoFlash       bool          // 模拟视频轨道不暴露闪光灯控制
	FailAcquire   bool          // 模拟获取失败（权限被拒绝）
	FailFlash     bool          // 模拟闪光灯启用失败
}

// DefaultSimulatedConfig 返回默认的模拟配置：75BPM、30Hz、轻微噪声
func DefaultSimulatedConfig() SimulatedConfig {
	return SimulatedConfig{
		BPM:           75,
		Amplitude:     6,
		Noise:         0.5,
		NominalRate:   30,
		FrameInterval: 33 * time.Millisecond,
		Width:         64,
		Height:        48,
	}
}

// SimulatedCamera 模拟摄像头
// 同时实现core.DeviceControl和core.Device：
// 产生绿色通道按脉搏波形起伏的合成帧，并记录闪光灯/释放状态供测试断言
type SimulatedCamera struct {
	config SimulatedConfig

	mu       sync.Mutex
	acquired bool
	released bool
	flashOn  bool
	frames   chan core.Frame
	stopChan chan struct{}
}

// NewSimulatedCamera 创建模拟摄像头
func NewSimulatedCamera(config SimulatedConfig) *SimulatedCamera {
	if config.Width <= 0 || config.Height <= 0 {
		config.Width = 64
		config.Height = 48
	}
	if config.NominalRate <= 0 {
		config.NominalRate = 30
	}
	if config.FrameInterval <= 0 {
		config.FrameInterval = 33 * time.Millisecond
	}
	return &SimulatedCamera{config: config}
}

// Acquire 实现core.DeviceControl接口
// 获取后开始产帧；支持释放后再次获取（探测先短暂获取一次，会话随后再获取）
func (c *SimulatedCamera) Acquire(ctx context.Context, facing core.CameraFacing) (core.Device, error) {
	if c.config.FailAcquire {
		return nil, errors.New("摄像头权限被拒绝")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.acquired && !c.released {
		return nil, errors.New("摄像头已被占用")
	}

	c.acquired = true
	c.released = false
	c.frames = make(chan core.Frame, 4)
	c.stopChan = make(chan struct{})

	go c.generateFrames(c.frames, c.stopChan)
	return c, nil
}

// Frames 实现core.Device接口
func (c *SimulatedCamera) Frames() <-chan core.Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frames
}

// HasFlash 实现core.Device接口
func (c *SimulatedCamera) HasFlash() bool {
	return !c.config.NoFlash
}

// SetFlash 实现core.Device接口
func (c *SimulatedCamera) SetFlash(ctx context.Context, on bool) error {
	if on && c.config.FailFlash {
		return errors.New("闪光灯硬件故障")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.flashOn = on
	return nil
}

// Release 实现core.Device接口，幂等
func (c *SimulatedCamera) Release() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.released || !c.acquired {
		return nil
	}
	c.released = true
	close(c.stopChan)
	return nil
}

// FlashOn 返回当前闪光灯状态，供测试断言
func (c *SimulatedCamera) FlashOn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flashOn
}

// Released 返回设备是否已释放，供测试断言
func (c *SimulatedCamera) Released() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.released
}

// generateFrames 按配置的墙钟间隔产帧
// 波形相位按名义采样率推进，与墙钟间隔无关，
// 因此调小FrameInterval只是加速测试，不改变信号形状
func (c *SimulatedCamera) generateFrames(frames chan<- core.Frame, stopChan <-chan struct{}) {
	defer close(frames)

	ticker := time.NewTicker(c.config.FrameInterval)
	defer ticker.Stop()

	var phase float64 // 脉搏周期内的归一化相位[0,1)
	frameIndex := 0

	for {
		select {
		case <-stopChan:
			return
		case <-ticker.C:
			frame := c.makeFrame(phase, frameIndex)

			select {
			case frames <- frame:
			case <-stopChan:
				return
			}

			// 相位按名义采样率推进
			phase += (c.config.BPM / 60.0) / c.config.NominalRate
			if phase >= 1.0 {
				phase -= 1.0
			}
			frameIndex++
		}
	}
}

// makeFrame 生成一帧：绿色通道为脉搏波形+慢漂移+确定性噪声
func (c *SimulatedCamera) makeFrame(phase float64, frameIndex int) core.Frame {
	// 近正弦的脉搏波形：基波为主，叠加少量二次谐波模拟波形不对称
	shape := 0.8*math.Sin(2*math.Pi*phase) + 0.25*math.Sin(4*math.Pi*phase+0.8)

	// 慢基线漂移（模拟指压变化）
	seconds := float64(frameIndex) / c.config.NominalRate
	drift := 2.0 * math.Sin(2*math.Pi*0.05*seconds)

	// 廉价的确定性噪声
	noise := c.config.Noise * (2*fract(math.Sin(float64(frameIndex)*12.9898)*43758.5453) - 1)

	value := 128.0 + c.config.Amplitude*shape + drift + noise
	green := clampByte(value)

	pixels := make([]byte, c.config.Width*c.config.Height*4)
	for i := 0; i < len(pixels); i += 4 {
		pixels[i] = 60      // R：闪光灯透过指尖偏红，数值无关紧要
		pixels[i+1] = green // G：携带脉搏信号的通道
		pixels[i+2] = 40    // B
		pixels[i+3] = 255   // A
	}

	return core.Frame{
		Width:  c.config.Width,
		Height: c.config.Height,
		Pixels: pixels,
		Time:   time.Now(),
	}
}

// clampByte 将亮度值截断到[0, 255]
func clampByte(v float64) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(math.Round(v))
}

// fract 返回浮点数的小数部分
func fract(x float64) float64 {
	return x - math.Floor(x)
}
