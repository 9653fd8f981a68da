// Package session 实现了core.ReadingSource接口，提供完整的测量会话编排
// 能力检查 → 设备获取 → 逐帧采样循环 → 资源清理
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Kevin-Rudy/gopulse/pkg/core"
	"github.com/Kevin-Rudy/gopulse/pkg/ppg"
)

// State 表示测量会话的生命周期状态
type State int

const (
	StateIdle               State = iota // 初始状态
	StateCapabilityChecking              // 正在执行能力探测
	StateInitializing                    // 正在获取摄像头并启用闪光灯
	StateActive                          // 采样循环运行中
	StateStopped                         // 已停止（终态，可重新Start）
	StateError                           // 出错（终态，可重新Start）
)

// String 返回状态的可读名称
func (s State) String() string {
	switch s {
	case StateIdle:
		return "空闲"
	case StateCapabilityChecking:
		return "能力检查"
	case StateInitializing:
		return "初始化"
	case StateActive:
		return "测量中"
	case StateStopped:
		return "已停止"
	case StateError:
		return "错误"
	default:
		return "未知"
	}
}

// 错误分类：设备/运行环境失败都在调用处捕获并折叠为终态Error
var (
	// ErrUnsupportedDevice 平台/设备结构上无法进行闪光灯PPG测量，不自动重试
	ErrUnsupportedDevice = errors.New("设备不支持闪光灯脉搏测量")

	// ErrAcquisitionFailure 权限被拒绝或设备被占用，用户操作后可重试
	ErrAcquisitionFailure = errors.New("无法获取摄像头")

	// ErrFlashControlFailure 设备已获取但闪光灯无法启用，对会话是致命错误
	ErrFlashControlFailure = errors.New("无法启用闪光灯")
)

// Session 测量会话
// 摄像头设备及其闪光灯在会话活动期间被独占持有；
// 信号缓冲区和会话计数器由帧循环独占，不允许外部写入
type Session struct {
	control   core.DeviceControl
	prober    *Prober
	config    *Config
	ppgConfig *ppg.Config

	buffer *ppg.Buffer
	engine *ppg.Engine

	readings chan core.Reading
	detected chan int

	mu       sync.Mutex
	state    State
	lastErr  error
	caps     core.CameraCapabilities
	device   core.Device
	stopChan chan struct{}
	doneChan chan struct{}

	// frameCount 单调递增的帧计数，用于重算节奏抽取
	// 只由帧循环goroutine访问
	frameCount int
}

// NewSession 创建测量会话
// config或ppgConfig为nil时使用各自的默认配置
func NewSession(control core.DeviceControl, config *Config, ppgConfig *ppg.Config) (*Session, error) {
	if control == nil {
		return nil, errors.New("必须提供设备控制实现")
	}

	if config == nil {
		config = DefaultConfig()
	}
	if ppgConfig == nil {
		ppgConfig = ppg.DefaultConfig()
	}

	// 验证配置
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if err := ppgConfig.Validate(); err != nil {
		return nil, err
	}

	return &Session{
		control:   control,
		prober:    NewProber(control),
		config:    config,
		ppgConfig: ppgConfig,
		buffer:    ppg.NewBuffer(ppgConfig.BufferSize),
		engine:    ppg.NewEngine(ppgConfig, nil),
		readings:  make(chan core.Reading, config.ReadingBuffer),
		detected:  make(chan int, 1),
		state:     StateIdle,
	}, nil
}

// Readings 实现core.ReadingSource接口
func (s *Session) Readings() <-chan core.Reading {
	return s.readings
}

// Detected 实现core.ReadingSource接口
func (s *Session) Detected() <-chan int {
	return s.detected
}

// State 返回当前会话状态
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err 返回导致Error状态的错误，无错误时为nil
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Capabilities 返回最近一次能力探测的结果
func (s *Session) Capabilities() core.CameraCapabilities {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.caps
}

// Start 实现core.ReadingSource接口，启动一次测量
// 从Idle/Stopped/Error状态重新进入能力检查；
// 任何失败都转入Error状态并返回带分类的错误
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	switch s.state {
	case StateIdle, StateStopped, StateError:
		// 允许启动
	default:
		s.mu.Unlock()
		return errors.New("会话已在运行")
	}
	s.state = StateCapabilityChecking
	s.lastErr = nil
	s.mu.Unlock()

	// 能力检查：模拟设备宿主可跳过
	var caps core.CameraCapabilities
	if s.config.SkipCapabilityCheck {
		caps = core.CameraCapabilities{
			HasFlashControl:     true,
			IsHandheldDevice:    true,
			IsSupportedPlatform: true,
			IsSupported:         true,
		}
	} else {
		caps = s.prober.Probe(ctx)
	}

	s.mu.Lock()
	s.caps = caps
	s.mu.Unlock()

	if !caps.IsSupported {
		return s.fail(fmt.Errorf("%w: %s", ErrUnsupportedDevice, caps.UnsupportedReason))
	}

	// 初始化：获取摄像头、启用闪光灯、挂接帧接收
	s.setState(StateInitializing)

	device, err := s.control.Acquire(ctx, s.config.Facing)
	if err != nil {
		return s.fail(fmt.Errorf("%w: %v", ErrAcquisitionFailure, err))
	}

	if !device.HasFlash() {
		// 释放已部分获取的资源
		_ = device.Release()
		return s.fail(fmt.Errorf("%w: 视频轨道未暴露闪光灯控制", ErrFlashControlFailure))
	}

	if err := device.SetFlash(ctx, true); err != nil {
		_ = device.Release()
		return s.fail(fmt.Errorf("%w: %v", ErrFlashControlFailure, err))
	}

	// 每次测量从干净状态开始，没有跨会话的持久状态
	s.buffer.Clear()
	s.engine.Reset()

	s.mu.Lock()
	s.device = device
	s.frameCount = 0
	s.stopChan = make(chan struct{})
	s.doneChan = make(chan struct{})
	s.state = StateActive
	stopChan, doneChan := s.stopChan, s.doneChan
	s.mu.Unlock()

	go s.frameLoop(device.Frames(), stopChan, doneChan)
	return nil
}

// Stop 实现core.ReadingSource接口，停止测量并清理资源
// 幂等：重复调用和从Error状态调用都安全。
// 顺序保证：先取消帧循环，再尽力关闭闪光灯，最后释放设备
func (s *Session) Stop() {
	s.mu.Lock()
	device := s.device
	stopChan := s.stopChan
	doneChan := s.doneChan
	s.device = nil
	s.stopChan = nil
	s.doneChan = nil
	if s.state != StateError && s.state != StateIdle {
		s.state = StateStopped
	}
	s.mu.Unlock()

	// (a) 取消帧循环，等待退出，之后不再有样本被处理
	if stopChan != nil {
		close(stopChan)
	}
	if doneChan != nil {
		<-doneChan
	}

	if device != nil {
		// (b) 尽力关闭闪光灯，失败不阻塞设备释放
		ctx, cancel := context.WithTimeout(context.Background(), s.config.FlashOffTimeout)
		_ = device.SetFlash(ctx, false)
		cancel()

		// (c) 释放摄像头设备句柄
		_ = device.Release()
	}
}

// fail 转入Error状态并记录原因
func (s *Session) fail(err error) error {
	s.mu.Lock()
	s.state = StateError
	s.lastErr = err
	s.mu.Unlock()
	return err
}

// setState 更新会话状态
func (s *Session) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// frameLoop 帧循环：单goroutine按帧到达顺序消费，
// 缓冲区修改和周期性重计算都在循环内同步发生，绝不并发
func (s *Session) frameLoop(frames <-chan core.Frame, stopChan, doneChan chan struct{}) {
	defer close(doneChan)

	for {
		select {
		case <-stopChan:
			return
		case frame, ok := <-frames:
			if !ok {
				// 设备侧关闭了帧通道
				return
			}
			s.handleFrame(frame)
		}
	}
}

// handleFrame 处理单帧
// 轻路径（像素采样+入缓冲）每帧执行；重计算按RecomputeEvery抽取，
// 以保持平均每帧开销远低于帧间隔
func (s *Session) handleFrame(frame core.Frame) {
	sample := MeanGreen(frame, s.config.ROIFraction, s.config.PixelStride)
	s.buffer.Push(sample)
	s.frameCount++

	if s.frameCount%s.ppgConfig.RecomputeEvery != 0 {
		return
	}

	// 重计算总是基于缓冲区当前的时间顺序快照
	reading, justStabilized := s.engine.Process(s.buffer.Snapshot())

	// 非阻塞发送：消费者跟不上时丢弃本次读数
	select {
	case s.readings <- reading:
	default:
	}

	// 稳定状态的进入边沿只通知一次
	if justStabilized {
		select {
		case s.detected <- reading.BPM:
		default:
		}
	}
}
