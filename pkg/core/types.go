// Package core 定义了脉搏测量框架的核心接口和数据结构
// 这些接口保证了DSP核心与具体宿主环境（摄像头、闪光灯、UI）的完全解耦
package core

import (
	"context"
	"time"
)

// CameraFacing 摄像头朝向
type CameraFacing string

const (
	FacingBack  CameraFacing = "back"  // 后置摄像头（带闪光灯的一侧）
	FacingFront CameraFacing = "front" // 前置摄像头
)

// Frame 表示一帧摄像头图像
// 像素为RGBA交错排列，按行优先存储，len(Pixels) == Width*Height*4
type Frame struct {
	Width  int       // 图像宽度（像素）
	Height int       // 图像高度（像素）
	Pixels []byte    // RGBA像素数据
	Time   time.Time // 帧到达时间
}

// CameraCapabilities 表示一次能力探测的结果
// 探测完成后不可变；每次能力检查都重新计算
type CameraCapabilities struct {
	HasFlashControl     bool   // 活动视频轨道是否暴露闪光灯/手电筒控制
	IsHandheldDevice    bool   // 是否为手持设备（桌面摄像头结构上没有后置闪光灯）
	IsSupportedPlatform bool   // 平台是否支持程序化闪光灯控制
	IsSupported         bool   // 以上条件的综合判定
	UnsupportedReason   string // 不支持时的人类可读原因，支持时为空字符串
}

// Reading 表示一次周期性重算产生的可观测输出
// 这是信号缓冲区加上最近一次BPM/稳定性计数的纯投影，不是权威状态
type Reading struct {
	BPM            int       // 心率（次/分钟）。0表示尚无可信读数
	SignalQuality  int       // 信号质量评分，0..100
	IsStable       bool      // 连续估计是否已进入稳定状态
	RawSignal      []float64 // 最近的原始亮度样本（仅用于可视化）
	FilteredSignal []float64 // 同一窗口的带通滤波版本
	Timestamp      time.Time // 本次重算的时间
}

// HasBPM 判断本次读数是否包含有效的BPM值
func (r Reading) HasBPM() bool {
	return r.BPM > 0
}

// Device 表示一个已获取的摄像头设备句柄
// 设备及其闪光灯由活动的测量会话独占持有
type Device interface {
	// Frames 返回只读帧通道，宿主按显示帧率（目标30Hz）逐帧发送
	// 设备释放后通道关闭
	Frames() <-chan Frame

	// HasFlash 查询活动视频轨道是否暴露闪光灯/手电筒控制
	HasFlash() bool

	// SetFlash 开关闪光灯。异步操作，可能独立失败
	SetFlash(ctx context.Context, on bool) error

	// Release 释放设备句柄。幂等，重复调用安全
	Release() error
}

// DeviceControl 定义了宿主环境提供的设备获取能力
type DeviceControl interface {
	// Acquire 获取指定朝向的摄像头设备
	// 权限被拒绝或设备被占用时返回错误
	Acquire(ctx context.Context, facing CameraFacing) (Device, error)
}

// ReadingSource 定义了测量结果数据源的标准接口
// 任何测量会话实现都应该实现这个接口，供UI层订阅
type ReadingSource interface {
	// Readings 返回只读通道，按重算节奏持续发送Reading
	// 用于UI实时渲染
	Readings() <-chan Reading

	// Detected 返回只读通道，在isStable首次变为true时发送一次确认的BPM
	// 边沿触发：稳定丢失并重新获得前不会重复发送
	Detected() <-chan int

	// Start 启动测量会话
	// 能力检查或初始化失败时返回错误
	Start(ctx context.Context) error

	// Stop 停止测量并清理资源
	// 幂等，可从任意状态（包括错误状态）安全调用
	Stop()
}
