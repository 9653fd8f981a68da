// Package session - 平台能力探测
// 在任何测量开始前判断当前设备/运行环境是否可能支持闪光灯照明的PPG测量
package session

import (
	"context"
	"fmt"

	"github.com/Kevin-Rudy/gopulse/pkg/core"
)

// platformInfo 定义平台事实接口
// 每个平台实现此接口来提供设备形态和闪光灯支持信息
type platformInfo interface {
	// isHandheldDevice 判断是否为手持设备
	// 桌面/笔记本摄像头结构上没有后置闪光灯
	isHandheldDevice() bool

	// supportsFlashControl 判断平台是否支持程序化闪光灯控制
	supportsFlashControl() bool
}

// Prober 摄像头能力探测器
// 探测是幂等的，除短暂的摄像头获取外没有副作用
type Prober struct {
	control  core.DeviceControl
	platform platformInfo
}

// NewProber 创建使用当前平台事实的探测器
func NewProber(control core.DeviceControl) *Prober {
	return newProberWith(control, getPlatformInfo())
}

// newProberWith 创建使用指定平台事实的探测器，供测试注入
func newProberWith(control core.DeviceControl, platform platformInfo) *Prober {
	return &Prober{
		control:  control,
		platform: platform,
	}
}

// Probe 执行一次能力探测
// 绝不返回错误：任何底层获取失败都折叠为IsSupported=false加可读原因
// 策略按顺序：平台排除 → 设备形态排除 → 短暂获取查询闪光灯 → 获取失败
func (p *Prober) Probe(ctx context.Context) core.CameraCapabilities {
	caps := core.CameraCapabilities{
		IsHandheldDevice:    p.platform.isHandheldDevice(),
		IsSupportedPlatform: p.platform.supportsFlashControl(),
	}

	// (a) 平台没有程序化闪光灯控制能力，直接判定不支持
	if !caps.IsSupportedPlatform {
		caps.UnsupportedReason = "当前平台不支持程序化闪光灯控制"
		return caps
	}

	// (b) 非手持设备结构上缺少后置闪光灯
	if !caps.IsHandheldDevice {
		caps.UnsupportedReason = "非手持设备没有可用的后置闪光灯"
		return caps
	}

	// (c) 短暂获取摄像头，只为查询活动视频轨道是否暴露闪光灯控制
	// 无论结果如何都立即释放
	device, err := p.control.Acquire(ctx, core.FacingBack)
	if err != nil {
		// (d) 获取本身失败（权限被拒绝、没有摄像头）
		caps.UnsupportedReason = fmt.Sprintf("无法获取摄像头: %v", err)
		return caps
	}

	caps.HasFlashControl = device.HasFlash()
	_ = device.Release()

	if !caps.HasFlashControl {
		caps.UnsupportedReason = "摄像头不支持闪光灯/手电筒控制"
		return caps
	}

	caps.IsSupported = true
	return caps
}
