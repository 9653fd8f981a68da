// Package session 帧采样模块
package session

import "github.com/Kevin-Rudy/gopulse/pkg/core"

// MeanGreen 将一帧图像归约为单个平均亮度浮点值
//
// 只读取绿色通道：血液对绿光的吸收变化最明显，是PPG的常用选择。
// 为控制每帧开销，只在画面中央的感兴趣区域内按步长稀疏抽样
// （stride=4时两轴各取1/4，即1/16的像素）
func MeanGreen(frame core.Frame, roiFraction float64, stride int) float64 {
	if frame.Width <= 0 || frame.Height <= 0 || len(frame.Pixels) < frame.Width*frame.Height*4 {
		return 0
	}
	if stride < 1 {
		stride = 1
	}
	if roiFraction <= 0 || roiFraction > 1 {
		roiFraction = 1
	}

	// 中心感兴趣区域边界
	marginX := int(float64(frame.Width) * (1 - roiFraction) / 2)
	marginY := int(float64(frame.Height) * (1 - roiFraction) / 2)
	x0, x1 := marginX, frame.Width-marginX
	y0, y1 := marginY, frame.Height-marginY

	var sum float64
	var count int

	for y := y0; y < y1; y += stride {
		rowBase := y * frame.Width
		for x := x0; x < x1; x += stride {
			// RGBA交错排列，绿色通道偏移+1
			sum += float64(frame.Pixels[(rowBase+x)*4+1])
			count++
		}
	}

	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
