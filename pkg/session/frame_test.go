package session

import (
	"math"
	"testing"

	"github.com/Kevin-Rudy/gopulse/pkg/core"
)

// makeTestFrame 生成绿色通道为指定函数值的测试帧
func makeTestFrame(width, height int, green func(x, y int) byte) core.Frame {
	pixels := make([]byte, width*height*4)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := (y*width + x) * 4
			pixels[idx] = 10
			pixels[idx+1] = green(x, y)
			pixels[idx+2] = 20
			pixels[idx+3] = 255
		}
	}
	return core.Frame{Width: width, Height: height, Pixels: pixels}
}

// TestMeanGreenUniform 测试均匀绿色帧的平均亮度
func TestMeanGreenUniform(t *testing.T) {
	frame := makeTestFrame(16, 16, func(x, y int) byte { return 200 })

	mean := MeanGreen(frame, 0.5, 4)
	if math.Abs(mean-200) > 1e-9 {
		t.Errorf("Expected mean 200, got %v", mean)
	}
}

// TestMeanGreenCentralROI 测试只采样中心感兴趣区域
func TestMeanGreenCentralROI(t *testing.T) {
	// 中心一半区域为180，边缘为0
	frame := makeTestFrame(32, 32, func(x, y int) byte {
		if x >= 8 && x < 24 && y >= 8 && y < 24 {
			return 180
		}
		return 0
	})

	mean := MeanGreen(frame, 0.5, 1)
	if math.Abs(mean-180) > 1e-9 {
		t.Errorf("Expected ROI-only mean 180, got %v", mean)
	}
}

// TestMeanGreenIgnoresOtherChannels 测试只读取绿色通道
func TestMeanGreenIgnoresOtherChannels(t *testing.T) {
	frame := makeTestFrame(8, 8, func(x, y int) byte { return 100 })
	// 红蓝通道在makeTestFrame中是10和20，结果应该只反映绿色

	mean := MeanGreen(frame, 1.0, 1)
	if math.Abs(mean-100) > 1e-9 {
		t.Errorf("Expected green-only mean 100, got %v", mean)
	}
}

// TestMeanGreenInvalidFrame 测试异常帧返回0而不是越界
func TestMeanGreenInvalidFrame(t *testing.T) {
	empty := core.Frame{}
	if MeanGreen(empty, 0.5, 4) != 0 {
		t.Error("Expected 0 for empty frame")
	}

	truncated := core.Frame{Width: 8, Height: 8, Pixels: make([]byte, 10)}
	if MeanGreen(truncated, 0.5, 4) != 0 {
		t.Error("Expected 0 for truncated pixel buffer")
	}
}

// TestMeanGreenStride 测试稀疏抽样仍给出代表性均值
func TestMeanGreenStride(t *testing.T) {
	frame := makeTestFrame(64, 48, func(x, y int) byte { return 150 })

	dense := MeanGreen(frame, 0.5, 1)
	sparse := MeanGreen(frame, 0.5, 4)

	if math.Abs(dense-sparse) > 1e-9 {
		t.Errorf("Expected identical mean for uniform frame, dense %v vs sparse %v", dense, sparse)
	}
}
