package ppg

import (
	"math"
	"testing"
)

// TestDetrendLinearity 测试去趋势线性性质：常数加纯线性斜坡去趋势后应接近全零
func TestDetrendLinearity(t *testing.T) {
	signal := make([]float64, 100)
	for i := range signal {
		signal[i] = 5.0 + 0.3*float64(i)
	}

	detrended := Detrend(signal)

	if len(detrended) != len(signal) {
		t.Fatalf("Expected length %d, got %d", len(signal), len(detrended))
	}

	for i, v := range detrended {
		if math.Abs(v) > 1e-9 {
			t.Fatalf("Expected detrended[%d] to be ~0, got %v", i, v)
		}
	}
}

// TestDetrendPreservesOscillation 测试去趋势保留叠加在斜坡上的振荡成分
func TestDetrendPreservesOscillation(t *testing.T) {
	n := 300
	signal := make([]float64, n)
	for i := range signal {
		osc := math.Sin(2 * math.Pi * 1.25 * float64(i) / 30.0)
		signal[i] = 100.0 - 0.05*float64(i) + osc
	}

	detrended := Detrend(signal)

	// 去趋势后振荡能量应该基本保留
	var energy float64
	for _, v := range detrended {
		energy += v * v
	}
	rms := math.Sqrt(energy / float64(n))

	// 纯正弦的RMS约为0.707
	if rms < 0.5 || rms > 1.0 {
		t.Errorf("Expected oscillation RMS ~0.707 after detrend, got %v", rms)
	}
}

// TestDetrendShortSignal 测试过短信号原样返回
func TestDetrendShortSignal(t *testing.T) {
	single := Detrend([]float64{3.0})
	if len(single) != 1 || single[0] != 3.0 {
		t.Errorf("Expected single-sample signal unchanged, got %v", single)
	}

	empty := Detrend(nil)
	if len(empty) != 0 {
		t.Errorf("Expected empty result for nil input, got %v", empty)
	}
}

// TestSmoothConstant 测试常数信号平滑后不变（包括边界）
func TestSmoothConstant(t *testing.T) {
	signal := make([]float64, 50)
	for i := range signal {
		signal[i] = 7.0
	}

	smoothed := Smooth(signal, 5)

	for i, v := range smoothed {
		if math.Abs(v-7.0) > 1e-12 {
			t.Fatalf("Expected smoothed[%d]=7.0, got %v", i, v)
		}
	}
}

// TestSmoothEdgeShrink 测试边界处窗口收缩而不是回绕或补零
func TestSmoothEdgeShrink(t *testing.T) {
	signal := []float64{1, 2, 3, 4, 5}
	smoothed := Smooth(signal, 3)

	// 第一个点的窗口收缩为[0,1]：(1+2)/2
	if math.Abs(smoothed[0]-1.5) > 1e-12 {
		t.Errorf("Expected smoothed[0]=1.5, got %v", smoothed[0])
	}

	// 中间点使用完整窗口：(1+2+3)/3
	if math.Abs(smoothed[1]-2.0) > 1e-12 {
		t.Errorf("Expected smoothed[1]=2.0, got %v", smoothed[1])
	}

	// 最后一个点的窗口收缩为[3,4]：(4+5)/2
	if math.Abs(smoothed[4]-4.5) > 1e-12 {
		t.Errorf("Expected smoothed[4]=4.5, got %v", smoothed[4])
	}
}

// TestSmoothReducesNoise 测试平滑降低高频噪声的幅度
func TestSmoothReducesNoise(t *testing.T) {
	// 交替的±1信号是最高频成分
	signal := make([]float64, 60)
	for i := range signal {
		if i%2 == 0 {
			signal[i] = 1.0
		} else {
			signal[i] = -1.0
		}
	}

	smoothed := Smooth(signal, 5)

	var maxAbs float64
	for _, v := range smoothed[5 : len(smoothed)-5] {
		if math.Abs(v) > maxAbs {
			maxAbs = math.Abs(v)
		}
	}

	if maxAbs > 0.5 {
		t.Errorf("Expected smoothing to attenuate alternating signal below 0.5, got %v", maxAbs)
	}
}
