package ppg

import (
	"testing"
)

// scriptedEstimator 用于测试的频率估计器替身
// 记录调用次数并按脚本依次返回预设频率
type scriptedEstimator struct {
	calls int
	freqs []float64
	mag   float64
}

func (s *scriptedEstimator) DominantFrequency(signal []float64) (float64, float64) {
	s.calls++
	freq := s.freqs[0]
	if len(s.freqs) > 1 {
		s.freqs = s.freqs[1:]
	}
	return freq, s.mag
}

// validSnapshot 生成方差足够的合成快照
func validSnapshot(n int) []float64 {
	return makeSine(1.25, 30, n)
}

// TestEngineInsufficientShortCircuit 测试样本不足时的廉价短路：不调用频率估计器
func TestEngineInsufficientShortCircuit(t *testing.T) {
	estimator := &scriptedEstimator{freqs: []float64{1.25}, mag: 100}
	engine := NewEngine(DefaultConfig(), estimator)

	reading, justStabilized := engine.Process(validSnapshot(50))

	if reading.HasBPM() {
		t.Errorf("Expected no BPM with insufficient data, got %d", reading.BPM)
	}
	if reading.SignalQuality != 0 {
		t.Errorf("Expected quality 0, got %d", reading.SignalQuality)
	}
	if justStabilized {
		t.Error("Expected no stabilization event")
	}
	if estimator.calls != 0 {
		t.Errorf("Expected frequency estimator not invoked, got %d calls", estimator.calls)
	}
	if engine.State() != StateInsufficient {
		t.Errorf("Expected StateInsufficient, got %v", engine.State())
	}
}

// TestEngineLowQuality 测试方差低于阈值的低质量判定
func TestEngineLowQuality(t *testing.T) {
	estimator := &scriptedEstimator{freqs: []float64{1.25}, mag: 100}
	engine := NewEngine(DefaultConfig(), estimator)

	// 常数信号：去趋势后方差为0
	flat := make([]float64, 120)
	for i := range flat {
		flat[i] = 128.0
	}

	reading, _ := engine.Process(flat)

	if reading.HasBPM() {
		t.Errorf("Expected no BPM for low quality signal, got %d", reading.BPM)
	}
	if reading.SignalQuality > 50 {
		t.Errorf("Expected quality <= 50 for low quality signal, got %d", reading.SignalQuality)
	}
	if estimator.calls != 0 {
		t.Errorf("Expected frequency estimator not invoked for low quality signal, got %d calls", estimator.calls)
	}
	if engine.State() != StateLowQuality {
		t.Errorf("Expected StateLowQuality, got %v", engine.State())
	}
}

// TestEngineRangeValidation 测试BPM范围校验：范围外的主频绝不产生非零BPM
func TestEngineRangeValidation(t *testing.T) {
	cases := []struct {
		name string
		freq float64
	}{
		{"too slow", 0.6},  // 36 BPM < 42
		{"too fast", 4.2},  // 252 BPM > 240
		{"zero", 0},        // 无主频
	}

	for _, tc := range cases {
		estimator := &scriptedEstimator{freqs: []float64{tc.freq}, mag: 100}
		engine := NewEngine(DefaultConfig(), estimator)

		reading, justStabilized := engine.Process(validSnapshot(120))

		if reading.HasBPM() {
			t.Errorf("%s: expected no BPM, got %d", tc.name, reading.BPM)
		}
		if reading.SignalQuality != 30 {
			t.Errorf("%s: expected quality 30, got %d", tc.name, reading.SignalQuality)
		}
		if justStabilized {
			t.Errorf("%s: expected no stabilization event", tc.name)
		}
		if engine.State() != StateOutOfRange {
			t.Errorf("%s: expected StateOutOfRange, got %v", tc.name, engine.State())
		}
	}
}

// TestEngineStabilityEdgeTriggering 测试稳定性的边沿触发语义
// 72、74、70互相在5BPM容差内：第三次才稳定且事件只发一次；
// 随后的95打破稳定，计数归零，事件不重发；重新一致后事件再发一次
func TestEngineStabilityEdgeTriggering(t *testing.T) {
	bpmToFreq := func(bpm float64) float64 { return bpm / 60.0 }
	estimator := &scriptedEstimator{
		freqs: []float64{
			bpmToFreq(72), bpmToFreq(74), bpmToFreq(70), bpmToFreq(70),
			bpmToFreq(95), bpmToFreq(95), bpmToFreq(95), bpmToFreq(95),
		},
		mag: 100,
	}
	engine := NewEngine(DefaultConfig(), estimator)
	snapshot := validSnapshot(120)

	type step struct {
		wantBPM    int
		wantStable bool
		wantEvent  bool
	}
	steps := []step{
		{72, false, false}, // 第一次估计，稳定计数1
		{74, false, false}, // 容差内，计数2
		{70, true, true},   // 计数3，进入稳定，事件触发一次
		{70, true, false},  // 保持稳定，事件不重发
		{95, false, false}, // 超出容差，计数归零，稳定丢失
		{95, false, false}, // 重新开始计数
		{95, false, false},
		{95, true, true},   // 重新稳定，事件再次触发
	}

	for i, want := range steps {
		reading, justStabilized := engine.Process(snapshot)

		if reading.BPM != want.wantBPM {
			t.Errorf("Step %d: expected BPM %d, got %d", i, want.wantBPM, reading.BPM)
		}
		if reading.IsStable != want.wantStable {
			t.Errorf("Step %d: expected IsStable=%v, got %v", i, want.wantStable, reading.IsStable)
		}
		if justStabilized != want.wantEvent {
			t.Errorf("Step %d: expected event=%v, got %v", i, want.wantEvent, justStabilized)
		}
	}
}

// TestEngineKnownFrequencyRoundTrip 测试已知频率往返：
// 75BPM（1.25Hz）正弦经过完整的去趋势→带通→主频链路，BPM误差应在±2内且质量>=50
func TestEngineKnownFrequencyRoundTrip(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil)

	reading, _ := engine.Process(makeSine(1.25, 30, 300))

	if !reading.HasBPM() {
		t.Fatal("Expected a valid BPM for clean 75 BPM sine")
	}
	if reading.BPM < 73 || reading.BPM > 77 {
		t.Errorf("Expected BPM within 75±2, got %d", reading.BPM)
	}
	if reading.SignalQuality < 50 {
		t.Errorf("Expected quality >= 50, got %d", reading.SignalQuality)
	}
	if len(reading.RawSignal) != DefaultConfig().DisplayWindow {
		t.Errorf("Expected %d raw samples for display, got %d",
			DefaultConfig().DisplayWindow, len(reading.RawSignal))
	}
	if len(reading.FilteredSignal) != DefaultConfig().DisplayWindow {
		t.Errorf("Expected %d filtered samples for display, got %d",
			DefaultConfig().DisplayWindow, len(reading.FilteredSignal))
	}
}

// TestEngineFFTRoundTrip 测试FFT路径下的同一往返性质
func TestEngineFFTRoundTrip(t *testing.T) {
	config := DefaultConfig()
	config.UseFFT = true
	engine := NewEngine(config, nil)

	reading, _ := engine.Process(makeSine(1.25, 30, 300))

	if reading.BPM < 73 || reading.BPM > 77 {
		t.Errorf("Expected BPM within 75±2 via FFT path, got %d", reading.BPM)
	}
}

// TestEngineQualityResetOnLowQuality 测试低质量读数重置稳定计数
func TestEngineQualityResetOnLowQuality(t *testing.T) {
	estimator := &scriptedEstimator{freqs: []float64{1.2}, mag: 100}
	engine := NewEngine(DefaultConfig(), estimator)
	snapshot := validSnapshot(120)

	// 两次一致的有效估计
	engine.Process(snapshot)
	engine.Process(snapshot)

	// 插入一次低质量读数
	flat := make([]float64, 120)
	engine.Process(flat)

	// 之后需要重新积累完整的稳定计数
	_, just1 := engine.Process(snapshot)
	_, just2 := engine.Process(snapshot)
	reading, just3 := engine.Process(snapshot)

	if just1 || just2 {
		t.Error("Expected no stabilization before full run is re-accumulated")
	}
	if !just3 || !reading.IsStable {
		t.Error("Expected stability re-acquired on third consistent estimate after reset")
	}
}

// TestEngineReset 测试Reset后从干净状态开始
func TestEngineReset(t *testing.T) {
	estimator := &scriptedEstimator{freqs: []float64{1.2}, mag: 100}
	engine := NewEngine(DefaultConfig(), estimator)
	snapshot := validSnapshot(120)

	engine.Process(snapshot)
	engine.Process(snapshot)
	engine.Reset()

	if engine.State() != StateInsufficient {
		t.Errorf("Expected StateInsufficient after reset, got %v", engine.State())
	}

	// Reset后第一次有效估计重新从计数1开始
	reading, justStabilized := engine.Process(snapshot)
	if reading.IsStable || justStabilized {
		t.Error("Expected no stability immediately after reset")
	}
}
