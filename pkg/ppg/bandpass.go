// Package ppg 带通滤波模块
package ppg

// Bandpass 从去趋势后的信号中分离生理上可信的心率频带
//
// 实现为两级级联滑动平均而不是经典IIR/FIR设计，
// 用滤波锐度换取短窗口下的实现简单性和数值稳定性：
// 先用窗口约为 sampleRate/highHz 的滑动平均做低通（近似截止于highHz），
// 再对低通结果计算窗口约为 sampleRate/lowHz 的更宽滑动平均作为其甚低频成分的估计，
// 并从低通信号中减去。结果保留 [lowHz, highHz] 内的能量，
// 同时抑制更快的噪声和更慢的基线漂移
func Bandpass(signal []float64, sampleRate, lowHz, highHz float64) []float64 {
	if len(signal) == 0 {
		return nil
	}

	// 低通窗口：近似截止于highHz，至少3
	lowpassWindow := int(sampleRate / highHz)
	if lowpassWindow < 3 {
		lowpassWindow = 3
	}

	// 基线窗口：近似截止于lowHz，至少5
	baselineWindow := int(sampleRate / lowHz)
	if baselineWindow < 5 {
		baselineWindow = 5
	}

	lowpassed := Smooth(signal, lowpassWindow)
	baseline := Smooth(lowpassed, baselineWindow)

	result := make([]float64, len(signal))
	for i := range lowpassed {
		result[i] = lowpassed[i] - baseline[i]
	}
	return result
}
