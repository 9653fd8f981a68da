// Package ppg 频谱估计模块
package ppg

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// FrequencyEstimator 定义了主频估计器的接口
// 抽出接口使BpmEngine可以注入测试替身做调用计数
type FrequencyEstimator interface {
	// DominantFrequency 返回限定频带内幅度最大的频率分量及其幅度
	// 信号为空时返回(0, 0)
	DominantFrequency(signal []float64) (freq, magnitude float64)
}

// SpectrumAnalyzer 限带离散频谱分析器
// 将输入补零到下一个2的幂长度并加汉宁窗以减少频谱泄漏，
// 然后只在[minFreq, maxFreq]对应的频率bin上求值
type SpectrumAnalyzer struct {
	sampleRate float64
	minFreq    float64
	maxFreq    float64
	useFFT     bool
}

// NewSpectrumAnalyzer 根据配置创建频谱分析器
func NewSpectrumAnalyzer(config *Config) *SpectrumAnalyzer {
	return &SpectrumAnalyzer{
		sampleRate: config.SampleRate,
		minFreq:    config.MinFrequency,
		maxFreq:    config.MaxFrequency,
		useFFT:     config.UseFFT,
	}
}

// DominantFrequency 实现FrequencyEstimator接口
func (sa *SpectrumAnalyzer) DominantFrequency(signal []float64) (float64, float64) {
	n := len(signal)
	if n == 0 {
		return 0, 0
	}

	// 1. 加汉宁窗减少频谱泄漏
	hann := window.Hann(n)
	windowed := make([]float64, n)
	for i, v := range signal {
		windowed[i] = v * hann[i]
	}

	// 2. 补零到下一个2的幂长度
	padded := zeroPad(windowed)
	binWidth := sa.sampleRate / float64(len(padded))

	// 3. 计算搜索bin范围，限制在频带内以约束计算量
	startBin := int(sa.minFreq / binWidth)
	if startBin < 1 {
		startBin = 1 // 跳过直流分量
	}
	endBin := int(sa.maxFreq / binWidth)
	if endBin > len(padded)/2 {
		endBin = len(padded) / 2
	}
	if endBin < startBin {
		return 0, 0
	}

	// 4. 在限定bin上求幅度谱并找峰值
	var mags []float64
	if sa.useFFT {
		mags = sa.binMagnitudesFFT(padded, startBin, endBin)
	} else {
		mags = sa.binMagnitudesDFT(padded, startBin, endBin)
	}

	maxMag := 0.0
	maxBin := startBin
	for i, mag := range mags {
		if mag > maxMag {
			maxMag = mag
			maxBin = startBin + i
		}
	}

	return float64(maxBin) * binWidth, maxMag
}

// binMagnitudesDFT 限带直接DFT，O(N·K)
// 窗口很短（不超过几百个样本）且bin范围受限，代价可接受
func (sa *SpectrumAnalyzer) binMagnitudesDFT(padded []float64, startBin, endBin int) []float64 {
	n := len(padded)
	mags := make([]float64, endBin-startBin+1)

	for k := startBin; k <= endBin; k++ {
		var re, im float64
		omega := 2 * math.Pi * float64(k) / float64(n)
		for i, v := range padded {
			angle := omega * float64(i)
			re += v * math.Cos(angle)
			im -= v * math.Sin(angle)
		}
		mags[k-startBin] = math.Hypot(re, im)
	}
	return mags
}

// binMagnitudesFFT 完整FFT后截取同一bin范围
// 与直接DFT路径的外部契约完全一致，仅为性能替代
func (sa *SpectrumAnalyzer) binMagnitudesFFT(padded []float64, startBin, endBin int) []float64 {
	spectrum := fft.FFTReal(padded)

	mags := make([]float64, endBin-startBin+1)
	for k := startBin; k <= endBin; k++ {
		mags[k-startBin] = cmplx.Abs(spectrum[k])
	}
	return mags
}

// zeroPad 补零到下一个2的幂长度
func zeroPad(signal []float64) []float64 {
	n := 1
	for n < len(signal) {
		n <<= 1
	}

	if n == len(signal) {
		return signal
	}

	padded := make([]float64, n)
	copy(padded, signal)
	return padded
}
