// Package ppg BPM状态机模块
package ppg

import (
	"math"
	"time"

	"github.com/Kevin-Rudy/gopulse/pkg/core"
)

// State 表示BPM引擎一次重算的判定结果
type State int

const (
	StateInsufficient State = iota // 样本数不足，未计算频谱
	StateLowQuality                // 样本足够但方差低于质量阈值
	StateOutOfRange                // 找到了主频但换算的BPM超出有效范围
	StateCandidate                 // BPM有效且已评分，但尚未稳定
	StateStable                    // 连续估计已进入稳定状态
)

// String 返回状态的可读名称
func (s State) String() string {
	switch s {
	case StateInsufficient:
		return "采集中"
	case StateLowQuality:
		return "信号弱"
	case StateOutOfRange:
		return "超范围"
	case StateCandidate:
		return "测量中"
	case StateStable:
		return "已稳定"
	default:
		return "未知"
	}
}

// Engine BPM估计引擎
// 将主频换算为BPM、校验范围、为信号质量评分，
// 并跟踪连续估计间的稳定性，稳定后才认为读数可确认
type Engine struct {
	config    *Config
	estimator FrequencyEstimator

	// 会话状态：每次会话开始时通过Reset归零
	lastBPM   int   // 上一次的有效BPM估计，0表示尚无
	stableRun int   // 连续处于容差内的估计次数
	wasStable bool  // 上一次重算是否处于稳定状态，用于边沿触发
	state     State // 最近一次重算的判定结果
}

// NewEngine 创建BPM引擎
// estimator为nil时使用配置对应的SpectrumAnalyzer
func NewEngine(config *Config, estimator FrequencyEstimator) *Engine {
	if estimator == nil {
		estimator = NewSpectrumAnalyzer(config)
	}
	return &Engine{
		config:    config,
		estimator: estimator,
	}
}

// Reset 清零会话状态，新测量从干净状态开始
func (e *Engine) Reset() {
	e.lastBPM = 0
	e.stableRun = 0
	e.wasStable = false
	e.state = StateInsufficient
}

// State 返回最近一次重算的判定结果
func (e *Engine) State() State {
	return e.state
}

// Process 对缓冲区快照做一次重算
// 返回本次读数，以及是否刚刚进入稳定状态（边沿触发标志，
// 稳定丢失并重新获得前只为true一次）
func (e *Engine) Process(snapshot []float64) (core.Reading, bool) {
	now := time.Now()

	// 样本不足时廉价短路，绝不计算频谱
	if len(snapshot) < e.config.StabilizationWindow {
		e.state = StateInsufficient
		return core.Reading{
			SignalQuality: 0,
			RawSignal:     tail(snapshot, e.config.DisplayWindow),
			Timestamp:     now,
		}, false
	}

	// 1. 去趋势
	detrended := Detrend(snapshot)

	// 2. 方差低于阈值判定为低质量（手指未贴紧、环境光干扰等）
	variance := populationVariance(detrended)
	if variance < e.config.QualityThreshold {
		e.resetStability()
		e.state = StateLowQuality

		quality := int(math.Round(50 * variance / e.config.QualityThreshold))
		return core.Reading{
			SignalQuality: quality,
			RawSignal:     tail(snapshot, e.config.DisplayWindow),
			Timestamp:     now,
		}, false
	}

	// 3. 带通滤波后找主频，换算BPM
	filtered := Bandpass(detrended, e.config.SampleRate, e.config.MinFrequency, e.config.MaxFrequency)
	freq, magnitude := e.estimator.DominantFrequency(filtered)
	bpm := int(math.Round(freq * 60))

	// 4. BPM超出有效范围：读数作废，质量固定为30
	if bpm < e.config.MinBPM || bpm > e.config.MaxBPM {
		e.resetStability()
		e.state = StateOutOfRange

		return core.Reading{
			SignalQuality:  30,
			RawSignal:      tail(snapshot, e.config.DisplayWindow),
			FilteredSignal: tail(filtered, e.config.DisplayWindow),
			Timestamp:      now,
		}, false
	}

	// 5. 质量评分：幅度与方差之比缩放到[50, 100]
	// 公式形状沿用启发式的 magnitude/(variance*N)*200 并截断，
	// 绝对刻度没有生理学含义，只用于相对比较
	score := magnitude / (variance * float64(len(snapshot))) * 200
	if score > 50 {
		score = 50
	}
	if score < 0 {
		score = 0
	}
	quality := 50 + int(math.Round(score))

	// 稳定性跟踪：与上一次估计比较
	if e.lastBPM == 0 {
		e.stableRun = 1
	} else if abs(bpm-e.lastBPM) <= e.config.StableTolerance {
		e.stableRun++
	} else {
		e.stableRun = 0
	}
	e.lastBPM = bpm

	isStable := e.stableRun >= e.config.StableRunTarget
	justStabilized := isStable && !e.wasStable
	e.wasStable = isStable

	if isStable {
		e.state = StateStable
	} else {
		e.state = StateCandidate
	}

	return core.Reading{
		BPM:            bpm,
		SignalQuality:  quality,
		IsStable:       isStable,
		RawSignal:      tail(snapshot, e.config.DisplayWindow),
		FilteredSignal: tail(filtered, e.config.DisplayWindow),
		Timestamp:      now,
	}, justStabilized
}

// resetStability 稳定性计数清零
func (e *Engine) resetStability() {
	e.stableRun = 0
	e.wasStable = false
}

// populationVariance 计算总体方差
func populationVariance(signal []float64) float64 {
	n := len(signal)
	if n == 0 {
		return 0
	}

	var sum float64
	for _, v := range signal {
		sum += v
	}
	mean := sum / float64(n)

	var sq float64
	for _, v := range signal {
		d := v - mean
		sq += d * d
	}
	return sq / float64(n)
}

// tail 返回信号末尾最多n个样本的拷贝
func tail(signal []float64, n int) []float64 {
	if len(signal) > n {
		signal = signal[len(signal)-n:]
	}
	result := make([]float64, len(signal))
	copy(result, signal)
	return result
}

// abs 返回整数的绝对值
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
