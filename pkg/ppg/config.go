// Package ppg 配置定义
package ppg

import "errors"

// Config ppg信号处理链的配置结构
type Config struct {
	SampleRate          float64 // 采样率(Hz)，等于目标帧率
	BufferSize          int     // 信号缓冲区容量（约10秒数据）
	StabilizationWindow int     // 开始计算频谱所需的最少样本数（约3秒）
	RecomputeEvery      int     // 每多少帧触发一次重算
	MinBPM              int     // 有效BPM下限
	MaxBPM              int     // 有效BPM上限
	MinFrequency        float64 // 频谱搜索下限(Hz)
	MaxFrequency        float64 // 频谱搜索上限(Hz)
	QualityThreshold    float64 // 去趋势信号的最小方差，低于此值判定为低质量
	StableTolerance     int     // 相邻BPM估计的稳定容差
	StableRunTarget     int     // 判定稳定所需的连续一致估计次数
	DisplayWindow       int     // Reading中用于可视化的样本数
	UseFFT              bool    // true使用FFT路径，false使用限带直接DFT
}

// DefaultConfig 返回默认配置
// 默认频带0.7-4.0Hz对应42-240BPM，与BPM有效范围一致
func DefaultConfig() *Config {
	return &Config{
		SampleRate:          30,   // 30Hz目标帧率
		BufferSize:          300,  // 约10秒
		StabilizationWindow: 90,   // 约3秒
		RecomputeEvery:      10,   // 每10帧重算一次
		MinBPM:              42,
		MaxBPM:              240,
		MinFrequency:        0.7,
		MaxFrequency:        4.0,
		QualityThreshold:    0.15,
		StableTolerance:     5,
		StableRunTarget:     3,
		DisplayWindow:       60,
		UseFFT:              false, // 默认保持限带直接DFT
	}
}

// Validate 验证配置的合理性
func (c *Config) Validate() error {
	if c.SampleRate <= 0 {
		return errors.New("采样率必须大于0")
	}

	if c.BufferSize <= 0 {
		return errors.New("缓冲区容量必须大于0")
	}

	if c.StabilizationWindow <= 0 {
		return errors.New("稳定化窗口必须大于0")
	}

	if c.StabilizationWindow > c.BufferSize {
		return errors.New("稳定化窗口不能超过缓冲区容量")
	}

	if c.RecomputeEvery <= 0 {
		return errors.New("重算间隔必须大于0")
	}

	if c.MinFrequency <= 0 {
		return errors.New("频谱搜索下限必须大于0")
	}

	if c.MaxFrequency <= c.MinFrequency {
		return errors.New("频谱搜索上限必须大于下限")
	}

	if c.MaxFrequency >= c.SampleRate/2 {
		return errors.New("频谱搜索上限不能达到奈奎斯特频率")
	}

	if c.MinBPM <= 0 || c.MaxBPM <= c.MinBPM {
		return errors.New("BPM范围无效")
	}

	if c.QualityThreshold <= 0 {
		return errors.New("质量阈值必须大于0")
	}

	if c.StableTolerance <= 0 {
		return errors.New("稳定容差必须大于0")
	}

	if c.StableRunTarget <= 0 {
		return errors.New("稳定判定次数必须大于0")
	}

	if c.DisplayWindow <= 0 {
		return errors.New("可视化窗口必须大于0")
	}

	if c.DisplayWindow > c.BufferSize {
		return errors.New("可视化窗口不能超过缓冲区容量")
	}

	return nil
}
