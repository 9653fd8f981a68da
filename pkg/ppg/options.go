// Package ppg 选项模式支持
package ppg

// Option 配置选项函数类型
type Option func(*Config)

// WithSampleRate 设置采样率
func WithSampleRate(rate float64) Option {
	return func(c *Config) {
		c.SampleRate = rate
	}
}

// WithBufferSize 设置信号缓冲区容量
func WithBufferSize(size int) Option {
	return func(c *Config) {
		c.BufferSize = size
	}
}

// WithFrequencyBand 设置频谱搜索频带
func WithFrequencyBand(minHz, maxHz float64) Option {
	return func(c *Config) {
		c.MinFrequency = minHz
		c.MaxFrequency = maxHz
	}
}

// WithBPMRange 设置有效BPM范围
func WithBPMRange(minBPM, maxBPM int) Option {
	return func(c *Config) {
		c.MinBPM = minBPM
		c.MaxBPM = maxBPM
	}
}

// WithRecomputeEvery 设置重算间隔（帧数）
func WithRecomputeEvery(frames int) Option {
	return func(c *Config) {
		c.RecomputeEvery = frames
	}
}

// WithQualityThreshold 设置低质量判定的方差阈值
func WithQualityThreshold(threshold float64) Option {
	return func(c *Config) {
		c.QualityThreshold = threshold
	}
}

// WithFFT 设置是否使用FFT频谱路径
func WithFFT(enabled bool) Option {
	return func(c *Config) {
		c.UseFFT = enabled
	}
}

// NewConfigWithOptions 使用选项模式创建配置
func NewConfigWithOptions(opts ...Option) (*Config, error) {
	config := DefaultConfig()

	// 应用所有选项
	for _, opt := range opts {
		opt(config)
	}

	// 验证配置
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}
