package ppg

import "testing"

// TestDefaultConfigValid 测试默认配置通过验证
func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("Expected default config to be valid, got %v", err)
	}
}

// TestConfigValidation 测试各项配置校验
func TestConfigValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero sample rate", func(c *Config) { c.SampleRate = 0 }},
		{"zero buffer size", func(c *Config) { c.BufferSize = 0 }},
		{"window exceeds buffer", func(c *Config) { c.StabilizationWindow = c.BufferSize + 1 }},
		{"zero recompute interval", func(c *Config) { c.RecomputeEvery = 0 }},
		{"inverted band", func(c *Config) { c.MinFrequency = 4.0; c.MaxFrequency = 0.7 }},
		{"band beyond nyquist", func(c *Config) { c.MaxFrequency = 20 }},
		{"inverted bpm range", func(c *Config) { c.MinBPM = 240; c.MaxBPM = 42 }},
		{"zero quality threshold", func(c *Config) { c.QualityThreshold = 0 }},
		{"zero stable tolerance", func(c *Config) { c.StableTolerance = 0 }},
		{"display window exceeds buffer", func(c *Config) { c.DisplayWindow = c.BufferSize + 1 }},
	}

	for _, tc := range cases {
		config := DefaultConfig()
		tc.mutate(config)
		if err := config.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

// TestConfigWithOptions 测试选项模式创建配置
func TestConfigWithOptions(t *testing.T) {
	config, err := NewConfigWithOptions(
		WithSampleRate(60),
		WithBufferSize(600),
		WithFrequencyBand(0.8, 3.5),
		WithFFT(true),
	)
	if err != nil {
		t.Fatalf("Expected valid config, got %v", err)
	}

	if config.SampleRate != 60 {
		t.Errorf("Expected sample rate 60, got %v", config.SampleRate)
	}
	if config.BufferSize != 600 {
		t.Errorf("Expected buffer size 600, got %d", config.BufferSize)
	}
	if config.MinFrequency != 0.8 || config.MaxFrequency != 3.5 {
		t.Errorf("Expected band 0.8-3.5, got %v-%v", config.MinFrequency, config.MaxFrequency)
	}
	if !config.UseFFT {
		t.Error("Expected FFT path enabled")
	}

	// 无效选项组合应该被拒绝
	_, err = NewConfigWithOptions(WithFrequencyBand(4.0, 0.7))
	if err == nil {
		t.Error("Expected error for inverted frequency band")
	}
}
