// Package tui 工具函数和辅助类型
package tui

import (
	"fmt"
	"math"

	"github.com/Kevin-Rudy/gopulse/pkg/core"
)

// formatValue 格式化Y轴的亮度值标签
func formatValue(value float64) string {
	if math.IsNaN(value) {
		return "N/A"
	}

	if math.Abs(value) >= 100 {
		return fmt.Sprintf("%.0f", value)
	}
	return fmt.Sprintf("%.1f", value)
}

// formatStatusLine 把最新读数拼成状态行文本
func formatStatusLine(reading core.Reading, hasReading bool) string {
	if !hasReading {
		return "[yellow]正在初始化，等待信号...[white]"
	}

	bpmText := "[gray]--[white]"
	if reading.HasBPM() {
		bpmText = fmt.Sprintf("[white]%d[white]", reading.BPM)
	}

	stableText := "[yellow]测量中[white]"
	if reading.IsStable {
		stableText = "[green]稳定[white]"
	}

	qualityColor := "[red]"
	if reading.SignalQuality >= 70 {
		qualityColor = "[green]"
	} else if reading.SignalQuality >= 40 {
		qualityColor = "[yellow]"
	}

	return fmt.Sprintf("[yellow]BPM:[white] %s  [yellow]信号质量:[white] %s%d%%[white]  [yellow]状态:[white] %s",
		bpmText, qualityColor, reading.SignalQuality, stableText)
}

// centered 返回减去均值后的序列副本
func centered(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	result := make([]float64, len(values))
	for i, v := range values {
		result[i] = v - mean
	}
	return result
}

// abs 返回整数的绝对值
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
