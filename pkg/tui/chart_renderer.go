// Package tui 图表渲染模块
package tui

import (
	"fmt"
	"math"
	"strings"
)

// brailleCell 定义盲文字符的cell结构
type brailleCell struct {
	char  int
	color string
}

// chartSeries 一条待绘制的波形序列
type chartSeries struct {
	values []float64
	color  string
}

// 盲文点阵的映射关系 (2x4 grid)
var brailleDotMap = [4][2]int{
	{0b00000001, 0b00001000}, // (y:0, x:0), (y:0, x:1)
	{0b00000010, 0b00010000}, // (y:1, x:0), (y:1, x:1)
	{0b00000100, 0b00100000}, // (y:2, x:0), (y:2, x:1)
	{0b01000000, 0b10000000}, // (y:3, x:0), (y:3, x:1)
}

// validateChartSize 验证图表尺寸是否合理
func (t *TUI) validateChartSize(width, height int) string {
	if height < t.tuiConfig.MinChartHeight || width < t.tuiConfig.MinChartWidth {
		return "终端尺寸过小"
	}
	if width > t.tuiConfig.MaxChartSize || height > t.tuiConfig.MaxChartSize {
		return "终端尺寸过大"
	}
	return ""
}

// calculateValueRange 计算所有序列的值范围
func (t *TUI) calculateValueRange(series []chartSeries) (minVal, maxVal, valueRange float64, errMsg string) {
	// 收集所有有效数据点
	var allValidValues []float64
	for _, s := range series {
		for _, v := range s.values {
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				allValidValues = append(allValidValues, v)
			}
		}
	}

	if len(allValidValues) == 0 {
		return 0, 0, 0, "没有有效数据"
	}

	minVal, maxVal = allValidValues[0], allValidValues[0]
	for _, v := range allValidValues {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}

	// 如果所有值都一样，特殊处理
	if maxVal == minVal {
		maxVal++
		minVal--
	}

	// 采用缓冲算法，波形值可为负所以按范围扩展
	buffer := (maxVal - minVal) * t.tuiConfig.ValueBufferRatio
	maxVal += buffer
	minVal -= buffer

	valueRange = maxVal - minVal
	if valueRange == 0 {
		valueRange = 1
	}

	return minVal, maxVal, valueRange, ""
}

// drawWaveformChart 基于采样点序号绘制原始和滤波后的波形
func (t *TUI) drawWaveformChart(width, height int) string {
	t.dataMu.RLock()
	hasReading := t.hasReading
	raw := append([]float64(nil), t.latest.RawSignal...)
	filtered := append([]float64(nil), t.latest.FilteredSignal...)
	t.dataMu.RUnlock()

	if !hasReading || len(raw) == 0 {
		return "没有数据"
	}

	// 原始亮度围绕基线波动，去掉均值后和滤波序列共用一个坐标系
	series := []chartSeries{
		{values: centered(raw), color: "[green]"},
		{values: filtered, color: "[cyan]"},
	}

	return t.drawChartWithSeries(series, len(raw), width, height)
}

// drawChartWithSeries 把多条序列绘制到同一张盲文画布上
func (t *TUI) drawChartWithSeries(series []chartSeries, sampleCount, width, height int) string {
	// 检查图表尺寸是否合理
	if sizeErr := t.validateChartSize(width, height); sizeErr != "" {
		return sizeErr
	}

	// 计算值范围
	minVal, maxVal, valueRange, errMsg := t.calculateValueRange(series)
	if errMsg != "" {
		return errMsg
	}

	// 动态计算Y轴标签宽度
	topLabel := formatValue(maxVal)
	bottomLabel := formatValue(minVal)
	maxLabelLen := len(topLabel)
	if len(bottomLabel) > maxLabelLen {
		maxLabelLen = len(bottomLabel)
	}
	yAxisLabelWidth := maxLabelLen + 2 // +2 为│分隔符和右侧空格留出缓冲

	// 准备画布尺寸
	chartBodyHeight := height - 2 // 为X轴和刻度留出2行空间
	chartWidth := width - yAxisLabelWidth

	// 确保画布尺寸合理
	if chartBodyHeight <= 0 || chartWidth <= 0 {
		return "可绘制区域过小"
	}

	// 创建盲文画布
	canvas := make([][]brailleCell, chartWidth)
	for i := range canvas {
		canvas[i] = make([]brailleCell, chartBodyHeight)
	}

	// 逐条绘制序列，后画的覆盖先画的颜色
	for _, s := range series {
		t.plotSeries(canvas, s, minVal, valueRange, chartWidth, chartBodyHeight)
	}

	// 构建输出字符串
	var lines []string

	// 预先计算Y轴标签位置
	yAxisLabelCount := 5
	if chartBodyHeight < yAxisLabelCount {
		yAxisLabelCount = chartBodyHeight
	}

	yAxisLabels := make(map[int]string)
	if yAxisLabelCount > 1 {
		for i := 0; i < yAxisLabelCount; i++ {
			// 在数值上均匀分布
			normalized := float64(i) / float64(yAxisLabelCount-1) // 0.0 到 1.0
			value := maxVal - normalized*valueRange               // 从最大值到最小值
			pixelRow := int(normalized * float64(chartBodyHeight-1))
			yAxisLabels[pixelRow] = formatValue(value)
		}
	}

	// 绘制Y轴和图表主体
	for i := 0; i < chartBodyHeight; i++ {
		yLabel := yAxisLabels[i]

		line := fmt.Sprintf("[gray]%*s[white] [gray]│[white]", yAxisLabelWidth-2, yLabel)

		for j := 0; j < chartWidth; j++ {
			cell := canvas[j][i]
			if cell.char == 0 {
				line += " "
			} else {
				line += cell.color + string(rune(0x2800+cell.char)) + "[white]"
			}
		}
		lines = append(lines, line)
	}

	// 绘制X轴
	xAxisLine := fmt.Sprintf("%-*s└%s", yAxisLabelWidth-1, "", strings.Repeat("─", chartWidth))
	lines = append(lines, "[gray]"+xAxisLine+"[white]")

	// X轴刻度 - 显示采样点序号范围
	startLabel := "0"
	endLabel := fmt.Sprintf("%d", sampleCount-1)

	spaceCount := chartWidth - len(startLabel) - len(endLabel)
	if spaceCount < 1 {
		spaceCount = 1
	}
	indexLine := fmt.Sprintf("%-*s%s%*s%s", yAxisLabelWidth, "", startLabel, spaceCount, "", endLabel)
	lines = append(lines, "[gray]"+indexLine+"[white]")

	// 保护性检查：确保输出不会超过可用高度，保证X轴总是可见
	if len(lines) > height {
		lines = lines[:height]
	}

	return strings.Join(lines, "\n")
}

// plotSeries 把单条序列画到盲文画布上
func (t *TUI) plotSeries(canvas [][]brailleCell, s chartSeries, minVal, valueRange float64, chartWidth, chartBodyHeight int) {
	if len(s.values) == 0 {
		return
	}

	var lastValidX, lastValidY int = -1, -1

	for i, v := range s.values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}

		// 计算X坐标（基于采样点序号），使用高分辨率
		currX := 0
		if len(s.values) > 1 {
			currX = i * (chartWidth*2 - 1) / (len(s.values) - 1)
		}
		if currX < 0 || currX >= chartWidth*2 {
			continue
		}

		// 计算Y坐标
		normalized := (v - minVal) / valueRange
		currY := int((1.0 - normalized) * float64(chartBodyHeight*4-1))

		// 边界检查（高分辨率坐标）
		if currY < 0 {
			currY = 0
		} else if currY >= chartBodyHeight*4 {
			currY = chartBodyHeight*4 - 1
		}

		// 如果上一个有效点存在，绘制连接线
		if lastValidX != -1 && lastValidY != -1 {
			t.drawBrailleLine(canvas, lastValidX, lastValidY, currX, currY, chartBodyHeight*4, chartWidth*2, s.color)
		} else {
			// 如果这是线条的第一个点，直接在画布上标记
			canvasX := currX / 2
			canvasY := currY / 4
			subY := currY % 4
			subX := currX % 2

			if canvasX >= 0 && canvasX < chartWidth && canvasY >= 0 && canvasY < chartBodyHeight {
				canvas[canvasX][canvasY].char |= brailleDotMap[subY][subX]
				canvas[canvasX][canvasY].color = s.color
			}
		}

		// 更新上一个有效点的坐标
		lastValidX, lastValidY = currX, currY
	}
}

// drawBrailleLine 使用布雷森汉姆算法在盲文画布上绘制线段
func (t *TUI) drawBrailleLine(canvas [][]brailleCell, x1, y1, x2, y2, maxHeight, chartWidth int, color string) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy

	x, y := x1, y1
	for {
		// 在当前位置放置字符
		if y >= 0 && y < maxHeight && x >= 0 && x < chartWidth {
			// 计算子像素位置
			subY := y % 4 // 盲文字符内的垂直位置 (0-3)
			subX := x % 2 // 盲文字符内的水平位置 (0-1)

			// 计算画布坐标（每个盲文字符覆盖2x4个子像素）
			canvasX := x / 2
			canvasY := y / 4

			// 确保画布坐标在有效范围内
			if canvasX >= 0 && canvasX < len(canvas) && canvasY >= 0 && canvasY < len(canvas[0]) {
				canvas[canvasX][canvasY].char |= brailleDotMap[subY][subX]
				canvas[canvasX][canvasY].color = color
			}
		}

		// 检查是否到达终点
		if x == x2 && y == y2 {
			break
		}

		// 计算下一个位置
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}
