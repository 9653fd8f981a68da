// Package tui 布局管理模块
package tui

import (
	"fmt"

	"github.com/rivo/tview"
)

// setupUI 设置用户界面布局
func (t *TUI) setupUI() {
	// 状态行：会话状态、BPM、信号质量
	t.status.SetDynamicColors(true)
	t.status.SetTextAlign(tview.AlignLeft)
	t.status.SetText("[yellow]正在初始化，等待信号...[white]")

	// 确认行：稳定确认后锁存的BPM
	t.banner.SetDynamicColors(true)
	t.banner.SetTextAlign(tview.AlignCenter)
	t.banner.SetText("[gray]将指尖完全覆盖摄像头和闪光灯[white]")

	// 设置图表属性
	t.chart.SetWordWrap(false)
	t.chart.SetDynamicColors(true)
	t.chart.SetText("[yellow]没有数据[white]")

	// 创建主垂直布局
	t.flex = tview.NewFlex()
	t.flex.SetDirection(tview.FlexRow)
	t.flex.AddItem(t.status, 1, 0, false)
	t.flex.AddItem(t.banner, 1, 0, false)
	t.flex.AddItem(t.chart, 0, 1, false)

	t.app.SetRoot(t.flex, true)
}

// updateStatus 更新状态行和确认行
func (t *TUI) updateStatus() {
	if t.testMode || t.status == nil {
		return
	}

	t.dataMu.RLock()
	reading := t.latest
	hasReading := t.hasReading
	confirmed := t.confirmedBPM
	t.dataMu.RUnlock()

	t.status.SetText(formatStatusLine(reading, hasReading))

	if confirmed > 0 {
		t.banner.SetText(fmt.Sprintf("[green]✓ 检测到稳定心率: %d BPM[white]", confirmed))
	}
}

// updateChart 更新波形图表显示
func (t *TUI) updateChart() {
	if t.testMode || t.chart == nil {
		return
	}

	// 获取图表视图的实际可绘制尺寸
	_, _, width, height := t.chart.GetInnerRect()

	// 确保有合理的最小尺寸
	if width < 20 {
		width = 80
	}
	if height < 10 {
		height = 15
	}

	t.chart.SetText(t.drawWaveformChart(width, height))
}

// safeUIUpdate 安全地执行UI更新操作
func (t *TUI) safeUIUpdate(updateFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			// 如果应用已经停止，忽略panic
		}
	}()
	t.app.QueueUpdateDraw(updateFunc)
}
