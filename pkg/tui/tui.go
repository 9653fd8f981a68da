// Package tui 提供测量会话的终端用户界面组件
// 支持实时波形可视化和心率状态展示
package tui

import (
	"context"
	"sync"
	"time"

	"github.com/Kevin-Rudy/gopulse/pkg/core"
	"github.com/rivo/tview"
)

// TUI 主界面结构
type TUI struct {
	app    *tview.Application
	status *tview.TextView
	banner *tview.TextView
	chart  *tview.TextView
	flex   *tview.Flex
	source core.ReadingSource

	// 配置信息
	tuiConfig *Config // TUI配置

	// 数据存储
	latest       core.Reading // 最近一次测量读数
	hasReading   bool         // 是否已收到过读数
	confirmedBPM int          // 稳定确认后锁存的BPM，0表示尚未确认
	dataMu       sync.RWMutex

	// 控制
	stopChan chan struct{}
	doneChan chan struct{}

	// 测试模式标志
	testMode bool
}

// NewTUI 创建新的TUI实例
func NewTUI(source core.ReadingSource, tuiConfig *Config) *TUI {
	tui := &TUI{
		app:       tview.NewApplication(),
		status:    tview.NewTextView(),
		banner:    tview.NewTextView(),
		chart:     tview.NewTextView(),
		source:    source,
		tuiConfig: tuiConfig,
		stopChan:  make(chan struct{}),
		doneChan:  make(chan struct{}),
		testMode:  false,
	}

	tui.setupUI()
	tui.setupKeyBindings()

	return tui
}

// NewTUIForTest 创建用于测试的TUI实例（不初始化图形组件）
func NewTUIForTest(source core.ReadingSource, tuiConfig *Config) *TUI {
	return &TUI{
		app:       tview.NewApplication(), // 创建一个应用实例，但不会运行
		source:    source,
		tuiConfig: tuiConfig,
		stopChan:  make(chan struct{}),
		doneChan:  make(chan struct{}),
		testMode:  true,
	}
}

// Run 启动TUI界面
func (t *TUI) Run(ctx context.Context) error {
	// 启动测量会话
	if err := t.source.Start(ctx); err != nil {
		return err
	}

	// 启动数据处理goroutine
	go t.processData()

	// 运行应用
	err := t.app.Run()

	// 确保清理工作完成
	<-t.doneChan

	return err
}

// Stop 停止TUI界面
func (t *TUI) Stop() {
	// 先发送停止信号，让processData退出
	select {
	case <-t.stopChan:
		// stopChan已经关闭，避免重复关闭
	default:
		close(t.stopChan)
	}

	// 停止测量会话
	t.source.Stop()

	// 停止应用
	t.app.Stop()
}

// processData 处理来自测量会话的读数流
func (t *TUI) processData() {
	defer close(t.doneChan)

	readings := t.source.Readings()
	detected := t.source.Detected()
	uiTicker := time.NewTicker(t.tuiConfig.RefreshInterval)
	defer uiTicker.Stop()

	for {
		select {
		case reading, ok := <-readings:
			if !ok {
				return
			}
			t.handleReading(reading)

		case bpm, ok := <-detected:
			if !ok {
				return
			}
			t.handleDetected(bpm)

		case <-uiTicker.C:
			t.handleUIRefresh()

		case <-t.stopChan:
			return
		}
	}
}

// handleReading 保存最新读数供下次刷新使用
func (t *TUI) handleReading(reading core.Reading) {
	t.dataMu.Lock()
	t.latest = reading
	t.hasReading = true
	t.dataMu.Unlock()
}

// handleDetected 锁存稳定确认的BPM
func (t *TUI) handleDetected(bpm int) {
	t.dataMu.Lock()
	t.confirmedBPM = bpm
	t.dataMu.Unlock()
}

// handleUIRefresh 处理UI刷新
func (t *TUI) handleUIRefresh() {
	if !t.testMode && t.app != nil {
		t.safeUIUpdate(func() {
			t.updateStatus()
			t.updateChart()
		})
	}
}
