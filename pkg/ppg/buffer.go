// Package ppg 实现了基于摄像头亮度信号的心率估计核心
// 包含信号缓冲、去趋势、带通滤波、频谱估计和BPM状态机
package ppg

// Buffer 固定容量的环形信号缓冲区
// 按帧到达顺序存储每帧的亮度样本；满时先驱逐最老样本（FIFO）
// 由测量会话在一次会话期间独占持有，其他组件不允许直接修改
type Buffer struct {
	data  []float64 // 底层存储
	pos   int       // 下一个写入位置
	count int       // 当前样本数，不变式：count <= len(data)
}

// NewBuffer 创建指定容量的缓冲区
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = 1
	}
	return &Buffer{
		data: make([]float64, capacity),
	}
}

// Push 追加一个样本；缓冲区已满时先驱逐最老的样本
func (b *Buffer) Push(sample float64) {
	b.data[b.pos] = sample
	b.pos = (b.pos + 1) % len(b.data)
	if b.count < len(b.data) {
		b.count++
	}
}

// Snapshot 返回当前内容的拷贝，按时间顺序排列
func (b *Buffer) Snapshot() []float64 {
	if b.count == 0 {
		return nil
	}

	result := make([]float64, b.count)
	if b.count < len(b.data) {
		copy(result, b.data[:b.count])
	} else {
		// 缓冲区已满，最老的样本从pos开始
		n := copy(result, b.data[b.pos:])
		copy(result[n:], b.data[:b.pos])
	}
	return result
}

// Len 返回当前样本数
func (b *Buffer) Len() int {
	return b.count
}

// Cap 返回缓冲区容量
func (b *Buffer) Cap() int {
	return len(b.data)
}

// Clear 清空缓冲区
func (b *Buffer) Clear() {
	b.pos = 0
	b.count = 0
}
