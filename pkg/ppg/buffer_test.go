package ppg

import "testing"

// TestBufferBound 测试缓冲区容量上界：超量推入后只保留最近的样本且顺序正确
func TestBufferBound(t *testing.T) {
	buf := NewBuffer(300)

	// 推入超过容量的样本
	for i := 0; i < 350; i++ {
		buf.Push(float64(i))
	}

	if buf.Len() != 300 {
		t.Errorf("Expected length 300, got %d", buf.Len())
	}

	snapshot := buf.Snapshot()
	if len(snapshot) != 300 {
		t.Fatalf("Expected snapshot length 300, got %d", len(snapshot))
	}

	// 内容应该是最后300个推入值，按时间顺序排列
	for i, v := range snapshot {
		expected := float64(50 + i)
		if v != expected {
			t.Fatalf("Expected snapshot[%d]=%v, got %v", i, expected, v)
		}
	}
}

// TestBufferPartialFill 测试未满时的快照
func TestBufferPartialFill(t *testing.T) {
	buf := NewBuffer(10)

	buf.Push(1.5)
	buf.Push(2.5)
	buf.Push(3.5)

	if buf.Len() != 3 {
		t.Errorf("Expected length 3, got %d", buf.Len())
	}

	snapshot := buf.Snapshot()
	expected := []float64{1.5, 2.5, 3.5}
	for i, v := range expected {
		if snapshot[i] != v {
			t.Errorf("Expected snapshot[%d]=%v, got %v", i, v, snapshot[i])
		}
	}
}

// TestBufferSnapshotIsCopy 测试快照是拷贝而不是底层存储的视图
func TestBufferSnapshotIsCopy(t *testing.T) {
	buf := NewBuffer(5)
	buf.Push(1.0)
	buf.Push(2.0)

	snapshot := buf.Snapshot()
	snapshot[0] = 99.0

	again := buf.Snapshot()
	if again[0] != 1.0 {
		t.Errorf("Expected buffer contents unchanged after mutating snapshot, got %v", again[0])
	}
}

// TestBufferClear 测试清空后从干净状态重新开始
func TestBufferClear(t *testing.T) {
	buf := NewBuffer(5)
	for i := 0; i < 7; i++ {
		buf.Push(float64(i))
	}

	buf.Clear()

	if buf.Len() != 0 {
		t.Errorf("Expected length 0 after clear, got %d", buf.Len())
	}
	if buf.Snapshot() != nil {
		t.Error("Expected nil snapshot after clear")
	}

	// 清空后重新推入应该从头开始
	buf.Push(42.0)
	snapshot := buf.Snapshot()
	if len(snapshot) != 1 || snapshot[0] != 42.0 {
		t.Errorf("Expected snapshot [42.0] after clear+push, got %v", snapshot)
	}
}

// TestBufferEmptySnapshot 测试空缓冲区的快照
func TestBufferEmptySnapshot(t *testing.T) {
	buf := NewBuffer(5)
	if buf.Snapshot() != nil {
		t.Error("Expected nil snapshot for empty buffer")
	}
}
