// Package ppg 信号预处理模块
package ppg

// Detrend 去除信号的线性趋势
// 用闭式最小二乘（索引对值的简单线性回归）拟合一条直线并逐点减去，
// 消除指压变化、环境光漂移等缓慢的基线漂移
func Detrend(signal []float64) []float64 {
	n := len(signal)
	if n < 2 {
		// 样本太少无从拟合，原样拷贝返回
		result := make([]float64, n)
		copy(result, signal)
		return result
	}

	// 闭式简单线性回归：x为样本索引，y为样本值
	var sumX, sumY, sumXY, sumXX float64
	for i, v := range signal {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}

	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		result := make([]float64, n)
		copy(result, signal)
		return result
	}

	slope := (fn*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / fn

	result := make([]float64, n)
	for i, v := range signal {
		result[i] = v - (slope*float64(i) + intercept)
	}
	return result
}

// Smooth 中心化滑动平均平滑
// 边界处窗口收缩而不是回绕或补零，既可单独使用也作为滤波级的基本原语
func Smooth(signal []float64, windowSize int) []float64 {
	n := len(signal)
	result := make([]float64, n)
	if n == 0 {
		return result
	}

	if windowSize < 1 {
		windowSize = 1
	}
	half := windowSize / 2

	for i := range signal {
		// 窗口在边界处收缩
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half
		if hi > n-1 {
			hi = n - 1
		}

		var sum float64
		for j := lo; j <= hi; j++ {
			sum += signal[j]
		}
		result[i] = sum / float64(hi-lo+1)
	}
	return result
}
