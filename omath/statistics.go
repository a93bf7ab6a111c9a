package omath

import "math"

// Float is any floating point type.
type Float interface {
	~float32 | ~float64
}

// Sum ...
func Sum[T Float](nums []T) (result T) {
	for _, v := range nums {
		result += v
	}
	return result
}

// Mean ...
func Mean[T Float](nums []T) T {
	if len(nums) == 0 {
		return 0
	}
	return Sum(nums) / T(len(nums))
}

// Variance returns the population variance.
func Variance[T Float](nums []T) (variance T) {
	if len(nums) == 0 {
		return 0
	}
	mean := Mean(nums)
	for _, v := range nums {
		variance += (v - mean) * (v - mean)
	}
	return variance / T(len(nums))
}

// StandardDeviation ...
func StandardDeviation[T Float](nums []T) T {
	return T(math.Sqrt(float64(Variance(nums))))
}

// MinMax returns the smallest and largest values, or zeros if nums is empty.
func MinMax[T Float](nums []T) (lo, hi T) {
	if len(nums) == 0 {
		return 0, 0
	}
	lo, hi = nums[0], nums[0]
	for _, v := range nums[1:] {
		lo, hi = min(lo, v), max(hi, v)
	}
	return lo, hi
}

// EMA moves an exponential moving average towards sample by the given decay.
func EMA[T Float](average, sample, decay T) T {
	return average + (sample-average)*decay
}
