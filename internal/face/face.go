// Package face menyimpan utilitas descriptor wajah. Descriptor dihitung di
// frontend (face-api.js); backend hanya memvalidasi dan membandingkan.
package face

import "math"

// DescriptorLength adalah panjang descriptor yang dihasilkan face-api.js.
const DescriptorLength = 128

// DefaultThreshold adalah jarak Euclidean maksimum supaya dua wajah dianggap
// sama.
const DefaultThreshold = 0.6

func IsValidDescriptor(descriptor []float64) bool {
	if len(descriptor) != DescriptorLength {
		return false
	}
	for _, v := range descriptor {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// CompareDescriptors membandingkan dua descriptor dengan jarak Euclidean.
// Jarak dibulatkan ke 3 desimal untuk stabilitas respons API.
func CompareDescriptors(a, b []float64, threshold float64) (match bool, distance float64) {
	if !IsValidDescriptor(a) || !IsValidDescriptor(b) {
		return false, math.Inf(1)
	}

	var sum float64
	for i := 0; i < DescriptorLength; i++ {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	distance = math.Round(math.Sqrt(sum)*1000) / 1000

	return distance <= threshold, distance
}
