package util

// Number cobre os tipos numéricos usados pelos helpers abaixo.
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Lerp realiza interpolação linear entre dois floats.
func Lerp(start, end, amount float32) float32 {
	return start + amount*(end-start)
}

// Clamp limita v ao intervalo [lo, hi].
func Clamp[T Number](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
