package systems

// clampFloat clamps a value between min and max.
func clampFloat(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// lerp moves a toward b by fraction t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
