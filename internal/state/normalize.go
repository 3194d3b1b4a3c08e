package state

// ToFraction maps pixel coordinates to fractions of a width x height
// surface. Values outside [0,1] are passed through unchanged. A zero
// dimension maps that axis to 0.
func ToFraction(px, py, width, height float64) (fx, fy float64) {
	if width != 0 {
		fx = px / width
	}
	if height != 0 {
		fy = py / height
	}
	return fx, fy
}

// ToPixels is the inverse of ToFraction for the given surface size.
func ToPixels(fx, fy, width, height float64) (px, py float64) {
	return fx * width, fy * height
}

// Normalize returns u with X and Y converted to fractions of the surface.
func Normalize(u StrokeUpdate, width, height float64) StrokeUpdate {
	u.X, u.Y = ToFraction(u.X, u.Y, width, height)
	return u
}
