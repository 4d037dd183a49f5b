package notefield

// CaretNudge returns the pan adjustment that brings box (screen space) back
// inside viewport. Right/bottom overflow is corrected by exactly the
// overflow. Left/top underflow is corrected only when the box fits inside
// the viewport along that axis, so a box larger than the viewport is not
// yanked back and forth.
func CaretNudge(box, viewport Rect) (dx, dy float64) {
	if box.Right() > viewport.Right() {
		dx = -(box.Right() - viewport.Right())
	}
	if box.Bottom() > viewport.Bottom() {
		dy = -(box.Bottom() - viewport.Bottom())
	}
	if box.X < viewport.X && box.Width <= viewport.Width {
		dx = viewport.X - box.X
	}
	if box.Y < viewport.Y && box.Height <= viewport.Height {
		dy = viewport.Y - box.Y
	}
	return dx, dy
}
