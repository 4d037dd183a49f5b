package notefield

import "github.com/hajimehoshi/ebiten/v2"

// ScreenToCanvas maps a screen point to canvas coordinates, given the
// viewport center in screen space and the current view.
//
//	x = (sx - cx - PanX) / Scale
func ScreenToCanvas(sx, sy float64, center Vec2, v ViewState) (x, y float64) {
	x = (sx - center.X - v.PanX) / v.Scale
	y = (sy - center.Y - v.PanY) / v.Scale
	return x, y
}

// CanvasToScreen is the inverse of ScreenToCanvas.
func CanvasToScreen(x, y float64, center Vec2, v ViewState) (sx, sy float64) {
	return transformPoint(canvasMatrix(center, v), x, y)
}

// canvasMatrix returns the affine matrix that places the canvas layer on
// screen: the canvas origin sits at the viewport center, then the pan is
// applied, then the scale.
//
//	Translate(cx + PanX, cy + PanY) * Scale(Scale)
func canvasMatrix(center Vec2, v ViewState) [6]float64 {
	translate := [6]float64{1, 0, 0, 1, center.X + v.PanX, center.Y + v.PanY}
	scale := [6]float64{v.Scale, 0, 0, v.Scale, 0, 0}
	return multiplyAffine(translate, scale)
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// geoM converts an affine matrix to an ebiten.GeoM.
func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// screenRect returns the on-screen rectangle of a canvas-space box anchored
// at (x, y) with the given canvas size.
func screenRect(x, y float64, size Size, center Vec2, v ViewState) Rect {
	sx, sy := CanvasToScreen(x, y, center, v)
	return Rect{X: sx, Y: sy, Width: size.Width * v.Scale, Height: size.Height * v.Scale}
}
