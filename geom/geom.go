// Package geom implements the rotation-aware geometry used by canvas fields:
// affine transforms, bounding boxes of rotated rectangles and conversion from
// field-local to canvas-global coordinates.
//
// Coordinates follow screen conventions (origin top-left, y grows downward)
// and rotations are clockwise degrees about the field's unrotated top-left
// corner.
package geom

import (
	"errors"
	"math"
)

// Point is a position on the canvas, in points.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned rectangle defined by its min corner and size.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Contains reports whether p lies inside r, boundary inclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Matrix is a 2D affine transform stored as [a b c d e f]:
//
//	| a c e |
//	| b d f |
//	| 0 0 1 |
type Matrix [6]float64

// Identity returns the identity transform.
func Identity() Matrix { return Matrix{1, 0, 0, 1, 0, 0} }

// Multiply composes transforms: (m.Multiply(o)).Transform(p) applies m first,
// then o.
func (m Matrix) Multiply(o Matrix) Matrix {
	return Matrix{
		m[0]*o[0] + m[1]*o[2],
		m[0]*o[1] + m[1]*o[3],
		m[2]*o[0] + m[3]*o[2],
		m[2]*o[1] + m[3]*o[3],
		m[4]*o[0] + m[5]*o[2] + o[4],
		m[4]*o[1] + m[5]*o[3] + o[5],
	}
}

// Transform applies the matrix to a point.
func (m Matrix) Transform(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Inverse returns the inverse transform, or an error for singular matrices.
func (m Matrix) Inverse() (Matrix, error) {
	det := m[0]*m[3] - m[1]*m[2]
	if math.Abs(det) < 1e-10 {
		return Matrix{}, errors.New("matrix singular")
	}
	return Matrix{
		m[3] / det,
		-m[1] / det,
		-m[2] / det,
		m[0] / det,
		(m[2]*m[5] - m[3]*m[4]) / det,
		(m[1]*m[4] - m[0]*m[5]) / det,
	}, nil
}

// Translate returns a translation by (tx, ty).
func Translate(tx, ty float64) Matrix { return Matrix{1, 0, 0, 1, tx, ty} }

// Rotate returns a clockwise rotation (screen coordinates) by rad radians
// about the origin.
func Rotate(rad float64) Matrix {
	c := math.Cos(rad)
	s := math.Sin(rad)
	return Matrix{c, s, -s, c, 0, 0}
}

// NormalizeDegrees reduces an angle to [0, 360). Negative input wraps, so
// NormalizeDegrees(-90) == 270.
func NormalizeDegrees(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// BoundingBox is the oriented box of a rotated field rectangle: the four
// corner points after rotation plus the field's natural (unrotated) frame.
type BoundingBox struct {
	TopLeft     Point
	TopRight    Point
	BottomRight Point
	BottomLeft  Point

	// Natural, pre-rotation frame.
	X float64
	Y float64
	W float64
	H float64
}

// Corners returns the four corners in clockwise order starting at TopLeft.
func (b BoundingBox) Corners() [4]Point {
	return [4]Point{b.TopLeft, b.TopRight, b.BottomRight, b.BottomLeft}
}

// BoundingBoxOf rotates the rectangle (x, y, w, h) clockwise by deg degrees
// about (x, y) and returns the resulting corner points. Zero width or height
// yields a degenerate box, not an error.
func BoundingBoxOf(x, y, w, h, deg float64) BoundingBox {
	m := fieldTransform(x, y, deg)
	return BoundingBox{
		TopLeft:     m.Transform(Point{0, 0}),
		TopRight:    m.Transform(Point{w, 0}),
		BottomRight: m.Transform(Point{w, h}),
		BottomLeft:  m.Transform(Point{0, h}),
		X:           x,
		Y:           y,
		W:           w,
		H:           h,
	}
}

// RelativeToGlobal maps a point in field-local, pre-rotation coordinates
// (origin at the field's top-left) to canvas-global coordinates. The local
// origin always maps onto the bounding box's TopLeft corner.
func RelativeToGlobal(p Point, x, y, deg float64) Point {
	return fieldTransform(x, y, deg).Transform(p)
}

// fieldTransform is the local-to-global transform shared by BoundingBoxOf and
// RelativeToGlobal: rotate about the local origin, then translate to (x, y).
func fieldTransform(x, y, deg float64) Matrix {
	rad := NormalizeDegrees(deg) * math.Pi / 180
	return Rotate(rad).Multiply(Translate(x, y))
}
