package geometry2D

import "math"

type BoundingBox struct {
	XMin, XMax Point
}

func NewBoundingBox(Geometry []Point) (Box *BoundingBox) {
	if len(Geometry) == 0 {
		return nil
	}
	Box = &BoundingBox{XMin: Geometry[0], XMax: Geometry[0]}
	for _, point := range Geometry {
		Box.XMin.R = math.Min(Box.XMin.R, point.R)
		Box.XMin.Z = math.Min(Box.XMin.Z, point.Z)
		Box.XMax.R = math.Max(Box.XMax.R, point.R)
		Box.XMax.Z = math.Max(Box.XMax.Z, point.Z)
	}
	return Box
}

// Contains is inclusive on all four sides, points on a shared edge belong to both boxes
func (bb *BoundingBox) Contains(p Point) bool {
	return bb.XMin.R <= p.R && p.R <= bb.XMax.R &&
		bb.XMin.Z <= p.Z && p.Z <= bb.XMax.Z
}

func (bb *BoundingBox) Width() float64  { return bb.XMax.R - bb.XMin.R }
func (bb *BoundingBox) Height() float64 { return bb.XMax.Z - bb.XMin.Z }

// Lerp maps unit square coordinates (s,t) into the box
func (bb *BoundingBox) Lerp(s, t float64) Point {
	return Point{
		R: bb.XMin.R + s*bb.Width(),
		Z: bb.XMin.Z + t*bb.Height(),
	}
}
