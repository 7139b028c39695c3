package board

import (
	"fmt"
	"sort"
)

// Point addresses an intersection by column (X) and row (Y), both zero based.
type Point struct {
	X, Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// PointSet is an unordered set of intersections.
type PointSet map[Point]struct{}

func NewPointSet(points ...Point) PointSet {
	set := make(PointSet, len(points))
	for _, p := range points {
		set.Add(p)
	}
	return set
}

func (s PointSet) Add(p Point) {
	s[p] = struct{}{}
}

func (s PointSet) Contains(p Point) bool {
	_, ok := s[p]
	return ok
}

func (s PointSet) Len() int {
	return len(s)
}

// Only returns the single member of a one-element set.
func (s PointSet) Only() (Point, bool) {
	if len(s) != 1 {
		return Point{}, false
	}
	for p := range s {
		return p, true
	}
	return Point{}, false
}

func (s PointSet) Equal(other PointSet) bool {
	if len(s) != len(other) {
		return false
	}
	for p := range s {
		if !other.Contains(p) {
			return false
		}
	}
	return true
}

// Sorted returns the members in row-major order.
func (s PointSet) Sorted() []Point {
	points := make([]Point, 0, len(s))
	for p := range s {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Y != points[j].Y {
			return points[i].Y < points[j].Y
		}
		return points[i].X < points[j].X
	})
	return points
}
