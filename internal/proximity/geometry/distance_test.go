package geometry

import (
	"math"
	"testing"

	"floorprox/internal/proximity/models"
)

func TestDistanceSymmetricAndZero(t *testing.T) {
	pts := []models.Point2D{{0, 0}, {3, 4}, {-2.5, 7}, {1e6, -1e6}}
	for _, a := range pts {
		if d := Distance(a, a); d != 0 {
			t.Errorf("Distance(%v, %v) = %v, want 0", a, a, d)
		}
		for _, b := range pts {
			if Distance(a, b) != Distance(b, a) {
				t.Errorf("Distance not symmetric for %v, %v", a, b)
			}
		}
	}
	if d := Distance(models.Point2D{X: 0, Y: 0}, models.Point2D{X: 3, Y: 4}); d != 5 {
		t.Errorf("Distance = %v, want 5", d)
	}
}

func TestNearestEmpty(t *testing.T) {
	_, _, ok := Nearest(models.Point2D{}, []models.Point2D{}, func(p models.Point2D) models.Point2D { return p })
	if ok {
		t.Error("Nearest on empty candidates returned ok")
	}
}

func TestNearestPicksMinimumAndFirstOnTie(t *testing.T) {
	type site struct {
		name string
		at   models.Point2D
	}
	sites := []site{
		{"far", models.Point2D{X: 10, Y: 0}},
		{"left", models.Point2D{X: -1, Y: 0}},
		{"right", models.Point2D{X: 1, Y: 0}},
	}

	best, dist, ok := Nearest(models.Point2D{}, sites, func(s site) models.Point2D { return s.at })
	if !ok {
		t.Fatal("expected a result")
	}
	if best.name != "left" {
		t.Errorf("nearest = %s, want left (first of the tie)", best.name)
	}
	if dist != 1 {
		t.Errorf("dist = %v, want 1", dist)
	}
}

func TestCentroid(t *testing.T) {
	square := [][2]float64{{0, 0}, {4, 0}, {4, 2}, {0, 2}}
	c, ok := Centroid(square)
	if !ok {
		t.Fatal("expected centroid")
	}
	if math.Abs(c.X-2) > 1e-9 || math.Abs(c.Y-1) > 1e-9 {
		t.Errorf("centroid = %v, want (2,1)", c)
	}

	line := [][2]float64{{0, 0}, {2, 0}}
	c, ok = Centroid(line)
	if !ok || c.X != 1 || c.Y != 0 {
		t.Errorf("degenerate centroid = %v ok=%v, want (1,0)", c, ok)
	}

	if _, ok := Centroid(nil); ok {
		t.Error("Centroid(nil) returned ok")
	}
}

func TestContains(t *testing.T) {
	square := [][2]float64{{0, 0}, {4, 0}, {4, 4}, {0, 4}}
	if !Contains(square, models.Point2D{X: 2, Y: 2}) {
		t.Error("center should be inside")
	}
	if Contains(square, models.Point2D{X: 5, Y: 2}) {
		t.Error("point outside reported inside")
	}
	if Contains(square[:2], models.Point2D{X: 1, Y: 0}) {
		t.Error("segment cannot contain points")
	}
}
