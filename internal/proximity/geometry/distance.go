package geometry

import (
	"math"

	"floorprox/internal/proximity/models"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// ============================================================
// Distance
// ============================================================

// Distance возвращает расстояние по прямой между p1 и p2 на плане.
func Distance(p1, p2 models.Point2D) float64 {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Nearest возвращает ближайшего к p кандидата. При равных расстояниях
// выигрывает более ранний. ok равен false для пустого списка.
func Nearest[T any](p models.Point2D, candidates []T, at func(T) models.Point2D) (best T, dist float64, ok bool) {
	dist = math.MaxFloat64
	for _, c := range candidates {
		d := Distance(p, at(c))
		if !ok || d < dist {
			best, dist, ok = c, d, true
		}
	}
	if !ok {
		return best, 0, false
	}
	return best, dist, true
}

// ============================================================
// Polygons
// ============================================================

// Ring переводит координаты плана в замкнутое кольцо orb.
func Ring(coords [][2]float64) orb.Ring {
	ring := make(orb.Ring, 0, len(coords)+1)
	for _, c := range coords {
		ring = append(ring, orb.Point{c[0], c[1]})
	}
	if len(ring) > 0 && !ring.Closed() {
		ring = append(ring, ring[0])
	}
	return ring
}

// Centroid возвращает центроид площади контура. Для вырожденного контура
// без площади берется среднее вершин.
func Centroid(coords [][2]float64) (models.Point2D, bool) {
	if len(coords) == 0 {
		return models.Point2D{}, false
	}
	if len(coords) >= 3 {
		c, area := planar.CentroidArea(orb.Polygon{Ring(coords)})
		if area != 0 && !math.IsNaN(c[0]) && !math.IsNaN(c[1]) {
			return models.Point2D{X: c[0], Y: c[1]}, true
		}
	}

	var sumX, sumY float64
	for _, c := range coords {
		sumX += c[0]
		sumY += c[1]
	}
	n := float64(len(coords))
	return models.Point2D{X: sumX / n, Y: sumY / n}, true
}

// Contains проверяет, лежит ли p внутри контура.
func Contains(coords [][2]float64, p models.Point2D) bool {
	if len(coords) < 3 {
		return false
	}
	return planar.PolygonContains(orb.Polygon{Ring(coords)}, orb.Point{p.X, p.Y})
}
