package analytics

import (
	"floorprox/internal/proximity/classifier"
	"floorprox/internal/proximity/geometry"
	"floorprox/internal/proximity/models"
)

// ============================================================
// Fleet averages
// ============================================================

func memberAt(m classifier.Member) models.Point2D { return m.At }

// ComputeAverages возвращает по каждой категории среднее по всем столам
// расстояние от стола до ближайшего объекта категории. Без столов все
// категории nil, пустая категория тоже nil.
func ComputeAverages(desks []classifier.Member, categories []classifier.Group) models.Distances {
	out := make(models.Distances, len(categories))
	for _, g := range categories {
		out[g.Name] = nil
	}
	if len(desks) == 0 {
		return out
	}

	sums := make([]float64, len(categories))
	for _, desk := range desks {
		for i, g := range categories {
			_, d, ok := geometry.Nearest(desk.At, g.Members, memberAt)
			if ok {
				sums[i] += d
			}
		}
	}

	deskCount := float64(len(desks))
	for i, g := range categories {
		if len(g.Members) == 0 {
			continue
		}
		out[g.Name] = models.Value(sums[i] / deskCount)
	}
	return out
}
