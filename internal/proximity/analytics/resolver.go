package analytics

import (
	"floorprox/internal/proximity/classifier"
	"floorprox/internal/proximity/geometry"
	"floorprox/internal/proximity/models"
)

// ============================================================
// Point queries
// ============================================================

// Hit - ближайший объект категории к точке запроса.
type Hit struct {
	Category string
	Member   classifier.Member
	Distance float64 // округлено до 0.1
}

// Resolution - ответ на запрос по точке. Hits идут в порядке категорий,
// пустые категории пропущены.
type Resolution struct {
	Hits      []Hit
	Distances models.Distances
}

// ResolveNearest находит ближайший к p объект каждой категории.
func ResolveNearest(p models.Point2D, categories []classifier.Group) Resolution {
	r := Resolution{Distances: make(models.Distances, len(categories))}
	for _, g := range categories {
		m, d, ok := geometry.Nearest(p, g.Members, memberAt)
		if !ok {
			r.Distances[g.Name] = nil
			continue
		}
		rounded := models.RoundTenth(d)
		r.Hits = append(r.Hits, Hit{Category: g.Name, Member: m, Distance: rounded})
		r.Distances[g.Name] = models.Value(rounded)
	}
	return r
}

// ============================================================
// Change detection
// ============================================================

// ChangeTracker помнит последний отправленный результат запроса.
type ChangeTracker struct {
	prev models.Distances
	seen bool
}

// Changed запоминает d и сообщает, отличается ли он от предыдущего.
// Первый вызов всегда считается изменением.
func (t *ChangeTracker) Changed(d models.Distances) bool {
	if t.seen && t.prev.Equal(d) {
		return false
	}
	t.prev = d.Clone()
	t.seen = true
	return true
}

// Last возвращает последний запомненный результат.
func (t *ChangeTracker) Last() (models.Distances, bool) {
	return t.prev.Clone(), t.seen
}

// Reset забывает предыдущий результат.
func (t *ChangeTracker) Reset() {
	t.prev = nil
	t.seen = false
}
