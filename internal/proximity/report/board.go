package report

import (
	"log"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"floorprox/internal/proximity/models"
)

// ============================================================
// Report Board
// ============================================================

// Entry - последний отчет по этажу.
type Entry struct {
	FloorID          string           `json:"floorId"`
	AvgDistances     models.Distances `json:"avgDistances,omitempty"`
	NearestDistances models.Distances `json:"nearestDistances,omitempty"`
	NearestUpdates   int              `json:"nearestUpdates"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// Board логирует каждый отчет и хранит последний по каждому этажу.
type Board struct {
	mu      sync.Mutex
	entries map[string]*Entry
	now     func() time.Time
}

func NewBoard() *Board {
	return &Board{
		entries: make(map[string]*Entry),
		now:     time.Now,
	}
}

func (b *Board) ReportAverages(floorID string, avg models.Distances) {
	log.Printf("[REPORT] %s avgDistances %s", floorID, Format(avg))

	b.mu.Lock()
	defer b.mu.Unlock()

	e := b.entry(floorID)
	e.AvgDistances = avg.Clone()
	e.NearestDistances = nil
	e.NearestUpdates = 0
	e.UpdatedAt = b.now()
}

func (b *Board) ReportNearest(floorID string, nearest models.Distances) {
	log.Printf("[REPORT] %s nearestDistances %s", floorID, Format(nearest))

	b.mu.Lock()
	defer b.mu.Unlock()

	e := b.entry(floorID)
	e.NearestDistances = nearest.Clone()
	e.NearestUpdates++
	e.UpdatedAt = b.now()
}

// Latest возвращает копию последних отчетов этажа.
func (b *Board) Latest(floorID string) (Entry, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.entries[floorID]
	if !ok {
		return Entry{}, false
	}
	out := *e
	out.AvgDistances = e.AvgDistances.Clone()
	out.NearestDistances = e.NearestDistances.Clone()
	return out, true
}

// Forget удаляет отчеты этажа, когда его сцена заменена.
func (b *Board) Forget(floorID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.entries, floorID)
}

func (b *Board) entry(floorID string) *Entry {
	e, ok := b.entries[floorID]
	if !ok {
		e = &Entry{FloorID: floorID}
		b.entries[floorID] = e
	}
	return e
}

// Format печатает расстояния парами "name=value" по алфавиту.
func Format(d models.Distances) string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+FormatValue(d[k]))
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// FormatValue печатает расстояние с двумя знаками или "null".
func FormatValue(v *float64) string {
	if v == nil {
		return "null"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
