package session

import (
	"sort"
	"sync"

	"floorprox/internal/proximity/classifier"
	"floorprox/internal/proximity/highlight"
)

// ============================================================
// Session Registry
// ============================================================

// Registry хранит по одной сессии на этаж.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session

	load     LoadFunc
	reporter Reporter
	catalog  *classifier.Catalog
	settings highlight.Settings
}

func NewRegistry(load LoadFunc, reporter Reporter, catalog *classifier.Catalog, settings highlight.Settings) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		load:     load,
		reporter: reporter,
		catalog:  catalog,
		settings: settings,
	}
}

// Get возвращает сессию этажа, создавая ее при первом обращении.
func (r *Registry) Get(floorID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[floorID]
	if !ok {
		s = New(r.load, r.reporter, r.catalog, r.settings)
		r.sessions[floorID] = s
	}
	return s
}

// Lookup возвращает существующую сессию.
func (r *Registry) Lookup(floorID string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[floorID]
	return s, ok
}

// Drop забывает этаж, следующая загрузка начнется с нуля.
func (r *Registry) Drop(floorID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, floorID)
}

// Floors перечисляет этажи, у которых есть сессия.
func (r *Registry) Floors() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
