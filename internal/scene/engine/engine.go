package engine

import (
	"sort"
	"sync"

	"floorprox/internal/proximity/geometry"
	"floorprox/internal/proximity/models"

	"github.com/google/uuid"
)

// ============================================================
// Headless Engine
// ============================================================

// DefaultHitRadius - радиус попадания вокруг объектов без контура.
const DefaultHitRadius = 0.5

// Engine - сцена плана этажа в памяти. Хранит подсветку сущностей и живые
// маркеры, клики отдает единственному подписчику.
type Engine struct {
	mu         sync.Mutex
	floorID    string
	resources  models.Resources
	hitRadius  float64
	highlights map[string]models.Highlight
	markers    map[string]*Marker
	seq        int
	handler    func(models.ClickEvent)
}

func New(floorID string, res models.Resources, hitRadius float64) *Engine {
	if hitRadius <= 0 {
		hitRadius = DefaultHitRadius
	}
	return &Engine{
		floorID:    floorID,
		resources:  res,
		hitRadius:  hitRadius,
		highlights: make(map[string]models.Highlight),
		markers:    make(map[string]*Marker),
	}
}

func (e *Engine) FloorID() string { return e.floorID }

func (e *Engine) Resources() models.Resources {
	return e.resources
}

// ResourcesAt ищет сущности в точке плана. Помещение попадает, если его
// контур содержит p. Объект попадает по контуру, а без контура - если p
// в радиусе попадания от позиции. Порядок ресурсов сохраняется.
func (e *Engine) ResourcesAt(p models.Point2D) models.Resources {
	var out models.Resources
	for _, s := range e.resources.Spaces {
		if s != nil && geometry.Contains(s.Polygon, p) {
			out.Spaces = append(out.Spaces, s)
		}
	}
	for _, a := range e.resources.Assets {
		if a != nil && e.assetHit(a, p) {
			out.Assets = append(out.Assets, a)
		}
	}
	return out
}

func (e *Engine) assetHit(a *models.Entity, p models.Point2D) bool {
	if len(a.Polygon) >= 3 {
		return geometry.Contains(a.Polygon, p)
	}
	if a.Position == nil {
		return false
	}
	return geometry.Distance(a.Position.Plan(), p) <= e.hitRadius
}

// OnClick ставит обработчик клика, заменяя предыдущий.
func (e *Engine) OnClick(handler func(models.ClickEvent)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handler = handler
}

// Click отправляет клик. Возвращает false, если подписчика нет.
func (e *Engine) Click(p models.Point2D) bool {
	e.mu.Lock()
	h := e.handler
	e.mu.Unlock()

	if h == nil {
		return false
	}
	h(models.ClickEvent{Pos: p})
	return true
}

// ============================================================
// Overlay state
// ============================================================

func (e *Engine) SetHighlight(ent *models.Entity, h models.Highlight) {
	if ent == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.highlights[ent.ID] = h
}

// Highlight возвращает текущую подсветку сущности.
func (e *Engine) Highlight(id string) (models.Highlight, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	h, ok := e.highlights[id]
	return h, ok
}

func (e *Engine) AddMarker(spec models.MarkerSpec) models.MarkerHandle {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.seq++
	m := &Marker{id: uuid.NewString(), seq: e.seq, spec: spec, engine: e}
	e.markers[m.id] = m
	return m
}

// Markers возвращает живые маркеры в порядке создания.
func (e *Engine) Markers() []MarkerView {
	e.mu.Lock()
	defer e.mu.Unlock()

	live := make([]*Marker, 0, len(e.markers))
	for _, m := range e.markers {
		live = append(live, m)
	}
	sort.Slice(live, func(i, j int) bool { return live[i].seq < live[j].seq })

	out := make([]MarkerView, len(live))
	for i, m := range live {
		out[i] = MarkerView{ID: m.id, MarkerSpec: m.spec}
	}
	return out
}

// MarkerCount - число живых маркеров.
func (e *Engine) MarkerCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.markers)
}

func (e *Engine) removeMarker(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.markers, id)
}

// ============================================================
// Markers
// ============================================================

type Marker struct {
	id     string
	seq    int
	spec   models.MarkerSpec
	engine *Engine
}

func (m *Marker) ID() string { return m.id }

func (m *Marker) Remove() {
	m.engine.removeMarker(m.id)
}

// MarkerView - живой маркер для сериализации.
type MarkerView struct {
	ID string `json:"id"`
	models.MarkerSpec
}
