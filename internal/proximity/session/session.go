package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"floorprox/internal/proximity/analytics"
	"floorprox/internal/proximity/classifier"
	"floorprox/internal/proximity/highlight"
	"floorprox/internal/proximity/models"
)

// ============================================================
// Collaborators
// ============================================================

// Scene - контракт движка отрисовки для одного загруженного этажа.
type Scene interface {
	highlight.Painter
	Resources() models.Resources
	ResourcesAt(p models.Point2D) models.Resources
	OnClick(handler func(models.ClickEvent))
}

// LoadFunc получает и инициализирует сцену этажа.
type LoadFunc func(ctx context.Context, floorID, token string) (Scene, error)

// Reporter получает результаты для хоста.
type Reporter interface {
	ReportAverages(floorID string, avg models.Distances)
	ReportNearest(floorID string, nearest models.Distances)
}

// ErrNotLoaded возвращается при действиях до загрузки сцены.
var ErrNotLoaded = errors.New("scene not loaded")

// ============================================================
// Session
// ============================================================

// Session хранит аналитику и состояние оверлея одного этажа. Все события
// идут последовательно под мьютексом сессии.
type Session struct {
	mu       sync.Mutex
	load     LoadFunc
	reporter Reporter
	catalog  *classifier.Catalog
	settings highlight.Settings

	floorID        string
	scene          Scene
	classification *classifier.Classification
	highlights     *highlight.Manager
	tracker        analytics.ChangeTracker
	averages       models.Distances
	generation     int
}

func New(load LoadFunc, reporter Reporter, catalog *classifier.Catalog, settings highlight.Settings) *Session {
	if catalog == nil {
		catalog = classifier.DefaultCatalog()
	}
	return &Session{
		load:     load,
		reporter: reporter,
		catalog:  catalog,
		settings: settings,
	}
}

// Load загружает сцену этажа, классифицирует, раскрашивает и отправляет
// средние расстояния. Без floorID или токена загрузка пропускается без
// ошибки. Повторная загрузка того же этажа ничего не делает.
func (s *Session) Load(ctx context.Context, floorID, token string) (bool, error) {
	if floorID == "" || token == "" {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scene != nil && s.floorID == floorID {
		return false, nil
	}

	scene, err := s.load(ctx, floorID, token)
	if err != nil {
		return false, fmt.Errorf("load scene %s: %w", floorID, err)
	}

	res := scene.Resources()
	cls, err := classifier.Classify(res, s.catalog)
	if err != nil {
		return false, fmt.Errorf("classify %s: %w", floorID, err)
	}

	if s.highlights != nil {
		s.highlights.Release()
	}

	s.floorID = floorID
	s.scene = scene
	s.classification = cls
	s.highlights = highlight.NewManager(scene, s.settings)
	s.tracker.Reset()
	s.generation++

	s.highlights.Paint(res, cls)
	s.averages = analytics.ComputeAverages(cls.Desks, cls.Categories())

	log.Printf("[SESSION] floor %s loaded: %d spaces, %d assets, %d desks (generation %d)",
		floorID, len(res.Spaces), len(res.Assets), len(cls.Desks), s.generation)

	if s.reporter != nil {
		s.reporter.ReportAverages(floorID, s.averages.Clone())
	}

	scene.OnClick(s.HandleClick)
	return true, nil
}

// HandleClick применяет клик к состоянию оверлея.
func (s *Session) HandleClick(ev models.ClickEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scene == nil {
		return
	}

	hit := s.scene.ResourcesAt(ev.Pos)
	if len(hit.Assets) == 0 || hit.Assets[0] == nil || !hit.Assets[0].IsWorkstation() {
		s.highlights.Deselect()
		return
	}

	selected := hit.Assets[0]
	if s.highlights.IsSelected(selected.ID) {
		return
	}

	r := analytics.ResolveNearest(ev.Pos, s.classification.Categories())
	s.highlights.Select(selected.ID, ev.Pos, r.Hits)

	if !s.tracker.Changed(r.Distances) {
		return
	}
	if s.reporter != nil {
		s.reporter.ReportNearest(s.floorID, r.Distances.Clone())
	}
}

// ApplySettings меняет цветовую схему или показ иконок и возвращает, была
// ли перерисовка. Настройки до первой загрузки сохраняются для начальной
// отрисовки.
func (s *Session) ApplySettings(settings highlight.Settings) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if settings.ColorScheme == "" {
		settings.ColorScheme = highlight.ModeDefault
	}
	s.settings = settings
	if s.scene == nil {
		return false
	}
	return s.highlights.Apply(settings, s.scene.Resources(), s.classification)
}

// ============================================================
// Accessors
// ============================================================

// Snapshot - снимок состояния сессии только для чтения.
type Snapshot struct {
	FloorID    string             `json:"floorId"`
	Loaded     bool               `json:"loaded"`
	Generation int                `json:"generation"`
	State      string             `json:"state"`
	Selected   string             `json:"selected,omitempty"`
	Settings   highlight.Settings `json:"settings"`
	Averages   models.Distances   `json:"avgDistances,omitempty"`
	Nearest    models.Distances   `json:"nearestDistances,omitempty"`
	Markers    int                `json:"markers"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		FloorID:    s.floorID,
		Loaded:     s.scene != nil,
		Generation: s.generation,
		State:      highlight.Idle.String(),
		Settings:   s.settings,
		Averages:   s.averages.Clone(),
	}
	if nearest, ok := s.tracker.Last(); ok {
		snap.Nearest = nearest
	}
	if s.highlights != nil {
		snap.State = s.highlights.State().String()
		snap.Selected = s.highlights.Selected()
		snap.Markers = s.highlights.MarkerCount()
	}
	return snap
}

// Classification возвращает группировку сцены, nil до загрузки.
func (s *Session) Classification() *classifier.Classification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.classification
}

// Records возвращает текущую раскраску помещений.
func (s *Session) Records() []highlight.SpaceColor {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.highlights == nil {
		return nil
	}
	return s.highlights.Records()
}

// Scene возвращает загруженную сцену или ErrNotLoaded.
func (s *Session) Scene() (Scene, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scene == nil {
		return nil, ErrNotLoaded
	}
	return s.scene, nil
}
