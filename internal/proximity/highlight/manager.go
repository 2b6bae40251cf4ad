package highlight

import (
	"fmt"

	"floorprox/internal/proximity/analytics"
	"floorprox/internal/proximity/classifier"
	"floorprox/internal/proximity/models"
)

// ============================================================
// Settings
// ============================================================

type Mode string

const (
	ModeDefault    Mode = "default"
	ModeMonochrome Mode = "monochrome"
)

// ParseMode принимает "default" или "monochrome". Пусто значит default.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeDefault:
		return ModeDefault, nil
	case ModeMonochrome:
		return ModeMonochrome, nil
	}
	return "", fmt.Errorf("unknown color scheme %q", s)
}

// Settings - настройки отображения от хоста. ShowIcons действует только
// в режиме monochrome.
type Settings struct {
	ColorScheme Mode `json:"colorScheme"`
	ShowIcons   bool `json:"showIcons"`
}

func (s Settings) iconsVisible() bool {
	return s.ColorScheme == ModeMonochrome && s.ShowIcons
}

// ============================================================
// Manager
// ============================================================

// Painter - часть движка сцены, через которую рисует менеджер.
type Painter interface {
	SetHighlight(e *models.Entity, h models.Highlight)
	AddMarker(spec models.MarkerSpec) models.MarkerHandle
}

type State int

const (
	Idle State = iota
	Selected
)

func (s State) String() string {
	if s == Selected {
		return "selected"
	}
	return "idle"
}

// SpaceColor - текущая раскраска одного помещения.
type SpaceColor struct {
	Entity      *models.Entity
	Color       models.RGB
	FillOpacity float64
}

// Manager решает, что показывает оверлей, и владеет всеми своими маркерами.
type Manager struct {
	painter  Painter
	settings Settings
	records  []SpaceColor
	cursor   models.MarkerHandle
	markers  []models.MarkerHandle
	selected string
	state    State
}

func NewManager(p Painter, s Settings) *Manager {
	if s.ColorScheme == "" {
		s.ColorScheme = ModeDefault
	}
	return &Manager{painter: p, settings: s}
}

func (m *Manager) Settings() Settings { return m.settings }
func (m *Manager) State() State       { return m.state }
func (m *Manager) Selected() string   { return m.selected }

// Records возвращает копию текущей раскраски помещений.
func (m *Manager) Records() []SpaceColor {
	return append([]SpaceColor(nil), m.records...)
}

// MarkerCount - число живых маркеров менеджера.
func (m *Manager) MarkerCount() int {
	n := len(m.markers)
	if m.cursor != nil {
		n++
	}
	return n
}

// Paint делает полную базовую отрисовку для текущих настроек. Выбор и все
// маркеры сбрасываются.
func (m *Manager) Paint(res models.Resources, cls *classifier.Classification) {
	m.clearMarkers()
	m.selected = ""
	m.state = Idle

	m.records = m.records[:0]
	for _, space := range res.Spaces {
		if space == nil {
			continue
		}
		color := Monochrome
		if m.settings.ColorScheme != ModeMonochrome {
			color = programColor(space.Program)
		}
		m.records = append(m.records, SpaceColor{Entity: space, Color: color, FillOpacity: BaseOpacity})
	}
	m.applyOpacity(BaseOpacity)

	deskColor, deskOpacity := DeskDefault, DeskOpacityFull
	if m.settings.ColorScheme == ModeMonochrome {
		deskColor, deskOpacity = DeskHighlighted, DeskOpacityMono
	}
	for _, a := range res.Assets {
		if a != nil && a.IsWorkstation() {
			m.painter.SetHighlight(a, models.Highlight{Fill: deskColor, FillOpacity: deskOpacity})
		}
	}

	if m.settings.iconsVisible() && cls != nil {
		for _, g := range cls.Categories() {
			for _, member := range g.Members {
				m.markers = append(m.markers, m.addMarker(member.At, models.MarkerClassIcon, g.Name))
			}
		}
	}
}

// Apply меняет настройки и перерисовывает. Если s совпадает с текущими,
// возвращает false и оверлей не трогает.
func (m *Manager) Apply(s Settings, res models.Resources, cls *classifier.Classification) bool {
	if s.ColorScheme == "" {
		s.ColorScheme = ModeDefault
	}
	if s == m.settings {
		return false
	}
	m.settings = s
	m.Paint(res, cls)
	return true
}

// IsSelected проверяет, выбрано ли сейчас рабочее место id.
func (m *Manager) IsSelected(id string) bool {
	return m.state == Selected && m.selected == id
}

// Deselect убирает курсор и маркеры ближайших, возвращает базовую прозрачность.
func (m *Manager) Deselect() {
	m.clearMarkers()
	m.applyOpacity(BaseOpacity)
	m.selected = ""
	m.state = Idle
}

// Select приглушает помещения и ставит маркеры на точку клика и на
// ближайший объект каждой категории.
func (m *Manager) Select(id string, click models.Point2D, hits []analytics.Hit) {
	m.applyOpacity(DimmedOpacity)
	m.clearMarkers()

	m.cursor = m.addMarker(click, models.MarkerClassCursor, models.MarkerTypeDefault)
	for _, h := range hits {
		m.markers = append(m.markers, m.addMarker(h.Member.At, models.MarkerClassIcon, h.Category))
	}

	m.selected = id
	m.state = Selected
}

// Release удаляет все маркеры, когда сцена уходит.
func (m *Manager) Release() {
	m.clearMarkers()
	m.selected = ""
	m.state = Idle
}

// ============================================================
// Helpers
// ============================================================

func (m *Manager) addMarker(at models.Point2D, class, kind string) models.MarkerHandle {
	return m.painter.AddMarker(models.MarkerSpec{
		Class:  class,
		Type:   kind,
		Pos:    at,
		Offset: [2]float64{0, 0},
		Radius: false,
	})
}

func (m *Manager) clearMarkers() {
	if m.cursor != nil {
		m.cursor.Remove()
		m.cursor = nil
	}
	for _, mk := range m.markers {
		mk.Remove()
	}
	m.markers = nil
}

func (m *Manager) applyOpacity(opacity float64) {
	for i := range m.records {
		m.records[i].FillOpacity = opacity
		m.painter.SetHighlight(m.records[i].Entity, models.Highlight{
			Fill:        m.records[i].Color,
			FillOpacity: opacity,
		})
	}
}
