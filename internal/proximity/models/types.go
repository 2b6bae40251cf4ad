package models

// ============================================================
// Geometry primitives
// ============================================================

// Point2D - координата на плане, вертикальная ось сцены отброшена.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vec3 - позиция в сцене. Координаты плана (X, Z).
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Plan проецирует позицию сцены на план этажа.
func (v Vec3) Plan() Point2D {
	return Point2D{X: v.X, Y: v.Z}
}

// RGB - цвет заливки, каналы 0-255.
type RGB [3]uint8

// ============================================================
// Scene entities
// ============================================================

type EntityKind string

const (
	KindSpace EntityKind = "space"
	KindAsset EntityKind = "asset"
)

// Entity - объект плана, которым владеет движок сцены.
type Entity struct {
	ID            string       `json:"id"`
	Kind          EntityKind   `json:"kind"`
	Name          string       `json:"name,omitempty"`
	Position      *Vec3        `json:"position,omitempty"`
	SubCategories []string     `json:"subCategories,omitempty"`
	Program       string       `json:"program,omitempty"`
	Usage         string       `json:"usage,omitempty"`
	ProductID     string       `json:"productId,omitempty"`
	Center        *Point2D     `json:"center,omitempty"`
	Polygon       [][2]float64 `json:"polygon,omitempty"`
}

// PrimaryCategory возвращает первый тег категории или "".
func (e *Entity) PrimaryCategory() string {
	if len(e.SubCategories) == 0 {
		return ""
	}
	return e.SubCategories[0]
}

// HasCategory проверяет, есть ли тег в списке категорий.
func (e *Entity) HasCategory(tag string) bool {
	for _, c := range e.SubCategories {
		if c == tag {
			return true
		}
	}
	return false
}

// IsWorkstation проверяет, выбирает ли клик сущность: основной тег должен
// быть столом или рабочим креслом.
func (e *Entity) IsWorkstation() bool {
	switch e.PrimaryCategory() {
	case "desk", "taskChair":
		return true
	}
	return false
}

// Resources - набор сущностей загруженного этажа.
type Resources struct {
	Spaces []*Entity `json:"spaces"`
	Assets []*Entity `json:"assets"`
}

// ============================================================
// Overlay
// ============================================================

type Highlight struct {
	Fill        RGB     `json:"fill"`
	FillOpacity float64 `json:"fillOpacity"`
}

const (
	MarkerClassCursor = "cursor-marker"
	MarkerClassIcon   = "icon-marker"
	MarkerTypeDefault = "default-marker"
)

// MarkerSpec описывает один маркер оверлея.
type MarkerSpec struct {
	Class  string     `json:"class"`
	Type   string     `json:"type"`
	Pos    Point2D    `json:"pos"`
	Offset [2]float64 `json:"offset"`
	Radius bool       `json:"radius"`
}

// MarkerHandle - отрисованный маркер. Повторный Remove безопасен.
type MarkerHandle interface {
	ID() string
	Remove()
}

// ClickEvent несет точку плана, куда пришелся клик.
type ClickEvent struct {
	Pos Point2D `json:"pos"`
}
