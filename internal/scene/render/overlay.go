package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"floorprox/internal/proximity/models"
	"floorprox/internal/scene/engine"
)

// ============================================================
// Overlay Renderer
// ============================================================

// Source - состояние подсветки, которое рисует рендерер.
type Source interface {
	Resources() models.Resources
	Highlight(id string) (models.Highlight, bool)
	Markers() []engine.MarkerView
}

type Renderer struct {
	markerRadius float64
	padding      float64
}

func NewRenderer() *Renderer {
	return &Renderer{markerRadius: 0.4, padding: 1}
}

// Render рисует помещения, подсвеченные объекты и маркеры в SVG.
func (r *Renderer) Render(src Source) (string, error) {
	if src == nil {
		return "", fmt.Errorf("scene is nil")
	}
	res := src.Resources()

	minX, minY, maxX, maxY := r.bounds(res, src.Markers())

	var elements []string
	elements = append(elements, r.renderSpaces(src, res.Spaces)...)
	elements = append(elements, r.renderAssets(src, res.Assets)...)
	elements = append(elements, r.renderMarkers(src.Markers())...)

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s">`,
		formatFloat(minX), formatFloat(minY), formatFloat(maxX-minX), formatFloat(maxY-minY)))
	builder.WriteString("\n")

	for _, elem := range elements {
		builder.WriteString("  ")
		builder.WriteString(elem)
		builder.WriteString("\n")
	}

	builder.WriteString(`</svg>`)
	return builder.String(), nil
}

// ============================================================
// Sizing
// ============================================================

func (r *Renderer) bounds(res models.Resources, markers []engine.MarkerView) (float64, float64, float64, float64) {
	minX, minY := math.MaxFloat64, math.MaxFloat64
	maxX, maxY := -math.MaxFloat64, -math.MaxFloat64

	grow := func(x, y float64) {
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}

	for _, list := range [][]*models.Entity{res.Spaces, res.Assets} {
		for _, e := range list {
			if e == nil {
				continue
			}
			for _, p := range e.Polygon {
				grow(p[0], p[1])
			}
			if e.Center != nil {
				grow(e.Center.X, e.Center.Y)
			}
			if e.Position != nil {
				p := e.Position.Plan()
				grow(p.X, p.Y)
			}
		}
	}
	for _, m := range markers {
		grow(m.Pos.X, m.Pos.Y)
	}

	if minX == math.MaxFloat64 {
		return 0, 0, 100, 100
	}
	return minX - r.padding, minY - r.padding, maxX + r.padding, maxY + r.padding
}

// ============================================================
// Elements
// ============================================================

func (r *Renderer) renderSpaces(src Source, spaces []*models.Entity) []string {
	var out []string
	for _, s := range spaces {
		if s == nil || len(s.Polygon) < 3 {
			continue
		}
		h, ok := src.Highlight(s.ID)
		fill := `fill="none"`
		if ok {
			fill = fmt.Sprintf(`fill="%s" fill-opacity="%s"`, rgb(h.Fill), formatFloat(h.FillOpacity))
		}
		out = append(out, fmt.Sprintf(`<polygon id="%s" class="space" points="%s" %s stroke="#999" stroke-width="0.05"/>`,
			escape(s.ID), points(s.Polygon), fill))
	}
	return out
}

func (r *Renderer) renderAssets(src Source, assets []*models.Entity) []string {
	var out []string
	for _, a := range assets {
		if a == nil {
			continue
		}
		h, ok := src.Highlight(a.ID)
		if !ok {
			continue
		}
		fill := fmt.Sprintf(`fill="%s" fill-opacity="%s"`, rgb(h.Fill), formatFloat(h.FillOpacity))

		if len(a.Polygon) >= 3 {
			out = append(out, fmt.Sprintf(`<polygon id="%s" class="asset %s" points="%s" %s/>`,
				escape(a.ID), escape(a.PrimaryCategory()), points(a.Polygon), fill))
			continue
		}
		if a.Position == nil {
			continue
		}
		p := a.Position.Plan()
		out = append(out, fmt.Sprintf(`<circle id="%s" class="asset %s" cx="%s" cy="%s" r="%s" %s/>`,
			escape(a.ID), escape(a.PrimaryCategory()), formatFloat(p.X), formatFloat(p.Y), formatFloat(r.markerRadius), fill))
	}
	return out
}

func (r *Renderer) renderMarkers(markers []engine.MarkerView) []string {
	out := make([]string, 0, len(markers))
	for _, m := range markers {
		radius := r.markerRadius
		if m.Class == models.MarkerClassCursor {
			radius *= 1.5
		}
		out = append(out, fmt.Sprintf(`<circle id="%s" class="%s %s" cx="%s" cy="%s" r="%s"/>`,
			m.ID, escape(m.Class), escape(m.Type),
			formatFloat(m.Pos.X+m.Offset[0]), formatFloat(m.Pos.Y+m.Offset[1]), formatFloat(radius)))
	}
	return out
}

// ============================================================
// Helpers
// ============================================================

func points(coords [][2]float64) string {
	parts := make([]string, 0, len(coords))
	for _, c := range coords {
		parts = append(parts, formatFloat(c[0])+","+formatFloat(c[1]))
	}
	return strings.Join(parts, " ")
}

func rgb(c models.RGB) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c[0], c[1], c[2])
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var attrEscaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `>`, "&gt;", `"`, "&quot;")

func escape(s string) string {
	return attrEscaper.Replace(s)
}
