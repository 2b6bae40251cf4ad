package parser

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"floorprox/internal/proximity/geometry"
	"floorprox/internal/proximity/models"
)

// ============================================================
// XML Structures
// ============================================================

type svgDoc struct {
	XMLName xml.Name `xml:"svg"`
	svgGroup
}

type svgGroup struct {
	Groups  []svgGroup  `xml:"g"`
	Rects   []svgRect   `xml:"rect"`
	Paths   []svgPath   `xml:"path"`
	Circles []svgCircle `xml:"circle"`
}

// dataAttrs - аннотации плана, общие для всех фигур.
type dataAttrs struct {
	ID        string  `xml:"id,attr"`
	Kind      string  `xml:"data-kind,attr"`
	Name      string  `xml:"data-name,attr"`
	Program   string  `xml:"data-program,attr"`
	Usage     string  `xml:"data-usage,attr"`
	Category  string  `xml:"data-category,attr"`
	Product   string  `xml:"data-product,attr"`
	Elevation float64 `xml:"data-elevation,attr"`
}

type svgRect struct {
	dataAttrs
	X      float64 `xml:"x,attr"`
	Y      float64 `xml:"y,attr"`
	Width  float64 `xml:"width,attr"`
	Height float64 `xml:"height,attr"`
}

type svgPath struct {
	dataAttrs
	D string `xml:"d,attr"`
}

type svgCircle struct {
	dataAttrs
	CX float64 `xml:"cx,attr"`
	CY float64 `xml:"cy,attr"`
	R  float64 `xml:"r,attr"`
}

// ============================================================
// Parser
// ============================================================

// ParseSVG читает размеченный SVG план этажа. Фигуры становятся
// помещениями или объектами по data-kind, а если его нет - по префиксу id.
// Остальное пропускается.
func ParseSVG(r io.Reader) (models.Resources, error) {
	var doc svgDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return models.Resources{}, err
	}

	var res models.Resources
	if err := collect(&res, doc.svgGroup); err != nil {
		return models.Resources{}, err
	}
	return res, nil
}

func collect(res *models.Resources, g svgGroup) error {
	for _, rect := range g.Rects {
		outline := [][2]float64{
			{rect.X, rect.Y},
			{rect.X + rect.Width, rect.Y},
			{rect.X + rect.Width, rect.Y + rect.Height},
			{rect.X, rect.Y + rect.Height},
		}
		add(res, rect.dataAttrs, outline, nil)
	}

	for _, path := range g.Paths {
		if classify(path.dataAttrs) == "" {
			continue
		}
		outline, err := ParsePath(path.D)
		if err != nil {
			return fmt.Errorf("path %s: %w", path.ID, err)
		}
		add(res, path.dataAttrs, outline, nil)
	}

	for _, c := range g.Circles {
		center := models.Point2D{X: c.CX, Y: c.CY}
		add(res, c.dataAttrs, nil, &center)
	}

	for _, child := range g.Groups {
		if err := collect(res, child); err != nil {
			return err
		}
	}
	return nil
}

func add(res *models.Resources, a dataAttrs, outline [][2]float64, center *models.Point2D) {
	kind := classify(a)
	if kind == "" {
		return
	}

	if center == nil {
		c, ok := geometry.Centroid(outline)
		if !ok {
			return
		}
		center = &c
	}

	e := &models.Entity{
		ID:            a.ID,
		Kind:          kind,
		Name:          a.Name,
		SubCategories: categories(a),
		Program:       a.Program,
		Usage:         a.Usage,
		ProductID:     a.Product,
		Polygon:       outline,
	}

	switch kind {
	case models.KindSpace:
		e.Center = center
		res.Spaces = append(res.Spaces, e)
	case models.KindAsset:
		e.Position = &models.Vec3{X: center.X, Y: a.Elevation, Z: center.Y}
		res.Assets = append(res.Assets, e)
	}
}

func classify(a dataAttrs) models.EntityKind {
	switch models.EntityKind(a.Kind) {
	case models.KindSpace, models.KindAsset:
		return models.EntityKind(a.Kind)
	}

	id := a.ID
	switch {
	case strings.HasPrefix(id, "Space_"), strings.HasPrefix(id, "Room_"):
		return models.KindSpace
	case strings.HasPrefix(id, "Asset_"), strings.HasPrefix(id, "Desk_"), strings.HasPrefix(id, "Chair_"):
		return models.KindAsset
	}
	return ""
}

func categories(a dataAttrs) []string {
	var out []string
	for _, c := range strings.Split(a.Category, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	if len(out) > 0 {
		return out
	}

	switch {
	case strings.HasPrefix(a.ID, "Desk_"):
		return []string{"desk"}
	case strings.HasPrefix(a.ID, "Chair_"):
		return []string{"taskChair"}
	}
	return nil
}
