package classifier

import (
	"errors"
	"fmt"

	"floorprox/internal/proximity/geometry"
	"floorprox/internal/proximity/models"
)

// ErrMalformedEntity возвращается, если у сущности из аналитики нет
// координат на плане.
var ErrMalformedEntity = errors.New("malformed entity")

// ============================================================
// Classification
// ============================================================

// Member - классифицированная сущность вместе с ее точкой на плане.
type Member struct {
	Entity *models.Entity
	At     models.Point2D
}

// Group - именованная группа категории.
type Group struct {
	Name    string
	Members []Member
}

// Classification - неизменяемая группировка одной загруженной сцены.
type Classification struct {
	Desks  []Member
	Spaces []Group
	Assets []Group
}

// Categories возвращает группы помещений, затем группы объектов.
func (c *Classification) Categories() []Group {
	out := make([]Group, 0, len(c.Spaces)+len(c.Assets))
	out = append(out, c.Spaces...)
	return append(out, c.Assets...)
}

// Group ищет категорию по имени.
func (c *Classification) Group(name string) (Group, bool) {
	for _, g := range c.Categories() {
		if g.Name == name {
			return g, true
		}
	}
	return Group{}, false
}

// Classify раскладывает ресурсы сцены на столы, группы помещений и группы
// объектов безопасности. Группы без совпадений присутствуют пустыми.
func Classify(res models.Resources, catalog *Catalog) (*Classification, error) {
	if catalog == nil {
		catalog = DefaultCatalog()
	}

	c := &Classification{
		Spaces: make([]Group, len(catalog.Spaces)),
		Assets: make([]Group, len(catalog.Assets)),
	}
	for i, r := range catalog.Spaces {
		c.Spaces[i].Name = r.Category
	}
	for i, r := range catalog.Assets {
		c.Assets[i].Name = r.Category
	}

	for _, space := range res.Spaces {
		if space == nil {
			continue
		}
		idx := matchSpace(catalog.Spaces, space)
		if idx < 0 {
			continue
		}
		at, err := SpaceLocation(space)
		if err != nil {
			return nil, err
		}
		c.Spaces[idx].Members = append(c.Spaces[idx].Members, Member{Entity: space, At: at})
	}

	products := make(map[string]int, len(catalog.Assets))
	for i, r := range catalog.Assets {
		products[r.ProductID] = i
	}

	for _, asset := range res.Assets {
		if asset == nil {
			continue
		}
		isDesk := asset.HasCategory("desk")
		idx, isSafety := products[asset.ProductID]
		if asset.ProductID == "" {
			isSafety = false
		}
		if !isDesk && !isSafety {
			continue
		}

		at, err := AssetLocation(asset)
		if err != nil {
			return nil, err
		}
		if isDesk {
			c.Desks = append(c.Desks, Member{Entity: asset, At: at})
		}
		if isSafety {
			c.Assets[idx].Members = append(c.Assets[idx].Members, Member{Entity: asset, At: at})
		}
	}

	return c, nil
}

func matchSpace(rules []SpaceRule, space *models.Entity) int {
	for i, r := range rules {
		if r.Program != "" && space.Program == r.Program {
			return i
		}
		if r.Usage != "" && space.Usage == r.Usage {
			return i
		}
	}
	return -1
}

// ============================================================
// Locations
// ============================================================

// SpaceLocation возвращает центр помещения или центроид его контура.
func SpaceLocation(e *models.Entity) (models.Point2D, error) {
	if e.Center != nil {
		return *e.Center, nil
	}
	if c, ok := geometry.Centroid(e.Polygon); ok {
		return c, nil
	}
	return models.Point2D{}, fmt.Errorf("%w: space %q has neither center nor polygon", ErrMalformedEntity, e.ID)
}

// AssetLocation возвращает проекцию позиции объекта на план.
func AssetLocation(e *models.Entity) (models.Point2D, error) {
	if e.Position == nil {
		return models.Point2D{}, fmt.Errorf("%w: asset %q has no position", ErrMalformedEntity, e.ID)
	}
	return e.Position.Plan(), nil
}
