package engine

import (
	"testing"

	"floorprox/internal/proximity/models"
)

func testResources() models.Resources {
	return models.Resources{
		Spaces: []*models.Entity{
			{ID: "room", Kind: models.KindSpace, Polygon: [][2]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}}},
		},
		Assets: []*models.Entity{
			{ID: "desk", Kind: models.KindAsset, SubCategories: []string{"desk"}, Position: &models.Vec3{X: 2, Z: 2}},
			{ID: "table", Kind: models.KindAsset, Polygon: [][2]float64{{5, 5}, {7, 5}, {7, 7}, {5, 7}}, Position: &models.Vec3{X: 6, Z: 6}},
		},
	}
}

func TestResourcesAt(t *testing.T) {
	e := New("f1", testResources(), 0.5)

	tests := []struct {
		name   string
		p      models.Point2D
		spaces int
		assets []string
	}{
		{"desk radius", models.Point2D{X: 2.3, Y: 2.3}, 1, []string{"desk"}},
		{"table footprint", models.Point2D{X: 6.9, Y: 5.1}, 1, []string{"table"}},
		{"empty floor", models.Point2D{X: 9, Y: 1}, 1, nil},
		{"outside", models.Point2D{X: 20, Y: 20}, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.ResourcesAt(tt.p)
			if len(got.Spaces) != tt.spaces {
				t.Errorf("spaces = %d, want %d", len(got.Spaces), tt.spaces)
			}
			if len(got.Assets) != len(tt.assets) {
				t.Fatalf("assets = %d, want %d", len(got.Assets), len(tt.assets))
			}
			for i, id := range tt.assets {
				if got.Assets[i].ID != id {
					t.Errorf("asset[%d] = %s, want %s", i, got.Assets[i].ID, id)
				}
			}
		})
	}
}

func TestMarkersLifecycle(t *testing.T) {
	e := New("f1", testResources(), 0)

	a := e.AddMarker(models.MarkerSpec{Class: models.MarkerClassCursor, Type: models.MarkerTypeDefault})
	b := e.AddMarker(models.MarkerSpec{Class: models.MarkerClassIcon, Type: "aed"})
	if a.ID() == b.ID() {
		t.Fatal("marker ids must be unique")
	}
	if e.MarkerCount() != 2 {
		t.Fatalf("markers = %d, want 2", e.MarkerCount())
	}

	views := e.Markers()
	if views[0].ID != a.ID() || views[1].Type != "aed" {
		t.Errorf("markers not in creation order: %+v", views)
	}

	a.Remove()
	a.Remove()
	if e.MarkerCount() != 1 {
		t.Errorf("markers = %d, want 1", e.MarkerCount())
	}
}

func TestClickReplacesHandler(t *testing.T) {
	e := New("f1", testResources(), 0)
	if e.Click(models.Point2D{}) {
		t.Error("click without handler should report false")
	}

	var first, second int
	e.OnClick(func(models.ClickEvent) { first++ })
	e.OnClick(func(models.ClickEvent) { second++ })
	e.Click(models.Point2D{X: 1, Y: 1})

	if first != 0 || second != 1 {
		t.Errorf("first=%d second=%d, want handler replaced", first, second)
	}
}

func TestHighlight(t *testing.T) {
	e := New("f1", testResources(), 0)
	room := e.Resources().Spaces[0]
	e.SetHighlight(room, models.Highlight{Fill: models.RGB{1, 2, 3}, FillOpacity: 0.4})

	h, ok := e.Highlight("room")
	if !ok || h.FillOpacity != 0.4 || h.Fill != (models.RGB{1, 2, 3}) {
		t.Errorf("highlight = %+v ok=%v", h, ok)
	}
}
