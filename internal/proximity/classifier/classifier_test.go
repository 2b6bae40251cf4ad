package classifier

import (
	"errors"
	"strings"
	"testing"

	"floorprox/internal/proximity/models"
)

func space(id, program, usage string, cx, cy float64) *models.Entity {
	return &models.Entity{
		ID:      id,
		Kind:    models.KindSpace,
		Program: program,
		Usage:   usage,
		Center:  &models.Point2D{X: cx, Y: cy},
	}
}

func asset(id, product string, x, z float64, tags ...string) *models.Entity {
	return &models.Entity{
		ID:            id,
		Kind:          models.KindAsset,
		ProductID:     product,
		SubCategories: tags,
		Position:      &models.Vec3{X: x, Y: 0.7, Z: z},
	}
}

func groupIDs(g Group) []string {
	var ids []string
	for _, m := range g.Members {
		ids = append(ids, m.Entity.ID)
	}
	return ids
}

func TestClassifySpacesPartition(t *testing.T) {
	res := models.Resources{
		Spaces: []*models.Entity{
			space("m1", "meet", "", 0, 0),
			space("s1", "socialize", "", 1, 1),
			space("r1", "", "restroom", 2, 2),
			space("st1", "", "storage", 3, 3),
			space("e1", "", "elevator", 4, 4),
			space("sc1", "", "staircase", 5, 5),
			space("w1", "work", "openOffice", 6, 6),
			space("m2", "meet", "", 7, 7),
		},
	}

	c, err := Classify(res, nil)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	want := map[string][]string{
		"meetingRoom":    {"m1", "m2"},
		"socializeSpace": {"s1"},
		"restroom":       {"r1"},
		"storage":        {"st1"},
		"elevator":       {"e1"},
		"staircase":      {"sc1"},
	}
	seen := make(map[string]int)
	for _, g := range c.Spaces {
		ids := groupIDs(g)
		if strings.Join(ids, ",") != strings.Join(want[g.Name], ",") {
			t.Errorf("%s = %v, want %v", g.Name, ids, want[g.Name])
		}
		for _, id := range ids {
			seen[id]++
		}
	}
	if seen["w1"] != 0 {
		t.Error("unrecognized space must not join any group")
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("space %s appears in %d groups, want 1", id, n)
		}
	}
}

func TestClassifyFirstRuleWins(t *testing.T) {
	res := models.Resources{Spaces: []*models.Entity{space("x", "meet", "restroom", 0, 0)}}
	c, err := Classify(res, nil)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	meet, _ := c.Group("meetingRoom")
	rest, _ := c.Group("restroom")
	if len(meet.Members) != 1 || len(rest.Members) != 0 {
		t.Errorf("meetingRoom=%d restroom=%d, want 1 and 0", len(meet.Members), len(rest.Members))
	}
}

func TestClassifyAssets(t *testing.T) {
	res := models.Resources{
		Assets: []*models.Entity{
			asset("d1", "", 0, 0, "desk"),
			asset("c1", "", 1, 0, "taskChair"),
			asset("d2", "", 10, 0, "table", "desk"),
			asset("aed1", "79ee0055-9660-4cb0-9bdb-924b383890eb", 3, 4),
			asset("ext1", "4a60754a-19c4-41da-aa6c-13a9b3e66d4c", 5, 6),
			asset("unknown", "00000000-0000-0000-0000-000000000000", 7, 8),
		},
	}

	c, err := Classify(res, nil)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	var desks []string
	for _, d := range c.Desks {
		desks = append(desks, d.Entity.ID)
	}
	if strings.Join(desks, ",") != "d1,d2" {
		t.Errorf("desks = %v, want [d1 d2]", desks)
	}

	aed, _ := c.Group("aed")
	if ids := groupIDs(aed); len(ids) != 1 || ids[0] != "aed1" {
		t.Errorf("aed = %v, want [aed1]", ids)
	}
	if aed.Members[0].At != (models.Point2D{X: 3, Y: 4}) {
		t.Errorf("aed location = %v, want (3,4) from x/z", aed.Members[0].At)
	}

	total := 0
	for _, g := range c.Assets {
		total += len(g.Members)
	}
	if total != 2 {
		t.Errorf("asset members = %d, want 2 (unknown id excluded)", total)
	}
	if len(c.Assets) != 6 {
		t.Errorf("asset groups = %d, want 6", len(c.Assets))
	}
}

func TestClassifyEmptyScene(t *testing.T) {
	c, err := Classify(models.Resources{}, nil)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if len(c.Desks) != 0 {
		t.Error("expected no desks")
	}
	for _, g := range c.Categories() {
		if len(g.Members) != 0 {
			t.Errorf("%s should be empty", g.Name)
		}
	}
	if len(c.Categories()) != 12 {
		t.Errorf("categories = %d, want 12", len(c.Categories()))
	}
}

func TestClassifyMalformed(t *testing.T) {
	tests := []struct {
		name string
		res  models.Resources
	}{
		{"desk without position", models.Resources{Assets: []*models.Entity{{ID: "d", SubCategories: []string{"desk"}}}}},
		{"meeting room without center", models.Resources{Spaces: []*models.Entity{{ID: "m", Program: "meet"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify(tt.res, nil)
			if !errors.Is(err, ErrMalformedEntity) {
				t.Errorf("err = %v, want ErrMalformedEntity", err)
			}
		})
	}
}

func TestClassifyPolygonCentroid(t *testing.T) {
	room := &models.Entity{ID: "m", Program: "meet", Polygon: [][2]float64{{0, 0}, {4, 0}, {4, 4}, {0, 4}}}
	c, err := Classify(models.Resources{Spaces: []*models.Entity{room}}, nil)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	g, _ := c.Group("meetingRoom")
	if got := g.Members[0].At; got != (models.Point2D{X: 2, Y: 2}) {
		t.Errorf("location = %v, want (2,2)", got)
	}
}

func TestParseCatalogValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"both program and usage", "spaces:\n  - category: a\n    program: meet\n    usage: storage\n"},
		{"duplicate category", "spaces:\n  - category: a\n    program: meet\nassets:\n  - category: a\n    productId: x\n"},
		{"duplicate product", "assets:\n  - category: a\n    productId: x\n  - category: b\n    productId: x\n"},
		{"missing product", "assets:\n  - category: a\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseCatalog([]byte(tt.yaml)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestDefaultCatalogOrder(t *testing.T) {
	got := strings.Join(DefaultCatalog().Categories(), ",")
	want := "meetingRoom,socializeSpace,restroom,storage,elevator,staircase,aed,emergencyExit,fireHose,fireAlarm,extinguisher,sanitizer"
	if got != want {
		t.Errorf("categories = %s, want %s", got, want)
	}
}
