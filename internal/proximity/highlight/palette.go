package highlight

import "floorprox/internal/proximity/models"

// ProgramColors - палитра заливки режима default по program помещения.
var ProgramColors = map[string]models.RGB{
	"work":      {160, 203, 232},
	"meet":      {246, 178, 107},
	"socialize": {255, 217, 102},
	"support":   {182, 215, 168},
	"care":      {213, 166, 189},
	"circulate": {204, 204, 204},
	"other":     {230, 230, 230},
}

// Цвета подсветки столов и кресел.
var (
	DeskDefault     = models.RGB{90, 110, 140}
	DeskHighlighted = models.RGB{0, 140, 255}
	Monochrome      = models.RGB{255, 255, 255}
)

const (
	BaseOpacity     = 0.4
	DimmedOpacity   = 0.2
	DeskOpacityMono = 0.4
	DeskOpacityFull = 1.0
)

// programColor берет "other" для пустого или неизвестного program.
func programColor(program string) models.RGB {
	if c, ok := ProgramColors[program]; ok && program != "" {
		return c
	}
	return ProgramColors["other"]
}
