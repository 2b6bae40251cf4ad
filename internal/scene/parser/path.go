package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ============================================================
// Path Parser
// ============================================================

var pathCommand = regexp.MustCompile(`([MmLlHhVvZz])([^MmLlHhVvZz]*)`)

// ParsePath переводит контур SVG path в координаты плана. Поддерживаются
// команды M, L, H, V и Z, абсолютные и относительные. Лишние пары после
// M или L повторяют команду линии. Замыкающая точка Z не дублируется.
func ParsePath(d string) ([][2]float64, error) {
	d = strings.TrimSpace(d)
	if d == "" {
		return nil, fmt.Errorf("empty path")
	}

	var points [][2]float64
	var x, y float64

	matches := pathCommand.FindAllStringSubmatch(d, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("no path commands in %q", d)
	}

	for _, match := range matches {
		cmd := match[1]
		args := parseCoords(match[2])
		relative := strings.ToLower(cmd) == cmd

		switch strings.ToUpper(cmd) {
		case "M", "L":
			if len(args)%2 != 0 || len(args) == 0 {
				return nil, fmt.Errorf("command %s needs coordinate pairs", cmd)
			}
			for i := 0; i < len(args); i += 2 {
				if relative {
					x += args[i]
					y += args[i+1]
				} else {
					x, y = args[i], args[i+1]
				}
				points = append(points, [2]float64{x, y})
			}

		case "H":
			for _, v := range args {
				if relative {
					x += v
				} else {
					x = v
				}
				points = append(points, [2]float64{x, y})
			}

		case "V":
			for _, v := range args {
				if relative {
					y += v
				} else {
					y = v
				}
				points = append(points, [2]float64{x, y})
			}

		case "Z":
			if len(points) > 0 {
				x, y = points[0][0], points[0][1]
			}
		}
	}

	return points, nil
}

func parseCoords(s string) []float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	s = strings.ReplaceAll(s, ",", " ")
	var coords []float64
	for _, part := range strings.Fields(s) {
		if val, err := strconv.ParseFloat(part, 64); err == nil {
			coords = append(coords, val)
		}
	}
	return coords
}
