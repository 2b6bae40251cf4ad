package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"floorprox/internal/proximity/models"
	"floorprox/internal/proximity/report"
	"floorprox/internal/proximity/session"

	"github.com/charmbracelet/lipgloss"
)

// Styles
var (
	accentFg  = lipgloss.Color("#7C3AED")
	dimFg     = lipgloss.Color("#6B7280")
	borderCol = lipgloss.Color("#243141")

	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(dimFg)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	nameStyle  = lipgloss.NewStyle().Width(18)
	valueStyle = lipgloss.NewStyle().Width(8).Align(lipgloss.Right)
)

// renderDistances рисует по строке на категорию, отсортировано по имени.
func renderDistances(title string, d models.Distances) string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]string, 0, len(names)+1)
	rows = append(rows, titleStyle.Render(title))
	for _, name := range names {
		value := report.FormatValue(d[name])
		if d[name] == nil {
			value = dimStyle.Render(value)
		}
		rows = append(rows, nameStyle.Render(name)+valueStyle.Render(value))
	}
	return boxStyle.Render(strings.Join(rows, "\n"))
}

func renderClick(p models.Point2D, snap session.Snapshot, entry report.Entry, reported bool) string {
	header := fmt.Sprintf("Click (%s, %s): %s", trimFloat(p.X), trimFloat(p.Y), snap.State)
	if snap.Selected != "" {
		header += " " + snap.Selected
	}
	header += dimStyle.Render(fmt.Sprintf("  markers=%d", snap.Markers))

	switch {
	case reported:
		return header + "\n" + renderDistances("Nearest distances", entry.NearestDistances)
	case snap.State == "selected":
		return header + "\n" + dimStyle.Render("nearest distances unchanged, not reported")
	}
	return header
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
