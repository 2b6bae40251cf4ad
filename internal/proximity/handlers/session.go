package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"floorprox/internal/proximity/highlight"
	"floorprox/internal/proximity/models"
	"floorprox/internal/proximity/session"
	"floorprox/internal/scene/render"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Session Routes
// ============================================================

// clicker - сцена, которая сама рассылает клики.
type clicker interface {
	Click(p models.Point2D) bool
}

type clickRequest struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

type settingsRequest struct {
	ColorScheme string `json:"colorScheme"`
	ShowIcons   bool   `json:"showIcons"`
}

// Load загружает сцену этажа по токену клиента. Без токена ничего не
// загружается, и ответ это показывает.
func (h *FloorHandler) Load(c fiber.Ctx) error {
	id := c.Params("id")
	_, existed := h.sessions.Lookup(id)
	s := h.sessions.Get(id)

	loaded, err := s.Load(context.Background(), id, bearerToken(c))
	if !existed && !loaded {
		h.sessions.Drop(id)
	}
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"loaded":  loaded,
		"session": s.Snapshot(),
	})
}

func (h *FloorHandler) Click(c fiber.Ctx) error {
	var req clickRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil || req.X == nil || req.Y == nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "x and y required"})
	}

	s, scene, err := h.loaded(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}

	p := models.Point2D{X: *req.X, Y: *req.Y}
	if cl, ok := scene.(clicker); ok {
		cl.Click(p)
	} else {
		s.HandleClick(models.ClickEvent{Pos: p})
	}
	return c.JSON(s.Snapshot())
}

// Settings применяет настройки отображения. Настройки до загрузки
// сохраняются для первой отрисовки сохраненного этажа; на неизвестный этаж 404.
func (h *FloorHandler) Settings(c fiber.Ctx) error {
	var req settingsRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON payload"})
	}
	mode, err := highlight.ParseMode(req.ColorScheme)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	id := c.Params("id")
	s, ok := h.sessions.Lookup(id)
	if !ok {
		if _, err := h.store.GetFloor(context.Background(), id); err != nil {
			return fail(c, err)
		}
		s = h.sessions.Get(id)
	}
	repainted := s.ApplySettings(highlight.Settings{ColorScheme: mode, ShowIcons: req.ShowIcons})
	return c.JSON(fiber.Map{
		"repainted": repainted,
		"session":   s.Snapshot(),
	})
}

func (h *FloorHandler) Session(c fiber.Ctx) error {
	s, ok := h.sessions.Lookup(c.Params("id"))
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "no session for floor"})
	}
	return c.JSON(s.Snapshot())
}

// ============================================================
// Reports
// ============================================================

func (h *FloorHandler) Averages(c fiber.Ctx) error {
	id := c.Params("id")
	entry, ok := h.board.Latest(id)
	if !ok || entry.AvgDistances == nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "no averages reported"})
	}
	return c.JSON(fiber.Map{
		"floorId":      id,
		"avgDistances": entry.AvgDistances,
		"updatedAt":    entry.UpdatedAt,
	})
}

// Nearest возвращает последние ближайшие расстояния, null до первого
// клика по рабочему месту.
func (h *FloorHandler) Nearest(c fiber.Ctx) error {
	id := c.Params("id")
	entry, ok := h.board.Latest(id)
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "floor not loaded"})
	}
	return c.JSON(fiber.Map{
		"floorId":          id,
		"nearestDistances": entry.NearestDistances,
		"updates":          entry.NearestUpdates,
	})
}

// ============================================================
// Overlay
// ============================================================

func (h *FloorHandler) Markers(c fiber.Ctx) error {
	src, err := h.source(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(src.Markers())
}

func (h *FloorHandler) Overlay(c fiber.Ctx) error {
	src, err := h.source(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}

	svg, err := h.renderer.Render(src)
	if err != nil {
		return fail(c, err)
	}
	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(svg)
}

func (h *FloorHandler) loaded(floorID string) (*session.Session, session.Scene, error) {
	s, ok := h.sessions.Lookup(floorID)
	if !ok {
		return nil, nil, session.ErrNotLoaded
	}
	scene, err := s.Scene()
	if err != nil {
		return nil, nil, err
	}
	return s, scene, nil
}

func (h *FloorHandler) source(floorID string) (render.Source, error) {
	_, scene, err := h.loaded(floorID)
	if err != nil {
		return nil, err
	}
	src, ok := scene.(render.Source)
	if !ok {
		return nil, fmt.Errorf("scene of floor %s cannot be rendered", floorID)
	}
	return src, nil
}
