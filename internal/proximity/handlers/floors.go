package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"floorprox/internal/proximity/classifier"
	"floorprox/internal/proximity/models"
	"floorprox/internal/proximity/report"
	"floorprox/internal/proximity/session"
	"floorprox/internal/scene/loader"
	"floorprox/internal/scene/parser"
	"floorprox/internal/scene/render"
	"floorprox/internal/scene/repository"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Floor Handler
// ============================================================

// Store - хранилище этажей для HTTP слоя.
type Store interface {
	Ping(ctx context.Context) error
	SaveFloor(ctx context.Context, id, name string, res models.Resources) error
	GetFloor(ctx context.Context, id string) (*repository.Floor, error)
	ListFloors(ctx context.Context) ([]repository.FloorInfo, error)
}

type FloorHandler struct {
	store    Store
	sessions *session.Registry
	board    *report.Board
	catalog  *classifier.Catalog
	renderer *render.Renderer
}

func NewFloorHandler(store Store, sessions *session.Registry, board *report.Board, catalog *classifier.Catalog) *FloorHandler {
	if catalog == nil {
		catalog = classifier.DefaultCatalog()
	}
	return &FloorHandler{
		store:    store,
		sessions: sessions,
		board:    board,
		catalog:  catalog,
		renderer: render.NewRenderer(),
	}
}

// Mount регистрирует health и маршруты этажей.
func (h *FloorHandler) Mount(r fiber.Router) {
	r.Get("/health/live", h.Live)
	r.Get("/health/ready", h.Ready)

	floors := r.Group("/floors")
	floors.Get("/", h.ListFloors)
	floors.Post("/:id/scene", h.ImportScene)
	floors.Post("/:id/svg", h.ImportSVG)
	floors.Post("/:id/load", h.Load)
	floors.Post("/:id/click", h.Click)
	floors.Put("/:id/settings", h.Settings)
	floors.Get("/:id/session", h.Session)
	floors.Get("/:id/averages", h.Averages)
	floors.Get("/:id/nearest", h.Nearest)
	floors.Get("/:id/markers", h.Markers)
	floors.Get("/:id/overlay.svg", h.Overlay)
}

// ============================================================
// Health
// ============================================================

func (h *FloorHandler) Live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "alive"})
}

// Ready сообщает о готовности, когда база отвечает.
func (h *FloorHandler) Ready(c fiber.Ctx) error {
	if err := h.store.Ping(context.Background()); err != nil {
		log.Printf("[HTTP] readiness ping failed: %v", err)
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
			"error":  err.Error(),
		})
	}
	return c.JSON(fiber.Map{"status": "ready"})
}

// ============================================================
// Import
// ============================================================

func (h *FloorHandler) ListFloors(c fiber.Ctx) error {
	floors, err := h.store.ListFloors(context.Background())
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if floors == nil {
		floors = []repository.FloorInfo{}
	}
	return c.JSON(floors)
}

// ImportScene сохраняет этаж из JSON тела с ресурсами.
func (h *FloorHandler) ImportScene(c fiber.Ctx) error {
	if len(c.Body()) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "body required"})
	}

	var res models.Resources
	if err := json.Unmarshal(c.Body(), &res); err != nil {
		log.Printf("[HTTP] scene decode error: %v", err)
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON payload"})
	}
	return h.saveFloor(c, res)
}

// ImportSVG сохраняет этаж из размеченного SVG в multipart поле "file".
func (h *FloorHandler) ImportSVG(c fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "file required in multipart/form-data",
		})
	}

	f, err := file.Open()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to open file"})
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to read file"})
	}

	log.Printf("[HTTP] svg %s received for floor %s, %d bytes", file.Filename, c.Params("id"), len(data))
	res, err := parser.ParseSVG(bytes.NewReader(data))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return h.saveFloor(c, res)
}

// saveFloor проверяет сцену, сохраняет ее и сбрасывает сессию и отчеты
// этажа, чтобы следующая загрузка начала новое поколение.
func (h *FloorHandler) saveFloor(c fiber.Ctx, res models.Resources) error {
	id := c.Params("id")

	cls, err := classifier.Classify(res, h.catalog)
	if err != nil {
		return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}

	name := c.Query("name")
	if name == "" {
		name = id
	}
	if err := h.store.SaveFloor(context.Background(), id, name, res); err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	h.sessions.Drop(id)
	h.board.Forget(id)

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"id":         id,
		"name":       name,
		"spaces":     len(res.Spaces),
		"assets":     len(res.Assets),
		"desks":      len(cls.Desks),
		"categories": len(cls.Categories()),
	})
}

// ============================================================
// Errors
// ============================================================

func statusFor(err error) int {
	switch {
	case errors.Is(err, loader.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, classifier.ErrMalformedEntity):
		return http.StatusUnprocessableEntity
	case errors.Is(err, session.ErrNotLoaded):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func fail(c fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("[HTTP] %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func bearerToken(c fiber.Ctx) string {
	auth := c.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return c.Query("token")
}
