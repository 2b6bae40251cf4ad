package loader

import (
	"context"
	"errors"
	"fmt"
	"log"

	"floorprox/internal/proximity/models"
	"floorprox/internal/proximity/session"
	"floorprox/internal/scene/engine"
	"floorprox/internal/scene/repository"
)

// ErrUnauthorized возвращается для неизвестного токена доступа.
var ErrUnauthorized = errors.New("invalid access token")

// ============================================================
// Scene Loader
// ============================================================

// Store - хранилище этажей, из которого читает загрузчик.
type Store interface {
	ValidToken(ctx context.Context, token string) (bool, error)
	GetFloor(ctx context.Context, id string) (*repository.Floor, error)
}

type Loader struct {
	store     Store
	hitRadius float64
}

func New(store Store, hitRadius float64) *Loader {
	return &Loader{store: store, hitRadius: hitRadius}
}

// Load проверяет токен и собирает движок сцены для этажа.
func (l *Loader) Load(ctx context.Context, floorID, token string) (*engine.Engine, error) {
	ok, err := l.store.ValidToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("check token: %w", err)
	}
	if !ok {
		return nil, ErrUnauthorized
	}

	floor, err := l.store.GetFloor(ctx, floorID)
	if err != nil {
		return nil, err
	}

	log.Printf("[SCENE] loaded floor %s (%d spaces, %d assets)", floorID, len(floor.Resources.Spaces), len(floor.Resources.Assets))
	return engine.New(floorID, floor.Resources, l.hitRadius), nil
}

// Static отдает один этаж из памяти с любым непустым токеном.
// Используется CLI для анализа файлов без базы.
type Static struct {
	FloorID   string
	Resources models.Resources
	HitRadius float64
}

func (s Static) Load(_ context.Context, floorID, _ string) (*engine.Engine, error) {
	if floorID != s.FloorID {
		return nil, fmt.Errorf("floor %s: %w", floorID, repository.ErrNotFound)
	}
	return engine.New(floorID, s.Resources, s.HitRadius), nil
}

// SessionFunc приводит загрузчик движка к контракту загрузки сессии.
func SessionFunc(load func(ctx context.Context, floorID, token string) (*engine.Engine, error)) session.LoadFunc {
	return func(ctx context.Context, floorID, token string) (session.Scene, error) {
		eng, err := load(ctx, floorID, token)
		if err != nil {
			return nil, err
		}
		return eng, nil
	}
}
