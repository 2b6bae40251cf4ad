package repository

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"floorprox/internal/proximity/models"
)

// ErrNotFound возвращается, если этажа или токена нет.
var ErrNotFound = errors.New("not found")

//go:embed migrations/*.sql
var migrations embed.FS

// ============================================================
// SQLite Repository
// ============================================================

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Floor - сохраненный план этажа.
type Floor struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Resources models.Resources `json:"resources"`
	CreatedAt string           `json:"createdAt"`
	UpdatedAt string           `json:"updatedAt"`
}

// FloorInfo - строка списка этажей без данных сцены.
type FloorInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UpdatedAt string `json:"updatedAt"`
}

// Init применяет миграции и создает начальный токен, если его нет.
func (r *Repository) Init(ctx context.Context, seedToken string) error {
	if err := r.runMigrations(ctx); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	if seedToken == "" {
		return nil
	}
	return r.ensureToken(ctx, seedToken, "seed")
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// ============================================================
// Floors
// ============================================================

// SaveFloor вставляет или заменяет сцену этажа.
func (r *Repository) SaveFloor(ctx context.Context, id, name string, res models.Resources) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
        INSERT INTO floors (id, name, scene_json)
        VALUES (?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            name = excluded.name,
            scene_json = excluded.scene_json,
            updated_at = datetime('now')
    `, id, name, string(data))
	if err != nil {
		return fmt.Errorf("save floor: %w", err)
	}
	return nil
}

func (r *Repository) GetFloor(ctx context.Context, id string) (*Floor, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, name, scene_json, created_at, updated_at
        FROM floors
        WHERE id = ?
    `, id)

	var f Floor
	var sceneJSON string
	if err := row.Scan(&f.ID, &f.Name, &sceneJSON, &f.CreatedAt, &f.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("floor %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	if err := json.Unmarshal([]byte(sceneJSON), &f.Resources); err != nil {
		return nil, fmt.Errorf("decode scene %s: %w", id, err)
	}
	return &f, nil
}

func (r *Repository) ListFloors(ctx context.Context) ([]FloorInfo, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, name, updated_at
        FROM floors
        ORDER BY id
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FloorInfo
	for rows.Next() {
		var f FloorInfo
		if err := rows.Scan(&f.ID, &f.Name, &f.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// ============================================================
// Access tokens
// ============================================================

// ValidToken проверяет, может ли токен загружать сцены.
func (r *Repository) ValidToken(ctx context.Context, token string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM access_tokens WHERE token = ?`, token).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *Repository) AddToken(ctx context.Context, token, label string) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO access_tokens (token, label)
        VALUES (?, ?)
        ON CONFLICT(token) DO NOTHING
    `, token, label)
	if err != nil {
		return fmt.Errorf("add token: %w", err)
	}
	return nil
}

func (r *Repository) ensureToken(ctx context.Context, token, label string) error {
	ok, err := r.ValidToken(ctx, token)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	if err := r.AddToken(ctx, token, label); err != nil {
		return fmt.Errorf("seed token: %w", err)
	}
	return nil
}

// ============================================================
// Migrations
// ============================================================

func (r *Repository) runMigrations(ctx context.Context) error {
	entries, err := migrations.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	for _, e := range entries {
		data, err := migrations.ReadFile("migrations/" + e.Name())
		if err != nil {
			return fmt.Errorf("read migration %s: %w", e.Name(), err)
		}
		if _, err := r.db.ExecContext(ctx, string(data)); err != nil {
			return fmt.Errorf("apply migration %s: %w", e.Name(), err)
		}
	}
	return nil
}

// OpenSQLite открывает sqlite базу по dbPath и создает каталог.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?mode=rwc&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
