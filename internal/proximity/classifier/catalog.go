package classifier

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ============================================================
// Catalog
// ============================================================

//go:embed catalog.yaml
var defaultCatalog []byte

// SpaceRule сопоставляет program или usage категории помещения.
type SpaceRule struct {
	Category string `yaml:"category"`
	Program  string `yaml:"program,omitempty"`
	Usage    string `yaml:"usage,omitempty"`
}

// AssetRule сопоставляет идентификатор продукта категории объекта безопасности.
type AssetRule struct {
	Category  string `yaml:"category"`
	ProductID string `yaml:"productId"`
}

// Catalog - декларативная таблица классификации. Порядок правил задает
// порядок категорий в отчетах и маркерах.
type Catalog struct {
	Spaces []SpaceRule `yaml:"spaces"`
	Assets []AssetRule `yaml:"assets"`
}

// DefaultCatalog возвращает встроенную таблицу.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// LoadCatalog читает каталог из YAML файла. Пустой путь дает встроенную
// таблицу.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog разбирает и проверяет YAML каталога.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog YAML: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	seen := make(map[string]bool)
	for _, r := range c.Spaces {
		if r.Category == "" {
			return fmt.Errorf("space rule without category")
		}
		if (r.Program == "") == (r.Usage == "") {
			return fmt.Errorf("space rule %q: exactly one of program or usage required", r.Category)
		}
		if seen[r.Category] {
			return fmt.Errorf("duplicate category %q", r.Category)
		}
		seen[r.Category] = true
	}

	products := make(map[string]bool)
	for _, r := range c.Assets {
		if r.Category == "" || r.ProductID == "" {
			return fmt.Errorf("asset rule requires category and productId")
		}
		if seen[r.Category] {
			return fmt.Errorf("duplicate category %q", r.Category)
		}
		if products[r.ProductID] {
			return fmt.Errorf("duplicate productId %q", r.ProductID)
		}
		seen[r.Category] = true
		products[r.ProductID] = true
	}
	return nil
}

// Categories перечисляет все категории, сначала помещения.
func (c *Catalog) Categories() []string {
	names := make([]string, 0, len(c.Spaces)+len(c.Assets))
	for _, r := range c.Spaces {
		names = append(names, r.Category)
	}
	for _, r := range c.Assets {
		names = append(names, r.Category)
	}
	return names
}
