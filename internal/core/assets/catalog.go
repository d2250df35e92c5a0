package assets

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Template is a declarative prefab: the component initializers for one kind
// of spawned entity. Zero-valued sections are not attached.
type Template struct {
	SpriteIndex int               `yaml:"sprite_index"`
	Scale       float64           `yaml:"scale"`
	Enemy       *EnemyTemplate    `yaml:"enemy,omitempty"`
	Movement    *MovementTemplate `yaml:"movement,omitempty"`
	Health      int               `yaml:"health"`
	Collider    *ColliderTemplate `yaml:"collider,omitempty"`
	Launcher    *LauncherTemplate `yaml:"launcher,omitempty"`
}

type EnemyTemplate struct {
	Speed float64 `yaml:"speed"`
}

type MovementTemplate struct {
	Speed       float64 `yaml:"speed"`
	LockOnSight bool    `yaml:"lock_on_sight"`
}

type ColliderTemplate struct {
	HalfWidth  float64 `yaml:"half_width"`
	HalfHeight float64 `yaml:"half_height"`
}

type LauncherTemplate struct {
	Direction string  `yaml:"direction"`
	Interval  float64 `yaml:"interval"`
	Speed     float64 `yaml:"speed"`
	Damage    int     `yaml:"damage"`
}

// Catalog maps template names to prefabs.
type Catalog struct {
	Templates map[string]Template `yaml:"templates"`
}

// Template returns the named prefab.
func (c *Catalog) Template(name string) (Template, error) {
	t, ok := c.Templates[name]
	if !ok {
		return Template{}, fmt.Errorf("%q: %w", name, ErrUnknownTemplate)
	}
	return t, nil
}

// Validate checks every template for impossible values.
func (c *Catalog) Validate() error {
	for name, t := range c.Templates {
		if t.Scale < 0 {
			return fmt.Errorf("%s: negative scale: %w", name, ErrInvalidTemplate)
		}
		if t.Enemy != nil && t.Enemy.Speed < 0 {
			return fmt.Errorf("%s: negative enemy speed: %w", name, ErrInvalidTemplate)
		}
		if t.Movement != nil && t.Movement.Speed < 0 {
			return fmt.Errorf("%s: negative movement speed: %w", name, ErrInvalidTemplate)
		}
		if t.Launcher != nil && t.Launcher.Interval <= 0 {
			return fmt.Errorf("%s: launcher interval must be positive: %w", name, ErrInvalidTemplate)
		}
	}
	return nil
}

// LoadCatalogYAML decodes and validates a catalog.
func LoadCatalogYAML(r io.Reader) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadCatalogFile reads a catalog from disk.
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadCatalogYAML(f)
}

// DefaultCatalog mirrors the stock prefab files: a seeking square enemy, a
// diving flying enemy, a firing boss and the player.
func DefaultCatalog() *Catalog {
	return &Catalog{Templates: map[string]Template{
		"player": {
			SpriteIndex: 0,
			Scale:       0.25,
			Health:      5,
			Collider:    &ColliderTemplate{HalfWidth: 16, HalfHeight: 16},
			Launcher:    &LauncherTemplate{Direction: "up", Interval: 0.25, Speed: 900, Damage: 1},
		},
		"square_enemy": {
			SpriteIndex: 1,
			Scale:       0.25,
			Enemy:       &EnemyTemplate{Speed: 120},
			Health:      2,
			Collider:    &ColliderTemplate{HalfWidth: 20, HalfHeight: 20},
		},
		"flying_enemy": {
			SpriteIndex: 2,
			Scale:       0.25,
			Enemy:       &EnemyTemplate{},
			Movement:    &MovementTemplate{Speed: 260, LockOnSight: true},
			Health:      1,
			Collider:    &ColliderTemplate{HalfWidth: 18, HalfHeight: 14},
		},
		"boss": {
			SpriteIndex: 0,
			Scale:       0.5,
			Enemy:       &EnemyTemplate{Speed: 40},
			Health:      20,
			Collider:    &ColliderTemplate{HalfWidth: 60, HalfHeight: 60},
			Launcher:    &LauncherTemplate{Direction: "down", Interval: 1.5, Speed: 400, Damage: 1},
		},
	}}
}
