package level

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type levelsFile struct {
	Levels []Layout `yaml:"levels"`
}

// LoadYAML decodes and validates a levels file:
//
//	levels:
//	  - name: wave-1
//	    layout:
//	      - {kind: player, x: 960, y: 300}
//	      - {kind: square_enemy, x: 100, y: 900}
func LoadYAML(r io.Reader) (*Queue, error) {
	var f levelsFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoLevels
		}
		return nil, fmt.Errorf("decode levels: %w: %w", ErrInvalidLayout, err)
	}
	if len(f.Levels) == 0 {
		return nil, ErrNoLevels
	}
	for i := range f.Levels {
		if f.Levels[i].Name == "" {
			f.Levels[i].Name = fmt.Sprintf("level-%d", i+1)
		}
		if err := f.Levels[i].Validate(); err != nil {
			return nil, err
		}
	}
	return NewQueue(f.Levels...), nil
}

// LoadFile reads a levels file from disk.
func LoadFile(path string) (*Queue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadYAML(f)
}

// DefaultLevels is the built-in two level campaign.
func DefaultLevels() *Queue {
	return NewQueue(
		Layout{Name: "wave-1", Records: []SpawnRecord{
			{Kind: Player, X: 960, Y: 300},
			{Kind: SquareEnemy, X: 200, Y: 900},
			{Kind: SquareEnemy, X: 960, Y: 1000},
			{Kind: SquareEnemy, X: 1700, Y: 900},
		}},
		Layout{Name: "wave-2", Records: []SpawnRecord{
			{Kind: Player, X: 960, Y: 300},
			{Kind: FlyingEnemy, X: 500, Y: 1000},
			{Kind: FlyingEnemy, X: 1400, Y: 1000},
			{Kind: Boss, X: 960, Y: 950},
		}},
	)
}
