package resources

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// decodeTOML reads a TOML file into v. Decode errors carry the offending line.
func decodeTOML(fullPath string, v interface{}) error {
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return err
	}
	if err := toml.Unmarshal(data, v); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return fmt.Errorf("%s:%d:%d: %w", fullPath, row, col, err)
		}
		return err
	}
	return nil
}

type TextLoader struct{}

func (tl *TextLoader) Load(fullPath string) (interface{}, error) {
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (tl *TextLoader) Unload(*Resource) error {
	return nil
}

type MaterialLoader struct{}

func (ml *MaterialLoader) Load(fullPath string) (interface{}, error) {
	m := &Material{}
	if err := decodeTOML(fullPath, m); err != nil {
		return nil, err
	}
	if m.Technique == "" {
		return nil, fmt.Errorf("material '%s' has no technique", fullPath)
	}
	return m, nil
}

func (ml *MaterialLoader) Unload(*Resource) error {
	return nil
}

type RenderPathLoader struct{}

func (rl *RenderPathLoader) Load(fullPath string) (interface{}, error) {
	def := &RenderPathDefinition{}
	if err := decodeTOML(fullPath, def); err != nil {
		return nil, err
	}
	for i, cmd := range def.Commands {
		if cmd.Type == "" {
			return nil, fmt.Errorf("render path '%s': command %d has no type", fullPath, i)
		}
	}
	return def, nil
}

func (rl *RenderPathLoader) Unload(*Resource) error {
	return nil
}

type StyleLoader struct{}

func (sl *StyleLoader) Load(fullPath string) (interface{}, error) {
	s := &Style{}
	if err := decodeTOML(fullPath, s); err != nil {
		return nil, err
	}
	if s.Elements == nil {
		s.Elements = make(map[string]ElementStyle)
	}
	return s, nil
}

func (sl *StyleLoader) Unload(*Resource) error {
	return nil
}
