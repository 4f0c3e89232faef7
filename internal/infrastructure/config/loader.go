package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

// GameConfig holds all loaded configurations
type GameConfig struct {
	Combat   *CombatConfig
	Entities *EntitiesConfig
}

// Loader loads game configuration from JSON or YAML files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// decode unmarshals data by file extension
func decode(name string, data []byte, out any) error {
	switch path.Ext(name) {
	case ".json":
		return json.Unmarshal(data, out)
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, out)
	default:
		return fmt.Errorf("unsupported config format %q", path.Ext(name))
	}
}

// loadFirst decodes the first of names that exists
func (l *Loader) loadFirst(out any, names ...string) (string, error) {
	for _, name := range names {
		data, err := fs.ReadFile(l.fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return name, fmt.Errorf("failed to read %s: %w", name, err)
		}
		if err := decode(name, data, out); err != nil {
			return name, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		return name, nil
	}
	return "", fmt.Errorf("failed to read %s: %w", names[0], fs.ErrNotExist)
}

// LoadCombat loads combat.json (or combat.yaml)
func (l *Loader) LoadCombat() (*CombatConfig, error) {
	var cfg CombatConfig
	if _, err := l.loadFirst(&cfg, "combat.json", "combat.yaml"); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// LoadEntities loads entities.yaml (or entities.json)
func (l *Loader) LoadEntities() (*EntitiesConfig, error) {
	var cfg EntitiesConfig
	if _, err := l.loadFirst(&cfg, "entities.yaml", "entities.yml", "entities.json"); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// LoadStage loads a stage file from stages/
func (l *Loader) LoadStage(name string) (*StageConfig, error) {
	var cfg StageConfig
	base := "stages/" + name
	if _, err := l.loadFirst(&cfg, base+".json", base+".yaml"); err != nil {
		return nil, fmt.Errorf("failed to load stage %s: %w", name, err)
	}
	if cfg.ID == "" {
		cfg.ID = name
	}
	return &cfg, nil
}

// LoadAll loads all base configurations (combat, entities)
func (l *Loader) LoadAll() (*GameConfig, error) {
	combat, err := l.LoadCombat()
	if err != nil {
		return nil, err
	}

	entities, err := l.LoadEntities()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Combat:   combat,
		Entities: entities,
	}, nil
}
