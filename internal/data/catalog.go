package data

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nitishagar/bharatdcim/internal/model"
	"github.com/nitishagar/bharatdcim/internal/tariff"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// CatalogFile is the on-disk tariff catalog, in YAML or JSON.
type CatalogFile struct {
	DefaultState string                 `json:"default_state,omitempty" yaml:"default_state,omitempty"`
	Schedules    []model.TariffSchedule `json:"schedules" yaml:"schedules"`
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// LoadCatalog reads a catalog file. The format follows the extension: .json
// is JSON, anything else YAML.
func LoadCatalog(filePath string) (*CatalogFile, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var cat CatalogFile
	if isJSON(filePath) {
		err = json.Unmarshal(raw, &cat)
	} else {
		err = yaml.Unmarshal(raw, &cat)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	return &cat, nil
}

// SaveCatalog writes a catalog file, creating its directory if needed.
func SaveCatalog(cat *CatalogFile, filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	var (
		raw []byte
		err error
	)
	if isJSON(filePath) {
		raw, err = json.MarshalIndent(cat, "", "  ")
	} else {
		raw, err = yaml.Marshal(cat)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	if err := os.WriteFile(filePath, raw, 0644); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}

	return nil
}

// BuiltinCatalog wraps the compiled-in schedules for export.
func BuiltinCatalog() *CatalogFile {
	return &CatalogFile{DefaultState: tariff.DefaultState, Schedules: tariff.Builtin()}
}

// GetDefaultCatalogPath returns TARIFF_CATALOG_FILE (a path or URL), or ""
// to use the builtin catalog.
func GetDefaultCatalogPath() string {
	return os.Getenv("TARIFF_CATALOG_FILE")
}

// OpenRegistry builds a registry from a catalog location: a local file, an
// http(s) URL fetched with client (a default client when nil), or the builtin
// catalog when location is empty. defaultState overrides the catalog's own.
func OpenRegistry(ctx context.Context, location, defaultState string, client *CatalogClient) (*tariff.Registry, error) {
	if location == "" {
		if defaultState == "" {
			defaultState = tariff.DefaultState
		}
		return tariff.NewRegistry(tariff.Builtin(), defaultState)
	}

	var (
		cat *CatalogFile
		err error
	)
	if IsRemote(location) {
		if client == nil {
			client = NewCatalogClient("", zerolog.Nop())
		}
		cat, err = client.Fetch(ctx, location)
	} else {
		cat, err = LoadCatalog(location)
	}
	if err != nil {
		return nil, err
	}

	if defaultState == "" {
		defaultState = cat.DefaultState
	}
	reg, err := tariff.NewRegistry(cat.Schedules, defaultState)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", location, err)
	}
	return reg, nil
}

// MergeCatalogs overlays update onto base: schedules are matched by state
// name (case-insensitive) and replaced in place, and states only in update
// are appended. The result keeps base's default state unless update sets
// one. Neither input is modified.
func MergeCatalogs(base, update *CatalogFile) (merged *CatalogFile, replaced, added []string) {
	merged = &CatalogFile{DefaultState: base.DefaultState}
	if update.DefaultState != "" {
		merged.DefaultState = update.DefaultState
	}
	merged.Schedules = make([]model.TariffSchedule, 0, len(base.Schedules)+len(update.Schedules))

	index := make(map[string]int, len(base.Schedules))
	for _, s := range base.Schedules {
		index[strings.ToLower(s.State)] = len(merged.Schedules)
		merged.Schedules = append(merged.Schedules, s.Clone())
	}
	for _, s := range update.Schedules {
		key := strings.ToLower(s.State)
		if i, ok := index[key]; ok {
			merged.Schedules[i] = s.Clone()
			replaced = append(replaced, s.State)
			continue
		}
		index[key] = len(merged.Schedules)
		merged.Schedules = append(merged.Schedules, s.Clone())
		added = append(added, s.State)
	}
	return merged, replaced, added
}
