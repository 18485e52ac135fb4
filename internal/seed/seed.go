// Package seed loads the dataset that bootstraps the region store.
//
// With no path configured the embedded default dataset is used. Otherwise
// the file extension picks the decoder: .json for JSON, .yaml or .yml for
// YAML. Both formats use the same field names as the JSON API.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/JonMunkholm/regions/internal/core"
	"gopkg.in/yaml.v3"
)

//go:embed regions.json
var defaultDataset []byte

// Load returns the regions described by the file at path, or the embedded
// default dataset when path is empty.
func Load(path string) ([]core.Region, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return decodeJSON(data)
	case ".yaml", ".yml":
		return decodeYAML(data)
	default:
		return nil, fmt.Errorf("seed file %s: unsupported extension %q (want .json, .yaml or .yml)", path, ext)
	}
}

// Default returns the embedded default dataset.
func Default() ([]core.Region, error) {
	return decodeJSON(defaultDataset)
}

func decodeJSON(data []byte) ([]core.Region, error) {
	var regions []core.Region
	if err := json.Unmarshal(data, &regions); err != nil {
		return nil, fmt.Errorf("decode json seed: %w", err)
	}
	return regions, nil
}

func decodeYAML(data []byte) ([]core.Region, error) {
	var regions []core.Region
	if err := yaml.Unmarshal(data, &regions); err != nil {
		return nil, fmt.Errorf("decode yaml seed: %w", err)
	}
	return regions, nil
}
