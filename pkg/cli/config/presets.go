package config

import (
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidash/pkg/domain/model"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Presets holds the query presets file configuration
type Presets struct {
	File string
}

// Flags returns CLI flags for Presets configuration
func (p *Presets) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "query-presets",
			Usage:       "YAML file of parameterized query presets",
			Sources:     cli.EnvVars("COVIDASH_QUERY_PRESETS"),
			Destination: &p.File,
		},
	}
}

// Configure returns the built-in presets merged with the presets of the file
func (p *Presets) Configure() (*model.QueryPresets, error) {
	if p.File == "" {
		return model.DefaultQueryPresets(), nil
	}

	loaded, err := LoadQueryPresetsFromFile(p.File)
	if err != nil {
		return nil, err
	}

	merged := model.DefaultQueryPresets().Merge(loaded)
	if err := merged.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid query presets", goerr.V("path", p.File))
	}
	return merged, nil
}

// LoadQueryPresetsFromFile loads query presets from a YAML file
func LoadQueryPresetsFromFile(path string) (*model.QueryPresets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read presets file", goerr.V("path", path))
	}

	var presets model.QueryPresets
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, goerr.Wrap(err, "failed to parse presets file", goerr.V("path", path))
	}

	if err := presets.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid presets configuration", goerr.V("path", path))
	}

	return &presets, nil
}

// LogValue returns structured log value
func (p Presets) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("file", p.File),
	)
}
