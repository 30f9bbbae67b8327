package model

import (
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidash/pkg/domain/types"
)

// AdHocInput is a run-query click with the free-text SQL typed by the user
type AdHocInput struct {
	Clicks int
	SQL    string
}

// QueryOutcome is what the query panel renders: a table, a notice that the query returned no
// rows, or an error message. Exactly one of them is set.
type QueryOutcome struct {
	Table *Table `json:"table,omitempty"`
	Empty bool   `json:"empty"`
	Error string `json:"error,omitempty"`
}

// QueryPreset is a named, parameterized query that can be run without a query token
type QueryPreset struct {
	Name        types.PresetName `yaml:"name" json:"name"`
	Description string           `yaml:"description" json:"description"`
	SQL         string           `yaml:"sql" json:"sql"`
	Params      []string         `yaml:"params,omitempty" json:"params,omitempty"`
}

var presetNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Validate validates the preset definition
func (p *QueryPreset) Validate() error {
	if !presetNamePattern.MatchString(p.Name.String()) {
		return goerr.New("invalid preset name", goerr.V("name", p.Name))
	}
	if strings.TrimSpace(p.SQL) == "" {
		return goerr.New("preset SQL is empty", goerr.V("name", p.Name))
	}

	placeholders := strings.Count(p.SQL, "?")
	if placeholders != len(p.Params) {
		return goerr.New("placeholder count does not match params",
			goerr.V("name", p.Name),
			goerr.V("placeholders", placeholders),
			goerr.V("params", len(p.Params)))
	}

	seen := make(map[string]bool)
	for _, param := range p.Params {
		if param == "" {
			return goerr.New("empty param name", goerr.V("name", p.Name))
		}
		if seen[param] {
			return goerr.New("duplicate param name", goerr.V("name", p.Name), goerr.V("param", param))
		}
		seen[param] = true
	}
	return nil
}

// Bind converts named parameter values into positional arguments in declaration order
func (p *QueryPreset) Bind(values map[string]string) ([]any, error) {
	args := make([]any, 0, len(p.Params))
	for _, param := range p.Params {
		v, ok := values[param]
		if !ok {
			return nil, goerr.Wrap(ErrMissingParameter, "preset parameter is not set",
				goerr.V("preset", p.Name),
				goerr.V("param", param))
		}
		args = append(args, v)
	}
	return args, nil
}

// QueryPresets represents the presets configuration
type QueryPresets struct {
	Presets []QueryPreset `yaml:"presets" json:"presets"`
}

// DefaultCountriesSQL is the query prefilled in the query box
const DefaultCountriesSQL = `SELECT COUNTRY_REGION FROM ECDC_GLOBAL GROUP BY COUNTRY_REGION ORDER BY COUNTRY_REGION;`

// DefaultQueryPresets returns the presets available without a configuration file
func DefaultQueryPresets() *QueryPresets {
	return &QueryPresets{
		Presets: []QueryPreset{
			{
				Name:        "countries",
				Description: "Distinct country/region names in the ECDC table",
				SQL:         DefaultCountriesSQL,
			},
		},
	}
}

// Validate validates the presets configuration
func (c *QueryPresets) Validate() error {
	names := make(map[types.PresetName]bool)
	for i := range c.Presets {
		p := &c.Presets[i]
		if err := p.Validate(); err != nil {
			return goerr.Wrap(err, "invalid preset at index", goerr.V("index", i))
		}
		if names[p.Name] {
			return goerr.New("duplicate preset name", goerr.V("name", p.Name))
		}
		names[p.Name] = true
	}
	return nil
}

// Find finds a preset by name
func (c *QueryPresets) Find(name types.PresetName) (*QueryPreset, error) {
	for _, p := range c.Presets {
		if p.Name == name {
			result := p
			return &result, nil
		}
	}
	return nil, goerr.Wrap(ErrPresetNotFound, "unknown preset", goerr.V("name", name))
}

// Merge returns a new configuration with the presets of other appended. Presets of other
// replace presets with the same name.
func (c *QueryPresets) Merge(other *QueryPresets) *QueryPresets {
	merged := &QueryPresets{}
	override := make(map[types.PresetName]bool)
	if other != nil {
		for _, p := range other.Presets {
			override[p.Name] = true
		}
	}
	for _, p := range c.Presets {
		if !override[p.Name] {
			merged.Presets = append(merged.Presets, p)
		}
	}
	if other != nil {
		merged.Presets = append(merged.Presets, other.Presets...)
	}
	return merged
}
