package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Input:      "in.dcm",
		Filtered:   "filtered.dcm",
		Assessment: "assessment.dcm",
		Remove:     "0,7",
		LogFormat:  "console",
		Observer:   Observer{DateTime: "20250204120000"},
		Equipment:  Equipment{ContributionDateTime: "20250204120000.000000"},
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "Hussain^Mohannad", cfg.Observer.Name)
	assert.Equal(t, "IHE Reference Implementation", cfg.Observer.Organization)
	assert.Equal(t, "20250204120000", cfg.Observer.DateTime)
	assert.Equal(t, "Mohannad Hussain", cfg.Equipment.Manufacturer)
	assert.Equal(t, "Python script", cfg.Equipment.Model)
	assert.Equal(t, "0.0.1", cfg.Equipment.SoftwareVersion)
	assert.Equal(t, "Reference IHE profile implementation", cfg.Equipment.Description)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.False(t, cfg.PerObservation)
	assert.Empty(t, cfg.Remove)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("SRASSESS_OBSERVER_NAME", "Doe^John")
	t.Setenv("SRASSESS_REMOVE", "1,2")
	t.Setenv("SRASSESS_PER_OBSERVATION", "true")

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "Doe^John", cfg.Observer.Name)
	assert.Equal(t, "1,2", cfg.Remove)
	assert.True(t, cfg.PerObservation)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "srassess.yaml")
	content := "observer:\n  organization: Radiology QA\nequipment:\n  model: srassess\nremove: \"3\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "Radiology QA", cfg.Observer.Organization)
	assert.Equal(t, "Hussain^Mohannad", cfg.Observer.Name, "unset keys keep defaults")
	assert.Equal(t, "srassess", cfg.Equipment.Model)
	assert.Equal(t, "3", cfg.Remove)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseIndices(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []int
		wantErr  bool
	}{
		{"empty", "", []int{}, false},
		{"blank", "  ", []int{}, false},
		{"single", "7", []int{7}, false},
		{"list with spaces", "0, 7", []int{0, 7}, false},
		{"duplicates kept", "7,7", []int{7, 7}, false},
		{"negative", "-1", nil, true},
		{"not a number", "a", nil, true},
		{"trailing comma", "0,", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIndices(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"missing input", func(c *Config) { c.Input = "" }},
		{"missing filtered", func(c *Config) { c.Filtered = "" }},
		{"missing assessment", func(c *Config) { c.Assessment = "" }},
		{"same outputs", func(c *Config) { c.Assessment = c.Filtered }},
		{"bad indices", func(c *Config) { c.Remove = "x" }},
		{"bad observer datetime", func(c *Config) { c.Observer.DateTime = "2025" }},
		{"bad contribution datetime", func(c *Config) { c.Equipment.ContributionDateTime = "2025-02-04" }},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestConfig_AssessmentOptions(t *testing.T) {
	t.Setenv("SRASSESS_EQUIPMENT_INSTITUTION", "General Hospital")

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	cfg.PerObservation = true

	opts := cfg.AssessmentOptions()
	assert.Equal(t, "Hussain^Mohannad", opts.Observer.Name)
	assert.Equal(t, "General Hospital", opts.Equipment.Institution)
	assert.Equal(t, "AI Result Assessment", opts.SeriesDescription)
	assert.True(t, opts.PerObservation)
	assert.NotNil(t, opts.Now)
}
