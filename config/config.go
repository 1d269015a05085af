// Package config loads the settings for an assessment run from defaults,
// an optional config file, SRASSESS_ environment variables and flags.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/caio-sobreiro/srassess/assessment"
)

// EnvPrefix prefixes every environment variable, e.g. SRASSESS_OBSERVER_NAME.
const EnvPrefix = "SRASSESS"

// Keys shared between viper, flags and config files.
const (
	KeyInput             = "input"
	KeyFiltered          = "filtered"
	KeyAssessment        = "assessment"
	KeyRemove            = "remove"
	KeyVerbose           = "verbose"
	KeyLogFormat         = "log_format"
	KeyPerObservation    = "per_observation"
	KeySeriesDescription = "series_description"
	KeyObserverName      = "observer.name"
	KeyObserverOrg       = "observer.organization"
	KeyObserverDateTime  = "observer.datetime"
	KeyEquipManufacturer = "equipment.manufacturer"
	KeyEquipModel        = "equipment.model"
	KeyEquipVersion      = "equipment.software_version"
	KeyEquipDescription  = "equipment.description"
	KeyEquipContribution = "equipment.contribution_datetime"
	KeyEquipInstitution  = "equipment.institution"
	KeyEquipSerialNumber = "equipment.serial_number"
)

// Observer identifies who is recorded as verifying the assessment.
type Observer struct {
	Name         string `mapstructure:"name"`
	Organization string `mapstructure:"organization"`
	DateTime     string `mapstructure:"datetime"`
}

// Equipment identifies the software recorded as contributing equipment.
type Equipment struct {
	Manufacturer         string `mapstructure:"manufacturer"`
	Model                string `mapstructure:"model"`
	SoftwareVersion      string `mapstructure:"software_version"`
	Description          string `mapstructure:"description"`
	ContributionDateTime string `mapstructure:"contribution_datetime"`
	Institution          string `mapstructure:"institution"`
	SerialNumber         string `mapstructure:"serial_number"`
}

// Config holds the settings of one run.
type Config struct {
	Input             string    `mapstructure:"input"`
	Filtered          string    `mapstructure:"filtered"`
	Assessment        string    `mapstructure:"assessment"`
	Remove            string    `mapstructure:"remove"`
	Verbose           bool      `mapstructure:"verbose"`
	LogFormat         string    `mapstructure:"log_format"`
	PerObservation    bool      `mapstructure:"per_observation"`
	SeriesDescription string    `mapstructure:"series_description"`
	Observer          Observer  `mapstructure:"observer"`
	Equipment         Equipment `mapstructure:"equipment"`
}

// New returns a viper instance with defaults and environment binding set
// up. Callers bind flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyInput, "")
	v.SetDefault(KeyFiltered, "")
	v.SetDefault(KeyAssessment, "")
	// No default for remove: IsSet must tell an explicit empty list apart
	// from a missing one.
	_ = v.BindEnv(KeyRemove)
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyPerObservation, false)
	defaults := assessment.DefaultOptions()
	v.SetDefault(KeySeriesDescription, defaults.SeriesDescription)
	v.SetDefault(KeyObserverName, defaults.Observer.Name)
	v.SetDefault(KeyObserverOrg, defaults.Observer.Organization)
	v.SetDefault(KeyObserverDateTime, defaults.Observer.DateTime)
	v.SetDefault(KeyEquipManufacturer, defaults.Equipment.Manufacturer)
	v.SetDefault(KeyEquipModel, defaults.Equipment.Model)
	v.SetDefault(KeyEquipVersion, defaults.Equipment.SoftwareVersion)
	v.SetDefault(KeyEquipDescription, defaults.Equipment.Description)
	v.SetDefault(KeyEquipContribution, defaults.Equipment.ContributionDateTime)
	v.SetDefault(KeyEquipInstitution, defaults.Equipment.Institution)
	v.SetDefault(KeyEquipSerialNumber, defaults.Equipment.SerialNumber)

	return v
}

// Load reads the optional config file into v and decodes the result. An
// empty configFile skips file loading; a named file that cannot be read is
// an error.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings needed for a full run.
func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("input path is required")
	}
	if c.Filtered == "" {
		return fmt.Errorf("filtered output path is required")
	}
	if c.Assessment == "" {
		return fmt.Errorf("assessment output path is required")
	}
	if c.Filtered == c.Assessment {
		return fmt.Errorf("filtered and assessment outputs must differ (both %q)", c.Filtered)
	}
	if _, err := c.Indices(); err != nil {
		return err
	}
	if err := validDateTime(c.Observer.DateTime); err != nil {
		return fmt.Errorf("observer datetime: %w", err)
	}
	if err := validDateTime(c.Equipment.ContributionDateTime); err != nil {
		return fmt.Errorf("contribution datetime: %w", err)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("log format must be \"console\" or \"json\", got %q", c.LogFormat)
	}
	return nil
}

// Indices parses Remove, a comma separated list of finding positions. An
// empty list means nothing is removed.
func (c *Config) Indices() ([]int, error) {
	return ParseIndices(c.Remove)
}

// ParseIndices parses a comma separated list of non-negative integers.
func ParseIndices(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []int{}, nil
	}

	parts := strings.Split(s, ",")
	indices := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid finding index %q: %w", part, err)
		}
		if n < 0 {
			return nil, fmt.Errorf("invalid finding index %d: must not be negative", n)
		}
		indices = append(indices, n)
	}
	return indices, nil
}

// validDateTime accepts the DICOM DT forms used here: YYYYMMDD followed by
// an optional HHMMSS and fraction.
func validDateTime(s string) error {
	if len(s) < 8 {
		return fmt.Errorf("%q is not a DICOM datetime", s)
	}
	for i, r := range s {
		if r == '.' && i >= 14 {
			continue
		}
		if r < '0' || r > '9' {
			return fmt.Errorf("%q is not a DICOM datetime", s)
		}
	}
	return nil
}

// AssessmentOptions converts the settings for the synthesizer.
func (c *Config) AssessmentOptions() assessment.Options {
	opts := assessment.DefaultOptions()
	opts.Observer = assessment.Observer{
		Name:         c.Observer.Name,
		Organization: c.Observer.Organization,
		DateTime:     c.Observer.DateTime,
	}
	opts.Equipment = assessment.Equipment{
		Manufacturer:         c.Equipment.Manufacturer,
		Model:                c.Equipment.Model,
		SoftwareVersion:      c.Equipment.SoftwareVersion,
		Description:          c.Equipment.Description,
		ContributionDateTime: c.Equipment.ContributionDateTime,
		Institution:          c.Equipment.Institution,
		SerialNumber:         c.Equipment.SerialNumber,
	}
	opts.SeriesDescription = c.SeriesDescription
	opts.PerObservation = c.PerObservation
	return opts
}
