// =============================================================================
// CAPPS Converter - Configuration Module
// =============================================================================
//
// This module loads the application configuration from a single YAML file
// and applies defaults and validation. The configuration is passed explicitly
// into the pipeline components (filter, document builder) so that a run is a
// pure function of (inputs, configuration).
//
// CONFIGURATION SECTIONS:
//   - top level   : license number, employee name, cache file, log level
//   - filters     : lookback window, minimum amount, internal-serial policy
//   - classifier  : optional remote brand classifier (Groq or Gemini)
//   - output      : output/archive directories and file naming
//   - upload      : CAPPS bulk-upload endpoints and credentials
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Classifier provider names accepted in the configuration.
const (
	ProviderNone   = ""
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
)

// =============================================================================
// CONFIGURATION STRUCTURES
// =============================================================================

// Config holds the full application configuration.
type Config struct {
	// LicenseNumber is the store's secondhand-dealer license number. It is
	// stamped on the bulkUploadData envelope and is required to convert.
	LicenseNumber string `yaml:"license_number"`

	// EmployeeName is reported on every transaction's store block.
	EmployeeName string `yaml:"employee_name"`

	// CacheFile is the path of the brand cache (a single JSON object).
	// Default: ~/.capps_brand_cache.json
	CacheFile string `yaml:"cache_file"`

	// LogLevel controls log verbosity: "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`

	Filters    FilterSettings     `yaml:"filters"`
	Classifier ClassifierSettings `yaml:"classifier"`
	Output     OutputSettings     `yaml:"output"`
	Upload     UploadSettings     `yaml:"upload"`
}

// FilterSettings are the business-rule thresholds applied per record.
type FilterSettings struct {
	// LookbackDays is the recency window. A transaction dated exactly
	// LookbackDays before the run time is still included. Default: 5.
	LookbackDays int `yaml:"lookback_days"`

	// MinAmount is the minimum reportable transaction amount. Default: 100.
	MinAmount float64 `yaml:"min_amount"`

	// IncludeInternalSerials includes store-serialized inventory (serial
	// numbers with the "ISI" prefix) when true. Default: false.
	IncludeInternalSerials bool `yaml:"include_internal_serials"`
}

// ClassifierSettings configure the optional remote brand classifier tier.
// When Provider is empty the resolver goes straight from the cache to the
// static pattern table.
type ClassifierSettings struct {
	// Provider selects the classifier backend: "groq", "gemini" or "".
	Provider string `yaml:"provider"`

	// APIKey is the credential for the selected provider.
	APIKey string `yaml:"api_key"`

	// Model overrides the provider's default model name.
	Model string `yaml:"model"`

	// TimeoutSeconds bounds a single classification call. Default: 5.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// ValidateAgainstPatterns re-validates the classifier's answer against
	// the known-brand table; a non-matching answer falls through to pattern
	// matching instead of being trusted. Default: false.
	ValidateAgainstPatterns bool `yaml:"validate_against_patterns"`
}

// OutputSettings control where and how the generated document is written.
type OutputSettings struct {
	// Dir is the directory for generated XML files. Default: "./output".
	Dir string `yaml:"dir"`

	// ArchiveDir is where processed input files are moved after a successful
	// run. Default: "./archive".
	ArchiveDir string `yaml:"archive_dir"`

	// ArchiveInputs moves the source CSV files into ArchiveDir on success.
	ArchiveInputs bool `yaml:"archive_inputs"`

	// FilenameFormat names output files. Placeholders:
	//   {uuid}      - a random UUID
	//   {timestamp} - run timestamp (YYYYMMDD_HHMMSS)
	// Default: "capps_{timestamp}.xml"
	FilenameFormat string `yaml:"filename_format"`
}

// UploadSettings configure the CAPPS bulk-upload transport.
type UploadSettings struct {
	TokenURL     string `yaml:"token_url"`
	UploadURL    string `yaml:"upload_url"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`

	// InsecureSkipVerify relaxes TLS verification. The CAPPS endpoint runs a
	// legacy TLS configuration that standard verification rejects.
	InsecureSkipVerify bool `yaml:"insecure_skip_verify"`

	// TimeoutSeconds bounds each HTTP call. Default: 30.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration file at path and applies defaults. A missing
// file is not an error: the defaults are usable for everything except values
// that must come from the operator (license number), which are validated at
// the point of use.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyDefaults(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// applyDefaults sets default values for any unset options.
func applyDefaults(cfg *Config) {
	if cfg.EmployeeName == "" {
		cfg.EmployeeName = "Store Employee"
	}
	if cfg.CacheFile == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			cfg.CacheFile = filepath.Join(home, ".capps_brand_cache.json")
		} else {
			cfg.CacheFile = ".capps_brand_cache.json"
		}
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if cfg.Filters.LookbackDays == 0 {
		cfg.Filters.LookbackDays = 5
	}
	if cfg.Filters.MinAmount == 0 {
		cfg.Filters.MinAmount = 100
	}

	if cfg.Classifier.TimeoutSeconds == 0 {
		cfg.Classifier.TimeoutSeconds = 5
	}

	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "./output"
	}
	if cfg.Output.ArchiveDir == "" {
		cfg.Output.ArchiveDir = "./archive"
	}
	if cfg.Output.FilenameFormat == "" {
		cfg.Output.FilenameFormat = "capps_{timestamp}.xml"
	}

	if cfg.Upload.TokenURL == "" {
		cfg.Upload.TokenURL = "https://capss.doj.ca.gov/oauth/token"
	}
	if cfg.Upload.UploadURL == "" {
		cfg.Upload.UploadURL = "https://capss.doj.ca.gov/api/bulkupload/save"
	}
	if cfg.Upload.TimeoutSeconds == 0 {
		cfg.Upload.TimeoutSeconds = 30
	}
}

// validate rejects configurations that cannot work.
func validate(cfg *Config) error {
	switch cfg.Classifier.Provider {
	case ProviderNone, ProviderGroq, ProviderGemini:
	default:
		return fmt.Errorf("unknown classifier provider %q (expected %q or %q)",
			cfg.Classifier.Provider, ProviderGroq, ProviderGemini)
	}

	if cfg.Classifier.Provider != ProviderNone && cfg.Classifier.APIKey == "" {
		return fmt.Errorf("classifier provider %q configured without api_key", cfg.Classifier.Provider)
	}

	if cfg.Filters.LookbackDays < 0 {
		return fmt.Errorf("filters.lookback_days must not be negative")
	}
	if cfg.Filters.MinAmount < 0 {
		return fmt.Errorf("filters.min_amount must not be negative")
	}

	return nil
}
