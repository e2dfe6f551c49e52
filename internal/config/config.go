// =============================================================================
// Inventory Price Adjuster - Configuration Module
// =============================================================================
//
// This module is responsible for loading the application configuration.
//
// SOURCES (later sources win):
//   1. Built-in defaults (the standard price list rules)
//   2. The YAML config file (config.yaml by default, optional)
//   3. Environment variables prefixed with ADJUSTER_
//      e.g. ADJUSTER_OUTPUT_DIR, ADJUSTER_LOGGING_LEVEL,
//           ADJUSTER_PRICING_MARKUP_FACTOR
//
// All configurations are validated on load.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/xlsx-price-adjuster/internal/logging"
	"github.com/ginjaninja78/xlsx-price-adjuster/internal/pricing"
)

// EnvPrefix is the prefix of all environment overrides.
const EnvPrefix = "ADJUSTER"

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the global application configuration.
type Config struct {
	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputDir is the directory where export workbooks and logs are written.
	// Default: "./output"
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`

	// OutputFileFormat names the export workbook.
	// Placeholders:
	//   {prefix}    - Export.FilePrefix
	//   {source}    - Input file name without extension
	//   {timestamp} - Current timestamp (YYYY-MM-DDTHH-MM-SS)
	//   {date}      - Current date (YYYYMMDD)
	//   {time}      - Current time (HHMMSS)
	//   {uuid}      - A random UUID
	// Default: "{prefix}_{timestamp}.xlsx"
	OutputFileFormat string `yaml:"output_file_format" envconfig:"OUTPUT_FILE_FORMAT" validate:"required"`

	// WriteSummary writes a plain-text run summary next to the export.
	// Default: false
	WriteSummary bool `yaml:"write_summary" envconfig:"WRITE_SUMMARY"`

	// =========================================================================
	// SUB-SECTIONS
	// =========================================================================

	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Pricing PricingConfig `yaml:"pricing" envconfig:"PRICING"`
	Columns ColumnsConfig `yaml:"columns" envconfig:"COLUMNS"`
	CSV     CSVSettings   `yaml:"csv" envconfig:"CSV"`
	Export  ExportConfig  `yaml:"export" envconfig:"EXPORT"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	// Level: "debug", "info", "warn", "error". Default: "info"
	Level string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`

	// Format: "console" or "json". Default: "console"
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=console json"`

	// Output: "stderr", "stdout" or a file path. Default: "stderr"
	Output string `yaml:"output" envconfig:"OUTPUT" validate:"required"`
}

// PricingConfig holds the business rules of the price adjustment.
type PricingConfig struct {
	// MarkupFactor multiplies prices outside the exempt section. Default: 1.075
	MarkupFactor float64 `yaml:"markup_factor" envconfig:"MARKUP_FACTOR" validate:"gt=0"`

	// ExemptSection never receives markup. Default: 52
	ExemptSection float64 `yaml:"exempt_section" envconfig:"EXEMPT_SECTION"`

	// RequiredUnit is the only unit indicator kept. Default: 1
	RequiredUnit float64 `yaml:"required_unit" envconfig:"REQUIRED_UNIT"`
}

// ColumnsConfig gives the 0-based column index of each field.
//
// Pointers distinguish "not set" from column 0 (Column A).
type ColumnsConfig struct {
	ItemCode  *int `yaml:"item_code" envconfig:"ITEM_CODE" validate:"required,gte=0"`
	ItemName  *int `yaml:"item_name" envconfig:"ITEM_NAME" validate:"required,gte=0"`
	UnitPrice *int `yaml:"unit_price" envconfig:"UNIT_PRICE" validate:"required,gte=0"`
	Unit      *int `yaml:"unit" envconfig:"UNIT" validate:"required,gte=0"`
	Section   *int `yaml:"section" envconfig:"SECTION" validate:"required,gte=0"`
}

// CSVSettings contains settings for reading CSV input.
type CSVSettings struct {
	// Delimiter separates fields: ",", ";", "|", "tab". Default: ","
	Delimiter string `yaml:"delimiter" envconfig:"DELIMITER" validate:"required"`

	// Encoding is any WHATWG encoding label, e.g. "UTF-8", "windows-1256".
	// Default: "UTF-8"
	Encoding string `yaml:"encoding" envconfig:"ENCODING" validate:"required"`
}

// ExportConfig holds the opaque labels written into the export workbook.
type ExportConfig struct {
	SheetName      string `yaml:"sheet_name" envconfig:"SHEET_NAME" validate:"required,max=31"`
	FilePrefix     string `yaml:"file_prefix" envconfig:"FILE_PREFIX" validate:"required"`
	ItemCodeLabel  string `yaml:"item_code_label" envconfig:"ITEM_CODE_LABEL" validate:"required"`
	ItemNameLabel  string `yaml:"item_name_label" envconfig:"ITEM_NAME_LABEL" validate:"required"`
	UnitPriceLabel string `yaml:"unit_price_label" envconfig:"UNIT_PRICE_LABEL" validate:"required"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Load loads the configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file. When the file does not
//     exist and optional is true, defaults are used instead.
//
// RETURNS:
//   - A pointer to the Config struct.
//   - An error if the file cannot be read, parsed or validated.
func Load(configPath string, optional bool) (*Config, error) {
	var config Config

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case optional && errors.Is(err, fs.ErrNotExist):
		// Fall through to defaults.
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Environment overrides.
	if err := envconfig.Process(EnvPrefix, &config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	applyDefaults(&config)

	if err := Validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	var config Config
	applyDefaults(&config)
	return &config
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(config *Config) {
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.OutputFileFormat == "" {
		config.OutputFileFormat = "{prefix}_{timestamp}.xlsx"
	}

	// Logging defaults.
	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}
	if config.Logging.Format == "" {
		config.Logging.Format = "console"
	}
	if config.Logging.Output == "" {
		config.Logging.Output = "stderr"
	}

	// Pricing defaults. Zero is not a meaningful value for any of them.
	if config.Pricing.MarkupFactor == 0 {
		config.Pricing.MarkupFactor = pricing.DefaultMarkupFactor
	}
	if config.Pricing.ExemptSection == 0 {
		config.Pricing.ExemptSection = pricing.DefaultExemptSection
	}
	if config.Pricing.RequiredUnit == 0 {
		config.Pricing.RequiredUnit = pricing.DefaultRequiredUnit
	}

	// Column defaults.
	layout := pricing.DefaultColumnLayout()
	setIndex(&config.Columns.ItemCode, layout.ItemCode)
	setIndex(&config.Columns.ItemName, layout.ItemName)
	setIndex(&config.Columns.UnitPrice, layout.UnitPrice)
	setIndex(&config.Columns.Unit, layout.Unit)
	setIndex(&config.Columns.Section, layout.Section)

	// CSV defaults.
	if config.CSV.Delimiter == "" {
		config.CSV.Delimiter = ","
	}
	if config.CSV.Encoding == "" {
		config.CSV.Encoding = "UTF-8"
	}

	// Export label defaults are the labels of the original price list.
	if config.Export.SheetName == "" {
		config.Export.SheetName = "الأصناف المعدلة"
	}
	if config.Export.FilePrefix == "" {
		config.Export.FilePrefix = "الأصناف_المعدلة"
	}
	if config.Export.ItemCodeLabel == "" {
		config.Export.ItemCodeLabel = "كود الصنف"
	}
	if config.Export.ItemNameLabel == "" {
		config.Export.ItemNameLabel = "اسم الصنف"
	}
	if config.Export.UnitPriceLabel == "" {
		config.Export.UnitPriceLabel = "سعر الوحدة"
	}
}

func setIndex(field **int, value int) {
	if *field == nil {
		v := value
		*field = &v
	}
}

// Validate checks the configuration against its struct tags.
func Validate(config *Config) error {
	return validator.New().Struct(config)
}

// =============================================================================
// CONVERSIONS
// =============================================================================

// Policy returns the pricing policy described by the configuration.
func (c *Config) Policy() pricing.Policy {
	return pricing.Policy{
		MarkupFactor:  c.Pricing.MarkupFactor,
		ExemptSection: c.Pricing.ExemptSection,
		RequiredUnit:  c.Pricing.RequiredUnit,
		Columns: pricing.ColumnLayout{
			ItemCode:  *c.Columns.ItemCode,
			ItemName:  *c.Columns.ItemName,
			UnitPrice: *c.Columns.UnitPrice,
			Unit:      *c.Columns.Unit,
			Section:   *c.Columns.Section,
		},
	}
}

// LoggingConfig converts the logging section for the logging package.
func (c *Config) LoggingConfig() logging.Config {
	return logging.Config{
		Level:  c.Logging.Level,
		Format: c.Logging.Format,
		Output: c.Logging.Output,
	}
}
