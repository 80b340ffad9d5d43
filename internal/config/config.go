package config

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/skyreach/ssot-cli/internal/priority"
)

// Config holds the full application configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Quality  QualityConfig  `yaml:"quality" mapstructure:"quality"`
	Sources  SourcesConfig  `yaml:"sources" mapstructure:"sources"`
	Export   ExportConfig   `yaml:"export" mapstructure:"export"`
	Pipeline PipelineConfig `yaml:"pipeline" mapstructure:"pipeline"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the snapshot database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	SQLitePath  string `yaml:"sqlite_path" mapstructure:"sqlite_path"`
}

// QualityConfig holds the completeness penalty weights and intent blend.
// Weights are keyed by flag field: a missing field subtracts its weight
// from the score and appends "missing_<field>" to the flag list.
type QualityConfig struct {
	Weights     map[string]float64 `yaml:"weights" mapstructure:"weights"`
	IntentBlend float64            `yaml:"intent_blend" mapstructure:"intent_blend"`
}

// SourcesConfig configures source trust and an optional override file for
// the per-field priority table.
type SourcesConfig struct {
	PriorityFile string `yaml:"priority_file" mapstructure:"priority_file"`
}

// ExportConfig configures output writers.
type ExportConfig struct {
	SheetName string `yaml:"sheet_name" mapstructure:"sheet_name"`
}

// PipelineConfig configures aggregation behavior.
type PipelineConfig struct {
	Concurrency int    `yaml:"concurrency" mapstructure:"concurrency"`
	Country     string `yaml:"country" mapstructure:"country"`
}

// ServerConfig configures the read-only snapshot API.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SSOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.sqlite_path", "ssot.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("export.sheet_name", "SSOT")
	v.SetDefault("pipeline.concurrency", 8)
	v.SetDefault("pipeline.country", "South Africa")
	v.SetDefault("quality.intent_blend", 0.2)
	v.SetDefault("quality.weights", map[string]float64{
		"website":               0.15,
		"contact_primary_email": 0.20,
		"contact_primary_phone": 0.10,
		"province":              0.10,
	})

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}

// defaultPriorities ranks source datasets per field. Regulator registries
// outrank CRM exports for identity and contact fields; outreach notes win
// for free-text fields. Values are business configuration; override with
// sources.priority_file.
var defaultPriorities = map[string]map[string]int{
	"*": {
		"SACAA Cleaned":    9,
		"Regulator Import": 9,
		"Reachout":         6,
		"CRM Export":       5,
		"Contact":          4,
		"default":          1,
	},
	"website": {
		"SACAA Cleaned":    9,
		"Regulator Import": 9,
		"Reachout":         6,
		"CRM Export":       5,
		"Contact":          4,
		"default":          1,
	},
	"province": {
		"SACAA Cleaned":    9,
		"Regulator Import": 9,
		"Reachout":         5,
		"CRM Export":       5,
		"Contact":          4,
		"default":          1,
	},
	"contact_primary_email": {
		"SACAA Cleaned":    9,
		"Regulator Import": 8,
		"Reachout":         6,
		"CRM Export":       5,
		"Contact":          4,
		"default":          1,
	},
	"notes": {
		"Reachout":         8,
		"Contact":          7,
		"CRM Export":       5,
		"SACAA Cleaned":    3,
		"Regulator Import": 3,
		"default":          1,
	},
	"description": {
		"Reachout":         8,
		"Contact":          7,
		"CRM Export":       5,
		"SACAA Cleaned":    3,
		"Regulator Import": 3,
		"default":          1,
	},
}

// LoadPriorityTable builds the source priority table from defaults, with
// an optional YAML override file replacing the whole table. Errors here
// are fatal at startup: the engine must not run misconfigured.
func LoadPriorityTable(cfg SourcesConfig) (*priority.Table, error) {
	fields := defaultPriorities

	if cfg.PriorityFile != "" {
		data, err := os.ReadFile(cfg.PriorityFile)
		if err != nil {
			return nil, eris.Wrapf(err, "config: read priority file %s", cfg.PriorityFile)
		}
		var override map[string]map[string]int
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, eris.Wrapf(err, "config: parse priority file %s", cfg.PriorityFile)
		}
		fields = override
	}

	return priority.New(fields)
}
