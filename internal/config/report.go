package config

import (
	"strings"

	"github.com/spf13/viper"
)

// ReportConfig controls how the report job emits its output.
type ReportConfig struct {
	OutputDir string     `mapstructure:"outputDir"`
	SortBy    string     `mapstructure:"sortBy"`
	Sinks     SinkConfig `mapstructure:"sinks"`
}

// SinkConfig toggles individual report sinks. Console is on by default so a
// bare cron invocation still produces visible output.
type SinkConfig struct {
	Console bool `mapstructure:"console"`
	CSV     bool `mapstructure:"csv"`
	HTML    bool `mapstructure:"html"`
	PDF     bool `mapstructure:"pdf"`
	DB      bool `mapstructure:"db"`
}

const (
	SortByBrand      = "brand"
	SortByCommission = "commission"
)

func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		OutputDir: "reports",
		SortBy:    SortByBrand,
		Sinks: SinkConfig{
			Console: true,
			DB:      true,
		},
	}
}

// LoadReportConfig reads report.yml if present, falling back to defaults.
func LoadReportConfig() (ReportConfig, error) {
	v := viper.New()

	v.SetConfigName("report")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/brandledger")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BRANDLEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultReportConfig()
	v.SetDefault("report.outputDir", defaults.OutputDir)
	v.SetDefault("report.sortBy", defaults.SortBy)
	v.SetDefault("report.sinks.console", defaults.Sinks.Console)
	v.SetDefault("report.sinks.csv", defaults.Sinks.CSV)
	v.SetDefault("report.sinks.html", defaults.Sinks.HTML)
	v.SetDefault("report.sinks.pdf", defaults.Sinks.PDF)
	v.SetDefault("report.sinks.db", defaults.Sinks.DB)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return ReportConfig{}, err
		}
	}

	var cfg ReportConfig
	if err := v.UnmarshalKey("report", &cfg); err != nil {
		return ReportConfig{}, err
	}

	if cfg.SortBy != SortByBrand && cfg.SortBy != SortByCommission {
		cfg.SortBy = SortByBrand
	}
	return cfg, nil
}
