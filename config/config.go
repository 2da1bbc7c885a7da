package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/meysamhadeli/scriptbox/script_index"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config represents the structure of the configuration file
type Config struct {
	Version          string `mapstructure:"version"`
	BasePath         string `mapstructure:"base_path"`
	DirPrefix        string `mapstructure:"dir_prefix"`
	ScriptSuffix     string `mapstructure:"script_suffix"`
	Sentinel         string `mapstructure:"sentinel"`
	Theme            string `mapstructure:"theme"`
	Highlight        bool   `mapstructure:"highlight"`
	ClearScreen      bool   `mapstructure:"clear_screen"`
	ConfirmOverwrite bool   `mapstructure:"confirm_overwrite"`
	Lint             bool   `mapstructure:"lint"`
	Degraded         bool   `mapstructure:"degraded"`
	LogLevel         string `mapstructure:"log_level"`
}

// DefaultConfig values
var DefaultConfig = Config{
	Version:          "1.0.0",
	BasePath:         ".",
	DirPrefix:        "scripts",
	ScriptSuffix:     ".lua",
	Sentinel:         "END",
	Theme:            "dracula",
	Highlight:        true,
	ClearScreen:      true,
	ConfirmOverwrite: false,
	Lint:             false,
	Degraded:         false,
	LogLevel:         "warn",
}

const configName = "scriptbox-config"

// cfgFile holds the path to the configuration file (set via CLI)
var cfgFile string

// LoadConfigs initializes the configuration from file, flags, and environment variables, and returns the final config.
// A missing default config file is not an error; an explicit --config that cannot be read is.
func LoadConfigs(rootCmd *cobra.Command, cwd string) (*Config, error) {
	var config *Config

	setDefaults()
	bindEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if fileType := GetConfigFileType(cfgFile); fileType != "" {
			viper.SetConfigType(fileType)
		}
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		viper.SetConfigName(configName)
		viper.AddConfigPath(cwd)
		if err := viper.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	bindFlags(rootCmd)

	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects settings that would make directory or script names ambiguous.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DirPrefix) == "" {
		return fmt.Errorf("dir_prefix must not be empty")
	}
	if strings.ContainsAny(c.DirPrefix, `/\`) {
		return fmt.Errorf("dir_prefix must not contain path separators: %q", c.DirPrefix)
	}
	if c.ScriptSuffix == "" {
		return fmt.Errorf("script_suffix must not be empty")
	}
	if c.Sentinel == "" {
		return fmt.Errorf("sentinel must not be empty")
	}
	return nil
}

// IndexConfig returns the part of the configuration the script index needs.
func (c *Config) IndexConfig() script_index.Config {
	return script_index.Config{
		BasePath: c.BasePath,
		Prefix:   c.DirPrefix,
		Suffix:   c.ScriptSuffix,
	}
}

// setDefaults sets all default configuration values
func setDefaults() {
	viper.SetDefault("version", DefaultConfig.Version)
	viper.SetDefault("base_path", DefaultConfig.BasePath)
	viper.SetDefault("dir_prefix", DefaultConfig.DirPrefix)
	viper.SetDefault("script_suffix", DefaultConfig.ScriptSuffix)
	viper.SetDefault("sentinel", DefaultConfig.Sentinel)
	viper.SetDefault("theme", DefaultConfig.Theme)
	viper.SetDefault("highlight", DefaultConfig.Highlight)
	viper.SetDefault("clear_screen", DefaultConfig.ClearScreen)
	viper.SetDefault("confirm_overwrite", DefaultConfig.ConfirmOverwrite)
	viper.SetDefault("lint", DefaultConfig.Lint)
	viper.SetDefault("degraded", DefaultConfig.Degraded)
	viper.SetDefault("log_level", DefaultConfig.LogLevel)
}

// bindEnv explicitly binds environment variables to configuration keys
func bindEnv() {
	_ = viper.BindEnv("base_path", "SCRIPTBOX_BASE_PATH")
	_ = viper.BindEnv("dir_prefix", "SCRIPTBOX_DIR_PREFIX")
	_ = viper.BindEnv("script_suffix", "SCRIPTBOX_SCRIPT_SUFFIX")
	_ = viper.BindEnv("sentinel", "SCRIPTBOX_SENTINEL")
	_ = viper.BindEnv("theme", "SCRIPTBOX_THEME")
	_ = viper.BindEnv("highlight", "SCRIPTBOX_HIGHLIGHT")
	_ = viper.BindEnv("clear_screen", "SCRIPTBOX_CLEAR_SCREEN")
	_ = viper.BindEnv("confirm_overwrite", "SCRIPTBOX_CONFIRM_OVERWRITE")
	_ = viper.BindEnv("lint", "SCRIPTBOX_LINT")
	_ = viper.BindEnv("degraded", "SCRIPTBOX_DEGRADED")
	_ = viper.BindEnv("log_level", "SCRIPTBOX_LOG_LEVEL")
}

// bindFlags binds the CLI flags to configuration values.
func bindFlags(rootCmd *cobra.Command) {
	for _, key := range []string{
		"base_path", "dir_prefix", "script_suffix", "sentinel", "theme", "highlight",
		"clear_screen", "confirm_overwrite", "lint", "degraded", "log_level",
	} {
		if flag := rootCmd.PersistentFlags().Lookup(key); flag != nil {
			_ = viper.BindPFlag(key, flag)
		}
	}
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Specifies the path to a configuration file (JSON or YAML).")

	rootCmd.PersistentFlags().String("base_path", DefaultConfig.BasePath, "Directory that holds the numbered script directories.")
	rootCmd.PersistentFlags().String("dir_prefix", DefaultConfig.DirPrefix, "Name prefix of script directories (e.g. 'scripts' for scripts1, scripts2).")
	rootCmd.PersistentFlags().String("script_suffix", DefaultConfig.ScriptSuffix, "File suffix of scripts.")
	rootCmd.PersistentFlags().String("sentinel", DefaultConfig.Sentinel, "Line that ends multi-line script entry.")
	rootCmd.PersistentFlags().String("theme", DefaultConfig.Theme, "Highlighting theme used when viewing scripts (e.g. 'dracula', 'monokai').")
	rootCmd.PersistentFlags().Bool("highlight", DefaultConfig.Highlight, "Highlight script source when viewing in a terminal.")
	rootCmd.PersistentFlags().Bool("clear_screen", DefaultConfig.ClearScreen, "Clear the terminal before showing the main menu.")
	rootCmd.PersistentFlags().Bool("confirm_overwrite", DefaultConfig.ConfirmOverwrite, "Ask before overwriting an existing script.")
	rootCmd.PersistentFlags().Bool("lint", DefaultConfig.Lint, "Report Lua syntax errors after viewing a script.")
	rootCmd.PersistentFlags().Bool("degraded", DefaultConfig.Degraded, "Start in degraded mode without directory listings.")
	rootCmd.PersistentFlags().String("log_level", DefaultConfig.LogLevel, "Diagnostic log level written to stderr (debug, info, warn, error).")

	rootCmd.Flags().BoolP("version", "v", false, "Specifies the version of the application.")
}

// GetConfigFileType returns the type of the configuration file based on its extension
func GetConfigFileType(filename string) string {
	if strings.HasSuffix(filename, ".json") {
		return "json"
	} else if strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml") {
		return "yaml"
	}
	return ""
}
