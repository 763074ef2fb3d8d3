package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cms-kit/schemacheck/internal/config"
	"github.com/cms-kit/schemacheck/pkg/entity"
)

// loadConfig reads the config from:
// 1. --config, which must exist
// 2. .schemacheck.yml / .schemacheck.toml in the current directory
// 3. Defaults
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.NewFileLoader(configPath).Load()
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	loader := config.NewLoader(workDir)
	loaded, err := loader.LoadOrDefault()
	if err != nil {
		return nil, err
	}
	zap.S().Debugw("config resolved", "file", loader.Path(), "paths", loaded.Schema.Paths)
	return loaded, nil
}

// newValidator builds a validator, adding the JSON Schema pass when the flag
// or the config names one.
func newValidator(jsonSchemaFlag string) (*entity.Validator, error) {
	opts := []entity.Option{entity.WithLogger(zap.S())}

	metaPath := jsonSchemaFlag
	if metaPath == "" {
		metaPath = cfg.Validation.JSONSchema
	}
	if metaPath != "" {
		meta, err := entity.CompileJSONSchema(metaPath)
		if err != nil {
			return nil, err
		}
		zap.S().Debugw("json schema pass enabled", "path", metaPath)
		opts = append(opts, entity.WithJSONSchema(meta))
	}

	return entity.NewValidator(opts...), nil
}

// wantJSON reports whether JSON output was requested by flag or config.
func wantJSON(flag bool) bool {
	return flag || cfg.Output.Format == config.FormatJSON
}

// failed applies strict mode: warnings count as failure when enabled.
func failed(cmd *cobra.Command, valid bool, warnings int, strictFlag bool) bool {
	if !valid {
		return true
	}
	if (strictFlag || cfg.Validation.Strict) && warnings > 0 {
		printWarning(cmd, "Strict mode: %d warning(s) treated as failures", warnings)
		return true
	}
	return false
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print the configuration in effect after defaults, environment
expansion and path resolution, as YAML.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
