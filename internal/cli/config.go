package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/scicheck/internal/model"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage SciCheck configuration",
	Long: `Manage SciCheck configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (SCICHECK_*)
3. Config file (~/.scicheck/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration including all sources (defaults, config file, env vars, flags).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := model.DefaultConfig()

		configFile := viper.ConfigFileUsed()
		if configFile != "" {
			fmt.Fprintf(os.Stderr, "Configuration file: %s\n\n", configFile)
		} else {
			fmt.Fprintf(os.Stderr, "No configuration file found (using defaults)\n\n")
		}

		yamlData, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}

		fmt.Println(string(yamlData))

		fmt.Println("Configuration hierarchy (highest to lowest priority):")
		fmt.Println("  1. CLI flags")
		fmt.Println("  2. Environment variables (SCICHECK_*, OPENROUTER_API_KEY, OPENAI_API_KEY)")
		fmt.Println("  3. Config file (~/.scicheck/config.yaml)")
		fmt.Println("  4. Defaults (shown above)")
		fmt.Println()

		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize default configuration file",
	Long:  `Create a default configuration file at ~/.scicheck/config.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("error finding home directory: %w", err)
		}

		configDir := home + "/.scicheck"
		configPath := configDir + "/config.yaml"

		// Check if config already exists
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config file already exists: %s\nUse 'scicheck config show' to view it, or delete it first to recreate", configPath)
		}

		if err := os.MkdirAll(configDir, 0755); err != nil {
			return fmt.Errorf("error creating config directory: %w", err)
		}

		f, err := os.Create(configPath)
		if err != nil {
			return fmt.Errorf("error creating config file: %w", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("close config file: %w", closeErr)
			}
		}()

		yamlData, err := yaml.Marshal(model.DefaultConfig())
		if err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}

		header := `# SciCheck Configuration File
# See https://github.com/ppiankov/scicheck for full documentation
#
# Configuration hierarchy (highest to lowest priority):
#   1. CLI flags
#   2. Environment variables (SCICHECK_*)
#   3. This config file
#   4. Built-in defaults

`
		footer := `
# API keys are read from the environment, never from this file:
#   export OPENROUTER_API_KEY=sk-or-...
#   export OPENAI_API_KEY=sk-...
# A .env file in the working directory is also honored.
`

		if _, err := f.WriteString(header); err != nil {
			return fmt.Errorf("error writing config: %w", err)
		}
		if _, err := f.Write(yamlData); err != nil {
			return fmt.Errorf("error writing config: %w", err)
		}
		if _, err := f.WriteString(footer); err != nil {
			return fmt.Errorf("error writing config: %w", err)
		}

		fmt.Printf("✓ Created default configuration: %s\n", configPath)
		fmt.Printf("\nTo view the configuration:\n")
		fmt.Printf("  scicheck config show\n")
		fmt.Printf("\nTo customize, edit the file with your preferred editor:\n")
		fmt.Printf("  $EDITOR %s\n", configPath)
		fmt.Printf("\n")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

// applyFileConfig overlays the viper-loaded config file (and SCICHECK_*
// environment) onto cfg. Only keys actually set are applied, so unset
// keys keep the built-in defaults.
func applyFileConfig(cfg *model.Config) {
	if viper.IsSet("http.timeout") {
		cfg.HTTP.Timeout = viper.GetDuration("http.timeout")
	}
	if viper.IsSet("http.user_agent") {
		cfg.HTTP.UserAgent = viper.GetString("http.user_agent")
	}
	if viper.IsSet("http.max_body_bytes") {
		cfg.HTTP.MaxBodyBytes = viper.GetInt64("http.max_body_bytes")
	}
	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if viper.IsSet("cache.ttl") {
		cfg.Cache.TTL = viper.GetDuration("cache.ttl")
	}
	if viper.IsSet("llm.provider") {
		cfg.LLM.Provider = viper.GetString("llm.provider")
	}
	if viper.IsSet("llm.model") {
		cfg.LLM.Model = viper.GetString("llm.model")
	}
	if viper.IsSet("llm.timeout") {
		cfg.LLM.Timeout = viper.GetInt("llm.timeout")
	}
	if viper.IsSet("llm.temperature") {
		cfg.LLM.Temperature = float32(viper.GetFloat64("llm.temperature"))
	}
	if viper.IsSet("scholar.crossref_url") {
		cfg.Scholar.CrossrefURL = viper.GetString("scholar.crossref_url")
	}
	if viper.IsSet("scholar.core_url") {
		cfg.Scholar.COREURL = viper.GetString("scholar.core_url")
	}
	if viper.IsSet("scholar.rows") {
		cfg.Scholar.Rows = viper.GetInt("scholar.rows")
	}
	if viper.IsSet("scholar.mailto") {
		cfg.Scholar.Mailto = viper.GetString("scholar.mailto")
	}
	if viper.IsSet("scholar.core_url_fields") {
		cfg.Scholar.COREURLFields = viper.GetStringSlice("scholar.core_url_fields")
	}
	if viper.IsSet("analysis.focus") {
		cfg.Analysis.Focus = viper.GetString("analysis.focus")
	}
	if viper.IsSet("analysis.with_evidence") {
		cfg.Analysis.WithEvidence = viper.GetBool("analysis.with_evidence")
	}
	if viper.IsSet("analysis.with_questions") {
		cfg.Analysis.WithQuestions = viper.GetBool("analysis.with_questions")
	}
	if viper.IsSet("analysis.with_reports") {
		cfg.Analysis.WithReports = viper.GetBool("analysis.with_reports")
	}
	if viper.IsSet("link_check.timeout") {
		cfg.LinkCheck.Timeout = viper.GetDuration("link_check.timeout")
	}
	if viper.IsSet("link_check.workers") {
		cfg.LinkCheck.Workers = viper.GetInt("link_check.workers")
	}
	if viper.IsSet("link_check.requests_per_second") {
		cfg.LinkCheck.RequestsPerSecond = viper.GetFloat64("link_check.requests_per_second")
	}
	if viper.IsSet("link_check.burst_size") {
		cfg.LinkCheck.BurstSize = viper.GetInt("link_check.burst_size")
	}
	if viper.IsSet("output.include_footer") {
		cfg.Output.IncludeFooter = viper.GetBool("output.include_footer")
	}
}
