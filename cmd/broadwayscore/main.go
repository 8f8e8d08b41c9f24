// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the broadwayscore CLI. The CLI wraps
// the review normalization engine; each corpus operation (run, report,
// validate, quarantine) is a subcommand.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thomaspryor/broadwayscore/internal/secrets"
	"github.com/thomaspryor/broadwayscore/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets secrets.Secrets

// rootCmd is the base command for the broadwayscore CLI.
var rootCmd = &cobra.Command{
	Use:   "broadwayscore",
	Short: "Normalize and deduplicate theatre critic reviews",
	Long: `broadwayscore turns critic-review records collected from heterogeneous
sources into a single consistent corpus: one canonical record per
production, outlet and critic, each with a normalized 0-100 score, a
sentiment bucket and a content-completeness tier.

Each corpus operation is a subcommand: run executes the full pipeline,
report prints the distribution summary, validate re-checks a published
corpus, and quarantine manages records held out for human review.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if keys := s.Keys(); len(keys) > 0 {
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./broadwayscore.yaml or ~/.config/broadwayscore/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("broadwayscore")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "broadwayscore"))
		}
	}

	viper.SetEnvPrefix("BROADWAYSCORE")
	viper.AutomaticEnv()

	viper.SetDefault("corpus.corpus_dir", "corpus")
	viper.SetDefault("corpus.catalog_path", "corpus/catalog.db")
	viper.SetDefault("content.min_complete_words", 120)
	viper.SetDefault("content.min_substantive_ratio", 0.5)
	viper.SetDefault("scorer.timeout", "60s")
	viper.SetDefault("scorer.max_retries", 3)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// pipelineConfig assembles the stage configuration from viper and loaded
// secrets.
func pipelineConfig() types.PipelineConfig {
	timeout, _ := time.ParseDuration(viper.GetString("scorer.timeout"))
	return types.PipelineConfig{
		Identity: types.IdentityConfig{
			OutletAliasFile: viper.GetString("identity.outlet_alias_file"),
			CriticAliasFile: viper.GetString("identity.critic_alias_file"),
		},
		Content: types.ContentConfig{
			MinCompleteWords:    viper.GetInt("content.min_complete_words"),
			MinSubstantiveRatio: viper.GetFloat64("content.min_substantive_ratio"),
		},
		Scorer: types.ScorerConfig{
			Endpoint:   viper.GetString("scorer.endpoint"),
			APIKey:     loadedSecrets.Get(secrets.ScorerAPIKey, viper.GetString("scorer.api_key")),
			Timeout:    timeout,
			MaxRetries: viper.GetInt("scorer.max_retries"),
		},
		Corpus: types.CorpusConfig{
			CorpusDir:   viper.GetString("corpus.corpus_dir"),
			CatalogPath: viper.GetString("corpus.catalog_path"),
		},
		ActiveOnly: viper.GetBool("active_only"),
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
