// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thomaspryor/broadwayscore/internal/catalog"
	"github.com/thomaspryor/broadwayscore/internal/content"
	"github.com/thomaspryor/broadwayscore/internal/corpus"
	"github.com/thomaspryor/broadwayscore/internal/identity"
	"github.com/thomaspryor/broadwayscore/internal/pipeline"
	"github.com/thomaspryor/broadwayscore/internal/scorer"
	"github.com/thomaspryor/broadwayscore/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full normalization pipeline over the raw corpus",
	Long: `Run reads raw review records from corpus/raw/, canonicalizes outlet and
critic identity, normalizes ratings to the 0-100 scale, classifies content
completeness, merges duplicates, validates the result, and replaces the
published corpus. Merge, repair and exclusion decisions are written to the
audit log and a run report.

Running twice over the same raw corpus produces the same published corpus.`,
	RunE: runPipeline,
}

func init() {
	runCmd.Flags().Bool("active-only", false, "process only productions the catalog lists as open")
	runCmd.Flags().Bool("no-scorer", false, "skip the external scoring pass even when configured")

	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()
	if flag, _ := cmd.Flags().GetBool("active-only"); flag {
		cfg.ActiveOnly = true
	}

	tables, err := identity.LoadTables(cfg.Identity.OutletAliasFile, cfg.Identity.CriticAliasFile)
	if err != nil {
		return err
	}

	store, err := corpus.NewStore(cfg.Corpus)
	if err != nil {
		return err
	}
	defer store.Close()

	shows, err := catalog.Open(cfg.Corpus.CatalogPath)
	if err != nil {
		return err
	}
	defer shows.Close()

	p := &pipeline.Pipeline{
		Normalizer: identity.NewNormalizer(tables),
		Classifier: content.NewClassifier(cfg.Content),
		Catalog:    shows,
		ActiveOnly: cfg.ActiveOnly,
	}

	noScorer, _ := cmd.Flags().GetBool("no-scorer")
	if !noScorer && cfg.Scorer.Endpoint != "" {
		client, err := scorer.NewClient(cfg.Scorer, os.Stderr)
		if err != nil {
			return err
		}
		p.Scorer = client
	}

	raws, err := store.LoadRaw()
	if err != nil {
		return err
	}

	ctx := context.Background()
	out, err := p.RunRaw(ctx, raws, os.Stdout)
	if err != nil {
		return err
	}

	if err := store.Replace(ctx, out.Published); err != nil {
		return err
	}
	if err := store.RecordRun(ctx, out.Report); err != nil {
		return err
	}
	if err := quarantineDefects(ctx, store, out); err != nil {
		return err
	}

	path, err := store.WriteReport(out.Report)
	if err != nil {
		return err
	}
	fmt.Printf("Report written to %s\n", path)

	if out.Report.HasFatals() {
		return fmt.Errorf("%d record(s) excluded from the published corpus", len(out.Report.Fatals))
	}
	return nil
}

// quarantineDefects moves structurally invalid records out of the published
// corpus pending human review. The move is reversible via the quarantine
// subcommands; a single heuristic signal never deletes anything.
func quarantineDefects(ctx context.Context, store *corpus.Store, out pipeline.Output) error {
	held := 0
	for _, rec := range out.Published {
		if rec.ContentTier != types.TierInvalid {
			continue
		}
		key := types.IdentityKey{ShowID: rec.ShowID, OutletID: rec.OutletID, CriticKey: rec.CriticName}
		reason := "structural defect"
		if len(rec.Flags) > 0 {
			reason = string(rec.Flags[0])
		}
		if err := store.Quarantine(ctx, key, reason); err != nil {
			return err
		}
		if err := store.AppendAudit(ctx, out.Report.RunID, corpus.ActionQuarantine,
			fmt.Sprintf("%s/%s/%s: %s", key.ShowID, key.OutletID, key.CriticKey, reason)); err != nil {
			return err
		}
		held++
	}
	if held > 0 {
		fmt.Printf("%d record(s) held in quarantine for review\n", held)
	}
	return nil
}
