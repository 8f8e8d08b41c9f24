// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thomaspryor/broadwayscore/internal/corpus"
	"github.com/thomaspryor/broadwayscore/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Re-check the published corpus for inconsistencies",
	Long: `Validate scans the published corpus for score/bucket disagreement,
external-thumb contradictions, and fatal defects. Findings are printed, not
written back; a clean corpus validates silently. On an already-validated
corpus this is a no-op.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()
	store, err := corpus.NewStore(cfg.Corpus)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.All(context.Background())
	if err != nil {
		return err
	}

	out := validate.Validate(records)

	for _, inc := range out.Inconsistencies {
		fmt.Printf("inconsistent  %s/%s/%s: %s\n",
			inc.Identity.ShowID, inc.Identity.OutletID, inc.Identity.CriticKey, inc.Detail)
	}
	for _, rep := range out.Repairs {
		fmt.Printf("would repair  %s/%s/%s: score %d→%d: %s\n",
			rep.Identity.ShowID, rep.Identity.OutletID, rep.Identity.CriticKey,
			rep.OldScore, rep.NewScore, rep.Reason)
	}
	for _, f := range out.Fatals {
		fmt.Printf("fatal         %s/%s/%s: %s\n",
			f.Identity.ShowID, f.Identity.OutletID, f.Identity.CriticKey, f.Reason)
	}

	total := len(out.Inconsistencies) + len(out.Repairs) + len(out.Fatals)
	if total == 0 {
		fmt.Printf("Corpus is consistent: %d record(s) checked.\n", len(records))
		return nil
	}
	return fmt.Errorf("%d finding(s) across %d record(s)", total, len(records))
}
