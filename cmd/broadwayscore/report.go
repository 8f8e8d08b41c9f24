// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/thomaspryor/broadwayscore/internal/corpus"
	"github.com/thomaspryor/broadwayscore/pkg/types"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the latest run's distribution summary",
	Long: `Report prints the content-tier and sentiment-bucket distributions from the
most recent pipeline run, plus the unresolved identities and records needing
human attention.`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()
	store, err := corpus.NewStore(cfg.Corpus)
	if err != nil {
		return err
	}
	defer store.Close()

	report, err := store.LatestReport()
	if err != nil {
		return err
	}
	if report == nil {
		fmt.Println("No run report found. Run the pipeline first.")
		return nil
	}

	fmt.Printf("Run %s (%s): %d in, %d published, %d duplicates folded, %d fatal\n\n",
		report.RunID, report.StartedAt.Format("2006-01-02 15:04"),
		report.Input, report.Published, len(report.Discards), len(report.Fatals))

	tiers := table.NewWriter()
	tiers.SetOutputMirror(os.Stdout)
	tiers.AppendHeader(table.Row{"Content Tier", "Records"})
	for _, tier := range []types.ContentTier{
		types.TierComplete, types.TierTruncated, types.TierExcerpt, types.TierStub, types.TierInvalid,
	} {
		tiers.AppendRow(table.Row{string(tier), report.TierCounts[tier]})
	}
	tiers.Render()
	fmt.Println()

	buckets := table.NewWriter()
	buckets.SetOutputMirror(os.Stdout)
	buckets.AppendHeader(table.Row{"Bucket", "Records"})
	for _, bucket := range []types.Bucket{
		types.BucketRave, types.BucketPositive, types.BucketMixed, types.BucketNegative, types.BucketPan,
	} {
		buckets.AppendRow(table.Row{string(bucket), report.BucketCounts[bucket]})
	}
	buckets.Render()

	if len(report.Unresolved) > 0 {
		fmt.Printf("\n%d unresolved value(s) awaiting alias-table entries:\n", len(report.Unresolved))
		for _, u := range report.Unresolved {
			fmt.Printf("  %-7s %s: %q\n", u.Kind, u.ShowID, u.Raw)
		}
	}
	if len(report.Attention) > 0 {
		fmt.Printf("\n%d record(s) need human attention (no usable score):\n", len(report.Attention))
		for _, key := range report.Attention {
			fmt.Printf("  %s/%s/%s\n", key.ShowID, key.OutletID, key.CriticKey)
		}
	}
	return nil
}
