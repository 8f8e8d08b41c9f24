// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thomaspryor/broadwayscore/internal/corpus"
	"github.com/thomaspryor/broadwayscore/pkg/types"
)

var quarantineCmd = &cobra.Command{
	Use:   "quarantine",
	Short: "Manage records held out of the corpus for human review",
	Long: `Quarantine moves structurally suspect records (wrong show, navigation
junk) out of the published corpus without deleting them. Use subcommands to
list held records, quarantine one, or restore one.`,
}

var quarantineListCmd = &cobra.Command{
	Use:   "list",
	Short: "List quarantined records",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCorpus()
		if err != nil {
			return err
		}
		defer store.Close()

		held, err := store.QuarantineList(context.Background())
		if err != nil {
			return err
		}
		if len(held) == 0 {
			fmt.Println("Quarantine is empty.")
			return nil
		}
		for _, q := range held {
			fmt.Printf("%s/%s/%s  %s  (%s)\n",
				q.Record.ShowID, q.Record.OutletID, q.Record.CriticName,
				q.Reason, q.QuarantinedAt.Format("2006-01-02"))
		}
		return nil
	},
}

var quarantineAddCmd = &cobra.Command{
	Use:   "add <show-id> <outlet-id> <critic>",
	Short: "Move a published record into quarantine",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		reason, _ := cmd.Flags().GetString("reason")
		if reason == "" {
			return fmt.Errorf("--reason is required: quarantine decisions must be auditable")
		}
		store, err := openCorpus()
		if err != nil {
			return err
		}
		defer store.Close()

		key := types.IdentityKey{ShowID: args[0], OutletID: args[1], CriticKey: args[2]}
		ctx := context.Background()
		if err := store.Quarantine(ctx, key, reason); err != nil {
			return err
		}
		if err := store.AppendAudit(ctx, "manual", corpus.ActionQuarantine,
			fmt.Sprintf("%s/%s/%s: %s", key.ShowID, key.OutletID, key.CriticKey, reason)); err != nil {
			return err
		}
		fmt.Printf("Quarantined %s/%s/%s\n", key.ShowID, key.OutletID, key.CriticKey)
		return nil
	},
}

var quarantineRestoreCmd = &cobra.Command{
	Use:   "restore <show-id> <outlet-id> <critic>",
	Short: "Restore a quarantined record to the published corpus",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCorpus()
		if err != nil {
			return err
		}
		defer store.Close()

		key := types.IdentityKey{ShowID: args[0], OutletID: args[1], CriticKey: args[2]}
		ctx := context.Background()
		if err := store.Restore(ctx, key); err != nil {
			return err
		}
		if err := store.AppendAudit(ctx, "manual", corpus.ActionRestore,
			fmt.Sprintf("%s/%s/%s", key.ShowID, key.OutletID, key.CriticKey)); err != nil {
			return err
		}
		fmt.Printf("Restored %s/%s/%s\n", key.ShowID, key.OutletID, key.CriticKey)
		return nil
	},
}

func openCorpus() (*corpus.Store, error) {
	return corpus.NewStore(pipelineConfig().Corpus)
}

func init() {
	quarantineAddCmd.Flags().String("reason", "", "why the record is being held (required)")

	quarantineCmd.AddCommand(quarantineListCmd)
	quarantineCmd.AddCommand(quarantineAddCmd)
	quarantineCmd.AddCommand(quarantineRestoreCmd)
	rootCmd.AddCommand(quarantineCmd)
}
