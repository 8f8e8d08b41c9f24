// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/thomaspryor/broadwayscore/pkg/types"
)

func testSetup(t *testing.T) (*Store, string) {
	t.Helper()
	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, rawDir), 0o755); err != nil {
		t.Fatal(err)
	}

	store, err := NewStore(types.CorpusConfig{CorpusDir: tmpDir})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store, tmpDir
}

func record(show, outlet, critic string) *types.ReviewRecord {
	return &types.ReviewRecord{ShowID: show, OutletID: outlet, CriticName: critic}
}

func TestReplaceAndAll(t *testing.T) {
	store, _ := testSetup(t)
	ctx := context.Background()

	records := []*types.ReviewRecord{
		record("wicked", "variety", "unknown"),
		record("hadestown", "nytimes", "jesse green"),
	}
	if err := store.Replace(ctx, records); err != nil {
		t.Fatal(err)
	}

	got, err := store.All(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	// Ordered by identity key.
	if got[0].ShowID != "hadestown" || got[1].ShowID != "wicked" {
		t.Errorf("unexpected order: %s, %s", got[0].ShowID, got[1].ShowID)
	}

	// Replace swaps the whole corpus, it never accumulates.
	if err := store.Replace(ctx, records[:1]); err != nil {
		t.Fatal(err)
	}
	got, err = store.All(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ShowID != "wicked" {
		t.Errorf("replace did not swap corpus: %d records", len(got))
	}
}

func TestForShow(t *testing.T) {
	store, _ := testSetup(t)
	ctx := context.Background()

	if err := store.Replace(ctx, []*types.ReviewRecord{
		record("hadestown", "nytimes", "jesse green"),
		record("hadestown", "vulture", "sara holdren"),
		record("wicked", "variety", "unknown"),
	}); err != nil {
		t.Fatal(err)
	}

	got, err := store.ForShow(ctx, "hadestown")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("got %d records for hadestown, want 2", len(got))
	}
}

func TestQuarantineAndRestore(t *testing.T) {
	store, _ := testSetup(t)
	ctx := context.Background()

	rec := record("hadestown", "peoria-gazette", "unknown")
	rec.Flags = []types.Flag{types.FlagWrongShow}
	if err := store.Replace(ctx, []*types.ReviewRecord{rec}); err != nil {
		t.Fatal(err)
	}

	key := types.IdentityKey{ShowID: "hadestown", OutletID: "peoria-gazette", CriticKey: "unknown"}
	if err := store.Quarantine(ctx, key, "wrong show"); err != nil {
		t.Fatal(err)
	}

	// Moved, not deleted.
	published, err := store.All(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(published) != 0 {
		t.Fatalf("quarantined record still published")
	}
	held, err := store.QuarantineList(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(held) != 1 || held[0].Reason != "wrong show" {
		t.Fatalf("quarantine list = %+v", held)
	}
	if !held[0].Record.HasFlag(types.FlagWrongShow) {
		t.Error("flags lost in quarantine")
	}

	// Reversible.
	if err := store.Restore(ctx, key); err != nil {
		t.Fatal(err)
	}
	published, err = store.All(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(published) != 1 {
		t.Fatal("restore did not republish the record")
	}
	held, err = store.QuarantineList(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(held) != 0 {
		t.Error("restored record still in quarantine")
	}
}

func TestQuarantineMissingRecord(t *testing.T) {
	store, _ := testSetup(t)
	key := types.IdentityKey{ShowID: "x", OutletID: "y", CriticKey: "z"}
	if err := store.Quarantine(context.Background(), key, "because"); err == nil {
		t.Error("expected error quarantining a missing record")
	}
}

func TestAuditLog(t *testing.T) {
	store, _ := testSetup(t)
	ctx := context.Background()

	report := &types.RunReport{
		RunID:     "run-1",
		StartedAt: time.Now().UTC(),
		Discards: []types.Discard{{
			Identity: types.IdentityKey{ShowID: "hadestown", OutletID: "nytimes", CriticKey: "jesse green"},
			Reason:   "same outlet+critic",
		}},
		Repairs: []types.Repair{{
			Identity: types.IdentityKey{ShowID: "wicked", OutletID: "nypost", CriticKey: "unknown"},
			OldScore: 82, NewScore: 45,
			OldBucket: types.BucketPositive, NewBucket: types.BucketNegative,
			Reason: "external thumb \"down\" contradicts bucket \"Positive\" by 2 buckets",
		}},
		Fatals: []types.Fatal{{
			Identity: types.IdentityKey{ShowID: "", OutletID: "variety", CriticKey: "unknown"},
			Reason:   "missing show identifier",
		}},
	}
	if err := store.RecordRun(ctx, report); err != nil {
		t.Fatal(err)
	}

	entries, err := store.AuditForRun(ctx, "run-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d audit entries, want 3", len(entries))
	}
	actions := map[string]bool{}
	for _, e := range entries {
		actions[e.Action] = true
		if e.ID == "" {
			t.Error("audit entry missing id")
		}
	}
	for _, want := range []string{ActionDiscard, ActionRepair, ActionFatal} {
		if !actions[want] {
			t.Errorf("missing audit action %q", want)
		}
	}
}

func TestLoadRaw(t *testing.T) {
	store, tmpDir := testSetup(t)

	jsonBatch := `[{"show_id":"hadestown","outlet":"The New York Times","critic_name":"Jesse Green","original_rating_text":"4/5"}]`
	yamlBatch := "- show_id: wicked\n  outlet: Variety\n  source: archive\n"
	if err := os.WriteFile(filepath.Join(tmpDir, rawDir, "b-archive.yaml"), []byte(yamlBatch), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, rawDir, "a-scrape.json"), []byte(jsonBatch), 0o644); err != nil {
		t.Fatal(err)
	}
	// Non-data files are ignored.
	if err := os.WriteFile(filepath.Join(tmpDir, rawDir, "README.txt"), []byte("notes"), 0o644); err != nil {
		t.Fatal(err)
	}

	raws, err := store.LoadRaw()
	if err != nil {
		t.Fatal(err)
	}
	if len(raws) != 2 {
		t.Fatalf("got %d raw records, want 2", len(raws))
	}
	// Files load in name order.
	if raws[0].ShowID != "hadestown" || raws[1].ShowID != "wicked" {
		t.Errorf("unexpected order: %s, %s", raws[0].ShowID, raws[1].ShowID)
	}
	// Source defaults to the file name; explicit sources are kept.
	if raws[0].Source != "a-scrape" {
		t.Errorf("source = %q, want a-scrape", raws[0].Source)
	}
	if raws[1].Source != "archive" {
		t.Errorf("source = %q, want archive", raws[1].Source)
	}
}

func TestWriteAndLatestReport(t *testing.T) {
	store, _ := testSetup(t)

	report := &types.RunReport{
		RunID:        "0123456789abcdef",
		StartedAt:    time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
		Input:        10,
		Published:    8,
		TierCounts:   map[types.ContentTier]int{types.TierComplete: 8},
		BucketCounts: map[types.Bucket]int{types.BucketRave: 3},
	}
	path, err := store.WriteReport(report)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("report not written: %v", err)
	}

	got, err := store.LatestReport()
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.RunID != report.RunID || got.Published != 8 {
		t.Errorf("latest report = %+v", got)
	}
}

func TestLatestReportNone(t *testing.T) {
	store, _ := testSetup(t)
	got, err := store.LatestReport()
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("expected nil report, got %+v", got)
	}
}
