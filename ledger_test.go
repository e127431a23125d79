package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/samber/lo"
)

const testPlayerID = "test-player-0001"

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return newFileStore(t.TempDir(), 3)
}

// TestLedgerRecordUsed checks appending and (word, date) deduplication
func TestLedgerRecordUsed(t *testing.T) {
	store := newTestStore(t)
	ledger := newRecentWordLedger(store, testPlayerID)
	now := time.Now()
	today := localDateString(now)

	ledger.RecordUsed([]string{"APPLE", "BANJO"}, today, now)
	ledger.RecordUsed([]string{"BANJO", "PEACH"}, today, now)

	words := ledger.RecentWords(now)
	if len(words) != 3 {
		t.Fatalf("got %d entries, want 3: %v", len(words), words)
	}
	for _, w := range []string{"APPLE", "BANJO", "PEACH"} {
		if !lo.Contains(words, w) {
			t.Errorf("missing word %s", w)
		}
	}
}

// TestLedgerPrunesOldEntries checks the rolling window and lazy cleanup
func TestLedgerPrunesOldEntries(t *testing.T) {
	store := newTestStore(t)
	ledger := newRecentWordLedger(store, testPlayerID)
	now := time.Now()

	old := localDateString(now.AddDate(0, 0, -10))
	fresh := localDateString(now.AddDate(0, 0, -2))
	if err := store.SaveLedger(testPlayerID, []RecentWordEntry{
		{Word: "STALE", DateUsed: old},
		{Word: "FRESH", DateUsed: fresh},
	}); err != nil {
		t.Fatalf("save ledger: %v", err)
	}

	words := ledger.RecentWords(now)
	if len(words) != 1 || words[0] != "FRESH" {
		t.Fatalf("got %v, want [FRESH]", words)
	}

	// Pruned form must have been written back.
	persisted := store.LoadLedger(testPlayerID)
	if len(persisted) != 1 || persisted[0].Word != "FRESH" {
		t.Errorf("pruned ledger not persisted: %v", persisted)
	}
}

// TestLedgerWindowBoundary checks entries exactly at the cutoff survive
func TestLedgerWindowBoundary(t *testing.T) {
	store := newTestStore(t)
	ledger := newRecentWordLedger(store, testPlayerID)
	now := time.Now()

	boundary := localDateString(now.AddDate(0, 0, -RecentWindowDays))
	if err := store.SaveLedger(testPlayerID, []RecentWordEntry{
		{Word: "EDGES", DateUsed: boundary},
	}); err != nil {
		t.Fatalf("save ledger: %v", err)
	}

	if words := ledger.RecentWords(now); len(words) != 1 {
		t.Errorf("boundary entry pruned: %v", words)
	}
}

// TestLedgerCorruptFileTreatedAsEmpty checks the wholesale discard policy
func TestLedgerCorruptFileTreatedAsEmpty(t *testing.T) {
	store := newTestStore(t)
	ledger := newRecentWordLedger(store, testPlayerID)

	dir := store.playerDir(testPlayerID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, LedgerFileName), []byte("{not json"), 0644); err != nil {
		t.Fatalf("write corrupt ledger: %v", err)
	}

	if words := ledger.RecentWords(time.Now()); len(words) != 0 {
		t.Errorf("corrupt ledger not treated as empty: %v", words)
	}
}
