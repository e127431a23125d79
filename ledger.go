package main

import (
	"time"

	"github.com/samber/lo"
)

// RecentWordLedger is the rolling log of words a player has been given,
// used to avoid repeats across days. Entries expire after
// RecentWindowDays; pruning happens lazily on read.
type RecentWordLedger struct {
	store    *FileStore
	playerID string
}

func newRecentWordLedger(store *FileStore, playerID string) *RecentWordLedger {
	return &RecentWordLedger{store: store, playerID: playerID}
}

// Recent returns the still-valid ledger entries. When pruning dropped
// anything, the cleaned ledger is persisted back.
func (l *RecentWordLedger) Recent(now time.Time) []RecentWordEntry {
	entries := l.store.LoadLedger(l.playerID)

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	cutoff := localDateString(midnight.AddDate(0, 0, -RecentWindowDays))

	valid := lo.Filter(entries, func(e RecentWordEntry, _ int) bool {
		return e.DateUsed >= cutoff
	})

	if len(valid) < len(entries) {
		if err := l.store.SaveLedger(l.playerID, valid); err != nil {
			logWarn("Failed to save pruned recent words ledger: %v", err)
		}
	}
	return valid
}

// RecentWords returns just the word strings of the valid entries.
func (l *RecentWordLedger) RecentWords(now time.Time) []string {
	return lo.Map(l.Recent(now), func(e RecentWordEntry, _ int) string {
		return e.Word
	})
}

// RecordUsed appends the given words to the ledger under the given date,
// deduplicating exact (word, date) pairs.
func (l *RecentWordLedger) RecordUsed(words []string, date string, now time.Time) {
	if len(words) == 0 {
		return
	}

	entries := l.Recent(now)
	for _, word := range words {
		entries = append(entries, RecentWordEntry{Word: word, DateUsed: date})
	}

	unique := lo.UniqBy(entries, func(e RecentWordEntry) string {
		return e.Word + "|" + e.DateUsed
	})

	if err := l.store.SaveLedger(l.playerID, unique); err != nil {
		logWarn("Failed to save recent words ledger: %v", err)
	}
}
