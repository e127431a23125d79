package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// FileStore persists the date-keyed game records for each player under
// DataDir/players/<playerID>/. Records failing shape or date validation
// are removed and reported as missing so the caller regenerates them.
type FileStore struct {
	DataDir     string
	WordsPerDay int
}

func newFileStore(dataDir string, wordsPerDay int) *FileStore {
	return &FileStore{DataDir: dataDir, WordsPerDay: wordsPerDay}
}

func (s *FileStore) playerDir(playerID string) string {
	return filepath.Join(s.DataDir, "players", playerID)
}

// validPlayerID rejects IDs too short to be real cookie UUIDs or that
// could escape the player directory.
func validPlayerID(playerID string) bool {
	return len(playerID) >= 10 && !strings.ContainsAny(playerID, `/\`)
}

func (s *FileStore) writeRecord(playerID, name string, v any) error {
	if !validPlayerID(playerID) {
		logWarn("Skipping save for invalid player ID: %s", playerID)
		return os.ErrInvalid
	}

	dir := s.playerDir(playerID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		logWarn("Failed to create player directory %s: %v", dir, err)
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logWarn("Failed to marshal record %s for player %s: %v", name, playerID, err)
		return err
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		logWarn("Failed to write record file %s: %v", path, err)
		return err
	}
	return nil
}

func (s *FileStore) readRecord(playerID, name string, v any) error {
	if !validPlayerID(playerID) {
		return os.ErrNotExist
	}

	path := filepath.Join(s.playerDir(playerID), name)
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, v); err != nil {
		logWarn("Record file %s is corrupted, removing: %v", path, err)
		os.Remove(path)
		return os.ErrNotExist
	}
	return nil
}

func (s *FileStore) removeRecord(playerID, name string) {
	os.Remove(filepath.Join(s.playerDir(playerID), name))
}

// SaveWordSet persists the daily word set for a player.
func (s *FileStore) SaveWordSet(playerID string, set *DailyWordSet) error {
	return s.writeRecord(playerID, WordSetFilePrefix+set.Date+".json", set)
}

// LoadWordSet returns the stored daily word set for a date, or
// os.ErrNotExist if the record is missing, stale or malformed.
func (s *FileStore) LoadWordSet(playerID, date string) (*DailyWordSet, error) {
	name := WordSetFilePrefix + date + ".json"
	var set DailyWordSet
	if err := s.readRecord(playerID, name, &set); err != nil {
		return nil, err
	}

	if !s.validWordSet(&set, date) {
		logWarn("Stored word set for player %s failed validation (date: %s, words: %d), removing",
			playerID, set.Date, len(set.Words))
		s.removeRecord(playerID, name)
		return nil, os.ErrNotExist
	}
	return &set, nil
}

func (s *FileStore) validWordSet(set *DailyWordSet, date string) bool {
	if set.Date != date {
		return false
	}
	if len(set.Words) != s.WordsPerDay || len(set.Details) != s.WordsPerDay {
		return false
	}
	for _, w := range set.Words {
		if len(w) != WordLength {
			return false
		}
	}
	return true
}

// SaveProgress persists the session progress for a player.
func (s *FileStore) SaveProgress(playerID string, progress *GameProgress) error {
	return s.writeRecord(playerID, ProgressFilePrefix+progress.Date+".json", progress)
}

// LoadProgress returns the stored session progress for a date, or
// os.ErrNotExist if the record is missing, stale or malformed.
func (s *FileStore) LoadProgress(playerID, date string) (*GameProgress, error) {
	name := ProgressFilePrefix + date + ".json"
	var progress GameProgress
	if err := s.readRecord(playerID, name, &progress); err != nil {
		return nil, err
	}

	if !s.validProgress(&progress, date) {
		logWarn("Stored progress for player %s failed validation (date: %s, slots: %d), removing",
			playerID, progress.Date, len(progress.WordStatus))
		s.removeRecord(playerID, name)
		return nil, os.ErrNotExist
	}
	return &progress, nil
}

func (s *FileStore) validProgress(progress *GameProgress, date string) bool {
	if progress.Date != date {
		return false
	}
	if len(progress.AttemptsMade) != s.WordsPerDay || len(progress.WordStatus) != s.WordsPerDay {
		return false
	}
	if progress.ActiveWordIndex < 0 || progress.ActiveWordIndex > s.WordsPerDay {
		return false
	}
	for _, status := range progress.WordStatus {
		if status.Attempts < 0 || status.Attempts > MaxAttempts {
			return false
		}
		if status.Solved && status.Failed {
			return false
		}
	}
	return true
}

// LoadLedger returns the recent-use ledger for a player. A corrupted
// ledger file is discarded wholesale and treated as empty.
func (s *FileStore) LoadLedger(playerID string) []RecentWordEntry {
	var entries []RecentWordEntry
	if err := s.readRecord(playerID, LedgerFileName, &entries); err != nil {
		return nil
	}
	return entries
}

// SaveLedger persists the recent-use ledger for a player.
func (s *FileStore) SaveLedger(playerID string, entries []RecentWordEntry) error {
	return s.writeRecord(playerID, LedgerFileName, entries)
}

// CleanupStaleWordSets removes word-set records for dates other than
// today. Runs at most once per player, gated by a marker file.
func (s *FileStore) CleanupStaleWordSets(playerID, today string) {
	if !validPlayerID(playerID) {
		return
	}

	dir := s.playerDir(playerID)
	markerPath := filepath.Join(dir, CleanupMarkerName)
	if _, err := os.Stat(markerPath); err == nil {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			logWarn("Failed to read player directory for cleanup: %v", err)
		}
		return
	}

	keep := WordSetFilePrefix + today + ".json"
	removed := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, WordSetFilePrefix) || name == keep {
			continue
		}
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			logWarn("Failed to remove stale word set %s: %v", name, err)
		} else {
			removed++
		}
	}

	if err := os.WriteFile(markerPath, []byte("cleaned"), 0644); err != nil {
		logWarn("Failed to write cleanup marker for player %s: %v", playerID, err)
		return
	}
	logInfo("One-time storage cleanup for player %s removed %d stale word set(s)", playerID, removed)
}
