package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/samber/lo"
)

// loadDictionary reads the word list JSON and returns the playable words
// uppercased. Entries of the wrong length are skipped with a log line.
func loadDictionary(path string) ([]string, error) {
	logInfo("Loading words from %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wl WordList
	if err := json.Unmarshal(data, &wl); err != nil {
		return nil, err
	}

	words := lo.FilterMap(wl.Words, func(w string, _ int) (string, bool) {
		if len(w) != WordLength {
			logInfo("Skipping word %q: not %d letters", w, WordLength)
			return "", false
		}
		return strings.ToUpper(w), true
	})

	logInfo("Successfully loaded %d words", len(words))
	return words, nil
}

// getOrCreateDailySession returns the player's session for today,
// building the daily word set and fresh progress when needed. The word
// set is created at most once per calendar day; a cached session from a
// previous day is discarded and rebuilt.
func (app *App) getOrCreateDailySession(ctx context.Context, playerID string, now time.Time) (*GameSession, error) {
	date := localDateString(now)

	app.SessionMutex.RLock()
	session, exists := app.Sessions[playerID]
	app.SessionMutex.RUnlock()
	if exists && session.Progress.Date == date {
		return session, nil
	}

	app.Store.CleanupStaleWordSets(playerID, date)

	set, err := app.loadOrBuildWordSet(ctx, playerID, date, now)
	if err != nil {
		return nil, err
	}

	progress, err := app.Store.LoadProgress(playerID, date)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logWarn("Failed to load progress for player %s: %v", playerID, err)
		}
		logInfo("Initializing fresh progress for player %s on %s", playerID, date)
		progress = newDailyProgress(date, app.Config.WordsPerDay)
		if err := app.Store.SaveProgress(playerID, progress); err != nil {
			logWarn("Failed to save fresh progress for player %s: %v", playerID, err)
		}
	} else {
		logInfo("Restored progress for player %s on %s (active slot %d)", playerID, date, progress.ActiveWordIndex)
	}

	session = newGameSession(playerID, set, progress, app.Store)
	app.SessionMutex.Lock()
	app.Sessions[playerID] = session
	app.SessionMutex.Unlock()
	return session, nil
}

// loadOrBuildWordSet restores today's word set or, on the first open of
// the day, selects new words, fetches their details jointly and persists
// the result. Either way the words are recorded in the recent-use ledger.
func (app *App) loadOrBuildWordSet(ctx context.Context, playerID, date string, now time.Time) (*DailyWordSet, error) {
	ledger := newRecentWordLedger(app.Store, playerID)

	set, err := app.Store.LoadWordSet(playerID, date)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logWarn("Failed to load word set for player %s: %v", playerID, err)
		}

		words, selErr := selectDailyWords(app.Dictionary, ledger.RecentWords(now), app.Config.WordsPerDay)
		if selErr != nil {
			return nil, selErr
		}

		details := app.Lookup.FetchAllDetails(ctx, words)
		set = &DailyWordSet{Date: date, Words: words, Details: details}
		if err := app.Store.SaveWordSet(playerID, set); err != nil {
			logWarn("Failed to save word set for player %s: %v", playerID, err)
		}
		logInfo("New daily word set stored for player %s on %s", playerID, date)
	}

	ledger.RecordUsed(set.Words, date, now)
	return set, nil
}
