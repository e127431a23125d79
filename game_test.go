package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func newTestApp(t *testing.T, dictionary []string) *App {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	cfg := Config{
		Port:             "0",
		DataDir:          t.TempDir(),
		WordsPerDay:      3,
		DictionaryAPIURL: srv.URL,
		LookupTimeout:    2 * time.Second,
		CookieMaxAge:     time.Hour,
		RateLimitRPS:     100,
		RateLimitBurst:   100,
	}

	return &App{
		Config:     cfg,
		Dictionary: dictionary,
		Store:      newFileStore(cfg.DataDir, cfg.WordsPerDay),
		Lookup:     newDictionaryClient(cfg.DictionaryAPIURL, cfg.LookupTimeout),
		Sessions:   make(map[string]*GameSession),
		LimiterMap: make(map[string]*rate.Limiter),
		StartTime:  time.Now(),
	}
}

// TestLoadDictionary checks word list loading and normalization
func TestLoadDictionary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.json")
	content := `{"words": ["apple", "banjo", "ax", "elephant", "peach"]}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	words, err := loadDictionary(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := []string{"APPLE", "BANJO", "PEACH"}
	if !reflect.DeepEqual(words, want) {
		t.Errorf("got %v, want %v", words, want)
	}
}

// TestLoadDictionaryErrors checks missing and malformed files
func TestLoadDictionaryErrors(t *testing.T) {
	if _, err := loadDictionary(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Errorf("missing file: want error")
	}

	path := filepath.Join(t.TempDir(), "words.json")
	if err := os.WriteFile(path, []byte("{oops"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := loadDictionary(path); err == nil {
		t.Errorf("malformed file: want error")
	}
}

// TestGetOrCreateDailySession checks first-open initialization
func TestGetOrCreateDailySession(t *testing.T) {
	app := newTestApp(t, testDictionary)
	now := time.Now()

	session, err := app.getOrCreateDailySession(context.Background(), testPlayerID, now)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if len(session.Set.Words) != 3 || len(session.Set.Details) != 3 {
		t.Fatalf("word set shape: %+v", session.Set)
	}
	for _, d := range session.Set.Details {
		if d.Meaning != MeaningNotFound {
			t.Errorf("lookup sentinel missing: %+v", d)
		}
	}
	if session.Progress.ActiveWordIndex != 0 || session.Progress.AllChallengesCompleted {
		t.Errorf("fresh progress wrong: %+v", session.Progress)
	}

	// Selected words land in the recent-use ledger.
	ledger := newRecentWordLedger(app.Store, testPlayerID)
	if got := ledger.RecentWords(now); len(got) != 3 {
		t.Errorf("ledger has %d words, want 3", len(got))
	}
}

// TestDailySessionIdempotentPerDay checks the word set is not re-rolled
// when the session is rebuilt from persisted records.
func TestDailySessionIdempotentPerDay(t *testing.T) {
	app := newTestApp(t, testDictionary)
	now := time.Now()

	first, err := app.getOrCreateDailySession(context.Background(), testPlayerID, now)
	if err != nil {
		t.Fatalf("first: %v", err)
	}

	// Drop the in-memory cache to force a reload from disk.
	app.SessionMutex.Lock()
	app.Sessions = make(map[string]*GameSession)
	app.SessionMutex.Unlock()

	second, err := app.getOrCreateDailySession(context.Background(), testPlayerID, now)
	if err != nil {
		t.Fatalf("second: %v", err)
	}

	if !reflect.DeepEqual(first.Set.Words, second.Set.Words) {
		t.Errorf("word set re-rolled within the same day: %v vs %v", first.Set.Words, second.Set.Words)
	}
}

// TestDailySessionRestoresProgress checks reload mid-game
func TestDailySessionRestoresProgress(t *testing.T) {
	app := newTestApp(t, testDictionary)
	now := time.Now()
	ctx := context.Background()

	session, err := app.getOrCreateDailySession(ctx, testPlayerID, now)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := session.SubmitGuess(0, "TABLE"); err != nil {
		t.Fatalf("guess: %v", err)
	}

	app.SessionMutex.Lock()
	app.Sessions = make(map[string]*GameSession)
	app.SessionMutex.Unlock()

	restored, err := app.getOrCreateDailySession(ctx, testPlayerID, now)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !reflect.DeepEqual(session.Progress, restored.Progress) {
		t.Errorf("restored progress differs:\n got %+v\nwant %+v", restored.Progress, session.Progress)
	}
}

// TestDailySessionStaleCacheRebuilt checks a cached session from a
// previous day is replaced, never reused.
func TestDailySessionStaleCacheRebuilt(t *testing.T) {
	app := newTestApp(t, testDictionary)
	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)
	ctx := context.Background()

	if _, err := app.getOrCreateDailySession(ctx, testPlayerID, yesterday); err != nil {
		t.Fatalf("yesterday: %v", err)
	}

	session, err := app.getOrCreateDailySession(ctx, testPlayerID, now)
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if session.Progress.Date != localDateString(now) {
		t.Errorf("session date = %s, want today", session.Progress.Date)
	}
	if session.Progress.ActiveWordIndex != 0 {
		t.Errorf("stale progress reused: %+v", session.Progress)
	}
}

// TestDailySessionNoWords checks the blocking failure path
func TestDailySessionNoWords(t *testing.T) {
	app := newTestApp(t, nil)
	_, err := app.getOrCreateDailySession(context.Background(), testPlayerID, time.Now())
	if !errors.Is(err, ErrWordListUnavailable) {
		t.Errorf("got %v, want ErrWordListUnavailable", err)
	}
}
