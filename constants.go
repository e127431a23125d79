package main

// Game configuration constants
const (
	MaxAttempts = 6 // Maximum number of guesses per word
	WordLength  = 5 // Length of every target word

	RecentWindowDays = 7 // How long a word stays in the recent-use ledger
)

// Tile status constants
const (
	TileStatusCorrect = "correct"
	TileStatusPresent = "present"
	TileStatusAbsent  = "absent"
)

// Session configuration constants
const (
	PlayerCookieName = "player_id"
)

// Route constants
const (
	RouteGameState = "/game-state"
	RouteGuess     = "/guess"
	RouteAdvance   = "/advance"
	RouteNavigate  = "/navigate"
	RouteHealthz   = "/healthz"
)

// User-facing error messages
const (
	ErrorSlotNotActive   = "This word is not the active challenge."
	ErrorInvalidLength   = "Guess must be 5 letters long."
	ErrorNoAttemptsLeft  = "No more attempts left for this word."
	ErrorSlotNotFinished = "Finish this word before continuing."
	ErrorSlotNotReached  = "That word is not available yet."
	ErrorNoWordsToday    = "Error: No words available for selection."
)

// Sentinel word-detail values for the dictionary lookup contract.
const (
	MeaningNotFound     = "Definition not found for this word."
	MeaningUnavailable  = "Not found."
	MeaningFetchError   = "Error fetching details."
	MeaningNoDefinition = "No definition found."
	MeaningNoDetails    = "Details not found."
)

// Persisted record file name parts
const (
	WordSetFilePrefix  = "wordset_"
	ProgressFilePrefix = "progress_"
	LedgerFileName     = "recent_words.json"
	CleanupMarkerName  = ".storage_cleaned_v2"
)

// Context key constants
const (
	requestIDKey contextKey = "request_id"
)

type contextKey string
