package main

// WordList represents the JSON structure for loading the dictionary
type WordList struct {
	Words []string `json:"words"`
}

// WordDetail holds the definition and usage examples for a target word.
// Produced by the dictionary lookup; sentinel values on failure.
type WordDetail struct {
	Meaning  string   `json:"meaning"`
	Examples []string `json:"examples"`
}

// DailyWordSet is the immutable per-day selection of target words plus
// their details, index-aligned. Superseded wholesale on the next day.
type DailyWordSet struct {
	Date    string       `json:"date"`
	Words   []string     `json:"words"`
	Details []WordDetail `json:"details"`
}

// TileResult represents a single letter's evaluation
type TileResult struct {
	Letter string `json:"letter"`
	Status string `json:"status"` // "correct", "present" or "absent"
}

// Attempt is one recorded guess against a word. Immutable once recorded.
type Attempt struct {
	GuessString string   `json:"guessString"`
	TileStates  []string `json:"tileStates"`
}

// WordStatus tracks the outcome of a single word slot. Solved and Failed
// are mutually exclusive.
type WordStatus struct {
	Solved   bool `json:"solved"`
	Failed   bool `json:"failed"`
	Attempts int  `json:"attempts"`
}

// Finished reports whether the slot reached a terminal state.
func (ws WordStatus) Finished() bool {
	return ws.Solved || ws.Failed
}

// GameProgress is the mutable per-day record of guesses and completion
// state for one player. Persisted after every mutation.
type GameProgress struct {
	Date                   string       `json:"date"`
	AttemptsMade           [][]Attempt  `json:"attemptsMade"`
	WordStatus             []WordStatus `json:"wordStatus"`
	ActiveWordIndex        int          `json:"activeWordIndex"`
	AllChallengesCompleted bool         `json:"allChallengesCompleted"`
}

// RecentWordEntry is one row of the recent-use ledger.
type RecentWordEntry struct {
	Word     string `json:"word"`
	DateUsed string `json:"dateUsed"`
}

// SlotView is the render-ready state of one word slot. The target word and
// its details are withheld until the slot is finished.
type SlotView struct {
	Index    int         `json:"index"`
	Attempts []Attempt   `json:"attempts"`
	Status   WordStatus  `json:"status"`
	Active   bool        `json:"active"`
	Viewable bool        `json:"viewable"`
	Word     string      `json:"word,omitempty"`
	Detail   *WordDetail `json:"detail,omitempty"`
}

// CompletionSummary is shown once every slot is finished.
type CompletionSummary struct {
	SolvedCount int      `json:"solvedCount"`
	TotalWords  int      `json:"totalWords"`
	AllSolved   bool     `json:"allSolved"`
	Words       []string `json:"words"`
	Meanings    []string `json:"meanings"`
}

// SessionSnapshot is everything a UI needs to render the daily session.
type SessionSnapshot struct {
	Date                   string             `json:"date"`
	WordLength             int                `json:"wordLength"`
	MaxAttempts            int                `json:"maxAttempts"`
	ActiveWordIndex        int                `json:"activeWordIndex"`
	AllChallengesCompleted bool               `json:"allChallengesCompleted"`
	Slots                  []SlotView         `json:"slots"`
	NextRotation           string             `json:"nextRotation"`
	Summary                *CompletionSummary `json:"summary,omitempty"`
}
