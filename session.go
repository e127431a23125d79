package main

import (
	"errors"
	"strings"
	"time"

	"github.com/samber/lo"
)

// User input errors. None of them mutate session state.
var (
	ErrSlotNotActive      = errors.New(ErrorSlotNotActive)
	ErrInvalidGuessLength = errors.New(ErrorInvalidLength)
	ErrAttemptsExhausted  = errors.New(ErrorNoAttemptsLeft)
	ErrSlotNotFinished    = errors.New(ErrorSlotNotFinished)
	ErrSlotNotReached     = errors.New(ErrorSlotNotReached)
)

// progressSaver is the slice of the persistence adapter the session
// machine needs: committing a progress snapshot after each mutation.
type progressSaver interface {
	SaveProgress(playerID string, progress *GameProgress) error
}

// GameSession drives one player's daily run through the word slots.
// Each slot moves Unstarted -> InProgress -> Solved|Failed; the session
// itself is active until every slot is finished. Progress is committed
// after every state-changing operation.
type GameSession struct {
	PlayerID string
	Set      *DailyWordSet
	Progress *GameProgress

	store progressSaver
}

func newGameSession(playerID string, set *DailyWordSet, progress *GameProgress, store progressSaver) *GameSession {
	return &GameSession{
		PlayerID: playerID,
		Set:      set,
		Progress: progress,
		store:    store,
	}
}

// newDailyProgress builds the fresh progress record used when no valid
// persisted progress exists for today.
func newDailyProgress(date string, wordsPerDay int) *GameProgress {
	return &GameProgress{
		Date: date,
		AttemptsMade: lo.Times(wordsPerDay, func(_ int) []Attempt {
			return []Attempt{}
		}),
		WordStatus: lo.Times(wordsPerDay, func(_ int) WordStatus {
			return WordStatus{}
		}),
		ActiveWordIndex:        0,
		AllChallengesCompleted: false,
	}
}

// normalizeGuess trims and uppercases a guess string for comparison.
func normalizeGuess(input string) string {
	return strings.ToUpper(strings.TrimSpace(input))
}

// SubmitGuess evaluates a guess against the slot's target word and
// records the attempt. Rejected guesses (wrong slot, wrong length, no
// attempts left) record nothing and consume nothing.
func (gs *GameSession) SubmitGuess(slotIndex int, guessText string) (Attempt, error) {
	if slotIndex != gs.Progress.ActiveWordIndex || slotIndex >= len(gs.Set.Words) {
		logWarn("Player %s guessed on slot %d while slot %d is active", gs.PlayerID, slotIndex, gs.Progress.ActiveWordIndex)
		return Attempt{}, ErrSlotNotActive
	}

	guess := normalizeGuess(guessText)
	if len(guess) != WordLength {
		logWarn("Player %s submitted invalid length guess: %s (%d letters)", gs.PlayerID, guess, len(guess))
		return Attempt{}, ErrInvalidGuessLength
	}

	status := &gs.Progress.WordStatus[slotIndex]
	if status.Finished() || status.Attempts >= MaxAttempts {
		logWarn("Player %s attempted guess on finished slot %d", gs.PlayerID, slotIndex)
		return Attempt{}, ErrAttemptsExhausted
	}

	target := gs.Set.Words[slotIndex]
	logInfo("Player %s guessed %s on slot %d (attempt %d/%d)", gs.PlayerID, guess, slotIndex, status.Attempts+1, MaxAttempts)

	attempt := Attempt{
		GuessString: guess,
		TileStates:  tileStates(scoreGuess(guess, target)),
	}
	gs.Progress.AttemptsMade[slotIndex] = append(gs.Progress.AttemptsMade[slotIndex], attempt)
	status.Attempts++

	if guess == target {
		status.Solved = true
		logInfo("Player %s solved slot %d in %d attempt(s)", gs.PlayerID, slotIndex, status.Attempts)
	} else if status.Attempts >= MaxAttempts {
		status.Failed = true
		logInfo("Player %s failed slot %d, word was %s", gs.PlayerID, slotIndex, target)
	}

	gs.commitProgress()
	return attempt, nil
}

// AdvanceAfterCompletion moves the active index past a finished slot.
// Once the index passes the last slot the whole session is completed.
func (gs *GameSession) AdvanceAfterCompletion(slotIndex int) error {
	if slotIndex != gs.Progress.ActiveWordIndex || slotIndex >= len(gs.Set.Words) {
		return ErrSlotNotActive
	}
	if !gs.Progress.WordStatus[slotIndex].Finished() {
		return ErrSlotNotFinished
	}

	gs.Progress.ActiveWordIndex++
	if gs.Progress.ActiveWordIndex == len(gs.Set.Words) {
		gs.Progress.AllChallengesCompleted = true
		logInfo("Player %s completed all %d daily words", gs.PlayerID, len(gs.Set.Words))
	}

	gs.commitProgress()
	return nil
}

// NavigateTo returns the view for a previously-reached slot. It is pure
// view state: the active index never changes. Unstarted slots beyond the
// active one are not reachable.
func (gs *GameSession) NavigateTo(slotIndex int) (SlotView, error) {
	if slotIndex < 0 || slotIndex >= len(gs.Set.Words) {
		return SlotView{}, ErrSlotNotReached
	}
	if slotIndex > gs.Progress.ActiveWordIndex {
		return SlotView{}, ErrSlotNotReached
	}
	return gs.slotView(slotIndex), nil
}

// slotView assembles the render-ready state of one slot. The target word
// and its detail stay hidden until the slot is finished.
func (gs *GameSession) slotView(slotIndex int) SlotView {
	status := gs.Progress.WordStatus[slotIndex]
	view := SlotView{
		Index:    slotIndex,
		Attempts: gs.Progress.AttemptsMade[slotIndex],
		Status:   status,
		Active:   slotIndex == gs.Progress.ActiveWordIndex && !status.Finished(),
		Viewable: slotIndex <= gs.Progress.ActiveWordIndex,
	}
	if status.Finished() {
		view.Word = gs.Set.Words[slotIndex]
		view.Detail = &gs.Set.Details[slotIndex]
	}
	return view
}

// Snapshot returns everything a UI collaborator needs to render the
// session, including the countdown to the next word rotation.
func (gs *GameSession) Snapshot(now time.Time) SessionSnapshot {
	snapshot := SessionSnapshot{
		Date:                   gs.Progress.Date,
		WordLength:             WordLength,
		MaxAttempts:            MaxAttempts,
		ActiveWordIndex:        gs.Progress.ActiveWordIndex,
		AllChallengesCompleted: gs.Progress.AllChallengesCompleted,
		Slots: lo.Times(len(gs.Set.Words), func(i int) SlotView {
			return gs.slotView(i)
		}),
		NextRotation: formatCountdown(nextMidnight(now).Sub(now)),
	}
	if gs.Progress.AllChallengesCompleted {
		snapshot.Summary = gs.completionSummary()
	}
	return snapshot
}

func (gs *GameSession) completionSummary() *CompletionSummary {
	solved := lo.CountBy(gs.Progress.WordStatus, func(ws WordStatus) bool {
		return ws.Solved
	})
	return &CompletionSummary{
		SolvedCount: solved,
		TotalWords:  len(gs.Set.Words),
		AllSolved:   solved == len(gs.Set.Words),
		Words:       gs.Set.Words,
		Meanings: lo.Map(gs.Set.Details, func(d WordDetail, _ int) string {
			return d.Meaning
		}),
	}
}

// commitProgress writes the progress snapshot through the persistence
// adapter. Snapshots are always written after the in-memory mutation
// that produced them.
func (gs *GameSession) commitProgress() {
	if err := gs.store.SaveProgress(gs.PlayerID, gs.Progress); err != nil {
		logWarn("Failed to persist progress for player %s: %v", gs.PlayerID, err)
	}
}
