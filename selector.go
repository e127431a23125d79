package main

import (
	"crypto/rand"
	"errors"
	"math/big"

	"github.com/samber/lo"
)

// ErrWordListUnavailable means no candidate words exist at all; the game
// cannot start and the caller must surface a blocking error.
var ErrWordListUnavailable = errors.New("no words available for selection")

// selectDailyWords picks n distinct target words for one day. Words used
// within the recent-use window are excluded; if that leaves too few
// candidates the full length-filtered dictionary is used instead, allowing
// repeats of recently played words.
func selectDailyWords(dictionary []string, recentlyUsed []string, n int) ([]string, error) {
	pool := lo.Filter(dictionary, func(w string, _ int) bool {
		return len(w) == WordLength && !lo.Contains(recentlyUsed, w)
	})

	if len(pool) < n {
		logWarn("Only %d unused %d-letter words left, need %d; falling back to full list with repeats allowed",
			len(pool), WordLength, n)
		pool = lo.Filter(dictionary, func(w string, _ int) bool {
			return len(w) == WordLength
		})
	}

	if len(pool) < n {
		return nil, ErrWordListUnavailable
	}

	shuffled := cryptoShuffle(pool)
	selected := shuffled[:n]
	logInfo("Selected %d daily words from pool of %d", n, len(pool))
	return selected, nil
}

// cryptoShuffle returns a copy of words in random order, using the same
// crypto/rand source as the rest of the app. A failed random draw skips
// the swap rather than aborting the shuffle.
func cryptoShuffle(words []string) []string {
	shuffled := make([]string, len(words))
	copy(shuffled, words)
	for i := len(shuffled) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			logWarn("Error generating random number during shuffle: %v", err)
			continue
		}
		j := n.Int64()
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}
