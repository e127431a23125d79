package main

// scoreGuess compares a guess to the target word and returns per-letter
// tile results. Both strings must be the same length and normalized to
// upper case.
//
// A letter is never marked correct or present more often than it occurs
// in the target: correct positions consume the letter budget first, then
// remaining positions are marked present while budget lasts.
func scoreGuess(guess, target string) []TileResult {
	counts := make(map[byte]int, len(target))
	for i := 0; i < len(target); i++ {
		counts[target[i]]++
	}

	result := make([]TileResult, len(guess))
	for i := 0; i < len(guess); i++ {
		result[i] = TileResult{Letter: string(guess[i]), Status: TileStatusAbsent}
		if guess[i] == target[i] {
			result[i].Status = TileStatusCorrect
			counts[guess[i]]--
		}
	}

	for i := 0; i < len(guess); i++ {
		if result[i].Status == TileStatusCorrect {
			continue
		}
		if counts[guess[i]] > 0 {
			result[i].Status = TileStatusPresent
			counts[guess[i]]--
		}
	}

	return result
}

// tileStates flattens tile results into the status strings persisted with
// an attempt.
func tileStates(results []TileResult) []string {
	states := make([]string, len(results))
	for i, r := range results {
		states[i] = r.Status
	}
	return states
}
