package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// MaxDetailExamples caps how many usage examples are kept per word.
const MaxDetailExamples = 2

// DictionaryClient fetches word definitions from a dictionaryapi.dev
// compatible endpoint. Every failure mode resolves to a sentinel
// WordDetail so a lookup can never block game progress.
type DictionaryClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func newDictionaryClient(baseURL string, timeout time.Duration) *DictionaryClient {
	return &DictionaryClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// dictionaryEntry mirrors the relevant slice of the lookup payload.
type dictionaryEntry struct {
	Meanings []struct {
		Definitions []struct {
			Definition string `json:"definition"`
			Example    string `json:"example"`
		} `json:"definitions"`
	} `json:"meanings"`
}

// FetchWordDetail looks up one word. It always returns a usable
// WordDetail; 404 and transport/parse failures map to sentinel values.
func (dc *DictionaryClient) FetchWordDetail(ctx context.Context, word string) WordDetail {
	url := fmt.Sprintf("%s/api/v2/entries/en/%s", dc.BaseURL, strings.ToLower(word))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		logWarn("Failed to build lookup request for %s: %v", word, err)
		return WordDetail{Meaning: MeaningFetchError, Examples: []string{}}
	}

	resp, err := dc.HTTPClient.Do(req)
	if err != nil {
		logWarn("Error fetching details for %s: %v", word, err)
		return WordDetail{Meaning: MeaningFetchError, Examples: []string{}}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logWarn("Error fetching details for %s: status %d", word, resp.StatusCode)
		if resp.StatusCode == http.StatusNotFound {
			return WordDetail{Meaning: MeaningNotFound, Examples: []string{}}
		}
		return WordDetail{Meaning: MeaningUnavailable, Examples: []string{}}
	}

	var entries []dictionaryEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		logWarn("Error decoding details for %s: %v", word, err)
		return WordDetail{Meaning: MeaningFetchError, Examples: []string{}}
	}

	if len(entries) == 0 {
		return WordDetail{Meaning: MeaningNoDetails, Examples: []string{}}
	}
	return extractDetail(entries[0])
}

// extractDetail picks the first available definition and up to
// MaxDetailExamples distinct examples across all meanings.
func extractDetail(entry dictionaryEntry) WordDetail {
	detail := WordDetail{Meaning: MeaningNoDefinition, Examples: []string{}}

	if len(entry.Meanings) > 0 && len(entry.Meanings[0].Definitions) > 0 {
		first := entry.Meanings[0].Definitions[0]
		detail.Meaning = first.Definition
		if first.Example != "" {
			detail.Examples = append(detail.Examples, first.Example)
		}
	}

	for _, meaning := range entry.Meanings {
		for _, def := range meaning.Definitions {
			if len(detail.Examples) >= MaxDetailExamples {
				return detail
			}
			if def.Example != "" && !lo.Contains(detail.Examples, def.Example) {
				detail.Examples = append(detail.Examples, def.Example)
			}
		}
	}
	return detail
}

// FetchAllDetails looks up every word concurrently and waits for all of
// them. The result is index-aligned with words and never missing an
// entry.
func (dc *DictionaryClient) FetchAllDetails(ctx context.Context, words []string) []WordDetail {
	details := make([]WordDetail, len(words))

	g, ctx := errgroup.WithContext(ctx)
	for i, word := range words {
		i, word := i, word
		g.Go(func() error {
			details[i] = dc.FetchWordDetail(ctx, word)
			return nil
		})
	}
	_ = g.Wait()

	return details
}
