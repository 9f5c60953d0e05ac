// Package crawl runs storefront profile extractions in batches.
// It coordinates concurrent extraction, progress reporting and optional
// storage of the resulting profiles.
package crawl

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/fwojciec/storeprofile"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of storefronts extracted at once when
// Runner.Concurrency is not set.
const DefaultConcurrency = 4

// Runner extracts profiles for a list of storefronts.
type Runner struct {
	Extractor storeprofile.ProfileExtractor

	// Profiles stores every successful extraction when set.
	Profiles storeprofile.ProfileService

	Concurrency int
}

// Result holds the outcome of extracting a single storefront.
type Result struct {
	URL     string
	Profile *storeprofile.BrandProfile

	// Stored is set when the profile was saved.
	Stored *storeprofile.StoredProfile
	Err    error
}

// Summary is the outcome of a batch, with results in input order.
type Summary struct {
	Results []Result
	Saved   int
	Failed  int
}

// ProgressEvent reports progress during a batch.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

type runResult struct {
	position int
	url      string
	profile  *storeprofile.BrandProfile
	err      error
}

// Run extracts every URL. A failed extraction is recorded in its Result
// and does not stop the batch. Progress, if provided, is called from the
// calling goroutine only.
func (r *Runner) Run(ctx context.Context, urls []string, progress ProgressFunc) (*Summary, error) {
	if r.Extractor == nil {
		return nil, storeprofile.Errorf(storeprofile.EINVALID, "runner requires an extractor")
	}

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(urls)
	notify := func(event ProgressEvent) {
		if progress != nil {
			event.Total = total
			progress(event)
		}
	}
	notify(ProgressEvent{Type: ProgressStarted})

	resultCh := make(chan runResult, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, url := range urls {
			g.Go(func() error {
				profile, err := r.Extractor.Extract(gctx, url)
				resultCh <- runResult{position: i, url: url, profile: profile, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	summary := &Summary{Results: make([]Result, total)}
	var completed atomic.Int64
	for res := range resultCh {
		done := int(completed.Add(1))
		summary.Results[res.position] = Result{URL: res.url, Profile: res.profile, Err: res.err}

		if res.err != nil {
			notify(ProgressEvent{Type: ProgressFailed, Completed: done, URL: res.url, Error: res.err})
			continue
		}
		notify(ProgressEvent{Type: ProgressCompleted, Completed: done, URL: res.url})
	}

	for i := range summary.Results {
		res := &summary.Results[i]
		if res.Err == nil && r.Profiles != nil {
			stored := &storeprofile.StoredProfile{Website: res.URL, Profile: res.Profile}
			if err := r.Profiles.CreateProfile(ctx, stored); err != nil {
				res.Err = fmt.Errorf("save profile: %w", err)
			} else {
				res.Stored = stored
				summary.Saved++
			}
		}
		if res.Err != nil {
			summary.Failed++
		}
	}

	notify(ProgressEvent{Type: ProgressFinished, Completed: total})

	return summary, ctx.Err()
}
