package crawl_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/storeprofile"
	"github.com/fwojciec/storeprofile/crawl"
	"github.com/fwojciec/storeprofile/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profileFor(url string) *storeprofile.BrandProfile {
	return &storeprofile.BrandProfile{Website: url}
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	t.Run("returns results in input order", func(t *testing.T) {
		t.Parallel()

		urls := []string{"https://a.example", "https://b.example", "https://c.example"}
		r := &crawl.Runner{
			Extractor: &mock.ProfileExtractor{
				ExtractFn: func(_ context.Context, url string) (*storeprofile.BrandProfile, error) {
					if url == "https://a.example" {
						time.Sleep(20 * time.Millisecond)
					}
					return profileFor(url), nil
				},
			},
			Concurrency: 3,
		}

		summary, err := r.Run(context.Background(), urls, nil)

		require.NoError(t, err)
		require.Len(t, summary.Results, 3)
		for i, url := range urls {
			assert.Equal(t, url, summary.Results[i].URL)
			assert.Equal(t, url, summary.Results[i].Profile.Website)
		}
		assert.Equal(t, 0, summary.Failed)
		assert.Equal(t, 0, summary.Saved)
	})

	t.Run("records failures without stopping the batch", func(t *testing.T) {
		t.Parallel()

		r := &crawl.Runner{
			Extractor: &mock.ProfileExtractor{
				ExtractFn: func(_ context.Context, url string) (*storeprofile.BrandProfile, error) {
					if url == "https://down.example" {
						return nil, storeprofile.Errorf(storeprofile.EUNREACHABLE, "connection refused")
					}
					return profileFor(url), nil
				},
			},
		}

		summary, err := r.Run(context.Background(), []string{"https://down.example", "https://up.example"}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, summary.Failed)
		assert.Equal(t, storeprofile.EUNREACHABLE, storeprofile.ErrorCode(summary.Results[0].Err))
		assert.NoError(t, summary.Results[1].Err)
		assert.NotNil(t, summary.Results[1].Profile)
	})

	t.Run("limits concurrent extractions", func(t *testing.T) {
		t.Parallel()

		var running, peak atomic.Int32
		r := &crawl.Runner{
			Extractor: &mock.ProfileExtractor{
				ExtractFn: func(_ context.Context, url string) (*storeprofile.BrandProfile, error) {
					n := running.Add(1)
					for {
						p := peak.Load()
						if n <= p || peak.CompareAndSwap(p, n) {
							break
						}
					}
					time.Sleep(10 * time.Millisecond)
					running.Add(-1)
					return profileFor(url), nil
				},
			},
			Concurrency: 2,
		}

		urls := []string{"https://1.example", "https://2.example", "https://3.example", "https://4.example", "https://5.example"}
		_, err := r.Run(context.Background(), urls, nil)

		require.NoError(t, err)
		assert.LessOrEqual(t, peak.Load(), int32(2))
	})

	t.Run("saves successful profiles when a store is configured", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var saved []string
		r := &crawl.Runner{
			Extractor: &mock.ProfileExtractor{
				ExtractFn: func(_ context.Context, url string) (*storeprofile.BrandProfile, error) {
					if url == "https://down.example" {
						return nil, storeprofile.Errorf(storeprofile.EUNREACHABLE, "timeout")
					}
					return profileFor(url), nil
				},
			},
			Profiles: &mock.ProfileService{
				CreateProfileFn: func(_ context.Context, p *storeprofile.StoredProfile) error {
					mu.Lock()
					defer mu.Unlock()
					p.ID = "id-" + p.Website
					saved = append(saved, p.Website)
					return nil
				},
			},
		}

		summary, err := r.Run(context.Background(), []string{"https://shop.example", "https://down.example"}, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://shop.example"}, saved)
		assert.Equal(t, 1, summary.Saved)
		assert.Equal(t, 1, summary.Failed)
		require.NotNil(t, summary.Results[0].Stored)
		assert.Equal(t, "id-https://shop.example", summary.Results[0].Stored.ID)
		assert.Nil(t, summary.Results[1].Stored)
	})

	t.Run("counts save failures as failed", func(t *testing.T) {
		t.Parallel()

		r := &crawl.Runner{
			Extractor: &mock.ProfileExtractor{
				ExtractFn: func(_ context.Context, url string) (*storeprofile.BrandProfile, error) {
					return profileFor(url), nil
				},
			},
			Profiles: &mock.ProfileService{
				CreateProfileFn: func(_ context.Context, _ *storeprofile.StoredProfile) error {
					return errors.New("database is locked")
				},
			},
		}

		summary, err := r.Run(context.Background(), []string{"https://shop.example"}, nil)

		require.NoError(t, err)
		assert.Equal(t, 0, summary.Saved)
		assert.Equal(t, 1, summary.Failed)
		assert.ErrorContains(t, summary.Results[0].Err, "database is locked")
	})

	t.Run("reports progress events", func(t *testing.T) {
		t.Parallel()

		r := &crawl.Runner{
			Extractor: &mock.ProfileExtractor{
				ExtractFn: func(_ context.Context, url string) (*storeprofile.BrandProfile, error) {
					if url == "https://down.example" {
						return nil, storeprofile.Errorf(storeprofile.EUNREACHABLE, "timeout")
					}
					return profileFor(url), nil
				},
			},
			Concurrency: 1,
		}

		var events []crawl.ProgressEvent
		_, err := r.Run(context.Background(), []string{"https://shop.example", "https://down.example"}, func(e crawl.ProgressEvent) {
			events = append(events, e)
		})

		require.NoError(t, err)
		require.Len(t, events, 4)
		assert.Equal(t, crawl.ProgressStarted, events[0].Type)
		assert.Equal(t, 2, events[0].Total)
		assert.Equal(t, crawl.ProgressFinished, events[3].Type)

		var completed, failed int
		for _, e := range events[1:3] {
			switch e.Type {
			case crawl.ProgressCompleted:
				completed++
			case crawl.ProgressFailed:
				failed++
				assert.Equal(t, "https://down.example", e.URL)
				assert.Error(t, e.Error)
			}
		}
		assert.Equal(t, 1, completed)
		assert.Equal(t, 1, failed)
	})

	t.Run("returns empty summary for no URLs", func(t *testing.T) {
		t.Parallel()

		r := &crawl.Runner{Extractor: &mock.ProfileExtractor{}}

		summary, err := r.Run(context.Background(), nil, nil)

		require.NoError(t, err)
		assert.Empty(t, summary.Results)
	})

	t.Run("returns EINVALID without an extractor", func(t *testing.T) {
		t.Parallel()

		_, err := (&crawl.Runner{}).Run(context.Background(), []string{"https://shop.example"}, nil)

		assert.Equal(t, storeprofile.EINVALID, storeprofile.ErrorCode(err))
	})

	t.Run("returns context error when canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		r := &crawl.Runner{
			Extractor: &mock.ProfileExtractor{
				ExtractFn: func(ctx context.Context, _ string) (*storeprofile.BrandProfile, error) {
					return nil, storeprofile.Errorf(storeprofile.EUNREACHABLE, "%v", ctx.Err())
				},
			},
		}

		summary, err := r.Run(ctx, []string{"https://shop.example"}, nil)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, summary.Failed)
	})
}
