package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/storeprofile"
	"github.com/fwojciec/storeprofile/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func newStoredProfile(website string) *storeprofile.StoredProfile {
	title := "Mug Shop"
	return &storeprofile.StoredProfile{
		Profile: &storeprofile.BrandProfile{
			Website:  website,
			Title:    &title,
			Products: []*storeprofile.Product{},
			FAQs:     []storeprofile.FAQ{{Question: "Ship abroad?", Answer: "Yes."}},
			Contacts: storeprofile.Contacts{Emails: []string{"hello@shop.example"}, Phones: []string{}},
		},
	}
}

func TestProfileService_CreateProfile(t *testing.T) {
	t.Parallel()

	t.Run("assigns ID, website, timestamp and content hash", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewProfileService(setupTestDB(t))
		profile := newStoredProfile("https://shop.example")

		err := svc.CreateProfile(context.Background(), profile)
		require.NoError(t, err)

		assert.NotEmpty(t, profile.ID, "ID should be generated")
		assert.Equal(t, "https://shop.example", profile.Website)
		assert.False(t, profile.ExtractedAt.IsZero(), "ExtractedAt should be set")
		assert.Len(t, profile.ContentHash, 16)
	})

	t.Run("produces equal hashes for equal profiles", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewProfileService(setupTestDB(t))
		first := newStoredProfile("https://shop.example")
		second := newStoredProfile("https://shop.example")

		require.NoError(t, svc.CreateProfile(context.Background(), first))
		require.NoError(t, svc.CreateProfile(context.Background(), second))

		assert.NotEqual(t, first.ID, second.ID)
		assert.Equal(t, first.ContentHash, second.ContentHash)
	})

	t.Run("returns EINVALID without profile", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewProfileService(setupTestDB(t))

		err := svc.CreateProfile(context.Background(), &storeprofile.StoredProfile{})

		require.Error(t, err)
		assert.Equal(t, storeprofile.EINVALID, storeprofile.ErrorCode(err))
	})

	t.Run("returns EINVALID for relative website", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewProfileService(setupTestDB(t))

		err := svc.CreateProfile(context.Background(), newStoredProfile("/shop"))

		require.Error(t, err)
		assert.Equal(t, storeprofile.EINVALID, storeprofile.ErrorCode(err))
	})
}

func TestProfileService_FindProfileByID(t *testing.T) {
	t.Parallel()

	t.Run("round-trips the profile document", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewProfileService(setupTestDB(t))
		ctx := context.Background()
		created := newStoredProfile("https://shop.example")
		require.NoError(t, svc.CreateProfile(ctx, created))

		found, err := svc.FindProfileByID(ctx, created.ID)

		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, created.ContentHash, found.ContentHash)
		assert.True(t, created.ExtractedAt.Equal(found.ExtractedAt))
		assert.Equal(t, created.Profile, found.Profile)
	})

	t.Run("returns ENOTFOUND for unknown ID", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewProfileService(setupTestDB(t))

		_, err := svc.FindProfileByID(context.Background(), "missing")

		require.Error(t, err)
		assert.Equal(t, storeprofile.ENOTFOUND, storeprofile.ErrorCode(err))
	})
}

func TestProfileService_FindProfiles(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T, svc *sqlite.ProfileService) []*storeprofile.StoredProfile {
		t.Helper()
		base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		var profiles []*storeprofile.StoredProfile
		for i, website := range []string{"https://a.example", "https://b.example", "https://a.example"} {
			p := newStoredProfile(website)
			p.ExtractedAt = base.Add(time.Duration(i) * time.Minute)
			require.NoError(t, svc.CreateProfile(context.Background(), p))
			profiles = append(profiles, p)
		}
		return profiles
	}

	t.Run("returns newest first", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewProfileService(setupTestDB(t))
		seeded := seed(t, svc)

		found, err := svc.FindProfiles(context.Background(), storeprofile.ProfileFilter{})

		require.NoError(t, err)
		require.Len(t, found, 3)
		assert.Equal(t, seeded[2].ID, found[0].ID)
		assert.Equal(t, seeded[1].ID, found[1].ID)
		assert.Equal(t, seeded[0].ID, found[2].ID)
	})

	t.Run("filters by website", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewProfileService(setupTestDB(t))
		seed(t, svc)
		website := "https://a.example"

		found, err := svc.FindProfiles(context.Background(), storeprofile.ProfileFilter{Website: &website})

		require.NoError(t, err)
		require.Len(t, found, 2)
		for _, p := range found {
			assert.Equal(t, website, p.Website)
		}
	})

	t.Run("filters by ID", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewProfileService(setupTestDB(t))
		seeded := seed(t, svc)

		found, err := svc.FindProfiles(context.Background(), storeprofile.ProfileFilter{ID: &seeded[1].ID})

		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "https://b.example", found[0].Website)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewProfileService(setupTestDB(t))
		seeded := seed(t, svc)

		found, err := svc.FindProfiles(context.Background(), storeprofile.ProfileFilter{Limit: 1, Offset: 1})

		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, seeded[1].ID, found[0].ID)
	})

	t.Run("applies offset without limit", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewProfileService(setupTestDB(t))
		seed(t, svc)

		found, err := svc.FindProfiles(context.Background(), storeprofile.ProfileFilter{Offset: 2})

		require.NoError(t, err)
		assert.Len(t, found, 1)
	})

	t.Run("returns empty slice when nothing matches", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewProfileService(setupTestDB(t))

		found, err := svc.FindProfiles(context.Background(), storeprofile.ProfileFilter{})

		require.NoError(t, err)
		assert.NotNil(t, found)
		assert.Empty(t, found)
	})
}

func TestProfileService_DeleteProfile(t *testing.T) {
	t.Parallel()

	t.Run("removes the profile", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewProfileService(setupTestDB(t))
		ctx := context.Background()
		profile := newStoredProfile("https://shop.example")
		require.NoError(t, svc.CreateProfile(ctx, profile))

		require.NoError(t, svc.DeleteProfile(ctx, profile.ID))

		_, err := svc.FindProfileByID(ctx, profile.ID)
		assert.Equal(t, storeprofile.ENOTFOUND, storeprofile.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for unknown ID", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewProfileService(setupTestDB(t))

		err := svc.DeleteProfile(context.Background(), "missing")

		require.Error(t, err)
		assert.Equal(t, storeprofile.ENOTFOUND, storeprofile.ErrorCode(err))
	})
}
