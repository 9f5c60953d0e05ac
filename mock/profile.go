package mock

import (
	"context"

	"github.com/fwojciec/storeprofile"
)

var _ storeprofile.ProfileService = (*ProfileService)(nil)

// ProfileService is a mock implementation of storeprofile.ProfileService.
type ProfileService struct {
	CreateProfileFn   func(ctx context.Context, profile *storeprofile.StoredProfile) error
	FindProfileByIDFn func(ctx context.Context, id string) (*storeprofile.StoredProfile, error)
	FindProfilesFn    func(ctx context.Context, filter storeprofile.ProfileFilter) ([]*storeprofile.StoredProfile, error)
	DeleteProfileFn   func(ctx context.Context, id string) error
}

func (s *ProfileService) CreateProfile(ctx context.Context, profile *storeprofile.StoredProfile) error {
	return s.CreateProfileFn(ctx, profile)
}

func (s *ProfileService) FindProfileByID(ctx context.Context, id string) (*storeprofile.StoredProfile, error) {
	return s.FindProfileByIDFn(ctx, id)
}

func (s *ProfileService) FindProfiles(ctx context.Context, filter storeprofile.ProfileFilter) ([]*storeprofile.StoredProfile, error) {
	return s.FindProfilesFn(ctx, filter)
}

func (s *ProfileService) DeleteProfile(ctx context.Context, id string) error {
	return s.DeleteProfileFn(ctx, id)
}
