package mock

import (
	"context"

	"github.com/fwojciec/storeprofile"
)

var _ storeprofile.ProfileExporter = (*ProfileExporter)(nil)

// ProfileExporter is a mock implementation of storeprofile.ProfileExporter.
type ProfileExporter struct {
	ExportFn func(ctx context.Context, profile *storeprofile.BrandProfile) error
	CommitFn func() error
	AbortFn  func() error
}

func (e *ProfileExporter) Export(ctx context.Context, profile *storeprofile.BrandProfile) error {
	return e.ExportFn(ctx, profile)
}

func (e *ProfileExporter) Commit() error {
	return e.CommitFn()
}

func (e *ProfileExporter) Abort() error {
	return e.AbortFn()
}
