package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/storeprofile"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ storeprofile.ProfileService = (*ProfileService)(nil)

// ProfileService implements storeprofile.ProfileService using SQLite.
// Profiles are stored as JSON documents alongside a few indexed columns.
type ProfileService struct {
	db *DB
}

// NewProfileService creates a new ProfileService.
func NewProfileService(db *DB) *ProfileService {
	return &ProfileService{db: db}
}

// CreateProfile stores a new profile, assigning its ID and content hash.
// Website defaults to the profile's website and ExtractedAt to the current
// time.
func (s *ProfileService) CreateProfile(ctx context.Context, profile *storeprofile.StoredProfile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(profile.Profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	profile.ID = uuid.New().String()
	if profile.Website == "" {
		profile.Website = profile.Profile.Website
	}
	if profile.ExtractedAt.IsZero() {
		profile.ExtractedAt = time.Now()
	}
	profile.ExtractedAt = profile.ExtractedAt.UTC()
	profile.ContentHash = hashContent(data)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO profiles (id, website, content_hash, data, extracted_at)
		VALUES (?, ?, ?, ?, ?)
	`, profile.ID, profile.Website, profile.ContentHash, string(data), formatTimestamp(profile.ExtractedAt))

	return err
}

// FindProfileByID retrieves a profile by ID.
func (s *ProfileService) FindProfileByID(ctx context.Context, id string) (*storeprofile.StoredProfile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, website, content_hash, data, extracted_at
		FROM profiles
		WHERE id = ?
	`, id)

	profile, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storeprofile.Errorf(storeprofile.ENOTFOUND, "profile not found")
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// FindProfiles retrieves profiles matching the filter, newest first.
func (s *ProfileService) FindProfiles(ctx context.Context, filter storeprofile.ProfileFilter) ([]*storeprofile.StoredProfile, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, website, content_hash, data, extracted_at FROM profiles WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Website != nil {
		query.WriteString(" AND website = ?")
		args = append(args, *filter.Website)
	}

	query.WriteString(" ORDER BY extracted_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []*storeprofile.StoredProfile{}
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}

	return profiles, rows.Err()
}

// DeleteProfile permanently removes a profile.
func (s *ProfileService) DeleteProfile(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM profiles WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return storeprofile.Errorf(storeprofile.ENOTFOUND, "profile not found")
	}

	return nil
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(row scanner) (*storeprofile.StoredProfile, error) {
	var profile storeprofile.StoredProfile
	var data, extractedAt string

	if err := row.Scan(&profile.ID, &profile.Website, &profile.ContentHash, &data, &extractedAt); err != nil {
		return nil, err
	}

	var err error
	profile.ExtractedAt, err = parseRFC3339(extractedAt, "extracted_at")
	if err != nil {
		return nil, err
	}

	profile.Profile = &storeprofile.BrandProfile{}
	if err := json.Unmarshal([]byte(data), profile.Profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile %s: %w", profile.ID, err)
	}

	return &profile, nil
}
