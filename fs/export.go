// Package fs provides file-based export of storefront profiles.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/storeprofile"
)

// Ensure Exporter implements storeprofile.ProfileExporter at compile time.
var _ storeprofile.ProfileExporter = (*Exporter)(nil)

// Exporter writes each profile as a JSON document and a Markdown report.
// Files are written to baseDir/name.tmp and moved to baseDir/name on
// Commit, so a failed batch never replaces a previous export.
type Exporter struct {
	baseDir string
	name    string
	conv    storeprofile.Converter
}

// NewExporter creates an Exporter. conv renders product descriptions in
// the Markdown report and may be nil.
func NewExporter(baseDir, name string, conv storeprofile.Converter) *Exporter {
	return &Exporter{
		baseDir: baseDir,
		name:    name,
		conv:    conv,
	}
}

func (e *Exporter) tempDir() string {
	return filepath.Join(e.baseDir, e.name+".tmp")
}

func (e *Exporter) finalDir() string {
	return filepath.Join(e.baseDir, e.name)
}

// Export writes <host>.json and <host>.md for the profile. A later profile
// of the same host replaces the earlier files.
func (e *Exporter) Export(ctx context.Context, profile *storeprofile.BrandProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := profile.Validate(); err != nil {
		return err
	}

	base, err := HostFilename(profile.Website)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(e.tempDir(), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := os.WriteFile(filepath.Join(e.tempDir(), base+".json"), append(data, '\n'), 0644); err != nil {
		return err
	}

	report := FormatReport(profile, e.conv, time.Now())
	return os.WriteFile(filepath.Join(e.tempDir(), base+".md"), []byte(report), 0644)
}

// Commit replaces the final directory with everything exported so far.
func (e *Exporter) Commit() error {
	if err := os.RemoveAll(e.finalDir()); err != nil {
		return err
	}
	return os.Rename(e.tempDir(), e.finalDir())
}

// Abort discards everything exported so far.
func (e *Exporter) Abort() error {
	return os.RemoveAll(e.tempDir())
}

// HostFilename converts a website URL to a file name stem.
// Example: https://shop.example:8443/collections → shop.example_8443
func HostFilename(website string) (string, error) {
	u, err := storeprofile.ParseWebsite(website)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(strings.ToLower(u.Host), ":", "_"), nil
}

// FormatReport formats a profile report with YAML frontmatter.
func FormatReport(profile *storeprofile.BrandProfile, conv storeprofile.Converter, extracted time.Time) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(profile.Website)
	if profile.Title != nil {
		b.WriteString("\ntitle: ")
		b.WriteString(*profile.Title)
	}
	b.WriteString("\nextracted: ")
	b.WriteString(extracted.Format("2006-01-02"))
	b.WriteString("\n---\n\n")
	b.WriteString(storeprofile.FormatProfile(profile, conv))
	return b.String()
}
