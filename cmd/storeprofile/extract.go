package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fwojciec/storeprofile"
	"github.com/fwojciec/storeprofile/crawl"
)

// progressURLWidth limits URLs shown in progress lines.
const progressURLWidth = 60

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	runner := &crawl.Runner{
		Extractor:   deps.Extractor,
		Concurrency: c.Concurrency,
	}
	if c.Save {
		runner.Profiles = deps.Profiles
	}

	var progress crawl.ProgressFunc
	if len(c.URLs) > 1 {
		progress = func(event crawl.ProgressEvent) {
			fmt.Fprintln(deps.Stderr, crawl.FormatEvent(event, progressURLWidth))
		}
	}

	summary, err := runner.Run(deps.Ctx, c.URLs, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", storeprofile.ErrorMessage(err))
		return err
	}

	var profiles []*storeprofile.BrandProfile
	for _, res := range summary.Results {
		if res.Err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", res.URL, errorText(res.Err))
			continue
		}
		if res.Stored != nil {
			fmt.Fprintf(deps.Stderr, "Saved %s as %s\n", res.URL, res.Stored.ID)
		}
		profiles = append(profiles, res.Profile)
	}

	if err := c.write(deps, profiles); err != nil {
		return err
	}

	if deps.Exporter != nil && len(profiles) > 0 {
		if err := export(deps, profiles); err != nil {
			fmt.Fprintf(deps.Stderr, "error: export: %s\n", errorText(err))
			return err
		}
		fmt.Fprintf(deps.Stderr, "Wrote %d profile(s) to %s\n", len(profiles), c.Out)
	}

	if len(c.URLs) > 1 {
		fmt.Fprintln(deps.Stderr, crawl.FormatSummary(summary))
	}

	if summary.Failed > 0 {
		if len(c.URLs) == 1 {
			return summary.Results[0].Err
		}
		return fmt.Errorf("%d of %d extractions failed", summary.Failed, len(c.URLs))
	}
	return nil
}

// write prints profiles in the requested format. A single URL prints one
// JSON object, several print a JSON array.
func (c *ExtractCmd) write(deps *Dependencies, profiles []*storeprofile.BrandProfile) error {
	if c.Format == "markdown" {
		for i, p := range profiles {
			if i > 0 {
				fmt.Fprintln(deps.Stdout, "\n---")
			}
			fmt.Fprint(deps.Stdout, storeprofile.FormatProfile(p, deps.Converter))
		}
		return nil
	}

	if len(profiles) == 0 {
		return nil
	}
	var v any = profiles
	if len(c.URLs) == 1 {
		v = profiles[0]
	}
	return writeJSON(deps, v)
}

func writeJSON(deps *Dependencies, v any) error {
	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

// export writes every profile and commits them together.
func export(deps *Dependencies, profiles []*storeprofile.BrandProfile) error {
	for _, p := range profiles {
		if err := deps.Exporter.Export(deps.Ctx, p); err != nil {
			_ = deps.Exporter.Abort()
			return err
		}
	}
	return deps.Exporter.Commit()
}

// errorText returns the message of an application error or the raw error
// text, so storage failures stay readable.
func errorText(err error) string {
	var e *storeprofile.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
