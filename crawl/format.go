package crawl

import (
	"errors"
	"fmt"

	"github.com/fwojciec/storeprofile"
)

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatEvent renders a progress event as a single status line, shortening
// URLs to width characters.
func FormatEvent(event ProgressEvent, width int) string {
	switch event.Type {
	case ProgressStarted:
		return fmt.Sprintf("Extracting %d storefront(s)", event.Total)
	case ProgressCompleted:
		return fmt.Sprintf("[%d/%d] ok   %s", event.Completed, event.Total, TruncateURL(event.URL, width))
	case ProgressFailed:
		return fmt.Sprintf("[%d/%d] fail %s: %s", event.Completed, event.Total, TruncateURL(event.URL, width), failureReason(event.Error))
	case ProgressFinished:
		return fmt.Sprintf("Finished %d storefront(s)", event.Total)
	}
	return ""
}

// FormatSummary reports how many extractions succeeded, failed and were saved.
func FormatSummary(s *Summary) string {
	ok := len(s.Results) - s.Failed
	if s.Saved > 0 {
		return fmt.Sprintf("%d extracted, %d failed, %d saved", ok, s.Failed, s.Saved)
	}
	return fmt.Sprintf("%d extracted, %d failed", ok, s.Failed)
}

func failureReason(err error) string {
	var e *storeprofile.Error
	if errors.As(err, &e) {
		return e.Message
	}
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
