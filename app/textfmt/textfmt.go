// Package textfmt contains text normalizers for headline presentation.
package textfmt

import (
	"regexp"
	"strings"
	"time"
)

const (
	isoLayout     = "2006-01-02T15:04:05Z"
	displayLayout = "02 Jan 2006"
)

// FormatDate converts a "2006-01-02T15:04:05Z" UTC timestamp into "02 Jan 2006".
// Any other input, including blank and partial dates, yields an empty string.
func FormatDate(iso string) string {
	// time.Parse accepts fractional seconds even if the layout doesn't have them
	if len(iso) != len(isoLayout) {
		return ""
	}

	t, err := time.Parse(isoLayout, iso)
	if err != nil {
		return ""
	}

	return t.UTC().Format(displayLayout)
}

var (
	ellipsisMarker = regexp.MustCompile(`\s*…\s*\[\+\d+\s*chars\]\s*$`)
	charsMarker    = regexp.MustCompile(`\s*\[\+\d+\s*chars\]\s*$`)
)

// CleanContent strips the "… [+N chars]" truncation marker that the feed
// appends to long article bodies. The marker is removed only at the very end.
func CleanContent(content string) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}

	content = ellipsisMarker.ReplaceAllString(content, "")
	content = charsMarker.ReplaceAllString(content, "")

	return strings.TrimSpace(content)
}
