package gallery

import (
	"fmt"
	"time"

	"github.com/goodsign/monday"
)

const (
	// CaptionLayout is the date format used for tile captions ("Aug 23, 2022").
	CaptionLayout = "Jan 02, 2006"
	// UnavailableCaption is shown for images without a timestamp.
	UnavailableCaption = "Date N/A"
	// DefaultLocale is the caption locale when none is configured.
	DefaultLocale = "en_US"
)

// CaptionFormatter renders freshness captions in a fixed layout and locale.
type CaptionFormatter struct {
	locale   monday.Locale
	location *time.Location
}

// NewCaptionFormatter returns a formatter for the given locale (for example
// "en_US" or "de_DE"). An empty locale selects DefaultLocale. Times are shown
// in location; nil means the server's local time zone.
func NewCaptionFormatter(locale string, location *time.Location) (CaptionFormatter, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	if location == nil {
		location = time.Local
	}

	for _, known := range monday.ListLocales() {
		if string(known) == locale {
			return CaptionFormatter{locale: known, location: location}, nil
		}
	}
	return CaptionFormatter{}, fmt.Errorf("unsupported caption locale %q", locale)
}

// Caption formats the timestamp of img.
func (c CaptionFormatter) Caption(img ImageEntry) string {
	if !img.HasModTime {
		return UnavailableCaption
	}
	locale := c.locale
	if locale == "" {
		locale = monday.LocaleEnUS
	}
	location := c.location
	if location == nil {
		location = time.Local
	}
	return monday.Format(img.ModTime.In(location), CaptionLayout, locale)
}
