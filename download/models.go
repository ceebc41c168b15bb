package download

import (
	"github.com/gruntjs-updater/transifex-keyvaluejson/transifex"
)

// AllLocales is the locale selector that asks for every language available
// on the resource.
const AllLocales = "*"

// Mode filters which translations the service includes in a locale file.
type Mode string

const (
	ModeDefault        Mode = "default"
	ModeReviewed       Mode = "reviewed"
	ModeTranslator     Mode = "translator"
	ModeOnlyTranslated Mode = "onlytranslated"
	ModeOnlyReviewed   Mode = "onlyreviewed"
)

// Modes lists every valid download mode.
var Modes = []Mode{ModeDefault, ModeReviewed, ModeTranslator, ModeOnlyTranslated, ModeOnlyReviewed}

// Options represents the configuration for the download service.
type Options struct {
	Project  string
	Resource string
	// Locales is either empty, the single AllLocales selector or an
	// explicit list of locale codes.
	Locales     []string
	Dest        string
	Credentials transifex.Credentials
	Mode        Mode

	// BaseURL defaults to transifex.DefaultBaseURL.
	BaseURL string
	// Timeout for each request in seconds; zero means no timeout.
	Timeout uint
}

// Result is what a completed download produced.
type Result struct {
	// Locales is the resolved selector, never the wildcard.
	Locales []string
	// Files holds the absolute path of each written file, in Locales order.
	Files []string
}

// localeContent is the fetched payload for one locale.
type localeContent struct {
	locale  string
	content string
}
