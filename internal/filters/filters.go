// Package filters implements the validated search criteria for registry queries.
// Mutators never fail: invalid input degrades to a safe default and logs a
// diagnostic, so interactive editing is never blocked. The one deferred check,
// year-range ordering, happens at search time.
package filters

import (
	"log/slog"
	"slices"
	"strings"
	"time"
)

// Publisher identifies one of the official gazettes covered by the registry.
type Publisher string

const (
	// PublisherAny queries both gazettes.
	PublisherAny Publisher = ""
	// PublisherDU is Dziennik Ustaw.
	PublisherDU Publisher = "DU"
	// PublisherMP is Monitor Polski.
	PublisherMP Publisher = "MP"
)

// Status is the three-way act status taxonomy exposed to callers.
// The registry itself reports status in its own vocabulary; the search
// predicate maps one onto the other.
type Status string

const (
	StatusAll      Status = "all"
	StatusInForce  Status = "in_force"
	StatusRepealed Status = "repealed"
)

// EarliestYear is the first year the registry holds data for.
const EarliestYear = 1918

// Filters holds validated search criteria for one search session.
// The zero year bounds span the full supported range.
type Filters struct {
	publisher Publisher
	yearLower int
	yearUpper int
	status    Status
	keywords  []string
	logger    *slog.Logger
}

// New creates Filters spanning the full supported year range with no
// publisher, status, or keyword constraints.
func New(logger *slog.Logger) *Filters {
	if logger == nil {
		logger = slog.Default()
	}
	return &Filters{
		publisher: PublisherAny,
		yearLower: EarliestYear,
		yearUpper: time.Now().Year(),
		status:    StatusAll,
		logger:    logger.With("system", "filters"),
	}
}

// SetPublisher stores one of the known publisher codes. Any other value
// degrades to PublisherAny with a logged warning.
func (f *Filters) SetPublisher(value string) {
	switch Publisher(value) {
	case PublisherDU, PublisherMP, PublisherAny:
		f.publisher = Publisher(value)
	default:
		f.logger.Warn("unknown publisher, querying all", "publisher", value)
		f.publisher = PublisherAny
	}
}

// Publisher returns the selected publisher, or PublisherAny for both.
func (f *Filters) Publisher() Publisher {
	return f.publisher
}

// SetYearLower stores the lower year bound, clamped to EarliestYear.
// No ordering check against the upper bound happens here.
func (f *Filters) SetYearLower(year int) {
	if year < EarliestYear {
		f.logger.Warn("registry data starts in 1918, clamping lower bound", "year", year)
		f.yearLower = EarliestYear
		return
	}
	f.yearLower = year
}

// YearLower returns the lower year bound.
func (f *Filters) YearLower() int {
	return f.yearLower
}

// SetYearUpper stores the upper year bound, clamped to the current
// calendar year. No ordering check against the lower bound happens here.
func (f *Filters) SetYearUpper(year int) {
	current := time.Now().Year()
	if year > current {
		f.logger.Warn("upper bound cannot exceed the current year, clamping", "year", year, "current", current)
		f.yearUpper = current
		return
	}
	f.yearUpper = year
}

// YearUpper returns the upper year bound.
func (f *Filters) YearUpper() int {
	return f.yearUpper
}

// SetStatus stores the status selection verbatim. Values outside the
// taxonomy behave like StatusAll at filter time.
func (f *Filters) SetStatus(status Status) {
	f.status = status
}

// Status returns the status selection.
func (f *Filters) Status() Status {
	return f.status
}

// AddKeyword trims and lowercases the word, then appends it unless it is
// empty or already present. Duplicates are ignored silently.
func (f *Filters) AddKeyword(word string) {
	clean := normalize(word)
	if clean == "" {
		return
	}

	if slices.Contains(f.keywords, clean) {
		f.logger.Debug("keyword already present", "keyword", clean)
		return
	}

	f.keywords = append(f.keywords, clean)
}

// RemoveKeyword removes the normalized form of word if present.
// Removing an absent keyword is a no-op.
func (f *Filters) RemoveKeyword(word string) {
	clean := normalize(word)
	if clean == "" {
		return
	}

	idx := slices.Index(f.keywords, clean)
	if idx == -1 {
		f.logger.Debug("keyword not present", "keyword", clean)
		return
	}

	f.keywords = slices.Delete(f.keywords, idx, idx+1)
}

// ClearKeywords removes all keywords unconditionally.
func (f *Filters) ClearKeywords() {
	f.keywords = nil
}

// Keywords returns the keywords in insertion order.
func (f *Filters) Keywords() []string {
	return slices.Clone(f.keywords)
}

func normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
