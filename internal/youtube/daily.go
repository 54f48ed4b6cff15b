package youtube

import "time"

// PublishedLayout is the timestamp format used by channel feeds, e.g. 2026-10-19T08:00:00+00:00.
// A literal Z offset is accepted as well.
const PublishedLayout = "2006-01-02T15:04:05Z07:00"

// ParsePublished parses the entry's publication time
func ParsePublished(entry FeedEntry) (time.Time, error) {
	t, err := time.Parse(PublishedLayout, entry.Published)
	if err != nil {
		return time.Time{}, &MalformedTimestampError{Title: entry.Title, Published: entry.Published, Err: err}
	}
	return t, nil
}

// FilterToday keeps the entries published on now's UTC calendar date, in feed order.
// Entries with an unparsable timestamp are left out and reported as one error each.
func FilterToday(entries []FeedEntry, now time.Time) ([]FeedEntry, []error) {
	var (
		today []FeedEntry
		errs  []error
	)

	for _, entry := range entries {
		published, err := ParsePublished(entry)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if SameUTCDate(published, now) {
			today = append(today, entry)
		}
	}

	return today, errs
}

// SameUTCDate reports whether a and b fall on the same UTC calendar day
func SameUTCDate(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
