package lifecycle

import (
	"errors"
	"fmt"
	"time"
)

// Tag is the display bucket a booking sorts into.
type Tag string

const (
	TagPending        Tag = "pending"
	TagUpcoming       Tag = "upcoming"
	TagPastUnresolved Tag = "past_unresolved"
	TagCompleted      Tag = "completed"
	TagCancelled      Tag = "cancelled"
)

const dateLayout = "2006-01-02"

var ErrBadDate = errors.New("unparseable booking date")

// Classify maps a booking to exactly one Tag. Rules are evaluated in priority
// order: terminal statuses win over date comparison, so a cancelled booking
// with a past date is cancelled, not past. A CONFIRMED booking whose date has
// passed without the guide marking it completed is surfaced as
// TagPastUnresolved rather than folded into either neighbouring bucket.
//
// An unparseable date or unknown status falls back to TagPending, the bucket
// least likely to unlock an action early, and the returned error lets the
// caller log the fallback.
func Classify(rec Record, today string) (Tag, error) {
	switch rec.Status {
	case StatusCancelled, StatusFailed:
		return TagCancelled, nil
	case StatusCompleted:
		return TagCompleted, nil
	case StatusPending:
		return TagPending, nil
	case StatusConfirmed:
		d, err := time.Parse(dateLayout, rec.BookingDate)
		if err != nil {
			return TagPending, ErrBadDate
		}
		t, err := time.Parse(dateLayout, today)
		if err != nil {
			return TagPending, ErrBadDate
		}
		if d.Before(t) {
			return TagPastUnresolved, nil
		}
		return TagUpcoming, nil
	}
	return TagPending, fmt.Errorf("unknown booking status %q", rec.Status)
}

// ParseTag maps a query-string bucket name to a Tag.
func ParseTag(s string) (Tag, bool) {
	switch Tag(s) {
	case TagPending, TagUpcoming, TagPastUnresolved, TagCompleted, TagCancelled:
		return Tag(s), true
	}
	return "", false
}

// Bucket returns the records classifying to tag. Records whose date cannot be
// parsed land in the pending bucket, matching Classify's fallback.
func Bucket(recs []Record, tag Tag, today string) []Record {
	out := []Record{}
	for _, rec := range recs {
		got, _ := Classify(Normalize(rec), today)
		if got == tag {
			out = append(out, rec)
		}
	}
	return out
}

// Today formats a time in the calendar-date layout bookings use.
func Today(now time.Time) string {
	return now.Format(dateLayout)
}
