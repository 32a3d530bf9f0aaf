package lifecycle

import (
	"errors"
	"testing"
)

func TestClassifyPriorityOrder(t *testing.T) {
	today := "2025-01-01"

	cases := []struct {
		name string
		rec  Record
		want Tag
	}{
		{"cancelled wins over past date", Record{Status: StatusCancelled, BookingDate: "2020-01-01"}, TagCancelled},
		{"completed regardless of date", Record{Status: StatusCompleted, BookingDate: "2030-01-01"}, TagCompleted},
		{"pending regardless of date", Record{Status: StatusPending, BookingDate: "2020-01-01"}, TagPending},
		{"confirmed future is upcoming", Record{Status: StatusConfirmed, BookingDate: "2025-06-15"}, TagUpcoming},
		{"confirmed today is upcoming", Record{Status: StatusConfirmed, BookingDate: "2025-01-01"}, TagUpcoming},
		{"confirmed past is unresolved", Record{Status: StatusConfirmed, BookingDate: "2020-01-01"}, TagPastUnresolved},
		{"failed is cancelled", Record{Status: StatusFailed, BookingDate: "2025-06-15"}, TagCancelled},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Classify(tc.rec, today)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("Classify() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestClassifyBadDateFallsBackToPending(t *testing.T) {
	rec := Record{Status: StatusConfirmed, BookingDate: "next tuesday"}
	got, err := Classify(rec, "2025-01-01")
	if got != TagPending {
		t.Errorf("Classify() = %q, want %q", got, TagPending)
	}
	if !errors.Is(err, ErrBadDate) {
		t.Errorf("Classify() error = %v, want ErrBadDate", err)
	}
}

func TestClassifyUnknownStatus(t *testing.T) {
	got, err := Classify(Record{Status: "RESCHEDULED"}, "2025-01-01")
	if got != TagPending {
		t.Errorf("Classify() = %q, want %q", got, TagPending)
	}
	if err == nil {
		t.Error("expected an error for an unknown status")
	}
}

func TestBucket(t *testing.T) {
	today := "2025-01-01"
	recs := []Record{
		{ID: "a", Status: StatusConfirmed, BookingDate: "2025-03-01"},
		{ID: "b", Status: StatusConfirmed, BookingDate: "2024-03-01"},
		{ID: "c", Status: StatusPending},
		{ID: "d", Status: StatusCancelled},
	}

	upcoming := Bucket(recs, TagUpcoming, today)
	if len(upcoming) != 1 || upcoming[0].ID != "a" {
		t.Errorf("upcoming bucket = %v, want [a]", upcoming)
	}
	unresolved := Bucket(recs, TagPastUnresolved, today)
	if len(unresolved) != 1 || unresolved[0].ID != "b" {
		t.Errorf("past_unresolved bucket = %v, want [b]", unresolved)
	}
}

func TestParseTag(t *testing.T) {
	if tag, ok := ParseTag("upcoming"); !ok || tag != TagUpcoming {
		t.Errorf("ParseTag(upcoming) = %q, %v", tag, ok)
	}
	if _, ok := ParseTag("everything"); ok {
		t.Error("ParseTag should reject unknown buckets")
	}
}
