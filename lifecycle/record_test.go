package lifecycle

import (
	"reflect"
	"testing"
)

func TestNormalizeFillsDefaults(t *testing.T) {
	got := Normalize(Record{ID: "b1", Status: StatusPending})

	if got.Tour == nil || got.Counterpart == nil {
		t.Fatal("Normalize left a nil sub-record")
	}
	if got.Payment == nil || got.Payment.Status != PaymentUnpaid {
		t.Errorf("missing payment should normalize to UNPAID, got %+v", got.Payment)
	}
	if got.Tour.Images == nil {
		t.Error("tour images should normalize to an empty slice")
	}
}

func TestNormalizeEmptyPaymentStatus(t *testing.T) {
	got := Normalize(Record{Payment: &PaymentInfo{Amount: 42}})
	if got.Payment.Status != PaymentUnpaid {
		t.Errorf("empty payment status should normalize to UNPAID, got %q", got.Payment.Status)
	}
	if got.Payment.Amount != 42 {
		t.Errorf("normalize should keep the payment amount, got %v", got.Payment.Amount)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	recs := []Record{
		{},
		{ID: "b1", Status: StatusConfirmed, BookingDate: "2025-05-01"},
		{Payment: &PaymentInfo{Status: PaymentPaid, Amount: 100}},
		{Tour: &TourSnapshot{Title: "Coastal walk"}, Counterpart: &Party{FullName: "Amina"}},
	}
	for _, rec := range recs {
		once := Normalize(rec)
		twice := Normalize(once)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("Normalize not idempotent: %+v != %+v", once, twice)
		}
	}
}

func TestNormalizeKeepsExistingValues(t *testing.T) {
	in := Record{
		Tour:        &TourSnapshot{Title: "Safari", Images: []string{"a.jpg"}},
		Counterpart: &Party{FullName: "Joseph"},
		Payment:     &PaymentInfo{Status: PaymentPaid},
	}
	got := Normalize(in)
	if got.Tour.Title != "Safari" || len(got.Tour.Images) != 1 {
		t.Errorf("tour snapshot was rewritten: %+v", got.Tour)
	}
	if got.Payment.Status != PaymentPaid {
		t.Errorf("payment status was rewritten: %q", got.Payment.Status)
	}
}
