package lifecycle

import "testing"

func TestReduceEmpty(t *testing.T) {
	got := Reduce(nil, "2025-01-01")
	want := Summary{}
	if got != want {
		t.Errorf("Reduce(nil) = %+v, want zero summary", got)
	}
}

func TestReduceRevenueOnlyCountsPaid(t *testing.T) {
	recs := []Record{
		{Status: StatusCompleted, TotalAmount: 100, Payment: &PaymentInfo{Status: PaymentPaid, Amount: 100}},
		{Status: StatusCompleted, TotalAmount: 50, Payment: &PaymentInfo{Status: PaymentUnpaid}},
	}
	got := Reduce(recs, "2025-01-01")
	if got.TotalRevenue != 100 {
		t.Errorf("TotalRevenue = %v, want 100", got.TotalRevenue)
	}
	if got.Total != 2 || got.CompletedCount != 2 {
		t.Errorf("counts = %+v, want total 2 / completed 2", got)
	}
}

func TestReduceFallsBackToBookingAmount(t *testing.T) {
	// Paid payment row without a captured amount: the booking snapshot counts.
	recs := []Record{
		{Status: StatusCompleted, TotalAmount: 75, Payment: &PaymentInfo{Status: PaymentPaid}},
	}
	if got := Reduce(recs, "2025-01-01").TotalRevenue; got != 75 {
		t.Errorf("TotalRevenue = %v, want 75", got)
	}
}

func TestReduceCounts(t *testing.T) {
	today := "2025-01-01"
	recs := []Record{
		{Status: StatusPending},
		{Status: StatusPending},
		{Status: StatusCompleted},
		{Status: StatusConfirmed, BookingDate: "2025-02-01"},
		{Status: StatusCancelled},
	}
	got := Reduce(recs, today)
	if got.Total != 5 || got.PendingCount != 2 || got.CompletedCount != 1 {
		t.Errorf("Reduce() = %+v, want total 5 / pending 2 / completed 1", got)
	}
}

func TestReduceMissingPaymentIsNotRevenue(t *testing.T) {
	recs := []Record{{Status: StatusCompleted, TotalAmount: 500}}
	if got := Reduce(recs, "2025-01-01").TotalRevenue; got != 0 {
		t.Errorf("TotalRevenue = %v, want 0 for an unpaid booking", got)
	}
}
