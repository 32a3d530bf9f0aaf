package lifecycle

// Summary backs the dashboard tiles.
type Summary struct {
	Total          int     `json:"total"`
	TotalRevenue   float64 `json:"total_revenue"`
	CompletedCount int     `json:"completed_count"`
	PendingCount   int     `json:"pending_count"`
}

// Reduce folds a booking list into dashboard counts. Revenue only counts
// bookings whose payment has actually settled; the captured payment amount
// wins over the booking's price snapshot when present.
func Reduce(recs []Record, today string) Summary {
	s := Summary{Total: len(recs)}
	for _, rec := range recs {
		rec = Normalize(rec)

		if rec.Payment.Status == PaymentPaid {
			amount := rec.Payment.Amount
			if amount == 0 {
				amount = rec.TotalAmount
			}
			s.TotalRevenue += amount
		}

		tag, _ := Classify(rec, today)
		switch tag {
		case TagCompleted:
			s.CompletedCount++
		case TagPending:
			s.PendingCount++
		}
	}
	return s
}
