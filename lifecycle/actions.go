package lifecycle

// Action is something the current user may do to a booking right now.
// Invoking an action is always a separate API call; this gate never flips
// local state.
type Action string

const (
	CanConfirm  Action = "can-confirm"
	CanDecline  Action = "can-decline"
	CanComplete Action = "can-complete"
	CanPay      Action = "can-pay"
	CanReview   Action = "can-review"
	CanRebook   Action = "can-rebook"
)

type ActionSet map[Action]bool

func (s ActionSet) Has(a Action) bool { return s[a] }

// List returns the set in a stable order for JSON responses.
func (s ActionSet) List() []Action {
	order := []Action{CanConfirm, CanDecline, CanComplete, CanPay, CanReview, CanRebook}
	out := []Action{}
	for _, a := range order {
		if s[a] {
			out = append(out, a)
		}
	}
	return out
}

// Actions computes the permitted actions for role on a booking. Paying and
// reviewing check both the booking status and the payment status; checking
// either axis alone is how bookings end up payable twice or reviewable before
// settlement. Any status combination outside the rules yields the empty set.
func Actions(rec Record, role Role, hasReview bool) ActionSet {
	rec = Normalize(rec)
	set := ActionSet{}

	switch role {
	case RoleGuide:
		switch rec.Status {
		case StatusPending:
			set[CanConfirm] = true
			set[CanDecline] = true
		case StatusConfirmed:
			set[CanComplete] = true
		}
	case RoleTourist:
		switch rec.Status {
		case StatusCompleted:
			if rec.Payment.Status == PaymentUnpaid {
				set[CanPay] = true
			}
			if rec.Payment.Status == PaymentPaid && !hasReview {
				set[CanReview] = true
			}
		case StatusCancelled, StatusFailed:
			set[CanRebook] = true
		}
	}
	return set
}
