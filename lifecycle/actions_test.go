package lifecycle

import (
	"reflect"
	"testing"
)

func set(actions ...Action) ActionSet {
	s := ActionSet{}
	for _, a := range actions {
		s[a] = true
	}
	return s
}

func TestActions(t *testing.T) {
	cases := []struct {
		name      string
		rec       Record
		role      Role
		hasReview bool
		want      ActionSet
	}{
		{
			name: "guide on pending booking",
			rec:  Record{Status: StatusPending},
			role: RoleGuide,
			want: set(CanConfirm, CanDecline),
		},
		{
			name: "guide on confirmed booking",
			rec:  Record{Status: StatusConfirmed},
			role: RoleGuide,
			want: set(CanComplete),
		},
		{
			name: "guide on completed booking",
			rec:  Record{Status: StatusCompleted},
			role: RoleGuide,
			want: set(),
		},
		{
			name: "tourist on completed unpaid booking",
			rec:  Record{Status: StatusCompleted},
			role: RoleTourist,
			want: set(CanPay),
		},
		{
			name: "tourist on completed paid booking without review",
			rec:  Record{Status: StatusCompleted, Payment: &PaymentInfo{Status: PaymentPaid}},
			role: RoleTourist,
			want: set(CanReview),
		},
		{
			name:      "tourist on completed paid booking with review",
			rec:       Record{Status: StatusCompleted, Payment: &PaymentInfo{Status: PaymentPaid}},
			role:      RoleTourist,
			hasReview: true,
			want:      set(),
		},
		{
			name: "tourist on cancelled booking",
			rec:  Record{Status: StatusCancelled},
			role: RoleTourist,
			want: set(CanRebook),
		},
		{
			name: "tourist on confirmed booking cannot pay yet",
			rec:  Record{Status: StatusConfirmed},
			role: RoleTourist,
			want: set(),
		},
		{
			name: "tourist on completed refunded booking",
			rec:  Record{Status: StatusCompleted, Payment: &PaymentInfo{Status: PaymentRefunded}},
			role: RoleTourist,
			want: set(),
		},
		{
			name: "admin gets nothing",
			rec:  Record{Status: StatusPending},
			role: RoleAdmin,
			want: set(),
		},
		{
			name: "unknown status fails closed",
			rec:  Record{Status: "RESCHEDULED"},
			role: RoleGuide,
			want: set(),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Actions(tc.rec, tc.role, tc.hasReview)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Actions() = %v, want %v", got.List(), tc.want.List())
			}
		})
	}
}

func TestActionsMissingPaymentMeansUnpaid(t *testing.T) {
	// Scenario: completed booking, payment record never created.
	got := Actions(Record{Status: StatusCompleted}, RoleTourist, false)
	if !got.Has(CanPay) {
		t.Error("completed booking without a payment record should be payable")
	}
	if got.Has(CanReview) {
		t.Error("unpaid booking must not be reviewable")
	}
}

func TestActionSetList(t *testing.T) {
	got := set(CanDecline, CanConfirm).List()
	want := []Action{CanConfirm, CanDecline}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}
