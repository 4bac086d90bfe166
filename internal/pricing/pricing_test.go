package pricing

import (
	"testing"
	"time"

	"github.com/rentiva/rentiva-backend/pkg/enums"
	pkgerrors "github.com/rentiva/rentiva-backend/pkg/errors"
)

func TestTotalAmountCents(t *testing.T) {
	cases := []struct {
		name     string
		price    int64
		unit     enums.PriceUnit
		days     int
		expected int64
	}{
		{"daily five days", 1500, enums.PriceUnitDaily, 5, 7500},
		{"daily single day", 1500, enums.PriceUnitDaily, 1, 1500},
		{"weekly exact week", 7000, enums.PriceUnitWeekly, 7, 7000},
		{"weekly partial week rounds up", 7000, enums.PriceUnitWeekly, 10, 14000},
		{"weekly single day bills full week", 7000, enums.PriceUnitWeekly, 1, 7000},
		{"monthly exact month", 30000, enums.PriceUnitMonthly, 30, 30000},
		{"monthly partial month rounds up", 30000, enums.PriceUnitMonthly, 45, 60000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := TotalAmountCents(tc.price, tc.unit, tc.days)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.expected {
				t.Fatalf("expected %d cents, got %d", tc.expected, got)
			}
		})
	}
}

func TestTotalAmountCentsRejectsInvalidInput(t *testing.T) {
	if _, err := TotalAmountCents(1500, enums.PriceUnitDaily, 0); err == nil {
		t.Fatal("expected error for zero duration")
	}
	if _, err := TotalAmountCents(0, enums.PriceUnitDaily, 3); err == nil {
		t.Fatal("expected error for zero price")
	}
	_, err := TotalAmountCents(1500, "hourly", 3)
	if err == nil {
		t.Fatal("expected error for unknown unit")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLateFee(t *testing.T) {
	due := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	fee, daysLate := LateFee(due, due.Add(-time.Hour), 1500, DefaultLateFeePolicy)
	if fee != 0 || daysLate != 0 {
		t.Fatalf("on-time return should be free, got fee=%d days=%d", fee, daysLate)
	}

	// two hours over the due date still counts as one day late
	fee, daysLate = LateFee(due, due.Add(2*time.Hour), 1500, DefaultLateFeePolicy)
	if daysLate != 1 {
		t.Fatalf("expected 1 day late, got %d", daysLate)
	}
	if fee != 150 {
		t.Fatalf("expected 150 cents fee, got %d", fee)
	}

	fee, daysLate = LateFee(due, due.Add(5*24*time.Hour), 1500, DefaultLateFeePolicy)
	if daysLate != 5 {
		t.Fatalf("expected 5 days late, got %d", daysLate)
	}
	if fee != 750 {
		t.Fatalf("expected 750 cents fee, got %d", fee)
	}
}

func TestLateFeeRoundsToWholeCents(t *testing.T) {
	due := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	fee, _ := LateFee(due, due.Add(24*time.Hour), 1255, DefaultLateFeePolicy)
	// 10% of 1255 = 125.5, rounds to 126
	if fee != 126 {
		t.Fatalf("expected rounded fee 126, got %d", fee)
	}
}

func TestDepositRefund(t *testing.T) {
	policy := DefaultRefundPolicy

	if got := DepositRefund(10000, enums.ItemConditionExcellent, policy); got != 10000 {
		t.Fatalf("excellent should refund in full, got %d", got)
	}
	if got := DepositRefund(10000, enums.ItemConditionGood, policy); got != 9000 {
		t.Fatalf("good should refund 90%%, got %d", got)
	}
	if got := DepositRefund(10000, enums.ItemConditionDamaged, policy); got != 0 {
		t.Fatalf("damaged should forfeit deposit, got %d", got)
	}
	if got := DepositRefund(0, enums.ItemConditionExcellent, policy); got != 0 {
		t.Fatalf("zero deposit should refund zero, got %d", got)
	}
}

func TestDepositRefundConfigurableExcellentPct(t *testing.T) {
	policy := RefundPolicy{ExcellentPct: 95, GoodPct: 90}
	if got := DepositRefund(10000, enums.ItemConditionExcellent, policy); got != 9500 {
		t.Fatalf("expected 9500 with 95%% policy, got %d", got)
	}
}

func TestSeverityForDaysLate(t *testing.T) {
	cases := []struct {
		days     int
		expected enums.StrikeSeverity
	}{
		{1, enums.StrikeSeverityMinor},
		{3, enums.StrikeSeverityMinor},
		{4, enums.StrikeSeverityModerate},
		{7, enums.StrikeSeverityModerate},
		{8, enums.StrikeSeveritySevere},
		{30, enums.StrikeSeveritySevere},
	}

	for _, tc := range cases {
		if got := SeverityForDaysLate(tc.days); got != tc.expected {
			t.Fatalf("days=%d expected %s got %s", tc.days, tc.expected, got)
		}
	}
}
