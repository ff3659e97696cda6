package internal

import (
	"fmt"
	"lodgepay/entity"

	"github.com/shopspring/decimal"
)

// hourlyRate is charged per hour of early check-in or late check-out.
var hourlyRate = decimal.NewFromInt(60)

// defaultAmountLimit is the processor's single-transaction ceiling,
// used when no limit is configured.
var defaultAmountLimit = decimal.RequireFromString("99999.99")

const maxCheckHours = 24

// ValidateBreakdown rejects fee breakdowns the aggregator cannot price.
func ValidateBreakdown(b *entity.FeeBreakdown) error {
	switch b.BookingType {
	case entity.BookingAirbnb, entity.BookingOTA, entity.BookingDirect:
	default:
		return fmt.Errorf("unknown booking type %q", b.BookingType)
	}
	if b.SecurityDeposit.IsNegative() {
		return fmt.Errorf("security deposit cannot be negative")
	}
	if b.AccommodationFee.IsNegative() {
		return fmt.Errorf("accommodation fee cannot be negative")
	}
	if b.EarlyCheckInHours < 0 || b.EarlyCheckInHours > maxCheckHours {
		return fmt.Errorf("early check-in hours must be 0-%d", maxCheckHours)
	}
	if b.LateCheckOutHours < 0 || b.LateCheckOutHours > maxCheckHours {
		return fmt.Errorf("late check-out hours must be 0-%d", maxCheckHours)
	}
	return nil
}

// ComputeTotal sums the applicable fee components:
//
//   - security deposit for every channel except airbnb
//   - accommodation fee for direct bookings only
//   - each selected addon still present in the catalog
//   - early check-in and late check-out hours at the hourly rate
//
// Components are purely additive; only the final wire format rounds
// to 2 decimals.
func ComputeTotal(b *entity.FeeBreakdown) decimal.Decimal {
	total := decimal.Zero

	if b.BookingType != entity.BookingAirbnb {
		total = total.Add(b.SecurityDeposit)
	}
	if b.BookingType == entity.BookingDirect {
		total = total.Add(b.AccommodationFee)
	}
	for _, name := range b.SelectedAddons {
		if addon, ok := b.FindAddon(name); ok {
			total = total.Add(addon.Price)
		}
	}
	if b.EarlyCheckInHours > 0 {
		total = total.Add(hourlyRate.Mul(decimal.NewFromInt(int64(b.EarlyCheckInHours))))
	}
	if b.LateCheckOutHours > 0 {
		total = total.Add(hourlyRate.Mul(decimal.NewFromInt(int64(b.LateCheckOutHours))))
	}

	return total
}

// ValidateTotal enforces the payable range before any network call.
// A non-positive limit falls back to the processor default ceiling.
func ValidateTotal(total, limit decimal.Decimal) error {
	if !limit.IsPositive() {
		limit = defaultAmountLimit
	}
	if !total.IsPositive() {
		return fmt.Errorf("amount must be greater than zero")
	}
	if total.GreaterThan(limit) {
		return fmt.Errorf("amount exceeds limit of %s", limit.StringFixed(2))
	}
	return nil
}

// FormatAmount renders an amount with exactly 2 fraction digits, the
// only form the processor accepts.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
