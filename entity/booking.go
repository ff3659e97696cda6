// Package entity defines data models for the Lodgepay payment service.
package entity

import (
	"github.com/shopspring/decimal"
)

// BookingType identifies the sales channel a booking came through.
// The channel decides which fee components apply.
type BookingType string

const (
	// BookingAirbnb bookings carry no deposit or accommodation fee;
	// the platform already collected both.
	BookingAirbnb BookingType = "airbnb"
	// BookingOTA covers third-party channels (Booking.com, Expedia, Marriott).
	BookingOTA BookingType = "ota"
	// BookingDirect bookings are fully self-managed and billed here.
	BookingDirect BookingType = "direct"
)

// Addon is a user-extensible name/price pair offered with a booking.
type Addon struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// DefaultAddons returns the stock addon catalog.
func DefaultAddons() []Addon {
	return []Addon{
		{Name: "Cot", Price: decimal.NewFromInt(99)},
		{Name: "Sofabed", Price: decimal.NewFromInt(99)},
		{Name: "High chair", Price: decimal.NewFromInt(60)},
		{Name: "Pet fee", Price: decimal.NewFromInt(130)},
	}
}

// DepositTiers are the preset security deposit amounts
// (1, 2 and 3 bedroom units); any other positive amount is a custom deposit.
func DepositTiers() []decimal.Decimal {
	return []decimal.Decimal{
		decimal.NewFromInt(600),
		decimal.NewFromInt(800),
		decimal.NewFromInt(1000),
	}
}

// FeeBreakdown is the itemized set of charges for one booking.
// It is an explicit immutable input to the fee aggregator; the catalog
// mutators below keep the selected set consistent with the catalog.
type FeeBreakdown struct {
	BookingType       BookingType     `json:"bookingType"`
	SecurityDeposit   decimal.Decimal `json:"securityDeposit"`
	AccommodationFee  decimal.Decimal `json:"accommodationFee"`
	Addons            []Addon         `json:"addons"`
	SelectedAddons    []string        `json:"selectedAddons"`
	EarlyCheckInHours int             `json:"earlyCheckInHours"`
	LateCheckOutHours int             `json:"lateCheckOutHours"`
	GuestName         string          `json:"guestName"`
	BookingRef        string          `json:"bookingRef"`
}

// FindAddon returns the catalog entry with the given name.
func (b *FeeBreakdown) FindAddon(name string) (Addon, bool) {
	for _, addon := range b.Addons {
		if addon.Name == name {
			return addon, true
		}
	}
	return Addon{}, false
}

// AddAddon puts an addon into the catalog. An existing entry with the
// same name gets its price replaced instead of being duplicated.
func (b *FeeBreakdown) AddAddon(addon Addon) {
	for i, existing := range b.Addons {
		if existing.Name == addon.Name {
			b.Addons[i].Price = addon.Price
			return
		}
	}
	b.Addons = append(b.Addons, addon)
}

// RemoveAddon deletes an addon from the catalog and from the selected
// set, so a removed addon can never linger in the total.
func (b *FeeBreakdown) RemoveAddon(name string) {
	addons := b.Addons[:0]
	for _, addon := range b.Addons {
		if addon.Name != name {
			addons = append(addons, addon)
		}
	}
	b.Addons = addons
	b.DeselectAddon(name)
}

// SelectAddon marks a catalog addon as selected. Unknown names and
// repeated selections are ignored.
func (b *FeeBreakdown) SelectAddon(name string) {
	if _, ok := b.FindAddon(name); !ok {
		return
	}
	for _, selected := range b.SelectedAddons {
		if selected == name {
			return
		}
	}
	b.SelectedAddons = append(b.SelectedAddons, name)
}

// DeselectAddon removes an addon from the selected set.
func (b *FeeBreakdown) DeselectAddon(name string) {
	selected := b.SelectedAddons[:0]
	for _, s := range b.SelectedAddons {
		if s != name {
			selected = append(selected, s)
		}
	}
	b.SelectedAddons = selected
}

// ToggleAddon selects the addon if unselected and deselects it otherwise.
func (b *FeeBreakdown) ToggleAddon(name string) {
	for _, selected := range b.SelectedAddons {
		if selected == name {
			b.DeselectAddon(name)
			return
		}
	}
	b.SelectAddon(name)
}
