package entity

// CardBrand is the card network family inferred from the leading digits
// of the card number.
type CardBrand string

const (
	BrandVisa       CardBrand = "visa"
	BrandMastercard CardBrand = "mastercard"
	BrandAmex       CardBrand = "amex"
	BrandDiscover   CardBrand = "discover"
	BrandUnionPay   CardBrand = "unionpay"
	BrandJCB        CardBrand = "jcb"
	// BrandNone means no supported network matched; such cards are
	// rejected before any network call.
	BrandNone CardBrand = "none"
)

// Card holds normalized payment card data for a single charge attempt.
// It only ever lives in process memory and is never persisted.
type Card struct {
	// Number is the card number with all non-digits stripped.
	Number string
	// Holder is the name printed on the card.
	Holder string
	// ExpiryMonth is 1-12.
	ExpiryMonth int
	// ExpiryYear is the two-digit year, interpreted as 2000+YY.
	ExpiryYear int
	// CVC is the card security code, 3 digits (4 for amex).
	CVC string
}
