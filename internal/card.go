package internal

import (
	"lodgepay/entity"
	"strings"
	"time"
)

// cardDisplayWidth caps a formatted card number at 16 digits plus
// 3 group separators.
const cardDisplayWidth = 19

// brandRule maps a leading-digit pattern to a card brand. Rules are
// evaluated in order and the first match wins.
type brandRule struct {
	brand entity.CardBrand
	match func(digits string) bool
}

var brandRules = []brandRule{
	{entity.BrandVisa, func(d string) bool { return strings.HasPrefix(d, "4") }},
	{entity.BrandMastercard, func(d string) bool {
		return len(d) >= 2 && d[0] == '5' && d[1] >= '1' && d[1] <= '5'
	}},
	{entity.BrandAmex, func(d string) bool {
		return strings.HasPrefix(d, "34") || strings.HasPrefix(d, "37")
	}},
	{entity.BrandDiscover, func(d string) bool {
		return strings.HasPrefix(d, "6011") || strings.HasPrefix(d, "65")
	}},
	{entity.BrandUnionPay, func(d string) bool { return strings.HasPrefix(d, "62") }},
	{entity.BrandJCB, func(d string) bool { return strings.HasPrefix(d, "35") }},
}

// NormalizeCardNumber strips everything but digits from a raw card
// number as typed into a form.
func NormalizeCardNumber(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCardNumber renders a card number in 4-digit groups for display,
// capped at the display width.
func FormatCardNumber(raw string) string {
	digits := NormalizeCardNumber(raw)
	var groups []string
	for len(digits) > 4 {
		groups = append(groups, digits[:4])
		digits = digits[4:]
	}
	if digits != "" {
		groups = append(groups, digits)
	}
	formatted := strings.Join(groups, " ")
	if len(formatted) > cardDisplayWidth {
		return formatted[:cardDisplayWidth]
	}
	return formatted
}

// DetectBrand returns the card network for a number, or BrandNone when
// no supported pattern matches. The result is deterministic: the rule
// order fixes precedence between overlapping prefixes.
func DetectBrand(number string) entity.CardBrand {
	digits := NormalizeCardNumber(number)
	if digits == "" {
		return entity.BrandNone
	}
	for _, rule := range brandRules {
		if rule.match(digits) {
			return rule.brand
		}
	}
	return entity.BrandNone
}

// ValidateCardNumber checks length (13-19 digits) and the Luhn checksum.
func ValidateCardNumber(number string) bool {
	digits := NormalizeCardNumber(number)
	if len(digits) < 13 || len(digits) > 19 {
		return false
	}

	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		digit := int(digits[i] - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return sum%10 == 0
}

// ValidateExpiry reports whether a month (1-12) and two-digit year
// (2000+yy) are not in the past.
func ValidateExpiry(month, year int) bool {
	return validateExpiryAt(month, year, time.Now())
}

func validateExpiryAt(month, year int, now time.Time) bool {
	if month < 1 || month > 12 {
		return false
	}
	if year < 0 || year > 99 {
		return false
	}
	currentYear := now.Year() % 100
	currentMonth := int(now.Month())
	if year < currentYear {
		return false
	}
	if year == currentYear && month < currentMonth {
		return false
	}
	return true
}

// ValidateCVC checks the card security code against the brand:
// amex requires exactly 4 digits, every other brand exactly 3.
func ValidateCVC(cvc string, brand entity.CardBrand) bool {
	required := 3
	if brand == entity.BrandAmex {
		required = 4
	}
	if len(cvc) != required {
		return false
	}
	for i := 0; i < len(cvc); i++ {
		if cvc[i] < '0' || cvc[i] > '9' {
			return false
		}
	}
	return true
}

// ParseExpiry splits an MM/YY form value into month and year numbers.
// Only the format is checked here; ValidateExpiry decides if the date
// is usable.
func ParseExpiry(value string) (month, year int, ok bool) {
	parts := strings.Split(strings.TrimSpace(value), "/")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, 0, false
	}
	for _, part := range parts {
		for i := 0; i < len(part); i++ {
			if part[i] < '0' || part[i] > '9' {
				return 0, 0, false
			}
		}
	}
	month = int(parts[0][0]-'0')*10 + int(parts[0][1]-'0')
	year = int(parts[1][0]-'0')*10 + int(parts[1][1]-'0')
	return month, year, true
}
