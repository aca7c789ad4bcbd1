package service

import (
	"strings"

	"github.com/ledgerhouse/minibank-server/internal/model"
)

// validateFundingSource enforces the per-variant required fields of the
// funding source union before anything is persisted.
func validateFundingSource(source model.FundingSource) map[string]string {
	fields := map[string]string{}

	switch source.Kind {
	case model.FundingKindCard:
		number := strings.ReplaceAll(strings.TrimSpace(source.CardNumber), " ", "")
		if cardBrand(number) == "" {
			fields["cardNumber"] = "is not a recognized card brand"
		} else if !luhnValid(number) {
			fields["cardNumber"] = "is not a valid card number"
		}
	case model.FundingKindBank:
		if !routingPattern.MatchString(strings.TrimSpace(source.RoutingNumber)) {
			fields["routingNumber"] = "must be a 9-digit routing number"
		}
	default:
		fields["fundingSource"] = "must be either card or bank"
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}

// cardBrand returns the detected brand for a digit string, or "" when the
// prefix or length matches no supported brand.
func cardBrand(number string) string {
	if !digitString(number) {
		return ""
	}
	switch {
	case len(number) >= 13 && len(number) <= 19 && number[0] == '4':
		return "visa"
	case len(number) == 16 && number[0] == '5' && number[1] >= '1' && number[1] <= '5':
		return "mastercard"
	case len(number) == 15 && number[0] == '3' && (number[1] == '4' || number[1] == '7'):
		return "amex"
	case len(number) == 16 && (strings.HasPrefix(number, "6011") || strings.HasPrefix(number, "65")):
		return "discover"
	default:
		return ""
	}
}

func luhnValid(number string) bool {
	if len(number) < 2 {
		return false
	}
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		d := int(number[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

func digitString(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
