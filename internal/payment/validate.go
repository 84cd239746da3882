package payment

import (
    "errors"
    "regexp"
    "strings"
)

// Payment method identifiers accepted at checkout.
const (
    MethodUPI        = "upi"
    MethodCard       = "card"
    MethodWallet     = "wallet"
    MethodNetbanking = "netbanking"
)

// Input validation errors, surfaced inline before the simulator runs.
var (
    ErrUnknownMethod = errors.New("unknown payment method")
    ErrInvalidCard   = errors.New("card number must be 16 digits")
    ErrInvalidExpiry = errors.New("expiry must be MM/YY")
    ErrInvalidCVV    = errors.New("cvv must be 3 digits")
    ErrInvalidUPI    = errors.New("upi id must contain @")
)

// Details carries the method-specific form fields.  Only the fields
// of the active method are validated; the rest may stay empty.
type Details struct {
    CardNumber string `json:"card_number,omitempty"`
    Expiry     string `json:"expiry,omitempty"`
    CVV        string `json:"cvv,omitempty"`
    UPIID      string `json:"upi_id,omitempty"`
}

var (
    digitsOnly = regexp.MustCompile(`[^0-9]`)
    expiryRe   = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
    cvvRe      = regexp.MustCompile(`^[0-9]{3}$`)
)

// ValidateDetails checks the active method's fields.  Wallet and
// netbanking have no form fields; picking an option is the whole
// input.
func ValidateDetails(method string, d Details) error {
    switch method {
    case MethodCard:
        if len(digitsOnly.ReplaceAllString(d.CardNumber, "")) != 16 {
            return ErrInvalidCard
        }
        if !expiryRe.MatchString(d.Expiry) {
            return ErrInvalidExpiry
        }
        if !cvvRe.MatchString(d.CVV) {
            return ErrInvalidCVV
        }
        return nil
    case MethodUPI:
        if !strings.Contains(d.UPIID, "@") {
            return ErrInvalidUPI
        }
        return nil
    case MethodWallet, MethodNetbanking:
        return nil
    default:
        return ErrUnknownMethod
    }
}

// FormatCardNumber renders a card number in groups of four digits,
// the way the checkout form displays it.  Non-digits are stripped
// first.
func FormatCardNumber(raw string) string {
    digits := digitsOnly.ReplaceAllString(raw, "")
    if len(digits) > 16 {
        digits = digits[:16]
    }
    var b strings.Builder
    for i, r := range digits {
        if i > 0 && i%4 == 0 {
            b.WriteByte(' ')
        }
        b.WriteRune(r)
    }
    return b.String()
}
