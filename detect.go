package finledger

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// ErrMalformedAmount reports an amount field whose numeric part does not
// parse as a signed decimal. It is a row-level condition: callers skip the
// row and keep going.
var ErrMalformedAmount = errors.New("malformed amount")

// currencyToken is one entry of the ordered detection table.
type currencyToken struct {
	token string // the symbol or ISO code as it appears in amount fields
	code  string // the ISO currency code it denotes
}

// CurrencyDetector infers the source currency of a raw amount field from a
// known symbol ("€", "C$") or ISO code ("EUR"). The detection table is
// ordered longest token first so that "C$" is never mistaken for "$".
type CurrencyDetector struct {
	base   string
	tokens []currencyToken
}

// NewCurrencyDetector builds a detector from the configured supported
// currency set and symbol table.
func NewCurrencyDetector(cfg Config) *CurrencyDetector {
	tokens := make([]currencyToken, 0, len(cfg.SupportedCurrencies)+len(cfg.CurrencySymbols))
	for _, code := range cfg.SupportedCurrencies {
		tokens = append(tokens, currencyToken{token: strings.ToUpper(code), code: strings.ToUpper(code)})
	}
	for code, symbol := range cfg.CurrencySymbols {
		if symbol == "" {
			continue
		}
		tokens = append(tokens, currencyToken{token: symbol, code: strings.ToUpper(code)})
	}
	// Longest match first; ties broken lexically to keep the table deterministic.
	sort.Slice(tokens, func(i, j int) bool {
		if len(tokens[i].token) != len(tokens[j].token) {
			return len(tokens[i].token) > len(tokens[j].token)
		}
		return tokens[i].token < tokens[j].token
	})
	return &CurrencyDetector{base: cfg.BaseCurrency, tokens: tokens}
}

// Detect scans the raw amount field for a currency symbol or ISO code and
// returns the detected currency together with the stripped numeric text.
// When nothing matches, the configured base currency is assumed. The numeric
// text is guaranteed to parse as a signed decimal; otherwise Detect returns
// an error wrapping ErrMalformedAmount.
func (d *CurrencyDetector) Detect(field string) (code, numeric string, err error) {
	raw := strings.TrimSpace(field)
	code = d.base

	rest := raw
	for _, t := range d.tokens {
		if at := d.index(raw, t); at >= 0 {
			code = t.code
			rest = raw[:at] + raw[at+len(t.token):]
			break
		}
	}

	numeric = stripAmountNoise(rest)
	if numeric == "" {
		return "", "", fmt.Errorf("%w: %q has no numeric part", ErrMalformedAmount, field)
	}
	if _, perr := decimal.NewFromString(numeric); perr != nil {
		return "", "", fmt.Errorf("%w: %q: %v", ErrMalformedAmount, field, perr)
	}
	return code, numeric, nil
}

// index locates a token in the field. ISO codes match case-insensitively;
// symbols match verbatim. Byte offsets are identical in both views because
// codes are plain ASCII letters.
func (d *CurrencyDetector) index(field string, t currencyToken) int {
	if isAlpha(t.token) {
		return strings.Index(strings.ToUpper(field), t.token)
	}
	return strings.Index(field, t.token)
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// stripAmountNoise removes thousands separators and spacing (including
// non-breaking spaces) around and inside the numeric text.
func stripAmountNoise(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == ',' || r == ' ' || r == ' ' || r == '\t':
			// skip
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
