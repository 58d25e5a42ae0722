package normalize

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmountCents parses an amount cell into signed cents.
//
// Tolerated notations:
//   - currency symbols and spaces: "$1,234.56", "₹ 10,00,000"
//   - parenthesized negatives: "(588.74)"
//   - trailing minus: "588.74-"
//   - European decimal comma: "1.234,56"
func parseAmountCents(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}
	if strings.HasSuffix(s, "-") {
		neg = true
		s = strings.TrimSuffix(s, "-")
	}

	// Keep only digits, separators, and a leading sign.
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',':
			b.WriteRune(r)
		case r == '-' && b.Len() == 0:
			neg = true
		}
	}
	s = b.String()
	if s == "" {
		return 0, fmt.Errorf("no digits in amount %q", raw)
	}

	s = canonicalizeSeparators(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", raw, err)
	}

	cents := d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if neg {
		cents = -cents
	}
	return cents, nil
}

// canonicalizeSeparators rewrites the digits-and-separators string so that
// '.' is the decimal point and thousands separators are gone. When both
// separators appear, the rightmost one is the decimal point. A lone comma
// followed by exactly two digits is read as a decimal comma; otherwise a
// lone separator repeated or followed by groups of three is a thousands
// separator.
func canonicalizeSeparators(s string) string {
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			// European: 1.234,56
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			// US: 1,234.56
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(s, ",") == 1 && len(s)-lastComma-1 == 2 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastDot >= 0:
		if strings.Count(s, ".") > 1 {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	return s
}
