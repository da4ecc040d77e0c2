package common

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// XLMDecimals is the precision of the native asset (stroops).
	XLMDecimals = 7
)

// StroopsToXLM converts stroops to an XLM string without float precision loss
func StroopsToXLM(stroops uint64) string {
	return formatWithDecimals(stroops, XLMDecimals)
}

// XLMToStroops converts an XLM string to stroops without float precision loss
func XLMToStroops(xlm string) (uint64, error) {
	return parseWithDecimals(xlm, XLMDecimals)
}

// FormatBalance truncates a decimal balance string to the given number of
// fractional digits without going through floats.
// Example: FormatBalance("123.4567890", 2) = "123.45"
func FormatBalance(balance string, decimals int) string {
	balance = strings.TrimSpace(balance)
	if balance == "" {
		balance = "0"
	}

	parts := strings.SplitN(balance, ".", 2)
	whole := parts[0]
	frac := ""
	if len(parts) == 2 {
		frac = parts[1]
	}

	if decimals <= 0 {
		return whole
	}
	if len(frac) < decimals {
		frac += strings.Repeat("0", decimals-len(frac))
	} else {
		frac = frac[:decimals]
	}
	return whole + "." + frac
}

// CompareXLMAmounts compares two XLM decimal string amounts without float
// precision loss.
// Returns: -1 if a < b, 0 if a == b, 1 if a > b, and error if parsing fails
func CompareXLMAmounts(a, b string) (int, error) {
	aVal, err := parseWithDecimals(a, XLMDecimals)
	if err != nil {
		return 0, fmt.Errorf("failed to parse amount '%s': %w", a, err)
	}

	bVal, err := parseWithDecimals(b, XLMDecimals)
	if err != nil {
		return 0, fmt.Errorf("failed to parse amount '%s': %w", b, err)
	}

	if aVal < bVal {
		return -1, nil
	}
	if aVal > bVal {
		return 1, nil
	}
	return 0, nil
}

// formatWithDecimals converts integer to decimal string by inserting decimal point
// Example: formatWithDecimals(24981836, 7) = "2.4981836"
func formatWithDecimals(value uint64, decimals int) string {
	s := fmt.Sprintf("%d", value)

	for len(s) <= decimals {
		s = "0" + s
	}

	pos := len(s) - decimals
	return s[:pos] + "." + s[pos:]
}

// parseWithDecimals converts decimal string to integer by removing decimal point
// Example: parseWithDecimals("2.4981836", 7) = 24981836
func parseWithDecimals(s string, decimals int) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty string")
	}

	parts := strings.Split(s, ".")

	if len(parts) == 1 {
		n, err := strconv.ParseUint(parts[0], 10, 64)
		if err != nil {
			return 0, err
		}
		for i := 0; i < decimals; i++ {
			n *= 10
		}
		return n, nil
	}

	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid decimal format")
	}

	whole := parts[0]
	frac := parts[1]

	// Pad or truncate fractional part to exact decimals
	if len(frac) < decimals {
		frac += strings.Repeat("0", decimals-len(frac))
	} else if len(frac) > decimals {
		frac = frac[:decimals]
	}

	combined := whole + frac
	return strconv.ParseUint(combined, 10, 64)
}
