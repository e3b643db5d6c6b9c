package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizePrice validates a decimal price like "1250.50" and returns it in
// canonical two-decimal form. Empty input is allowed (price is optional).
func NormalizePrice(s string) (string, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return "", nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return "", fmt.Errorf("precio no válido: %q", s)
	}
	return fmt.Sprintf("%.2f", v), nil
}
