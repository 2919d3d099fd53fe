package cli

import (
	"math"
	"strconv"
	"strings"
)

// FormatAmount renders a value with Indian digit grouping (12,34,567).
// Fractions are rounded away when the value is whole after two decimals.
func FormatAmount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}

	negative := v < 0
	v = math.Abs(v)

	formatted := strconv.FormatFloat(v, 'f', 2, 64)
	whole, frac, _ := strings.Cut(formatted, ".")
	if frac == "00" {
		frac = ""
	}

	out := groupIndian(whole)
	if frac != "" {
		out += "." + frac
	}
	if negative && out != "0" {
		out = "-" + out
	}
	return out
}

// groupIndian groups the last three digits, then every two.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}

// FormatPercent renders an achievement percentage, or N/A when missing.
func FormatPercent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "N/A"
	}
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}
