package utils

import (
	"strconv"
	"strings"
)

// FormatRupees renders an amount with Indian digit grouping, e.g. ₹1,23,456.
func FormatRupees(amount int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + "₹" + groupIndian(strconv.Itoa(amount))
}

// groupIndian puts a comma before the last three digits and then every two.
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
