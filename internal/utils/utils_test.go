package utils

import "testing"

func TestFormatRupees(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "₹0"},
		{999, "₹999"},
		{3999, "₹3,999"},
		{12999, "₹12,999"},
		{123456, "₹1,23,456"},
		{12345678, "₹1,23,45,678"},
		{-1500, "-₹1,500"},
	}
	for _, tt := range tests {
		if got := FormatRupees(tt.in); got != tt.want {
			t.Errorf("FormatRupees(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStripSpace(t *testing.T) {
	if got := StripSpace(" 98765 43210\t"); got != "9876543210" {
		t.Fatalf("StripSpace = %q", got)
	}
}

func TestNormalizeSpace(t *testing.T) {
	if got := NormalizeSpace("  Priya \t  Sharma\n"); got != "Priya Sharma" {
		t.Fatalf("NormalizeSpace = %q", got)
	}
}

func TestContainsFold(t *testing.T) {
	if !ContainsFold("Golden Temple", "golden") {
		t.Fatal("expected case-insensitive match")
	}
	if !ContainsFold("anything", "") {
		t.Fatal("empty needle should match")
	}
	if ContainsFold("Kasauli", "manali") {
		t.Fatal("unexpected match")
	}
}

func TestDateLabel(t *testing.T) {
	if got := DateLabel("2024-06-15"); got != "15 Jun 2024" {
		t.Fatalf("DateLabel = %q", got)
	}
	if got := DateLabel("soon"); got != "soon" {
		t.Fatalf("DateLabel passthrough = %q", got)
	}
}
