package cli

import "testing"

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "0s"},
		{-500, "0s"},
		{45000, "45s"},
		{125000, "2m"},
		{3725000, "1h 2m"},
		{7200000, "2h 0m"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.ms); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4500, "-4,500"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.n); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatShare(t *testing.T) {
	if got := FormatShare(30000, 120000); got != "25.0%" {
		t.Errorf("FormatShare(30000, 120000) = %q, want 25.0%%", got)
	}
	if got := FormatShare(500, 0); got != "0.0%" {
		t.Errorf("FormatShare with zero total = %q, want 0.0%%", got)
	}
}
