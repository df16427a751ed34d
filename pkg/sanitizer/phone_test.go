package sanitizer

import "testing"

func TestNormalizePhone(t *testing.T) {
	regions := []string{"US", "IL"}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "valid E.164 format",
			input: "+972541234567",
			want:  "+972541234567",
		},
		{
			name:  "with spaces",
			input: "+972 54 123 4567",
			want:  "+972541234567",
		},
		{
			name:  "with dashes",
			input: "+972-54-123-4567",
			want:  "+972541234567",
		},
		{
			name:  "with parentheses",
			input: "+1 (650) 253-0000",
			want:  "+16502530000",
		},
		{
			name:  "national format resolved by first region",
			input: "(650) 253-0000",
			want:  "+16502530000",
		},
		{
			name:  "national format resolved by a later region",
			input: "054-123-4567",
			want:  "+972541234567",
		},
		{
			name:  "leading and trailing spaces",
			input: "  +972541234567  ",
			want:  "+972541234567",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "letters",
			input: "call me maybe",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePhone(tt.input, regions)
			if got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizePhone_NoRegions(t *testing.T) {
	if got := NormalizePhone("(650) 253-0000", nil); got != "" {
		t.Errorf("expected empty result without regions, got %q", got)
	}
}
