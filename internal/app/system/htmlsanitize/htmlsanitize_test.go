package htmlsanitize_test

import (
	"testing"

	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/htmlsanitize"
)

func TestStrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain text", "Build a chatbot for campus events", "Build a chatbot for campus events"},
		{"script removed", "48h online<script>alert('x')</script>", "48h online"},
		{"tags stripped to text", "<p><strong>Prizes</strong> worth 50k</p>", "Prizes worth 50k"},
		{"anchor stripped", `<a href="javascript:alert(1)">details</a>`, "details"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := htmlsanitize.Strip(tt.input); got != tt.want {
				t.Errorf("Strip(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
