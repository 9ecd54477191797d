package purchases

import "testing"

func TestNormalizeStoreName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Mercadona", "mercadona"},
		{"  LIDL  ", "lidl"},
		{"Trader Joe's", "trader joes"},
		{"Trader Joe’s", "trader joes"},
		{"Sainsbury‘s", "sainsburys"},
	}
	for _, tt := range tests {
		if got := NormalizeStoreName(tt.in); got != tt.want {
			t.Fatalf("NormalizeStoreName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
