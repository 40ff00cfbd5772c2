package verification

import (
	"strconv"
	"testing"
)

func TestGenerateCodeRange(t *testing.T) {
	for i := 0; i < 10_000; i++ {
		code := GenerateCode()
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("non-numeric code %q: %v", code, err)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("code out of range: %d", n)
		}
	}
}
