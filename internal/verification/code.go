package verification

import (
	"math/rand/v2"
	"strconv"
)

const (
	codeMin  = 100000
	codeSpan = 900000
)

// GenerateCode returns a uniformly distributed 6-digit code in
// [100000, 999999]. The lower bound avoids leading-zero ambiguity. The code
// gates a single short-lived signup step, so math/rand is sufficient.
func GenerateCode() string {
	return strconv.Itoa(codeMin + rand.IntN(codeSpan))
}
