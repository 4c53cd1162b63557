package uniuri

import (
	"crypto/rand"
)

const (
	// IDLen is the length of record identifiers, ~119 bits of entropy.
	IDLen = 20

	// batch is how many random bytes are drawn per read.
	batch = 64
)

// Chars is the alphabet of generated identifiers.
var Chars = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789") //nolint:gochecknoglobals

// NewID returns a new random record identifier.
func NewID() string {
	return NewLen(IDLen)
}

// NewLen returns a random string of length drawn from Chars.
func NewLen(length int) string {
	if length <= 0 {
		return ""
	}

	n := len(Chars)
	// bytes above limit are rejected so every char is equally likely
	limit := 256 - (256 % n) //nolint:mnd

	out := make([]byte, 0, length)
	buf := make([]byte, batch)

	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			panic("uniuri: error reading random bytes: " + err.Error())
		}

		for _, b := range buf {
			if int(b) >= limit {
				continue
			}

			out = append(out, Chars[int(b)%n])
			if len(out) == length {
				break
			}
		}
	}

	return string(out)
}
