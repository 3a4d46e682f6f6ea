// Package shortid generates the public short codes that identify links.
package shortid

import (
	"crypto/rand"
)

// Alphabet is the set of characters used in short codes. Visually
// confusable characters (0, 1, I, O, l) are excluded so codes survive
// being read aloud or retyped from a screenshot.
const Alphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnpqrstuvwxyz"

// Length is the fixed length of every generated short code.
const Length = 6

// Generate returns a new random short code of Length characters drawn
// uniformly from Alphabet. Uniqueness is the caller's responsibility:
// callers must check the store and regenerate on collision.
func Generate() string {
	return generate(Length)
}

func generate(n int) string {
	out := make([]byte, n)
	// Rejection sampling keeps the distribution uniform: 256 is not a
	// multiple of len(Alphabet), so plain modulo would skew low indexes.
	max := byte(256 - (256 % len(Alphabet)))
	buf := make([]byte, 1)
	for i := 0; i < n; {
		if _, err := rand.Read(buf); err != nil {
			panic("shortid: crypto/rand failed: " + err.Error())
		}
		if buf[0] >= max {
			continue
		}
		out[i] = Alphabet[int(buf[0])%len(Alphabet)]
		i++
	}
	return string(out)
}

// Valid reports whether s has the exact shape of a generated short code.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !inAlphabet(s[i]) {
			return false
		}
	}
	return true
}

func inAlphabet(c byte) bool {
	for i := 0; i < len(Alphabet); i++ {
		if Alphabet[i] == c {
			return true
		}
	}
	return false
}
