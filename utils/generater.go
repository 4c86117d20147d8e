package utils

import (
	"crypto/rand"
	"fmt"
	"time"
)

const refAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateBookingRef produces a human-readable booking reference like
// "AC-20260901-K7TQ". The random suffix avoids leaking booking volume.
func GenerateBookingRef() string {
	var b [4]byte
	rand.Read(b[:])
	suffix := make([]byte, 4)
	for i, v := range b {
		suffix[i] = refAlphabet[int(v)%len(refAlphabet)]
	}
	return fmt.Sprintf("AC-%s-%s", time.Now().UTC().Format("20060102"), suffix)
}
