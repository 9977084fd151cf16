package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
)

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// TrimmedOrNil returns nil for a nil or blank string.
func TrimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

// GenerateCustomerCode returns a display code like CUST-48213.
func GenerateCustomerCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(90000))
	if err != nil {
		// fallback: time-based entropy
		n = big.NewInt(time.Now().UnixNano() % 90000)
	}
	return fmt.Sprintf("CUST-%d", 10000+n.Int64())
}
