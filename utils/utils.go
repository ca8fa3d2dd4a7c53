package utils

import (
	"crypto/rand"
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"golang.org/x/text/unicode/norm"
)

func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 || e.Code == 11001 {
				return true
			}
		}
	}

	var bwe mongo.BulkWriteException
	if errors.As(err, &bwe) {
		for _, e := range bwe.WriteErrors {
			if e.Code == 11000 || e.Code == 11001 {
				return true
			}
		}
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 11000 || ce.Code == 11001) {
		return true
	}

	return strings.Contains(err.Error(), "E11000 duplicate key error")
}

func ParseIntDefault(v string, def int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// NormalizeText composes s to NFC and cuts it to at most maxChars characters.
// Whitespace is kept as submitted.
func NormalizeText(s string, maxChars int) string {
	s = norm.NFC.String(s)
	if maxChars <= 0 || utf8.RuneCountInString(s) <= maxChars {
		return s
	}
	n := 0
	for i := range s {
		if n == maxChars {
			return s[:i]
		}
		n++
	}
	return s
}

// FirstForwardedIP returns the first entry of an X-Forwarded-For value, or nil
// when the header is absent or its first entry is empty.
func FirstForwardedIP(xff string) *string {
	if xff == "" {
		return nil
	}
	first := xff
	if comma := strings.IndexByte(xff, ','); comma >= 0 {
		first = xff[:comma]
	}
	first = strings.TrimSpace(first)
	if first == "" {
		return nil
	}
	return &first
}

// OptionalString maps "" to nil.
func OptionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// GeneratePassword returns a random 12 character password drawn from the
// base32 alphabet.
func GeneratePassword() string {
	return rand.Text()[:12]
}
