package utils

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func TestNormalizeText(t *testing.T) {
	t.Run("keeps surrounding whitespace", func(t *testing.T) {
		assert.Equal(t, "  hello  ", NormalizeText("  hello  ", 1000))
	})

	t.Run("truncates by characters not bytes", func(t *testing.T) {
		in := strings.Repeat("ह", 1200)
		out := NormalizeText(in, 1000)
		assert.Equal(t, 1000, utf8.RuneCountInString(out))
		assert.True(t, utf8.ValidString(out))
	})

	t.Run("composes to NFC", func(t *testing.T) {
		decomposed := "e\u0301"
		assert.Equal(t, "\u00e9", NormalizeText(decomposed, 1000))
	})

	t.Run("short text unchanged", func(t *testing.T) {
		assert.Equal(t, "abc", NormalizeText("abc", 3))
	})
}

func TestFirstForwardedIP(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *string
	}{
		{"absent", "", nil},
		{"single", "10.0.0.1", OptionalString("10.0.0.1")},
		{"chain", " 203.0.113.7 , 10.0.0.1", OptionalString("203.0.113.7")},
		{"empty first entry", " ,10.0.0.1", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FirstForwardedIP(tt.in))
		})
	}
}

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 7, ParseIntDefault("", 7))
	assert.Equal(t, 7, ParseIntDefault("abc", 7))
	assert.Equal(t, -2, ParseIntDefault("-2", 7))
	assert.Equal(t, 25, ParseIntDefault("25", 7))
}

func TestGeneratePassword(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		pw := GeneratePassword()
		require.Len(t, pw, 12)
		for _, r := range pw {
			assert.True(t, (r >= 'A' && r <= 'Z') || (r >= '2' && r <= '7'), "unexpected rune %q", r)
		}
		seen[pw] = true
	}
	assert.Len(t, seen, 50)
}

func TestIsDuplicateKey(t *testing.T) {
	assert.False(t, IsDuplicateKey(nil))
	assert.False(t, IsDuplicateKey(errors.New("boom")))

	we := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "dup"}}}
	assert.True(t, IsDuplicateKey(we))
	assert.True(t, IsDuplicateKey(errors.Join(errors.New("insert"), we)))
	assert.True(t, IsDuplicateKey(mongo.CommandError{Code: 11001}))
}
