package compactor

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeWidth_Capacity(t *testing.T) {
	tests := []struct {
		width CodeWidth
		want  uint32
		valid bool
	}{
		{CodeWidth8, 255, true},
		{CodeWidth16, 65535, true},
		{CodeWidth32, math.MaxUint32, true},
		{CodeWidth(12), 4095, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d bits", tt.width), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.width.Capacity())
			assert.Equal(t, tt.valid, tt.width.Valid())
		})
	}
}

func TestDictionary_InternIsIdempotent(t *testing.T) {
	d := NewDictionary("strings", CodeWidth16)

	first, err := d.Intern("EcoBright Solutions Uganda Limited")
	require.NoError(t, err)
	second, err := d.Intern("EcoBright Solutions Uganda Limited")
	require.NoError(t, err)

	assert.Equal(t, uint32(1), first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, d.Len())
	assert.Equal(t, 1, d.Hits())
}

func TestDictionary_DistinctValuesGetDistinctCodes(t *testing.T) {
	d := NewDictionary("urls", CodeWidth8)
	seen := make(map[uint32]bool)
	for i := 0; i < 255; i++ {
		code, err := d.Intern(fmt.Sprintf("https://example.com/%d", i))
		require.NoError(t, err)
		assert.Equal(t, uint32(i+1), code)
		seen[code] = true
	}
	assert.Len(t, seen, 255)
	assert.Equal(t, 0, d.Hits())
}

func TestDictionary_Exhaustion(t *testing.T) {
	d := NewDictionary("strings", CodeWidth8)
	for i := 0; i < 255; i++ {
		_, err := d.Intern(fmt.Sprintf("v%d", i))
		require.NoError(t, err)
	}

	// Known values still resolve once the space is full.
	code, err := d.Intern("v7")
	require.NoError(t, err)
	assert.Equal(t, uint32(8), code)

	_, err = d.Intern("one too many")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDictionaryExhausted))

	var exhausted *ExhaustionError
	require.True(t, errors.As(err, &exhausted))
	assert.Equal(t, "strings", exhausted.Dictionary)
	assert.Equal(t, CodeWidth8, exhausted.Width)
	assert.Equal(t, "one too many", exhausted.Value)
	assert.Equal(t, 255, d.Len())
}

func TestExhaustionError_TruncatesOnRuneBoundary(t *testing.T) {
	err := &ExhaustionError{Dictionary: "strings", Width: CodeWidth8, Value: strings.Repeat("é", 100)}
	msg := err.Error()

	assert.True(t, utf8.ValidString(msg))
	assert.Contains(t, msg, strings.Repeat("é", 64)+"...")
	assert.NotContains(t, msg, strings.Repeat("é", 65))

	short := &ExhaustionError{Dictionary: "urls", Width: CodeWidth16, Value: "https://a"}
	assert.NotContains(t, short.Error(), "...")
}

func TestDictionary_Resolve(t *testing.T) {
	d := NewDictionary("urls", CodeWidth16)
	_, _ = d.Intern("https://a")
	_, _ = d.Intern("https://b")

	s, err := d.Resolve(2)
	require.NoError(t, err)
	assert.Equal(t, "https://b", s)

	for _, code := range []uint32{0, 3} {
		_, err := d.Resolve(code)
		assert.ErrorIs(t, err, ErrUnknownCode, "code %d", code)
	}
}

func TestNewDictionaryFrom(t *testing.T) {
	t.Run("Rebuilds codes in order", func(t *testing.T) {
		d, err := NewDictionaryFrom("urls", CodeWidth8, []string{"https://a", "https://b"})
		require.NoError(t, err)

		code, ok := d.Lookup("https://b")
		assert.True(t, ok)
		assert.Equal(t, uint32(2), code)
		assert.Equal(t, []string{"https://a", "https://b"}, d.Entries())
	})

	t.Run("Frozen", func(t *testing.T) {
		d, err := NewDictionaryFrom("urls", CodeWidth8, []string{"https://a"})
		require.NoError(t, err)

		code, err := d.Intern("https://a")
		require.NoError(t, err)
		assert.Equal(t, uint32(1), code)

		_, err = d.Intern("https://new")
		assert.Error(t, err)
	})

	t.Run("Duplicate entry", func(t *testing.T) {
		_, err := NewDictionaryFrom("strings", CodeWidth8, []string{"x", "x"})
		assert.ErrorIs(t, err, ErrMalformedArtifact)
	})

	t.Run("Too many entries for width", func(t *testing.T) {
		items := make([]string, 256)
		for i := range items {
			items[i] = fmt.Sprint(i)
		}
		_, err := NewDictionaryFrom("strings", CodeWidth8, items)
		assert.ErrorIs(t, err, ErrMalformedArtifact)
	})
}
