package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunewave/tunewave/internal/models"
)

func TestParseRangeHeaderAbsent(t *testing.T) {
	start, end, err := parseRangeHeader("")
	require.NoError(t, err)
	assert.Nil(t, start)
	assert.Nil(t, end)
}

func TestParseRangeHeaderFull(t *testing.T) {
	start, end, err := parseRangeHeader("bytes=2-5")
	require.NoError(t, err)
	require.NotNil(t, start)
	require.NotNil(t, end)
	assert.Equal(t, int64(2), *start)
	assert.Equal(t, int64(5), *end)
}

func TestParseRangeHeaderOpenEnd(t *testing.T) {
	start, end, err := parseRangeHeader("bytes=7-")
	require.NoError(t, err)
	require.NotNil(t, start)
	assert.Equal(t, int64(7), *start)
	assert.Nil(t, end)
}

func TestParseRangeHeaderOpenStart(t *testing.T) {
	start, end, err := parseRangeHeader("bytes=-500")
	require.NoError(t, err)
	assert.Nil(t, start)
	require.NotNil(t, end)
	assert.Equal(t, int64(500), *end)
}

func TestParseRangeHeaderRejectsNonByteUnit(t *testing.T) {
	_, _, err := parseRangeHeader("items=0-5")
	assert.ErrorIs(t, err, models.ErrInvalidRangeUnit)
}

func TestParseRangeHeaderEmptyBounds(t *testing.T) {
	// Both halves empty means no bounds were requested; same as no header.
	start, end, err := parseRangeHeader("bytes=-")
	require.NoError(t, err)
	assert.Nil(t, start)
	assert.Nil(t, end)
}

func TestParseRangeHeaderRejectsMalformed(t *testing.T) {
	for _, header := range []string{
		"bytes",
		"bytes=",
		"bytes=a-b",
		"bytes=5",
		"bytes=-3-7",
	} {
		_, _, err := parseRangeHeader(header)
		assert.Error(t, err, "header %q should be rejected", header)
	}
}
