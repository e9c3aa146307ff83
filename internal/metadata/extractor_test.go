package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractUnrecognizedPayload(t *testing.T) {
	e := NewExtractor()

	info := e.Extract([]byte("definitely not audio"))
	assert.Empty(t, info.Title)
	assert.Empty(t, info.Genre)
	assert.Empty(t, info.ContentType)
	assert.Nil(t, info.Duration)
}

func TestExtractEmptyPayload(t *testing.T) {
	e := NewExtractor()

	info := e.Extract(nil)
	assert.Nil(t, info.Duration)
	assert.Empty(t, info.ContentType)
}
