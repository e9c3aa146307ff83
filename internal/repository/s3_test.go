package repository

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunewave/tunewave/internal/models"
)

func TestChunkedBodyCapsReadSize(t *testing.T) {
	payload := bytes.Repeat([]byte("x"), 3*streamChunkSize)
	body := &chunkedBody{body: io.NopCloser(bytes.NewReader(payload)), limit: int64(len(payload))}

	buf := make([]byte, 64*1024)
	n, err := body.Read(buf)
	require.NoError(t, err)
	assert.LessOrEqual(t, n, streamChunkSize)
}

func TestChunkedBodyStopsAtLimit(t *testing.T) {
	payload := bytes.Repeat([]byte("y"), 2*streamChunkSize)
	limit := int64(100)
	body := &chunkedBody{body: io.NopCloser(bytes.NewReader(payload)), limit: limit}

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Len(t, data, int(limit))
}

func TestChunkedBodyDeliversWholeRange(t *testing.T) {
	payload := []byte("0123456789")
	body := &chunkedBody{body: io.NopCloser(bytes.NewReader(payload)), limit: int64(len(payload))}

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestQueueKeyLayout(t *testing.T) {
	assert.Equal(t, "queue:42", queueKey(42))
}

func TestMapQueueScriptError(t *testing.T) {
	assert.NoError(t, mapQueueScriptError(nil, 1))

	err := mapQueueScriptError(errors.New("ERR queue empty"), 1)
	assert.True(t, models.HasCode(err, models.CodeQueueNotFound))
	assert.True(t, models.IsNotFound(err))

	err = mapQueueScriptError(assert.AnError, 1)
	require.Error(t, err)
	assert.False(t, models.HasCode(err, models.CodeQueueNotFound))
}
