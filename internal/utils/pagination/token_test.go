package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	updatedAt := time.Date(2024, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(updatedAt, "cio_42")
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedAt, decodedID, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.True(t, updatedAt.Equal(decodedAt), "Updated at should match after decode")
	assert.Equal(t, "cio_42", decodedID)
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode")

	missingSeparator := base64.StdEncoding.EncodeToString([]byte("2024-05-15T00:00:00Z"))
	_, _, err = DecodeToken(missingSeparator)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	badDate := base64.StdEncoding.EncodeToString([]byte("notadate|cio_1"))
	_, _, err = DecodeToken(badDate)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "updated_at parse")
}

func TestAfter(t *testing.T) {
	at := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)

	assert.True(t, After(at.Add(-time.Second), "z", at, "a"))
	assert.False(t, After(at.Add(time.Second), "a", at, "z"))
	assert.True(t, After(at, "a", at, "b"))
	assert.False(t, After(at, "b", at, "b"))
}
