package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	journalDate := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2025, 3, 31, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(journalDate, createdAt)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedJournalDate, decodedCreatedAt, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, journalDate, decodedJournalDate, "Journal date should match after decode")
	assert.Equal(t, createdAt, decodedCreatedAt, "Created at time should match after decode")
}

func TestEncodeDecodeToken_ZeroTimes(t *testing.T) {
	zeroTime := time.Time{}
	token := EncodeToken(zeroTime, zeroTime)

	decodedDate, decodedCreatedAt, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding zero time should not return an error")
	assert.Equal(t, zeroTime, decodedDate)
	assert.Equal(t, zeroTime, decodedCreatedAt)
}

func TestDecodeTokenError(t *testing.T) {
	// Not base64 at all
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode")

	// Valid base64 but no separator
	noSeparator := base64.StdEncoding.EncodeToString([]byte("2025-03-31T00:00:00Z"))
	_, _, err = DecodeToken(noSeparator)
	assert.Error(t, err, "Should return an error when the separator is missing")
	assert.Contains(t, err.Error(), "separator")

	// Separator present but the first field is not a timestamp
	badDate := base64.StdEncoding.EncodeToString([]byte("notadate|2025-03-31T14:30:45.123456789Z"))
	_, _, err = DecodeToken(badDate)
	assert.Error(t, err, "Should return an error for an unparseable date")
	assert.Contains(t, err.Error(), "journal date parse")
}
