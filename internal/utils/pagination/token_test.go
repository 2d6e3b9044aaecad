package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	createdAt := time.Date(2024, 6, 15, 14, 30, 45, 123456789, time.UTC)
	submissionID := "1d6c1f2e-9a0b-4c3d-8e7f-000000000042"

	token := EncodeToken(createdAt, submissionID)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedCreatedAt, decodedID, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, createdAt, decodedCreatedAt, "Created at time should match after decode")
	assert.Equal(t, submissionID, decodedID, "Submission ID should match after decode")

	// Zero time still round-trips.
	zeroToken := EncodeToken(time.Time{}, "")
	decodedZero, decodedEmptyID, err := DecodeToken(zeroToken)
	assert.NoError(t, err)
	assert.Equal(t, time.Time{}, decodedZero)
	assert.Equal(t, "", decodedEmptyID)
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode")

	// Base64 of a date with no separator.
	_, _, err = DecodeToken("MjAyMy0wNS0xNVQwMDowMDowMFo=")
	assert.Error(t, err, "Should return an error for invalid token format")
	assert.Contains(t, err.Error(), "split")

	// Base64 of "notadate|abc".
	_, _, err = DecodeToken("bm90YWRhdGV8YWJj")
	assert.Error(t, err, "Should return an error for invalid date format")
	assert.Contains(t, err.Error(), "created_at parse")
}
