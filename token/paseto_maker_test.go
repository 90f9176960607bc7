package token

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSymmetricKey = "12345678901234567890123456789012" // 32 bytes

func TestPasetoMakerRoundTrip(t *testing.T) {
	maker, err := NewPasetoMaker(testSymmetricKey)
	require.NoError(t, err)

	actorID := "d7f1c2ab-0000-4000-8000-000000000001"
	created, err := maker.CreateToken(actorID, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, created)

	payload, err := maker.VerifyToken(created)
	require.NoError(t, err)
	assert.Equal(t, actorID, payload.ActorID)
	assert.NotEqual(t, payload.ID.String(), "00000000-0000-0000-0000-000000000000")
	assert.WithinDuration(t, time.Now(), payload.IssuedAt, time.Second)
	assert.WithinDuration(t, time.Now().Add(time.Minute), payload.ExpiredAt, time.Second)
}

func TestPasetoMakerRejectsExpiredToken(t *testing.T) {
	maker, err := NewPasetoMaker(testSymmetricKey)
	require.NoError(t, err)

	created, err := maker.CreateToken("actor", time.Nanosecond)
	require.NoError(t, err)

	time.Sleep(time.Millisecond)
	_, err = maker.VerifyToken(created)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrExpired.Error())
}

func TestPasetoMakerRejectsTamperedToken(t *testing.T) {
	maker, err := NewPasetoMaker(testSymmetricKey)
	require.NoError(t, err)

	created, err := maker.CreateToken("actor", time.Minute)
	require.NoError(t, err)

	tampered := created[:len(created)-4] + strings.Repeat("x", 4)
	_, err = maker.VerifyToken(tampered)
	assert.Error(t, err)
}

func TestNewPasetoMakerRejectsShortKey(t *testing.T) {
	_, err := NewPasetoMaker("too-short")
	assert.Error(t, err)
}

func TestNewPayloadValidation(t *testing.T) {
	_, err := NewPayload("", time.Minute)
	assert.Error(t, err)

	_, err = NewPayload("actor", 0)
	assert.Error(t, err)
}
