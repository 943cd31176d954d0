package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestNewShareTokenIssuer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		secret  string
		ttl     time.Duration
		wantErr bool
	}{
		{
			name:   "valid secret and TTL",
			secret: testSecret,
			ttl:    time.Hour,
		},
		{
			name:    "secret too short",
			secret:  "short",
			ttl:     time.Hour,
			wantErr: true,
		},
		{
			name:    "zero TTL",
			secret:  testSecret,
			ttl:     0,
			wantErr: true,
		},
		{
			name:    "negative TTL",
			secret:  testSecret,
			ttl:     -time.Minute,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			issuer, err := NewShareTokenIssuer(tt.secret, tt.ttl)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, issuer)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, issuer)
		})
	}
}

func TestShareTokenRoundTrip(t *testing.T) {
	t.Parallel()

	issuer, err := NewShareTokenIssuer(testSecret, time.Hour)
	require.NoError(t, err)

	deckID := uuid.New()
	token, err := issuer.Issue(deckID, "reader@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, deckID.String(), claims.DeckID)
	assert.Equal(t, "reader@example.com", claims.Recipient)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestShareTokenExpired(t *testing.T) {
	t.Parallel()

	issuer, err := NewShareTokenIssuer(testSecret, time.Millisecond)
	require.NoError(t, err)

	token, err := issuer.Issue(uuid.New(), "reader@example.com")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredShareToken)
}

func TestShareTokenRejectsTampering(t *testing.T) {
	t.Parallel()

	issuer, err := NewShareTokenIssuer(testSecret, time.Hour)
	require.NoError(t, err)

	token, err := issuer.Issue(uuid.New(), "reader@example.com")
	require.NoError(t, err)

	t.Run("garbage token", func(t *testing.T) {
		_, err := issuer.Verify("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidShareToken)
	})

	t.Run("flipped payload byte", func(t *testing.T) {
		tampered := []byte(token)
		tampered[len(tampered)/2] ^= 0x01
		_, err := issuer.Verify(string(tampered))
		assert.ErrorIs(t, err, ErrInvalidShareToken)
	})

	t.Run("different secret", func(t *testing.T) {
		other, err := NewShareTokenIssuer("ffffffffffffffffffffffffffffffff", time.Hour)
		require.NoError(t, err)
		_, err = other.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidShareToken)
	})
}
