package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("shop-1", "shop", time.Hour)
	require.NoError(t, err)

	sub, role, err := ExtractActorFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "shop-1", sub)
	assert.Equal(t, "shop", role)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken("cust-1", "customer", -time.Minute)
	require.NoError(t, err)

	_, _, err = ExtractActorFromToken(token)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	_, _, err := ExtractActorFromToken("not-a-token")
	assert.Error(t, err)
}
