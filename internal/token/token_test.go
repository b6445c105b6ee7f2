package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2003dinijay/ChatStack/internal/common"
)

var secret = []byte("test-secret")

func TestIssueAndVerify(t *testing.T) {
	tok, err := Issue(42, secret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, err := Verify(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestVerify_Expired(t *testing.T) {
	tok, err := Issue(42, secret, -time.Minute)
	require.NoError(t, err)

	_, err = Verify(tok, secret)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	tok, err := Issue(42, []byte("other-secret"), time.Hour)
	require.NoError(t, err)

	_, err = Verify(tok, secret)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := Verify(tok, secret)
		assert.ErrorIs(t, err, common.ErrInvalidToken, "token %q", tok)
	}
}
