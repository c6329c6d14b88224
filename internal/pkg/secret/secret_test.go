package secret_test

import (
	"strings"
	"testing"

	"github.com/daniel06264831/menuia/internal/pkg/errs"
	"github.com/daniel06264831/menuia/internal/pkg/secret"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndMatches(t *testing.T) {
	hash, err := secret.Hash("s3cret-pass")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, secret.Matches(hash, "s3cret-pass"))
	assert.False(t, secret.Matches(hash, "wrong"))
	assert.False(t, secret.Matches("", "s3cret-pass"))
}

func TestHash_Rejects(t *testing.T) {
	_, err := secret.Hash("")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = secret.Hash("abc")
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = secret.Hash(strings.Repeat("x", 100))
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
