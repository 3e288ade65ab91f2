package password_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"rentopia/shared/password"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name    string
		plain   string
		wantErr error
	}{
		{name: "regular password", plain: "hunter2-rentals"},
		{name: "unicode password", plain: "sécurité-日本"},
		{name: "exactly 72 bytes", plain: strings.Repeat("a", 72)},
		{name: "empty", plain: "", wantErr: password.ErrEmpty},
		{name: "too long", plain: strings.Repeat("a", 73), wantErr: password.ErrTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := password.Hash(tt.plain)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, hash)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, tt.plain, hash)

			cost, err := bcrypt.Cost([]byte(hash))
			require.NoError(t, err)
			assert.Equal(t, password.Cost, cost)
		})
	}
}

func TestHash_Salted(t *testing.T) {
	first, err := password.Hash("same-password")
	require.NoError(t, err)

	second, err := password.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerify(t *testing.T) {
	hash, err := password.Hash("correct horse")
	require.NoError(t, err)

	tests := []struct {
		name    string
		plain   string
		hash    string
		wantErr error
		anyErr  bool
	}{
		{name: "match", plain: "correct horse", hash: hash},
		{name: "wrong password", plain: "battery staple", hash: hash, wantErr: password.ErrMismatch},
		{name: "case sensitive", plain: "Correct Horse", hash: hash, wantErr: password.ErrMismatch},
		{name: "empty password", plain: "", hash: hash, wantErr: password.ErrMismatch},
		{name: "empty hash", plain: "correct horse", hash: "", wantErr: password.ErrMismatch},
		{name: "malformed hash", plain: "correct horse", hash: "not-a-bcrypt-hash", anyErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.plain, tt.hash)

			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.anyErr:
				require.Error(t, err)
				assert.NotErrorIs(t, err, password.ErrMismatch)
			default:
				require.NoError(t, err)
			}
		})
	}
}

func TestNeedsRehash(t *testing.T) {
	current, err := password.Hash("guest-password")
	require.NoError(t, err)

	weak, err := bcrypt.GenerateFromPassword([]byte("guest-password"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.False(t, password.NeedsRehash(current))
	assert.True(t, password.NeedsRehash(string(weak)))
	assert.False(t, password.NeedsRehash("garbage"))
}
