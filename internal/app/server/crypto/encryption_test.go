package crypto

import (
	"strings"
	"testing"

	"credvault/internal/domain/credential"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "6368616e676520746869732070617373776f726420746f206120736563726574"

func TestEncryptor_RoundTrip(t *testing.T) {
	enc, err := New(testKey)
	require.NoError(t, err)

	data := credential.Data{
		"user":     "alice",
		"password": "hunter2",
		"nested":   map[string]any{"token": "abc"},
	}

	blob, err := enc.Encrypt(data, "cred-1", "postgres")
	require.NoError(t, err)
	assert.NotContains(t, blob, "hunter2")

	decrypted, err := enc.Decrypt(blob)
	require.NoError(t, err)
	assert.Equal(t, "alice", decrypted["user"])
	assert.Equal(t, "hunter2", decrypted["password"])

	nested, ok := decrypted["nested"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "abc", nested["token"])
}

func TestEncryptor_TamperedBlobFails(t *testing.T) {
	enc, err := New(testKey)
	require.NoError(t, err)

	blob, err := enc.Encrypt(credential.Data{"secret": "x"}, "cred-1", "postgres")
	require.NoError(t, err)

	// Flip one hex digit in the ciphertext tail.
	last := blob[len(blob)-1]
	flipped := "0"
	if last == '0' {
		flipped = "1"
	}
	tampered := blob[:len(blob)-1] + flipped

	_, err = enc.Decrypt(tampered)
	assert.ErrorIs(t, err, ErrDecryption)
}

func TestEncryptor_WrongKeyFails(t *testing.T) {
	enc, err := New(testKey)
	require.NoError(t, err)
	other, err := New(strings.Repeat("ab", 32))
	require.NoError(t, err)

	blob, err := enc.Encrypt(credential.Data{"secret": "x"}, "cred-1", "postgres")
	require.NoError(t, err)

	_, err = other.Decrypt(blob)
	assert.ErrorIs(t, err, ErrDecryption)
}

func TestEncryptor_GarbageBlobFails(t *testing.T) {
	enc, err := New(testKey)
	require.NoError(t, err)

	_, err = enc.Decrypt("not-hex")
	assert.ErrorIs(t, err, ErrDecryption)

	_, err = enc.Decrypt("00")
	assert.ErrorIs(t, err, ErrDecryption)
}

func TestEncryptor_InvalidKey(t *testing.T) {
	_, err := New("deadbeef")
	assert.Error(t, err)
}

func TestNewFromPassphrase_Deterministic(t *testing.T) {
	a := NewFromPassphrase("correct horse battery staple")
	b := NewFromPassphrase("correct horse battery staple")

	blob, err := a.Encrypt(credential.Data{"secret": "x"}, "cred-1", "postgres")
	require.NoError(t, err)

	decrypted, err := b.Decrypt(blob)
	require.NoError(t, err)
	assert.Equal(t, "x", decrypted["secret"])
}
