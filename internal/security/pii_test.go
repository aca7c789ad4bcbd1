package security

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = hex.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))

func TestAESEncryptor_Roundtrip(t *testing.T) {
	e, err := NewAESEncryptor(testKey)
	require.NoError(t, err)

	envelope, err := e.Encrypt("123-45-6789")
	require.NoError(t, err)
	assert.NotEqual(t, "123-45-6789", envelope)

	plaintext, err := e.Decrypt(envelope)
	require.NoError(t, err)
	assert.Equal(t, "123-45-6789", plaintext)
}

func TestAESEncryptor_DistinctEnvelopes(t *testing.T) {
	e, err := NewAESEncryptor(testKey)
	require.NoError(t, err)

	first, err := e.Encrypt("123-45-6789")
	require.NoError(t, err)
	second, err := e.Encrypt("123-45-6789")
	require.NoError(t, err)

	// fresh nonce per encryption
	assert.NotEqual(t, first, second)
}

func TestNewAESEncryptor_BadKey(t *testing.T) {
	_, err := NewAESEncryptor("")
	require.Error(t, err)

	_, err = NewAESEncryptor("not-hex")
	require.Error(t, err)

	// wrong length for AES
	_, err = NewAESEncryptor(hex.EncodeToString([]byte("short")))
	require.Error(t, err)
}

func TestAESEncryptor_BadEnvelope(t *testing.T) {
	e, err := NewAESEncryptor(testKey)
	require.NoError(t, err)

	_, err = e.Decrypt("not-base64!!!")
	require.Error(t, err)

	_, err = e.Decrypt("c2hvcnQ=")
	require.Error(t, err)
}
