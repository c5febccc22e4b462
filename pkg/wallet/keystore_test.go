package wallet

import (
	"testing"

	"github.com/blocto/solana-go-sdk/types"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeystore(t *testing.T) {
	dir := t.TempDir()
	ks := New(dir)

	t.Run("creator account", func(t *testing.T) {
		assert.NotEmpty(t, ks.CreatorAddress())
		assert.Equal(t, 64, len(ks.creator.PrivateKey), "private key should be 64 bytes")

		_, err := solana.PublicKeyFromBase58(ks.CreatorAddress())
		assert.NoError(t, err, "creator address should be valid base58")
	})

	t.Run("encrypt and decrypt private key", func(t *testing.T) {
		password := "test-password"
		encrypted, err := encryptKey(ks.creator.PrivateKey, password)
		require.NoError(t, err)
		assert.NotEmpty(t, encrypted)

		decrypted, err := decryptKey(encrypted, password)
		require.NoError(t, err)
		assert.Equal(t, []byte(ks.creator.PrivateKey), decrypted)

		_, err = decryptKey(encrypted, "wrong-password")
		assert.Error(t, err)
	})

	t.Run("save and reopen", func(t *testing.T) {
		password := "test-password"
		require.NoError(t, ks.Save(password))

		restored, err := Open(dir, ks.CreatorAddress(), password)
		require.NoError(t, err)
		assert.Equal(t, ks.CreatorAddress(), restored.CreatorAddress())

		_, err = Open(dir, ks.CreatorAddress(), "wrong-password")
		assert.Error(t, err)

		_, err = Open(dir, types.NewAccount().PublicKey.ToBase58(), password)
		assert.Error(t, err, "unknown address has no entry")
	})
}

func TestSyntheticReferences(t *testing.T) {
	ks := New(t.TempDir())

	t.Run("mint addresses are fresh valid pubkeys", func(t *testing.T) {
		a, b := ks.NewMintAddress(), ks.NewMintAddress()
		assert.NotEqual(t, a, b)

		for _, addr := range []string{a, b} {
			_, err := solana.PublicKeyFromBase58(addr)
			assert.NoError(t, err)
		}
	})

	t.Run("transaction refs are unique signatures", func(t *testing.T) {
		a, b := ks.NewTransactionRef(), ks.NewTransactionRef()
		assert.NotEqual(t, a, b)
		assert.NotEmpty(t, a)

		_, err := solana.SignatureFromBase58(a)
		assert.NoError(t, err)
	})
}
