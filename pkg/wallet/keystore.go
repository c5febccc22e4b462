package wallet

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/blocto/solana-go-sdk/types"
	"github.com/gagliardetto/solana-go"
)

// Keystore owns the demo creator identity and mints the synthetic chain
// references (creator address, token mint addresses, transaction
// signatures) attached to created tokens. Keys are real ed25519 pairs so
// the references look and parse like on-chain ones, but nothing is ever
// submitted to a chain.
type Keystore struct {
	dir     string
	creator types.Account
}

// Entry is the on-disk form of an encrypted key.
type Entry struct {
	Address      string `json:"address"`
	EncryptedKey string `json:"encrypted_key"`
	Version      int    `json:"version"`
}

// New creates a keystore rooted at dir with a freshly generated creator
// account.
func New(dir string) *Keystore {
	return &Keystore{
		dir:     dir,
		creator: types.NewAccount(),
	}
}

// Open restores a keystore whose creator entry was previously saved under
// dir.
func Open(dir, address, password string) (*Keystore, error) {
	data, err := os.ReadFile(filepath.Join(dir, address+".json"))
	if err != nil {
		return nil, fmt.Errorf("failed to read keystore entry: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal keystore entry: %w", err)
	}
	if entry.Address != address {
		return nil, fmt.Errorf("address mismatch: expected %s, got %s", address, entry.Address)
	}

	privateKey, err := decryptKey(entry.EncryptedKey, password)
	if err != nil {
		return nil, err
	}

	account, err := types.AccountFromBytes(privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to restore account: %w", err)
	}

	return &Keystore{dir: dir, creator: account}, nil
}

// Save persists the creator key under dir, encrypted with the password.
func (k *Keystore) Save(password string) error {
	encrypted, err := encryptKey(k.creator.PrivateKey, password)
	if err != nil {
		return err
	}

	entry := Entry{
		Address:      k.creator.PublicKey.ToBase58(),
		EncryptedKey: encrypted,
		Version:      1,
	}
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal keystore entry: %w", err)
	}

	if err := os.MkdirAll(k.dir, 0700); err != nil {
		return fmt.Errorf("failed to create keystore directory: %w", err)
	}
	path := filepath.Join(k.dir, entry.Address+".json")
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write keystore entry: %w", err)
	}
	return nil
}

// CreatorAddress returns the base58 address of the demo creator.
func (k *Keystore) CreatorAddress() string {
	return k.creator.PublicKey.ToBase58()
}

// NewMintAddress returns a fresh base58 mint address for a created token.
func (k *Keystore) NewMintAddress() string {
	return solana.NewWallet().PublicKey().String()
}

// NewTransactionRef returns a synthetic transaction signature: the creator
// key signing a unique nonce, rendered base58 like a real signature.
func (k *Keystore) NewTransactionRef() string {
	nonce := make([]byte, 16)
	binary.BigEndian.PutUint64(nonce, uint64(time.Now().UnixNano()))
	if _, err := io.ReadFull(rand.Reader, nonce[8:]); err != nil {
		// Timestamp alone still yields a unique-enough demo reference.
		copy(nonce[8:], nonce[:8])
	}

	var sig solana.Signature
	copy(sig[:], k.creator.Sign(nonce))
	return sig.String()
}

// deriveKey turns a password into a 32-byte AES-256 key.
func deriveKey(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return sum[:]
}

// encryptKey encrypts a private key with AES-256-GCM, nonce prepended.
func encryptKey(privateKey []byte, password string) (string, error) {
	block, err := aes.NewCipher(deriveKey(password))
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("failed to create GCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nonce, nonce, privateKey, nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// decryptKey reverses encryptKey.
func decryptKey(encrypted, password string) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}

	block, err := aes.NewCipher(deriveKey(password))
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}
	nonce, body := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]

	plaintext, err := gcm.Open(nil, nonce, body, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}
	return plaintext, nil
}
