package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"

	"credvault/internal/domain/credential"
)

const (
	keyLength        = 32 // 256 bit for AES-256
	pbkdf2Iterations = 100000
	maxAADLength     = 1 << 12
)

// ErrDecryption signals missing key material or a corrupt blob. Fatal for the
// requested operation; callers surface it, never swallow it.
var ErrDecryption = errors.New("credential decryption failed")

// Encryptor implements credential.Cipher with AES-256-GCM. The credential id
// and type are sealed into the blob as additional authenticated data, so a
// tampered association fails authentication on decrypt.
type Encryptor struct {
	key []byte
}

// New creates an Encryptor from a 32-byte hex key.
func New(keyHex string) (*Encryptor, error) {
	key, err := hex.DecodeString(keyHex)
	if err != nil || len(key) != keyLength {
		return nil, fmt.Errorf("encryption key must be %d bytes of hex", keyLength)
	}
	return &Encryptor{key: key}, nil
}

// NewFromPassphrase derives the key from a passphrase with PBKDF2-SHA256.
// The salt is a deployment-wide constant: the passphrase itself is the secret
// and the derived key must be stable across restarts.
func NewFromPassphrase(passphrase string) *Encryptor {
	key := pbkdf2.Key([]byte(passphrase), []byte("credvault.key.v1"), pbkdf2Iterations, keyLength, sha256.New)
	return &Encryptor{key: key}
}

// Encrypt seals a payload. Blob layout, hex encoded:
// [2-byte aad length][aad][nonce][ciphertext].
func (e *Encryptor) Encrypt(data credential.Data, credentialID, typeName string) (string, error) {
	plaintext, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	gcm, err := e.gcm()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	aad := []byte(credentialID + ":" + typeName)
	sealed := gcm.Seal(nil, nonce, plaintext, aad)

	blob := make([]byte, 0, 2+len(aad)+len(nonce)+len(sealed))
	blob = binary.BigEndian.AppendUint16(blob, uint16(len(aad)))
	blob = append(blob, aad...)
	blob = append(blob, nonce...)
	blob = append(blob, sealed...)

	return hex.EncodeToString(blob), nil
}

// Decrypt opens a blob produced by Encrypt.
func (e *Encryptor) Decrypt(blobHex string) (credential.Data, error) {
	blob, err := hex.DecodeString(blobHex)
	if err != nil {
		return nil, fmt.Errorf("%w: not hex encoded", ErrDecryption)
	}
	if len(blob) < 2 {
		return nil, fmt.Errorf("%w: blob too short", ErrDecryption)
	}

	aadLen := int(binary.BigEndian.Uint16(blob))
	if aadLen > maxAADLength || len(blob) < 2+aadLen {
		return nil, fmt.Errorf("%w: malformed header", ErrDecryption)
	}
	aad := blob[2 : 2+aadLen]
	rest := blob[2+aadLen:]

	gcm, err := e.gcm()
	if err != nil {
		return nil, err
	}
	if len(rest) < gcm.NonceSize() {
		return nil, fmt.Errorf("%w: blob too short", ErrDecryption)
	}

	nonce, sealed := rest[:gcm.NonceSize()], rest[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, sealed, aad)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryption, err)
	}

	var data credential.Data
	if err := json.Unmarshal(plaintext, &data); err != nil {
		return nil, fmt.Errorf("%w: payload is not an object", ErrDecryption)
	}
	return data, nil
}

func (e *Encryptor) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(e.key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}
	return gcm, nil
}
