package veil

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"io"
	"sync"
)

// Encryptor handles the reversible half of pseudonymization. Values
// encrypted during an anonymization run can only be recovered by the key
// holder.
type Encryptor interface {
	// Encrypt encrypts plaintext and returns ciphertext.
	Encrypt(plaintext []byte) ([]byte, error)

	// Decrypt decrypts ciphertext and returns plaintext.
	Decrypt(ciphertext []byte) ([]byte, error)
}

// aesEncryptor implements AES-GCM encryption.
type aesEncryptor struct {
	gcm cipher.AEAD
}

// AES returns an AES-GCM encryptor.
// Key must be 16, 24, or 32 bytes for AES-128, AES-192, or AES-256.
func AES(key []byte) (Encryptor, error) {
	if len(key) != 16 && len(key) != 24 && len(key) != 32 {
		return nil, invalidArg("encrypt", "key must be 16, 24, or 32 bytes, got %d", len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &aesEncryptor{gcm: gcm}, nil
}

func (e *aesEncryptor) Encrypt(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, e.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	// Prepend nonce to ciphertext
	return e.gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func (e *aesEncryptor) Decrypt(ciphertext []byte) ([]byte, error) {
	nonceSize := e.gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, invalidArg("encrypt", "ciphertext too short")
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	return e.gcm.Open(nil, nonce, ciphertext, nil)
}

// encryptProvider pseudonymizes values with AES-GCM. Encryptors are cached
// per key, so the cipher is built once per run rather than once per field.
type encryptProvider struct {
	mu         sync.RWMutex
	encryptors map[string]Encryptor
}

func newEncryptProvider() *encryptProvider {
	return &encryptProvider{encryptors: make(map[string]Encryptor)}
}

// AlterValue encrypts the value and returns it base64-encoded, nonce
// prepended.
//
// Arguments: key (required, hex-encoded AES key).
func (p *encryptProvider) AlterValue(original string, args Args) (Value, error) {
	keyHex, ok := args.String("key")
	if !ok || keyHex == "" {
		return Null(), invalidArg("encrypt", "requires a hex-encoded key")
	}

	enc, err := p.forKey(keyHex)
	if err != nil {
		return Null(), err
	}

	ciphertext, err := enc.Encrypt([]byte(original))
	if err != nil {
		return Null(), err
	}
	return NewValue(base64.StdEncoding.EncodeToString(ciphertext)), nil
}

func (p *encryptProvider) forKey(keyHex string) (Encryptor, error) {
	// Fast path: read-lock cache check.
	p.mu.RLock()
	if enc, ok := p.encryptors[keyHex]; ok {
		p.mu.RUnlock()
		return enc, nil
	}
	p.mu.RUnlock()

	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, invalidArg("encrypt", "key is not hexadecimal")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// Double-check pattern
	if enc, ok := p.encryptors[keyHex]; ok {
		return enc, nil
	}

	enc, err := AES(key)
	if err != nil {
		return nil, err
	}
	p.encryptors[keyHex] = enc
	return enc, nil
}
