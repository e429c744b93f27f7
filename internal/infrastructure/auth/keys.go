package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
)

var errNotRSA = errors.New("PEM block does not hold an RSA private key")

// LoadRSAPrivateKeyFromPEM accepts PKCS#1 ("RSA PRIVATE KEY") and PKCS#8 ("PRIVATE KEY") blocks.
func LoadRSAPrivateKeyFromPEM(pemBytes []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, errors.New("failed to decode PEM block")
	}
	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, errNotRSA
	}
	return key, nil
}

// LoadOrGenerateKey reads the PEM key at path. An empty path yields a fresh 2048-bit key, so tokens
// do not survive a restart; generated reports which happened.
func LoadOrGenerateKey(path string) (key *rsa.PrivateKey, generated bool, err error) {
	if path == "" {
		key, err = rsa.GenerateKey(rand.Reader, 2048)
		return key, true, err
	}
	pemBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	key, err = LoadRSAPrivateKeyFromPEM(pemBytes)
	return key, false, err
}
