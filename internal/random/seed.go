package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// ErrEmptyPhrase - seed-фраза пустая
var ErrEmptyPhrase = errors.New("seed phrase is empty")

// NewSeed генерирует seed через crypto/rand
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// SeedFromPhrase превращает фразу игрока в seed.
// Хэш ключевой (BLAKE2b-256 с key), поэтому одна и та же фраза дает
// одинаковое прохождение только на серверах с одним ключом.
// Пробелы по краям и регистр не учитываются.
func SeedFromPhrase(phrase string, key []byte) (int64, error) {
	normalized := strings.ToLower(strings.TrimSpace(phrase))
	if normalized == "" {
		return 0, ErrEmptyPhrase
	}

	h, err := blake2b.New256(key)
	if err != nil {
		return 0, fmt.Errorf("init blake2b: %w", err)
	}
	h.Write([]byte(normalized))
	sum := h.Sum(nil)

	return int64(binary.LittleEndian.Uint64(sum[:8])), nil
}
