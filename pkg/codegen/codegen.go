package codegen

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

const (
	// ConfirmationAlphabet omits I, O, 0 and 1 so codes can be read over the phone
	ConfirmationAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	ConfirmationLength   = 6

	TokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	TokenLength   = 32
)

var ErrEmptyAlphabet = errors.New("codegen: empty alphabet")

// Generator produces random identifiers from crypto/rand
type Generator struct{}

// New creates a generator reading from crypto/rand
func New() *Generator {
	return &Generator{}
}

// ConfirmationCode returns a short human-facing booking code
func (g *Generator) ConfirmationCode() (string, error) {
	return Random(ConfirmationAlphabet, ConfirmationLength)
}

// GuestToken returns an unguessable token for the guest management link
func (g *Generator) GuestToken() (string, error) {
	return Random(TokenAlphabet, TokenLength)
}

// Random draws length characters uniformly from alphabet
func Random(alphabet string, length int) (string, error) {
	if len(alphabet) == 0 {
		return "", ErrEmptyAlphabet
	}
	max := big.NewInt(int64(len(alphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("codegen: read random: %w", err)
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out), nil
}
