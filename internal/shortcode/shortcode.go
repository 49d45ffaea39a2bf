package shortcode

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

const (
	// Length of every generated shortcode.
	Length = 6

	maxAttempts = 10

	letters = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
)

// ErrSpaceExhausted is returned when maxAttempts generated codes in a
// row were already taken. Collisions are vanishingly rare in a 62^6
// space, the bound just turns a latent infinite loop into a
// deterministic failure.
var ErrSpaceExhausted = errors.New("could not allocate shortcode")

// Generate draws Length characters uniformly from the alphanumeric
// alphabet.
func Generate() (string, error) {
	ret := make([]byte, Length)
	for i := 0; i < Length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
		if err != nil {
			return "", fmt.Errorf("random string generator error: %w", err)
		}
		ret[i] = letters[num.Int64()]
	}

	return string(ret), nil
}

// GenerateUnique retries Generate until exists reports the code free,
// up to the attempt budget.
func GenerateUnique(exists func(code string) bool) (string, error) {
	for i := 0; i < maxAttempts; i++ {
		code, err := Generate()
		if err != nil {
			return "", err
		}
		if !exists(code) {
			return code, nil
		}
	}

	return "", ErrSpaceExhausted
}
