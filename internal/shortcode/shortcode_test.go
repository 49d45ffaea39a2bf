package shortcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	seen := make(map[string]struct{})

	for i := 0; i < 100; i++ {
		code, err := Generate()
		require.NoError(t, err)
		assert.Len(t, code, Length)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(letters, r), "unexpected rune %q", r)
		}
		seen[code] = struct{}{}
	}

	// 100 draws from a 62^6 space colliding down to a handful would
	// mean a broken generator.
	assert.Greater(t, len(seen), 90)
}

func TestGenerateUnique(t *testing.T) {
	tests := []struct {
		name    string
		exists  func(code string) bool
		wantErr error
	}{
		{
			name:    "free space",
			exists:  func(code string) bool { return false },
			wantErr: nil,
		},
		{
			name:    "exhausted space",
			exists:  func(code string) bool { return true },
			wantErr: ErrSpaceExhausted,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			code, err := GenerateUnique(tt.exists)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, code)
				return
			}
			require.NoError(t, err)
			assert.Len(t, code, Length)
			assert.False(t, tt.exists(code))
		})
	}
}

func TestGenerateUniqueRetries(t *testing.T) {
	attempts := 0
	code, err := GenerateUnique(func(string) bool {
		attempts++
		return attempts < 3
	})

	require.NoError(t, err)
	assert.Len(t, code, Length)
	assert.Equal(t, 3, attempts)
}
