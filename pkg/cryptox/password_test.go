package cryptox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "cryptox-test")
	if err != nil {
		panic(err)
	}
	SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple", "password123"},
		{"symbols", "P@ssw0rd!#$%^&*()"},
		{"long", strings.Repeat("a", 128)},
		{"unicode", "пароль密码"},
		{"whitespace", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

			parts := strings.Split(hash, "$")
			require.Len(t, parts, 6)
			require.Equal(t, "m=19456,t=2,p=1", parts[3])
			require.NotEmpty(t, parts[4])
			require.NotEmpty(t, parts[5])

			require.NoError(t, VerifyPassword(tt.password, hash))
		})
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	a, err := HashPassword("same-password")
	require.NoError(t, err)
	b, err := HashPassword("same-password")
	require.NoError(t, err)

	require.NotEqual(t, a, b)
	require.NoError(t, VerifyPassword("same-password", a))
	require.NoError(t, VerifyPassword("same-password", b))
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	for _, candidate := range []string{"", "correct", "Correct horse", "correct horse "} {
		require.ErrorIs(t, VerifyPassword(candidate, hash), ErrPasswordMismatch, candidate)
	}
}

func TestVerifyPassword_InvalidHashFormat(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"plain text", "testpass123"},
		{"bcrypt", "$2a$10$abcdefghijklmnopqrstuv"},
		{"wrong algorithm", "$argon2i$v=19$m=19456,t=2,p=1$c2FsdA$a2V5"},
		{"wrong version", "$argon2id$v=16$m=19456,t=2,p=1$c2FsdA$a2V5"},
		{"bad params", "$argon2id$v=19$m=x,t=2,p=1$c2FsdA$a2V5"},
		{"bad salt", "$argon2id$v=19$m=19456,t=2,p=1$!!!$a2V5"},
		{"empty key", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, VerifyPassword("anything", tt.hash), ErrInvalidHash)
		})
	}
}

func TestPepper_PersistedAcrossReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pepper")
	prev := pepperFile
	SetPepperPath(path)
	t.Cleanup(func() { SetPepperPath(prev) })

	first, err := Pepper()
	require.NoError(t, err)
	require.NotEmpty(t, first)

	hash, err := HashPassword("testpass123")
	require.NoError(t, err)

	// Dropping the cache forces a read from disk.
	SetPepperPath(path)
	second, err := Pepper()
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.NoError(t, VerifyPassword("testpass123", hash))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestPepper_DifferentPepperFailsVerification(t *testing.T) {
	prev := pepperFile
	t.Cleanup(func() { SetPepperPath(prev) })

	dir := t.TempDir()
	SetPepperPath(filepath.Join(dir, "a"))
	hash, err := HashPassword("testpass123")
	require.NoError(t, err)

	SetPepperPath(filepath.Join(dir, "b"))
	require.ErrorIs(t, VerifyPassword("testpass123", hash), ErrPasswordMismatch)
}

func TestPepper_EmptyFile(t *testing.T) {
	prev := pepperFile
	t.Cleanup(func() { SetPepperPath(prev) })

	path := filepath.Join(t.TempDir(), "pepper")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o600))
	SetPepperPath(path)

	_, err := Pepper()
	require.Error(t, err)

	_, err = HashPassword("testpass123")
	require.Error(t, err)
}
