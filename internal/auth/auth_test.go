package auth

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testKey() []byte {
	key := make([]byte, keyLength)
	for i := range key {
		key[i] = byte(i)
	}
	return key
}

// fakeClock is a movable time source.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("ChangeMe123!")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := VerifyPassword(hash, "ChangeMe123!")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.False(t, NeedsRehash(hash))
}

func TestHashPassword_Rejects(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)

	_, err = HashPassword(strings.Repeat("a", maxPasswordLength+1))
	assert.Error(t, err)
}

func TestVerifyPassword_Bcrypt(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	ok, err := VerifyPassword(string(legacy), "hunter2")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(string(legacy), "hunter3")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.True(t, NeedsRehash(string(legacy)))
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	for _, h := range []string{"", "plain", "$argon2id$v=19$garbage", "$2b$not-a-hash"} {
		ok, err := VerifyPassword(h, "anything")
		assert.NoError(t, err, h)
		assert.False(t, ok, h)
	}
}

func TestLoadOrGenerateKey_PersistsKey(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	first, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Len(t, first, keyLength)

	info, err := os.Stat(filepath.Join(dir, keyFileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	second, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLoadOrGenerateKey_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, keyFileName), []byte("short"), 0o600))

	_, err := LoadOrGenerateKey(dir)
	assert.Error(t, err)
}

func TestParseKeyHex(t *testing.T) {
	key, err := ParseKeyHex(strings.Repeat("ab", 32) + "\n")
	require.NoError(t, err)
	assert.Len(t, key, keyLength)

	_, err = ParseKeyHex(strings.Repeat("zz", 32))
	assert.Error(t, err)
}

func TestSessionIssuer_RoundTrip(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	issuer, err := NewSessionIssuer(testKey(), 7*24*time.Hour, WithClock(clock.Now))
	require.NoError(t, err)

	token, expiresAt, err := issuer.Issue("user-1", "admin@example.com")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(token, "v4.local."))
	assert.Equal(t, clock.t.Add(7*24*time.Hour), expiresAt)

	clock.t = clock.t.Add(6 * 24 * time.Hour)
	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "user-1", claims.Subject)
	assert.True(t, strings.HasPrefix(claims.TokenID, "sess-"))
}

func TestSessionIssuer_Expired(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	issuer, err := NewSessionIssuer(testKey(), 7*24*time.Hour, WithClock(clock.Now))
	require.NoError(t, err)

	token, _, err := issuer.Issue("user-1", "admin@example.com")
	require.NoError(t, err)

	clock.t = clock.t.Add(7*24*time.Hour + time.Second)
	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionIssuer_RejectsForeignAndGarbageTokens(t *testing.T) {
	issuer, err := NewSessionIssuer(testKey(), time.Hour)
	require.NoError(t, err)

	otherKey := testKey()
	otherKey[0] ^= 0xff
	other, err := NewSessionIssuer(otherKey, time.Hour)
	require.NoError(t, err)

	foreign, _, err := other.Issue("user-1", "a@b.c")
	require.NoError(t, err)

	for _, token := range []string{"", "garbage", "v4.local.AAAA", foreign} {
		_, err := issuer.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidSession)
	}
}

func TestNewSessionIssuer_Validation(t *testing.T) {
	_, err := NewSessionIssuer([]byte("short"), time.Hour)
	assert.Error(t, err)

	_, err = NewSessionIssuer(testKey(), 0)
	assert.Error(t, err)
}
