package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hanahafi/redux-stack-ecommerce/internal/apperr"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/models"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestService(t *testing.T, clock *fakeClock, opts ...Option) *TokenService {
	t.Helper()
	opts = append([]Option{WithClock(clock.Now)}, opts...)
	svc, err := NewTokenService([]byte("test-secret"), opts...)
	require.NoError(t, err)
	return svc
}

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	_, err := NewTokenService(nil)
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestService(t, clock)

	for _, role := range []models.Role{models.RoleAdmin, models.RoleSeller, models.RoleBuyer} {
		tok, exp, err := svc.Issue(42, role)
		require.NoError(t, err)
		assert.Equal(t, clock.t.Add(24*time.Hour), exp)

		id, err := svc.Verify(tok)
		require.NoError(t, err)
		assert.Equal(t, Identity{UserID: 42, Role: role}, id)
	}
}

func TestVerifyExpired(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestService(t, clock)

	tok, _, err := svc.Issue(7, models.RoleBuyer)
	require.NoError(t, err)

	clock.Advance(23*time.Hour + 59*time.Minute)
	_, err = svc.Verify(tok)
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)
	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	svc := newTestService(t, clock)
	other, err := NewTokenService([]byte("another-secret"), WithClock(clock.Now))
	require.NoError(t, err)

	tok, _, err := svc.Issue(1, models.RoleAdmin)
	require.NoError(t, err)
	forged, _, err := other.Issue(1, models.RoleAdmin)
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	forgedParts := strings.Split(forged, ".")
	tampered := parts[0] + "." + parts[1] + "." + forgedParts[2]

	_, err = svc.Verify(tampered)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)

	_, err = svc.Verify(forged)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}

func TestVerifyRejectsAlteredPayload(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	svc := newTestService(t, clock)

	buyerTok, _, err := svc.Issue(5, models.RoleBuyer)
	require.NoError(t, err)
	adminTok, _, err := svc.Issue(5, models.RoleAdmin)
	require.NoError(t, err)

	// admin payload with the buyer's signature
	b := strings.Split(buyerTok, ".")
	a := strings.Split(adminTok, ".")
	_, err = svc.Verify(b[0] + "." + a[1] + "." + b[2])
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}

func TestVerifyRejectsNoneAlgorithm(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	svc := newTestService(t, clock)

	claims := &Claims{
		UserID: 1,
		Role:   models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}

func TestVerifyRejectsUnknownRole(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	svc := newTestService(t, clock)

	claims := &Claims{
		UserID: 1,
		Role:   models.Role("root"),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}

func TestVerifyMalformedAndMissing(t *testing.T) {
	svc := newTestService(t, &fakeClock{t: time.Now()})

	_, err := svc.Verify("")
	assert.ErrorIs(t, err, apperr.ErrMissingToken)

	_, err = svc.Verify("not-a-token")
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}

func TestRevokeWithoutDenylistIsNoop(t *testing.T) {
	svc := newTestService(t, &fakeClock{t: time.Now()})
	tok, _, err := svc.Issue(3, models.RoleSeller)
	require.NoError(t, err)

	revoked, err := svc.Revoke(tok)
	require.NoError(t, err)
	assert.False(t, revoked)

	_, err = svc.Verify(tok)
	assert.NoError(t, err)
}

func TestRevokeWithDenylist(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}
	deny := NewDenylist(clock.Now)
	svc := newTestService(t, clock, WithDenylist(deny))

	tok, _, err := svc.Issue(3, models.RoleSeller)
	require.NoError(t, err)
	other, _, err := svc.Issue(3, models.RoleSeller)
	require.NoError(t, err)

	revoked, err := svc.Revoke(tok)
	require.NoError(t, err)
	assert.True(t, revoked)

	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
	_, err = svc.Verify(other)
	assert.NoError(t, err, "revocation is per token id")

	clock.Advance(25 * time.Hour)
	assert.Equal(t, 1, deny.Purge())
	assert.Equal(t, 0, deny.Len())
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, CheckPassword(hash, "s3cret"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
