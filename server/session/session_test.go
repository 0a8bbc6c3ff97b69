package session

import (
	"encoding/base64"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	s, err := NewService("unit-test-secret")
	require.NoError(t, err)
	return s
}

func TestNewServiceRequiresSecret(t *testing.T) {
	_, err := NewService("")
	require.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	s := newTestService(t)
	for _, role := range []Role{RoleInvestor, RoleAdmin, RoleDeck} {
		token, issued, err := s.Issue("acme-admin", role)
		require.NoError(t, err)
		payload := s.Verify(token)
		require.NotNil(t, payload)
		require.Equal(t, issued, payload)
		require.Equal(t, "acme-admin", payload.Slug)
		require.Equal(t, role, payload.Role)
		require.Greater(t, payload.Exp, time.Now().UnixMilli())
		require.Len(t, payload.Nonce, 64)
	}
}

func TestIssueValidation(t *testing.T) {
	s := newTestService(t)
	_, _, err := s.Issue("", RoleAdmin)
	require.Error(t, err)
	_, _, err = s.Issue("acme", Role("superuser"))
	require.Error(t, err)
}

func TestNonceIsFresh(t *testing.T) {
	s := newTestService(t)
	t1, _, err := s.Issue("acme", RoleInvestor)
	require.NoError(t, err)
	t2, _, err := s.Issue("acme", RoleInvestor)
	require.NoError(t, err)
	require.NotEqual(t, t1, t2)
}

// Flipping any single character of the token, in either the payload or the
// signature portion, must cause verification to fail.
func TestTamperDetection(t *testing.T) {
	s := newTestService(t)
	token, _, err := s.Issue("acme-admin", RoleAdmin)
	require.NoError(t, err)
	require.NotNil(t, s.Verify(token))

	for i := 0; i < len(token); i++ {
		if token[i] == '.' {
			continue
		}
		flipped := byte('A')
		if token[i] == 'A' {
			flipped = 'B'
		}
		corrupt := token[:i] + string(flipped) + token[i+1:]
		require.Nil(t, s.Verify(corrupt), "corrupting byte %v should invalidate the token", i)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	s := newTestService(t)
	// Correctly signed token whose exp is in the past
	payload := Payload{
		Slug:  "acme-admin",
		Role:  RoleAdmin,
		Exp:   time.Now().Add(-time.Minute).UnixMilli(),
		Nonce: "abc123",
	}
	raw, err := json.Marshal(&payload)
	require.NoError(t, err)
	encoded := base64.RawURLEncoding.EncodeToString(raw)
	token := encoded + "." + s.sign(encoded)
	require.Nil(t, s.Verify(token))
}

func TestMalformedTokens(t *testing.T) {
	s := newTestService(t)
	for _, token := range []string{"", "no-dot", "a.b.c", ".", "a.", ".b", "..", "!!.!!"} {
		require.Nil(t, s.Verify(token), "token '%v' should be invalid", token)
	}
}

func TestSecretRotationInvalidatesTokens(t *testing.T) {
	s1 := newTestService(t)
	s2, err := NewService("a-different-secret")
	require.NoError(t, err)
	token, _, err := s1.Issue("acme-admin", RoleAdmin)
	require.NoError(t, err)
	require.NotNil(t, s1.Verify(token))
	require.Nil(t, s2.Verify(token))
}

func TestTokenShape(t *testing.T) {
	s := newTestService(t)
	token, _, err := s.Issue("acme-admin", RoleAdmin)
	require.NoError(t, err)
	parts := strings.Split(token, ".")
	require.Len(t, parts, 2)
	raw, err := base64.RawURLEncoding.DecodeString(parts[0])
	require.NoError(t, err)
	payload := Payload{}
	require.NoError(t, json.Unmarshal(raw, &payload))
	require.Equal(t, "acme-admin", payload.Slug)
}

func TestCookieAttributes(t *testing.T) {
	cookie := NewCookie("tok123", true)
	require.Equal(t, CookieName, cookie.Name)
	require.Equal(t, "tok123", cookie.Value)
	require.Equal(t, "/", cookie.Path)
	require.Equal(t, CookieMaxAge, cookie.MaxAge)
	require.True(t, cookie.HttpOnly)
	require.True(t, cookie.Secure)

	cleared := ClearCookie(true)
	require.Equal(t, CookieName, cleared.Name)
	require.Less(t, cleared.MaxAge, 0)
}

func TestTokenFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/auth/whoami", nil)
	require.Equal(t, "", TokenFromRequest(r))

	r = httptest.NewRequest("GET", "/api/auth/whoami", nil)
	r.Header.Set("X-Session-Cookie", "header-token")
	require.Equal(t, "header-token", TokenFromRequest(r))

	// The cookie wins over the header
	r.AddCookie(NewCookie("cookie-token", false))
	require.Equal(t, "cookie-token", TokenFromRequest(r))
}
