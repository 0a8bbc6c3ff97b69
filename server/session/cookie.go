package session

import "net/http"

// SYNC-QUORUM-SESSION-COOKIE
const CookieName = "session"

// CookieMaxAge mirrors TokenTTL, in seconds.
const CookieMaxAge = 86400

// NewCookie wraps a token in our session cookie.
func NewCookie(token string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   CookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	}
}

// ClearCookie returns a cookie that instructs the browser to drop the session.
// Logout is nothing more than this; the token itself remains valid until expiry.
func ClearCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	}
}

// TokenFromRequest extracts the session token from the cookie, or from the
// X-Session-Cookie header. The header form exists for clients that want to
// check their session status without juggling a cookie jar.
func TokenFromRequest(r *http.Request) string {
	if cookie, _ := r.Cookie(CookieName); cookie != nil {
		return cookie.Value
	}
	return r.Header.Get("X-Session-Cookie")
}
