package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/quorumhq/quorum/pkg/rando"
)

// Role is the coarse authorization class carried inside a session token.
type Role string

const (
	RoleInvestor Role = "investor"
	RoleAdmin    Role = "admin"
	RoleDeck     Role = "deck"
)

func (r Role) IsValid() bool {
	return r == RoleInvestor || r == RoleAdmin || r == RoleDeck
}

// TokenTTL is how long an issued token remains valid.
const TokenTTL = 24 * time.Hour

// Payload is the content of a session token. It is never persisted server-side;
// the signature on the token is the only thing that makes it trustworthy.
type Payload struct {
	Slug  string `json:"slug"`  // Identity of the principal (eg "acme-admin")
	Role  Role   `json:"role"`  // investor, admin, or deck
	Exp   int64  `json:"exp"`   // Expiry, unix milliseconds
	Nonce string `json:"nonce"` // Random per-issuance value
}

// Expired returns true if the payload's expiry time has passed.
func (p *Payload) Expired(now time.Time) bool {
	return p.Exp < now.UnixMilli()
}

// Service issues and verifies signed session tokens.
// Tokens are stateless: there is no session table, and no revocation other
// than expiry or rotating the secret.
type Service struct {
	secret []byte
}

// NewService creates a token service from the shared HMAC secret.
// An empty secret is a deployment error, so we refuse to start.
func NewService(secret string) (*Service, error) {
	if secret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is not set")
	}
	return &Service{secret: []byte(secret)}, nil
}

// Issue creates a signed token for the given principal, and returns the token
// together with the payload that was signed into it.
// Token format: base64url(payload JSON) + "." + base64url(HMAC-SHA256 signature)
func (s *Service) Issue(slug string, role Role) (string, *Payload, error) {
	if slug == "" {
		return "", nil, fmt.Errorf("slug may not be empty")
	}
	if !role.IsValid() {
		return "", nil, fmt.Errorf("invalid role '%v'", role)
	}
	payload := Payload{
		Slug:  slug,
		Role:  role,
		Exp:   time.Now().Add(TokenTTL).UnixMilli(),
		Nonce: rando.StrongRandomHex(32),
	}
	raw, err := json.Marshal(&payload)
	if err != nil {
		return "", nil, err
	}
	encoded := base64.RawURLEncoding.EncodeToString(raw)
	return encoded + "." + s.sign(encoded), &payload, nil
}

// Verify checks a token's signature and expiry, and returns its payload,
// or nil if the token is invalid for any reason. Callers get no detail on
// why verification failed; a forged signature and an expired token look
// identical from the outside.
func (s *Service) Verify(token string) *Payload {
	parts := strings.Split(token, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil
	}
	expected := s.sign(parts[0])
	// hmac.Equal is constant-time. A plain string compare here would leak
	// timing information that helps forge signatures.
	if !hmac.Equal([]byte(parts[1]), []byte(expected)) {
		return nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil
	}
	payload := Payload{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil
	}
	if payload.Expired(time.Now()) {
		return nil
	}
	return &payload
}

func (s *Service) sign(encodedPayload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(encodedPayload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
