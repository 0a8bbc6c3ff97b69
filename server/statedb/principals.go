package statedb

import (
	"fmt"
	"strings"
	"time"

	"github.com/cyclopcam/dbh"
	"github.com/quorumhq/quorum/pkg/pwdhash"
)

const (
	RoleInvestor = "investor"
	RoleAdmin    = "admin"
	RoleDeck     = "deck"
)

func IsValidRole(role string) bool {
	return role == RoleInvestor || role == RoleAdmin || role == RoleDeck
}

// NormalizeSlug lowercases and trims a slug, so that "Acme-Admin " and
// "acme-admin" are the same principal.
func NormalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

// GetPrincipal returns the principal with the given slug, or nil.
func (s *StateDB) GetPrincipal(slug string) (*Principal, error) {
	p := Principal{}
	if err := s.DB.Where("slug = ?", NormalizeSlug(slug)).Find(&p).Error; err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return nil, nil
	}
	return &p, nil
}

// VerifyPIN authenticates a (slug, pin) pair, and returns the principal on
// success, or nil. This is the Role/PIN authenticator that feeds the session
// token service; it never issues tokens itself.
func (s *StateDB) VerifyPIN(slug, pin string) (*Principal, error) {
	p, err := s.GetPrincipal(slug)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	if !pwdhash.VerifyHashBase64(pin, p.PinHash) {
		return nil, nil
	}
	return p, nil
}

// CreatePrincipal creates a new principal with the given PIN.
func (s *StateDB) CreatePrincipal(slug, role, name, pin string) (*Principal, error) {
	slug = NormalizeSlug(slug)
	if slug == "" {
		return nil, fmt.Errorf("slug may not be empty")
	}
	if !IsValidRole(role) {
		return nil, fmt.Errorf("invalid role '%v'", role)
	}
	if pin == "" {
		return nil, fmt.Errorf("PIN may not be empty")
	}
	p := Principal{
		Slug:      slug,
		Role:      role,
		Name:      name,
		PinHash:   pwdhash.HashPINBase64(pin),
		CreatedAt: dbh.MakeIntTime(time.Now()),
	}
	if err := s.DB.Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// SetPIN replaces a principal's PIN.
func (s *StateDB) SetPIN(slug, pin string) error {
	if pin == "" {
		return fmt.Errorf("PIN may not be empty")
	}
	return s.DB.Model(&Principal{}).Where("slug = ?", NormalizeSlug(slug)).
		Update("pin_hash", pwdhash.HashPINBase64(pin)).Error
}

// NumAdmins returns the number of admin principals.
// Creating the very first admin requires no authentication (there is nobody
// who could authenticate it), so callers use this to detect that state.
func (s *StateDB) NumAdmins() (int, error) {
	n := int64(0)
	if err := s.DB.Model(&Principal{}).Where("role = ?", RoleAdmin).Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}

// ListPrincipals returns all principals of the given role, or all of them if
// role is empty.
func (s *StateDB) ListPrincipals(role string) ([]*Principal, error) {
	q := s.DB
	if role != "" {
		q = q.Where("role = ?", role)
	}
	list := []*Principal{}
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// DeletePrincipal removes a principal. Outstanding session tokens for the slug
// remain valid until they expire; that is the cost of stateless sessions.
func (s *StateDB) DeletePrincipal(id int64) error {
	return s.DB.Delete(&Principal{}, id).Error
}

// RecordLogin appends a row to the investor_session login log.
// The log is write-only from the server's point of view, and purely for the
// admin's benefit, so a failure here must not fail the login.
func (s *StateDB) RecordLogin(slug, role, remoteAddr, userAgent string) {
	row := InvestorSession{
		Slug:       slug,
		Role:       role,
		RemoteAddr: remoteAddr,
		UserAgent:  userAgent,
		CreatedAt:  dbh.MakeIntTime(time.Now()),
	}
	if err := s.DB.Create(&row).Error; err != nil {
		s.Log.Errorf("Failed to record login for %v: %v", slug, err)
	}
}

// ListLogins returns the most recent login log rows, newest first.
func (s *StateDB) ListLogins(limit int) ([]*InvestorSession, error) {
	if limit <= 0 {
		limit = 100
	}
	list := []*InvestorSession{}
	if err := s.DB.Order("id DESC").Limit(limit).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
