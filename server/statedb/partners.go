package statedb

import (
	"fmt"
	"time"

	"github.com/cyclopcam/dbh"
)

// ListPartners returns the whole partnership network, ordered by name.
func (s *StateDB) ListPartners() ([]*Partner, error) {
	list := []*Partner{}
	if err := s.DB.Order("name").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// GetPartner returns the partner with the given id, or nil.
func (s *StateDB) GetPartner(id int64) (*Partner, error) {
	p := Partner{}
	if err := s.DB.Find(&p, id).Error; err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return nil, nil
	}
	return &p, nil
}

// AddPartner inserts a new partner and returns its id.
func (s *StateDB) AddPartner(p *Partner) (int64, error) {
	if p.Name == "" {
		return 0, fmt.Errorf("partner name may not be empty")
	}
	now := dbh.MakeIntTime(time.Now())
	p.ID = 0
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := s.DB.Create(p).Error; err != nil {
		return 0, err
	}
	return p.ID, nil
}

// UpdatePartner replaces a partner record, preserving its creation time.
func (s *StateDB) UpdatePartner(p *Partner) error {
	old, err := s.GetPartner(p.ID)
	if err != nil {
		return err
	}
	if old == nil {
		return fmt.Errorf("partner %v not found", p.ID)
	}
	p.CreatedAt = old.CreatedAt
	p.UpdatedAt = dbh.MakeIntTime(time.Now())
	return s.DB.Save(p).Error
}

// SetPartnerPosition moves a partner on the network map.
func (s *StateDB) SetPartnerPosition(id int64, x, y float64) error {
	return s.DB.Model(&Partner{}).Where("id = ?", id).Updates(map[string]any{
		"pos_x":      x,
		"pos_y":      y,
		"updated_at": dbh.MakeIntTime(time.Now()),
	}).Error
}

// DeletePartner removes a partner from the network.
func (s *StateDB) DeletePartner(id int64) error {
	return s.DB.Delete(&Partner{}, id).Error
}
