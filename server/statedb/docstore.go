package statedb

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/cyclopcam/dbh"
	"gorm.io/gorm"
)

// DocKind names a versioned document class. Each class is conceptually a
// singleton: one "current" row, plus an append-only <kind>_history table.
type DocKind string

const (
	DocSiteState     DocKind = "site_state"     // Investor-facing site content
	DocBosState      DocKind = "bos_state"      // Business-OS payload
	DocTimelineState DocKind = "timeline_state" // Update-schedule timeline
	DocDeckState     DocKind = "deck_state"     // Pitch deck slides
)

func (k DocKind) IsValid() bool {
	return k == DocSiteState || k == DocBosState || k == DocTimelineState || k == DocDeckState
}

// HistoryTable returns the name of the class's append-only history table.
func (k DocKind) HistoryTable() string {
	return string(k) + "_history"
}

// CurrentDoc is what ReadCurrent returns.
type CurrentDoc struct {
	Payload   json.RawMessage `json:"payload"`
	Version   int64           `json:"version"`
	UpdatedAt dbh.IntTime     `json:"updatedAt"`
	UpdatedBy string          `json:"updatedBy,omitempty"`
}

// Matches SQLite's "no such table: x" and Postgres' `relation "x" does not exist`.
var missingTableRegex = regexp.MustCompile(`no such table|relation "[^"]+" does not exist`)

func isMissingTable(err error) bool {
	if err == nil {
		return false
	}
	return missingTableRegex.MatchString(err.Error())
}

// ReadCurrent returns the most-recently-updated row of the given document
// class. An empty table is not an error: before the first write (or before the
// table has even been provisioned) we return the caller's default payload with
// version 0, so that the UI works on a cold start without a seeding step.
func (s *StateDB) ReadCurrent(kind DocKind, defaultPayload json.RawMessage) (*CurrentDoc, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("unknown document class '%v'", kind)
	}
	row := DocRow{}
	err := s.DB.Table(string(kind)).Order("updated_at DESC").First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &CurrentDoc{Payload: defaultPayload, Version: 0}, nil
		}
		if isMissingTable(err) {
			// Cold start before the relation exists. We treat this the same as
			// an empty table, but it could also mask a provisioning failure,
			// so it gets a log line.
			s.Log.Warnf("Document table %v does not exist, returning default (version 0)", kind)
			return &CurrentDoc{Payload: defaultPayload, Version: 0}, nil
		}
		return nil, err
	}
	return &CurrentDoc{
		Payload:   row.Payload,
		Version:   row.Version,
		UpdatedAt: row.UpdatedAt,
		UpdatedBy: row.UpdatedBy,
	}, nil
}

// Write replaces the current document with a new payload, bumping the version
// by 1, and appends a history row. Authorization happened one layer up.
//
// There is no expected-version check here. Two writers that both read version
// N will both write N+1, and the last physical write wins. Single-admin-at-a-
// time is an operating assumption of this system, not something we enforce.
func (s *StateDB) Write(kind DocKind, payload json.RawMessage, author string, notes string) (int64, error) {
	if !kind.IsValid() {
		return 0, fmt.Errorf("unknown document class '%v'", kind)
	}
	if len(payload) == 0 {
		return 0, fmt.Errorf("payload may not be empty")
	}
	now := dbh.MakeIntTime(time.Now())

	cur := DocRow{}
	haveCurrent := true
	err := s.DB.Table(string(kind)).Order("updated_at DESC").First(&cur).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		haveCurrent = false
	} else if err != nil {
		return 0, err
	}

	nextVersion := int64(1)
	if haveCurrent {
		nextVersion = cur.Version + 1
		err = s.DB.Table(string(kind)).Where("id = ?", cur.ID).Updates(map[string]any{
			"payload":    []byte(payload),
			"version":    nextVersion,
			"updated_at": now,
			"updated_by": author,
		}).Error
	} else {
		err = s.DB.Table(string(kind)).Create(&DocRow{
			Payload:   payload,
			Version:   nextVersion,
			UpdatedAt: now,
			UpdatedBy: author,
		}).Error
	}
	if err != nil {
		return 0, err
	}

	// History is best effort. The primary write has already succeeded, so a
	// failure here is logged and swallowed, never surfaced to the caller.
	hist := DocHistoryRow{
		Payload:   payload,
		Version:   nextVersion,
		Author:    author,
		Notes:     notes,
		CreatedAt: now,
	}
	if err := s.DB.Table(kind.HistoryTable()).Create(&hist).Error; err != nil {
		s.Log.Errorf("Failed to append history for %v (version %v): %v", kind, nextVersion, err)
	}

	return nextVersion, nil
}

// History returns the most recent history rows of a document class, newest first.
func (s *StateDB) History(kind DocKind, limit int) ([]DocHistoryRow, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("unknown document class '%v'", kind)
	}
	if limit <= 0 {
		limit = 50
	}
	rows := []DocHistoryRow{}
	err := s.DB.Table(kind.HistoryTable()).Order("id DESC").Limit(limit).Find(&rows).Error
	if err != nil {
		if isMissingTable(err) {
			s.Log.Warnf("History table %v does not exist, returning empty history", kind.HistoryTable())
			return rows, nil
		}
		return nil, err
	}
	return rows, nil
}
