package statedb

import (
	"encoding/json"

	"github.com/cyclopcam/dbh"
)

// BaseModel is our base class for a GORM model.
// The default GORM Model uses int, but we prefer int64
type BaseModel struct {
	ID int64 `gorm:"primaryKey" json:"id"`
}

// Principal is anybody who can log in: an investor, an admin, or the shared
// deck-viewer identity. The slug is the human-chosen identity (eg "acme-admin"),
// not a surrogate key.
type Principal struct {
	BaseModel
	Slug      string      `json:"slug"`
	Role      string      `json:"role"` // investor, admin, or deck
	Name      string      `json:"name"`
	PinHash   string      `json:"-"` // scrypt hash, base64 (see pkg/pwdhash)
	CreatedAt dbh.IntTime `json:"createdAt"`
}

// InvestorSession is one row per successful login. Append-only audit log;
// nothing reads it on the hot path.
type InvestorSession struct {
	BaseModel
	Slug       string      `json:"slug"`
	Role       string      `json:"role"`
	RemoteAddr string      `json:"remoteAddr"`
	UserAgent  string      `json:"userAgent"`
	CreatedAt  dbh.IntTime `json:"createdAt"`
}

// Partner is a node in the partnership network map.
// PosX/PosY are the map coordinates chosen by the admin; we just store them.
type Partner struct {
	BaseModel
	Name      string      `json:"name"`
	Category  string      `json:"category"`
	Notes     string      `json:"notes"`
	PosX      float64     `json:"posX"`
	PosY      float64     `json:"posY"`
	CreatedAt dbh.IntTime `json:"createdAt"`
	UpdatedAt dbh.IntTime `json:"updatedAt"`
}

// DocRow is the current row of a versioned document class.
// The payload is opaque JSON; the store never interprets it.
type DocRow struct {
	ID        int64           `gorm:"primaryKey" json:"id"`
	Payload   json.RawMessage `json:"payload"`
	Version   int64           `json:"version"`
	UpdatedAt dbh.IntTime     `json:"updatedAt"`
	UpdatedBy string          `json:"updatedBy"`
}

// DocHistoryRow is one entry in a document class's append-only history log.
type DocHistoryRow struct {
	ID        int64           `gorm:"primaryKey" json:"id"`
	Payload   json.RawMessage `json:"payload"`
	Version   int64           `json:"version"`
	Author    string          `json:"author"`
	Notes     string          `json:"notes"`
	CreatedAt dbh.IntTime     `json:"createdAt"`
}
