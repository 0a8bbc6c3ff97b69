package statedb

import (
	"fmt"

	"github.com/cyclopcam/dbh"
	"github.com/cyclopcam/logs"
	"gorm.io/gorm"
)

// StateDB holds all portal state: versioned content documents and their
// history logs, principals, the investor login log, and the partner network.
type StateDB struct {
	Log logs.Log
	DB  *gorm.DB
}

// Open or create the state DB, running migrations.
func NewStateDB(log logs.Log, config dbh.DBConfig) (*StateDB, error) {
	db, err := dbh.OpenDB(log, config, Migrations(log), 0)
	if err != nil {
		return nil, fmt.Errorf("Failed to open state database: %w", err)
	}
	return &StateDB{
		Log: log,
		DB:  db,
	}, nil
}
