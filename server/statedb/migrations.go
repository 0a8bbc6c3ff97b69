package statedb

import (
	"github.com/BurntSushi/migration"
	"github.com/cyclopcam/dbh"
	"github.com/cyclopcam/logs"
)

func Migrations(log logs.Log) []migration.Migrator {
	migs := []migration.Migrator{}
	idx := 0

	migs = append(migs, dbh.MakeMigrationFromSQL(log, &idx,
		`
		CREATE TABLE principal(
			id INTEGER PRIMARY KEY,
			slug TEXT NOT NULL,
			role TEXT NOT NULL,
			name TEXT,
			pin_hash TEXT NOT NULL,
			created_at INT NOT NULL
		);
		CREATE UNIQUE INDEX idx_principal_slug ON principal (slug);

		CREATE TABLE investor_session(
			id INTEGER PRIMARY KEY,
			slug TEXT NOT NULL,
			role TEXT NOT NULL,
			remote_addr TEXT,
			user_agent TEXT,
			created_at INT NOT NULL
		);
		CREATE INDEX idx_investor_session_slug ON investor_session (slug);

		CREATE TABLE partner(
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			notes TEXT,
			pos_x REAL NOT NULL DEFAULT 0,
			pos_y REAL NOT NULL DEFAULT 0,
			created_at INT NOT NULL,
			updated_at INT NOT NULL
		);
	`))

	migs = append(migs, dbh.MakeMigrationFromSQL(log, &idx,
		`
		CREATE TABLE site_state(
			id INTEGER PRIMARY KEY,
			payload BLOB NOT NULL,
			version INT NOT NULL,
			updated_at INT NOT NULL,
			updated_by TEXT NOT NULL
		);
		CREATE TABLE site_state_history(
			id INTEGER PRIMARY KEY,
			payload BLOB NOT NULL,
			version INT NOT NULL,
			author TEXT NOT NULL,
			notes TEXT,
			created_at INT NOT NULL
		);

		CREATE TABLE bos_state(
			id INTEGER PRIMARY KEY,
			payload BLOB NOT NULL,
			version INT NOT NULL,
			updated_at INT NOT NULL,
			updated_by TEXT NOT NULL
		);
		CREATE TABLE bos_state_history(
			id INTEGER PRIMARY KEY,
			payload BLOB NOT NULL,
			version INT NOT NULL,
			author TEXT NOT NULL,
			notes TEXT,
			created_at INT NOT NULL
		);

		CREATE TABLE timeline_state(
			id INTEGER PRIMARY KEY,
			payload BLOB NOT NULL,
			version INT NOT NULL,
			updated_at INT NOT NULL,
			updated_by TEXT NOT NULL
		);
		CREATE TABLE timeline_state_history(
			id INTEGER PRIMARY KEY,
			payload BLOB NOT NULL,
			version INT NOT NULL,
			author TEXT NOT NULL,
			notes TEXT,
			created_at INT NOT NULL
		);
	`))

	migs = append(migs, dbh.MakeMigrationFromSQL(log, &idx,
		`
		CREATE TABLE deck_state(
			id INTEGER PRIMARY KEY,
			payload BLOB NOT NULL,
			version INT NOT NULL,
			updated_at INT NOT NULL,
			updated_by TEXT NOT NULL
		);
		CREATE TABLE deck_state_history(
			id INTEGER PRIMARY KEY,
			payload BLOB NOT NULL,
			version INT NOT NULL,
			author TEXT NOT NULL,
			notes TEXT,
			created_at INT NOT NULL
		);
	`))

	return migs
}
