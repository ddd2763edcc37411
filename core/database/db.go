package database

import (
	"log"
	"sync"

	"PogBot/core"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

var schema = `
CREATE TABLE IF NOT EXISTS servers (
	server_id VARCHAR PRIMARY KEY,
	prefix VARCHAR,
	welcome_message VARCHAR,
	welcome_dm_message VARCHAR,
	welcome_role VARCHAR,
	welcome_channel VARCHAR,
	welcome_card INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS servers_prefix_index ON servers (prefix);
`

var database *sqlx.DB
var mu sync.RWMutex

func InitializeDatabase() {
	db, err := sqlx.Connect("sqlite3", core.Settings.Database())
	if err != nil {
		log.Fatal("Failed to create database", err)
	}

	// exec the schema or fail; multi-statement Exec behavior varies between
	// database drivers;  pq will exec them all, sqlite3 won't, ymmv
	db.MustExec(schema)
	database = db
}

func Close() {
	database.Close()
}
