//go:build cgosqlite

package store

import _ "github.com/mattn/go-sqlite3"

const sqliteDriver = "sqlite3"
