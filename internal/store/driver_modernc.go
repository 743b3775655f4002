//go:build !cgosqlite

package store

import _ "modernc.org/sqlite"

// sqliteDriver is the pure-Go driver, used unless built with -tags cgosqlite.
const sqliteDriver = "sqlite"
