package database

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// WithTx returns a gorm handle whose statements run on tx. Services open
// the transaction on *sql.DB and hand it to repositories through this.
// A nil tx returns db unchanged.
func WithTx(db *gorm.DB, tx *sql.Tx) *gorm.DB {
	if tx == nil {
		return db
	}
	scoped := db.Session(&gorm.Session{NewDB: true, Context: context.Background()})
	scoped.Statement.ConnPool = tx
	return scoped
}
