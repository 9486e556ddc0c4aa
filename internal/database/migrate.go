package database

import (
	"database/sql"
	"io/fs"

	"github.com/pressly/goose/v3"
)

func Migrate(db *sql.DB, migrations fs.FS) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, ".")
}
