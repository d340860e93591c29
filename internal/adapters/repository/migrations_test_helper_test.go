package repository

import (
	"io/fs"

	"github.com/okian/bestxi/internal/adapters/repository/migrations"
)

func migrationsFile(name string) (string, error) {
	b, err := fs.ReadFile(migrations.FS, name)
	return string(b), err
}
