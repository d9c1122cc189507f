package turso

import (
	"database/sql"

	"github.com/deepceutix/datagen/internal/ports"
)

// Repositories holds the turso repository implementations as port interfaces.
type Repositories struct {
	Runs ports.RunRepository
}

// NewRepositories creates the turso repository implementations from a database connection.
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Runs: NewRunRepository(db),
	}
}
