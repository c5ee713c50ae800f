package sqlstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRebind(t *testing.T) {
	query := `INSERT INTO slots (name, value) VALUES (?, ?)`

	pg := &Store{driver: DriverPostgres}
	assert.Equal(t, `INSERT INTO slots (name, value) VALUES ($1, $2)`, pg.rebind(query))

	lite := &Store{driver: DriverSQLite}
	assert.Equal(t, query, lite.rebind(query))
}
