package pg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	base := Config{User: "donor", Host: "db", Port: "5432", Password: "secret", Database: "hub"}

	assert.Equal(t, "host=db user=donor password=secret dbname=hub port=5432 sslmode=disable", dsn(base))

	managed := base
	managed.SSLMode = " require "
	managed.ConnectTimeout = 5
	assert.Equal(t, "host=db user=donor password=secret dbname=hub port=5432 sslmode=require connect_timeout=5", dsn(managed))
}
