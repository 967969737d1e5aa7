package config

import (
	"os"
	"path/filepath"
	"testing"

	"harustay/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
app:
  name: harustay
  environment: test
database:
  path: /tmp/harustay-test.db
admin:
  password_hash: "$2a$10$abcdefghijklmnopqrstuvabcdefghijklmnopqrstuvabcdefghiu"
rooms:
  - id: 1
    name: "온돌방"
    name_en: "Ondol Room"
    price_per_night: 90000
    capacity: 2
    bed_type: floor
    is_bookable: true
    sort_order: 1
  - id: 2
    name: "별채"
    name_en: "Annex"
    price_per_night: 140000
    capacity: 4
    bed_type: double
    is_bookable: true
    sort_order: 2
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, "harustay", cfg.App.Name)
	require.Len(t, cfg.Rooms, 2)
	assert.Equal(t, "Ondol Room", cfg.Rooms[0].NameEn)

	// Defaults applied.
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, models.DefaultSessionTTL, cfg.Admin.SessionTTLSeconds)
	assert.Equal(t, models.DefaultRatesTTL, cfg.Rates.TTLSeconds)
	assert.Equal(t, "exports", cfg.Exports.Path)
}

func TestLoadEnvExpansion(t *testing.T) {
	t.Setenv("HARUSTAY_DB_PATH", "/tmp/expanded.db")

	content := `
database:
  path: ${HARUSTAY_DB_PATH}
admin:
  password_hash: "hash"
`
	cfg, err := Load(writeConfig(t, content))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/expanded.db", cfg.Database.Path)
}

func TestValidateMissingDatabasePath(t *testing.T) {
	_, err := Load(writeConfig(t, `
admin:
  password_hash: "hash"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database path")
}

func TestValidateMissingAdminPassword(t *testing.T) {
	_, err := Load(writeConfig(t, `
database:
  path: /tmp/x.db
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "admin password")
}

func TestValidateRooms(t *testing.T) {
	err := ValidateRooms([]models.Room{
		{ID: 1, Name: "A", PricePerNight: 1000, Capacity: 2},
		{ID: 1, Name: "B", PricePerNight: 1000, Capacity: 2},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate room ID")

	err = ValidateRooms([]models.Room{{ID: 0, Name: "Z", PricePerNight: 1000, Capacity: 1}})
	require.Error(t, err)

	err = ValidateRooms([]models.Room{{ID: 3, Name: "C", PricePerNight: 0, Capacity: 1}})
	require.Error(t, err)

	err = ValidateRooms([]models.Room{{ID: 3, Name: "C", PricePerNight: 1000, Capacity: 2}})
	require.NoError(t, err)
}
