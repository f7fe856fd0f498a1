package database

import (
	"testing"

	"studyglobe/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

func TestDialector(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Config
		wantName string
		wantErr  bool
	}{
		{"sqlite", config.Config{DBDriver: "sqlite", DBPath: ":memory:"}, "sqlite", false},
		{"postgres", config.Config{DBDriver: "postgres", DBHost: "db", DBName: "studyglobe"}, "postgres", false},
		{"unknown", config.Config{DBDriver: "oracle"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Dialector(&tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, d.Name())
		})
	}
}

func TestOpen_MigratesAllModels(t *testing.T) {
	db, err := Open(sqlite.Open(":memory:"), true)
	require.NoError(t, err)

	for _, table := range []string{"postcards", "custom_points", "friends"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}
