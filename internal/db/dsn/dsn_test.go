package dsn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/config"
)

func TestCreate(t *testing.T) {
	testCases := []struct {
		name        string
		cfg         config.DB
		expected    string
		expectedErr error
	}{
		{
			name: "mysql defaults",
			cfg: config.DB{
				GormEngine: config.EngineMySQL, Host: "db", User: "chef", Password: "secret", Name: "recipes",
			},
			expected: "chef:secret@tcp(db:3306)/recipes?charset=utf8mb4&parseTime=True&loc=UTC",
		},
		{
			name: "mysql extras",
			cfg: config.DB{
				GormEngine: config.EngineMySQL, Host: "db", Port: 3307, User: "chef", Password: "secret",
				Name: "recipes", Extras: "parseTime=true",
			},
			expected: "chef:secret@tcp(db:3307)/recipes?parseTime=true",
		},
		{
			name: "postgres escapes credentials",
			cfg: config.DB{
				GormEngine: config.EnginePostgres, Host: "pg", User: "chef", Password: "p@ss/word", Name: "recipes",
			},
			expected: "postgres://chef:p%40ss%2Fword@pg:5432/recipes?sslmode=disable",
		},
		{
			name:     "sqlite file",
			cfg:      config.DB{GormEngine: config.EngineSQLite, Name: "recipes.db"},
			expected: "recipes.db",
		},
		{
			name:     "sqlite pragma",
			cfg:      config.DB{GormEngine: config.EngineSQLite, Name: "recipes.db", Extras: "_pragma=foreign_keys(1)"},
			expected: "recipes.db?_pragma=foreign_keys(1)",
		},
		{
			name:        "unknown engine",
			cfg:         config.DB{GormEngine: "oracle"},
			expectedErr: config.ErrUnknownGormEngine,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Create(tc.cfg)
			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, out)
		})
	}
}
