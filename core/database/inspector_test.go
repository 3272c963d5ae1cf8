package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE draws (number INTEGER PRIMARY KEY, numbers TEXT NOT NULL, accumulated NUMERIC)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "draws")
	require.NoError(t, err)
	require.Len(t, columns, 3)

	byName := make(map[string]ColumnInfo)
	for _, col := range columns {
		byName[col.Field] = col
	}
	assert.Equal(t, "integer", byName["number"].Type)
	assert.Equal(t, "PRI", byName["number"].Key)
	assert.Equal(t, "NO", byName["numbers"].Null)
	assert.Equal(t, "numeric", byName["accumulated"].Type)

	// PRAGMA table_info returns no rows for an unknown table.
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestGetTableColumns_MySQL(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("ID", "BIGINT UNSIGNED", "NO", "PRI", nil, "auto_increment").
		AddRow("Numbers", "JSON", "NO", "", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `bets`").WillReturnRows(rows)

	columns, err := GetTableColumns(db, "bets")
	require.NoError(t, err)
	require.Len(t, columns, 2)
	assert.Equal(t, "id", columns[0].Field)
	assert.Equal(t, "bigint unsigned", columns[0].Type)
	assert.Equal(t, "json", columns[1].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMissingColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE bets (id INTEGER PRIMARY KEY, numbers TEXT)").Error)

	missing, err := MissingColumns(db, "bets", []string{"id", "numbers", "start_draw"})
	require.NoError(t, err)
	assert.Equal(t, []string{"start_draw"}, missing)
}
