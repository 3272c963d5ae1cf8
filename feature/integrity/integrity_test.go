package integrity

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"megasena-monitor/core/database"
	"megasena-monitor/core/storage/mocks"
	betmodels "megasena-monitor/feature/bets/models"
	"megasena-monitor/feature/draws"
	drawmodels "megasena-monitor/feature/draws/models"
	"megasena-monitor/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T, client *mocks.Client) *fiber.App {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, &betmodels.Bet{}, &betmodels.Outcome{}, &drawmodels.Draw{}))

	var f *Feature
	columns := checks.MergeColumns(betmodels.Columns, drawmodels.Columns)
	if client != nil {
		f = NewFeature(client, "megasena", db, draws.NewDBStore(db), columns, zap.NewNop())
	} else {
		f = NewFeature(nil, "", db, draws.NewDBStore(db), columns, zap.NewNop())
	}
	assert.Equal(t, "integrity", f.Name())
	assert.True(t, f.IsEnabled())

	app := fiber.New()
	require.NoError(t, f.Load(app))
	return app
}

func get(t *testing.T, app *fiber.App, path string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	var body map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body
}

func TestHandleSchemaCheck(t *testing.T) {
	app := setupTestApp(t, nil)

	status, body := get(t, app, "/integrity/schema")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["matched"])
	assert.Len(t, body["tables"], 3)
}

func TestStorageDisabled(t *testing.T) {
	app := setupTestApp(t, nil)

	status, _ := get(t, app, "/integrity/structure")
	assert.Equal(t, fiber.StatusServiceUnavailable, status)

	status, _ = get(t, app, "/integrity/archive")
	assert.Equal(t, fiber.StatusServiceUnavailable, status)

	status, body := get(t, app, "/integrity")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "skipped", body["structure"].(map[string]any)["status"])
	assert.Equal(t, "skipped", body["archive"].(map[string]any)["status"])
	assert.Equal(t, true, body["schema"].(map[string]any)["matched"])
}

func emptyObjects() <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo)
	close(ch)
	return ch
}

func TestHandleStructureCheck(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "megasena").Return(true, nil)
	client.On("ListObjects", mock.Anything, "megasena", mock.Anything).Return(emptyObjects())
	client.On("PutObject", mock.Anything, "megasena", "draws/", mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)
	app := setupTestApp(t, client)

	status, body := get(t, app, "/integrity/structure")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "checked", body["status"])
	assert.Equal(t, []any{"draws"}, body["missing"])

	status, body = get(t, app, "/integrity/structure?fix=true")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "fixed", body["status"])
	client.AssertCalled(t, "PutObject", mock.Anything, "megasena", "draws/", mock.Anything, int64(0), mock.Anything)
}

func TestHandleArchiveCheck(t *testing.T) {
	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "megasena", mock.Anything).Return(emptyObjects())
	app := setupTestApp(t, client)

	status, body := get(t, app, "/integrity/archive")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(0), body["stored"])
	assert.Empty(t, body["missing"])
}
