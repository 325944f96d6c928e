package performance

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"theaterwecker/feature/listing"
	"theaterwecker/feature/performance/models"
	pr "theaterwecker/feature/performance/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(t *testing.T, fetcher Fetcher) (*fiber.App, *Service) {
	t.Helper()
	svc, _ := setupService(t, fetcher, nil)

	f := NewFeature(svc)
	f.handler.now = func() time.Time { return now }

	app := fiber.New()
	require.NoError(t, f.Load(app))
	return app, svc
}

func TestHandleReconcile(t *testing.T) {
	doc := scheduleDoc(entry{day: 1, clock: "19:00", location: "Hall A", category: "Drama", title: "Hamlet", ticketed: true})
	app, _ := setupApp(t, &stubFetcher{docs: map[listing.Window]string{may: doc}})

	t.Run("DryRun", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("POST", "/performances/reconcile?dry_run=true", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var report PassReport
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
		assert.True(t, report.DryRun)
		assert.Equal(t, 1, report.Plan.Summary.Creates)
		assert.Equal(t, 0, report.Created)
	})

	t.Run("Apply", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("POST", "/performances/reconcile", nil))
		require.NoError(t, err)

		var report PassReport
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
		assert.Equal(t, 1, report.Created)
		assert.Len(t, report.Windows, 2)
	})

	t.Run("List", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/performances?from=2024-05-01", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var out []pr.Listed
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		require.Len(t, out, 1)
		assert.Equal(t, "Hamlet", out[0].Title)
		assert.Equal(t, "Hall A", out[0].Location)
	})
}

func TestHandleList_BadRequest(t *testing.T) {
	app, _ := setupApp(t, &stubFetcher{})

	for _, q := range []string{"from=yesterday", "to=31.12.2024", "limit=0", "limit=x"} {
		resp, err := app.Test(httptest.NewRequest("GET", "/performances?"+q, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, q)
	}
}

func TestHandleList_Empty(t *testing.T) {
	app, _ := setupApp(t, &stubFetcher{})

	resp, err := app.Test(httptest.NewRequest("GET", "/performances", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, "[]", string(body))
}

func TestHandleCleanup(t *testing.T) {
	app, svc := setupApp(t, &stubFetcher{})

	past := models.Performance{Title: "Gestern", Begin: now.Add(-time.Hour), LocationID: 1, CategoryID: 1}.WithIdentity()
	require.NoError(t, svc.deps.DB.Create(&past).Error)

	resp, err := app.Test(httptest.NewRequest("POST", "/performances/cleanup", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var report CleanupReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, int64(1), report.Deleted)
}
