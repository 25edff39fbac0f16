package bulkimport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/harked/alfresco-bulk-import/core/repo"
	"github.com/harked/alfresco-bulk-import/core/repo/mocks"
)

func newTestApp(t *testing.T, svc *Service) *fiber.App {
	t.Helper()
	app := fiber.New()
	NewHandler(svc).RegisterRoutes(app)
	return app
}

func decodeResult(t *testing.T, resp *http.Response) map[string]string {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHandleStopWithoutRun(t *testing.T) {
	svc, _ := newTestService(t, new(mocks.Store), t.TempDir())
	app := newTestApp(t, svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/bulkimport/stop", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "no imports in progress", decodeResult(t, resp)["result"])
}

func TestHandleStopWhileRunning(t *testing.T) {
	svc, _ := newTestService(t, new(mocks.Store), t.TempDir())
	require.NoError(t, svc.status.begin())
	app := newTestApp(t, svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/bulkimport/stop", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, "stop requested", decodeResult(t, resp)["result"])
	assert.True(t, svc.Status().StopRequested())
}

func TestHandleInitiateConflict(t *testing.T) {
	svc, _ := newTestService(t, new(mocks.Store), t.TempDir())
	require.NoError(t, svc.status.begin())
	app := newTestApp(t, svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/bulkimport", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, ErrImportInProgress.Error(), decodeResult(t, resp)["result"])
}

func TestHandleInitiate(t *testing.T) {
	store := new(mocks.Store)
	store.On("VerifySchema", mock.Anything).Return(nil)
	store.On("EnsureRoot", mock.Anything, "imported").Return(repo.NewNodeRef(), nil)

	svc, _ := newTestService(t, store, t.TempDir())
	app := newTestApp(t, svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/bulkimport", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, "import initiated", decodeResult(t, resp)["result"])

	// The empty source directory drains immediately.
	require.Eventually(t, func() bool {
		return !svc.Status().InProgress()
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, StateSucceeded, svc.Status().Snapshot().State)
}

func TestHandleStatus(t *testing.T) {
	svc, _ := newTestService(t, new(mocks.Store), t.TempDir())
	app := newTestApp(t, svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/bulkimport/status", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var snapshot Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snapshot))
	assert.Equal(t, StateIdle, snapshot.State)
	assert.Zero(t, snapshot.Result)
}
