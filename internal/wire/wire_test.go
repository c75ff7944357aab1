package wire

import (
	"Quill/internal/api/config"
	"Quill/internal/pkg/database"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildApplicationWithDatabaseOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		DB: config.DBConfig{Driver: config.DriverSQLite, DSN: "file::memory:", AutoMigrate: true},
		Cron: config.CronConfig{
			OrphanClean:   "0 0 * * * *",
			SearchReindex: "0 30 3 * * *",
		},
	}
	db, err := database.NewGormDB(&cfg.DB)
	require.NoError(t, err)

	app, err := BuildApplication(db, nil, cfg)
	require.NoError(t, err)
	assert.Nil(t, app.KafkaManager)
	assert.Nil(t, app.Publisher)

	require.NoError(t, app.CronMgr.RegisterJobs())
	assert.Equal(t, 2, app.CronMgr.Entries())

	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
