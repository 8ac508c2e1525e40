package api

import (
	"net/http"
	"testing"

	apitesting "github.com/alex-pricope/coop-voting-system/api/controllers/testing"
	"github.com/alex-pricope/coop-voting-system/api/models"
	"github.com/alex-pricope/coop-voting-system/logging"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, overrides map[string]any) *Config {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	v.Set("server.mode", gin.TestMode)
	for k, val := range overrides {
		v.Set(k, val)
	}
	return ReadConfig(v)
}

func TestBuild(t *testing.T) {
	logging.Log = logrus.New()

	for _, driver := range []string{StorageMemory, StorageSQLite} {
		t.Run("Happy path - "+driver+" backend", func(t *testing.T) {
			app, err := NewServer(testConfig(t, map[string]any{"storage.driver": driver})).Build(t.Context())
			require.NoError(t, err)
			t.Cleanup(func() { assert.NoError(t, app.Close()) })
			require.NotNil(t, app.Sweeper)

			res := apitesting.PerformRequest(app.Engine, http.MethodPost, "/associados",
				models.MemberCreateRequest{CPF: "12345678901", Name: "Maria Souza"}, nil)
			assert.Equal(t, http.StatusCreated, res.Code, res.Body.String())

			res = apitesting.PerformRequest(app.Engine, http.MethodGet, "/health", nil, nil)
			assert.Equal(t, http.StatusOK, res.Code)

			res = apitesting.PerformRequest(app.Engine, http.MethodGet, "/metrics", nil, nil)
			assert.Equal(t, http.StatusOK, res.Code)
			assert.Contains(t, res.Body.String(), "go_goroutines")
		})
	}

	t.Run("Happy path - sweeper disabled", func(t *testing.T) {
		app, err := NewServer(testConfig(t, map[string]any{"sweeper.enabled": false})).Build(t.Context())
		require.NoError(t, err)
		t.Cleanup(func() { _ = app.Close() })
		assert.Nil(t, app.Sweeper)
	})

	t.Run("Unhappy path - unknown storage driver", func(t *testing.T) {
		_, err := NewServer(testConfig(t, map[string]any{"storage.driver": "cassandra"})).Build(t.Context())
		assert.ErrorContains(t, err, "unknown storage driver")
	})

	t.Run("Unhappy path - unknown cache driver", func(t *testing.T) {
		_, err := NewServer(testConfig(t, map[string]any{"cache.driver": "memcached"})).Build(t.Context())
		assert.ErrorContains(t, err, "unknown cache driver")
	})
}
