package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/bakery-api/internal/config"
	"github.com/localnerve/bakery-api/internal/handlers"
	"github.com/localnerve/bakery-api/internal/middleware"
	"github.com/localnerve/bakery-api/internal/models"
	"github.com/localnerve/bakery-api/internal/services"
	"github.com/localnerve/bakery-api/internal/storage"
	"github.com/localnerve/bakery-api/internal/storage/storagetest"
	"github.com/localnerve/bakery-api/tests/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestWithRedis runs the storage contract and the API against a real redis
func TestWithRedis(t *testing.T) {
	helpers.RequireDocker(t)
	ctx := context.Background()

	redisContainer, env, err := helpers.StartRedis(ctx, "")
	require.NoError(t, err)
	defer func() {
		if err := redisContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate Redis container: %v", err)
		}
	}()

	t.Run("Contract", func(t *testing.T) {
		store, err := storage.NewRedisStore(ctx, env["KV_URL"], env["KV_TOKEN"], "contract:")
		require.NoError(t, err)
		defer store.Close()
		storagetest.Run(t, store)
	})

	env["KV_PREFIX"] = "api:"
	runAPI(t, env)
}

// TestWithPostgres runs the storage contract and the API against a real postgres
func TestWithPostgres(t *testing.T) {
	runSQL(t, "postgres")
}

// TestWithMariaDB runs the storage contract and the API against a real mariadb
func TestWithMariaDB(t *testing.T) {
	runSQL(t, "mariadb")
}

func runSQL(t *testing.T, dbType string) {
	helpers.RequireDocker(t)
	ctx := context.Background()

	dbContainer, env, err := helpers.StartDatabase(ctx, dbType, "")
	require.NoError(t, err)
	defer func() {
		if err := dbContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate %s container: %v", dbType, err)
		}
	}()

	t.Run("Contract", func(t *testing.T) {
		cfg, err := config.LoadFrom(helpers.EnvGetter(env))
		require.NoError(t, err)
		backend, err := storage.Open(ctx, cfg, zap.NewNop())
		require.NoError(t, err)
		defer backend.Close()
		storagetest.Run(t, backend)
	})

	runAPI(t, env)
}

// runAPI mounts the routes over the backend described by env and drives them over HTTP
func runAPI(t *testing.T, env map[string]string) {
	ctx := context.Background()
	token := helpers.NewAdminToken(t)
	env["ADMIN_TOKEN"] = token

	cfg, err := config.LoadFrom(helpers.EnvGetter(env))
	require.NoError(t, err)

	log := zap.NewNop()
	backend, err := storage.Open(ctx, cfg, log)
	require.NoError(t, err)
	defer backend.Close()

	svc := services.New(backend, log, services.OptionsFromConfig(cfg))
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler(log)})
	api := app.Group("/api", middleware.VersionMiddleware())
	handlers.RegisterRoutes(api, cfg, svc, log)

	call := func(t *testing.T, method, target string, body any, authorized bool) *http.Response {
		t.Helper()
		var reader *bytes.Reader
		if body != nil {
			raw, err := json.Marshal(body)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		} else {
			reader = bytes.NewReader(nil)
		}
		req := httptest.NewRequest(method, target, reader)
		req.Header.Set("Content-Type", "application/json")
		if authorized {
			req.Header.Set("Authorization", helpers.Bearer(token))
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	t.Run("SeedOnRead", func(t *testing.T) {
		resp := call(t, http.MethodGet, "/api/products", nil, false)
		helpers.AssertStatus(t, resp, http.StatusOK)
		var first []models.Product
		helpers.ParseJSON(t, resp, &first)
		require.NotEmpty(t, first)

		resp = call(t, http.MethodGet, "/api/products", nil, false)
		var second []models.Product
		helpers.ParseJSON(t, resp, &second)
		assert.Len(t, second, len(first))
	})

	t.Run("AdminGuard", func(t *testing.T) {
		resp := call(t, http.MethodPost, "/api/products", map[string]any{"name": "Rye", "price": 4}, false)
		helpers.AssertStatus(t, resp, http.StatusUnauthorized)
	})

	t.Run("MissingPrice", func(t *testing.T) {
		resp := call(t, http.MethodPost, "/api/products", map[string]any{"name": "Rye"}, true)
		envelope := helpers.AssertError(t, resp, http.StatusBadRequest, "products.create")
		assert.Equal(t, "price", envelope.Field)
	})

	t.Run("ConcurrentCreates", func(t *testing.T) {
		var before []models.Product
		helpers.GetDocument(t, backend, "products", &before)

		const writers = 8
		var wg sync.WaitGroup
		for i := range writers {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				resp := call(t, http.MethodPost, "/api/products",
					map[string]any{"name": fmt.Sprintf("Loaf %d", i), "price": "3.50"}, true)
				assert.Equal(t, http.StatusCreated, resp.StatusCode)
			}(i)
		}
		wg.Wait()

		var after []models.Product
		helpers.GetDocument(t, backend, "products", &after)
		assert.Len(t, after, len(before)+writers)
	})

	t.Run("UnknownIDs", func(t *testing.T) {
		resp := call(t, http.MethodPut, "/api/products/missing", map[string]any{"name": "x"}, true)
		helpers.AssertError(t, resp, http.StatusNotFound, "notFound")

		resp = call(t, http.MethodDelete, "/api/products/missing", nil, true)
		helpers.AssertStatus(t, resp, http.StatusOK)
	})

	t.Run("ReviewsNewestFirst", func(t *testing.T) {
		resp := call(t, http.MethodPost, "/api/reviews",
			map[string]any{"name": "Ana", "rating": 3, "comment": "Lovely crumb"}, false)
		helpers.AssertStatus(t, resp, http.StatusCreated)

		resp = call(t, http.MethodGet, "/api/reviews", nil, false)
		var reviews []models.Review
		helpers.ParseJSON(t, resp, &reviews)
		require.NotEmpty(t, reviews)
		assert.Equal(t, "Lovely crumb", reviews[0].Comment)
	})

	t.Run("DegradedRead", func(t *testing.T) {
		helpers.PutDocument(t, backend, "users", "not a list")

		resp := call(t, http.MethodGet, "/api/users", nil, true)
		helpers.AssertStatus(t, resp, http.StatusServiceUnavailable)
	})
}
