package website

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mal2-project/fake-shop-detection-database/internal/model"
	"github.com/mal2-project/fake-shop-detection-database/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	require.NoError(t, repository.InitTestDB())

	actor, err := repository.GetUserByUsername("envelope-admin")
	require.NoError(t, err)
	if actor == nil {
		actor = &model.User{
			Username: "envelope-admin",
			Password: "unused",
			Role:     model.RoleAdmin,
			IsActive: true,
		}
		require.NoError(t, repository.CreateUser(actor))
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) { c.Set("user", actor) })
	router.POST("/db/websites/add/", Add)

	return router
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) map[string]any {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))

	return payload
}

func TestAddAnswersSuccessEnvelope(t *testing.T) {
	router := setupRouter(t)

	payload := postJSON(t, router, "/db/websites/add/", `{"url":"http://127.0.0.1:9/new"}`)

	assert.Equal(t, "success", payload["submit"])
	assert.NotEmpty(t, payload["toaster"])
}

func TestAddAnswersErrorEnvelopeOnDuplicate(t *testing.T) {
	router := setupRouter(t)

	postJSON(t, router, "/db/websites/add/", `{"url":"http://127.0.0.1:9/duplicate"}`)
	payload := postJSON(t, router, "/db/websites/add/", `{"url":"https://127.0.0.1:9/duplicate"}`)

	assert.Equal(t, "error", payload["submit"])
	assert.NotNil(t, payload["errors"])
}
