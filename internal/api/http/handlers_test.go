package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowframe/embed/internal/embed"
	"github.com/flowframe/embed/internal/manifest"
)

const manifestYAML = `
flows:
  - client: acme
    flow: onboarding
    origin: https://flow.acme.test
    variants: [a, b]
`

func newTestRouter(t *testing.T) (*gin.Engine, *embed.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	m, err := manifest.Parse([]byte(manifestYAML))
	require.NoError(t, err)

	manager := embed.NewManager("https://app.test", nil, nil)
	handlers := NewHandlers(manager, m, nil, "https://flow.flowframe.dev", nil)

	router := gin.New()
	router.GET("/health", handlers.Health)
	router.POST("/embeds", handlers.CreateEmbed)
	router.GET("/embeds", handlers.ListEmbeds)
	router.GET("/embeds/:id", handlers.GetEmbed)
	router.DELETE("/embeds/:id", handlers.CloseEmbed)
	return router, manager
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doJSON(router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "flowframe-gateway")
}

func TestCreateEmbed(t *testing.T) {
	router, manager := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/embeds", `{
		"client": "acme",
		"flow": "onboarding",
		"variant": "b",
		"params": {"utm_source": "mail"},
		"options": {"autoHeight": true, "style": {"width": "100%", "height": "500px"}}
	}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var summary EmbedSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.True(t, strings.HasPrefix(summary.ID, "emb_"))
	assert.Contains(t, summary.URL, "/to/acme/onboarding/b")
	assert.Contains(t, summary.URL, "utm_source=mail")
	assert.Equal(t, "https://flow.acme.test", summary.Origin)
	assert.Equal(t, "100%", summary.Width)
	assert.Equal(t, "500px", summary.Height)

	assert.Len(t, manager.List(), 1)
}

func TestCreateEmbedUnknownFlow(t *testing.T) {
	router, manager := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/embeds", `{"client":"acme","flow":"missing"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, manager.List())
}

func TestCreateEmbedUnknownVariant(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/embeds", `{"client":"acme","flow":"onboarding","variant":"z"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCreateEmbedMissingLabels(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/embeds", `{"client":"acme"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAndListEmbeds(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/embeds", `{"client":"acme","flow":"onboarding"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var summary EmbedSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))

	w = doJSON(router, http.MethodGet, "/embeds/"+summary.ID, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/embeds", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), summary.ID)

	w = doJSON(router, http.MethodGet, "/embeds/emb_nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCloseEmbed(t *testing.T) {
	router, manager := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/embeds", `{"client":"acme","flow":"onboarding"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var summary EmbedSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))

	w = doJSON(router, http.MethodDelete, "/embeds/"+summary.ID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, manager.List())

	w = doJSON(router, http.MethodDelete, "/embeds/"+summary.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
