package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"tablebook/internal/database"
	"tablebook/internal/domain"
	"tablebook/internal/localcache"
	"tablebook/internal/middleware"
	"tablebook/internal/modules/favorites"
	"tablebook/internal/modules/reservations"
	"tablebook/internal/modules/resources"
	jwtsvc "tablebook/internal/pkg/jwt"
	"tablebook/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestSuite struct {
	router *gin.Engine
	jwt    *jwtsvc.Service
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func setupSuite(t *testing.T) *TestSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	db, err := database.Connect(filepath.Join(dir, "remote.db"))
	require.NoError(t, err)

	recordStore := repository.NewRecordStore(db)
	reservationRepo := repository.NewReservationRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	require.NoError(t, recordStore.Migrate())
	require.NoError(t, reservationRepo.Migrate())
	require.NoError(t, catalogRepo.Migrate())

	require.NoError(t, catalogRepo.UpsertMenuItems(context.Background(), []domain.MenuItem{
		{ID: "item-e2e", Name: "Pad Thai", Price: 12.5, Availability: true},
	}))

	local, err := localcache.Open(filepath.Join(dir, "local.db"))
	require.NoError(t, err)

	j := jwtsvc.New("e2e-test-secret", time.Hour)

	resourceHandler := resources.NewHandler(resources.NewService(recordStore))
	favoriteHandler := favorites.NewHandler(favorites.NewService(recordStore, local, catalogRepo))
	reservationHandler := reservations.NewHandler(reservations.NewService(reservationRepo, nil))

	r := gin.New()
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	reservationHandler.RegisterPublicRoutes(v1)

	merged := v1.Group("/")
	merged.Use(middleware.OptionalAuth(j))
	favoriteHandler.RegisterRoutes(merged)

	protected := v1.Group("/")
	protected.Use(middleware.RequireAuth(j))
	resourceHandler.RegisterRoutes(protected)
	reservationHandler.RegisterRoutes(protected)

	return &TestSuite{router: r, jwt: j}
}

func (s *TestSuite) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, TestResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp TestResponse
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func (s *TestSuite) token(t *testing.T, ownerID string) string {
	t.Helper()
	token, err := s.jwt.GenerateToken(ownerID)
	require.NoError(t, err)
	return token
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	s := setupSuite(t)

	w, resp := s.do(t, http.MethodGet, "/api/v1/addresses", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UNAUTHORIZED", resp.Error.Code)
}

func TestAddressDefaultLifecycle(t *testing.T) {
	s := setupSuite(t)
	token := s.token(t, "owner-e2e")

	addr := func(label string, isDefault bool) gin.H {
		return gin.H{
			"address": gin.H{
				"label": label, "name": "Dana", "streetAddress": "12 Abay Ave",
				"city": "Almaty", "state": "AL", "postalCode": "050000", "country": "KZ",
			},
			"isDefault": isDefault,
		}
	}

	// first add is forced default even though the caller said false
	w, resp := s.do(t, http.MethodPost, "/api/v1/addresses", token, addr("Home", false))
	require.Equal(t, http.StatusCreated, w.Code)
	firstID := resp.Data["id"].(string)

	w, resp = s.do(t, http.MethodGet, "/api/v1/addresses/default", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	item := resp.Data["item"].(map[string]interface{})
	assert.Equal(t, firstID, item["id"])

	// a second explicit default steals the flag
	w, resp = s.do(t, http.MethodPost, "/api/v1/addresses", token, addr("Work", true))
	require.Equal(t, http.StatusCreated, w.Code)
	secondID := resp.Data["id"].(string)

	w, resp = s.do(t, http.MethodGet, "/api/v1/addresses", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := resp.Data["items"].([]interface{})
	require.Len(t, items, 2)
	defaults := 0
	for _, it := range items {
		if it.(map[string]interface{})["isDefault"].(bool) {
			defaults++
		}
	}
	assert.Equal(t, 1, defaults)

	// removing the default promotes the remaining item
	w, _ = s.do(t, http.MethodDelete, "/api/v1/addresses/"+secondID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = s.do(t, http.MethodGet, "/api/v1/addresses/default", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	item = resp.Data["item"].(map[string]interface{})
	assert.Equal(t, firstID, item["id"])

	// deleting an unknown id is a 404
	w, resp = s.do(t, http.MethodDelete, "/api/v1/addresses/missing", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestReservationCapacityFlow(t *testing.T) {
	s := setupSuite(t)

	reservation := func(owner string) gin.H {
		return gin.H{
			"name": "Guest " + owner, "email": owner + "@example.com", "phone": "+77010000000",
			"date": "2025-06-01T12:00:00Z", "time": "19:00", "guests": 2,
		}
	}

	// the slot is open before anything is confirmed
	w, resp := s.do(t, http.MethodGet, "/api/v1/reservations/availability?date=2025-06-01&time=19:00", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Data["available"].(bool))

	// five owners create and confirm reservations for the same slot
	for i := 0; i < 5; i++ {
		owner := fmt.Sprintf("owner-%d", i)
		token := s.token(t, owner)

		w, resp = s.do(t, http.MethodPost, "/api/v1/reservations", token, reservation(owner))
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "pending", resp.Data["status"])
		id := resp.Data["id"].(string)

		w, _ = s.do(t, http.MethodPost, "/api/v1/reservations/"+id+"/confirm", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	// capacity 5 reached: the slot reports unavailable
	w, resp = s.do(t, http.MethodGet, "/api/v1/reservations/availability?date=2025-06-01&time=19:00", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, resp.Data["available"].(bool))

	// a sixth create still succeeds (the race is accepted) but confirm is refused
	token := s.token(t, "owner-6")
	w, resp = s.do(t, http.MethodPost, "/api/v1/reservations", token, reservation("owner-6"))
	require.Equal(t, http.StatusCreated, w.Code)
	sixthID := resp.Data["id"].(string)

	w, resp = s.do(t, http.MethodPost, "/api/v1/reservations/"+sixthID+"/confirm", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "NOT_AVAILABLE", resp.Error.Code)

	// cancel is idempotent
	w, _ = s.do(t, http.MethodPost, "/api/v1/reservations/"+sixthID+"/cancel", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(t, http.MethodPost, "/api/v1/reservations/"+sixthID+"/cancel", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// other owners cannot see the reservation
	w, _ = s.do(t, http.MethodGet, "/api/v1/reservations/"+sixthID, s.token(t, "owner-0"), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReservationRejectsUnknownSlot(t *testing.T) {
	s := setupSuite(t)
	token := s.token(t, "owner-e2e")

	w, resp := s.do(t, http.MethodPost, "/api/v1/reservations", token, gin.H{
		"name": "Guest", "email": "g@example.com", "phone": "+77010000000",
		"date": "2025-06-01T12:00:00Z", "time": "16:15", "guests": 2,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
}

func TestFavoritesAnonymousFallsBackToLocal(t *testing.T) {
	s := setupSuite(t)

	// favorites listing works without a session
	w, resp := s.do(t, http.MethodGet, "/api/v1/favorites/menu-items", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)

	// anonymous toggle lands in the device-local cache
	w, resp = s.do(t, http.MethodPost, "/api/v1/favorites/menu-items/item-e2e/toggle", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Data["favorite"].(bool))

	w, resp = s.do(t, http.MethodGet, "/api/v1/favorites/menu-items", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := resp.Data["menuItems"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "local", items[0].(map[string]interface{})["source"])

	// toggling an unknown catalog item is a 404, not a crash
	w, resp = s.do(t, http.MethodPost, "/api/v1/favorites/menu-items/nope/toggle", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestFavoritesAnonymousAddressLifecycle(t *testing.T) {
	s := setupSuite(t)

	// anonymous save lands in the device cache and gets a generated id
	w, resp := s.do(t, http.MethodPost, "/api/v1/favorites/addresses", "", gin.H{
		"address": gin.H{
			"label": "Home", "name": "Dana", "streetAddress": "12 Abay Ave",
			"city": "Almaty", "state": "AL", "postalCode": "050000", "country": "KZ",
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := resp.Data["id"].(string)
	require.NotEmpty(t, id)

	w, resp = s.do(t, http.MethodGet, "/api/v1/favorites/addresses", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	addrs := resp.Data["addresses"].([]interface{})
	require.Len(t, addrs, 1)
	addr := addrs[0].(map[string]interface{})
	assert.Equal(t, id, addr["id"])
	assert.False(t, addr["isFavorite"].(bool))

	// the local-only favorite flag flips in place
	w, _ = s.do(t, http.MethodPut, "/api/v1/favorites/addresses/"+id+"/favorite", "", gin.H{"isFavorite": true})
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = s.do(t, http.MethodGet, "/api/v1/favorites/addresses", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	addrs = resp.Data["addresses"].([]interface{})
	require.Len(t, addrs, 1)
	assert.True(t, addrs[0].(map[string]interface{})["isFavorite"].(bool))

	w, _ = s.do(t, http.MethodDelete, "/api/v1/favorites/addresses/"+id, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = s.do(t, http.MethodGet, "/api/v1/favorites/addresses", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp.Data["addresses"])
}
