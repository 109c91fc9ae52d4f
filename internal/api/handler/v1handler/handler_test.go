package v1handler_test

import (
	"bytes"
	"context"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"stays/internal/api/handler/v1handler"
	"stays/internal/directory"
	"stays/pkg/credential"
	"stays/pkg/domain"
	"stays/pkg/logger"
	"stays/pkg/storage/memory"
)

// testEnv is a fully wired v1 surface plus the pieces tests need to reach
// behind it: the memory backing for seeding and the issuer for minting tokens
// the login route cannot produce, such as admin tokens.
type testEnv struct {
	handler http.Handler
	mem     *memory.Memory
	tokens  *v1handler.TokenIssuer
}

// newTestEnv wires the full v1 surface (routes, sec middleware, token issuer)
// on top of a memory-backed directory.
func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	logger.Setup(logger.DevelopmentEnvironment)

	priv, pubPEM := genRSAKeys(t)
	privPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(priv),
	})

	tokens, err := v1handler.NewTokenIssuer(&v1handler.TokenIssuerOptions{
		PrivateKey: string(privPEM),
		TTL:        time.Hour,
	})
	require.NoError(t, err)

	sec, err := v1handler.NewSecHandler(&v1handler.SecHandlerOptions{PublicKey: pubPEM})
	require.NoError(t, err)

	mem := memory.New()
	t.Cleanup(func() { _ = mem.Close() })

	d := directory.New(mem,
		credential.BcryptHasher{Cost: bcrypt.MinCost},
		directory.Options{PlaceCreatePolicy: directory.PlaceCreateOwner})

	mux := http.NewServeMux()
	v1handler.New(v1handler.Deps{Directory: d, Tokens: tokens}).Register(mux, sec)

	return testEnv{handler: mux, mem: mem, tokens: tokens}
}

func newTestMux(t *testing.T) http.Handler {
	t.Helper()

	return newTestEnv(t).handler
}

// adminToken seeds an admin account directly in storage and signs a token
// for it.
func (e testEnv) adminToken(t *testing.T, email string) string {
	t.Helper()

	admin, err := e.mem.StoreUser(context.Background(), domain.User{
		FirstName:  "Root",
		LastName:   "Admin",
		Email:      email,
		Credential: "$2a$04$seeded",
		IsAdmin:    true,
	})
	require.NoError(t, err)

	token, _, err := e.tokens.Issue(admin)
	require.NoError(t, err)

	return token
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))

	return out
}

// registerAndLogin registers an account and returns its id and access token.
func registerAndLogin(t *testing.T, h http.Handler, email string) (string, string) {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/v1/users", "", map[string]any{
		"firstName": "Test",
		"lastName":  "User",
		"email":     email,
		"password":  "hunter2!",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id, _ := decodeBody(t, rec)["id"].(string)
	require.NotEmpty(t, id)

	rec = doJSON(t, h, http.MethodPost, "/v1/auth/login", "", map[string]any{
		"email":    email,
		"password": "hunter2!",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token, _ := decodeBody(t, rec)["token"].(string)
	require.NotEmpty(t, token)

	return id, token
}

func TestAPI_RegisterAndLogin(t *testing.T) {
	h := newTestMux(t)

	rec := doJSON(t, h, http.MethodPost, "/v1/users", "", map[string]any{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"email":     "ada@example.com",
		"password":  "s3cret",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	require.Equal(t, "ada@example.com", body["email"])
	// the credential never leaves the service
	require.NotContains(t, rec.Body.String(), "s3cret")
	require.NotContains(t, rec.Body.String(), "credential")

	t.Run("duplicate email", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/v1/users", "", map[string]any{
			"firstName": "Ada",
			"lastName":  "Again",
			"email":     "ADA@example.com",
			"password":  "pw",
		})
		require.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("validation error names the field", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/v1/users", "", map[string]any{
			"firstName": "",
			"lastName":  "L",
			"email":     "x@y.zz",
			"password":  "pw",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "firstName", decodeBody(t, rec)["field"])
	})

	t.Run("unknown body field rejected", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/v1/users", "", map[string]any{
			"firstName": "Ada",
			"lastname":  "wrong case",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/v1/auth/login", "", map[string]any{
			"email":    "ada@example.com",
			"password": "wrong",
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAPI_UserRoutes(t *testing.T) {
	h := newTestMux(t)
	id, token := registerAndLogin(t, h, "ada@example.com")

	t.Run("list requires auth", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/v1/users", "", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		rec = doJSON(t, h, http.MethodGet, "/v1/users", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("profile is public", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/v1/users/"+id, "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("self update", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPut, "/v1/users/"+id, token, map[string]any{
			"firstName": "Adeline",
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		require.Equal(t, "Adeline", decodeBody(t, rec)["firstName"])
	})

	t.Run("cannot self-grant admin", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPut, "/v1/users/"+id, token, map[string]any{
			"isAdmin": true,
		})
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/v1/users/not-a-uuid", "", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAPI_PlaceRoutes(t *testing.T) {
	h := newTestMux(t)
	_, ownerToken := registerAndLogin(t, h, "owner@example.com")
	_, guestToken := registerAndLogin(t, h, "guest@example.com")

	rec := doJSON(t, h, http.MethodPost, "/v1/amenities", ownerToken, map[string]any{"name": "Wi-Fi"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	amenityID, _ := decodeBody(t, rec)["id"].(string)

	t.Run("anonymous cannot create", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/v1/places", "", map[string]any{
			"title": "Flat", "price": 10,
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	rec = doJSON(t, h, http.MethodPost, "/v1/places", ownerToken, map[string]any{
		"title":      "Canal flat",
		"price":      120,
		"latitude":   48.85,
		"longitude":  2.35,
		"amenityIds": []string{amenityID},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	placeBody := decodeBody(t, rec)
	placeID, _ := placeBody["id"].(string)
	require.NotEmpty(t, placeID)
	require.NotNil(t, placeBody["owner"])

	t.Run("listing is public", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/v1/places", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doJSON(t, h, http.MethodGet, "/v1/places/"+placeID, "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("invalid price", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/v1/places", ownerToken, map[string]any{
			"title": "Free flat", "price": 0,
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "price", decodeBody(t, rec)["field"])
	})

	t.Run("non-owner cannot update", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPut, "/v1/places/"+placeID, guestToken, map[string]any{
			"title": "Mine now",
		})
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("review lifecycle", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/v1/reviews", guestToken, map[string]any{
			"placeId": placeID, "text": "Great stay", "rating": 5,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		reviewID, _ := decodeBody(t, rec)["id"].(string)

		// owner cannot review their own place
		rec = doJSON(t, h, http.MethodPost, "/v1/reviews", ownerToken, map[string]any{
			"placeId": placeID, "text": "Lovely", "rating": 5,
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		// one review per author and place
		rec = doJSON(t, h, http.MethodPost, "/v1/reviews", guestToken, map[string]any{
			"placeId": placeID, "text": "Again", "rating": 4,
		})
		require.Equal(t, http.StatusConflict, rec.Code)

		rec = doJSON(t, h, http.MethodGet, "/v1/places/"+placeID+"/reviews", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), reviewID)

		// author edits, others cannot
		rec = doJSON(t, h, http.MethodPut, "/v1/reviews/"+reviewID, ownerToken, map[string]any{
			"rating": 1,
		})
		require.Equal(t, http.StatusForbidden, rec.Code)

		rec = doJSON(t, h, http.MethodPut, "/v1/reviews/"+reviewID, guestToken, map[string]any{
			"rating": 4,
		})
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("delete cascades reviews", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodDelete, "/v1/places/"+placeID, guestToken, nil)
		require.Equal(t, http.StatusForbidden, rec.Code)

		rec = doJSON(t, h, http.MethodDelete, "/v1/places/"+placeID, ownerToken, nil)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = doJSON(t, h, http.MethodGet, "/v1/places/"+placeID, "", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)

		rec = doJSON(t, h, http.MethodGet, "/v1/reviews", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotContains(t, rec.Body.String(), placeID)
	})
}

func TestAPI_AmenityRoutes(t *testing.T) {
	env := newTestEnv(t)
	h := env.handler
	_, token := registerAndLogin(t, h, "user@example.com")

	rec := doJSON(t, h, http.MethodPost, "/v1/amenities", token, map[string]any{"name": "Pool"})
	require.Equal(t, http.StatusCreated, rec.Code)
	amenityID, _ := decodeBody(t, rec)["id"].(string)

	t.Run("duplicate name", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/v1/amenities", token, map[string]any{"name": "POOL"})
		require.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("rename is admin only", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPut, "/v1/amenities/"+amenityID, token, map[string]any{
			"name": "Swimming pool",
		})
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("list and get are public", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/v1/amenities", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doJSON(t, h, http.MethodGet, "/v1/amenities/"+amenityID, "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("delete is admin only", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodDelete, "/v1/amenities/"+amenityID, token, nil)
		require.Equal(t, http.StatusForbidden, rec.Code)

		adminTok := env.adminToken(t, "root@example.com")
		rec = doJSON(t, h, http.MethodDelete, "/v1/amenities/"+amenityID, adminTok, nil)
		require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

		rec = doJSON(t, h, http.MethodGet, "/v1/amenities/"+amenityID, "", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)

		rec = doJSON(t, h, http.MethodDelete, "/v1/amenities/"+amenityID, adminTok, nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAPI_ResetPassword(t *testing.T) {
	h := newTestMux(t)
	_, token := registerAndLogin(t, h, "ada@example.com")
	_, otherToken := registerAndLogin(t, h, "eve@example.com")

	t.Run("cannot reset someone else's password", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/v1/auth/reset_password", otherToken, map[string]any{
			"email": "ada@example.com", "password": "stolen",
		})
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("self reset", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/v1/auth/reset_password", token, map[string]any{
			"email": "ada@example.com", "password": "n3wpass",
		})
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = doJSON(t, h, http.MethodPost, "/v1/auth/login", "", map[string]any{
			"email": "ada@example.com", "password": "n3wpass",
		})
		require.Equal(t, http.StatusOK, rec.Code)
	})
}
