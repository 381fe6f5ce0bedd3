package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ecommerce-services/internal/backend"
	"ecommerce-services/internal/core/config"
	"ecommerce-services/internal/core/health"
	"ecommerce-services/internal/service"
)

func init() { gin.SetMode(gin.TestMode) }

func testDeps(store health.Pinger) Deps {
	return Deps{
		Name: "test",
		Log:  zap.NewNop(),
		Limits: config.Limits{
			MaxConcurrent:     16,
			MaxBodyBytes:      1 << 16,
			RequestTimeoutSec: 5,
		},
		Store: store,
	}
}

func userEngine(t *testing.T) http.Handler {
	t.Helper()
	b := backend.Memory()
	return NewUserEngine(testDeps(b), service.NewUserService(b.Users, zap.NewNop()))
}

func productEngine(t *testing.T) http.Handler {
	t.Helper()
	b := backend.Memory()
	return NewProductEngine(testDeps(b), service.NewProductService(b.Products, zap.NewNop()))
}

func call(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func object(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m), w.Body.String())
	return m
}

func array(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var a []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &a), w.Body.String())
	return a
}

const adaJSON = `{"firstName":"Ada","lastName":"Lovelace","email":"ada@x.io","phone":"1234567890"}`

const laptopJSON = `{"sku":"LAP-001","name":"Laptop","price":999.99,"stock":50,"category":"Electronics"}`

func TestUserLifecycle(t *testing.T) {
	h := userEngine(t)

	// 创建
	w := call(h, http.MethodPost, "/api/users", adaJSON)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	u := object(t, w)
	id, _ := u["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "Ada Lovelace", u["fullName"])
	assert.Equal(t, u["createdAt"], u["updatedAt"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	// 重复 email
	w = call(h, http.MethodPost, "/api/users", adaJSON)
	require.Equal(t, http.StatusConflict, w.Code)
	e := object(t, w)
	assert.Equal(t, "Conflict", e["error"])
	assert.Contains(t, e["message"], "ada@x.io")
	assert.Equal(t, float64(409), e["status"])
	assert.Equal(t, "/api/users", e["path"])

	// 查询
	w = call(h, http.MethodGet, "/api/users/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, u, object(t, w))

	w = call(h, http.MethodGet, "/api/users/email/ada@x.io", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, object(t, w)["id"])

	w = call(h, http.MethodGet, "/api/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, array(t, w), 1)

	// 更新：同一 email 不算冲突
	w = call(h, http.MethodPut, "/api/users/"+id, `{"firstName":"Ada","lastName":"King","email":"ada@x.io"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Ada King", object(t, w)["fullName"])

	// 删除后 404，path 为请求路径
	w = call(h, http.MethodDelete, "/api/users/"+id, "")
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = call(h, http.MethodGet, "/api/users/"+id, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	e = object(t, w)
	assert.Equal(t, "/api/users/"+id, e["path"])
	assert.Equal(t, "User not found with ID: "+id, e["message"])
	assert.Equal(t, "Not Found", e["error"])

	w = call(h, http.MethodDelete, "/api/users/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserUpdateToTakenEmail(t *testing.T) {
	h := userEngine(t)

	require.Equal(t, http.StatusCreated, call(h, http.MethodPost, "/api/users", adaJSON).Code)
	w := call(h, http.MethodPost, "/api/users", `{"firstName":"Grace","lastName":"Hopper","email":"grace@x.io"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	id := object(t, w)["id"].(string)

	w = call(h, http.MethodPut, "/api/users/"+id, adaJSON)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = call(h, http.MethodPut, "/api/users/missing", adaJSON)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserValidation(t *testing.T) {
	h := userEngine(t)

	w := call(h, http.MethodPost, "/api/users", `{"firstName":" ","email":"not-an-email","phone":"12345"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	e := object(t, w)
	assert.Equal(t, "Validation Failed", e["error"])
	assert.NotContains(t, e, "message")
	assert.Equal(t, map[string]any{
		"firstName": "First name is required",
		"lastName":  "Last name is required",
		"email":     "Email must be valid",
		"phone":     "Phone must be 10 digits",
	}, e["errors"])

	// phone 可省略
	w = call(h, http.MethodPost, "/api/users", `{"firstName":"Ada","lastName":"Lovelace","email":"ada@x.io"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, object(t, w), "phone")

	w = call(h, http.MethodPost, "/api/users", `{"firstName":`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, object(t, w)["message"], "Malformed request body")

	w = call(h, http.MethodPost, "/api/users", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductLifecycle(t *testing.T) {
	h := productEngine(t)

	w := call(h, http.MethodPost, "/api/products", laptopJSON)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	p := object(t, w)
	id := p["id"].(string)
	assert.Equal(t, true, p["inStock"])
	assert.Equal(t, 999.99, p["price"])
	assert.Contains(t, w.Body.String(), `"price":999.99`)

	w = call(h, http.MethodPost, "/api/products", laptopJSON)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Product with SKU already exists: LAP-001", object(t, w)["message"])

	w = call(h, http.MethodGet, "/api/products/sku/LAP-001", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, object(t, w)["id"])

	w = call(h, http.MethodGet, "/api/products/search?query=lap", "")
	require.Equal(t, http.StatusOK, w.Code)
	found := array(t, w)
	require.Len(t, found, 1)
	assert.Equal(t, "Laptop", found[0]["name"])

	w = call(h, http.MethodGet, "/api/products/search", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, array(t, w), 1)

	w = call(h, http.MethodGet, "/api/products/category/Electronics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, array(t, w), 1)
	w = call(h, http.MethodGet, "/api/products/category/electronics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, array(t, w))

	// 毫秒级时钟，等一下确保 updatedAt 可见地前进
	time.Sleep(5 * time.Millisecond)
	w = call(h, http.MethodPatch, "/api/products/"+id+"/stock?quantity=0", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Empty(t, w.Body.String())

	w = call(h, http.MethodGet, "/api/products/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	after := object(t, w)
	assert.Equal(t, float64(0), after["stock"])
	assert.Equal(t, false, after["inStock"])
	assert.Equal(t, p["createdAt"], after["createdAt"])
	assert.NotEqual(t, p["updatedAt"], after["updatedAt"])

	w = call(h, http.MethodPut, "/api/products/"+id,
		`{"sku":"LAP-001","name":"Laptop Pro","price":"1499.50","stock":3,"category":"Electronics"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1499.5, object(t, w)["price"])

	w = call(h, http.MethodDelete, "/api/products/"+id, "")
	require.Equal(t, http.StatusNoContent, w.Code)
	w = call(h, http.MethodGet, "/api/products/"+id, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found with ID: "+id, object(t, w)["message"])
}

func TestProductValidation(t *testing.T) {
	h := productEngine(t)

	w := call(h, http.MethodPost, "/api/products", `{"sku":"P-1","name":"Free","price":0,"stock":-1,"category":"Misc"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string]any{
		"price": "Price must be greater than 0",
		"stock": "Stock cannot be negative",
	}, object(t, w)["errors"])

	w = call(h, http.MethodPost, "/api/products", `{"name":"NoSku","category":"Misc"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string]any{
		"sku":   "SKU is required",
		"price": "Price is required",
		"stock": "Stock is required",
	}, object(t, w)["errors"])

	w = call(h, http.MethodPost, "/api/products", `{"sku":"P-2","name":"Neg","price":-5,"stock":0,"category":"Misc"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Price must be greater than 0", object(t, w)["errors"].(map[string]any)["price"])

	for _, price := range []string{"0.00001", "1000000000000000", "12.34567"} {
		w = call(h, http.MethodPost, "/api/products", `{"sku":"P-X","name":"Odd","price":`+price+`,"stock":1,"category":"Misc"}`)
		require.Equal(t, http.StatusBadRequest, w.Code, price)
		assert.Equal(t, "Price must have at most 15 integer digits and 4 decimal places",
			object(t, w)["errors"].(map[string]any)["price"], price)
	}

	w = call(h, http.MethodPost, "/api/products", `{"sku":"P-4","name":"Max","price":999999999999999.9999,"stock":1,"category":"Misc"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"price":999999999999999.9999`)

	w = call(h, http.MethodPost, "/api/products", `{"sku":"P-3","name":"Zero stock","price":1,"stock":0,"category":"Misc"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := object(t, w)["id"].(string)

	w = call(h, http.MethodPatch, "/api/products/"+id+"/stock?quantity=-1", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Quantity cannot be negative", object(t, w)["errors"].(map[string]any)["quantity"])

	w = call(h, http.MethodPatch, "/api/products/"+id+"/stock", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Quantity is required", object(t, w)["errors"].(map[string]any)["quantity"])

	w = call(h, http.MethodPatch, "/api/products/"+id+"/stock?quantity=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = call(h, http.MethodPatch, "/api/products/missing/stock?quantity=1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBodyTooLarge(t *testing.T) {
	b := backend.Memory()
	d := testDeps(b)
	d.Limits.MaxBodyBytes = 16
	h := NewUserEngine(d, service.NewUserService(b.Users, zap.NewNop()))

	w := call(h, http.MethodPost, "/api/users", adaJSON)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestProbes(t *testing.T) {
	h := userEngine(t)

	w := call(h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"UP"}`, w.Body.String())

	w = call(h, http.MethodGet, "/ready", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "UP", object(t, w)["status"])

	w = call(h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestReadyReportsStoreDown(t *testing.T) {
	down := health.PingFunc(func(context.Context) error { return errors.New("no reachable servers") })
	b := backend.Memory()
	h := NewUserEngine(testDeps(down), service.NewUserService(b.Users, zap.NewNop()))

	w := call(h, http.MethodGet, "/ready", "")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	st := object(t, w)
	assert.Equal(t, "DOWN", st["status"])
	assert.Contains(t, st["checks"].(map[string]any)["store"], "no reachable servers")
}

func TestStoreOutageIsGeneric500(t *testing.T) {
	b := backend.Memory()
	svc := service.NewUserService(failingUsers{b.Users}, zap.NewNop())
	h := NewUserEngine(testDeps(b), svc)

	w := call(h, http.MethodGet, "/api/users", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	e := object(t, w)
	assert.Equal(t, "An unexpected error occurred", e["message"])
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestQueuedRequestBoundedByTimeout(t *testing.T) {
	b := backend.Memory()
	slow := blockingUsers{UserRepository: b.Users, entered: make(chan struct{}, 1), release: make(chan struct{})}
	d := testDeps(b)
	d.Limits.MaxConcurrent = 1
	d.Limits.RequestTimeoutSec = 1
	h := NewUserEngine(d, service.NewUserService(slow, zap.NewNop()))

	first := make(chan int, 1)
	go func() { first <- call(h, http.MethodGet, "/api/users", "").Code }()
	<-slow.entered

	start := time.Now()
	w := call(h, http.MethodGet, "/api/users", "")
	elapsed := time.Since(start)
	close(slow.release)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "Server busy, retry later", object(t, w)["message"])
	assert.Less(t, elapsed, 3*time.Second)
	assert.Contains(t, []int{http.StatusOK, http.StatusGatewayTimeout}, <-first)
}

func TestClientPerSecond(t *testing.T) {
	assert.Equal(t, int64(50), clientPerSecond(50))
	assert.Equal(t, int64(3), clientPerSecond(2.5))
	assert.Equal(t, int64(1), clientPerSecond(0.2))
}
