package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ucqdev/cuahquick/app/models"
	"github.com/ucqdev/cuahquick/app/routes"
	"github.com/ucqdev/cuahquick/pkg/auth"
	"github.com/ucqdev/cuahquick/pkg/orm"
	"github.com/ucqdev/cuahquick/pkg/router"
	"github.com/ucqdev/cuahquick/pkg/storage"
	"github.com/ucqdev/cuahquick/pkg/testkit"
)


func orderPath(id uint) string { return fmt.Sprintf("/api/shop/orders/%d", id) }

// newAPI wires a fresh router against an in-memory database.
func newAPI(t *testing.T) http.Handler {
	t.Helper()
	testkit.SetupDB(t, &models.User{}, &models.Order{}, &models.Product{})
	r := router.New()
	routes.RegisterAPI(r)
	return r.Handler()
}

func seedShopUser(t *testing.T) (models.User, string) {
	t.Helper()
	user := models.User{
		FullName: "Cafeteria",
		Email:    "shop@ucq.edu.mx",
		Password: "hash",
		Phone:    "4420000000",
		Role:     models.RoleShop,
	}
	require.NoError(t, orm.DB().Create(&user))
	token, err := auth.GenerateToken(user.ID, user.Role, user.Email)
	require.NoError(t, err)
	return user, token
}

func registerAna(t *testing.T, api http.Handler) (token string) {
	t.Helper()
	rec := testkit.Do(api, testkit.JSONRequest(http.MethodPost, "/api/register", map[string]string{
		"full_name":  "Ana Ruiz",
		"email":      "aruiz20045@ucq.edu.mx",
		"password":   "p@ss1234",
		"phone":      "4421234567",
		"student_id": "20045",
	}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body struct {
		Token string `json:"token"`
		User  struct {
			ID        uint   `json:"id"`
			FullName  string `json:"full_name"`
			Role      string `json:"role"`
			StudentID string `json:"student_id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Ana Ruiz", body.User.FullName)
	assert.Equal(t, models.RoleClient, body.User.Role)
	assert.Equal(t, "20045", body.User.StudentID)
	require.NotEmpty(t, body.Token)
	return body.Token
}

func TestRegisterEndpoint(t *testing.T) {
	api := newAPI(t)
	registerAna(t, api)

	// Same email again: conflict, and the body must not say which field.
	rec := testkit.Do(api, testkit.JSONRequest(http.MethodPost, "/api/register", map[string]string{
		"full_name":  "Ana Ruiz",
		"email":      "aruiz20045@ucq.edu.mx",
		"password":   "p@ss1234",
		"phone":      "4421234567",
		"student_id": "20045",
	}))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "DuplicateUser", testkit.ErrorCode(t, rec))
	assert.NotContains(t, rec.Body.String(), "email already")

	rec = testkit.Do(api, testkit.JSONRequest(http.MethodPost, "/api/register", map[string]string{
		"full_name":  "Luis",
		"email":      "luis33@gmail.com",
		"password":   "x",
		"phone":      "442",
		"student_id": "33",
	}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "InvalidDomain", testkit.ErrorCode(t, rec))
}

func TestLoginEndpoint(t *testing.T) {
	api := newAPI(t)
	registerAna(t, api)

	rec := testkit.Do(api, testkit.JSONRequest(http.MethodPost, "/api/login", map[string]string{
		"email":    "aruiz20045@ucq.edu.mx",
		"password": "p@ss1234",
	}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = testkit.Do(api, testkit.JSONRequest(http.MethodPost, "/api/login", map[string]string{
		"email":    "aruiz20045@ucq.edu.mx",
		"password": "nope",
	}))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "InvalidCredentials", testkit.ErrorCode(t, rec))
}

func TestCreateOrderEndpoint(t *testing.T) {
	api := newAPI(t)
	token := registerAna(t, api)

	orderBody := map[string]interface{}{
		"shop_id":   1,
		"total":     85.5,
		"building":  "D",
		"classroom": "D-204",
	}

	// No token: rejected before the handler runs.
	rec := testkit.Do(api, testkit.JSONRequest(http.MethodPost, "/api/orders", orderBody))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "MissingToken", testkit.ErrorCode(t, rec))

	rec = testkit.Do(api, testkit.Authed(testkit.JSONRequest(http.MethodPost, "/api/orders", orderBody), token))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body struct {
		OrderID uint `json:"order_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotZero(t, body.OrderID)

	var order models.Order
	require.NoError(t, orm.DB().Model(&models.Order{}).Where("id = ?", body.OrderID).First(&order))
	assert.Equal(t, models.StatusPending, order.Status)
}

func TestShopQueueEndpoint(t *testing.T) {
	api := newAPI(t)
	clientToken := registerAna(t, api)
	_, shopToken := seedShopUser(t)

	rec := testkit.Do(api, testkit.Authed(testkit.JSONRequest(http.MethodPost, "/api/orders", map[string]interface{}{
		"shop_id": 1, "total": 42.0, "building": "A", "classroom": "A-101",
	}), clientToken))
	require.Equal(t, http.StatusCreated, rec.Code)

	// Clients cannot see the queue.
	rec = testkit.Do(api, testkit.Authed(testkit.JSONRequest(http.MethodGet, "/api/shop/orders", nil), clientToken))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Forbidden", testkit.ErrorCode(t, rec))

	rec = testkit.Do(api, testkit.Authed(testkit.JSONRequest(http.MethodGet, "/api/shop/orders", nil), shopToken))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Orders []struct {
			Status      string `json:"status"`
			ClientName  string `json:"client_name"`
			ClientPhone string `json:"client_phone"`
		} `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Orders, 1)
	assert.Equal(t, models.StatusPending, body.Orders[0].Status)
	assert.Equal(t, "Ana Ruiz", body.Orders[0].ClientName)
	assert.Equal(t, "4421234567", body.Orders[0].ClientPhone)
}

func TestUpdateOrderStatusEndpoint(t *testing.T) {
	api := newAPI(t)
	clientToken := registerAna(t, api)
	_, shopToken := seedShopUser(t)

	rec := testkit.Do(api, testkit.Authed(testkit.JSONRequest(http.MethodPost, "/api/orders", map[string]interface{}{
		"shop_id": 1, "total": 42.0, "building": "A", "classroom": "A-101",
	}), clientToken))
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		OrderID uint `json:"order_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = testkit.Do(api, testkit.Authed(testkit.JSONRequest(http.MethodPut,
		orderPath(created.OrderID), map[string]string{"status": "preparing"}), shopToken))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = testkit.Do(api, testkit.Authed(testkit.JSONRequest(http.MethodPut,
		orderPath(created.OrderID), map[string]string{"status": "shipped"}), shopToken))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "InvalidStatus", testkit.ErrorCode(t, rec))

	rec = testkit.Do(api, testkit.Authed(testkit.JSONRequest(http.MethodPut,
		"/api/shop/orders/99999", map[string]string{"status": "ready"}), shopToken))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "OrderNotFound", testkit.ErrorCode(t, rec))
}

func TestMenuEndpoint(t *testing.T) {
	api := newAPI(t)

	products := []models.Product{
		{ShopID: 1, Name: "Torta de pierna", Price: 45, Available: true},
		{ShopID: 1, Name: "Agua de horchata", Price: 20, Available: true},
		{ShopID: 1, Name: "Fuera de temporada", Price: 99, Available: false},
	}
	for i := range products {
		require.NoError(t, orm.DB().Create(&products[i]))
	}

	rec := testkit.Do(api, testkit.JSONRequest(http.MethodGet, "/api/menu", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Products []models.Product `json:"products"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Products, 2, "unavailable items stay off the menu")
	assert.Equal(t, "Agua de horchata", body.Products[0].Name, "name order")
}

func TestUploadProductImageEndpoint(t *testing.T) {
	api := newAPI(t)
	defer storage.Fake(t.TempDir())()

	_, token := seedShopUser(t)
	product := models.Product{ShopID: 1, Name: "Torta de pierna", Price: 45, Available: true}
	require.NoError(t, orm.DB().Create(&product))

	upload := func(id uint) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		form := multipart.NewWriter(&buf)
		part, err := form.CreateFormFile("image", "torta.png")
		require.NoError(t, err)
		_, err = part.Write([]byte("not-really-a-png"))
		require.NoError(t, err)
		require.NoError(t, form.Close())

		req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/shop/products/%d/image", id), &buf)
		req.Header.Set("Content-Type", form.FormDataContentType())
		return testkit.Do(api, testkit.Authed(req, token))
	}

	rec := upload(product.ID)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, storage.Exists(fmt.Sprintf("products/%d.png", product.ID)))

	// Unknown product: rejected before anything reaches the disk.
	rec = upload(99999)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "ProductNotFound", testkit.ErrorCode(t, rec))
	assert.False(t, storage.Exists("products/99999.png"))
}
