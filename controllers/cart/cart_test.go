package cartControllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/talibjameel/gemStore-backend/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Product{}, &models.CartItem{}, &models.Order{},
	))
	return db
}

func setupCartRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", userID) })
	r.GET("/cart", GetCart(db))
	r.POST("/cart/add", AddToCart(db))
	r.DELETE("/cart/delete", DeleteCartItem(db))
	r.PUT("/cart/updateItem", UpdateCartItem(db))
	r.DELETE("/cart/clear", ClearCart(db))
	return r
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64) models.Product {
	product := models.Product{Name: name, Price: price}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func TestAddToCart_UpsertSameVariant(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Ruby Ring", 10)
	r := setupCartRouter(db, "user-1")

	w := postForm(r, "/cart/add", url.Values{
		"product_id": {fmt.Sprint(product.ID)},
		"quantity":   {"2"},
		"color":      {"red"},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = postForm(r, "/cart/add", url.Values{
		"product_id": {fmt.Sprint(product.ID)},
		"quantity":   {"1"},
		"color":      {"red"},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var items []models.CartItem
	require.NoError(t, db.Where("user_id = ?", "user-1").Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, "red", items[0].Color)
}

func TestAddToCart_AbsentVariantsAreEqual(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Plain Band", 5)
	r := setupCartRouter(db, "user-1")

	postForm(r, "/cart/add", url.Values{"product_id": {fmt.Sprint(product.ID)}, "quantity": {"1"}})
	postForm(r, "/cart/add", url.Values{"product_id": {fmt.Sprint(product.ID)}, "quantity": {"4"}})

	var items []models.CartItem
	require.NoError(t, db.Where("user_id = ?", "user-1").Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestAddToCart_DistinctVariantsGetOwnLines(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Gem Pendant", 20)
	r := setupCartRouter(db, "user-1")

	postForm(r, "/cart/add", url.Values{"product_id": {fmt.Sprint(product.ID)}, "color": {"red"}})
	postForm(r, "/cart/add", url.Values{"product_id": {fmt.Sprint(product.ID)}, "color": {"blue"}})
	postForm(r, "/cart/add", url.Values{"product_id": {fmt.Sprint(product.ID)}, "color": {"red"}, "size": {"M"}})

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", "user-1").Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestAddToCart_RemovedLineReinserted(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Ruby Ring", 10)
	r := setupCartRouter(db, "user-1")

	w := postForm(r, "/cart/add", url.Values{"product_id": {fmt.Sprint(product.ID)}, "quantity": {"2"}})
	require.Equal(t, http.StatusCreated, w.Code)

	// The line disappears out from under the next add, e.g. a clear issued
	// from another session.
	require.NoError(t, db.Where("user_id = ?", "user-1").Delete(&models.CartItem{}).Error)

	// The add must report a fresh line, not an update of a row that is gone.
	w = postForm(r, "/cart/add", url.Values{"product_id": {fmt.Sprint(product.ID)}, "quantity": {"3"}})
	assert.Equal(t, http.StatusCreated, w.Code)

	var items []models.CartItem
	require.NoError(t, db.Where("user_id = ?", "user-1").Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestAddToCart_ProductNotFound(t *testing.T) {
	db := setupTestDB(t)
	r := setupCartRouter(db, "user-1")

	w := postForm(r, "/cart/add", url.Values{"product_id": {"999"}})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddToCart_InvalidInput(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Opal Stud", 8)
	r := setupCartRouter(db, "user-1")

	w := postForm(r, "/cart/add", url.Values{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postForm(r, "/cart/add", url.Values{"product_id": {fmt.Sprint(product.ID)}, "quantity": {"0"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postForm(r, "/cart/add", url.Values{"product_id": {fmt.Sprint(product.ID)}, "quantity": {"-3"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCart_TotalPriceFromCurrentPrices(t *testing.T) {
	db := setupTestDB(t)
	ring := seedProduct(t, db, "Ruby Ring", 10)
	pendant := seedProduct(t, db, "Gem Pendant", 20)
	r := setupCartRouter(db, "user-1")

	postForm(r, "/cart/add", url.Values{"product_id": {fmt.Sprint(ring.ID)}, "quantity": {"2"}})
	postForm(r, "/cart/add", url.Values{"product_id": {fmt.Sprint(pendant.ID)}, "quantity": {"1"}})

	// total_price follows the catalog, so a price change shows up on the next read.
	require.NoError(t, db.Model(&ring).Update("price", 15.0).Error)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		TotalPrice float64   `json:"total_price"`
		Data       []CartRow `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2*15.0+20.0, resp.TotalPrice)
	assert.Len(t, resp.Data, 2)
}

func TestDeleteCartItem(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Ruby Ring", 10)
	r := setupCartRouter(db, "user-1")

	postForm(r, "/cart/add", url.Values{"product_id": {fmt.Sprint(product.ID)}})

	var item models.CartItem
	require.NoError(t, db.Where("user_id = ?", "user-1").Take(&item).Error)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/cart/delete",
		strings.NewReader(fmt.Sprintf(`{"cart_id": %d}`, item.ID)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.CartItem{}).Where("user_id = ?", "user-1").Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestDeleteCartItem_NotOwned(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Ruby Ring", 10)

	other := setupCartRouter(db, "user-2")
	postForm(other, "/cart/add", url.Values{"product_id": {fmt.Sprint(product.ID)}})

	var item models.CartItem
	require.NoError(t, db.Where("user_id = ?", "user-2").Take(&item).Error)

	// user-1 must not be able to delete user-2's line
	r := setupCartRouter(db, "user-1")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/cart/delete",
		strings.NewReader(fmt.Sprintf(`{"cart_id": %d}`, item.ID)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	db.Model(&models.CartItem{}).Where("user_id = ?", "user-2").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUpdateCartItem(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Ruby Ring", 10)
	r := setupCartRouter(db, "user-1")

	postForm(r, "/cart/add", url.Values{"product_id": {fmt.Sprint(product.ID)}})

	var item models.CartItem
	require.NoError(t, db.Where("user_id = ?", "user-1").Take(&item).Error)

	put := func(body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/cart/updateItem", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}

	// quantity must be positive
	w := put(fmt.Sprintf(`{"cart_id": %d, "quantity": -1}`, item.ID))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// unknown line
	w = put(`{"cart_id": 999, "quantity": 2}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// full update
	w = put(fmt.Sprintf(`{"cart_id": %d, "quantity": 5, "shipping_cost": 7.5, "shipping_address": "12 Gem St"}`, item.ID))
	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, db.Take(&item, item.ID).Error)
	assert.Equal(t, 5, item.Quantity)
	assert.Equal(t, 7.5, item.ShippingCost)
	assert.Equal(t, "12 Gem St", item.ShippingAddress)

	// omitting shipping fields keeps the stored values
	w = put(fmt.Sprintf(`{"cart_id": %d, "quantity": 2}`, item.ID))
	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, db.Take(&item, item.ID).Error)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, 7.5, item.ShippingCost)
	assert.Equal(t, "12 Gem St", item.ShippingAddress)
}

func TestClearCart_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Ruby Ring", 10)
	r := setupCartRouter(db, "user-1")

	postForm(r, "/cart/add", url.Values{"product_id": {fmt.Sprint(product.ID)}})

	clear := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/cart/clear", nil)
		r.ServeHTTP(w, req)
		return w
	}

	w := clear()
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"items_removed":1`)

	// clearing an already-empty cart still succeeds
	w = clear()
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"items_removed":0`)
}
