package service

import (
	"fmt"
	"os"
	"testing"

	"go-retail-ws/internal/apperr"
	"go-retail-ws/internal/model"
	"go-retail-ws/internal/repository"
	"go-retail-ws/internal/ws"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB connects to the database named by DATABASE_URL_TEST, or skips.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL_TEST")
	if dsn == "" {
		t.Skip("DATABASE_URL_TEST not set; skipping database integration test")
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.ClientType{},
		&model.Category{},
		&model.Size{},
		&model.Customer{},
		&model.Product{},
		&model.Sale{},
		&model.SaleItem{},
	))
	return db
}

func newTestCheckout(t *testing.T, db *gorm.DB) CheckoutService {
	t.Helper()
	hub := ws.NewHub()
	go hub.Run()
	return NewCheckoutService(db, repository.NewProductRepo(db), hub, zaptest.NewLogger(t))
}

func createTestProduct(t *testing.T, db *gorm.DB, stock int, clientTypeID *uuid.UUID) *model.Product {
	t.Helper()
	product := &model.Product{
		Name:         fmt.Sprintf("TEST PRODUCT %s", uuid.NewString()[:8]),
		Price:        50000,
		Stock:        stock,
		ClientTypeID: clientTypeID,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func uniqueEmail() string {
	return fmt.Sprintf("checkout-%s@example.com", uuid.NewString()[:8])
}

func TestCheckoutHappyPath(t *testing.T) {
	db := openTestDB(t)
	svc := newTestCheckout(t, db)

	clientType := model.ClientType{Name: "checkout-test-" + uuid.NewString()[:8]}
	require.NoError(t, db.Create(&clientType).Error)

	product := createTestProduct(t, db, 10, &clientType.ID)
	email := uniqueEmail()

	sale, err := svc.Checkout(&model.CheckoutRequest{
		CustomerName:  "Ana Torres",
		CustomerEmail: email,
		CustomerPhone: "3001234567",
		Items: []model.CheckoutItem{
			{ProductID: product.ID, Quantity: 2, Price: 50000},
		},
		Total: 100000,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, model.SaleStatusCompleted, sale.Status)
	assert.InDelta(t, 100000, sale.Total, 0.01)
	require.NotNil(t, sale.ClientTypeID)
	assert.Equal(t, clientType.ID, *sale.ClientTypeID)

	// Stock decremented atomically with the sale.
	var reloaded model.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 8, reloaded.Stock)

	// Customer created by the upsert path.
	var customer model.Customer
	require.NoError(t, db.First(&customer, "email = ?", email).Error)
	assert.Equal(t, "Ana Torres", customer.Name)
	assert.Equal(t, customer.ID, sale.CustomerID)

	// Line items persisted.
	var items []model.SaleItem
	require.NoError(t, db.Find(&items, "sale_id = ?", sale.ID).Error)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestCheckoutInsufficientStockRollsBackEverything(t *testing.T) {
	db := openTestDB(t)
	svc := newTestCheckout(t, db)

	product := createTestProduct(t, db, 1, nil)
	email := uniqueEmail()

	_, err := svc.Checkout(&model.CheckoutRequest{
		CustomerName:  "Ana Torres",
		CustomerEmail: email,
		Items: []model.CheckoutItem{
			{ProductID: product.ID, Quantity: 2, Price: 50000},
		},
		Total: 100000,
	}, nil)

	var stockErr *apperr.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, product.ID, stockErr.ProductID)
	assert.Equal(t, 1, stockErr.Available)
	assert.Equal(t, 2, stockErr.Requested)

	// Stock untouched.
	var reloaded model.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 1, reloaded.Stock)

	// The customer insert rolled back with the rest of the transaction.
	var count int64
	require.NoError(t, db.Model(&model.Customer{}).Where("email = ?", email).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCheckoutDuplicateLineOversellRollsBack(t *testing.T) {
	db := openTestDB(t)
	svc := newTestCheckout(t, db)

	product := createTestProduct(t, db, 5, nil)
	email := uniqueEmail()

	// Two lines of the same product; each fits the stock alone, the pair
	// does not.
	_, err := svc.Checkout(&model.CheckoutRequest{
		CustomerName:  "Ana Torres",
		CustomerEmail: email,
		Items: []model.CheckoutItem{
			{ProductID: product.ID, Quantity: 3, Price: 50000},
			{ProductID: product.ID, Quantity: 3, Price: 50000},
		},
		Total: 300000,
	}, nil)

	var stockErr *apperr.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, product.ID, stockErr.ProductID)
	assert.Equal(t, 5, stockErr.Available)
	assert.Equal(t, 6, stockErr.Requested)

	var reloaded model.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 5, reloaded.Stock)

	var count int64
	require.NoError(t, db.Model(&model.Customer{}).Where("email = ?", email).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCheckoutDuplicateLinesWithinStock(t *testing.T) {
	db := openTestDB(t)
	svc := newTestCheckout(t, db)

	product := createTestProduct(t, db, 5, nil)

	sale, err := svc.Checkout(&model.CheckoutRequest{
		CustomerName:  "Ana Torres",
		CustomerEmail: uniqueEmail(),
		Items: []model.CheckoutItem{
			{ProductID: product.ID, Quantity: 2, Price: 50000},
			{ProductID: product.ID, Quantity: 3, Price: 50000},
		},
		Total: 250000,
	}, nil)
	require.NoError(t, err)
	require.Len(t, sale.Items, 2)

	var reloaded model.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 0, reloaded.Stock)
}

func TestCheckoutUnknownProduct(t *testing.T) {
	db := openTestDB(t)
	svc := newTestCheckout(t, db)

	_, err := svc.Checkout(&model.CheckoutRequest{
		CustomerName:  "Ana Torres",
		CustomerEmail: uniqueEmail(),
		Items: []model.CheckoutItem{
			{ProductID: uuid.New(), Quantity: 1, Price: 50000},
		},
		Total: 50000,
	}, nil)

	var validation *apperr.ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestCheckoutExplicitCustomerNotFound(t *testing.T) {
	db := openTestDB(t)
	svc := newTestCheckout(t, db)

	product := createTestProduct(t, db, 5, nil)
	missing := uuid.New()

	_, err := svc.Checkout(&model.CheckoutRequest{
		CustomerID: &missing,
		Items: []model.CheckoutItem{
			{ProductID: product.ID, Quantity: 1, Price: 50000},
		},
		Total: 50000,
	}, nil)

	var notFound *apperr.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestCheckoutUpsertsExistingCustomerByEmail(t *testing.T) {
	db := openTestDB(t)
	svc := newTestCheckout(t, db)

	product := createTestProduct(t, db, 10, nil)
	email := uniqueEmail()

	first, err := svc.Checkout(&model.CheckoutRequest{
		CustomerName:  "Ana Torres",
		CustomerEmail: email,
		Items:         []model.CheckoutItem{{ProductID: product.ID, Quantity: 1, Price: 50000}},
		Total:         50000,
	}, nil)
	require.NoError(t, err)

	second, err := svc.Checkout(&model.CheckoutRequest{
		CustomerName:  "Ana T.",
		CustomerEmail: email,
		CustomerPhone: "3009998877",
		Items:         []model.CheckoutItem{{ProductID: product.ID, Quantity: 1, Price: 50000}},
		Total:         50000,
	}, nil)
	require.NoError(t, err)

	// Same customer record, refreshed contact details, no duplicate rows.
	assert.Equal(t, first.CustomerID, second.CustomerID)

	var customer model.Customer
	require.NoError(t, db.First(&customer, "id = ?", second.CustomerID).Error)
	assert.Equal(t, "Ana T.", customer.Name)
	require.NotNil(t, customer.Phone)
	assert.Equal(t, "3009998877", *customer.Phone)

	var count int64
	require.NoError(t, db.Model(&model.Customer{}).Where("email = ?", email).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCheckoutRejectsInvalidPayload(t *testing.T) {
	db := openTestDB(t)
	svc := newTestCheckout(t, db)

	t.Run("no items", func(t *testing.T) {
		_, err := svc.Checkout(&model.CheckoutRequest{
			CustomerName:  "Ana",
			CustomerEmail: uniqueEmail(),
			Total:         100,
		}, nil)

		var validation *apperr.ValidationError
		require.ErrorAs(t, err, &validation)
	})

	t.Run("no customer identity", func(t *testing.T) {
		product := createTestProduct(t, db, 5, nil)
		_, err := svc.Checkout(&model.CheckoutRequest{
			Items: []model.CheckoutItem{{ProductID: product.ID, Quantity: 1, Price: 50}},
			Total: 50,
		}, nil)

		var validation *apperr.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Contains(t, err.Error(), "customer information required")
	})
}
