package service

import (
	"errors"
	"time"

	"go-retail-ws/internal/apperr"
	"go-retail-ws/internal/model"
	"go-retail-ws/internal/repository"
	"go-retail-ws/internal/ws"
	"go-retail-ws/pkg/retry"
	"go-retail-ws/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthUser is the optional currently-authenticated user; nil means anonymous
// checkout.
type AuthUser struct {
	ID    uuid.UUID
	Email string
}

type CheckoutService interface {
	// Checkout executes the whole sale creation flow as one all-or-nothing
	// database transaction: customer resolution, stock validation,
	// client-type inference, sale + items insert, stock decrement.
	Checkout(req *model.CheckoutRequest, actor *AuthUser) (*model.Sale, error)
}

type checkoutService struct {
	db       *gorm.DB
	products repository.ProductRepository
	hub      *ws.Hub
	logger   *zap.Logger
}

func NewCheckoutService(db *gorm.DB, products repository.ProductRepository, hub *ws.Hub, logger *zap.Logger) CheckoutService {
	return &checkoutService{
		db:       db,
		products: products,
		hub:      hub,
		logger:   logger,
	}
}

func (s *checkoutService) Checkout(req *model.CheckoutRequest, actor *AuthUser) (*model.Sale, error) {
	if msg := validator.FirstError(req); msg != "" {
		return nil, apperr.Validation("%s", msg)
	}

	saleDate, err := parseSaleDate(req.Date)
	if err != nil {
		return nil, err
	}

	var sale *model.Sale
	var stockUpdates []ws.StockUpdate

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		// 1. Resolve or create the customer.
		customer, err := s.resolveCustomer(tx, req, actor)
		if err != nil {
			return err
		}

		// 2. Lock the products and validate every requested quantity
		// against current stock. The locks hold until commit, so a
		// concurrent checkout cannot pass validation against stock this
		// one is about to consume.
		productIDs := uniqueProductIDs(req.Items)
		products, err := s.products.LockByIDs(tx, productIDs)
		if err != nil {
			return err
		}
		if len(products) != len(productIDs) {
			return apperr.Validation("one or more products not found")
		}

		byID := make(map[uuid.UUID]*model.Product, len(products))
		for i := range products {
			byID[products[i].ID] = &products[i]
		}
		if err := validateCart(req.Items, byID); err != nil {
			return err
		}

		// 3. Infer the sale's client type from the purchased products.
		clientTypeID := mostCommonClientType(lineClientTypes(req.Items, byID))

		// 4. Persist the sale together with its line items.
		items := make([]model.SaleItem, len(req.Items))
		for i, item := range req.Items {
			items[i] = model.SaleItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity.Int(),
				Price:     item.Price.Float(),
				Size:      item.Size,
			}
		}
		newSale := model.Sale{
			CustomerID:   customer.ID,
			ClientTypeID: clientTypeID,
			Total:        req.Total.Float(),
			Status:       model.SaleStatusCompleted,
			Date:         saleDate,
			Items:        items,
		}
		if err := tx.Create(&newSale).Error; err != nil {
			return apperr.ClassifyDB(err)
		}

		// 5. Decrement stock per line item, inside the same transaction.
		sold := make(map[uuid.UUID]int, len(req.Items))
		for _, item := range req.Items {
			qty := item.Quantity.Int()
			if err := s.products.DecrementStock(tx, item.ProductID, qty); err != nil {
				if errors.Is(err, repository.ErrStockConflict) {
					p := byID[item.ProductID]
					return &apperr.InsufficientStockError{
						ProductID:   p.ID,
						ProductName: p.Name,
						Available:   p.Stock - sold[item.ProductID],
						Requested:   qty,
					}
				}
				return err
			}
			sold[item.ProductID] += qty
		}

		stockUpdates = stockUpdates[:0]
		for id, qty := range sold {
			p := byID[id]
			stockUpdates = append(stockUpdates, ws.StockUpdate{
				Type:        "stock_update",
				ProductID:   id.String(),
				ProductName: p.Name,
				NewStock:    p.Stock - qty,
				Sold:        qty,
				SaleID:      newSale.ID.String(),
				SaleTotal:   newSale.Total,
			})
		}

		newSale.Customer = *customer
		sale = &newSale
		return nil
	})

	if txErr != nil {
		if classified := classifyCheckoutError(txErr); classified != nil {
			return nil, classified
		}
		return nil, txErr
	}

	s.logger.Info("sale created",
		zap.String("sale_id", sale.ID.String()),
		zap.String("customer_id", sale.CustomerID.String()),
		zap.Float64("total", sale.Total),
		zap.Int("items", len(sale.Items)),
	)

	// Broadcast after commit so dashboards never see a rolled-back decrement.
	go func(updates []ws.StockUpdate) {
		for _, u := range updates {
			s.hub.BroadcastJSON(u)
		}
	}(stockUpdates)

	return sale, nil
}

// resolveCustomer implements the upsert contract: an explicit id must exist,
// a name+email pair finds-or-creates by email, anything else is a validation
// failure. A newly created customer is linked to the acting user's account
// when their emails match, or to any registered user sharing the email.
func (s *checkoutService) resolveCustomer(tx *gorm.DB, req *model.CheckoutRequest, actor *AuthUser) (*model.Customer, error) {
	if req.CustomerID != nil {
		var customer model.Customer
		if err := tx.First(&customer, "id = ?", *req.CustomerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("customer")
			}
			return nil, err
		}
		return &customer, nil
	}

	if req.CustomerName == "" || req.CustomerEmail == "" {
		return nil, apperr.Validation("customer information required")
	}

	var customer model.Customer
	err := tx.Where("email = ?", req.CustomerEmail).First(&customer).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		email := req.CustomerEmail
		customer = model.Customer{
			Name:    req.CustomerName,
			Email:   &email,
			Phone:   nilIfBlank(req.CustomerPhone),
			Address: nilIfBlank(req.CustomerAddress),
			UserID:  s.linkedUserID(tx, req.CustomerEmail, actor),
		}
		if err := tx.Create(&customer).Error; err != nil {
			return nil, apperr.ClassifyDB(err)
		}
		return &customer, nil

	case err != nil:
		return nil, err

	default:
		customer.Name = req.CustomerName
		if p := nilIfBlank(req.CustomerPhone); p != nil {
			customer.Phone = p
		}
		if a := nilIfBlank(req.CustomerAddress); a != nil {
			customer.Address = a
		}
		if customer.UserID == nil {
			customer.UserID = s.linkedUserID(tx, req.CustomerEmail, actor)
		}
		if err := tx.Save(&customer).Error; err != nil {
			return nil, apperr.ClassifyDB(err)
		}
		return &customer, nil
	}
}

// linkedUserID returns the user account to attach a customer to, if any:
// the acting user when the emails match, otherwise whichever registered user
// owns the email.
func (s *checkoutService) linkedUserID(tx *gorm.DB, email string, actor *AuthUser) *uuid.UUID {
	if actor != nil && actor.Email == email {
		id := actor.ID
		return &id
	}
	var user model.User
	if err := tx.Where("email = ?", email).First(&user).Error; err == nil {
		id := user.ID
		return &id
	}
	return nil
}

// validateCart checks every line against the locked products. Runs before
// any mutation. Lines repeating a product count against the same stock, so
// the check runs on the running per-product total rather than per line.
func validateCart(items []model.CheckoutItem, byID map[uuid.UUID]*model.Product) error {
	totals := make(map[uuid.UUID]int, len(byID))
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			return apperr.Validation("product %s not found", item.ProductID)
		}
		if item.Quantity.Int() <= 0 {
			return apperr.Validation("quantity for product %q must be a positive integer", product.Name)
		}
		totals[item.ProductID] += item.Quantity.Int()
		if totals[item.ProductID] > product.Stock {
			return &apperr.InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Available:   product.Stock,
				Requested:   totals[item.ProductID],
			}
		}
	}
	return nil
}

// lineClientTypes projects the cart onto the per-line client-type ids, in
// item order.
func lineClientTypes(items []model.CheckoutItem, byID map[uuid.UUID]*model.Product) []*uuid.UUID {
	ids := make([]*uuid.UUID, len(items))
	for i, item := range items {
		if p, ok := byID[item.ProductID]; ok {
			ids[i] = p.ClientTypeID
		}
	}
	return ids
}

// mostCommonClientType tallies the client types and picks the most frequent,
// first-seen winning ties. Nil when no line carries a client type. Best
// effort classification, nothing fancier.
func mostCommonClientType(ids []*uuid.UUID) *uuid.UUID {
	counts := make(map[uuid.UUID]int)
	var order []uuid.UUID
	for _, id := range ids {
		if id == nil {
			continue
		}
		if _, seen := counts[*id]; !seen {
			order = append(order, *id)
		}
		counts[*id]++
	}
	if len(order) == 0 {
		return nil
	}
	best := order[0]
	for _, id := range order[1:] {
		if counts[id] > counts[best] {
			best = id
		}
	}
	return &best
}

func uniqueProductIDs(items []model.CheckoutItem) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(items))
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}

// parseSaleDate accepts RFC 3339 or plain dates; empty defaults to now.
func parseSaleDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperr.Validation("invalid sale date %q", raw)
}

// classifyCheckoutError leaves taxonomy errors alone and promotes raw
// connectivity failures to TransientError so the caller sees them as
// retryable. Returns nil when the error is already classified.
func classifyCheckoutError(err error) error {
	var (
		validation *apperr.ValidationError
		notFound   *apperr.NotFoundError
		stock      *apperr.InsufficientStockError
		duplicate  *apperr.DuplicateError
		transient  *apperr.TransientError
	)
	if errors.As(err, &validation) || errors.As(err, &notFound) ||
		errors.As(err, &stock) || errors.As(err, &duplicate) || errors.As(err, &transient) {
		return err
	}
	if retry.IsConnectivity(err) {
		return apperr.Transient(err)
	}
	return nil
}

func nilIfBlank(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
