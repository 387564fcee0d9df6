package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-retail-ws/internal/handler"
	"go-retail-ws/internal/middleware"
	"go-retail-ws/internal/model"
	"go-retail-ws/internal/repository"
	"go-retail-ws/internal/service"
	"go-retail-ws/internal/ws"
	"go-retail-ws/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Structured logger for the service layer
	zlog, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}
	defer zlog.Sync()

	// 3. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.User{},
		&model.ClientType{},
		&model.Category{},
		&model.Size{},
		&model.Customer{},
		&model.Product{},
		&model.Sale{},
		&model.SaleItem{},
	)

	// 4. WebSocket hub for live stock updates
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	productRepo := repository.NewProductRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	catalogRepo := repository.NewCatalogRepo(db)

	checkoutSvc := service.NewCheckoutService(db, productRepo, wsHub, zlog)
	saleSvc := service.NewSaleService(saleRepo, customerRepo, zlog)
	catalogSvc := service.NewCatalogService(productRepo, catalogRepo, zlog)
	customerSvc := service.NewCustomerService(customerRepo, zlog)
	authSvc := service.NewAuthService(userRepo, customerRepo, zlog)
	dashSvc := service.NewDashboardService(saleRepo)

	saleHandler := handler.NewSaleHandler(checkoutSvc, saleSvc)
	productHandler := handler.NewProductHandler(catalogSvc)
	customerHandler := handler.NewCustomerHandler(customerSvc)
	catalogHandler := handler.NewCatalogHandler(catalogSvc)
	authHandler := handler.NewAuthHandler(authSvc)
	dashHandler := handler.NewDashboardHandler(dashSvc)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Retail Storefront API v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Storefront catalog reads
	api.Get("/products", productHandler.GetProducts)
	api.Get("/products/:id", productHandler.GetProduct)
	api.Get("/categories", catalogHandler.GetCategories)
	api.Get("/sizes", catalogHandler.GetSizes)
	api.Get("/client-types", catalogHandler.GetClientTypes)

	// Checkout: anonymous allowed, a valid token links the customer record.
	api.Post("/sales", middleware.OptionalAuth(), saleHandler.CreateSale)

	// ============ AUTHENTICATED ROUTES ============
	user := api.Group("/user", middleware.RequireAuth())
	user.Get("/profile", authHandler.GetProfile)
	user.Put("/profile", authHandler.UpdateProfile)
	user.Put("/password", authHandler.ChangePassword)

	api.Get("/sales/my-purchases", middleware.RequireAuth(), saleHandler.GetMyPurchases)

	// ============ ADMIN ROUTES ============
	admin := api.Group("", middleware.RequireAuth(), middleware.RequireAdmin())

	admin.Post("/products", productHandler.CreateProduct)
	admin.Put("/products/:id", productHandler.UpdateProduct)
	admin.Delete("/products/:id", productHandler.DeleteProduct)

	admin.Get("/customers", customerHandler.GetCustomers)
	admin.Post("/customers", customerHandler.CreateCustomer)
	admin.Get("/customers/:id", customerHandler.GetCustomer)
	admin.Put("/customers/:id", customerHandler.UpdateCustomer)
	admin.Delete("/customers/:id", customerHandler.DeleteCustomer)

	admin.Get("/sales", saleHandler.GetSales)
	admin.Get("/sales/:id", saleHandler.GetSale)
	admin.Post("/sales/update-client-types", saleHandler.BackfillClientTypes)

	dashboard := admin.Group("/dashboard")
	dashboard.Get("/stats", dashHandler.GetStats)
	dashboard.Get("/monthly-sales", dashHandler.GetMonthlySales)
	dashboard.Get("/sales-by-category", dashHandler.GetSalesByCategory)
	dashboard.Get("/sales-by-client-type", dashHandler.GetSalesByClientType)
	dashboard.Get("/sales-by-size", dashHandler.GetSalesBySize)
	dashboard.Get("/inventory", dashHandler.GetInventory)
	dashboard.Get("/recommendations", dashHandler.GetRecommendations)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
