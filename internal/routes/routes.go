// Package routes wires repositories, services and handlers onto the
// fiber app and applies the auth middleware groups.
package routes

import (
	"sanistore/internal/config"
	"sanistore/internal/handlers"
	"sanistore/internal/middleware"
	"sanistore/internal/repositories"
	"sanistore/internal/services/auth"
	"sanistore/internal/services/delivery"
	"sanistore/internal/services/order"
	"sanistore/internal/services/otp"
	"sanistore/internal/services/payment"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App) {
	// Repositories
	userRepo := repositories.NewUserRepository(repositories.DB)
	categoryRepo := repositories.NewCategoryRepository(repositories.DB)
	productRepo := repositories.NewProductRepository(repositories.DB)
	cartRepo := repositories.NewCartRepository(repositories.DB)
	addressRepo := repositories.NewAddressRepository(repositories.DB)
	pincodeRepo := repositories.NewPincodeRepository(repositories.DB)
	orderRepo := repositories.NewOrderRepository(repositories.DB)
	paymentRepo := repositories.NewPaymentRepository(repositories.DB)

	// Services
	otpService := otp.NewService(repositories.CacheService, otp.DefaultConfig())
	authService := auth.NewService(userRepo, otpService, auth.NewLogNotifier())
	deliveryService := delivery.NewService(addressRepo, pincodeRepo)
	orderService := order.NewService(orderRepo, cartRepo, addressRepo)
	paymentService := payment.NewService(
		payment.NewStripeGateway(),
		paymentRepo,
		config.GetEnv("PAYMENT_GATEWAY_SECRET", ""),
	)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	categoryHandler := handlers.NewCategoryHandler(categoryRepo)
	productHandler := handlers.NewProductHandler(productRepo)
	cartHandler := handlers.NewCartHandler(cartRepo, productRepo)
	addressHandler := handlers.NewAddressHandler(deliveryService)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	locationHandler := handlers.NewLocationHandler(userRepo)
	adminHandler := handlers.NewAdminHandler(userRepo, orderRepo, productRepo, deliveryService)

	authMiddleware := middleware.NewAuthMiddleware(userRepo)

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")

	// Public auth endpoints
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/send-code", authHandler.SendCode)
	authGroup.Post("/test-verify-otp", authHandler.VerifyOTP)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/verify-forgot-password-code", authHandler.VerifyForgotPasswordCode)
	authGroup.Post("/reset-password", authHandler.ResetPassword)

	// Public catalog endpoints
	api.Get("/categories", categoryHandler.List)
	api.Get("/categories/:id", categoryHandler.Get)
	api.Get("/products", productHandler.List)
	api.Get("/products/simple", productHandler.ListSimple)
	api.Get("/products/:id", productHandler.Get)

	// Authenticated endpoints. Public routes above are unaffected because
	// they were registered before this middleware.
	protected := api.Use(authMiddleware.Handler)

	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Delete("/auth/delete", authHandler.DeleteAccount)
	protected.Put("/auth/address", authHandler.UpdateAddress)

	protected.Get("/products/:productId/images", productHandler.Images)

	cart := protected.Group("/cart")
	cart.Post("/", cartHandler.Add)
	cart.Get("/", cartHandler.List)
	cart.Delete("/all/:id", cartHandler.RemoveAll)
	cart.Delete("/:id", cartHandler.Remove)

	addresses := protected.Group("/addresses")
	addresses.Post("/", addressHandler.Create)
	addresses.Get("/", addressHandler.List)
	addresses.Get("/delivery-price/pincode/:pincode", addressHandler.PriceForPincode)
	addresses.Get("/delivery-price/address/:id", addressHandler.PriceForAddress)
	addresses.Put("/:id", addressHandler.Update)
	addresses.Delete("/:id", addressHandler.Delete)

	protected.Post("/orders", orderHandler.Create)
	protected.Get("/orders", orderHandler.List)

	protected.Post("/payment/order", paymentHandler.CreateOrder)
	protected.Post("/payment/verify", paymentHandler.Verify)

	protected.Get("/location/istricity", locationHandler.IsTricity)
	protected.Post("/location/istricity", locationHandler.SetTricity)

	// Admin endpoints
	admin := api.Group("/admin", authMiddleware.Handler, middleware.AdminOnly)
	admin.Get("/users", adminHandler.Users)
	admin.Get("/orders", adminHandler.Orders)
	admin.Get("/dashboard/stats", adminHandler.DashboardStats)
	admin.Post("/pincode", adminHandler.UpsertPincode)
	admin.Get("/pincodes", adminHandler.Pincodes)

	// Catalog mutation and order-status routes share prefixes with user
	// routes, so the admin gate goes on each route rather than a group.
	protected.Post("/categories", middleware.AdminOnly, categoryHandler.Create)
	protected.Put("/categories/:id", middleware.AdminOnly, categoryHandler.Update)
	protected.Delete("/categories/:id", middleware.AdminOnly, categoryHandler.Delete)
	protected.Post("/products", middleware.AdminOnly, productHandler.Create)
	protected.Put("/products/:id", middleware.AdminOnly, productHandler.Update)
	protected.Delete("/products/:id", middleware.AdminOnly, productHandler.Delete)
	protected.Post("/products/:productId/images", middleware.AdminOnly, productHandler.AddImage)
	protected.Put("/products/:productId/images/:imageId", middleware.AdminOnly, productHandler.UpdateImage)
	protected.Delete("/products/images/:imageId", middleware.AdminOnly, productHandler.DeleteImage)
	protected.Put("/orders/:id/status", middleware.AdminOnly, orderHandler.UpdateStatus)
}
