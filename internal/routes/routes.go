package routes

import (
	"os"
	"strings"
	"time"

	"caphe_back_end/internal/handlers/admin"
	"caphe_back_end/internal/handlers/catalog"
	"caphe_back_end/internal/handlers/payment"
	"caphe_back_end/internal/handlers/user"
	"caphe_back_end/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		corsConfig.AllowOrigins = strings.Split(origins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	r.Use(cors.New(corsConfig))

	api := r.Group("/api")
	api.Use(middleware.APIRateLimit())

	// Public
	api.POST("/auth/register", middleware.RegisterRateLimit(), user.Register)
	api.POST("/auth/login", middleware.LoginRateLimit(), user.Login)
	api.POST("/auth/refresh", user.RefreshToken)
	api.POST("/auth/forgot-password", middleware.ForgotPasswordRateLimit(), user.ForgotPassword)
	api.POST("/auth/reset-password", user.ResetPassword)
	api.GET("/auth/:provider", user.BeginAuth)
	api.GET("/auth/:provider/callback", user.CallbackAuth)

	api.GET("/categories", catalog.GetAllCategories)
	api.GET("/drinks", catalog.GetDrinks)
	api.GET("/drinks/search", catalog.SearchDrinks)
	api.GET("/drinks/:id", catalog.GetDrinkByID)
	api.GET("/toppings", catalog.GetToppings)

	// Client connecté
	auth := api.Group("")
	auth.Use(middleware.AuthRequired())
	{
		auth.POST("/auth/logout", user.Logout)
		auth.GET("/me", user.Me)
		auth.POST("/me/change-password", user.ChangePassword)

		auth.GET("/cart", user.GetCart)
		auth.POST("/cart", user.AddToCart)
		auth.PUT("/cart/:itemId", user.UpdateCartItem)
		auth.DELETE("/cart/:itemId", user.RemoveFromCart)
		auth.DELETE("/cart", user.ClearCart)
		auth.GET("/cart/ws", user.CartWebSocket)

		auth.GET("/addresses", user.GetMyAddresses)
		auth.POST("/addresses", user.CreateAddress)
		auth.PUT("/addresses/:id", user.UpdateAddress)
		auth.DELETE("/addresses/:id", user.DeleteAddress)

		auth.GET("/vouchers/validate", payment.ValidateVoucher)
		auth.POST("/checkout", payment.Checkout)

		auth.GET("/orders", user.GetMyOrders)
		auth.GET("/orders/:id", user.GetOrderByID)
		auth.POST("/orders/:id/receive", user.ReceiveOrder)
		auth.POST("/orders/:id/rate", user.RateOrder)
		auth.GET("/orders/ws", user.OrderWebSocket)
	}

	// Back-office
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AuthRequired(), middleware.RequireAdmin)
	{
		adminGroup.GET("/categories/search", catalog.SearchCategories)
		adminGroup.POST("/categories", catalog.CreateCategory)
		adminGroup.PUT("/categories/:id", catalog.UpdateCategory)
		adminGroup.DELETE("/categories/:id", catalog.DeleteCategory)

		adminGroup.GET("/drinks/search", catalog.AdminSearchDrinks)
		adminGroup.POST("/drinks", catalog.CreateDrink)
		adminGroup.PUT("/drinks/:id", catalog.UpdateDrink)
		adminGroup.DELETE("/drinks/:id", catalog.DeleteDrink)

		adminGroup.GET("/toppings/search", catalog.SearchToppings)
		adminGroup.POST("/toppings", catalog.CreateTopping)
		adminGroup.PUT("/toppings/:id", catalog.UpdateTopping)
		adminGroup.DELETE("/toppings/:id", catalog.DeleteTopping)

		adminGroup.POST("/images", catalog.UploadImage)
		adminGroup.GET("/images/:object/url", catalog.GetImageURL)

		adminGroup.GET("/vouchers", payment.GetAllVouchers)
		adminGroup.POST("/vouchers", payment.CreateVoucher)
		adminGroup.PUT("/vouchers/:code", payment.UpdateVoucher)
		adminGroup.DELETE("/vouchers/:code", payment.DeleteVoucher)

		adminGroup.GET("/orders", admin.GetAllOrders)
		adminGroup.POST("/orders/:id/advance", admin.AdvanceOrderStatus)

		adminGroup.GET("/feedback", admin.GetAllFeedback)
		adminGroup.GET("/stats", payment.GetDashboardStats)
	}
}
