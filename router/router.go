package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ordering-system/controllers"
	"ordering-system/middlewares"
	"ordering-system/services"
)

func SetupRouter(db *gorm.DB, carts *services.CartService) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	mealCtrl := controllers.NewMealController(db)
	staffCtrl := controllers.NewStaffController(db)
	cartCtrl := controllers.NewCartController(carts)
	orderCtrl := controllers.NewOrderController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Login takes the strict limiter; everything else the global one set
	// up in main.
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/login", staffCtrl.Login)
	}

	// -- CUSTOMER (no auth, session cookie scopes the cart) --
	r.GET("/menus", mealCtrl.GetAvailableMeals)
	r.GET("/cart", cartCtrl.GetCart)
	r.POST("/cart/items", cartCtrl.AddItem)
	r.PATCH("/cart/items/:meal_id", cartCtrl.UpdateItem)
	r.POST("/checkout", cartCtrl.Checkout)

	// -- STAFF (auth required) --
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.POST("/logout", staffCtrl.Logout)

		auth.GET("/admin/meals", mealCtrl.GetAllMeals)
		auth.POST("/admin/meals", mealCtrl.CreateMeal)
		auth.PATCH("/admin/meals/:meal_id", mealCtrl.UpdateMeal)
		auth.DELETE("/admin/meals/:meal_id", mealCtrl.DeleteMeal)

		auth.GET("/orders", orderCtrl.GetOpenOrders)
		auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		auth.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
		auth.POST("/orders/:order_id/complete", orderCtrl.CompleteOrder)

		// Staff account administration is manager-only.
		manager := auth.Group("/admin/staff")
		manager.Use(middlewares.ManagerOnly())
		{
			manager.GET("", staffCtrl.GetAllStaff)
			manager.POST("", staffCtrl.CreateStaff)
			manager.PATCH("/:account/password", staffCtrl.UpdatePassword)
			manager.DELETE("/:account", staffCtrl.DeleteStaff)
		}
	}

	return r
}
