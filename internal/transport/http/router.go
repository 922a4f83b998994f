package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/avolkov/storefront/internal/handlers"
	authmw "github.com/avolkov/storefront/internal/middleware/auth"
	"github.com/avolkov/storefront/internal/session"
)

type Deps struct {
	Sessions       *session.Manager
	AuthHandler    *handlers.AuthHandler
	ProductHandler *handlers.ProductHandler
	CartHandler    *handlers.CartHandler
	OrderHandler   *handlers.OrderHandler
	BlogHandler    *handlers.BlogHandler
	SearchHandler  *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	requireLogin := authmw.RequireLogin(d.Sessions)

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)
	auth.POST("/logout", d.AuthHandler.Logout)
	auth.GET("/me", d.AuthHandler.Me, requireLogin)
	auth.PUT("/profile", d.AuthHandler.UpdateProfile, requireLogin)

	api.GET("/products", d.ProductHandler.GetProducts)
	api.GET("/products/:id", d.ProductHandler.GetProduct)
	api.GET("/search", d.SearchHandler.Handler)

	// Any authenticated session may mutate the catalog; there is no role
	// model behind the admin prefix.
	admin := api.Group("/admin", requireLogin)
	admin.POST("/products", d.ProductHandler.CreateProduct)
	admin.PUT("/products/:id", d.ProductHandler.UpdateProduct)
	admin.DELETE("/products/:id", d.ProductHandler.DeleteProduct)
	admin.PATCH("/orders/:id", d.OrderHandler.UpdateOrderStatus)
	admin.POST("/blog", d.BlogHandler.CreateBlogPost)

	cart := api.Group("/cart", requireLogin)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.PUT("/:productId", d.CartHandler.UpdateCartItem)
	cart.DELETE("/:productId", d.CartHandler.RemoveFromCart)

	api.POST("/checkout", d.OrderHandler.Checkout, requireLogin)

	orders := api.Group("/orders", requireLogin)
	orders.GET("", d.OrderHandler.ListOrders)
	orders.GET("/:id", d.OrderHandler.GetOrder)

	api.GET("/blog", d.BlogHandler.GetBlogPosts)
	api.GET("/blog/:id", d.BlogHandler.GetBlogPost)
}
