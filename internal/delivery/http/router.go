package http

import (
	"net/http"

	"tienda/internal/delivery/http/handler"
	"tienda/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router         *mux.Router
	authHandler    *handler.AuthHandler
	productHandler *handler.ProductHandler
	colorHandler   *handler.ColorHandler
	shopHandler    *handler.ShopHandler
	cartHandler    *handler.CartHandler
	orderHandler   *handler.OrderHandler
	authMiddleware *middleware.AuthMiddleware
	corsMiddleware *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	productHandler *handler.ProductHandler,
	colorHandler *handler.ColorHandler,
	shopHandler *handler.ShopHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:         mux.NewRouter(),
		authHandler:    authHandler,
		productHandler: productHandler,
		colorHandler:   colorHandler,
		shopHandler:    shopHandler,
		cartHandler:    cartHandler,
		orderHandler:   orderHandler,
		authMiddleware: authMiddleware,
		corsMiddleware: corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Storefront (public)
	shop := api.PathPrefix("/shop").Subrouter()
	shop.HandleFunc("/products", r.shopHandler.List).Methods(http.MethodGet)
	shop.HandleFunc("/products/{slug}", r.shopHandler.Detail).Methods(http.MethodGet)

	// Cart and checkout (protected)
	cart := api.PathPrefix("/cart").Subrouter()
	cart.Use(r.authMiddleware.Authenticate)
	cart.HandleFunc("", r.cartHandler.Get).Methods(http.MethodGet)
	cart.HandleFunc("/items", r.cartHandler.AddItem).Methods(http.MethodPost)
	cart.HandleFunc("/items/{itemId}", r.cartHandler.UpdateItem).Methods(http.MethodPatch)
	cart.HandleFunc("/items/{itemId}", r.cartHandler.RemoveItem).Methods(http.MethodDelete)
	cart.HandleFunc("/checkout", r.orderHandler.Checkout).Methods(http.MethodPost)

	// Own orders (protected)
	orders := api.PathPrefix("/orders").Subrouter()
	orders.Use(r.authMiddleware.Authenticate)
	orders.HandleFunc("", r.orderHandler.GetMyOrders).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	// Catalog management (admin)
	admin.HandleFunc("/products", r.productHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/products", r.productHandler.GetAll).Methods(http.MethodGet)
	admin.HandleFunc("/products/next-sku", r.productHandler.NextSKU).Methods(http.MethodGet)
	admin.HandleFunc("/products/check-sku", r.productHandler.CheckSKU).Methods(http.MethodGet)
	admin.HandleFunc("/products/check-slug", r.productHandler.CheckSlug).Methods(http.MethodGet)
	admin.HandleFunc("/products/{id}", r.productHandler.GetByID).Methods(http.MethodGet)
	admin.HandleFunc("/products/{id}", r.productHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/products/{id}", r.productHandler.UpdateInline).Methods(http.MethodPatch)
	admin.HandleFunc("/products/{id}", r.productHandler.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/products/{id}/images/{index}", r.productHandler.RemoveImage).Methods(http.MethodDelete)
	admin.HandleFunc("/products/{id}/colors/{colorId}", r.colorHandler.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/products/{id}/colors/{colorId}/gallery/{index}", r.colorHandler.RemoveGalleryImage).Methods(http.MethodDelete)

	// Order management (admin)
	admin.HandleFunc("/orders", r.orderHandler.GetAll).Methods(http.MethodGet)
	admin.HandleFunc("/orders/{id}", r.orderHandler.GetByID).Methods(http.MethodGet)
	admin.HandleFunc("/orders/{id}/status", r.orderHandler.UpdateStatus).Methods(http.MethodPatch)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
