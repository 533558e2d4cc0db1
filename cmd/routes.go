package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"

	"gruzBack/internal/models"
)

func (app *application) JWTMiddlewareWithRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return app.JWTMiddleware(next, requiredRole)
	}
}

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole(models.RoleCustomer))
	executorMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole(models.RoleExecutor))

	mux := pat.New()

	// Users
	mux.Post("/user/sign_up", standardMiddleware.ThenFunc(app.userHandler.SignUp))
	mux.Post("/user/sign_in", standardMiddleware.ThenFunc(app.userHandler.SignIn))
	mux.Post("/user/register", standardMiddleware.ThenFunc(app.userHandler.RegisterUser))
	mux.Get("/user/:id", authMiddleware.ThenFunc(app.userHandler.GetUserByID))
	mux.Post("/user/:id/upgrade", authMiddleware.ThenFunc(app.userHandler.UpgradeToExecutor))
	mux.Get("/user/:id/stats", authMiddleware.ThenFunc(app.userHandler.GetUserStats))
	mux.Get("/user/:id/profile", authMiddleware.ThenFunc(app.userHandler.GetExecutorProfile))
	mux.Put("/user/:id/profile", executorMiddleware.ThenFunc(app.userHandler.UpdateExecutorProfile))

	// Orders
	mux.Post("/order", authMiddleware.ThenFunc(app.orderHandler.CreateOrder))
	mux.Get("/order/active", authMiddleware.ThenFunc(app.orderHandler.GetActiveOrders))
	mux.Get("/order/filtered/:executor_id", executorMiddleware.ThenFunc(app.orderHandler.GetFilteredOrders))
	mux.Get("/order/user/:user_id", authMiddleware.ThenFunc(app.orderHandler.GetUserOrders))
	mux.Get("/order/:order_id", authMiddleware.ThenFunc(app.orderHandler.GetOrderByID))
	mux.Put("/order/:order_id/status", authMiddleware.ThenFunc(app.orderHandler.UpdateOrderStatus))

	// Offers
	mux.Post("/offer", executorMiddleware.ThenFunc(app.offerHandler.CreateOffer))
	mux.Post("/offer/select", authMiddleware.ThenFunc(app.offerHandler.SelectOffer))
	mux.Get("/offer/order/:order_id", authMiddleware.ThenFunc(app.offerHandler.GetOffersForOrder))
	mux.Get("/offer/order/:order_id/count", authMiddleware.ThenFunc(app.offerHandler.GetOrderOffersCount))
	mux.Get("/offer/executor/:executor_id", executorMiddleware.ThenFunc(app.offerHandler.GetExecutorOffers))

	// Equipment
	mux.Post("/equipment/executor/:executor_id", executorMiddleware.ThenFunc(app.equipmentHandler.AddEquipment))
	mux.Get("/equipment/executor/:executor_id", authMiddleware.ThenFunc(app.equipmentHandler.GetExecutorEquipment))
	mux.Get("/equipment/type/:type", authMiddleware.ThenFunc(app.equipmentHandler.GetAvailableEquipmentByType))
	mux.Get("/equipment/:id", authMiddleware.ThenFunc(app.equipmentHandler.GetEquipmentByID))
	mux.Put("/equipment/:id", executorMiddleware.ThenFunc(app.equipmentHandler.UpdateEquipment))
	mux.Del("/equipment/:id", executorMiddleware.ThenFunc(app.equipmentHandler.DeleteEquipment))
	mux.Put("/equipment/:id/availability", executorMiddleware.ThenFunc(app.equipmentHandler.ToggleAvailability))
	mux.Post("/equipment/:id/photo", executorMiddleware.ThenFunc(app.equipmentHandler.UploadEquipmentPhoto))

	// Reviews
	mux.Post("/review", authMiddleware.ThenFunc(app.reviewHandler.CreateReview))
	mux.Get("/review/user/:user_id", authMiddleware.ThenFunc(app.reviewHandler.GetUserReviews))

	// Categories
	mux.Get("/category", standardMiddleware.ThenFunc(app.categoryHandler.GetCategories))
	mux.Get("/category/code/:code", standardMiddleware.ThenFunc(app.categoryHandler.GetCategoryByCode))
	mux.Post("/category/executor/:executor_id", executorMiddleware.ThenFunc(app.categoryHandler.AddExecutorCategory))
	mux.Get("/category/executor/:executor_id", authMiddleware.ThenFunc(app.categoryHandler.GetExecutorCategories))

	// Locations
	mux.Put("/location/:user_id", authMiddleware.ThenFunc(app.locationHandler.UpdateLocation))
	mux.Get("/location/:user_id", authMiddleware.ThenFunc(app.locationHandler.GetLocation))

	// Push tokens
	mux.Post("/notify/token", authMiddleware.ThenFunc(app.fcmHandler.RegisterToken))
	mux.Del("/notify/token/:token", authMiddleware.ThenFunc(app.fcmHandler.DeleteToken))
	mux.Post("/notify/send", authMiddleware.ThenFunc(app.fcmHandler.Notify))

	// Event feed
	mux.Get("/ws", http.HandlerFunc(app.ServeWS))

	return mux
}
