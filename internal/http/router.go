// README: HTTP router registration.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"glazovcab/internal/config"
	"glazovcab/internal/http/handlers"
	"glazovcab/internal/http/middleware"
	"glazovcab/internal/modules/drivers"
	"glazovcab/internal/modules/favorites"
	"glazovcab/internal/modules/history"
	"glazovcab/internal/ws"
)

type ServerDeps struct {
	Config    config.Config
	Sessions  *handlers.Sessions
	History   *history.Store
	Favorites *favorites.Store
	Drivers   *drivers.Store
	Hub       *ws.Hub
	Log       *slog.Logger
}

func NewRouter(deps ServerDeps) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Recovery(deps.Log), middleware.Logging(deps.Log))

	authHandler := handlers.NewAuthHandler(deps.Config.Auth)
	draftHandler := handlers.NewDraftHandler(deps.Sessions)
	rideHandler := handlers.NewRideHandler(deps.Sessions)
	historyHandler := handlers.NewHistoryHandler(deps.History)
	favoritesHandler := handlers.NewFavoritesHandler(deps.Favorites)
	driversHandler := handlers.NewDriversHandler(deps.Drivers, deps.Config.Ride)
	wsHandler := handlers.NewWSHandler(deps.Sessions, deps.Hub, deps.Log)

	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "OK") })
	r.POST("/api/auth/login", authHandler.Login)

	api := r.Group("/api", middleware.Gate(deps.Config.Auth.DevUserID))

	api.GET("/draft", draftHandler.Get)
	api.PUT("/draft/origin", draftHandler.SetOrigin)
	api.DELETE("/draft/origin", draftHandler.ClearOrigin)
	api.PUT("/draft/destination", draftHandler.SetDestination)
	api.DELETE("/draft/destination", draftHandler.ClearDestination)
	api.PUT("/draft/tariff", draftHandler.SetTariff)
	api.PUT("/draft/payment", draftHandler.SetPayment)
	api.DELETE("/draft", draftHandler.Reset)

	api.POST("/ride/submit", rideHandler.Submit)
	api.GET("/ride/state", rideHandler.State)
	api.POST("/ride/cancel", rideHandler.Cancel)
	api.POST("/ride/rating", rideHandler.Rate)
	api.POST("/ride/clear_error", rideHandler.ClearError)

	api.GET("/history", historyHandler.List)
	api.DELETE("/history/:id", historyHandler.Delete)

	api.GET("/favorites", favoritesHandler.List)
	api.PUT("/favorites", favoritesHandler.Save)
	api.DELETE("/favorites/:id", favoritesHandler.Delete)

	api.GET("/drivers/nearby", driversHandler.Nearby)

	r.GET("/ws", middleware.Gate(deps.Config.Auth.DevUserID), wsHandler.Connect)

	return r
}
