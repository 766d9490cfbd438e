// README: Entry point; loads config, wires stores and sessions, starts the API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"glazovcab/internal/config"
	httptransport "glazovcab/internal/http"
	"glazovcab/internal/http/handlers"
	"glazovcab/internal/infra"
	"glazovcab/internal/logging"
	"glazovcab/internal/modules/drivers"
	"glazovcab/internal/modules/favorites"
	"glazovcab/internal/modules/history"
	"glazovcab/internal/modules/ride"
	"glazovcab/internal/ws"
)

func main() {
	log := logging.New("cab-api")

	cfg, err := config.Load()
	if err != nil {
		log.Error("loading config", "err", err)
		os.Exit(1)
	}
	if cfg.Firebase.ProjectID == "" {
		log.Error("CAB_FIREBASE_PROJECT_ID is required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Error("connecting to postgres", "err", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	defer redisClient.Close()

	firestoreClient, err := infra.NewFirestore(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
	if err != nil {
		log.Error("connecting to firestore", "err", err)
		os.Exit(1)
	}
	defer firestoreClient.Close()

	historyStore := history.NewStore(dbPool)
	favoritesStore := favorites.NewStore(dbPool)
	driversStore := drivers.NewStore(redisClient)

	channel := ride.NewFirestoreChannel(firestoreClient, cfg.Firebase.OrdersCollection)
	sessions := handlers.NewSessions(channel, historyStore, cfg.Ride, log)

	hub := ws.NewHub(log)
	watcher := drivers.NewWatcher(firestoreClient, cfg.Firebase.DriversCollection, driversStore, hub, log)
	go watcher.Run(ctx)

	router := httptransport.NewRouter(httptransport.ServerDeps{
		Config:    cfg,
		Sessions:  sessions,
		History:   historyStore,
		Favorites: favoritesStore,
		Drivers:   driversStore,
		Hub:       hub,
		Log:       log,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Info("listening", "addr", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("http server", "err", err)
		os.Exit(1)
	}
}
