package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"tablebook/internal/config"
	"tablebook/internal/database"
	"tablebook/internal/localcache"
	"tablebook/internal/middleware"
	"tablebook/internal/modules/favorites"
	"tablebook/internal/modules/notify"
	"tablebook/internal/modules/reservations"
	"tablebook/internal/modules/resources"
	jwtsvc "tablebook/internal/pkg/jwt"
	"tablebook/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	recordStore := repository.NewRecordStore(db)
	reservationRepo := repository.NewReservationRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	for _, m := range []interface{ Migrate() error }{recordStore, reservationRepo, catalogRepo} {
		if err := m.Migrate(); err != nil {
			log.Fatal(err)
		}
	}

	local, err := localcache.Open(cfg.LocalCachePath)
	if err != nil {
		log.Fatal(err)
	}

	j := jwtsvc.New(cfg.JWTSecret, cfg.SessionTTL)

	hub := notify.NewHub()
	defer hub.Close()

	resourceService := resources.NewService(recordStore)
	resourceHandler := resources.NewHandler(resourceService)

	favoriteService := favorites.NewService(recordStore, local, catalogRepo)
	favoriteHandler := favorites.NewHandler(favoriteService)

	reservationService := reservations.NewService(reservationRepo, hub)
	reservationHandler := reservations.NewHandler(reservationService)

	notifyHandler := notify.NewHandler(hub)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		reservationHandler.RegisterPublicRoutes(v1)

		// merged favorites view works for anonymous sessions too
		merged := v1.Group("/")
		merged.Use(middleware.OptionalAuth(j))
		{
			favoriteHandler.RegisterRoutes(merged)
		}

		// owner-scoped
		protected := v1.Group("/")
		protected.Use(middleware.RequireAuth(j))
		{
			resourceHandler.RegisterRoutes(protected)
			reservationHandler.RegisterRoutes(protected)
			notifyHandler.RegisterRoutes(protected)
		}
	}

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
