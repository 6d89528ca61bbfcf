package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/velopool/bikeshare/api"
	"github.com/velopool/bikeshare/config"
	"github.com/velopool/bikeshare/internal/auth"
	"github.com/velopool/bikeshare/internal/repository"
	"github.com/velopool/bikeshare/internal/service/rental"
	"github.com/velopool/bikeshare/internal/service/stations"
)

// Handlers collects everything the router mounts.
type Handlers struct {
	Rentals   rental.UseCase
	Stations  stations.UseCase
	Users     repository.UserRepository
	Reports   repository.ReportRepository
	Favorites repository.FavoriteRepository
	Posts     repository.PostRepository
}

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, h Handlers) error {
	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: NewRouter(cfg.Auth.JWTSecret, h),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

// NewRouter assembles the gin engine. Split out so handler tests can mount
// the real middleware chain.
func NewRouter(jwtSecret string, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	authed := auth.Middleware(jwtSecret)

	rentalHandler := api.NewRentalHandler(h.Rentals)
	stationHandler := api.NewStationHandler(h.Stations)
	adminHandler := api.NewAdminHandler(h.Stations, h.Users)
	reportHandler := api.NewReportHandler(h.Reports)
	favoriteHandler := api.NewFavoriteHandler(h.Favorites)
	postHandler := api.NewPostHandler(h.Posts)
	statsHandler := api.NewStatsHandler(h.Stations)

	root := router.Group("/api")

	stationHandler.Register(root.Group("/stations"))
	statsHandler.Register(root.Group("/stats"))
	reportHandler.Register(root.Group("/reports"))
	postHandler.Register(root.Group("/posts"))

	rentalHandler.Register(root.Group("/rentals", authed))
	favoriteHandler.Register(root.Group("/favorites", authed))
	reportHandler.RegisterAuthed(root.Group("/reports", authed))
	postHandler.RegisterAuthed(root.Group("/posts", authed))

	admin := root.Group("/admin", authed, auth.AdminOnly())
	adminHandler.Register(admin)
	reportHandler.RegisterAdmin(admin.Group("/reports"))

	return router
}
