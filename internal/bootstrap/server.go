package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/airline-backoffice/api"
	"github.com/Domenick1991/airline-backoffice/config"
	"github.com/Domenick1991/airline-backoffice/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/sync/errgroup"
)

// Handlers groups the resource handlers registered under /api/v1.
type Handlers struct {
	Airlines    *api.AirlineHandler
	Airports    *api.AirportHandler
	Flights     *api.FlightHandler
	Tags        *api.TagHandler
	Passengers  *api.PassengerHandler
	Bookings    *api.BookingHandler
	Inventories *api.InventoryHandler
}

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, handlers Handlers, reg *metrics.Registry) error {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if reg != nil {
		router.Use(reg.Middleware())
	}

	v1 := router.Group("/api/v1")
	handlers.Airlines.Register(v1.Group("/airlines"))
	handlers.Airports.Register(v1.Group("/airports"))
	handlers.Flights.Register(v1.Group("/flights"))
	handlers.Tags.Register(v1.Group("/tags"))
	handlers.Passengers.Register(v1.Group("/passengers"))
	handlers.Bookings.Register(v1.Group("/bookings"))
	handlers.Inventories.Register(v1.Group("/inventories"))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	if cfg.HTTP.SwaggerDir != "" {
		router.Static("/swagger-spec", cfg.HTTP.SwaggerDir)
		router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger-spec/openapi.json"),
		)))
	}

	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("listen %s: %w", cfg.HTTP.Address, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	})

	return g.Wait()
}
