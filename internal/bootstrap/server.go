package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/galaxium/travels-booking/api"
	"github.com/galaxium/travels-booking/config"
	"github.com/galaxium/travels-booking/internal/service/booking"
	"github.com/galaxium/travels-booking/internal/service/flights"
	"github.com/galaxium/travels-booking/internal/service/users"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase, userSvc users.UserUseCase) error {
	engine := newRouter(cfg, flightSvc, bookingSvc, userSvc)

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: engine,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newRouter(cfg *config.Config, flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase, userSvc users.UserUseCase) *gin.Engine {
	engine := gin.Default()

	api.NewFlightHandler(flightSvc).Register(engine)
	api.NewBookingHandler(bookingSvc).Register(engine)
	api.NewUserHandler(userSvc).Register(engine)

	if cfg.HTTP.SwaggerDir != "" {
		engine.Static("/swagger", cfg.HTTP.SwaggerDir)
		engine.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/openapi.json"),
		)))
	}

	return engine
}
