package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hotelclient/config"
)

// Registrar is implemented by every handler group in api/.
type Registrar interface {
	Register(router *gin.RouterGroup)
}

// Run starts the HTTP shell and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, registrars ...Registrar) error {
	router := gin.Default()
	root := router.Group("/")
	for _, r := range registrars {
		r.Register(root)
	}

	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
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
