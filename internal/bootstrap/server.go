package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/datapoolml/outreach-crm/internal/api"
	"github.com/datapoolml/outreach-crm/internal/config"
	"github.com/datapoolml/outreach-crm/internal/database"
	"github.com/datapoolml/outreach-crm/internal/events"
	"github.com/datapoolml/outreach-crm/internal/handlers"
	"github.com/datapoolml/outreach-crm/internal/logger"
	"github.com/datapoolml/outreach-crm/internal/metadata"
	"github.com/datapoolml/outreach-crm/internal/repository"
)

const shutdownTimeout = 10 * time.Second

// SetupRouter wires repositories and handlers into the HTTP router.
func SetupRouter(
	cfg *config.Config,
	db *database.DB,
	publisher *events.Publisher,
	log logger.Logger,
) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	leadRepo := repository.NewLeadRepository(db.DB(), log)
	fundingRepo := repository.NewFundingLeadRepository(db.DB(), log)
	fieldRepo := repository.NewCustomFieldRepository(db.DB(), log)
	extractor := metadata.NewExtractor(log)

	return api.NewRouter(api.Handlers{
		Leads:        handlers.NewLeadHandler(leadRepo, fieldRepo, publisher, log, cfg.Outreach.SenderName),
		FundingLeads: handlers.NewFundingHandler(fundingRepo, publisher, log, cfg.Outreach.FundingSenderName),
		CustomFields: handlers.NewCustomFieldHandler(fieldRepo, log),
		Metadata:     handlers.NewMetadataHandler(extractor, log),
	}, cfg.Server.CORSOrigins, log)
}

// RunServer serves the router until SIGINT/SIGTERM, then shuts down
// gracefully.
func RunServer(cfg *config.Config, router *gin.Engine, log logger.Logger) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
