package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/riskibarqy/draft-league-board/external/leagueapi"
	"github.com/riskibarqy/draft-league-board/internal/config"
	"github.com/riskibarqy/draft-league-board/internal/interfaces/httpapi"
	"github.com/riskibarqy/draft-league-board/internal/platform/cache"
	"github.com/riskibarqy/draft-league-board/internal/platform/logging"
	"github.com/riskibarqy/draft-league-board/internal/usecase"
)

const maxStandingsBodySize = 6 << 20

// App holds the running pieces of the service.
type App struct {
	Server *http.Server
	Poller *usecase.Poller
	Store  *usecase.TableStore

	logger *logging.Logger
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	source, err := leagueapi.NewClient(leagueapi.ClientConfig{
		HTTPClient: &fasthttp.Client{
			Name:                cfg.ServiceName + "/" + cfg.ServiceVersion,
			MaxIdleConnDuration: time.Minute,
			MaxResponseBodySize: maxStandingsBodySize,
		},
		URL:       cfg.StandingsURL,
		UserAgent: cfg.ServiceName + "/" + cfg.ServiceVersion,
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build standings client: %w", err)
	}

	store := usecase.NewTableStore()
	poller, err := usecase.NewPoller(source, usecase.NewNormalizer(), store, logger, usecase.PollerConfig{
		Interval:     cfg.PollInterval,
		MaxInFlight:  cfg.PollMaxInFlight,
		FetchTimeout: cfg.StandingsFetchTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("build poller: %w", err)
	}

	leaderboardSvc := usecase.NewLeaderboardService(store, cache.NewStore[usecase.Leaderboard](cfg.ViewCacheTTL))
	handler := httpapi.NewHandler(leaderboardSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	return &App{
		Server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		Poller: poller,
		Store:  store,
		logger: logger,
	}, nil
}

// Serve runs the HTTP server until ctx is done, then shuts it down within
// shutdownTimeout.
func (a *App) Serve(ctx context.Context, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", "addr", a.Server.Addr)
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	a.logger.Info("http server stopped")
	return nil
}
