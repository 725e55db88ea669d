package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/achimstruve/chatGPTWebsearchserver/backend"
	"github.com/achimstruve/chatGPTWebsearchserver/config"
	"github.com/achimstruve/chatGPTWebsearchserver/handler"
	"github.com/achimstruve/chatGPTWebsearchserver/logging"
	"github.com/achimstruve/chatGPTWebsearchserver/version"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(os.Args[1:]); err != nil {
		logging.GetLogger().Fatalf("%v", err)
	}
}

func run(args []string) error {
	cliArgs, err := config.ParseArgs(args)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	if cliArgs.Version {
		info := version.Get("ask-relay")
		fmt.Printf("%s %s %s\n", info.Service, info.Version, info.GoVersion)
		return nil
	}

	// A missing .env is fine; real environment variables win over it.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(cliArgs.ConfigFile)
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	if cliArgs.Debug {
		level = logrus.DebugLevel
	}
	log := logging.InitLogger(level)

	if !cfg.ServeEnabled() {
		log.Infoln("API is not running")
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return serve(ctx, cfg)
}

// serve runs the relay until ctx is cancelled or the listener fails.
func serve(ctx context.Context, cfg *config.Config) error {
	log := logging.GetLogger()
	gin.SetMode(gin.ReleaseMode)

	if cfg.OpenAIAPIKey == "" {
		log.Warnln("OPENAI_API_KEY is not set; every completion will fail")
	}

	client := backend.NewBackendClient(backend.Options{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.APIRoot,
		Model:   cfg.Model,
		Timeout: cfg.UpstreamTimeout,
	})
	httpHandler := handler.NewHTTPHandler(client)

	server := &http.Server{
		Addr:              cfg.ListenAddress,
		Handler:           httpHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s (model %s, upstream timeout %s)", cfg.ListenAddress, client.Model(), cfg.UpstreamTimeout)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		log.Infoln("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
