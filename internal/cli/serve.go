package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"quizmaster/internal/config"
	"quizmaster/internal/groq"
	"quizmaster/internal/logger"
	"quizmaster/internal/transport/ws"
)

// NewServeCmd builds the CLI subcommand that serves the WebSocket quiz UI.
func NewServeCmd(configPath, apiKey *string) *cobra.Command {
	var port string
	envPort := os.Getenv("PORT")

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the quiz UI over WebSocket",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *apiKey, port)
		},
	}
	cmd.Flags().StringVar(&port, "port", envPort, "port to listen on (defaults to config, then 8080)")
	return cmd
}

func runServer(ctx context.Context, configPath, apiKeyFlag, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Env)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	key, err := cfg.ResolveAPIKey(apiKeyFlag)
	if err != nil {
		return err
	}

	port := portFlag
	if port == "" {
		port = cfg.Server.Port
	}
	if port == "" {
		port = "8080"
	}

	client := groq.NewClient(key, groq.Options{
		BaseURL:        cfg.Groq.BaseURL,
		Model:          cfg.Groq.Model,
		Temperature:    cfg.Groq.Temperature,
		MaxTokens:      cfg.Groq.MaxTokens,
		TopP:           cfg.Groq.TopP,
		ConnectTimeout: config.DurationOr(cfg.Groq.ConnectTimeout, 0),
		RequestTimeout: config.DurationOr(cfg.Groq.RequestTimeout, 0),
	}, log)
	defer client.Close()

	handler := ws.NewHandler(client, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", handler.ServeWS)

	server := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 15 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("starting quizmaster server", zap.String("port", port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return group.Wait()
}
