package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VanderY/proctoring-bot/internal/app"
	"github.com/VanderY/proctoring-bot/internal/config"
	"github.com/VanderY/proctoring-bot/internal/infra/memory"
	pgstore "github.com/VanderY/proctoring-bot/internal/infra/postgres"
	redissession "github.com/VanderY/proctoring-bot/internal/infra/redis"
	"github.com/VanderY/proctoring-bot/internal/sheets"
	"github.com/VanderY/proctoring-bot/internal/store"
	"github.com/VanderY/proctoring-bot/internal/transport/telegram"
	"github.com/VanderY/proctoring-bot/internal/transport/ws"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the bot.
func NewStartCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBot(cmd.Context(), *configPath)
		},
	}
}

func runBot(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	opener, err := buildOpener(ctx, cfg)
	if err != nil {
		return err
	}

	testStore, err := buildTestStore(ctx, cfg)
	if err != nil {
		return err
	}
	cacheTTL := config.TTLDuration(cfg.Cache.TTL, 10*time.Minute)
	tests := store.NewCachedStore(testStore, cacheTTL)

	sessionTTL := config.TTLDuration(cfg.Session.TTL, 30*time.Minute)
	var sessions app.SessionRepository = memory.NewSessionStore(sessionTTL)
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		sessions = redissession.NewSessionStore(client, sessionTTL)
	}

	registry := sheets.NewTable(opener.Open(cfg.Sheets.SpreadsheetID), sheets.UsersSchema, cfg.Sheets.ScanLimit)
	roles := sheets.NewDirectory(registry)

	results := sheets.NewTable(opener.Open(cfg.Sheets.ResultsSpreadsheetID), nil, cfg.Sheets.ScanLimit)
	recorder := sheets.NewRecorder(results)

	service := app.NewSurveyService(sessions, tests, recorder, roles)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var server *http.Server
	if cfg.Server.Addr != "" {
		mux := http.NewServeMux()
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("ok"))
		})
		mux.HandleFunc("/ws", ws.NewHandler(service).ServeWS)
		server = &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      mux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		}
		go func() {
			log.Printf("starting websocket transport on %s", cfg.Server.Addr)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("websocket transport failed: %v", err)
			}
		}()
	}

	if cfg.Telegram.Token != "" {
		bot, err := telegram.NewBot(cfg.Telegram.Token, service)
		if err != nil {
			return err
		}
		go bot.Start(runCtx)
	} else {
		log.Println("no telegram token configured, running without the telegram transport")
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down...")
	}
	cancel()

	if server != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return server.Shutdown(shutdownCtx)
	}
	return nil
}

func buildOpener(ctx context.Context, cfg config.Config) (sheets.Opener, error) {
	if cfg.Sheets.CredentialsFile != "" {
		return sheets.NewGoogleOpener(ctx, cfg.Sheets.CredentialsFile)
	}

	// Tokenless local mode: one in-memory spreadsheet with the registry
	// layout and a demo student, enough to drive the websocket transport.
	log.Println("no sheets credentials configured, using the in-memory spreadsheet fake")
	fake := sheets.NewFake("local")
	for _, sheet := range sheets.UsersSchema {
		fake.SetSheet(sheet.Title, [][]string{sheet.Columns})
	}
	fake.SetSheet(sheets.StudentsSheet, [][]string{
		sheets.UsersSchema.Columns(sheets.StudentsSheet),
		{"demo", "Demo Student", "-"},
	})
	return &sheets.FakeOpener{Client: fake}, nil
}

func buildTestStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	if cfg.Postgres.URL == "" {
		return store.NewFileStore(cfg.Surveys.Dir), nil
	}

	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return nil, err
	}
	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return nil, err
	}
	return pgstore.NewTestStore(pool), nil
}
