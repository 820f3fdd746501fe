package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Ugar78/telegram-bot-idrnd/internal/config"
	audioinfra "github.com/Ugar78/telegram-bot-idrnd/internal/infra/audio"
	"github.com/Ugar78/telegram-bot-idrnd/internal/infra/faces"
	"github.com/Ugar78/telegram-bot-idrnd/internal/infra/telegram"
	"github.com/Ugar78/telegram-bot-idrnd/internal/repo/mediafs"
	"github.com/Ugar78/telegram-bot-idrnd/internal/repo/sqlite"
	"github.com/Ugar78/telegram-bot-idrnd/internal/services/ingest"
	"github.com/Ugar78/telegram-bot-idrnd/internal/services/retrieve"
)

type App struct {
	cfg    config.Config
	logger *slog.Logger
	db     *sql.DB
	tg     *telegram.Client

	ingestService   *ingest.Service
	retrieveService *retrieve.Service
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sqlite.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open audio catalog: %w", err)
	}

	detector, err := faces.NewDetector(cfg.CascadePath)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("load face cascade: %w", err)
	}

	store := mediafs.New(cfg.DataDir)
	catalog := sqlite.NewAudioRepo(db)
	transcoder := audioinfra.NewTranscoder()

	app := &App{
		cfg:    cfg,
		logger: logger,
		db:     db,
	}

	app.tg, err = telegram.NewClient(cfg.BotToken, cfg.PollTimeoutSeconds, logger, app.routeUpdate)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create telegram client: %w", err)
	}

	app.ingestService = ingest.NewService(store, catalog, detector, transcoder, app.tg, cfg.SampleRate, logger)
	app.retrieveService = retrieve.NewService(catalog, store, app.tg, logger)

	return app, nil
}

func (a *App) Run(ctx context.Context) error {
	defer a.close()
	return a.tg.Start(ctx)
}

func (a *App) close() {
	if err := a.db.Close(); err != nil {
		a.logger.Error("close audio catalog", "error", err)
	}
}
