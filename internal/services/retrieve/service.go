package retrieve

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/Ugar78/telegram-bot-idrnd/internal/domain/enums"
	"github.com/Ugar78/telegram-bot-idrnd/internal/ui"
)

type Catalog interface {
	Exists(ctx context.Context) (bool, error)
	AllPaths(ctx context.Context) ([]string, error)
}

type Store interface {
	ReadFile(path string) ([]byte, error)
	ListCategory(category enums.MediaCategory) ([]string, error)
}

type Sender interface {
	SendText(ctx context.Context, chatID int64, text string) error
	SendAudio(ctx context.Context, chatID int64, name string, data []byte) error
	SendPhoto(ctx context.Context, chatID int64, name string, data []byte) error
}

// Service streams previously stored media back to the requester.
type Service struct {
	catalog Catalog
	store   Store
	sender  Sender
	logger  *slog.Logger
}

func NewService(catalog Catalog, store Store, sender Sender, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		catalog: catalog,
		store:   store,
		sender:  sender,
		logger:  logger,
	}
}

// SendAllAudio streams every cataloged voice message in insertion order.
// A missing catalog table, an empty catalog, or any referenced file
// missing from disk reports "nothing saved"; the missing-file check aborts
// the whole remaining batch rather than skipping the one item.
func (s *Service) SendAllAudio(ctx context.Context, chatID int64) error {
	exists, err := s.catalog.Exists(ctx)
	if err != nil {
		return fmt.Errorf("probe audio catalog: %w", err)
	}
	if !exists {
		return s.sender.SendText(ctx, chatID, ui.MsgNoAudio)
	}

	paths, err := s.catalog.AllPaths(ctx)
	if err != nil {
		return fmt.Errorf("list audio catalog: %w", err)
	}
	if len(paths) == 0 {
		return s.sender.SendText(ctx, chatID, ui.MsgNoAudio)
	}

	for _, path := range paths {
		data, err := s.store.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("cataloged audio file missing", "path", path)
			return s.sender.SendText(ctx, chatID, ui.MsgNoAudio)
		}
		if err != nil {
			return fmt.Errorf("read audio file %s: %w", path, err)
		}
		if err := s.sender.SendAudio(ctx, chatID, filepath.Base(path), data); err != nil {
			return err
		}
	}

	return nil
}

// SendAllPhotos streams every accepted photo in directory listing order.
func (s *Service) SendAllPhotos(ctx context.Context, chatID int64) error {
	paths, err := s.store.ListCategory(enums.CategoryPhoto)
	if err != nil {
		return fmt.Errorf("list photos: %w", err)
	}
	if len(paths) == 0 {
		return s.sender.SendText(ctx, chatID, ui.MsgNoPhotos)
	}

	for _, path := range paths {
		data, err := s.store.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("photo file missing", "path", path)
			return s.sender.SendText(ctx, chatID, ui.MsgNoPhotos)
		}
		if err != nil {
			return fmt.Errorf("read photo file %s: %w", path, err)
		}
		if err := s.sender.SendPhoto(ctx, chatID, filepath.Base(path), data); err != nil {
			return err
		}
	}

	return nil
}
