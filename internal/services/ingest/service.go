package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Ugar78/telegram-bot-idrnd/internal/domain/enums"
	"github.com/Ugar78/telegram-bot-idrnd/internal/domain/model"
	"github.com/Ugar78/telegram-bot-idrnd/internal/ui"
)

type Store interface {
	Write(category enums.MediaCategory, sender, fileID string, data []byte) (string, error)
	AcceptedPhotoPath(sender, fileID string) string
	DerivedAudioPath(sender, fileID string) (string, error)
	Rename(oldPath, newPath string) error
	Delete(path string) error
}

type Catalog interface {
	Append(ctx context.Context, sender, path string) error
}

type Detector interface {
	Detect(imageBytes []byte) ([]model.FaceRegion, error)
}

type Transcoder interface {
	ToWAV(ctx context.Context, srcPath, dstPath string, sampleRate int) error
}

type Notifier interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

// Service runs the media ingestion pipeline: store, classify, record,
// acknowledge.
type Service struct {
	store      Store
	catalog    Catalog
	detector   Detector
	transcoder Transcoder
	notifier   Notifier
	sampleRate int
	logger     *slog.Logger
}

func NewService(store Store, catalog Catalog, detector Detector, transcoder Transcoder, notifier Notifier, sampleRate int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if sampleRate <= 0 {
		sampleRate = 16000
	}

	return &Service{
		store:      store,
		catalog:    catalog,
		detector:   detector,
		transcoder: transcoder,
		notifier:   notifier,
		sampleRate: sampleRate,
		logger:     logger,
	}
}

// IngestVoice stores a voice message unconditionally. The catalog row is
// committed before the sender sees the acknowledgment; transcoding runs
// after it, and a transcoding failure retracts neither the row nor the
// acknowledgment.
func (s *Service) IngestVoice(ctx context.Context, chatID int64, sender, fileID string, data []byte) (model.VoiceMessage, error) {
	originalPath, err := s.store.Write(enums.CategoryAudioOGG, sender, fileID, data)
	if err != nil {
		return model.VoiceMessage{}, fmt.Errorf("store voice message: %w", err)
	}

	if err := s.catalog.Append(ctx, sender, originalPath); err != nil {
		return model.VoiceMessage{}, fmt.Errorf("record voice message: %w", err)
	}

	voice := model.VoiceMessage{
		Sender:       sender,
		FileID:       fileID,
		OriginalPath: originalPath,
	}

	if err := s.notifier.SendText(ctx, chatID, ui.MsgAudioSaved); err != nil {
		return voice, err
	}

	derivedPath, err := s.store.DerivedAudioPath(sender, fileID)
	if err != nil {
		return voice, err
	}
	if err := s.transcoder.ToWAV(ctx, originalPath, derivedPath, s.sampleRate); err != nil {
		return voice, fmt.Errorf("transcode voice message: %w", err)
	}
	voice.DerivedPath = derivedPath

	return voice, nil
}

// IngestPhoto keeps a photo only when face detection finds at least one
// face. Every exit path leaves exactly one terminal state: either the
// renamed accepted file exists, or no file exists. The provisional file is
// released by the deferred cleanup even when the detector fails.
func (s *Service) IngestPhoto(ctx context.Context, chatID int64, sender, fileID string, data []byte) (model.Photo, error) {
	provisionalPath, err := s.store.Write(enums.CategoryPhoto, sender, fileID, data)
	if err != nil {
		return model.Photo{}, fmt.Errorf("store photo: %w", err)
	}

	settled := false
	defer func() {
		if settled {
			return
		}
		if rmErr := s.store.Delete(provisionalPath); rmErr != nil {
			s.logger.Warn("remove provisional photo", "path", provisionalPath, "error", rmErr)
		}
	}()

	regions, err := s.detector.Detect(data)
	if err != nil {
		return model.Photo{}, fmt.Errorf("detect faces: %w", err)
	}

	photo := model.Photo{
		Sender:   sender,
		FileID:   fileID,
		HasFaces: len(regions) > 0,
	}

	if !photo.HasFaces {
		settled = true
		if err := s.store.Delete(provisionalPath); err != nil {
			return photo, fmt.Errorf("discard photo: %w", err)
		}
		if err := s.notifier.SendText(ctx, chatID, ui.MsgPhotoRejected); err != nil {
			return photo, err
		}
		return photo, nil
	}

	acceptedPath := s.store.AcceptedPhotoPath(sender, fileID)
	if err := s.store.Rename(provisionalPath, acceptedPath); err != nil {
		return model.Photo{}, fmt.Errorf("accept photo: %w", err)
	}
	settled = true
	photo.Path = acceptedPath

	if err := s.notifier.SendText(ctx, chatID, ui.MsgPhotoSaved); err != nil {
		return photo, err
	}

	return photo, nil
}
