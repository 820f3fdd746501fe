package app

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Ugar78/telegram-bot-idrnd/internal/ui"
)

var startKeyboardRows = [][]string{
	{"/get_audio", "/get_photo"},
}

func (a *App) routeUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message != nil {
		a.routeMessage(ctx, update.Message)
	}
}

func (a *App) routeMessage(ctx context.Context, message *tgbotapi.Message) {
	if message == nil {
		return
	}

	if message.IsCommand() {
		switch message.Command() {
		case "start":
			a.handleStart(ctx, message)
		case "get_audio":
			a.handleGetAudio(ctx, message)
		case "get_photo":
			a.handleGetPhoto(ctx, message)
		default:
			a.sendText(ctx, message.Chat.ID, ui.MsgUnknownCommand)
		}
		return
	}

	if message.Voice != nil {
		a.handleVoice(ctx, message)
		return
	}

	if len(message.Photo) > 0 {
		a.handlePhoto(ctx, message)
	}
}

func (a *App) handleStart(ctx context.Context, message *tgbotapi.Message) {
	if err := a.tg.SendTextWithKeyboard(ctx, message.Chat.ID, ui.StartMessage(), startKeyboardRows); err != nil {
		a.logger.Warn("send start message", "error", err, "chat_id", message.Chat.ID)
	}
}

func (a *App) handleVoice(ctx context.Context, message *tgbotapi.Message) {
	if message.From == nil {
		return
	}

	sender := message.From.FirstName
	fileID := message.Voice.FileID

	data, err := a.tg.DownloadFile(ctx, fileID)
	if err != nil {
		a.logger.Error("download voice message", "error", err, "sender", sender, "file_id", fileID)
		return
	}

	voice, err := a.ingestService.IngestVoice(ctx, message.Chat.ID, sender, fileID, data)
	if err != nil {
		a.logger.Error("ingest voice message", "error", err, "sender", sender, "file_id", fileID)
		return
	}

	a.logger.Info("voice message saved", "sender", sender, "path", voice.OriginalPath)
}

func (a *App) handlePhoto(ctx context.Context, message *tgbotapi.Message) {
	if message.From == nil {
		return
	}

	// The last PhotoSize is the highest-resolution variant.
	sender := message.From.FirstName
	fileID := message.Photo[len(message.Photo)-1].FileID

	data, err := a.tg.DownloadFile(ctx, fileID)
	if err != nil {
		a.logger.Error("download photo", "error", err, "sender", sender, "file_id", fileID)
		return
	}

	photo, err := a.ingestService.IngestPhoto(ctx, message.Chat.ID, sender, fileID, data)
	if err != nil {
		a.logger.Error("ingest photo", "error", err, "sender", sender, "file_id", fileID)
		return
	}

	a.logger.Info("photo classified", "sender", sender, "has_faces", photo.HasFaces, "path", photo.Path)
}

func (a *App) handleGetAudio(ctx context.Context, message *tgbotapi.Message) {
	if err := a.retrieveService.SendAllAudio(ctx, message.Chat.ID); err != nil {
		a.logger.Error("send saved audio", "error", err, "chat_id", message.Chat.ID)
	}
}

func (a *App) handleGetPhoto(ctx context.Context, message *tgbotapi.Message) {
	if err := a.retrieveService.SendAllPhotos(ctx, message.Chat.ID); err != nil {
		a.logger.Error("send saved photos", "error", err, "chat_id", message.Chat.ID)
	}
}

func (a *App) sendText(ctx context.Context, chatID int64, text string) {
	if err := a.tg.SendText(ctx, chatID, text); err != nil {
		a.logger.Warn("send telegram message", "error", err, "chat_id", chatID)
	}
}
