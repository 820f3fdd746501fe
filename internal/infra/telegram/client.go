package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type UpdateHandler func(context.Context, tgbotapi.Update)

type Client struct {
	api         *tgbotapi.BotAPI
	httpClient  *http.Client
	logger      *slog.Logger
	handler     UpdateHandler
	pollTimeout int
}

func NewClient(token string, pollTimeout int, logger *slog.Logger, handler UpdateHandler) (*Client, error) {
	if handler == nil {
		return nil, errors.New("telegram update handler is required")
	}
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("telegram bot token is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	api, err := tgbotapi.NewBotAPI(strings.TrimSpace(token))
	if err != nil {
		return nil, err
	}
	logger.Info("authorized on telegram", "username", api.Self.UserName)

	return &Client{
		api: api,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger:      logger,
		handler:     handler,
		pollTimeout: pollTimeout,
	}, nil
}

func (c *Client) Start(ctx context.Context) error {
	timeout := c.pollTimeout
	if timeout <= 0 {
		timeout = 30
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = timeout
	updates := c.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			c.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			c.handler(ctx, update)
		}
	}
}

func (c *Client) SendText(ctx context.Context, chatID int64, text string) error {
	if chatID == 0 {
		return fmt.Errorf("chat id is required")
	}

	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := c.api.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}

	_ = ctx
	return nil
}

func (c *Client) SendTextWithKeyboard(ctx context.Context, chatID int64, text string, rows [][]string) error {
	if chatID == 0 {
		return fmt.Errorf("chat id is required")
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = BuildReplyKeyboard(rows)
	if _, err := c.api.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}

	_ = ctx
	return nil
}

func (c *Client) SendAudio(ctx context.Context, chatID int64, name string, data []byte) error {
	if chatID == 0 {
		return fmt.Errorf("chat id is required")
	}

	audio := tgbotapi.NewAudio(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	if _, err := c.api.Send(audio); err != nil {
		return fmt.Errorf("send telegram audio: %w", err)
	}

	_ = ctx
	return nil
}

func (c *Client) SendPhoto(ctx context.Context, chatID int64, name string, data []byte) error {
	if chatID == 0 {
		return fmt.Errorf("chat id is required")
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	if _, err := c.api.Send(photo); err != nil {
		return fmt.Errorf("send telegram photo: %w", err)
	}

	_ = ctx
	return nil
}

// DownloadFile fetches the raw bytes of an uploaded file by its provider
// file identifier.
func (c *Client) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	if strings.TrimSpace(fileID) == "" {
		return nil, fmt.Errorf("file id is required")
	}

	tgFile, err := c.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get telegram file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tgFile.Link(c.api.Token), nil)
	if err != nil {
		return nil, fmt.Errorf("create file request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download telegram file: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected telegram file status: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read telegram file: %w", err)
	}

	return data, nil
}
