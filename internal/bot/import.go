package bot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/recallbot/internal/excel"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// maxImportSize is the largest word list accepted from chat.
const maxImportSize = 10 << 20

var importExtensions = map[string]bool{
	".xlsx": true,
	".csv":  true,
	".json": true,
}

func (b *Bot) handleDocument(ctx context.Context, message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	userID := message.From.ID

	if !b.cfg.IsAdmin(userID) {
		b.log.Info("document from non-admin ignored", zap.Int64("user_id", userID), zap.Error(errNotAdmin))
		return b.sendText(chatID, "Only administrators can import words.")
	}
	if !b.isAwaitingFile(userID) {
		return b.sendText(chatID, "Send /import first, then the file.")
	}

	doc := message.Document
	ext := strings.ToLower(filepath.Ext(doc.FileName))
	if !importExtensions[ext] {
		return b.sendText(chatID, "Unsupported file type. Send an .xlsx, .csv or .json file.")
	}
	if doc.FileSize > maxImportSize {
		return b.sendText(chatID, "The file is too large.")
	}
	b.setAwaitingFile(userID, false)

	path, err := b.downloadDocument(ctx, doc.FileID, ext)
	if err != nil {
		_ = b.sendText(chatID, "Could not download the file. Please try again.")
		return err
	}
	defer os.Remove(path)

	cfg := excel.DefaultImportConfig()
	cfg.FilePath = path

	result, err := b.importer.ImportWords(ctx, cfg, b.now())
	if err != nil {
		_ = b.sendText(chatID, "❌ Import failed: "+err.Error())
		return fmt.Errorf("failed to import words: %w", err)
	}

	b.log.Info("words imported",
		zap.Int64("user_id", userID),
		zap.String("file", doc.FileName),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped),
	)
	return b.sendText(chatID, formatImportResult(result))
}

// downloadDocument stores a Telegram file in a temporary file with ext
// and returns its path.
func (b *Bot) downloadDocument(ctx context.Context, fileID, ext string) (string, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve file url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build download request: %w", err)
	}
	resp, err := b.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download file: status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", "words-*"+ext)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer tmp.Close()

	if _, err := io.Copy(tmp, io.LimitReader(resp.Body, maxImportSize)); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	return tmp.Name(), nil
}
