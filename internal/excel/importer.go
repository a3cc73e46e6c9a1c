package excel

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/recallbot/internal/database"
	"github.com/example/recallbot/pkg/models"
	"github.com/example/recallbot/pkg/validator"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ImportConfig defines the import configuration.
type ImportConfig struct {
	FilePath            string // Path to the Excel, CSV or JSON file
	WordColumn          string // Column with the word key
	MeaningColumn       string // Column with the meaning
	PronunciationColumn string // Column with the pronunciation
	ExampleColumn       string // Column with the example sentence
	TranslationColumn   string // Column with the example translation
	NoteColumn          string // Column with the note
	SheetName           string // Name of the sheet to import; empty means the first sheet
	StartRow            int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration.
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		WordColumn:          "A",
		MeaningColumn:       "B",
		PronunciationColumn: "C",
		ExampleColumn:       "D",
		TranslationColumn:   "E",
		NoteColumn:          "F",
		StartRow:            2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation.
type ImportResult struct {
	TotalProcessed int
	Created        int
	Updated        int
	Skipped        int
	Duplicates     []string
	Errors         []string
}

// WordStore is the part of the word repository the importer writes to.
type WordStore interface {
	Get(ctx context.Context, key string) (models.Word, error)
	Upsert(ctx context.Context, word models.Word, now time.Time) error
}

// Importer loads word lists into the word pool.
type Importer struct {
	store WordStore
	log   *zap.Logger
}

func NewImporter(store WordStore, log *zap.Logger) *Importer {
	return &Importer{store: store, log: log}
}

// Row is a word read from a file together with its 1-based source row.
type Row struct {
	Num  int
	Word models.Word
}

// ImportWords imports words from an Excel, CSV or JSON file.
// Rows that fail validation and repeated keys are skipped and reported;
// the first occurrence of a key wins.
func (im *Importer) ImportWords(ctx context.Context, config ImportConfig, now time.Time) (*ImportResult, error) {
	rows, err := ReadWords(config)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{
		Duplicates: make([]string, 0),
		Errors:     make([]string, 0),
	}

	seen := make(map[string]int, len(rows))
	for _, r := range rows {
		result.TotalProcessed++

		if err := validator.ValidateStruct(r.Word); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", r.Num, err))
			continue
		}

		if first, dup := seen[r.Word.Word]; dup {
			result.Skipped++
			result.Duplicates = append(result.Duplicates, r.Word.Word)
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: duplicate word %q (first seen in row %d)", r.Num, r.Word.Word, first))
			continue
		}
		seen[r.Word.Word] = r.Num

		created, err := im.upsert(ctx, r.Word, now)
		if err != nil {
			// Storage failures abort the import; what was written stays written.
			im.log.Error("failed to import word", zap.String("word", r.Word.Word), zap.Error(err))
			return result, fmt.Errorf("row %d: %w", r.Num, err)
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	im.log.Info("words imported",
		zap.String("file", filepath.Base(config.FilePath)),
		zap.Int("processed", result.TotalProcessed),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped),
	)

	return result, nil
}

func (im *Importer) upsert(ctx context.Context, word models.Word, now time.Time) (bool, error) {
	_, err := im.store.Get(ctx, word.Word)
	created := errors.Is(err, database.ErrNotFound)
	if err != nil && !created {
		return false, fmt.Errorf("failed to look up word: %w", err)
	}
	if err := im.store.Upsert(ctx, word, now); err != nil {
		return false, fmt.Errorf("failed to save word: %w", err)
	}
	return created, nil
}

// ReadWords parses the file without touching storage. Blank rows are dropped.
func ReadWords(config ImportConfig) ([]Row, error) {
	switch strings.ToLower(filepath.Ext(config.FilePath)) {
	case ".csv":
		return readCSV(config)
	case ".json":
		return readJSON(config)
	default:
		return readExcel(config)
	}
}

// readExcel reads rows from an Excel file.
func readExcel(config ImportConfig) ([]Row, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := config.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	cells, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	return collectRows(cells, config), nil
}

// readCSV reads rows from a CSV file.
func readCSV(config ImportConfig) ([]Row, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	var cells [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		cells = append(cells, record)
	}

	return collectRows(cells, config), nil
}

// readJSON reads an array of word objects.
func readJSON(config ImportConfig) ([]Row, error) {
	data, err := os.ReadFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open JSON file: %w", err)
	}

	var words []models.Word
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("word data must be an array of objects: %w", err)
	}

	rows := make([]Row, 0, len(words))
	for i, w := range words {
		rows = append(rows, Row{Num: i + 1, Word: trimWord(w)})
	}
	return rows, nil
}

func collectRows(cells [][]string, config ImportConfig) []Row {
	start := max(config.StartRow, 1)

	rows := make([]Row, 0, len(cells))
	for i, cell := range cells {
		if i < start-1 || isBlank(cell) {
			continue
		}
		rows = append(rows, Row{Num: i + 1, Word: parseRow(cell, config)})
	}
	return rows
}

func parseRow(cells []string, config ImportConfig) models.Word {
	return trimWord(models.Word{
		Word:          cellAt(cells, config.WordColumn),
		Meaning:       cellAt(cells, config.MeaningColumn),
		Pronunciation: cellAt(cells, config.PronunciationColumn),
		Example:       cellAt(cells, config.ExampleColumn),
		Translation:   cellAt(cells, config.TranslationColumn),
		Note:          cellAt(cells, config.NoteColumn),
	})
}

func trimWord(w models.Word) models.Word {
	w.Word = strings.TrimSpace(w.Word)
	w.Meaning = strings.TrimSpace(w.Meaning)
	w.Pronunciation = strings.TrimSpace(w.Pronunciation)
	w.Example = strings.TrimSpace(w.Example)
	w.Translation = strings.TrimSpace(w.Translation)
	w.Note = strings.TrimSpace(w.Note)
	return w
}

func cellAt(cells []string, column string) string {
	if column == "" {
		return ""
	}
	if idx := columnToIndex(column); idx >= 0 && idx < len(cells) {
		return cells[idx]
	}
	return ""
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// columnToIndex converts an Excel column letter to a zero-based index.
func columnToIndex(column string) int {
	column = strings.ToUpper(column)
	index := 0
	for i := 0; i < len(column); i++ {
		if column[i] < 'A' || column[i] > 'Z' {
			return -1
		}
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}
