// cmd/seeder/main.go
//
// Bulk-loads catalog items into the store database from supplier invoice
// PDFs and xlsx price lists. Tracks processed files in a state file so
// repeated runs only pick up new documents.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v3"

	"github.com/Fatush13/simplestore/internal/adapters/db"
	"github.com/Fatush13/simplestore/internal/core/domain"
	"github.com/Fatush13/simplestore/internal/core/ports"
	"github.com/Fatush13/simplestore/internal/core/services"
)

// SeedItem is a catalog row parsed from a source document
type SeedItem struct {
	ID       uuid.UUID
	Name     string
	Price    decimal.Decimal
	Quantity int64
	Source   string
}

// seedState tracks which source files were already loaded
type seedState struct {
	ProcessedFiles map[string]time.Time `json:"processed_files"`
}

func loadState(path string) (*seedState, error) {
	state := &seedState{ProcessedFiles: make(map[string]time.Time)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return state, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("parsing state file: %w", err)
	}
	if state.ProcessedFiles == nil {
		state.ProcessedFiles = make(map[string]time.Time)
	}
	return state, nil
}

func (s *seedState) save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Extractor parses source documents into seed items
type Extractor struct {
	logger *slog.Logger
}

// invoice lines look like "Widget Pro    3 x $19.99"
var seedLineRe = regexp.MustCompile(`^(.+?)\s{2,}(\d+)\s*[x@]\s*\$?(\d+(?:,\d{3})*(?:\.\d{1,2})?)\s*$`)

// ExtractFromPDF pulls item lines out of a supplier invoice PDF
func (e *Extractor) ExtractFromPDF(path string) ([]SeedItem, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pdf %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			e.logger.Warn("failed to extract text from page",
				slog.String("file", path),
				slog.Int("page", pageNum),
				slog.String("error", err.Error()))
			continue
		}
		lines = append(lines, strings.Split(text, "\n")...)
	}

	return e.parseLines(lines, filepath.Base(path)), nil
}

// ExtractFromXLSX reads a price list workbook. Expected columns:
// name, quantity, price. The first row is treated as a header.
func (e *Extractor) ExtractFromXLSX(path string) ([]SeedItem, error) {
	wb, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}

	if len(wb.Sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	sheet := wb.Sheets[0]
	source := filepath.Base(path)
	var items []SeedItem

	err = sheet.ForEachRow(func(row *xlsx.Row) error {
		if row.GetCoordinate() == 0 {
			return nil // header
		}

		name := strings.TrimSpace(row.GetCell(0).Value)
		if name == "" {
			return nil
		}

		qty, err := strconv.ParseInt(strings.TrimSpace(row.GetCell(1).Value), 10, 64)
		if err != nil || qty <= 0 {
			e.logger.Debug("skipping row with invalid quantity",
				slog.String("name", name))
			return nil
		}

		price, err := decimal.NewFromString(strings.TrimSpace(row.GetCell(2).Value))
		if err != nil || price.IsNegative() {
			e.logger.Debug("skipping row with invalid price",
				slog.String("name", name))
			return nil
		}

		items = append(items, SeedItem{
			ID:       uuid.New(),
			Name:     name,
			Price:    price,
			Quantity: qty,
			Source:   source,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (e *Extractor) parseLines(lines []string, source string) []SeedItem {
	var items []SeedItem

	for _, line := range lines {
		m := seedLineRe.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}

		name := strings.TrimSpace(m[1])
		if name == "" {
			continue
		}

		qty, err := strconv.ParseInt(m[2], 10, 64)
		if err != nil || qty <= 0 {
			continue
		}

		price, err := decimal.NewFromString(strings.ReplaceAll(m[3], ",", ""))
		if err != nil {
			continue
		}

		items = append(items, SeedItem{
			ID:       uuid.New(),
			Name:     name,
			Price:    price,
			Quantity: qty,
			Source:   source,
		})
	}

	return items
}

// saveItems loads the parsed rows through the store service so every row
// passes the same validation and defaults as API-created items
func saveItems(ctx context.Context, service ports.StoreService, items []SeedItem, logger *slog.Logger) error {
	batch := make([]domain.Item, 0, len(items))
	for _, item := range items {
		batch = append(batch, domain.Item{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}

	if err := service.AddItems(ctx, batch); err != nil {
		return fmt.Errorf("saving items: %w", err)
	}

	logger.Info("saved items to database", slog.Int("count", len(items)))
	return nil
}

func main() {
	var (
		sourceDir = flag.String("source", "./seed-data", "Directory containing invoice PDFs and xlsx price lists")
		stateFile = flag.String("state", "./.seed_state.json", "State file for tracking progress")
		logLevel  = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
		dryRun    = flag.Bool("dry-run", false, "Preview changes without modifying database")
		force     = flag.Bool("force", false, "Reprocess all source files")
	)
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx := context.Background()

	var storeService ports.StoreService
	if !*dryRun {
		dbConfig := db.DefaultConfig()
		dbConfig.Host = getEnv("DB_HOST", dbConfig.Host)
		dbConfig.Port = getEnv("DB_PORT", dbConfig.Port)
		dbConfig.User = getEnv("DB_USER", dbConfig.User)
		dbConfig.Password = getEnv("DB_PASSWORD", dbConfig.Password)
		dbConfig.Database = getEnv("DB_NAME", dbConfig.Database)
		dbConfig.SSLMode = getEnv("DB_SSL_MODE", dbConfig.SSLMode)
		dbConfig.MaxConnections = 4
		dbConfig.MinConnections = 1

		database, err := db.NewDatabase(ctx, dbConfig, logger)
		if err != nil {
			logger.Error("failed to connect to database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer database.Close()

		itemRepo := db.NewItemRepository(database, logger)
		saleRepo := db.NewSaleRepository(database, logger)
		storeService = services.NewStoreService(itemRepo, saleRepo, database, nil, 0, logger)
	}

	state, err := loadState(*stateFile)
	if err != nil {
		logger.Error("failed to load state file", slog.String("error", err.Error()))
		os.Exit(1)
	}

	entries, err := os.ReadDir(*sourceDir)
	if err != nil {
		logger.Error("failed to read source directory",
			slog.String("dir", *sourceDir),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	extractor := &Extractor{logger: logger}
	totalItems := 0
	processed := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		path := filepath.Join(*sourceDir, name)

		if _, done := state.ProcessedFiles[name]; done && !*force {
			logger.Debug("skipping already processed file", slog.String("file", name))
			continue
		}

		var items []SeedItem
		switch strings.ToLower(filepath.Ext(name)) {
		case ".pdf":
			items, err = extractor.ExtractFromPDF(path)
		case ".xlsx":
			items, err = extractor.ExtractFromXLSX(path)
		default:
			continue
		}
		if err != nil {
			logger.Error("failed to extract items",
				slog.String("file", name),
				slog.String("error", err.Error()))
			continue
		}

		if len(items) == 0 {
			logger.Warn("no items extracted", slog.String("file", name))
			continue
		}

		logger.Info("extracted items",
			slog.String("file", name),
			slog.Int("count", len(items)))

		if *dryRun {
			for _, item := range items {
				fmt.Printf("%-50s qty=%-5d price=%s\n", item.Name, item.Quantity, item.Price.StringFixed(2))
			}
		} else {
			if err := saveItems(ctx, storeService, items, logger); err != nil {
				logger.Error("failed to save items",
					slog.String("file", name),
					slog.String("error", err.Error()))
				continue
			}
			state.ProcessedFiles[name] = time.Now()
		}

		totalItems += len(items)
		processed++
	}

	if !*dryRun {
		if err := state.save(*stateFile); err != nil {
			logger.Error("failed to save state file", slog.String("error", err.Error()))
		}
	}

	logger.Info("seed operation completed",
		slog.Int("files_processed", processed),
		slog.Int("items_loaded", totalItems),
		slog.Bool("dry_run", *dryRun))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
