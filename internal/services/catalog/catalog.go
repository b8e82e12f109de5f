// Package catalog holds the searchable list of tradable stocks loaded from
// exchange listing files.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/onetrade/internal/models"
	"gopkg.in/yaml.v3"
)

// Catalog is an immutable, ordered stock listing.
type Catalog struct {
	stocks   []models.Stock
	bySymbol map[string]int
}

// New builds a catalog from rows, dropping rows with an empty symbol and
// repeated symbols (the first occurrence wins).
func New(rows []models.Stock) *Catalog {
	c := &Catalog{
		stocks:   make([]models.Stock, 0, len(rows)),
		bySymbol: make(map[string]int, len(rows)),
	}
	for _, row := range rows {
		row.Symbol = strings.TrimSpace(row.Symbol)
		row.Name = strings.TrimSpace(row.Name)
		if row.Symbol == "" {
			continue
		}
		key := strings.ToUpper(row.Symbol)
		if _, dup := c.bySymbol[key]; dup {
			continue
		}
		c.bySymbol[key] = len(c.stocks)
		c.stocks = append(c.stocks, row)
	}
	return c
}

// Load reads listing files in order and concatenates them. JSON arrays are
// read from .json files and YAML sequences from .yaml/.yml files. Missing
// files are skipped with a warning.
func Load(logger arbor.ILogger, paths ...string) (*Catalog, error) {
	var rows []models.Stock
	for _, path := range paths {
		if path == "" {
			continue
		}
		fileRows, err := loadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Warn().Str("path", path).Msg("Listing file not found, skipping")
				continue
			}
			return nil, err
		}
		logger.Info().Str("path", path).Int("stocks", len(fileRows)).Msg("Loaded listing file")
		rows = append(rows, fileRows...)
	}

	c := New(rows)
	logger.Info().Int("total", c.Len()).Msg("Stock catalog loaded")
	return c, nil
}

func loadFile(path string) ([]models.Stock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rows []models.Stock
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &rows)
	case ".json":
		err = json.Unmarshal(data, &rows)
	default:
		return nil, fmt.Errorf("unsupported listing file type %q", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode listing file %s: %w", path, err)
	}
	return rows, nil
}

// Len returns the number of stocks.
func (c *Catalog) Len() int {
	return len(c.stocks)
}

// All returns every stock in listing order.
func (c *Catalog) All() []models.Stock {
	out := make([]models.Stock, len(c.stocks))
	copy(out, c.stocks)
	return out
}

// Search returns every stock for a blank query, otherwise the stocks whose
// name or symbol contains the query, case-insensitively, in listing order.
// The result is never nil.
func (c *Catalog) Search(query string) []models.Stock {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.All()
	}

	out := []models.Stock{}
	for _, s := range c.stocks {
		if strings.Contains(strings.ToLower(s.Name), q) || strings.Contains(strings.ToLower(s.Symbol), q) {
			out = append(out, s)
		}
	}
	return out
}

// Lookup finds a stock by exact symbol, case-insensitively.
func (c *Catalog) Lookup(symbol string) (models.Stock, bool) {
	i, ok := c.bySymbol[strings.ToUpper(strings.TrimSpace(symbol))]
	if !ok {
		return models.Stock{}, false
	}
	return c.stocks[i], true
}
