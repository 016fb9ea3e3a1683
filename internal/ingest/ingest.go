// Package ingest turns uploaded statement files into raw transaction
// tuples. CSV files go through a deterministic column-sniffing parser;
// everything else is handed to a best-effort AI extraction oracle whose
// output is tolerated, never trusted.
package ingest

import (
	"context"
	"path/filepath"
	"strings"

	"carelens/internal/models"

	"go.uber.org/zap"
)

// RawTransaction is one extracted statement row before persistence.
type RawTransaction struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// Result is the outcome of ingesting one file. LowConfidence signals that
// extraction may have silently missed rows and the user should review.
type Result struct {
	Transactions  []RawTransaction
	Source        models.StatementSource
	LowConfidence bool
}

// Extractor is the AI extraction oracle capability. Implementations are
// unreliable by contract: callers bound them with a context deadline and
// treat any failure as zero rows, not a hard error.
type Extractor interface {
	Extract(ctx context.Context, text string) ([]RawTransaction, error)
}

// maxExcerptLen bounds the text handed to the oracle.
const maxExcerptLen = 15000

// Adapter routes files to the right parser.
type Adapter struct {
	extractor Extractor
	logger    *zap.Logger
}

func NewAdapter(extractor Extractor, logger *zap.Logger) *Adapter {
	return &Adapter{extractor: extractor, logger: logger}
}

// Ingest parses one uploaded file. It never fails on malformed content:
// bad rows are dropped, oracle failures degrade to an empty result with
// LowConfidence set.
func (a *Adapter) Ingest(ctx context.Context, fileName string, data []byte) Result {
	ext := strings.ToLower(filepath.Ext(fileName))

	if ext == ".csv" {
		rows := ParseCSV(string(data))
		a.logger.Info("CSV statement parsed",
			zap.String("file", fileName),
			zap.Int("rows", len(rows)),
		)
		return Result{
			Transactions:  rows,
			Source:        models.SourceCSV,
			LowConfidence: len(rows) == 0,
		}
	}

	text, err := a.extractText(ext, data)
	if err != nil {
		a.logger.Warn("Text extraction failed, continuing with empty result",
			zap.String("file", fileName),
			zap.Error(err),
		)
		return Result{Source: models.SourceOracle, LowConfidence: true}
	}
	if len(text) > maxExcerptLen {
		text = text[:maxExcerptLen]
	}

	rows, err := a.extractor.Extract(ctx, text)
	if err != nil {
		a.logger.Warn("Oracle extraction failed, continuing with empty result",
			zap.String("file", fileName),
			zap.Error(err),
		)
		rows = nil
	}

	a.logger.Info("Oracle statement extracted",
		zap.String("file", fileName),
		zap.Int("rows", len(rows)),
	)
	// Oracle output can silently under-extract, so the whole path is
	// low confidence and surfaced to the user as such.
	return Result{
		Transactions:  rows,
		Source:        models.SourceOracle,
		LowConfidence: true,
	}
}

func (a *Adapter) extractText(ext string, data []byte) (string, error) {
	if ext == ".pdf" {
		return ExtractPDFText(data, a.logger)
	}
	return string(data), nil
}
