package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"carelens/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

// GigaChatExtractor implements Extractor over the GigaChat API. The model
// is instructed to answer with a bare JSON array, but the response is
// still treated as hostile: fences are stripped, the first [...] span is
// rescued, and anything unparseable becomes an empty result.
type GigaChatExtractor struct {
	client *gigago.Client
	model  *gigago.GenerativeModel
	logger *zap.Logger
}

func systemInstruction() string {
	return `You are a financial statement extraction engine for consumer care-provider statements. ` +
		`You receive raw text from statements, invoices and receipts and return the transactions they contain. ` +
		`Amounts for charges and debits are negative; deposits and credits are positive. ` +
		`You always answer with strict JSON and never invent transactions that are not in the document.`
}

func NewGigaChatExtractor(cfg *config.GigaChatConfig, logger *zap.Logger) (*GigaChatExtractor, error) {
	ctx := context.Background()

	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	model := client.GenerativeModel("GigaChat")
	model.SystemInstruction = systemInstruction()
	model.Temperature = 0.3

	return &GigaChatExtractor{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// Extract asks the model for the transactions in text. Text shorter than
// a plausible statement yields an empty slice without a round trip.
func (e *GigaChatExtractor) Extract(ctx context.Context, text string) ([]RawTransaction, error) {
	text = strings.TrimSpace(text)
	if len(text) < 10 {
		e.logger.Warn("Extracted text is too short, skipping oracle call", zap.Int("length", len(text)))
		return []RawTransaction{}, nil
	}

	prompt := fmt.Sprintf(`Extract every transaction from this statement text.

IMPORTANT: Return ONLY a valid JSON array, no commentary, no markdown.

Statement text:
%s

Return a JSON array in this exact shape:
[
  {
    "date": "YYYY-MM-DD",
    "description": "line item label",
    "amount": number
  }
]

RULES:
- Amounts for charges/debits must be negative, credits positive.
- If there are no transactions, return an empty array: []
- Return ONLY the JSON, no code fences, nothing before or after it.`, text)

	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: prompt},
	}

	resp, err := e.model.Generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("failed to generate response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from model")
	}

	rows, err := parseTransactionsJSON(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	e.logger.Info("Statement extraction completed", zap.Int("count", len(rows)))
	return rows, nil
}

// parseTransactionsJSON salvages a transaction array out of a model
// response that may be wrapped in markdown or surrounded by prose.
func parseTransactionsJSON(content string) ([]RawTransaction, error) {
	content = strings.TrimSpace(content)

	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end == -1 || end < start {
		lower := strings.ToLower(content)
		if strings.Contains(lower, "no transactions") ||
			strings.Contains(lower, "no financial") ||
			strings.Contains(lower, "empty") {
			return []RawTransaction{}, nil
		}
		return nil, fmt.Errorf("invalid response format: %s", content)
	}

	jsonStr := content[start : end+1]

	var rows []RawTransaction
	if err := json.Unmarshal([]byte(jsonStr), &rows); err != nil {
		jsonStr = strings.TrimSpace(jsonStr)
		jsonStr = strings.TrimPrefix(jsonStr, "```json")
		jsonStr = strings.TrimPrefix(jsonStr, "```")
		jsonStr = strings.TrimSuffix(jsonStr, "```")
		jsonStr = strings.TrimSpace(jsonStr)

		if err := json.Unmarshal([]byte(jsonStr), &rows); err != nil {
			return nil, fmt.Errorf("failed to parse JSON response: %w", err)
		}
	}
	return rows, nil
}

func (e *GigaChatExtractor) Close() error {
	if e.client != nil {
		e.client.Close()
	}
	return nil
}
