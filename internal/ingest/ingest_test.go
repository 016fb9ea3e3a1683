package ingest

import (
	"context"
	"errors"
	"testing"

	"carelens/internal/models"

	"go.uber.org/zap"
)

type stubExtractor struct {
	rows []RawTransaction
	err  error
}

func (s *stubExtractor) Extract(ctx context.Context, text string) ([]RawTransaction, error) {
	return s.rows, s.err
}

func TestIngestCSVConfident(t *testing.T) {
	a := NewAdapter(&stubExtractor{}, zap.NewNop())

	res := a.Ingest(context.Background(), "statement.csv",
		[]byte("Date,Description,Amount\n2025-01-15,Care Visit,-10\n"))

	if res.Source != models.SourceCSV {
		t.Errorf("source = %s, want csv", res.Source)
	}
	if res.LowConfidence {
		t.Error("CSV with rows should not be low confidence")
	}
	if len(res.Transactions) != 1 {
		t.Errorf("got %d transactions, want 1", len(res.Transactions))
	}
}

func TestIngestEmptyCSVIsLowConfidence(t *testing.T) {
	a := NewAdapter(&stubExtractor{}, zap.NewNop())
	res := a.Ingest(context.Background(), "statement.csv", []byte("Date,Description,Amount\n"))
	if !res.LowConfidence {
		t.Error("zero extracted rows must raise the low-confidence flag")
	}
}

func TestIngestOraclePath(t *testing.T) {
	stub := &stubExtractor{rows: []RawTransaction{
		{Date: "2025-01-15", Description: "Care Visit", Amount: -10},
	}}
	a := NewAdapter(stub, zap.NewNop())

	res := a.Ingest(context.Background(), "statement.txt", []byte("some statement text with content"))
	if res.Source != models.SourceOracle {
		t.Errorf("source = %s, want oracle", res.Source)
	}
	if len(res.Transactions) != 1 {
		t.Errorf("got %d transactions, want 1", len(res.Transactions))
	}
	if !res.LowConfidence {
		t.Error("oracle extraction is always surfaced as low confidence")
	}
}

func TestIngestOracleFailureDegradesToEmpty(t *testing.T) {
	a := NewAdapter(&stubExtractor{err: errors.New("model unavailable")}, zap.NewNop())

	res := a.Ingest(context.Background(), "statement.txt", []byte("some statement text with content"))
	if len(res.Transactions) != 0 {
		t.Errorf("got %d transactions, want 0", len(res.Transactions))
	}
	if !res.LowConfidence {
		t.Error("oracle failure must be low confidence, not an error")
	}
}

func TestParseTransactionsJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
		wantErr bool
	}{
		{
			name:    "bare array",
			content: `[{"date":"2025-01-15","description":"Care Visit","amount":-10}]`,
			want:    1,
		},
		{
			name:    "fenced array",
			content: "```json\n[{\"date\":\"2025-01-15\",\"description\":\"Care Visit\",\"amount\":-10}]\n```",
			want:    1,
		},
		{
			name:    "array surrounded by prose",
			content: `Here are the transactions: [{"date":"2025-01-15","description":"Care Visit","amount":-10}] Let me know!`,
			want:    1,
		},
		{
			name:    "empty array",
			content: `[]`,
			want:    0,
		},
		{
			name:    "model says nothing found",
			content: "There are no transactions in this document.",
			want:    0,
		},
		{
			name:    "garbage",
			content: "I cannot help with that request.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := parseTransactionsJSON(tt.content)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(rows) != tt.want {
				t.Errorf("got %d rows, want %d", len(rows), tt.want)
			}
		})
	}
}
