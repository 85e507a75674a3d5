package command_test

import (
	"errors"
	"testing"

	"github.com/akarpov/recapbot/internal/command"
)

func TestParseSummarize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		raw   string
		wantN int
	}{
		{name: "no arguments", raw: "", wantN: 100},
		{name: "whitespace only", raw: "   ", wantN: 100},
		{name: "explicit count", raw: "50", wantN: 50},
		{name: "count at minimum", raw: "1", wantN: 1},
		{name: "count at maximum", raw: "500", wantN: 500},
		{name: "zero clamps to minimum", raw: "0", wantN: 1},
		{name: "over maximum clamps down", raw: "9999", wantN: 500},
		{name: "negative treated as free text", raw: "-5", wantN: 100},
		{name: "non-numeric treated as free text", raw: "please", wantN: 100},
		{name: "count with trailing text", raw: "25 extra words", wantN: 25},
		{name: "leading whitespace before count", raw: "  42", wantN: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			args := command.ParseSummarize(tt.raw)
			if args.Kind != command.KindSummarize {
				t.Errorf("ParseSummarize(%q).Kind = %v, want KindSummarize", tt.raw, args.Kind)
			}
			if args.N != tt.wantN {
				t.Errorf("ParseSummarize(%q).N = %d, want %d", tt.raw, args.N, tt.wantN)
			}
		})
	}
}

func TestParseAsk(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		raw          string
		wantN        int
		wantQuestion string
		wantErr      error
	}{
		{name: "question only", raw: "What happened?", wantN: 100, wantQuestion: "What happened?"},
		{name: "count and question", raw: "50 What happened?", wantN: 50, wantQuestion: "What happened?"},
		{name: "count only", raw: "50", wantErr: command.ErrEmptyQuestion},
		{name: "empty input", raw: "", wantErr: command.ErrEmptyQuestion},
		{name: "whitespace question", raw: "50    ", wantErr: command.ErrEmptyQuestion},
		{name: "zero count clamps to minimum", raw: "0 Who joined?", wantN: 1, wantQuestion: "Who joined?"},
		{name: "oversized count clamps to maximum", raw: "1000 Any decisions?", wantN: 500, wantQuestion: "Any decisions?"},
		{name: "negative count is part of the question", raw: "-3 degrees outside?", wantN: 100, wantQuestion: "-3 degrees outside?"},
		{name: "numeric word later in question", raw: "what about 42?", wantN: 100, wantQuestion: "what about 42?"},
		{name: "multiline question", raw: "10 first line\nsecond line", wantN: 10, wantQuestion: "first line\nsecond line"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			args, err := command.ParseAsk(tt.raw)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseAsk(%q) error = %v, want %v", tt.raw, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAsk(%q) unexpected error: %v", tt.raw, err)
			}
			if args.Kind != command.KindAsk {
				t.Errorf("ParseAsk(%q).Kind = %v, want KindAsk", tt.raw, args.Kind)
			}
			if args.N != tt.wantN {
				t.Errorf("ParseAsk(%q).N = %d, want %d", tt.raw, args.N, tt.wantN)
			}
			if args.Question != tt.wantQuestion {
				t.Errorf("ParseAsk(%q).Question = %q, want %q", tt.raw, args.Question, tt.wantQuestion)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int
		want int
	}{
		{in: -10, want: 1},
		{in: 0, want: 1},
		{in: 1, want: 1},
		{in: 100, want: 100},
		{in: 500, want: 500},
		{in: 501, want: 500},
		{in: 1 << 20, want: 500},
	}

	for _, tt := range tests {
		if got := command.Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
