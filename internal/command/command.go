// Package command parses and validates the arguments of the bot's chat
// commands. Parsing is deliberately lenient: a malformed count degrades to
// the default instead of failing, since the count is advisory.
package command

import (
	"errors"
	"strconv"
	"strings"
)

// Message count bounds applied to every parsed command. The clamp here is
// the sole enforcement point preventing an unbounded window size from a
// user-supplied count.
const (
	DefaultCount = 100
	MinCount     = 1
	MaxCount     = 500
)

// ErrEmptyQuestion is returned when an ask command carries no question text
// after the optional count argument.
var ErrEmptyQuestion = errors.New("question text is empty")

// Kind identifies which command was issued.
type Kind int

const (
	KindSummarize Kind = iota
	KindAsk
)

func (k Kind) String() string {
	switch k {
	case KindSummarize:
		return "summarize"
	case KindAsk:
		return "ask"
	default:
		return "unknown"
	}
}

// Args holds the validated arguments of a parsed command.
type Args struct {
	Kind     Kind
	N        int
	Question string
}

// ParseSummarize parses the arguments of a summarize command. The raw string
// is everything after the command token. An optional leading non-negative
// integer is consumed as the message count; anything else falls back to the
// default count.
func ParseSummarize(raw string) Args {
	n, _ := consumeCount(raw)
	return Args{Kind: KindSummarize, N: n}
}

// ParseAsk parses the arguments of an ask command: an optional leading
// non-negative integer count followed by mandatory question text. A missing
// or empty question yields ErrEmptyQuestion.
func ParseAsk(raw string) (Args, error) {
	n, rest := consumeCount(raw)

	question := strings.TrimSpace(rest)
	if question == "" {
		return Args{}, ErrEmptyQuestion
	}

	return Args{Kind: KindAsk, N: n, Question: question}, nil
}

// Clamp bounds n into [MinCount, MaxCount], snapping out-of-range values to
// the nearest bound.
func Clamp(n int) int {
	if n < MinCount {
		return MinCount
	}
	if n > MaxCount {
		return MaxCount
	}
	return n
}

// consumeCount extracts an optional leading count from raw. If the first
// whitespace-delimited token parses as a non-negative integer it is consumed
// and clamped; otherwise the default count applies and the whole input is
// returned as the remainder.
func consumeCount(raw string) (int, string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return DefaultCount, ""
	}

	first := trimmed
	rest := ""
	if idx := strings.IndexFunc(trimmed, func(r rune) bool { return r == ' ' || r == '\t' || r == '\n' }); idx != -1 {
		first = trimmed[:idx]
		rest = trimmed[idx+1:]
	}

	n, err := strconv.Atoi(first)
	if err != nil || n < 0 {
		// Not a count: the whole input is free text.
		return DefaultCount, trimmed
	}

	return Clamp(n), rest
}
