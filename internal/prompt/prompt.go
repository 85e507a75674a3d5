// Package prompt renders a window of chat messages into the text blocks sent
// to the AI model.
package prompt

import (
	"fmt"
	"strings"

	"github.com/akarpov/recapbot/internal/database"
)

const (
	// EmptyTextMarker stands in for messages that carry no text. They are
	// rendered rather than dropped so the line count of the context matches
	// the message count of the window.
	EmptyTextMarker = "[no text]"

	// NoHistoryPlaceholder is rendered when the window is empty.
	NoHistoryPlaceholder = "(no messages recorded)"

	timestampLayout = "2006-01-02 15:04:05"
)

// SystemInstruction is the system prompt shared by both commands. The model
// is told to emit Telegram MarkdownV2 only; the respond step still escapes
// the output before sending.
const SystemInstruction = "You are a helpful assistant summarizing and answering questions about a group chat. " +
	"Be brief and to the point. Reply in the language used by the chat. " +
	"Output only the final answer, without your reasoning."

// Render serializes a window of messages into one line per message:
// sender label, timestamp, separator, text. Lines follow the window's order.
// An empty window renders the no-history placeholder.
func Render(window []database.Message) string {
	if len(window) == 0 {
		return NoHistoryPlaceholder
	}

	var sb strings.Builder
	for i := range window {
		m := &window[i]
		text := m.Text
		if strings.TrimSpace(text) == "" {
			text = EmptyTextMarker
		}
		fmt.Fprintf(&sb, "%s (%s): %s\n", m.SenderLabel(), m.Timestamp.UTC().Format(timestampLayout), text)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// Summary builds the prompt for a summarize command over an already rendered
// history block.
func Summary(history string) string {
	var sb strings.Builder
	sb.WriteString("Analyze the following chat messages, given in chronological order (oldest first). ")
	sb.WriteString("Provide a brief, informative summary of the latest news and important discussions. ")
	sb.WriteString("Focus on key points, decisions, and updates; avoid filler. ")
	sb.WriteString("Do not mention that you are summarizing a chat, just provide the summary directly.\n\n")
	sb.WriteString("Chat messages:\n")
	sb.WriteString(history)
	return sb.String()
}

// Question builds the prompt for an ask command. The question is appended
// after the rendered history as a distinct, delimited segment so the model
// cannot confuse history content with the instruction.
func Question(history, question string) string {
	var sb strings.Builder
	sb.WriteString("Based on the following chat messages (in chronological order, oldest first), ")
	sb.WriteString("answer the user's question briefly and precisely. ")
	sb.WriteString("If the chat does not contain the information, say so clearly.\n\n")
	sb.WriteString("Chat messages:\n")
	sb.WriteString(history)
	sb.WriteString("\n\nUser question: ")
	sb.WriteString(question)
	return sb.String()
}
