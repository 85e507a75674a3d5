package digest_test

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/akarpov/recapbot/internal/command"
	"github.com/akarpov/recapbot/internal/database"
	"github.com/akarpov/recapbot/internal/digest"
	"github.com/akarpov/recapbot/internal/prompt"
)

type fakeStore struct {
	messages map[int64][]database.Message
	readErr  error
	saves    int
	upserts  int
}

func (f *fakeStore) Ping(context.Context) error { return nil }

func (f *fakeStore) UpsertChat(context.Context, *database.Chat) error {
	f.upserts++
	return nil
}

func (f *fakeStore) SaveMessage(context.Context, *database.Message) error {
	f.saves++
	return nil
}

func (f *fakeStore) RecentMessages(_ context.Context, chatID int64, limit int) ([]database.Message, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	msgs := f.messages[chatID]
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return msgs, nil
}

func (f *fakeStore) CountMessages(_ context.Context, chatID int64) (int64, error) {
	return int64(len(f.messages[chatID])), nil
}

func (f *fakeStore) RunSQLMaintenance(context.Context) error { return nil }

type fakeClient struct {
	reply      string
	err        error
	lastSystem string
	lastUser   string
	calls      int
}

func (f *fakeClient) Complete(_ context.Context, system, user string) (string, error) {
	f.calls++
	f.lastSystem = system
	f.lastUser = user
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func historyOf(texts ...string) []database.Message {
	ts := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	msgs := make([]database.Message, 0, len(texts))
	for i, text := range texts {
		msgs = append(msgs, database.Message{
			ID:        uint(i + 1),
			ChatID:    -100,
			UserID:    int64(i + 1),
			Username:  sql.NullString{String: "alice", Valid: true},
			Text:      text,
			Timestamp: ts.Add(time.Duration(i) * time.Minute),
		})
	}
	return msgs
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	store := &fakeStore{messages: map[int64][]database.Message{
		-100: historyOf("hello", "world"),
	}}
	client := &fakeClient{reply: "a fine summary"}
	svc := digest.NewService(store, client, time.Minute, nil)

	got, err := svc.Summarize(context.Background(), -100, command.ParseSummarize(""))
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if got != "a fine summary" {
		t.Errorf("got reply %q, want %q", got, "a fine summary")
	}
	if client.calls != 1 {
		t.Errorf("client called %d times, want exactly 1", client.calls)
	}
	if client.lastSystem != prompt.SystemInstruction {
		t.Errorf("system prompt = %q, want SystemInstruction", client.lastSystem)
	}
	if !strings.Contains(client.lastUser, "hello") || !strings.Contains(client.lastUser, "world") {
		t.Errorf("user prompt missing history lines:\n%s", client.lastUser)
	}
}

func TestSummarizeWindowLimit(t *testing.T) {
	t.Parallel()

	store := &fakeStore{messages: map[int64][]database.Message{
		-100: historyOf("old news", "recent one", "recent two"),
	}}
	client := &fakeClient{reply: "ok"}
	svc := digest.NewService(store, client, time.Minute, nil)

	if _, err := svc.Summarize(context.Background(), -100, command.ParseSummarize("2")); err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if strings.Contains(client.lastUser, "old news") {
		t.Errorf("window of 2 must not include the oldest message:\n%s", client.lastUser)
	}
	if !strings.Contains(client.lastUser, "recent one") || !strings.Contains(client.lastUser, "recent two") {
		t.Errorf("window of 2 missing the two newest messages:\n%s", client.lastUser)
	}
}

func TestSummarizeEmptyChat(t *testing.T) {
	t.Parallel()

	store := &fakeStore{messages: map[int64][]database.Message{}}
	client := &fakeClient{reply: "nothing happened"}
	svc := digest.NewService(store, client, time.Minute, nil)

	got, err := svc.Summarize(context.Background(), -999, command.ParseSummarize(""))
	if err != nil {
		t.Fatalf("Summarize over empty chat failed: %v", err)
	}
	if got != "nothing happened" {
		t.Errorf("got reply %q, want %q", got, "nothing happened")
	}
	// The model still gets called, handed the placeholder instead of history.
	if client.calls != 1 {
		t.Fatalf("client called %d times, want 1", client.calls)
	}
	if !strings.Contains(client.lastUser, prompt.NoHistoryPlaceholder) {
		t.Errorf("user prompt missing no-history placeholder:\n%s", client.lastUser)
	}
}

func TestAnswer(t *testing.T) {
	t.Parallel()

	store := &fakeStore{messages: map[int64][]database.Message{
		-100: historyOf("we ship on friday"),
	}}
	client := &fakeClient{reply: "Friday."}
	svc := digest.NewService(store, client, time.Minute, nil)

	args, err := command.ParseAsk("When do we ship?")
	if err != nil {
		t.Fatalf("ParseAsk failed: %v", err)
	}

	got, err := svc.Answer(context.Background(), -100, args)
	if err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	if got != "Friday." {
		t.Errorf("got reply %q, want %q", got, "Friday.")
	}
	if !strings.HasSuffix(client.lastUser, "User question: When do we ship?") {
		t.Errorf("user prompt must end with the delimited question:\n%s", client.lastUser)
	}
	if !strings.Contains(client.lastUser, "we ship on friday") {
		t.Errorf("user prompt missing history:\n%s", client.lastUser)
	}
}

func TestDispatchFailure(t *testing.T) {
	t.Parallel()

	store := &fakeStore{messages: map[int64][]database.Message{
		-100: historyOf("hello"),
	}}
	client := &fakeClient{err: errors.New("upstream 500")}
	svc := digest.NewService(store, client, time.Minute, nil)

	_, err := svc.Summarize(context.Background(), -100, command.ParseSummarize(""))
	if !errors.Is(err, digest.ErrDispatchFailed) {
		t.Fatalf("got error %v, want ErrDispatchFailed", err)
	}
	// A failed dispatch is a single attempt: no retries.
	if client.calls != 1 {
		t.Errorf("client called %d times after failure, want exactly 1", client.calls)
	}
	// The pipeline reads the store but never mutates it.
	if store.saves != 0 || store.upserts != 0 {
		t.Errorf("store mutated during dispatch: saves=%d upserts=%d", store.saves, store.upserts)
	}
}

func TestStoreReadFailure(t *testing.T) {
	t.Parallel()

	store := &fakeStore{readErr: errors.New("disk gone")}
	client := &fakeClient{reply: "unused"}
	svc := digest.NewService(store, client, time.Minute, nil)

	_, err := svc.Summarize(context.Background(), -100, command.ParseSummarize(""))
	if err == nil {
		t.Fatal("expected error when store read fails")
	}
	if errors.Is(err, digest.ErrDispatchFailed) {
		t.Error("store read failure must not be reported as a dispatch failure")
	}
	if client.calls != 0 {
		t.Errorf("client called %d times despite store failure, want 0", client.calls)
	}
}

func TestDispatchTimeout(t *testing.T) {
	t.Parallel()

	store := &fakeStore{messages: map[int64][]database.Message{
		-100: historyOf("hello"),
	}}
	client := &slowClient{delay: 50 * time.Millisecond}
	svc := digest.NewService(store, client, time.Millisecond, nil)

	_, err := svc.Summarize(context.Background(), -100, command.ParseSummarize(""))
	if !errors.Is(err, digest.ErrDispatchFailed) {
		t.Fatalf("got error %v, want ErrDispatchFailed on timeout", err)
	}
}

type slowClient struct {
	delay time.Duration
}

func (c *slowClient) Complete(ctx context.Context, _, _ string) (string, error) {
	select {
	case <-time.After(c.delay):
		return "too late", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
