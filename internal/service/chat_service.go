package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	app_errors "llamachat/internal/errors"
	"llamachat/internal/llm"
	"llamachat/internal/model"
)

// ErrorReply is appended as the assistant turn when an exchange fails for any reason.
const ErrorReply = "❌ Sorry, an error occurred."

// ErrExchangeInFlight rejects a submission made while the previous one is still waiting for its reply.
var ErrExchangeInFlight = fmt.Errorf("%w: a completion exchange is already in flight", app_errors.ErrConflict)

// ChatService owns the active conversation, the pending input and the loading flag.
type ChatService struct {
	llm         llm.CompletionProvider
	archive     *ArchiveService
	modelID     string
	autoArchive bool

	mu         sync.Mutex
	turns      []model.Message
	draft      string
	loading    bool
	generation uint64
	cancel     context.CancelFunc
}

// NewChatService wires the controller. With autoArchive set, StartNewChat saves a
// non-empty conversation to the archive before clearing it.
func NewChatService(provider llm.CompletionProvider, archive *ArchiveService, modelID string, autoArchive bool) *ChatService {
	return &ChatService{
		llm:         provider,
		archive:     archive,
		modelID:     modelID,
		autoArchive: autoArchive,
	}
}

// State returns a snapshot of the active conversation.
func (s *ChatService) State() model.ChatState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// SetDraft records the text currently typed but not yet submitted.
func (s *ChatService) SetDraft(text string) model.ChatState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = text
	return s.stateLocked()
}

// Submit appends a user turn and performs one completion exchange with the whole
// history. Blank text is ignored. It returns once the reply (or the error reply)
// has been appended. The exchange is not tied to ctx's cancellation: only
// replacing the conversation aborts it, and its reply is then dropped.
func (s *ChatService) Submit(ctx context.Context, text string) (state model.ChatState, err error) {
	s.mu.Lock()
	if strings.TrimSpace(text) == "" {
		defer s.mu.Unlock()
		return s.stateLocked(), nil
	}
	if s.loading {
		s.mu.Unlock()
		return model.ChatState{}, ErrExchangeInFlight
	}

	s.turns = append(s.turns, model.Message{Role: model.RoleUser, Content: text})
	s.draft = ""
	s.loading = true
	gen := s.generation
	history := model.CopyMessages(s.turns)
	exchangeCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.mu.Unlock()

	reply := ErrorReply
	defer func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		cancel()

		if gen != s.generation {
			slog.Info("Discarding completion reply for a replaced conversation")
			state = s.stateLocked()
			return
		}
		s.loading = false
		s.cancel = nil
		s.turns = append(s.turns, model.Message{Role: model.RoleAssistant, Content: reply})
		state = s.stateLocked()
	}()

	reply = s.exchange(exchangeCtx, history)
	return state, nil
}

// StartNewChat resets the conversation, archiving it first when auto-archive is on.
func (s *ChatService) StartNewChat(ctx context.Context) (model.ChatState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.autoArchive && len(s.turns) > 0 {
		if _, err := s.archive.Save(ctx, s.turns); err != nil {
			return s.stateLocked(), fmt.Errorf("could not archive conversation: %w", err)
		}
	}
	s.replaceLocked(nil)
	return s.stateLocked(), nil
}

// SaveCurrent archives the conversation and starts a new one. An empty
// conversation is left alone and (nil, nil) is returned.
func (s *ChatService) SaveCurrent(ctx context.Context) (*model.SavedSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.turns) == 0 {
		return nil, nil
	}
	saved, err := s.archive.Save(ctx, s.turns)
	if err != nil {
		return nil, fmt.Errorf("could not save conversation: %w", err)
	}
	s.replaceLocked(nil)
	return saved, nil
}

// LoadSession makes a copy of a saved session the active conversation.
func (s *ChatService) LoadSession(_ context.Context, id int64) (model.ChatState, error) {
	saved, err := s.archive.Get(id)
	if err != nil {
		return s.State(), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceLocked(saved.Turns)
	slog.Info("Loaded chat session", "id", id, "turns", len(saved.Turns))
	return s.stateLocked(), nil
}

// exchange performs one request/response round trip and returns the text of the
// assistant turn to append. Failures are logged and turned into ErrorReply.
func (s *ChatService) exchange(ctx context.Context, history []model.Message) string {
	logger := slog.With("exchange_id", uuid.NewString(), "model", s.modelID, "turns", len(history))

	messages := make([]llm.Message, len(history))
	for i, m := range history {
		messages[i] = llm.Message{Role: string(m.Role), Content: m.Content}
	}

	start := time.Now()
	logger.Info("Starting completion exchange")
	resp, err := s.llm.Complete(ctx, &llm.ChatCompletionRequest{Model: s.modelID, Messages: messages})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("Completion exchange cancelled", "duration", time.Since(start))
		} else {
			logger.Error("Completion exchange failed", "error", err, "duration", time.Since(start))
		}
		return ErrorReply
	}

	logger.Info("Completion exchange finished", "duration", time.Since(start))
	return resp.Content()
}

// replaceLocked swaps in a new conversation, cancelling any outstanding
// exchange so that its reply is discarded. Callers hold s.mu.
func (s *ChatService) replaceLocked(turns []model.Message) {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.generation++
	s.loading = false
	s.turns = model.CopyMessages(turns)
}

func (s *ChatService) stateLocked() model.ChatState {
	return model.ChatState{
		Turns:   model.CopyMessages(s.turns),
		Loading: s.loading,
		Draft:   s.draft,
	}
}
