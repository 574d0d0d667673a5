package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
	"unicode/utf8"

	app_errors "llamachat/internal/errors"
	"llamachat/internal/model"
	"llamachat/internal/repository"
)

const (
	// UntitledChat is the title of a session that has no user turn.
	UntitledChat = "Untitled Chat"

	displayTitleLimit = 20
	ellipsis          = "..."
)

// persistedSession is the on-disk form of one archive entry. The title is not
// stored; it is derived again from the turns on restore.
type persistedSession struct {
	ID       int64           `json:"id"`
	Messages []model.Message `json:"messages"`
}

// ArchiveService keeps the catalog of saved sessions. With a nil repository it
// only lives in memory; otherwise the whole archive is written to one slot on
// every mutation.
type ArchiveService struct {
	mu       sync.RWMutex
	sessions []model.SavedSession
	repo     repository.Repository
	key      string
	now      func() time.Time
}

// NewArchiveService creates an archive stored under key in repo. repo may be nil.
func NewArchiveService(repo repository.Repository, key string) *ArchiveService {
	return &ArchiveService{repo: repo, key: key, now: time.Now}
}

// Persistent reports whether the archive survives a restart.
func (s *ArchiveService) Persistent() bool {
	return s.repo != nil
}

// Restore replaces the in-memory archive with the persisted one. Missing or
// malformed data leaves an empty archive; it is logged and never returned as an error.
func (s *ArchiveService) Restore(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = nil
	if s.repo == nil {
		return
	}

	val, err := s.repo.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			slog.Warn("Could not read the session archive, starting empty", "key", s.key, "error", err)
		}
		return
	}

	var stored []persistedSession
	if err := json.Unmarshal([]byte(val), &stored); err != nil {
		slog.Warn("Persisted session archive is malformed, starting empty", "key", s.key, "error", err)
		return
	}

	seen := make(map[int64]struct{}, len(stored))
	sessions := make([]model.SavedSession, 0, len(stored))
	for _, p := range stored {
		if _, dup := seen[p.ID]; dup {
			slog.Warn("Skipping archived session with duplicate id", "id", p.ID)
			continue
		}
		if len(p.Messages) == 0 || !validTurns(p.Messages) {
			slog.Warn("Skipping malformed archived session", "id", p.ID)
			continue
		}
		seen[p.ID] = struct{}{}
		sessions = append(sessions, newSavedSession(p.ID, p.Messages))
	}
	s.sessions = sessions
	slog.Info("Restored session archive", "key", s.key, "sessions", len(sessions))
}

// Save archives a snapshot of turns. An empty conversation is not saved and
// (nil, nil) is returned.
func (s *ArchiveService) Save(ctx context.Context, turns []model.Message) (*model.SavedSession, error) {
	if len(turns) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	saved := newSavedSession(s.nextID(), turns)
	updated := append(append(make([]model.SavedSession, 0, len(s.sessions)+1), s.sessions...), saved)
	if err := s.persist(ctx, updated); err != nil {
		return nil, err
	}
	s.sessions = updated

	slog.Info("Saved chat session", "id", saved.ID, "title", saved.Title, "turns", len(saved.Turns))
	out := cloneSession(saved)
	return &out, nil
}

// Delete removes the session with the given id. Unknown ids are a no-op.
func (s *ArchiveService) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}
	updated := make([]model.SavedSession, 0, len(s.sessions)-1)
	updated = append(updated, s.sessions[:idx]...)
	updated = append(updated, s.sessions[idx+1:]...)
	if err := s.persist(ctx, updated); err != nil {
		return err
	}
	s.sessions = updated
	slog.Info("Deleted chat session", "id", id)
	return nil
}

// Clear empties the archive and removes the persisted slot.
func (s *ArchiveService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo != nil {
		if err := s.repo.Remove(ctx, s.key); err != nil {
			return fmt.Errorf("%w: could not remove session archive: %v", app_errors.ErrInternal, err)
		}
	}
	s.sessions = nil
	slog.Info("Cleared session archive")
	return nil
}

// List returns copies of all sessions in save order.
func (s *ArchiveService) List() []model.SavedSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.SavedSession, len(s.sessions))
	for i, sess := range s.sessions {
		out[i] = cloneSession(sess)
	}
	return out
}

// Get returns a copy of the session with the given id.
func (s *ArchiveService) Get(id int64) (*model.SavedSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: session %d", app_errors.ErrNotFound, id)
	}
	out := cloneSession(s.sessions[idx])
	return &out, nil
}

// DisplayTitle shortens long titles for the session list.
func DisplayTitle(title string) string {
	if utf8.RuneCountInString(title) <= displayTitleLimit {
		return title
	}
	return string([]rune(title)[:displayTitleLimit]) + ellipsis
}

// DeriveTitle returns the content of the first user turn, or UntitledChat.
func DeriveTitle(turns []model.Message) string {
	for _, t := range turns {
		if t.Role == model.RoleUser {
			return t.Content
		}
	}
	return UntitledChat
}

// nextID uses the current time in milliseconds, bumped past the largest id in
// use so identifiers stay unique and increasing. Callers hold s.mu.
func (s *ArchiveService) nextID() int64 {
	id := s.now().UnixMilli()
	for _, sess := range s.sessions {
		if sess.ID >= id {
			id = sess.ID + 1
		}
	}
	return id
}

func (s *ArchiveService) indexOf(id int64) int {
	for i, sess := range s.sessions {
		if sess.ID == id {
			return i
		}
	}
	return -1
}

// persist overwrites the slot with sessions. Callers hold s.mu.
func (s *ArchiveService) persist(ctx context.Context, sessions []model.SavedSession) error {
	if s.repo == nil {
		return nil
	}
	stored := make([]persistedSession, len(sessions))
	for i, sess := range sessions {
		stored[i] = persistedSession{ID: sess.ID, Messages: sess.Turns}
	}
	val, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("%w: could not encode session archive: %v", app_errors.ErrInternal, err)
	}
	if err := s.repo.Set(ctx, s.key, string(val)); err != nil {
		return fmt.Errorf("%w: could not write session archive: %v", app_errors.ErrInternal, err)
	}
	return nil
}

func newSavedSession(id int64, turns []model.Message) model.SavedSession {
	return model.SavedSession{
		ID:        id,
		Title:     DeriveTitle(turns),
		CreatedAt: time.UnixMilli(id).UTC(),
		Turns:     model.CopyMessages(turns),
	}
}

func cloneSession(s model.SavedSession) model.SavedSession {
	s.Turns = model.CopyMessages(s.Turns)
	return s
}

func validTurns(turns []model.Message) bool {
	for _, t := range turns {
		if !t.Role.Valid() {
			return false
		}
	}
	return true
}
