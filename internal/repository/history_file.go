package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"ArgPulse/internal/domain/models"
	domrepo "ArgPulse/internal/domain/repository"
	applogger "ArgPulse/pkg/logger"
)

// FileHistory keeps the archive as a JSON array on disk.
type FileHistory struct {
	path string
	mu   sync.RWMutex
	l    *applogger.Logger
}

var _ domrepo.HistoryStore = (*FileHistory)(nil)

func NewFileHistory(path string, l *applogger.Logger) *FileHistory {
	if l == nil {
		l = applogger.Nop()
	}
	return &FileHistory{path: path, l: l}
}

func (s *FileHistory) Init(ctx context.Context) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create history dir: %w", err)
		}
	}
	return nil
}

// List returns the archive in file order. A missing file is an empty archive.
func (s *FileHistory) List(ctx context.Context) ([]models.DailyAnalysisPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read()
}

func (s *FileHistory) Get(ctx context.Context, id string) (*models.DailyAnalysisPost, error) {
	posts, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].ID == id {
			return &posts[i], nil
		}
	}
	return nil, domrepo.ErrPostNotFound
}

// Append adds post unless one with the same ID is already archived.
func (s *FileHistory) Append(ctx context.Context, post models.DailyAnalysisPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.read()
	if err != nil {
		return err
	}
	for _, p := range posts {
		if p.ID == post.ID {
			s.l.Debug("history append skipped, already archived", applogger.String("id", post.ID))
			return nil
		}
	}
	posts = append(posts, post)

	b, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace history: %w", err)
	}
	s.l.Info("history appended", applogger.String("id", post.ID), applogger.Int("posts", len(posts)))
	return nil
}

func (s *FileHistory) Close() error { return nil }

func (s *FileHistory) read() ([]models.DailyAnalysisPost, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []models.DailyAnalysisPost{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	var posts []models.DailyAnalysisPost
	if len(b) == 0 {
		return []models.DailyAnalysisPost{}, nil
	}
	if err := json.Unmarshal(b, &posts); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return posts, nil
}
