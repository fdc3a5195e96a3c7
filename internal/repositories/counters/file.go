package counters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mediarelay/twitter-media-telegram-bot/internal/domain"
	"github.com/mediarelay/twitter-media-telegram-bot/pkg/logger"
)

// FileRepository persists counters as a JSON file. Writes go through a
// temp file and rename so a crash never leaves a half-written state.
type FileRepository struct {
	path   string
	logger logger.Logger
}

func NewFileRepository(path string, logger logger.Logger) *FileRepository {
	return &FileRepository{
		path:   path,
		logger: logger.WithComponent("CountersFileRepo"),
	}
}

var _ Repository = (*FileRepository)(nil)

func (r *FileRepository) Load(_ context.Context) (domain.UsageCounters, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.NewUsageCounters(), nil
	}
	if err != nil {
		return domain.UsageCounters{}, fmt.Errorf("reading counters file: %w", err)
	}

	c := domain.NewUsageCounters()
	if err := json.Unmarshal(data, &c); err != nil {
		// A corrupt stats file should not keep the bot down.
		r.logger.Warn("Counters file is corrupt, starting from zero", "path", r.path, "error", err)
		return domain.NewUsageCounters(), nil
	}
	if c.FailuresByCause == nil {
		c.FailuresByCause = make(map[domain.Cause]int)
	}
	if c.RequestsByIdentity == nil {
		c.RequestsByIdentity = make(map[string]int)
	}
	return c, nil
}

func (r *FileRepository) Save(_ context.Context, c domain.UsageCounters) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding counters: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".stats-*.json")
	if err != nil {
		return fmt.Errorf("creating temp counters file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("writing counters: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("closing counters file: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replacing counters file: %w", err)
	}
	return nil
}
