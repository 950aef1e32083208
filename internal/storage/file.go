package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/moodmate/companion/internal/model/mood"
)

// FileStorage keeps entries in memory and flushes them to a JSON file after a short quiet period.
type FileStorage struct {
	mem       *MemoryStorage
	path      string
	saveCh    chan struct{}
	shutdown  chan struct{}
	done      chan struct{}
	saveDelay time.Duration
	closeOnce sync.Once
	logger    *zap.Logger
}

// NewFileStorage loads path (a missing or empty file is an empty store) and starts the save worker.
func NewFileStorage(path string, logger *zap.Logger) (*FileStorage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	s := &FileStorage{
		mem:       NewMemoryStorage(),
		path:      path,
		saveCh:    make(chan struct{}, 1),
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		saveDelay: 500 * time.Millisecond,
		logger:    logger,
	}

	if err := s.loadEntries(); err != nil {
		logger.Error("storage: failed to load mood entries", zap.String("path", path), zap.Error(err))
		return nil, err
	}

	go s.saveWorker()
	return s, nil
}

func (s *FileStorage) loadEntries() error {
	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var entries []mood.Entry
	if err := json.NewDecoder(file).Decode(&entries); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	s.mem.load(entries)
	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStorage) save() error {
	entries, _ := s.mem.List(context.Background())
	return atomicWriteFileJSON(s.path, entries)
}

func (s *FileStorage) saveWorker() {
	defer close(s.done)

	timer := time.NewTimer(s.saveDelay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-s.saveCh:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := s.save(); err != nil {
				s.logger.Error("storage: error saving mood entries", zap.Error(err))
			}
		case <-s.shutdown:
			return
		}
	}
}

func (s *FileStorage) Insert(ctx context.Context, entry *mood.Entry) error {
	if err := s.mem.Insert(ctx, entry); err != nil {
		return err
	}
	select {
	case s.saveCh <- struct{}{}:
	default:
	}
	return nil
}

func (s *FileStorage) List(ctx context.Context) ([]mood.Entry, error) {
	return s.mem.List(ctx)
}

// Close stops the worker and writes pending entries synchronously.
func (s *FileStorage) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.shutdown)
		<-s.done
		err = s.save()
	})
	return err
}

var _ MoodRepository = (*FileStorage)(nil)
