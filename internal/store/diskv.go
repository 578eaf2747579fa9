package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/peterbourgon/diskv/v3"
)

// sessionsKey holds the focus session log for the file backend. It is not
// reported by Keys.
const sessionsKey = "jast-focus-sessions"

// DiskStore keeps one file per key under a base directory.
type DiskStore struct {
	d  *diskv.Diskv
	mu sync.Mutex
}

// NewDisk opens a file-per-key store rooted at basePath.
func NewDisk(basePath string) (*DiskStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &DiskStore{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: flatTransform,
		InverseTransform:  flatInverse,
		CacheSizeMax:      1024 * 1024, // 1MB
	})}, nil
}

func flatTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{Path: []string{}, FileName: key}
}

func flatInverse(pk *diskv.PathKey) string {
	return pk.FileName
}

func (s *DiskStore) Get(key string) (string, error) {
	val, err := s.d.Read(key)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("get %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get %q: %w", key, err)
	}
	return string(val), nil
}

func (s *DiskStore) Set(key, value string) error {
	if err := s.d.Write(key, []byte(value)); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (s *DiskStore) Delete(key string) error {
	if !s.d.Has(key) {
		return nil
	}
	return s.d.Erase(key)
}

func (s *DiskStore) Keys() ([]string, error) {
	var keys []string
	for k := range s.d.Keys(nil) {
		if k == sessionsKey {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *DiskStore) Close() error { return nil }

func (s *DiskStore) sessions() ([]FocusSession, error) {
	var list []FocusSession
	err := GetJSON(s, sessionsKey, &list)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return list, err
}

func (s *DiskStore) RecordSession(seconds int, task string, at time.Time) (*FocusSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fs, err := newSession(seconds, task, at)
	if err != nil {
		return nil, err
	}
	list, err := s.sessions()
	if err != nil {
		return nil, fmt.Errorf("record session: %w", err)
	}
	list = append(list, *fs)
	if err := SetJSON(s, sessionsKey, list); err != nil {
		return nil, fmt.Errorf("record session: %w", err)
	}
	return fs, nil
}

func (s *DiskStore) SessionStats(from, to time.Time) (count int, totalSeconds int64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.sessions()
	if err != nil {
		return 0, 0, fmt.Errorf("session stats: %w", err)
	}
	for _, fs := range list {
		if fs.CompletedAt.Before(from) || !fs.CompletedAt.Before(to) {
			continue
		}
		count++
		totalSeconds += int64(fs.Seconds)
	}
	return count, totalSeconds, nil
}
