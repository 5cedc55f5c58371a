package attempt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
)

var (
	ErrNotFound        = errors.New("attempt: not found")
	ErrMissingClientID = errors.New("attempt: missing client id")
)

// Store is the durable outbox queue. List returns entries oldest first.
type Store interface {
	Put(ctx context.Context, a Attempt) error
	Delete(ctx context.Context, clientID string) error
	List(ctx context.Context) ([]Attempt, error)
}

// FileStore keeps one JSON file per attempt. File names are prefixed with a
// zero-padded sequence so a directory listing is FIFO order.
type FileStore struct {
	dir string
	mu  sync.Mutex
	seq uint64
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("outbox dir %s: %w", dir, err)
	}
	fs := &FileStore{dir: dir}
	names, err := fs.names()
	if err != nil {
		return nil, err
	}
	for _, n := range names {
		if seq, _, ok := splitName(n); ok && seq > fs.seq {
			fs.seq = seq
		}
	}
	return fs, nil
}

func splitName(name string) (uint64, string, bool) {
	base, ok := strings.CutSuffix(name, ".json")
	if !ok {
		return 0, "", false
	}
	seqPart, id, ok := strings.Cut(base, "-")
	if !ok {
		return 0, "", false
	}
	seq, err := strconv.ParseUint(seqPart, 10, 64)
	if err != nil {
		return 0, "", false
	}
	return seq, id, true
}

func (fs *FileStore) names() ([]string, error) {
	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		return nil, fmt.Errorf("read outbox: %w", err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, _, ok := splitName(e.Name()); ok {
			out = append(out, e.Name())
		}
	}
	slices.Sort(out)
	return out, nil
}

func (fs *FileStore) find(clientID string) (string, error) {
	names, err := fs.names()
	if err != nil {
		return "", err
	}
	for _, n := range names {
		if _, id, _ := splitName(n); id == clientID {
			return n, nil
		}
	}
	return "", ErrNotFound
}

// Put is a no-op when clientID is already queued.
func (fs *FileStore) Put(_ context.Context, a Attempt) error {
	if a.ClientID == "" {
		return ErrMissingClientID
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if _, err := fs.find(a.ClientID); err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode attempt %s: %w", a.ClientID, err)
	}
	fs.seq++
	name := fmt.Sprintf("%012d-%s.json", fs.seq, a.ClientID)
	tmp := filepath.Join(fs.dir, "."+name+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write attempt %s: %w", a.ClientID, err)
	}
	if err := os.Rename(tmp, filepath.Join(fs.dir, name)); err != nil {
		return fmt.Errorf("commit attempt %s: %w", a.ClientID, err)
	}
	return nil
}

func (fs *FileStore) Delete(_ context.Context, clientID string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	name, err := fs.find(clientID)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(fs.dir, name)); err != nil {
		return fmt.Errorf("delete attempt %s: %w", clientID, err)
	}
	return nil
}

func (fs *FileStore) List(_ context.Context) ([]Attempt, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	names, err := fs.names()
	if err != nil {
		return nil, err
	}
	out := make([]Attempt, 0, len(names))
	for _, n := range names {
		data, err := os.ReadFile(filepath.Join(fs.dir, n))
		if err != nil {
			return nil, fmt.Errorf("read attempt %s: %w", n, err)
		}
		var a Attempt
		if err := json.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("decode attempt %s: %w", n, err)
		}
		out = append(out, a)
	}
	return out, nil
}

// MemStore is an in-process Store.
type MemStore struct {
	mu      sync.Mutex
	entries []Attempt
}

func NewMemStore() *MemStore { return &MemStore{} }

func (m *MemStore) Put(_ context.Context, a Attempt) error {
	if a.ClientID == "" {
		return ErrMissingClientID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if e.ClientID == a.ClientID {
			return nil
		}
	}
	m.entries = append(m.entries, a)
	return nil
}

func (m *MemStore) Delete(_ context.Context, clientID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.entries {
		if e.ClientID == clientID {
			m.entries = slices.Delete(m.entries, i, i+1)
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemStore) List(_ context.Context) ([]Attempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.entries), nil
}
