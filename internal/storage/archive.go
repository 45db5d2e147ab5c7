package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chartmuseum/storage"
	"github.com/google/uuid"
)

// ArchivedWorkbook is one retained report artifact.
type ArchivedWorkbook struct {
	Key     string    `json:"key"`
	Preset  string    `json:"preset"`
	SavedAt time.Time `json:"saved_at"`
}

// WorkbookArchive retains every generated workbook under a unique run key, so
// a report stays retrievable after the orders behind it change.
type WorkbookArchive interface {
	Save(ctx context.Context, preset string, data []byte) (ArchivedWorkbook, error)
	List(ctx context.Context) ([]ArchivedWorkbook, error)
	Get(ctx context.Context, key string) ([]byte, error)
}

type backendArchive struct {
	backend storage.Backend
}

// NewLocalArchive stores workbooks on the local filesystem under dir.
func NewLocalArchive(dir string) WorkbookArchive {
	return &backendArchive{backend: storage.NewLocalFilesystemBackend(dir)}
}

// NewArchive wraps an arbitrary storage backend; used by tests and by any
// future move to an S3-compatible bucket.
func NewArchive(backend storage.Backend) WorkbookArchive {
	return &backendArchive{backend: backend}
}

func (a *backendArchive) Save(ctx context.Context, preset string, data []byte) (ArchivedWorkbook, error) {
	now := time.Now().UTC()
	key := fmt.Sprintf("%s/%s_%s.xlsx", now.Format("2006-01-02"), preset, uuid.NewString()[:8])
	if err := a.backend.PutObject(key, data); err != nil {
		return ArchivedWorkbook{}, fmt.Errorf("archive workbook %s: %w", key, err)
	}
	return ArchivedWorkbook{Key: key, Preset: preset, SavedAt: now}, nil
}

func (a *backendArchive) List(ctx context.Context) ([]ArchivedWorkbook, error) {
	objects, err := a.backend.ListObjects("")
	if err != nil {
		return nil, fmt.Errorf("list archived workbooks: %w", err)
	}
	out := make([]ArchivedWorkbook, 0, len(objects))
	for _, obj := range objects {
		out = append(out, ArchivedWorkbook{
			Key:     obj.Path,
			Preset:  presetFromKey(obj.Path),
			SavedAt: obj.LastModified,
		})
	}
	return out, nil
}

func (a *backendArchive) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := a.backend.GetObject(key)
	if err != nil {
		return nil, fmt.Errorf("read archived workbook %s: %w", key, err)
	}
	return obj.Content, nil
}

// presetFromKey recovers the preset from a "<date>/<preset>_<runid>.xlsx" key.
func presetFromKey(key string) string {
	base := key
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndexByte(base, '_'); i >= 0 {
		return base[:i]
	}
	return strings.TrimSuffix(base, ".xlsx")
}
