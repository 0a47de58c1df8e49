package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"anime-tracker/core/apperror"
	"anime-tracker/core/media"
	"anime-tracker/core/storage"
	"anime-tracker/feature/catalog"
	"anime-tracker/feature/catalog/models"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Source supplies the titles to export. *catalog.Service implements it.
type Source interface {
	All(ctx context.Context, kind media.Kind) ([]models.Title, error)
}

// Object describes one stored export.
type Object struct {
	Name         string    `json:"name"`
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// Result describes a finished export.
type Result struct {
	Kind   string `json:"kind"`
	Key    string `json:"key"`
	Count  int    `json:"count"`
	Size   int64  `json:"size"`
	Shared bool   `json:"shared"`
}

// Service writes JSON snapshots of the catalog to object storage.
type Service struct {
	client storage.Client
	cfg    storage.Config
	source Source
	logger *zap.Logger
	group  singleflight.Group
	now    func() time.Time
	newID  func() string
}

// NewService creates an export service.
func NewService(client storage.Client, cfg storage.Config, source Source, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "exports"
	}
	return &Service{
		client: client,
		cfg:    cfg,
		source: source,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

func (s *Service) kindPrefix(kind media.Kind) string {
	return path.Join(s.cfg.Prefix, kind.String()) + "/"
}

// Export snapshots every title of kind. Concurrent exports of the same kind
// share one run.
func (s *Service) Export(ctx context.Context, kind media.Kind) (*Result, error) {
	v, err, shared := s.group.Do(kind.String(), func() (any, error) {
		return s.export(ctx, kind)
	})
	if err != nil {
		return nil, err
	}
	res := *v.(*Result)
	res.Shared = shared
	return &res, nil
}

func (s *Service) export(ctx context.Context, kind media.Kind) (*Result, error) {
	if err := storage.EnsureBucket(ctx, s.client, s.cfg.Bucket, s.cfg.Region); err != nil {
		return nil, err
	}

	rows, err := s.source.All(ctx, kind)
	if err != nil {
		return nil, err
	}

	payload, err := json.MarshalIndent(catalog.SerializeAll(rows), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s export: %w", kind, err)
	}

	// Nanosecond prefix keeps keys sortable; the id keeps same-instant exports apart.
	key := s.kindPrefix(kind) + fmt.Sprintf("%d-%s.json", s.now().UnixNano(), s.newID())
	_, err = s.client.PutObject(ctx, s.cfg.Bucket, key, bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", key, err)
	}

	s.logger.Info("Catalog exported",
		zap.String("kind", kind.String()),
		zap.String("key", key),
		zap.Int("count", len(rows)),
		zap.Int("bytes", len(payload)))

	s.prune(ctx, kind)

	return &Result{Kind: kind.String(), Key: key, Count: len(rows), Size: int64(len(payload))}, nil
}

// List returns the stored exports of kind, newest first.
func (s *Service) List(ctx context.Context, kind media.Kind) ([]Object, error) {
	prefix := s.kindPrefix(kind)
	objects := make([]Object, 0)
	for obj := range s.client.ListObjects(ctx, s.cfg.Bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			if minio.ToErrorResponse(obj.Err).Code == "NoSuchBucket" {
				return objects, nil
			}
			return nil, fmt.Errorf("failed to list %s: %w", prefix, obj.Err)
		}
		objects = append(objects, Object{
			Name:         strings.TrimPrefix(obj.Key, prefix),
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}

	sort.Slice(objects, func(i, j int) bool {
		return objects[i].Key > objects[j].Key
	})
	return objects, nil
}

// Read returns the content of one export.
func (s *Service) Read(ctx context.Context, kind media.Kind, name string) ([]byte, error) {
	if name == "" || strings.ContainsAny(name, "/\\") || !strings.HasSuffix(name, ".json") {
		return nil, apperror.Validation("invalid export name %q", name)
	}

	key := s.kindPrefix(kind) + name
	obj, err := s.client.GetObject(ctx, s.cfg.Bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.mapReadError(key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, s.mapReadError(key, err)
	}
	return data, nil
}

func (s *Service) mapReadError(key string, err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return apperror.NotFound("export %s not found", key)
	}
	return fmt.Errorf("failed to read %s: %w", key, err)
}

// prune removes exports beyond the retention count. Failures are only logged.
func (s *Service) prune(ctx context.Context, kind media.Kind) {
	if s.cfg.Retain <= 0 {
		return
	}

	objects, err := s.List(ctx, kind)
	if err != nil {
		s.logger.Warn("Failed to list exports for pruning", zap.String("kind", kind.String()), zap.Error(err))
		return
	}
	if len(objects) <= s.cfg.Retain {
		return
	}

	stale := objects[s.cfg.Retain:]
	ch := make(chan minio.ObjectInfo, len(stale))
	for _, obj := range stale {
		ch <- minio.ObjectInfo{Key: obj.Key}
	}
	close(ch)

	removed := len(stale)
	for rerr := range s.client.RemoveObjects(ctx, s.cfg.Bucket, ch, minio.RemoveObjectsOptions{}) {
		removed--
		s.logger.Warn("Failed to remove stale export",
			zap.String("key", rerr.ObjectName),
			zap.Error(rerr.Err))
	}

	s.logger.Debug("Pruned exports", zap.String("kind", kind.String()), zap.Int("removed", removed))
}
