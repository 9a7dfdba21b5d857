// Package archive provides storage backends for archived callback deliveries.
package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/readyplan/ready-api/internal/core"
)

const (
	DriverS3     = "s3"
	DriverMemory = "memory"
)

var (
	ErrInvalidConfig = errors.New("archive: invalid config")
	ErrInvalidKey    = errors.New("archive: invalid key")
)

// S3Client is the slice of the AWS S3 API the archive store needs.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Config selects and configures an archive backend.
type Config struct {
	Driver string
	Prefix string

	// S3 fields.
	Bucket   string
	S3Client S3Client
}

// New builds an archive store for the configured driver.
func New(cfg Config) (core.ArchiveStore, error) {
	switch strings.TrimSpace(strings.ToLower(cfg.Driver)) {
	case DriverMemory:
		return NewMemoryStore(cfg.Prefix), nil
	case DriverS3, "":
		return newS3Store(cfg)
	default:
		return nil, fmt.Errorf("%w: unsupported driver %q", ErrInvalidConfig, cfg.Driver)
	}
}

func normalizeKey(key string) (string, error) {
	if key != strings.TrimSpace(key) {
		return "", fmt.Errorf("%w: key has leading or trailing whitespace", ErrInvalidKey)
	}
	key = strings.TrimPrefix(key, "/")
	if key == "" {
		return "", fmt.Errorf("%w: empty key", ErrInvalidKey)
	}
	return key, nil
}

func normalizePrefix(prefix string) string {
	return strings.Trim(strings.TrimSpace(prefix), "/")
}

func joinPrefix(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "/" + key
}

// MemoryStore keeps archived objects in memory. Test and dev use only.
type MemoryStore struct {
	mu      sync.RWMutex
	prefix  string
	objects map[string][]byte
}

// NewMemoryStore builds an in-memory archive store.
func NewMemoryStore(prefix string) *MemoryStore {
	return &MemoryStore{
		prefix:  normalizePrefix(prefix),
		objects: make(map[string][]byte),
	}
}

// Put stores a copy of data under key.
func (m *MemoryStore) Put(_ context.Context, key string, data []byte) error {
	logicalKey, err := normalizeKey(key)
	if err != nil {
		return err
	}
	fullKey := joinPrefix(m.prefix, logicalKey)

	buf := make([]byte, len(data))
	copy(buf, data)

	m.mu.Lock()
	m.objects[fullKey] = buf
	m.mu.Unlock()
	return nil
}

// Get returns the stored object and whether it exists.
func (m *MemoryStore) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	data, ok := m.objects[joinPrefix(m.prefix, key)]
	m.mu.RUnlock()
	return data, ok
}

// Len returns the number of stored objects.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}

var _ core.ArchiveStore = (*MemoryStore)(nil)

type s3Store struct {
	client S3Client
	bucket string
	prefix string
}

func newS3Store(cfg Config) (core.ArchiveStore, error) {
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("%w: s3 bucket is required", ErrInvalidConfig)
	}
	if cfg.S3Client == nil {
		return nil, fmt.Errorf("%w: s3 client is required", ErrInvalidConfig)
	}
	return &s3Store{
		client: cfg.S3Client,
		bucket: bucket,
		prefix: normalizePrefix(cfg.Prefix),
	}, nil
}

func (s *s3Store) Put(ctx context.Context, key string, data []byte) error {
	logicalKey, err := normalizeKey(key)
	if err != nil {
		return err
	}
	fullKey := joinPrefix(s.prefix, logicalKey)

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(fullKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			return fmt.Errorf("archive/s3: put %q: %s: %w", logicalKey, apiErr.ErrorCode(), err)
		}
		return fmt.Errorf("archive/s3: put %q: %w", logicalKey, err)
	}
	return nil
}

var _ core.ArchiveStore = (*s3Store)(nil)
