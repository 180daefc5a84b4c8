package corpus

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// S3Prefix marks a source that lives in the object store rather than on disk.
const S3Prefix = "s3://"

// ObjectGetter is the part of storage.Client the loader needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, key string) (io.ReadCloser, error)
}

// Loader reads documents from local files or from an object store.
type Loader struct {
	store ObjectGetter
	log   *zap.Logger
}

// NewLoader returns a Loader. store may be nil, in which case s3:// sources
// fail.
func NewLoader(store ObjectGetter, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{store: store, log: log.Named("corpus")}
}

// Load reads and decodes a single source.
func (l *Loader) Load(ctx context.Context, source string) (*Document, error) {
	var (
		raw  []byte
		name string
		err  error
	)
	if key, ok := strings.CutPrefix(source, S3Prefix); ok {
		name = path.Base(key)
		raw, err = l.loadObject(ctx, key)
	} else {
		name = filepath.Base(source)
		raw, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", source, err)
	}

	doc, err := NewDocument(name, string(raw))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", source, err)
	}
	l.log.Debug("loaded",
		zap.String("source", source),
		zap.Int("bytes", doc.Bytes),
		zap.Int("runes", doc.Len()),
		zap.String("fingerprint", fmt.Sprintf("%016x", doc.Fingerprint)),
	)
	return doc, nil
}

// LoadAll loads every source in order and stops at the first failure.
func (l *Loader) LoadAll(ctx context.Context, sources []string) ([]*Document, error) {
	docs := make([]*Document, 0, len(sources))
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc, err := l.Load(ctx, src)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (l *Loader) loadObject(ctx context.Context, key string) ([]byte, error) {
	if l.store == nil {
		return nil, fmt.Errorf("no object store configured")
	}
	rc, err := l.store.GetObject(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
