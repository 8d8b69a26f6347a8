package objstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var ErrInvalidKey = errors.New("invalid object key")

type ObjectReader interface {
	Open(key string) (io.ReadCloser, error)
}

type ObjectWriter interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
}

type LocalFSObjectReader struct {
	basePath string
}

func NewLocalFSObjectReader(basePath string) *LocalFSObjectReader {
	return &LocalFSObjectReader{basePath: basePath}
}

func (r *LocalFSObjectReader) Open(key string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(r.basePath, filepath.FromSlash(path.Clean("/"+key))))
}

// LocalFSObjectWriter stores objects as files below basePath.
type LocalFSObjectWriter struct {
	basePath string
}

func NewLocalFSObjectWriter(basePath string) *LocalFSObjectWriter {
	return &LocalFSObjectWriter{basePath: basePath}
}

func (w *LocalFSObjectWriter) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	dst := filepath.Join(w.basePath, filepath.FromSlash(path.Clean("/"+key)))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return err
	}
	return f.Close()
}

// ContentType guesses the content type of key from its extension.
func ContentType(key string) string {
	switch ext := path.Ext(key); ext {
	case ".vtt":
		return "text/vtt"
	case ".json":
		return "application/json"
	default:
		if t := mime.TypeByExtension(ext); t != "" {
			return t
		}
	}
	return "application/octet-stream"
}

// Upload is a local file and the object key it is stored under.
type Upload struct {
	Key  string
	Path string
}

// Publish uploads files to w with their keys joined under prefix. A key
// that would escape prefix is rejected before anything is uploaded.
func Publish(ctx context.Context, w ObjectWriter, prefix string, uploads []Upload) ([]string, error) {
	keys := make([]string, 0, len(uploads))
	for _, u := range uploads {
		rel := path.Clean(u.Key)
		if path.IsAbs(rel) || rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
			return nil, fmt.Errorf("%w: %q", ErrInvalidKey, u.Key)
		}
		keys = append(keys, path.Join(prefix, rel))
	}

	for i, u := range uploads {
		if err := putFile(ctx, w, keys[i], u.Path); err != nil {
			return keys[:i], fmt.Errorf("error uploading %s: %w", keys[i], err)
		}
	}
	return keys, nil
}

func putFile(ctx context.Context, w ObjectWriter, key string, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	return w.Put(ctx, key, f, info.Size(), ContentType(key))
}
