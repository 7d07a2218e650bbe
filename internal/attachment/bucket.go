package attachment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Bucket is the object storage used for transaction files.
type Bucket interface {
	Upload(ctx context.Context, path, contentType string, r io.Reader) error
	Remove(ctx context.Context, paths ...string) error
	List(ctx context.Context, prefix string) ([]string, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

var ErrObjectExists = errors.New("object already exists")

// FSBucket keeps objects as files below a root directory.
type FSBucket struct {
	root string
}

func NewFSBucket(root string) (*FSBucket, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("can not create storage directory %s: %w", root, err)
	}
	return &FSBucket{root: root}, nil
}

func (b *FSBucket) resolve(path string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(path))
	if clean == "." || filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid object path '%s'", path)
	}
	return filepath.Join(b.root, clean), nil
}

func (b *FSBucket) Upload(_ context.Context, path, _ string, r io.Reader) error {
	full, err := b.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return fmt.Errorf("create object directory: %w", err)
	}

	f, err := os.OpenFile(full, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("'%s': %w", path, ErrObjectExists)
		}
		return fmt.Errorf("create object: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(full)
		return fmt.Errorf("write object: %w", err)
	}
	return f.Close()
}

func (b *FSBucket) Remove(_ context.Context, paths ...string) error {
	for _, p := range paths {
		full, err := b.resolve(p)
		if err != nil {
			return err
		}
		if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove object '%s': %w", p, err)
		}
	}
	return nil
}

func (b *FSBucket) List(_ context.Context, prefix string) ([]string, error) {
	dir, err := b.resolve(prefix)
	if err != nil {
		return nil, err
	}

	var out []string
	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(b.root, p)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list objects: %w", err)
	}
	sort.Strings(out)
	return out, nil
}

func (b *FSBucket) Open(_ context.Context, path string) (io.ReadCloser, error) {
	full, err := b.resolve(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		return nil, fmt.Errorf("open object '%s': %w", path, err)
	}
	return f, nil
}

// GCSBucket stores objects in Google Cloud Storage. Credentials come from
// credentialsFile when set, Application Default Credentials otherwise.
type GCSBucket struct {
	client *storage.Client
	bucket *storage.BucketHandle
}

func NewGCSBucket(ctx context.Context, bucketName, credentialsFile string) (*GCSBucket, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &GCSBucket{client: client, bucket: client.Bucket(bucketName)}, nil
}

func (b *GCSBucket) Upload(ctx context.Context, path, contentType string, r io.Reader) error {
	// x-upsert: false
	w := b.bucket.Object(path).If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return fmt.Errorf("copy file to GCS writer: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize upload: %w", err)
	}
	return nil
}

func (b *GCSBucket) Remove(ctx context.Context, paths ...string) error {
	for _, p := range paths {
		err := b.bucket.Object(p).Delete(ctx)
		if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
			return fmt.Errorf("delete object '%s': %w", p, err)
		}
	}
	return nil
}

func (b *GCSBucket) List(ctx context.Context, prefix string) ([]string, error) {
	it := b.bucket.Objects(ctx, &storage.Query{Prefix: prefix})

	var out []string
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}
		out = append(out, attrs.Name)
	}
	return out, nil
}

func (b *GCSBucket) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	r, err := b.bucket.Object(path).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("open object '%s': %w", path, err)
	}
	return r, nil
}

func (b *GCSBucket) Close() error {
	return b.client.Close()
}
