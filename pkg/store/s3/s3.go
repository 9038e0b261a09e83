// Package s3 implements the graph store against an S3 bucket. It mirrors
// archives between batch hosts; paths are object keys.
package s3

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openpathway/pathmerge/internal/storage"
	"github.com/openpathway/pathmerge/internal/util"
	"github.com/openpathway/pathmerge/pkg/bel"
	"github.com/openpathway/pathmerge/pkg/store"

	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
)

const contentType = "application/octet-stream"

// Store persists graph archives as S3 objects.
type Store struct {
	client  *awss3.Client
	retries int
}

// New creates an S3-backed graph store on an existing client. Transient
// request failures are retried up to three times.
func New(client *awss3.Client) *Store {
	return &Store{client: client, retries: 3}
}

// Save encodes the graph and uploads it under the given key.
func (s *Store) Save(ctx context.Context, graph *bel.Graph, path string) error {
	data, err := store.Encode(graph)
	if err != nil {
		return err
	}
	return util.RetryErrWithContext(ctx, s.retries, func(ctx context.Context) error {
		return storage.PutObject(ctx, s.client, path, data, contentType)
	})
}

// Load downloads and decodes the archive under the given key.
func (s *Store) Load(ctx context.Context, path string) (*bel.Graph, error) {
	data, err := util.RetryWithContext(ctx, s.retries, func(ctx context.Context) ([]byte, error) {
		return storage.GetObject(ctx, s.client, path)
	})
	if err != nil {
		if errors.Is(err, storage.ErrNoSuchKey) {
			return nil, fmt.Errorf("%s: %w", path, store.ErrNotFound)
		}
		return nil, err
	}
	return store.Decode(data)
}

// List returns the object keys directly under the given prefix. Keys nested
// more than one level below the prefix are skipped, matching the directory
// semantics of the file store.
func (s *Store) List(ctx context.Context, dir string) ([]string, error) {
	prefix := strings.TrimSuffix(dir, "/") + "/"
	keys, err := util.RetryWithContext(ctx, s.retries, func(ctx context.Context) ([]string, error) {
		return storage.ListKeysWithPrefix(ctx, s.client, prefix)
	})
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, key := range keys {
		rest := strings.TrimPrefix(key, prefix)
		if rest == "" || strings.Contains(rest, "/") {
			continue
		}
		paths = append(paths, key)
	}
	return paths, nil
}
