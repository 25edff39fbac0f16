package mocks

import (
	"context"
	"io"

	"github.com/harked/alfresco-bulk-import/core/repo"

	"github.com/stretchr/testify/mock"
)

// Resolver is a mock implementation of repo.Resolver
type Resolver struct {
	mock.Mock
}

func (m *Resolver) ResolvePath(ctx context.Context, root repo.NodeRef, elements []string, createMissing bool) (*repo.NodeRef, error) {
	args := m.Called(ctx, root, elements, createMissing)
	if ref, ok := args.Get(0).(*repo.NodeRef); ok {
		return ref, args.Error(1)
	}
	return nil, args.Error(1)
}

// Store is a mock implementation of repo.Store
type Store struct {
	Resolver
}

func (m *Store) VerifySchema(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *Store) EnsureRoot(ctx context.Context, name string) (repo.NodeRef, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(repo.NodeRef), args.Error(1)
}

func (m *Store) EnsureFolder(ctx context.Context, parent repo.NodeRef, name, nodeType, namespace string) (repo.NodeRef, error) {
	args := m.Called(ctx, parent, name, nodeType, namespace)
	return args.Get(0).(repo.NodeRef), args.Error(1)
}

func (m *Store) EnsureDocument(ctx context.Context, parent repo.NodeRef, name, nodeType, namespace string) (repo.NodeRef, error) {
	args := m.Called(ctx, parent, name, nodeType, namespace)
	return args.Get(0).(repo.NodeRef), args.Error(1)
}

func (m *Store) AddVersion(ctx context.Context, node repo.NodeRef, record repo.VersionRecord) error {
	args := m.Called(ctx, node, record)
	return args.Error(0)
}

// ContentWriter is a mock implementation of repo.ContentWriter that
// captures written content for assertions.
type ContentWriter struct {
	mock.Mock

	// Written accumulates everything streamed through Put.
	Written []byte
}

func (m *ContentWriter) GuessMimetype(filename string) {
	m.Called(filename)
}

func (m *ContentWriter) Put(ctx context.Context, r io.Reader, size int64) error {
	data, readErr := io.ReadAll(r)
	if readErr == nil {
		m.Written = append(m.Written, data...)
	}
	args := m.Called(ctx, r, size)
	return args.Error(0)
}

func (m *ContentWriter) GuessEncoding() {
	m.Called()
}

func (m *ContentWriter) Mimetype() string {
	args := m.Called()
	return args.String(0)
}

func (m *ContentWriter) Encoding() string {
	args := m.Called()
	return args.String(0)
}
