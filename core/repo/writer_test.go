package repo

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/harked/alfresco-bulk-import/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestObjectWriterPut(t *testing.T) {
	content := "hello, repository\n"

	client := new(mocks.Client)
	var uploaded bytes.Buffer
	client.On("PutObject", mock.Anything, "content", "content/n1/1/doc.txt", mock.Anything, int64(len(content)), mock.Anything).
		Run(func(args mock.Arguments) {
			reader := args.Get(3).(io.Reader)
			_, _ = uploaded.ReadFrom(reader)
		}).
		Return(minio.UploadInfo{Size: int64(len(content))}, nil)

	w := NewObjectWriter(client, "content", "content/n1/1/doc.txt")
	w.GuessMimetype("doc.txt")
	require.NoError(t, w.Put(context.Background(), strings.NewReader(content), int64(len(content))))
	w.GuessEncoding()

	// The sniffed header must be replayed into the upload.
	assert.Equal(t, content, uploaded.String())
	assert.Contains(t, w.Mimetype(), "text/plain")
	assert.Equal(t, "utf-8", w.Encoding())
	client.AssertExpectations(t)
}

func TestObjectWriterGuessesFromContentWhenExtensionUnknown(t *testing.T) {
	content := "plain text without extension"

	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "content", "k", mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	w := NewObjectWriter(client, "content", "k")
	w.GuessMimetype("nameless.zzz-unknown")
	require.NoError(t, w.Put(context.Background(), strings.NewReader(content), int64(len(content))))

	assert.Contains(t, w.Mimetype(), "text/plain")
}

func TestObjectWriterPutError(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "content", "k", mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, assert.AnError)

	w := NewObjectWriter(client, "content", "k")
	err := w.Put(context.Background(), strings.NewReader("x"), 1)
	assert.ErrorIs(t, err, assert.AnError)
}
