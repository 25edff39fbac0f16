package repo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"

	"github.com/harked/alfresco-bulk-import/core/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/minio/minio-go/v7"
)

// sniffLen is how much of the content is buffered for MIME detection.
const sniffLen = 3072

// ObjectWriter writes one version's content into the object store.
// It implements ContentWriter: a filename-based MIME guess can be
// advised before the write, content sniffing refines it during the
// write, and the text encoding is guessed afterwards. All guessing is
// advisory; only the object upload itself can fail the write.
type ObjectWriter struct {
	client storage.Client
	bucket string
	key    string

	contentType string
	detected    *mimetype.MIME
	encoding    string
}

// NewObjectWriter creates a writer targeting the given object key.
func NewObjectWriter(client storage.Client, bucket, key string) *ObjectWriter {
	return &ObjectWriter{client: client, bucket: bucket, key: key}
}

// Key returns the object key this writer targets.
func (w *ObjectWriter) Key() string {
	return w.key
}

// GuessMimetype advises a content type from the filename's extension.
// Content sniffing during Put takes over if the extension is unknown.
func (w *ObjectWriter) GuessMimetype(filename string) {
	if ct := mime.TypeByExtension(filepath.Ext(filename)); ct != "" {
		w.contentType = ct
	}
}

// Put streams the content into the object store. The leading bytes
// are sniffed for MIME detection before the upload starts.
func (w *ObjectWriter) Put(ctx context.Context, r io.Reader, size int64) error {
	header := make([]byte, sniffLen)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("failed to read content for %s: %w", w.key, err)
	}
	header = header[:n]

	w.detected = mimetype.Detect(header)
	if w.contentType == "" {
		w.contentType = w.detected.String()
	}

	body := io.MultiReader(bytes.NewReader(header), r)
	if _, err := w.client.PutObject(ctx, w.bucket, w.key, body, size, minio.PutObjectOptions{
		ContentType: w.contentType,
	}); err != nil {
		return fmt.Errorf("failed to store content at %s: %w", w.key, err)
	}
	return nil
}

// GuessEncoding derives a text encoding from the sniffed content.
// Unknown or binary content leaves the encoding empty.
func (w *ObjectWriter) GuessEncoding() {
	if w.detected == nil {
		return
	}
	_, params, err := mime.ParseMediaType(w.detected.String())
	if err != nil {
		return
	}
	w.encoding = params["charset"]
}

// Mimetype reports the effective content type after the write.
func (w *ObjectWriter) Mimetype() string {
	return w.contentType
}

// Encoding reports the guessed text encoding, empty if unknown.
func (w *ObjectWriter) Encoding() string {
	return w.encoding
}
