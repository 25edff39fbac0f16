package bulkimport

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/harked/alfresco-bulk-import/core/item"
	"github.com/harked/alfresco-bulk-import/core/metadata"
	"github.com/harked/alfresco-bulk-import/core/repo"
	"github.com/harked/alfresco-bulk-import/core/scanner"
	"github.com/harked/alfresco-bulk-import/core/storage"
)

const (
	defaultFolderType   = "cm:folder"
	defaultDocumentType = "cm:content"
	headVersionDir      = "head"
)

// Service drives one bulk import run: it scans the source directory,
// folds each batch into an import item and replays the item's version
// history into the node index and content store.
type Service struct {
	store         repo.Store
	client        storage.Client
	bucket        string
	rootFolder    string
	contentPrefix string
	sourceDir     string
	loader        metadata.Loader
	logger        *zap.Logger
	status        *Status

	// newWriter builds the content writer for an object key. Tests
	// substitute it to avoid a live object store.
	newWriter func(key string) repo.ContentWriter
}

// NewService wires a bulk import service.
func NewService(store repo.Store, client storage.Client, bucket string, repoCfg repo.Config, sourceDir string, logger *zap.Logger) *Service {
	s := &Service{
		store:         store,
		client:        client,
		bucket:        bucket,
		rootFolder:    repoCfg.RootFolder,
		contentPrefix: repoCfg.ContentPrefix,
		sourceDir:     sourceDir,
		loader:        metadata.NewJSONLoader(),
		logger:        logger,
		status:        NewStatus(),
	}
	s.newWriter = func(key string) repo.ContentWriter {
		return repo.NewObjectWriter(client, bucket, key)
	}
	return s
}

// Status exposes the job's control surface.
func (s *Service) Status() *Status {
	return s.status
}

// Run executes one import synchronously. It fails with
// ErrImportInProgress when a run is already active.
func (s *Service) Run(ctx context.Context) (Result, error) {
	if err := s.status.begin(); err != nil {
		return Result{}, err
	}
	result, err := s.run(ctx)
	s.status.finish(result, err)
	return result, err
}

// Start launches an import in the background. It fails with
// ErrImportInProgress when a run is already active.
func (s *Service) Start(ctx context.Context) error {
	if err := s.status.begin(); err != nil {
		return err
	}
	go func() {
		result, err := s.run(ctx)
		s.status.finish(result, err)
		if err != nil {
			s.logger.Error("bulk import failed", zap.Error(err))
			return
		}
		s.logger.Info("bulk import finished",
			zap.Int("items", result.Items),
			zap.Int("versions", result.Versions),
			zap.Int64("bytes_written", result.BytesWritten),
			zap.Bool("stopped", result.Stopped))
	}()
	return nil
}

func (s *Service) run(ctx context.Context) (Result, error) {
	var result Result

	if err := s.store.VerifySchema(ctx); err != nil {
		return result, fmt.Errorf("schema verification failed: %w", err)
	}
	root, err := s.store.EnsureRoot(ctx, s.rootFolder)
	if err != nil {
		return result, fmt.Errorf("failed to ensure import root %q: %w", s.rootFolder, err)
	}

	batches, err := scanner.Scan(s.sourceDir)
	if err != nil {
		return result, err
	}
	s.logger.Info("starting bulk import",
		zap.String("source", s.sourceDir),
		zap.String("root", s.rootFolder),
		zap.Int("batches", len(batches)))

	resolver := repo.NewCachedResolver(s.store)
	for _, batch := range batches {
		if s.status.StopRequested() {
			s.logger.Info("stop requested, ending import early",
				zap.Int("items", result.Items))
			result.Stopped = true
			return result, nil
		}

		it, err := item.New(batch.Name, batch.RelativePath, batch.Files, s.loader)
		if err != nil {
			return result, err
		}
		if err := s.importItem(ctx, resolver, root, it, &result); err != nil {
			return result, fmt.Errorf("failed to import %q: %w", it.RelativePath(), err)
		}
	}
	return result, nil
}

// importItem replays one item's version history into the repository.
func (s *Service) importItem(ctx context.Context, resolver repo.Resolver, root repo.NodeRef, it *item.Item, result *Result) error {
	parent, err := it.ResolveParent(ctx, resolver, root)
	if err != nil {
		var outOfOrder *item.OutOfOrderBatchError
		if errors.As(err, &outOfOrder) {
			s.logger.Error("batch arrived before its parent folder",
				zap.String("path", outOfOrder.Path))
		}
		return err
	}
	if parent == nil {
		parent = &root
	}

	namespace, err := it.Namespace()
	if err != nil {
		return err
	}
	nodeType, err := s.itemType(it)
	if err != nil {
		return err
	}
	if assoc, err := it.ParentAssoc(); err != nil {
		return err
	} else if assoc != "" {
		s.logger.Debug("item declares a parent association",
			zap.String("path", it.RelativePath()),
			zap.String("parent_assoc", assoc))
	}

	var node repo.NodeRef
	if it.IsDirectory() {
		if nodeType == "" {
			nodeType = defaultFolderType
		}
		node, err = s.store.EnsureFolder(ctx, *parent, it.Name(), nodeType, namespace)
		if err != nil {
			return err
		}
		result.Folders++
	} else {
		if nodeType == "" {
			nodeType = defaultDocumentType
		}
		node, err = s.store.EnsureDocument(ctx, *parent, it.Name(), nodeType, namespace)
		if err != nil {
			return err
		}
	}

	for _, v := range it.Versions() {
		record := repo.VersionRecord{Label: v.Label()}

		if v.HasContent() {
			key := s.objectKey(node, v.Label(), v.ContentSource())
			writer := s.newWriter(key)
			if err := v.PutContent(ctx, writer); err != nil {
				return err
			}
			record.ContentKey = key
			record.ContentType = writer.Mimetype()
			record.Encoding = writer.Encoding()
			record.SizeBytes = v.SizeInBytes()
			result.BytesWritten += v.SizeInBytes()
		}

		if v.HasMetadata() {
			meta, err := v.RawMetadata()
			if err != nil {
				return err
			}
			record.Properties = meta.Properties
			record.Aspects = meta.Aspects
			result.Properties += len(meta.Properties)
		}

		if err := s.store.AddVersion(ctx, node, record); err != nil {
			return err
		}
		result.Versions++
	}

	result.Items++
	s.logger.Info("imported item",
		zap.String("path", it.RelativePath()),
		zap.Bool("directory", it.IsDirectory()),
		zap.Int("versions", it.NumberOfVersions()),
		zap.Int64("size_bytes", it.SizeInBytes()))
	return nil
}

// itemType aggregates the content type across versions, newest first.
func (s *Service) itemType(it *item.Item) (string, error) {
	versions := it.Versions()
	for i := len(versions) - 1; i >= 0; i-- {
		if !versions[i].HasMetadata() {
			continue
		}
		nodeType, err := versions[i].Type()
		if err != nil {
			return "", err
		}
		if nodeType != "" {
			return nodeType, nil
		}
	}
	return "", nil
}

// objectKey derives the content store key for one version's content.
func (s *Service) objectKey(node repo.NodeRef, label, contentSource string) string {
	versionDir := headVersionDir
	if label != "" {
		versionDir = "v" + label
	}
	return path.Join(s.contentPrefix, node.String(), versionDir, filepath.Base(contentSource))
}
