package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harked/alfresco-bulk-import/core/database"

	"gorm.io/gorm"
)

// requiredNodeColumns are the columns VerifySchema insists on before
// an import run writes anything.
var requiredNodeColumns = []string{"id", "parent_id", "name", "is_folder"}

// Repository is the gorm-backed node index of the target repository.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a repository over the given database handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates the node tables. Used by sqlite runs and tests;
// production schemas are managed externally and checked by
// VerifySchema instead.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&Node{}, &NodeVersion{})
}

// VerifySchema checks the nodes table against the required columns so
// schema drift fails before the first item, not mid-batch.
func (r *Repository) VerifySchema(ctx context.Context) error {
	columns, err := database.GetTableColumns(r.db.WithContext(ctx), "nodes")
	if err != nil {
		return fmt.Errorf("repository schema check failed: %w", err)
	}
	present := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		present[col.Field] = struct{}{}
	}
	for _, want := range requiredNodeColumns {
		if _, ok := present[want]; !ok {
			return fmt.Errorf("repository schema check failed: nodes table missing column %q", want)
		}
	}
	return nil
}

// EnsureRoot finds or creates the top-level import folder.
func (r *Repository) EnsureRoot(ctx context.Context, name string) (NodeRef, error) {
	var node Node
	err := r.db.WithContext(ctx).
		Where("parent_id IS NULL AND name = ?", name).
		First(&node).Error
	if err == nil {
		return ParseNodeRef(node.ID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return NodeRef{}, fmt.Errorf("failed to look up root folder %q: %w", name, err)
	}

	ref := NewNodeRef()
	node = Node{
		ID:       ref.String(),
		Name:     name,
		IsFolder: true,
	}
	if err := r.db.WithContext(ctx).Create(&node).Error; err != nil {
		return NodeRef{}, fmt.Errorf("failed to create root folder %q: %w", name, err)
	}
	return ref, nil
}

// ResolvePath walks the path elements below root. A partial or failed
// walk returns (nil, nil) unless createMissing is set, in which case
// missing folders are created along the way.
func (r *Repository) ResolvePath(ctx context.Context, root NodeRef, elements []string, createMissing bool) (*NodeRef, error) {
	current := root
	for _, element := range elements {
		child, err := r.findChild(ctx, current, element)
		if err != nil {
			return nil, err
		}
		if child == nil {
			if !createMissing {
				return nil, nil
			}
			created, err := r.EnsureFolder(ctx, current, element, "", "")
			if err != nil {
				return nil, err
			}
			child = &created
		}
		current = *child
	}
	return &current, nil
}

// EnsureFolder finds or creates a folder child of parent.
func (r *Repository) EnsureFolder(ctx context.Context, parent NodeRef, name, nodeType, namespace string) (NodeRef, error) {
	return r.ensureChild(ctx, parent, name, nodeType, namespace, true)
}

// EnsureDocument finds or creates a document child of parent.
func (r *Repository) EnsureDocument(ctx context.Context, parent NodeRef, name, nodeType, namespace string) (NodeRef, error) {
	return r.ensureChild(ctx, parent, name, nodeType, namespace, false)
}

func (r *Repository) ensureChild(ctx context.Context, parent NodeRef, name, nodeType, namespace string, folder bool) (NodeRef, error) {
	existing, err := r.findChild(ctx, parent, name)
	if err != nil {
		return NodeRef{}, err
	}
	if existing != nil {
		return *existing, nil
	}

	ref := NewNodeRef()
	parentID := parent.String()
	node := Node{
		ID:        ref.String(),
		ParentID:  &parentID,
		Name:      name,
		IsFolder:  folder,
		Type:      nodeType,
		Namespace: namespace,
	}
	if err := r.db.WithContext(ctx).Create(&node).Error; err != nil {
		return NodeRef{}, fmt.Errorf("failed to create node %q under %s: %w", name, parent, err)
	}
	return ref, nil
}

func (r *Repository) findChild(ctx context.Context, parent NodeRef, name string) (*NodeRef, error) {
	var node Node
	err := r.db.WithContext(ctx).
		Where("parent_id = ? AND name = ?", parent.String(), name).
		First(&node).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up child %q of %s: %w", name, parent, err)
	}
	ref, err := ParseNodeRef(node.ID)
	if err != nil {
		return nil, fmt.Errorf("corrupt node id %q: %w", node.ID, err)
	}
	return &ref, nil
}

// AddVersion appends a version row to the node's history.
func (r *Repository) AddVersion(ctx context.Context, node NodeRef, record VersionRecord) error {
	properties, err := json.Marshal(record.Properties)
	if err != nil {
		return fmt.Errorf("failed to encode version properties: %w", err)
	}
	aspects, err := json.Marshal(record.Aspects)
	if err != nil {
		return fmt.Errorf("failed to encode version aspects: %w", err)
	}

	row := NodeVersion{
		NodeID:      node.String(),
		Label:       record.Label,
		ContentKey:  record.ContentKey,
		ContentType: record.ContentType,
		Encoding:    record.Encoding,
		SizeBytes:   record.SizeBytes,
		Properties:  string(properties),
		Aspects:     string(aspects),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to record version %q of node %s: %w", record.Label, node, err)
	}
	return nil
}
