package repo

import "time"

// Node is one row of the repository's node index.
type Node struct {
	ID        string  `gorm:"primaryKey;size:36"`
	ParentID  *string `gorm:"size:36;index:idx_nodes_parent_name,priority:1"`
	Name      string  `gorm:"size:255;index:idx_nodes_parent_name,priority:2"`
	IsFolder  bool
	Type      string `gorm:"size:128"`
	Namespace string `gorm:"size:128"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NodeVersion is one row of a node's version history.
type NodeVersion struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	NodeID      string `gorm:"size:36;index"`
	Label       string `gorm:"size:32"`
	ContentKey  string `gorm:"size:512"`
	ContentType string `gorm:"size:128"`
	Encoding    string `gorm:"size:64"`
	SizeBytes   int64
	// Properties and Aspects are stored JSON-encoded; the node index
	// never queries inside them.
	Properties string `gorm:"type:text"`
	Aspects    string `gorm:"type:text"`
	CreatedAt  time.Time
}
