// Package model defines the canonical, engine-independent entities produced
// by the metadata providers. Every entity is constructed fresh per call and
// owned by the caller; nothing in this package is cached or mutated after
// return.
package model

import "github.com/schemaforge/schemaforge/internal/typemap"

// Database is a catalog visible to the connection's credentials.
type Database struct {
	Name string `json:"name" yaml:"name"`
}

// Schema is a namespace within a database. Engines without sub-namespacing
// (MySQL, SQLite) report their databases here as well.
type Schema struct {
	Name string `json:"name" yaml:"name"`
}

// Table describes a single table. Comment falls back to the table name when
// the engine has no description for it.
type Table struct {
	Schema  string `json:"schema" yaml:"schema"`
	Name    string `json:"name" yaml:"name"`
	Comment string `json:"comment" yaml:"comment"`
}

// Column describes a single column, fully annotated by the type mapper.
// TableName ties the column to the Table batch returned by the same call;
// it is not stable across calls.
type Column struct {
	Database  string              `json:"database" yaml:"database"`
	Schema    string              `json:"schema" yaml:"schema"`
	TableName string              `json:"tableName" yaml:"tableName"`
	Name      string              `json:"name" yaml:"name"`
	Type      *typemap.ColumnType `json:"type,omitempty" yaml:"type,omitempty"`
	Length    *int64              `json:"length,omitempty" yaml:"length,omitempty"`
	Scale     *int64              `json:"scale,omitempty" yaml:"scale,omitempty"`
	Default   *string             `json:"default,omitempty" yaml:"default,omitempty"`
	// EnumValues holds the literal list for enum/set columns, in declared order.
	EnumValues []string `json:"enumValues,omitempty" yaml:"enumValues,omitempty"`
	Comment    string   `json:"comment" yaml:"comment"`

	IsNull       bool `json:"isNull" yaml:"isNull"`
	IsAutoIncr   bool `json:"isAutoIncr" yaml:"isAutoIncr"`
	IsUnique     bool `json:"isUnique" yaml:"isUnique"`
	IsPrimaryKey bool `json:"isPrimaryKey" yaml:"isPrimaryKey"`
	IsUnsigned   bool `json:"isUnsigned" yaml:"isUnsigned"`

	// TargetType is the type name the canonical type projects to in the
	// generator's output language.
	TargetType string `json:"targetType" yaml:"targetType"`
}

// Index is one raw index row. A composite index appears as multiple rows
// sharing KeyName; callers group by KeyName and order by SeqInIndex to
// reconstruct the logical index.
type Index struct {
	TableName string `json:"tableName" yaml:"tableName"`
	// NonUnique is 0 when the index rejects duplicates, 1 when it allows them.
	NonUnique  int    `json:"nonUnique" yaml:"nonUnique"`
	KeyName    string `json:"keyName" yaml:"keyName"`
	SeqInIndex int    `json:"seqInIndex" yaml:"seqInIndex"` // 1-based position within the index
	ColumnName string `json:"columnName" yaml:"columnName"`
	// SubPart is the indexed prefix length for partial column indexes.
	SubPart      *int64 `json:"subPart,omitempty" yaml:"subPart,omitempty"`
	IndexType    string `json:"indexType" yaml:"indexType"` // BTREE, HASH, FULLTEXT, ...
	IndexComment string `json:"indexComment" yaml:"indexComment"`
}
