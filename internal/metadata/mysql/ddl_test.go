package mysql

import (
	"strings"
	"testing"

	"github.com/schemaforge/schemaforge/internal/model"
	"github.com/schemaforge/schemaforge/internal/typemap"
)

func ctPtr(ct typemap.ColumnType) *typemap.ColumnType { return &ct }
func i64(n int64) *int64                              { return &n }
func str(s string) *string                            { return &s }

func TestBuildCreateTable(t *testing.T) {
	cols := []model.Column{
		{Name: "id", Type: ctPtr(typemap.BigInt), IsUnsigned: true, IsAutoIncr: true, IsPrimaryKey: true},
		{Name: "name", Type: ctPtr(typemap.VarChar), Length: i64(255), Default: str("guest"), Comment: "display name"},
		{Name: "status", Type: ctPtr(typemap.Enum), EnumValues: []string{"new", "done"}, IsNull: true},
		{Name: "price", Type: ctPtr(typemap.Decimal), Length: i64(10), Scale: i64(2)},
		{Name: "created_at", Type: ctPtr(typemap.Timestamp), Default: str("CURRENT_TIMESTAMP")},
	}
	idxs := []model.Index{
		{KeyName: "PRIMARY", NonUnique: 0, SeqInIndex: 1, ColumnName: "id"},
		{KeyName: "idx_status_price", NonUnique: 1, SeqInIndex: 1, ColumnName: "status"},
		{KeyName: "idx_status_price", NonUnique: 1, SeqInIndex: 2, ColumnName: "price"},
		{KeyName: "uq_name", NonUnique: 0, SeqInIndex: 1, ColumnName: "name"},
	}

	want := "CREATE TABLE `orders` (\n" +
		"  `id` BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,\n" +
		"  `name` VARCHAR(255) NOT NULL DEFAULT 'guest' COMMENT 'display name',\n" +
		"  `status` ENUM('new','done'),\n" +
		"  `price` DECIMAL(10,2) NOT NULL,\n" +
		"  `created_at` TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,\n" +
		"  PRIMARY KEY (`id`),\n" +
		"  KEY `idx_status_price` (`status`, `price`),\n" +
		"  UNIQUE KEY `uq_name` (`name`)\n" +
		")"

	if got := buildCreateTable("orders", cols, idxs); got != want {
		t.Errorf("buildCreateTable mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestBuildCreateTablePrefixIndex(t *testing.T) {
	cols := []model.Column{
		{Name: "body", Type: ctPtr(typemap.Text), IsNull: true},
	}
	idxs := []model.Index{
		{KeyName: "idx_body", NonUnique: 1, SeqInIndex: 1, ColumnName: "body", SubPart: i64(32)},
	}

	got := buildCreateTable("notes", cols, idxs)
	if !strings.Contains(got, "KEY `idx_body` (`body`(32))") {
		t.Errorf("prefix length missing from index clause:\n%s", got)
	}
}

func TestBuildCreateTableNumericDefaultStaysBare(t *testing.T) {
	cols := []model.Column{
		{Name: "n", Type: ctPtr(typemap.Int), Default: str("0")},
	}

	got := buildCreateTable("t", cols, nil)
	if !strings.Contains(got, "DEFAULT 0") || strings.Contains(got, "DEFAULT '0'") {
		t.Errorf("numeric default should stay bare:\n%s", got)
	}
}

func TestBuildCreateTableEscapesQuotes(t *testing.T) {
	cols := []model.Column{
		{Name: "note", Type: ctPtr(typemap.VarChar), Length: i64(64), Default: str("it's"), IsNull: true},
	}

	got := buildCreateTable("t", cols, nil)
	if !strings.Contains(got, "DEFAULT 'it''s'") {
		t.Errorf("embedded quote not escaped:\n%s", got)
	}
}
