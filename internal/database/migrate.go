package database

import (
	"context"
	"fmt"
	"log"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
	"github.com/jmoiron/sqlx"
)

// KVEntriesTableName holds the namespaced collection snapshots.
const KVEntriesTableName = "kv_entries"

var (
	// KVEntriesColumns holds the columns for the "kv_entries" table.
	KVEntriesColumns = []*schema.Column{
		{Name: "key", Type: field.TypeString, Size: 255},
		{Name: "value", Type: field.TypeBytes},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// KVEntriesTable holds the schema information for the "kv_entries" table.
	KVEntriesTable = &schema.Table{
		Name:       KVEntriesTableName,
		Columns:    KVEntriesColumns,
		PrimaryKey: []*schema.Column{KVEntriesColumns[0]},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		KVEntriesTable,
	}
)

// Migrate creates or updates the tables used by the SQL key-value backend
func Migrate(ctx context.Context, db *sqlx.DB) error {
	drv := entsql.OpenDB(db.DriverName(), db.DB)

	migrate, err := schema.NewMigrate(drv, schema.WithForeignKeys(false))
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := migrate.Create(ctx, Tables...); err != nil {
		return fmt.Errorf("run migration: %w", err)
	}

	log.Println("✅ Schema migration completed")
	return nil
}
