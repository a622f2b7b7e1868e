package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sudepo/sudepo/internal/domain"
	"github.com/sudepo/sudepo/internal/platform/db"
)

// Postgres persists each collection as a jsonb document table keyed by the
// entity id. The document is the wire shape; the id column only exists for
// upsert conflict targets and lookups.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres wraps a pgx pool as a store backend.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Migrate creates the document tables when missing.
func (p *Postgres) Migrate(ctx context.Context) error {
	for _, collection := range Collections() {
		table, err := tableFor(collection)
		if err != nil {
			return err
		}
		ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (id TEXT PRIMARY KEY, doc JSONB NOT NULL)", table)
		if _, err := p.pool.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("store: migrate %s: %w", collection, err)
		}
	}
	return nil
}

// ReadAll loads every collection inside one RepeatableRead transaction so
// the boot snapshot is internally consistent.
func (p *Postgres) ReadAll(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := db.WithTx(ctx, p.pool, func(tx pgx.Tx) error {
		if err := readCollection(ctx, tx, CollectionOrders, &snap.Orders); err != nil {
			return err
		}
		if err := readCollection(ctx, tx, CollectionCustomers, &snap.Customers); err != nil {
			return err
		}
		if err := readCollection(ctx, tx, CollectionCouriers, &snap.Couriers); err != nil {
			return err
		}
		if err := readCollection(ctx, tx, CollectionInventory, &snap.Inventory); err != nil {
			return err
		}
		return readCollection(ctx, tx, CollectionCategories, &snap.Categories)
	})
	if err != nil {
		return Snapshot{}, err
	}

	// Display convention: order list is newest-first.
	sort.SliceStable(snap.Orders, func(i, j int) bool {
		return snap.Orders[i].CreatedAt.After(snap.Orders[j].CreatedAt)
	})
	return snap, nil
}

// Upsert inserts or replaces a document.
func (p *Postgres) Upsert(ctx context.Context, collection, id string, row any) error {
	table, err := tableFor(collection)
	if err != nil {
		return err
	}
	doc, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("store: marshal %s row: %w", collection, err)
	}
	query := fmt.Sprintf(
		"INSERT INTO %s (id, doc) VALUES ($1, $2) ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc",
		table,
	)
	if _, err := p.pool.Exec(ctx, query, id, doc); err != nil {
		return fmt.Errorf("store: upsert %s/%s: %w", collection, id, err)
	}
	return nil
}

// UpdateByID replaces an existing document. Updating an unknown id is a
// no-op, matching the core's not-found posture.
func (p *Postgres) UpdateByID(ctx context.Context, collection, id string, row any) error {
	table, err := tableFor(collection)
	if err != nil {
		return err
	}
	doc, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("store: marshal %s row: %w", collection, err)
	}
	query := fmt.Sprintf("UPDATE %s SET doc = $2 WHERE id = $1", table)
	if _, err := p.pool.Exec(ctx, query, id, doc); err != nil {
		return fmt.Errorf("store: update %s/%s: %w", collection, id, err)
	}
	return nil
}

// DeleteByID removes a document.
func (p *Postgres) DeleteByID(ctx context.Context, collection, id string) error {
	table, err := tableFor(collection)
	if err != nil {
		return err
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", table)
	if _, err := p.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("store: delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func readCollection[T domain.Order | domain.Customer | domain.Courier | domain.InventoryItem | domain.Category](
	ctx context.Context, tx pgx.Tx, collection string, out *[]T,
) error {
	table, err := tableFor(collection)
	if err != nil {
		return err
	}
	rows, err := tx.Query(ctx, fmt.Sprintf("SELECT doc FROM %s", table))
	if err != nil {
		return fmt.Errorf("store: read %s: %w", collection, err)
	}
	defer rows.Close()

	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return fmt.Errorf("store: scan %s: %w", collection, err)
		}
		var entity T
		if err := json.Unmarshal(raw, &entity); err != nil {
			return fmt.Errorf("store: decode %s: %w", collection, err)
		}
		*out = append(*out, entity)
	}
	return rows.Err()
}

// tableFor whitelists collection names; table names are interpolated into
// SQL and must never come from request input.
func tableFor(collection string) (string, error) {
	switch collection {
	case CollectionOrders, CollectionCustomers, CollectionCouriers, CollectionInventory, CollectionCategories:
		return collection, nil
	default:
		return "", fmt.Errorf("store: unknown collection %q", collection)
	}
}
