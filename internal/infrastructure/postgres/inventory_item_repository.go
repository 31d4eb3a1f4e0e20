package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/facturacion-india-api/internal/domain"
	"github.com/jhoicas/facturacion-india-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-india-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

const itemColumns = `id, user_id, name, hsn, category, rate, stock, unit, gst_rate, created_at, updated_at`

// InventoryItemRepo catálogo de artículos sobre PostgreSQL.
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

// Create persiste un artículo. Nombre repetido (índice único lower(name)) = ErrDuplicate.
func (r *InventoryItemRepo) Create(ctx context.Context, it *entity.InventoryItem) error {
	_, err := r.q.Exec(ctx, `INSERT INTO inventory_items (`+itemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		it.ID, it.UserID, it.Name, it.HSN, nullIfEmpty(it.Category), it.Rate, it.Stock, it.Unit,
		it.GSTRate, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo del usuario.
func (r *InventoryItemRepo) GetByID(ctx context.Context, userID, id string) (*entity.InventoryItem, error) {
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE user_id = $1 AND id = $2`, userID, id)
}

// GetByName busca por nombre sin distinguir mayúsculas.
func (r *InventoryItemRepo) GetByName(ctx context.Context, userID, name string) (*entity.InventoryItem, error) {
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE user_id = $1 AND lower(name) = lower($2)`, userID, name)
}

func (r *InventoryItemRepo) getOne(ctx context.Context, query string, args ...any) (*entity.InventoryItem, error) {
	it, err := scanItem(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return it, nil
}

// Update actualiza un artículo.
func (r *InventoryItemRepo) Update(ctx context.Context, it *entity.InventoryItem) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE inventory_items
		SET name = $3, hsn = $4, category = $5, rate = $6, stock = $7, unit = $8, gst_rate = $9, updated_at = $10
		WHERE user_id = $1 AND id = $2`,
		it.UserID, it.ID, it.Name, it.HSN, nullIfEmpty(it.Category), it.Rate, it.Stock, it.Unit,
		it.GSTRate, it.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update inventory item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List artículos por nombre; search filtra por nombre o HSN.
func (r *InventoryItemRepo) List(ctx context.Context, userID, search string, limit, offset int) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx, `SELECT `+itemColumns+` FROM inventory_items
		WHERE user_id = $1 AND ($2::text = '' OR name ILIKE $3 OR hsn ILIKE $3)
		ORDER BY name
		LIMIT $4 OFFSET $5`, userID, search, likePattern(search), limitArg(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

func (r *InventoryItemRepo) Count(ctx context.Context, userID, search string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM inventory_items
		WHERE user_id = $1 AND ($2::text = '' OR name ILIKE $3 OR hsn ILIKE $3)`,
		userID, search, likePattern(search)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count inventory items: %w", err)
	}
	return n, nil
}

// Delete borra el artículo; las líneas que lo referencian quedan con inventory_item_id NULL.
func (r *InventoryItemRepo) Delete(ctx context.Context, userID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM inventory_items WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	var category *string
	if err := row.Scan(
		&it.ID, &it.UserID, &it.Name, &it.HSN, &category, &it.Rate, &it.Stock, &it.Unit,
		&it.GSTRate, &it.CreatedAt, &it.UpdatedAt,
	); err != nil {
		return nil, err
	}
	it.Category = derefStr(category)
	return &it, nil
}
