package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Shivon404/financy-backend/internal/core/domain"
	"github.com/Shivon404/financy-backend/internal/core/ports"
)

type CategoryRepository struct {
	gw *Gateway
}

func NewCategoryRepository(gw *Gateway) *CategoryRepository {
	return &CategoryRepository{gw: gw}
}

var _ ports.CategoryRepository = (*CategoryRepository)(nil)

func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	err := r.gw.conn(ctx, func(q querier) error {
		rows, err := q.QueryContext(ctx, `SELECT id, name, icon FROM categories ORDER BY name`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var c domain.Category
			if err := rows.Scan(&c.ID, &c.Name, &c.Icon); err != nil {
				return err
			}
			categories = append(categories, c)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) ListWithUsage(ctx context.Context) ([]domain.CategoryUsage, error) {
	var categories []domain.CategoryUsage
	err := r.gw.conn(ctx, func(q querier) error {
		rows, err := q.QueryContext(ctx,
			`SELECT c.id, c.name, c.icon, COUNT(e.id)
			 FROM categories c
			 LEFT JOIN expenses e ON e.category_id = c.id
			 GROUP BY c.id, c.name, c.icon
			 ORDER BY c.name`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var c domain.CategoryUsage
			if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.UsageCount); err != nil {
				return err
			}
			categories = append(categories, c)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list categories with usage: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	var c domain.Category
	err := r.gw.conn(ctx, func(q querier) error {
		return q.QueryRowContext(ctx, `SELECT id, name, icon FROM categories WHERE id = ?`, id).Scan(&c.ID, &c.Name, &c.Icon)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	created := *c
	err := r.gw.conn(ctx, func(q querier) error {
		res, err := q.ExecContext(ctx, `INSERT INTO categories (name, icon) VALUES (?, ?)`, c.Name, c.Icon)
		if err != nil {
			return err
		}
		created.ID, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	return &created, nil
}

func (r *CategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	var res sql.Result
	err := r.gw.conn(ctx, func(q querier) error {
		var err error
		res, err = q.ExecContext(ctx, `UPDATE categories SET name = ?, icon = ? WHERE id = ?`, c.Name, c.Icon, c.ID)
		return err
	})
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return requireAffected(res, domain.ErrCategoryNotFound)
}

func (r *CategoryRepository) CountUsage(ctx context.Context, id int64) (int64, error) {
	var n int64
	err := r.gw.conn(ctx, func(q querier) error {
		return q.QueryRowContext(ctx, `SELECT COUNT(*) FROM expenses WHERE category_id = ?`, id).Scan(&n)
	})
	if err != nil {
		return 0, fmt.Errorf("count category usage: %w", err)
	}
	return n, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	var res sql.Result
	err := r.gw.conn(ctx, func(q querier) error {
		var err error
		res, err = q.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
		return err
	})
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return requireAffected(res, domain.ErrCategoryNotFound)
}
