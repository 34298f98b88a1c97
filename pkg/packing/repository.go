package packing

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Load(ctx context.Context, sessionId string) (List, error)
	// Seed stores list unless the session already has one, and returns the stored list.
	Seed(ctx context.Context, sessionId string, list List) (List, error)
	SetChecked(ctx context.Context, sessionId string, item string, checked bool) error
	AddItem(ctx context.Context, sessionId string, category string, item string) error
	RemoveItem(ctx context.Context, sessionId string, category string, item string) error
	AddCategory(ctx context.Context, sessionId string, name string) error
	RemoveCategory(ctx context.Context, sessionId string, name string) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const insertCategory = `INSERT INTO packing_category (session_id, name, position)
	SELECT $1::text, $2::text, COALESCE(MAX(position), 0) + 1 FROM packing_category WHERE session_id = $1
	ON CONFLICT (session_id, name) DO NOTHING`

const insertItem = `INSERT INTO packing_item (session_id, category, name, position, checked)
	SELECT $1::text, $2::text, $3::text, COALESCE(MAX(position), 0) + 1, $4::boolean FROM packing_item WHERE session_id = $1 AND category = $2
	ON CONFLICT (session_id, name) DO NOTHING`

func (r *RepositoryImpl) Load(ctx context.Context, sessionId string) (List, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM packing_list WHERE session_id = $1)`, sessionId).Scan(&exists)
	if err != nil {
		err := fmt.Errorf("could not query packing list: %w", err)
		log.Error(err)
		return List{}, err
	}
	if !exists {
		return List{}, ErrListNotFound
	}

	list := List{Categories: make([]Category, 0), Checked: make(map[string]bool)}
	index := make(map[string]int)

	rows, err := r.db.Query(ctx, `SELECT name FROM packing_category WHERE session_id = $1 ORDER BY position`, sessionId)
	if err != nil {
		err := fmt.Errorf("could not query packing categories: %w", err)
		log.Error(err)
		return List{}, err
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		err := fmt.Errorf("error scanning packing categories: %w", err)
		log.Error(err)
		return List{}, err
	}
	for _, name := range names {
		index[name] = len(list.Categories)
		list.Categories = append(list.Categories, Category{Name: name, Items: make([]string, 0)})
	}

	rows, err = r.db.Query(ctx, `SELECT category, name, checked FROM packing_item WHERE session_id = $1 ORDER BY position`, sessionId)
	if err != nil {
		err := fmt.Errorf("could not query packing items: %w", err)
		log.Error(err)
		return List{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var category, name string
		var checked bool
		if err := rows.Scan(&category, &name, &checked); err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return List{}, err
		}
		i, ok := index[category]
		if !ok {
			continue
		}
		list.Categories[i].Items = append(list.Categories[i].Items, name)
		list.Checked[name] = checked
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return List{}, err
	}
	return list, nil
}

func (r *RepositoryImpl) Seed(ctx context.Context, sessionId string, list List) (List, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return List{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `INSERT INTO packing_list (session_id) VALUES ($1) ON CONFLICT (session_id) DO NOTHING`, sessionId)
	if err != nil {
		return List{}, fmt.Errorf("failed to create packing list: %w", err)
	}
	if tag.RowsAffected() > 0 {
		for _, c := range list.Categories {
			if _, err := tx.Exec(ctx, insertCategory, sessionId, c.Name); err != nil {
				return List{}, fmt.Errorf("failed to insert category %s: %w", c.Name, err)
			}
			for _, item := range c.Items {
				if _, err := tx.Exec(ctx, insertItem, sessionId, c.Name, item, list.Checked[item]); err != nil {
					return List{}, fmt.Errorf("failed to insert item %s: %w", item, err)
				}
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return List{}, fmt.Errorf("commit transaction: %w", err)
	}
	return r.Load(ctx, sessionId)
}

func (r *RepositoryImpl) SetChecked(ctx context.Context, sessionId string, item string, checked bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE packing_item SET checked = $3 WHERE session_id = $1 AND name = $2`, sessionId, item, checked)
	if err != nil {
		err := fmt.Errorf("could not update item: %w", err)
		log.Error(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *RepositoryImpl) AddItem(ctx context.Context, sessionId string, category string, item string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, insertCategory, sessionId, category); err != nil {
		return fmt.Errorf("failed to insert category %s: %w", category, err)
	}
	tag, err := tx.Exec(ctx, insertItem, sessionId, category, item, false)
	if err != nil {
		return fmt.Errorf("failed to insert item %s: %w", item, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrItemExists
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) RemoveItem(ctx context.Context, sessionId string, category string, item string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM packing_item WHERE session_id = $1 AND category = $2 AND name = $3`, sessionId, category, item)
	if err != nil {
		err := fmt.Errorf("could not delete item: %w", err)
		log.Error(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *RepositoryImpl) AddCategory(ctx context.Context, sessionId string, name string) error {
	tag, err := r.db.Exec(ctx, insertCategory, sessionId, name)
	if err != nil {
		err := fmt.Errorf("could not insert category: %w", err)
		log.Error(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCategoryExists
	}
	return nil
}

func (r *RepositoryImpl) RemoveCategory(ctx context.Context, sessionId string, name string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM packing_category WHERE session_id = $1 AND name = $2`, sessionId, name)
	if err != nil {
		err := fmt.Errorf("could not delete category: %w", err)
		log.Error(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

var _ Repository = (*RepositoryImpl)(nil)
var _ Repository = (*MemoryRepository)(nil)
