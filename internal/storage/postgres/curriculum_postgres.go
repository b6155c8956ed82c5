package postgres

import (
	"context"
	"errors"
	"fmt"

	"CourseForge/internal/app_errors"
	"CourseForge/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CurriculumPostgres struct {
	db *pgxpool.Pool
}

func NewCurriculumPostgres(db *pgxpool.Pool) *CurriculumPostgres {
	return &CurriculumPostgres{db: db}
}

func UnwrapPgError(err error) *pgconn.PgError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr
	}
	return nil
}

// flagColumns whitelists the toggleable attributes against column names.
var flagColumns = map[string]string{
	models.AttributeFree:      "is_free",
	models.AttributePublished: "is_published",
}

func (r *CurriculumPostgres) CourseStructure(ctx context.Context, courseID uuid.UUID) ([]models.Section, error) {
	sectionQuery := `
    SELECT id, title, is_expanded, section_order
      FROM sections
     WHERE course_id = $1
  ORDER BY section_order
    `
	rows, err := r.db.Query(ctx, sectionQuery, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sections: %w", err)
	}
	defer rows.Close()

	var sections []models.Section
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var s models.Section
		if err := rows.Scan(&s.ID, &s.Title, &s.IsExpanded, &s.OrderIndex); err != nil {
			return nil, err
		}
		index[s.ID] = len(sections)
		sections = append(sections, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemQuery := `
    SELECT i.id, i.section_id, i.title, i.content_type, i.content_url,
           i.duration, i.is_free, i.is_published, i.added_date, i.order_index
      FROM content_items i
      JOIN sections s ON s.id = i.section_id
     WHERE s.course_id = $1
  ORDER BY i.order_index
    `
	itemRows, err := r.db.Query(ctx, itemQuery, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query content items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var it models.ContentItem
		var sectionID uuid.UUID
		if err := itemRows.Scan(
			&it.ID, &sectionID, &it.Title, &it.Type, &it.URL,
			&it.Duration, &it.IsFree, &it.IsPublished, &it.AddedDate, &it.OrderIndex,
		); err != nil {
			return nil, err
		}
		si, ok := index[sectionID]
		if !ok {
			continue
		}
		sections[si].ContentItems = append(sections[si].ContentItems, it)
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}
	return sections, nil
}

func (r *CurriculumPostgres) CreateSection(ctx context.Context, courseID uuid.UUID, section models.Section) error {
	query := `
    INSERT INTO sections (id, course_id, title, is_expanded, section_order)
    VALUES ($1, $2, $3, $4, $5)
    `
	_, err := r.db.Exec(ctx, query,
		section.ID, courseID, section.Title, section.IsExpanded, section.OrderIndex,
	)
	if err != nil {
		return fmt.Errorf("failed to insert section: %w", err)
	}
	return nil
}

func (r *CurriculumPostgres) CreateContentItem(ctx context.Context, sectionID uuid.UUID, item models.ContentItem) error {
	query := `
    INSERT INTO content_items (
        id, section_id, title, content_type, content_url,
        duration, is_free, is_published, added_date, order_index
    ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    `
	_, err := r.db.Exec(ctx, query,
		item.ID, sectionID, item.Title, item.Type, item.URL,
		item.Duration, item.IsFree, item.IsPublished, item.AddedDate, item.OrderIndex,
	)
	if err != nil {
		if pgErr := UnwrapPgError(err); pgErr != nil && pgErr.Code == "23505" {
			return app_errors.ErrDuplicateContent
		}
		return fmt.Errorf("failed to insert content item: %w", err)
	}
	return nil
}

func (r *CurriculumPostgres) DeleteContentItem(ctx context.Context, sectionID, contentID uuid.UUID, orderIndex int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	deleteQuery := `DELETE FROM content_items WHERE id = $1`
	tag, err := tx.Exec(ctx, deleteQuery, contentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return app_errors.ErrContentNotFound
	}

	updateQuery := `
        UPDATE content_items SET order_index = order_index - 1
         WHERE section_id = $1 AND order_index > $2
    `
	_, err = tx.Exec(ctx, updateQuery, sectionID, orderIndex)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// SaveOrder writes the full ordering of a course in one transaction:
// section positions plus each item's owning section and index, so
// cross-section moves land atomically.
func (r *CurriculumPostgres) SaveOrder(ctx context.Context, courseID uuid.UUID, sections []models.Section) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	sectionQuery := `
        UPDATE sections SET section_order = $1
         WHERE id = $2 AND course_id = $3
    `
	itemQuery := `
        UPDATE content_items SET section_id = $1, order_index = $2
         WHERE id = $3
    `
	for _, s := range sections {
		if _, err := tx.Exec(ctx, sectionQuery, s.OrderIndex, s.ID, courseID); err != nil {
			return fmt.Errorf("failed to update section order: %w", err)
		}
		for _, it := range s.ContentItems {
			if _, err := tx.Exec(ctx, itemQuery, s.ID, it.OrderIndex, it.ID); err != nil {
				return fmt.Errorf("failed to update item order: %w", err)
			}
		}
	}

	return tx.Commit(ctx)
}

func (r *CurriculumPostgres) SetItemFlag(ctx context.Context, contentID uuid.UUID, attribute string, value bool) error {
	column, ok := flagColumns[attribute]
	if !ok {
		return app_errors.ErrUnknownAttribute
	}
	query := fmt.Sprintf(`UPDATE content_items SET %s = $1 WHERE id = $2`, column)
	tag, err := r.db.Exec(ctx, query, value, contentID)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", column, err)
	}
	if tag.RowsAffected() == 0 {
		return app_errors.ErrContentNotFound
	}
	return nil
}
