package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/parishops/sacristy/backend/internal/domain"
)

func (r *Repository) GetAllMassTimeTemplates() ([]*domain.MassTimeTemplate, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			mtt.id,
			mtt.name,
			mtt.day_of_week,
			mtt.is_active,
			mtt.created_at,
			mtt.version,
			mti.id,
			mti.time,
			mti.day_type,
			mti.name
		FROM mass_time_templates mtt
		LEFT JOIN mass_time_template_items mti ON mtt.id = mti.template_id
		ORDER BY mtt.id, mti.position, mti.id
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templatesMap := make(map[int64]*domain.MassTimeTemplate)
	order := []int64{}

	for rows.Next() {
		var row struct {
			ID        int64
			Name      string
			DayOfWeek string
			IsActive  bool
			CreatedAt time.Time
			Version   int32

			ItemID   sql.NullInt64
			ItemTime sql.NullString
			DayType  sql.NullString
			ItemName sql.NullString
		}

		dst := []any{
			&row.ID,
			&row.Name,
			&row.DayOfWeek,
			&row.IsActive,
			&row.CreatedAt,
			&row.Version,
			&row.ItemID,
			&row.ItemTime,
			&row.DayType,
			&row.ItemName,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		tmpl, exists := templatesMap[row.ID]
		if !exists {
			tmpl = &domain.MassTimeTemplate{
				ID:        row.ID,
				Name:      row.Name,
				DayOfWeek: domain.DayOfWeek(row.DayOfWeek),
				IsActive:  row.IsActive,
				Items:     make([]domain.MassTimeTemplateItem, 0),
				CreatedAt: row.CreatedAt,
				Version:   row.Version,
			}
			templatesMap[row.ID] = tmpl
			order = append(order, row.ID)
		}

		// a template without items yields one row with NULL item columns
		if !row.ItemID.Valid {
			continue
		}

		tmpl.Items = append(tmpl.Items, domain.MassTimeTemplateItem{
			ID:      row.ItemID.Int64,
			Time:    row.ItemTime.String,
			DayType: domain.DayType(row.DayType.String),
			Name:    row.ItemName.String,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	templates := make([]*domain.MassTimeTemplate, 0, len(order))
	for _, id := range order {
		templates = append(templates, templatesMap[id])
	}

	return templates, nil
}

func (r *Repository) GetMassTimeTemplate(id int64) (*domain.MassTimeTemplate, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			mtt.name,
			mtt.day_of_week,
			mtt.is_active,
			mtt.created_at,
			mtt.version,
			mti.id,
			mti.time,
			mti.day_type,
			mti.name
		FROM mass_time_templates mtt
		LEFT JOIN mass_time_template_items mti ON mtt.id = mti.template_id
		WHERE mtt.id = $1
		ORDER BY mti.position, mti.id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tmpl := &domain.MassTimeTemplate{
		ID:    id,
		Items: make([]domain.MassTimeTemplateItem, 0),
	}
	found := false

	for rows.Next() {
		var row struct {
			Name      string
			DayOfWeek string
			IsActive  bool
			CreatedAt time.Time
			Version   int32

			ItemID   sql.NullInt64
			ItemTime sql.NullString
			DayType  sql.NullString
			ItemName sql.NullString
		}

		dst := []any{
			&row.Name,
			&row.DayOfWeek,
			&row.IsActive,
			&row.CreatedAt,
			&row.Version,
			&row.ItemID,
			&row.ItemTime,
			&row.DayType,
			&row.ItemName,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if !found {
			tmpl.Name = row.Name
			tmpl.DayOfWeek = domain.DayOfWeek(row.DayOfWeek)
			tmpl.IsActive = row.IsActive
			tmpl.CreatedAt = row.CreatedAt
			tmpl.Version = row.Version
			found = true
		}

		if !row.ItemID.Valid {
			continue
		}

		tmpl.Items = append(tmpl.Items, domain.MassTimeTemplateItem{
			ID:      row.ItemID.Int64,
			Time:    row.ItemTime.String,
			DayType: domain.DayType(row.DayType.String),
			Name:    row.ItemName.String,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !found {
		return nil, sql.ErrNoRows
	}

	return tmpl, nil
}

func (r *Repository) GetMassTimeTemplatesByIDs(ids []int64) ([]*domain.MassTimeTemplate, error) {
	templates := make([]*domain.MassTimeTemplate, 0, len(ids))
	for _, id := range ids {
		tmpl, err := r.GetMassTimeTemplate(id)
		if err != nil {
			return nil, err
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}

func (r *Repository) CreateMassTimeTemplate(tmpl *domain.MassTimeTemplate) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO mass_time_templates (name, day_of_week, is_active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`
	if err := tx.QueryRowContext(ctx, query, tmpl.Name, tmpl.DayOfWeek, tmpl.IsActive).Scan(&tmpl.ID, &tmpl.CreatedAt, &tmpl.Version); err != nil {
		return err
	}

	for i := range tmpl.Items {
		query = `
			INSERT INTO mass_time_template_items (template_id, time, day_type, name, position)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`
		params := []any{tmpl.ID, tmpl.Items[i].Time, tmpl.Items[i].DayType, tmpl.Items[i].Name, i}
		if err := tx.QueryRowContext(ctx, query, params...).Scan(&tmpl.Items[i].ID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateMassTimeTemplate(tmpl *domain.MassTimeTemplate) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE mass_time_templates
		SET
			name = $1,
			day_of_week = $2,
			is_active = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`

	params := []any{tmpl.Name, tmpl.DayOfWeek, tmpl.IsActive, tmpl.ID, tmpl.Version}
	if err := tx.QueryRowContext(ctx, query, params...).Scan(&tmpl.Version); err != nil {
		return err
	}

	// items are replaced wholesale, the wizard edits them as a unit
	query = `DELETE FROM mass_time_template_items WHERE template_id = $1`
	if _, err := tx.ExecContext(ctx, query, tmpl.ID); err != nil {
		return err
	}

	for i := range tmpl.Items {
		query = `
			INSERT INTO mass_time_template_items (template_id, time, day_type, name, position)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`
		params := []any{tmpl.ID, tmpl.Items[i].Time, tmpl.Items[i].DayType, tmpl.Items[i].Name, i}
		if err := tx.QueryRowContext(ctx, query, params...).Scan(&tmpl.Items[i].ID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteMassTimeTemplate(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		DELETE FROM mass_time_templates WHERE id = $1
	`

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
