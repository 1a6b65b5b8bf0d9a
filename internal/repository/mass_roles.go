package repository

import (
	"context"
	"time"

	"github.com/parishops/sacristy/backend/internal/domain"
)

func (r *Repository) GetAllMassRoles() ([]*domain.MassRole, error) {
	query := `
		SELECT id, name, required, people_count, created_at, version
		FROM mass_roles
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := []*domain.MassRole{}
	for rows.Next() {
		var role domain.MassRole
		dst := []any{&role.ID, &role.Name, &role.Required, &role.Count, &role.CreatedAt, &role.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		roles = append(roles, &role)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return roles, nil
}

func (r *Repository) GetMassRoleByID(id int64) (*domain.MassRole, error) {
	query := `
		SELECT name, required, people_count, created_at, version
		FROM mass_roles WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	role := &domain.MassRole{
		ID: id,
	}

	dst := []any{&role.Name, &role.Required, &role.Count, &role.CreatedAt, &role.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return role, nil
}

func (r *Repository) CreateMassRole(role *domain.MassRole) error {
	query := `
		INSERT INTO mass_roles (name, required, people_count)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{role.Name, role.Required, role.Count}
	dst := []any{&role.ID, &role.CreatedAt, &role.Version}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...)
}

// GetRoleCandidates returns the active members of one role together with
// their blackout ranges and mass-time preferences, i.e. everything the
// assignment engine needs to judge eligibility.
func (r *Repository) GetRoleCandidates(roleID int64) ([]*domain.RoleCandidate, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT p.id, p.full_name
		FROM mass_role_members mrm
		JOIN people p ON p.id = mrm.person_id
		WHERE mrm.role_id = $1 AND mrm.is_active = TRUE
		ORDER BY mrm.id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates := []*domain.RoleCandidate{}
	for rows.Next() {
		var c domain.RoleCandidate
		if err := rows.Scan(&c.PersonID, &c.FullName); err != nil {
			return nil, err
		}
		candidates = append(candidates, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, c := range candidates {
		blackouts, err := r.getPersonBlackouts(ctx, c.PersonID)
		if err != nil {
			return nil, err
		}
		c.Blackouts = blackouts

		preferred, err := r.getPersonPreferredItems(ctx, roleID, c.PersonID)
		if err != nil {
			return nil, err
		}
		c.PreferredItemIDs = preferred
	}

	return candidates, nil
}

func (r *Repository) getPersonBlackouts(ctx context.Context, personID int64) ([]domain.BlackoutRange, error) {
	query := `
		SELECT start_date, end_date, COALESCE(reason, '')
		FROM person_blackout_dates
		WHERE person_id = $1
		ORDER BY start_date
	`

	rows, err := r.dbpool.QueryContext(ctx, query, personID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blackouts := []domain.BlackoutRange{}
	for rows.Next() {
		var b domain.BlackoutRange
		if err := rows.Scan(&b.StartDate, &b.EndDate, &b.Reason); err != nil {
			return nil, err
		}
		blackouts = append(blackouts, b)
	}

	return blackouts, rows.Err()
}

func (r *Repository) getPersonPreferredItems(ctx context.Context, roleID, personID int64) ([]int64, error) {
	query := `
		SELECT template_item_id
		FROM mass_role_member_preferences
		WHERE role_id = $1 AND person_id = $2
		ORDER BY template_item_id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, roleID, personID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		items = append(items, id)
	}

	return items, rows.Err()
}
