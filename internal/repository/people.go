package repository

import (
	"context"
	"time"

	"github.com/parishops/sacristy/backend/internal/domain"
)

func (r *Repository) GetPeopleByIDs(ids []int64) (map[int64]*domain.Person, error) {
	query := `
		SELECT full_name, COALESCE(email, ''), is_active
		FROM people WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	people := map[int64]*domain.Person{}
	for _, id := range ids {
		if _, ok := people[id]; ok {
			continue
		}

		person := &domain.Person{
			ID: id,
		}

		dst := []any{&person.FullName, &person.Email, &person.IsActive}
		if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
			return nil, err
		}

		people[id] = person
	}

	return people, nil
}

func (r *Repository) CreatePerson(person *domain.Person) error {
	query := `
		INSERT INTO people (full_name, email, is_active)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{person.FullName, person.Email, person.IsActive}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&person.ID)
}

func (r *Repository) AddRoleMember(roleID, personID int64) error {
	query := `
		INSERT INTO mass_role_members (role_id, person_id, is_active)
		VALUES ($1, $2, TRUE)
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, roleID, personID)
	return err
}

func (r *Repository) AddPersonBlackout(personID int64, blackout domain.BlackoutRange) error {
	query := `
		INSERT INTO person_blackout_dates (person_id, start_date, end_date, reason)
		VALUES ($1, $2, $3, $4)
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{personID, blackout.StartDate, blackout.EndDate, blackout.Reason}
	_, err := r.dbpool.ExecContext(ctx, query, args...)
	return err
}
