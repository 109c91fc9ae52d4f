package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"stays/pkg/domain"
	"stays/pkg/storage"
)

const usersTable = "users"

func (p *PgSQL) StoreUser(ctx context.Context, user domain.User) (*domain.User, error) {
	var pgUser PgUser
	pgUser.FromDomain(user)

	var row PgUser
	found, err := p.Builder.Insert(usersTable).
		Rows(pgUser).
		Returning(&PgUser{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not store user in pg: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("could not store user in pg: no row returned")
	}

	return row.ToDomain(), nil
}

func (p *PgSQL) UserByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	var row PgUser
	found, err := p.Builder.From(usersTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch user by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

func (p *PgSQL) UserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var row PgUser
	found, err := p.Builder.From(usersTable).
		Where(goqu.L("lower(email)").Eq(strings.ToLower(email))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch user by email: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

func (p *PgSQL) Users(ctx context.Context) ([]domain.User, error) {
	var rows []PgUser
	if err := p.Builder.From(usersTable).
		Order(goqu.I("created_at").Asc(), goqu.I("id").Asc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch users from pg: %w", err)
	}

	out := make([]domain.User, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}

	return out, nil
}

func (p *PgSQL) UpdateUser(ctx context.Context,
	id domain.UserID,
	updates storage.UserUpdates) (*domain.User, error) {
	rec := goqu.Record{
		"updated_at": goqu.L("CURRENT_TIMESTAMP"),
	}
	if updates.FirstName != nil {
		rec["first_name"] = *updates.FirstName
	}
	if updates.LastName != nil {
		rec["last_name"] = *updates.LastName
	}
	if updates.Email != nil {
		rec["email"] = *updates.Email
	}
	if updates.Credential != nil {
		rec["credential"] = *updates.Credential
	}
	if updates.IsAdmin != nil {
		rec["is_admin"] = *updates.IsAdmin
	}

	var row PgUser
	found, err := p.Builder.Update(usersTable).
		Set(rec).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Returning(&PgUser{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not update user in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

func (p *PgSQL) DeleteUser(ctx context.Context, id domain.UserID) (bool, error) {
	res, err := p.Builder.Delete(usersTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ExecContext(ctx)
	if err != nil {
		return false, fmt.Errorf("could not delete user in pg: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not read affected rows: %w", err)
	}

	return n > 0, nil
}
