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

const amenitiesTable = "amenities"

func (p *PgSQL) StoreAmenity(ctx context.Context, amenity domain.Amenity) (*domain.Amenity, error) {
	var row PgAmenity
	found, err := p.Builder.Insert(amenitiesTable).
		Rows(PgAmenity{
			ID:   uuid.UUID(amenity.ID),
			Name: amenity.Name,
		}).
		Returning(&PgAmenity{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not store amenity in pg: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("could not store amenity in pg: no row returned")
	}

	return row.ToDomain(), nil
}

func (p *PgSQL) AmenityByID(ctx context.Context, id domain.AmenityID) (*domain.Amenity, error) {
	var row PgAmenity
	found, err := p.Builder.From(amenitiesTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch amenity by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

func (p *PgSQL) AmenityByName(ctx context.Context, name string) (*domain.Amenity, error) {
	var row PgAmenity
	found, err := p.Builder.From(amenitiesTable).
		Where(goqu.L("lower(name)").Eq(strings.ToLower(name))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch amenity by name: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

func (p *PgSQL) Amenities(ctx context.Context) ([]domain.Amenity, error) {
	var rows []PgAmenity
	if err := p.Builder.From(amenitiesTable).
		Order(goqu.I("created_at").Asc(), goqu.I("id").Asc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch amenities from pg: %w", err)
	}

	out := make([]domain.Amenity, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}

	return out, nil
}

func (p *PgSQL) UpdateAmenity(ctx context.Context,
	id domain.AmenityID,
	updates storage.AmenityUpdates) (*domain.Amenity, error) {
	rec := goqu.Record{
		"updated_at": goqu.L("CURRENT_TIMESTAMP"),
	}
	if updates.Name != nil {
		rec["name"] = *updates.Name
	}

	var row PgAmenity
	found, err := p.Builder.Update(amenitiesTable).
		Set(rec).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Returning(&PgAmenity{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not update amenity in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

func (p *PgSQL) DeleteAmenity(ctx context.Context, id domain.AmenityID) (bool, error) {
	// join-table rows are dropped by ON DELETE CASCADE
	res, err := p.Builder.Delete(amenitiesTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ExecContext(ctx)
	if err != nil {
		return false, fmt.Errorf("could not delete amenity in pg: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not read affected rows: %w", err)
	}

	return n > 0, nil
}
