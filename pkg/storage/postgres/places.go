package postgres

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"stays/pkg/domain"
	"stays/pkg/storage"
)

const (
	placesTable         = "places"
	placeAmenitiesTable = "place_amenities"
)

func (p *PgSQL) StorePlace(ctx context.Context, place domain.Place) (*domain.Place, error) {
	var pgPlace PgPlace
	pgPlace.FromDomain(place)

	var row PgPlace
	found, err := p.Builder.Insert(placesTable).
		Rows(pgPlace).
		Returning(&PgPlace{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not store place in pg: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("could not store place in pg: no row returned")
	}

	if err := p.replaceAmenityLinks(ctx, domain.PlaceID(row.ID), place.AmenityIDs, false); err != nil {
		return nil, err
	}

	return row.ToDomain(place.AmenityIDs), nil
}

func (p *PgSQL) PlaceByID(ctx context.Context, id domain.PlaceID) (*domain.Place, error) {
	var row PgPlace
	found, err := p.Builder.From(placesTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch place by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	links, err := p.amenityLinks(ctx, id)
	if err != nil {
		return nil, err
	}

	return row.ToDomain(links), nil
}

func (p *PgSQL) Places(ctx context.Context) ([]domain.Place, error) {
	return p.listPlaces(ctx, nil)
}

func (p *PgSQL) PlacesByOwner(ctx context.Context, ownerID domain.UserID) ([]domain.Place, error) {
	return p.listPlaces(ctx, goqu.I("owner_id").Eq(uuid.UUID(ownerID)))
}

// listPlaces fetches place rows matching the optional filter and resolves
// their amenity links in a single second query.
func (p *PgSQL) listPlaces(ctx context.Context, filter goqu.Expression) ([]domain.Place, error) {
	ds := p.Builder.From(placesTable).
		Order(goqu.I("created_at").Asc(), goqu.I("id").Asc())
	if filter != nil {
		ds = ds.Where(filter)
	}

	var rows []PgPlace
	if err := ds.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch places from pg: %w", err)
	}
	if len(rows) == 0 {
		return []domain.Place{}, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for i := range rows {
		ids = append(ids, rows[i].ID)
	}

	var links []PgPlaceAmenity
	if err := p.Builder.From(placeAmenitiesTable).
		Where(goqu.I("place_id").In(ids)).
		Executor().ScanStructsContext(ctx, &links); err != nil {
		return nil, fmt.Errorf("could not fetch place amenities from pg: %w", err)
	}
	byPlace := map[uuid.UUID][]domain.AmenityID{}
	for _, l := range links {
		byPlace[l.PlaceID] = append(byPlace[l.PlaceID], domain.AmenityID(l.AmenityID))
	}

	out := make([]domain.Place, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain(byPlace[rows[i].ID]))
	}

	return out, nil
}

func (p *PgSQL) UpdatePlace(ctx context.Context,
	id domain.PlaceID,
	updates storage.PlaceUpdates) (*domain.Place, error) {
	rec := goqu.Record{
		"updated_at": goqu.L("CURRENT_TIMESTAMP"),
	}
	if updates.Title != nil {
		rec["title"] = *updates.Title
	}
	if updates.Description != nil {
		rec["description"] = *updates.Description
	}
	if updates.Price != nil {
		rec["price"] = *updates.Price
	}
	if updates.Latitude != nil {
		rec["latitude"] = *updates.Latitude
	}
	if updates.Longitude != nil {
		rec["longitude"] = *updates.Longitude
	}

	var row PgPlace
	found, err := p.Builder.Update(placesTable).
		Set(rec).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Returning(&PgPlace{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not update place in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	if updates.AmenityIDs != nil {
		if err := p.replaceAmenityLinks(ctx, id, *updates.AmenityIDs, true); err != nil {
			return nil, err
		}
	}

	links, err := p.amenityLinks(ctx, id)
	if err != nil {
		return nil, err
	}

	return row.ToDomain(links), nil
}

func (p *PgSQL) DeletePlace(ctx context.Context, id domain.PlaceID) (bool, error) {
	// amenity links are dropped by the ON DELETE CASCADE on the join table
	res, err := p.Builder.Delete(placesTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ExecContext(ctx)
	if err != nil {
		return false, fmt.Errorf("could not delete place in pg: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not read affected rows: %w", err)
	}

	return n > 0, nil
}

func (p *PgSQL) amenityLinks(ctx context.Context, id domain.PlaceID) ([]domain.AmenityID, error) {
	var links []PgPlaceAmenity
	if err := p.Builder.From(placeAmenitiesTable).
		Where(goqu.I("place_id").Eq(uuid.UUID(id))).
		Executor().ScanStructsContext(ctx, &links); err != nil {
		return nil, fmt.Errorf("could not fetch place amenities from pg: %w", err)
	}

	out := make([]domain.AmenityID, 0, len(links))
	for _, l := range links {
		out = append(out, domain.AmenityID(l.AmenityID))
	}

	return out, nil
}

func (p *PgSQL) replaceAmenityLinks(ctx context.Context,
	id domain.PlaceID,
	amenityIDs []domain.AmenityID,
	clearExisting bool) error {
	if clearExisting {
		if _, err := p.Builder.Delete(placeAmenitiesTable).
			Where(goqu.I("place_id").Eq(uuid.UUID(id))).
			Executor().ExecContext(ctx); err != nil {
			return fmt.Errorf("could not clear place amenities in pg: %w", err)
		}
	}
	if len(amenityIDs) == 0 {
		return nil
	}

	links := make([]PgPlaceAmenity, 0, len(amenityIDs))
	for _, aid := range amenityIDs {
		links = append(links, PgPlaceAmenity{
			PlaceID:   uuid.UUID(id),
			AmenityID: uuid.UUID(aid),
		})
	}
	if _, err := p.Builder.Insert(placeAmenitiesTable).
		Rows(links).
		Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("could not store place amenities in pg: %w", err)
	}

	return nil
}
