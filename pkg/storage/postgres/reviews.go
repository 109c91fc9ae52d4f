package postgres

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"stays/pkg/domain"
	"stays/pkg/storage"
)

const reviewsTable = "reviews"

func (p *PgSQL) StoreReview(ctx context.Context, review domain.Review) (*domain.Review, error) {
	var pgReview PgReview
	pgReview.FromDomain(review)

	var row PgReview
	found, err := p.Builder.Insert(reviewsTable).
		Rows(pgReview).
		Returning(&PgReview{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not store review in pg: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("could not store review in pg: no row returned")
	}

	return row.ToDomain(), nil
}

func (p *PgSQL) ReviewByID(ctx context.Context, id domain.ReviewID) (*domain.Review, error) {
	var row PgReview
	found, err := p.Builder.From(reviewsTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch review by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

func (p *PgSQL) ReviewByAuthorAndPlace(ctx context.Context,
	authorID domain.UserID,
	placeID domain.PlaceID) (*domain.Review, error) {
	var row PgReview
	found, err := p.Builder.From(reviewsTable).
		Where(
			goqu.I("author_id").Eq(uuid.UUID(authorID)),
			goqu.I("place_id").Eq(uuid.UUID(placeID)),
		).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch review by author and place: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

func (p *PgSQL) Reviews(ctx context.Context) ([]domain.Review, error) {
	return p.listReviews(ctx, nil)
}

func (p *PgSQL) ReviewsByPlace(ctx context.Context, placeID domain.PlaceID) ([]domain.Review, error) {
	return p.listReviews(ctx, goqu.I("place_id").Eq(uuid.UUID(placeID)))
}

func (p *PgSQL) listReviews(ctx context.Context, filter goqu.Expression) ([]domain.Review, error) {
	ds := p.Builder.From(reviewsTable).
		Order(goqu.I("created_at").Asc(), goqu.I("id").Asc())
	if filter != nil {
		ds = ds.Where(filter)
	}

	var rows []PgReview
	if err := ds.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch reviews from pg: %w", err)
	}

	out := make([]domain.Review, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}

	return out, nil
}

func (p *PgSQL) UpdateReview(ctx context.Context,
	id domain.ReviewID,
	updates storage.ReviewUpdates) (*domain.Review, error) {
	rec := goqu.Record{
		"updated_at": goqu.L("CURRENT_TIMESTAMP"),
	}
	if updates.Text != nil {
		rec["body"] = *updates.Text
	}
	if updates.Rating != nil {
		rec["rating"] = *updates.Rating
	}

	var row PgReview
	found, err := p.Builder.Update(reviewsTable).
		Set(rec).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Returning(&PgReview{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not update review in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

func (p *PgSQL) DeleteReview(ctx context.Context, id domain.ReviewID) (bool, error) {
	res, err := p.Builder.Delete(reviewsTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ExecContext(ctx)
	if err != nil {
		return false, fmt.Errorf("could not delete review in pg: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not read affected rows: %w", err)
	}

	return n > 0, nil
}

func (p *PgSQL) DeleteReviewsByPlace(ctx context.Context, placeID domain.PlaceID) (int64, error) {
	res, err := p.Builder.Delete(reviewsTable).
		Where(goqu.I("place_id").Eq(uuid.UUID(placeID))).
		Executor().ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not delete reviews by place in pg: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("could not read affected rows: %w", err)
	}

	return n, nil
}
