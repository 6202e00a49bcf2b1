// Package seeder loads reference code lists and taxonomies into the database.
package seeder

import (
	"context"

	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
)

// ReferenceBulkRepo defines the batch repository contract consumed by the
// seeder pipeline. Inserts skip rows that already exist and return the
// number of new rows. Implemented by reference.Repo.
type ReferenceBulkRepo interface {
	BulkInsertCodes(ctx context.Context, list domain.CodeList, codes []string) (int, error)
	BulkInsertAreas(ctx context.Context, areas []domain.AreaCode) (int, error)
	BulkInsertTerms(ctx context.Context, terms []domain.TaxonomyTerm) (int, error)
}

// TxRunner runs fn in a read-write transaction carried by its context.
// Implemented by postgres.TxManager.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
