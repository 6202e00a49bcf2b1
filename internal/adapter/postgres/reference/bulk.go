package reference

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	postgres "github.com/heartmarshall/serviceregistry-backend/internal/adapter/postgres"
	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
)

var codeListTables = map[domain.CodeList]string{
	domain.CodeListLanguages:      tableLanguages,
	domain.CodeListCountries:      tableCountries,
	domain.CodeListMunicipalities: tableMunicipalities,
	domain.CodeListPostalCodes:    tablePostalCodes,
	domain.CodeListDialCodes:      tableDialCodes,
}

// BulkInsertCodes adds codes to a flat code list. Known codes are skipped;
// the result is the number of rows actually inserted.
func (r *Repo) BulkInsertCodes(ctx context.Context, list domain.CodeList, codes []string) (int, error) {
	table, ok := codeListTables[list]
	if !ok {
		return 0, fmt.Errorf("unknown code list %q", list)
	}
	if len(codes) == 0 {
		return 0, nil
	}

	b := postgres.Builder.Insert(table).Columns("code")
	for _, c := range codes {
		b = b.Values(c)
	}
	return r.insert(ctx, table, b)
}

// BulkInsertAreas adds area codes, skipping known ones.
func (r *Repo) BulkInsertAreas(ctx context.Context, areas []domain.AreaCode) (int, error) {
	if len(areas) == 0 {
		return 0, nil
	}

	b := postgres.Builder.Insert(tableAreas).Columns("sub_type", "code")
	for _, a := range areas {
		b = b.Values(string(a.SubType), a.Code)
	}
	return r.insert(ctx, tableAreas, b)
}

// BulkInsertTerms adds taxonomy terms, skipping known ones.
func (r *Repo) BulkInsertTerms(ctx context.Context, terms []domain.TaxonomyTerm) (int, error) {
	if len(terms) == 0 {
		return 0, nil
	}

	b := postgres.Builder.Insert(tableTaxonomy).Columns("vocabulary", "code")
	for _, t := range terms {
		b = b.Values(t.Vocabulary, t.Code)
	}
	return r.insert(ctx, tableTaxonomy, b)
}

func (r *Repo) insert(ctx context.Context, table string, b sq.InsertBuilder) (int, error) {
	query, args, err := b.Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build %s insert: %w", table, err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", table, err)
	}
	return int(tag.RowsAffected()), nil
}
