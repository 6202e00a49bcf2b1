// Package reference answers code-list and taxonomy existence questions
// from the PostgreSQL reference tables.
package reference

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	postgres "github.com/heartmarshall/serviceregistry-backend/internal/adapter/postgres"
	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
)

// Code tables.
const (
	tableLanguages      = "languages"
	tableCountries      = "countries"
	tableMunicipalities = "municipalities"
	tablePostalCodes    = "postal_codes"
	tableDialCodes      = "dial_codes"
	tableAreas          = "areas"
	tableTaxonomy       = "taxonomy_terms"
)

// Taxonomy vocabularies stored in taxonomy_terms.vocabulary.
const (
	VocabularyServiceClass    = "service_class"
	VocabularyOntologyTerm    = "ontology_term"
	VocabularyTargetGroup     = "target_group"
	VocabularyLifeEvent       = "life_event"
	VocabularyIndustrialClass = "industrial_class"
)

// Repo implements the code and taxonomy lookups of the validation engine.
type Repo struct {
	db postgres.Querier
}

// New creates a new reference repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

func (r *Repo) LanguageExists(ctx context.Context, code string) (bool, error) {
	return r.exists(ctx, tableLanguages, sq.Eq{"code": code})
}

func (r *Repo) CountryExists(ctx context.Context, code string) (bool, error) {
	return r.exists(ctx, tableCountries, sq.Eq{"code": code})
}

func (r *Repo) MunicipalityExists(ctx context.Context, code string) (bool, error) {
	return r.exists(ctx, tableMunicipalities, sq.Eq{"code": code})
}

func (r *Repo) PostalCodeExists(ctx context.Context, code string) (bool, error) {
	return r.exists(ctx, tablePostalCodes, sq.Eq{"code": code})
}

func (r *Repo) DialCodeExists(ctx context.Context, code string) (bool, error) {
	return r.exists(ctx, tableDialCodes, sq.Eq{"code": code})
}

// AreaExists reports whether code is a known area of the given sub-area type.
func (r *Repo) AreaExists(ctx context.Context, subType domain.SubAreaType, code string) (bool, error) {
	return r.exists(ctx, tableAreas, sq.Eq{"sub_type": string(subType), "code": code})
}

func (r *Repo) ServiceClassExists(ctx context.Context, code string) (bool, error) {
	return r.termExists(ctx, VocabularyServiceClass, code)
}

func (r *Repo) OntologyTermExists(ctx context.Context, code string) (bool, error) {
	return r.termExists(ctx, VocabularyOntologyTerm, code)
}

func (r *Repo) TargetGroupExists(ctx context.Context, code string) (bool, error) {
	return r.termExists(ctx, VocabularyTargetGroup, code)
}

func (r *Repo) LifeEventExists(ctx context.Context, code string) (bool, error) {
	return r.termExists(ctx, VocabularyLifeEvent, code)
}

func (r *Repo) IndustrialClassExists(ctx context.Context, code string) (bool, error) {
	return r.termExists(ctx, VocabularyIndustrialClass, code)
}

func (r *Repo) termExists(ctx context.Context, vocabulary, code string) (bool, error) {
	return r.exists(ctx, tableTaxonomy, sq.Eq{"vocabulary": vocabulary, "code": code})
}

// Loaded reports whether the code lists have been seeded. The languages
// list is the one every record needs.
func (r *Repo) Loaded(ctx context.Context) (bool, error) {
	return postgres.Exists(ctx, r.db, tableLanguages,
		postgres.Builder.Select("1").From(tableLanguages).Limit(1))
}

func (r *Repo) exists(ctx context.Context, table string, where sq.Eq) (bool, error) {
	return postgres.Exists(ctx, r.db, table,
		postgres.Builder.Select("1").From(table).Where(where).Limit(1))
}
