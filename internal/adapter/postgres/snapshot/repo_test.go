package snapshot_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/serviceregistry-backend/internal/adapter/postgres/snapshot"
	"github.com/heartmarshall/serviceregistry-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
)

var versionColumns = []string{"entity_id", "publishing_status", "available_languages", "names", "descriptions"}

func TestRepo_Latest_Mock(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	names := domain.LocalizedList{{Language: "fi", Type: domain.NameTypeName, Value: "Kirjasto"}}
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT entity_id, publishing_status, available_languages, names, descriptions FROM record_versions WHERE entity_id = $1 AND entity_kind = $2`)).
		WithArgs(id.String(), "ServiceChannel").
		WillReturnRows(pgxmock.NewRows(versionColumns).
			AddRow(id, "Published", []string{"fi"}, names, domain.LocalizedList{}))

	got, err := snapshot.New(mock).Latest(context.Background(), domain.EntityKindServiceChannel, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, domain.PublishingStatusPublished, got.PublishingStatus)
	assert.Equal(t, []string{"fi"}, got.AvailableLanguages)
	assert.Equal(t, names, got.Names)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Latest_NeverSaved_Mock(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`FROM record_versions`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(versionColumns))

	got, err := snapshot.New(mock).Latest(context.Background(), domain.EntityKindService, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepo_Latest_Error_Mock(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	dbErr := errors.New("connection refused")
	mock.ExpectQuery(`FROM record_versions`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(dbErr)

	got, err := snapshot.New(mock).Latest(context.Background(), domain.EntityKindService, uuid.New())
	assert.ErrorIs(t, err, dbErr)
	assert.Nil(t, got)
}

func TestRepo_Latest_Integration(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := snapshot.New(pool)
	ctx := context.Background()

	snap := domain.Snapshot{
		ID:                 uuid.New(),
		AvailableLanguages: []string{"fi", "sv"},
		PublishingStatus:   domain.PublishingStatusPublished,
		Names: domain.LocalizedList{
			{Language: "fi", Type: domain.NameTypeName, Value: "Kirjasto"},
			{Language: "sv", Type: domain.NameTypeName, Value: "Bibliotek"},
		},
		Descriptions: domain.LocalizedList{
			{Language: "fi", Type: domain.DescriptionTypeSummary, Value: "Lainaa kirjoja"},
		},
	}
	testhelper.SeedRecordVersion(t, pool, domain.EntityKindService, snap)

	got, err := repo.Latest(ctx, domain.EntityKindService, snap.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, snap, *got)

	// Same id under another kind is a different record.
	got, err = repo.Latest(ctx, domain.EntityKindOrganization, snap.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
