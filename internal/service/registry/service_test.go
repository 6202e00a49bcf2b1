package registry

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/serviceregistry-backend/internal/config"
	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
	"github.com/heartmarshall/serviceregistry-backend/internal/metrics"
	"github.com/heartmarshall/serviceregistry-backend/internal/validation"
	"github.com/heartmarshall/serviceregistry-backend/pkg/ctxutil"
)

func testValidationConfig() config.ValidationConfig {
	return config.ValidationConfig{
		MinAPIVersion:               7,
		MaxAPIVersion:               11,
		MaxServiceClasses:           4,
		MaxOntologyTerms:            10,
		LimitsFromVersion:           7,
		SupportLanguagesFromVersion: 9,
		CitizensTargetGroupPrefix:   "KR1",
		BusinessesTargetGroupPrefix: "KR2",
	}
}

// defaultTxMock returns a txManagerMock that simply calls the function with the same context.
func defaultTxMock() *txManagerMock {
	return &txManagerMock{
		RunReadOnlyFunc: func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	}
}

func defaultAuditMock() *auditRepoMock {
	return &auditRepoMock{
		LogFunc: func(context.Context, domain.ValidationAudit) error { return nil },
	}
}

func neverSavedMock() *snapshotRepoMock {
	return &snapshotRepoMock{
		LatestFunc: func(context.Context, domain.EntityKind, uuid.UUID) (*domain.Snapshot, error) {
			return nil, nil
		},
	}
}

type testDeps struct {
	snapshots *snapshotRepoMock
	audit     *auditRepoMock
	tx        *txManagerMock
	metrics   *metrics.Metrics
}

func newTestService(t *testing.T, deps testDeps) *Service {
	t.Helper()
	if deps.snapshots == nil {
		deps.snapshots = neverSavedMock()
	}
	if deps.audit == nil {
		deps.audit = defaultAuditMock()
	}
	if deps.tx == nil {
		deps.tx = defaultTxMock()
	}
	lookups := permissiveLookups{}
	return NewService(
		slog.Default(),
		testValidationConfig(),
		Lookups{Codes: lookups, Taxonomy: lookups, Registry: lookups},
		deps.snapshots,
		deps.audit,
		deps.tx,
		deps.metrics,
	)
}

func authCtx(userID uuid.UUID, role domain.UserRole, orgs ...uuid.UUID) context.Context {
	return ctxutil.WithPrincipal(context.Background(), ctxutil.Principal{
		UserID:        userID,
		Role:          string(role),
		Organizations: orgs,
	})
}

func validGeneralDescription() *domain.GeneralDescription {
	return &domain.GeneralDescription{
		ID:   uuid.New(),
		Type: domain.ServiceTypePermitOrObligation,
		Names: domain.LocalizedList{
			{Language: "fi", Type: domain.NameTypeName, Value: "Rakennuslupa"},
		},
		Descriptions: domain.LocalizedList{
			{Language: "fi", Type: domain.DescriptionTypeSummary, Value: "summary fi"},
			{Language: "fi", Type: domain.DescriptionTypeDescription, Value: "description fi"},
		},
		ServiceClasses: []string{"P10"},
		OntologyTerms:  []string{"p500"},
		TargetGroups:   []string{"KR1", "KR2"},
		RecordMeta:     domain.RecordMeta{PublishingStatus: domain.PublishingStatusDraft},
	}
}

// ---------------------------------------------------------------------------
// Validate
// ---------------------------------------------------------------------------

func TestValidate_ValidRecord(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	deps := testDeps{metrics: m, snapshots: neverSavedMock(), audit: defaultAuditMock(), tx: defaultTxMock()}
	svc := newTestService(t, deps)

	userID := uuid.New()
	gd := validGeneralDescription()

	report, err := svc.Validate(authCtx(userID, domain.UserRoleUser), 11, gd)
	require.NoError(t, err)
	assert.True(t, report.Valid(), "%v", report.Violations())
	assert.NoError(t, report.Err())

	require.Len(t, deps.snapshots.LatestCalls(), 1)
	assert.Equal(t, domain.EntityKindGeneralDescription, deps.snapshots.LatestCalls()[0].Kind)
	assert.Equal(t, gd.ID, deps.snapshots.LatestCalls()[0].ID)
	assert.Len(t, deps.tx.RunReadOnlyCalls(), 1)

	require.Len(t, deps.audit.LogCalls(), 1)
	rec := deps.audit.LogCalls()[0].Rec
	assert.Equal(t, userID, rec.UserID)
	assert.Equal(t, domain.EntityKindGeneralDescription, rec.EntityKind)
	require.NotNil(t, rec.RecordID)
	assert.Equal(t, gd.ID, *rec.RecordID)
	assert.Equal(t, 11, rec.APIVersion)
	assert.True(t, rec.Valid)
	assert.Zero(t, rec.ViolationCount)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Validations.WithLabelValues("GeneralDescription", metrics.OutcomeValid)))
}

func TestValidate_InvalidRecord(t *testing.T) {
	t.Parallel()

	m := metrics.New(prometheus.NewRegistry())
	deps := testDeps{metrics: m, snapshots: neverSavedMock(), audit: defaultAuditMock()}
	svc := newTestService(t, deps)

	gd := validGeneralDescription()
	gd.Type = ""
	gd.ServiceClasses = nil

	report, err := svc.Validate(authCtx(uuid.New(), domain.UserRoleUser), 11, gd)
	require.NoError(t, err)
	require.False(t, report.Valid())

	var vErr *domain.ValidationError
	require.ErrorAs(t, report.Err(), &vErr)
	assert.ErrorIs(t, report.Err(), domain.ErrValidation)

	require.Len(t, deps.audit.LogCalls(), 1)
	rec := deps.audit.LogCalls()[0].Rec
	assert.False(t, rec.Valid)
	assert.Equal(t, report.Len(), rec.ViolationCount)
	total := 0
	for _, n := range rec.Kinds {
		total += n
	}
	assert.Equal(t, report.Len(), total)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Validations.WithLabelValues("GeneralDescription", metrics.OutcomeInvalid)))
	for kind, n := range rec.Kinds {
		assert.Equal(t, float64(n), testutil.ToFloat64(m.Violations.WithLabelValues("GeneralDescription", kind)), kind)
	}
}

func TestValidate_NewRecordSkipsSnapshot(t *testing.T) {
	t.Parallel()

	deps := testDeps{snapshots: neverSavedMock(), audit: defaultAuditMock()}
	svc := newTestService(t, deps)

	gd := validGeneralDescription()
	gd.ID = uuid.Nil

	_, err := svc.Validate(authCtx(uuid.New(), domain.UserRoleUser), 9, gd)
	require.NoError(t, err)
	assert.Empty(t, deps.snapshots.LatestCalls())
	require.Len(t, deps.audit.LogCalls(), 1)
	assert.Nil(t, deps.audit.LogCalls()[0].Rec.RecordID)
}

func TestValidate_Unauthenticated(t *testing.T) {
	t.Parallel()

	deps := testDeps{tx: defaultTxMock(), audit: defaultAuditMock()}
	svc := newTestService(t, deps)

	_, err := svc.Validate(context.Background(), 11, validGeneralDescription())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Empty(t, deps.tx.RunReadOnlyCalls())
	assert.Empty(t, deps.audit.LogCalls())
}

func TestValidate_UnsupportedVersion(t *testing.T) {
	t.Parallel()

	for _, v := range []int{0, 6, 12} {
		deps := testDeps{tx: defaultTxMock()}
		svc := newTestService(t, deps)

		_, err := svc.Validate(authCtx(uuid.New(), domain.UserRoleUser), v, validGeneralDescription())
		assert.ErrorIs(t, err, domain.ErrBadRequest, "version %d", v)
		assert.Empty(t, deps.tx.RunReadOnlyCalls(), "version %d", v)
	}
}

func TestValidate_NilRecord(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, testDeps{})

	_, err := svc.Validate(authCtx(uuid.New(), domain.UserRoleUser), 11, nil)
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestValidate_SnapshotError(t *testing.T) {
	t.Parallel()

	dbErr := errors.New("connection reset")
	m := metrics.New(prometheus.NewRegistry())
	deps := testDeps{
		metrics: m,
		snapshots: &snapshotRepoMock{
			LatestFunc: func(context.Context, domain.EntityKind, uuid.UUID) (*domain.Snapshot, error) {
				return nil, dbErr
			},
		},
		audit: defaultAuditMock(),
	}
	svc := newTestService(t, deps)

	report, err := svc.Validate(authCtx(uuid.New(), domain.UserRoleUser), 11, validGeneralDescription())
	assert.ErrorIs(t, err, dbErr)
	assert.Nil(t, report)
	assert.Empty(t, deps.audit.LogCalls(), "failed passes are not audited")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Validations.WithLabelValues("GeneralDescription", metrics.OutcomeError)))
}

func TestValidate_TxError(t *testing.T) {
	t.Parallel()

	txErr := errors.New("begin transaction: pool closed")
	deps := testDeps{tx: &txManagerMock{
		RunReadOnlyFunc: func(context.Context, func(context.Context) error) error { return txErr },
	}}
	svc := newTestService(t, deps)

	_, err := svc.Validate(authCtx(uuid.New(), domain.UserRoleUser), 11, validGeneralDescription())
	assert.ErrorIs(t, err, txErr)
}

func TestValidate_PreviousVersionDrivesLanguages(t *testing.T) {
	t.Parallel()

	// Swedish is declared available but has no content.
	record := func() *domain.GeneralDescription {
		gd := validGeneralDescription()
		gd.RecordMeta.AvailableLanguages = []string{"fi", "sv"}
		return gd
	}

	// Never saved: both languages are new, so Swedish content of every
	// required type is missing.
	svc := newTestService(t, testDeps{})
	report, err := svc.Validate(authCtx(uuid.New(), domain.UserRoleUser), 11, record())
	require.NoError(t, err)
	assert.Positive(t, report.CountKind(validation.KindMissingRequiredLanguageAndType))

	// Saved with the same languages: nothing is newly added.
	svc = newTestService(t, testDeps{snapshots: &snapshotRepoMock{
		LatestFunc: func(_ context.Context, _ domain.EntityKind, id uuid.UUID) (*domain.Snapshot, error) {
			return &domain.Snapshot{
				ID:                 id,
				AvailableLanguages: []string{"fi", "sv"},
				PublishingStatus:   domain.PublishingStatusDraft,
			}, nil
		},
	}})
	report, err = svc.Validate(authCtx(uuid.New(), domain.UserRoleUser), 11, record())
	require.NoError(t, err)
	assert.Zero(t, report.CountKind(validation.KindMissingRequiredLanguageAndType), "%v", report.Violations())
}

func TestValidate_AuditFailureIsNotReturned(t *testing.T) {
	t.Parallel()

	deps := testDeps{audit: &auditRepoMock{
		LogFunc: func(context.Context, domain.ValidationAudit) error { return errors.New("disk full") },
	}}
	svc := newTestService(t, deps)

	report, err := svc.Validate(authCtx(uuid.New(), domain.UserRoleUser), 11, validGeneralDescription())
	require.NoError(t, err)
	assert.True(t, report.Valid())
	assert.Len(t, deps.audit.LogCalls(), 1)
}

func TestValidate_AuditSurvivesCancellation(t *testing.T) {
	t.Parallel()

	deps := testDeps{audit: defaultAuditMock(), tx: defaultTxMock()}
	svc := newTestService(t, deps)

	ctx, cancel := context.WithCancel(authCtx(uuid.New(), domain.UserRoleUser))
	deps.tx.RunReadOnlyFunc = func(ctx context.Context, fn func(context.Context) error) error {
		err := fn(ctx)
		cancel()
		return err
	}

	_, err := svc.Validate(ctx, 11, validGeneralDescription())
	require.NoError(t, err)
	require.Len(t, deps.audit.LogCalls(), 1)
	assert.NoError(t, deps.audit.LogCalls()[0].Ctx.Err())
}

func TestCallerFromCtx(t *testing.T) {
	t.Parallel()

	userID, orgID := uuid.New(), uuid.New()

	caller, err := callerFromCtx(authCtx(userID, domain.UserRoleAdmin, orgID))
	require.NoError(t, err)
	assert.Equal(t, userID, caller.UserID)
	assert.True(t, caller.IsAdmin())
	assert.True(t, caller.OwnsOrganization(orgID))

	caller, err = callerFromCtx(authCtx(userID, "superuser"))
	require.NoError(t, err)
	assert.Equal(t, domain.UserRoleUser, caller.Role, "unknown roles fall back to user")
	assert.False(t, caller.IsAdmin())
}

func TestRules_FromConfig(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, testDeps{})
	assert.Equal(t, validation.DefaultRules(), svc.Rules())

	lo, hi := svc.VersionRange()
	assert.Equal(t, 7, lo)
	assert.Equal(t, 11, hi)
}
