package registry

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
)

var (
	_ snapshotRepo = &snapshotRepoMock{}
	_ auditRepo    = &auditRepoMock{}
	_ txManager    = &txManagerMock{}
)

type snapshotRepoMock struct {
	LatestFunc func(ctx context.Context, kind domain.EntityKind, id uuid.UUID) (*domain.Snapshot, error)

	calls struct {
		Latest []struct {
			Kind domain.EntityKind
			ID   uuid.UUID
		}
	}
	lockLatest sync.RWMutex
}

func (mock *snapshotRepoMock) Latest(ctx context.Context, kind domain.EntityKind, id uuid.UUID) (*domain.Snapshot, error) {
	if mock.LatestFunc == nil {
		panic("snapshotRepoMock.LatestFunc: method is nil but snapshotRepo.Latest was just called")
	}
	mock.lockLatest.Lock()
	mock.calls.Latest = append(mock.calls.Latest, struct {
		Kind domain.EntityKind
		ID   uuid.UUID
	}{Kind: kind, ID: id})
	mock.lockLatest.Unlock()
	return mock.LatestFunc(ctx, kind, id)
}

func (mock *snapshotRepoMock) LatestCalls() []struct {
	Kind domain.EntityKind
	ID   uuid.UUID
} {
	mock.lockLatest.RLock()
	defer mock.lockLatest.RUnlock()
	return mock.calls.Latest
}

type auditRepoMock struct {
	LogFunc          func(ctx context.Context, rec domain.ValidationAudit) error
	ListByRecordFunc func(ctx context.Context, kind domain.EntityKind, recordID uuid.UUID, limit int) ([]domain.ValidationAudit, error)
	ListByUserFunc   func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.ValidationAudit, error)

	calls struct {
		Log []struct {
			Ctx context.Context
			Rec domain.ValidationAudit
		}
		ListByRecord []struct {
			Kind     domain.EntityKind
			RecordID uuid.UUID
			Limit    int
		}
		ListByUser []struct {
			UserID uuid.UUID
			Limit  int
			Offset int
		}
	}
	lockLog          sync.RWMutex
	lockListByRecord sync.RWMutex
	lockListByUser   sync.RWMutex
}

func (mock *auditRepoMock) Log(ctx context.Context, rec domain.ValidationAudit) error {
	if mock.LogFunc == nil {
		panic("auditRepoMock.LogFunc: method is nil but auditRepo.Log was just called")
	}
	mock.lockLog.Lock()
	mock.calls.Log = append(mock.calls.Log, struct {
		Ctx context.Context
		Rec domain.ValidationAudit
	}{Ctx: ctx, Rec: rec})
	mock.lockLog.Unlock()
	return mock.LogFunc(ctx, rec)
}

func (mock *auditRepoMock) LogCalls() []struct {
	Ctx context.Context
	Rec domain.ValidationAudit
} {
	mock.lockLog.RLock()
	defer mock.lockLog.RUnlock()
	return mock.calls.Log
}

func (mock *auditRepoMock) ListByRecord(ctx context.Context, kind domain.EntityKind, recordID uuid.UUID, limit int) ([]domain.ValidationAudit, error) {
	if mock.ListByRecordFunc == nil {
		panic("auditRepoMock.ListByRecordFunc: method is nil but auditRepo.ListByRecord was just called")
	}
	mock.lockListByRecord.Lock()
	mock.calls.ListByRecord = append(mock.calls.ListByRecord, struct {
		Kind     domain.EntityKind
		RecordID uuid.UUID
		Limit    int
	}{Kind: kind, RecordID: recordID, Limit: limit})
	mock.lockListByRecord.Unlock()
	return mock.ListByRecordFunc(ctx, kind, recordID, limit)
}

func (mock *auditRepoMock) ListByRecordCalls() []struct {
	Kind     domain.EntityKind
	RecordID uuid.UUID
	Limit    int
} {
	mock.lockListByRecord.RLock()
	defer mock.lockListByRecord.RUnlock()
	return mock.calls.ListByRecord
}

func (mock *auditRepoMock) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.ValidationAudit, error) {
	if mock.ListByUserFunc == nil {
		panic("auditRepoMock.ListByUserFunc: method is nil but auditRepo.ListByUser was just called")
	}
	mock.lockListByUser.Lock()
	mock.calls.ListByUser = append(mock.calls.ListByUser, struct {
		UserID uuid.UUID
		Limit  int
		Offset int
	}{UserID: userID, Limit: limit, Offset: offset})
	mock.lockListByUser.Unlock()
	return mock.ListByUserFunc(ctx, userID, limit, offset)
}

func (mock *auditRepoMock) ListByUserCalls() []struct {
	UserID uuid.UUID
	Limit  int
	Offset int
} {
	mock.lockListByUser.RLock()
	defer mock.lockListByUser.RUnlock()
	return mock.calls.ListByUser
}

type txManagerMock struct {
	RunReadOnlyFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunReadOnly []struct{}
	}
	lockRunReadOnly sync.RWMutex
}

func (mock *txManagerMock) RunReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunReadOnlyFunc == nil {
		panic("txManagerMock.RunReadOnlyFunc: method is nil but txManager.RunReadOnly was just called")
	}
	mock.lockRunReadOnly.Lock()
	mock.calls.RunReadOnly = append(mock.calls.RunReadOnly, struct{}{})
	mock.lockRunReadOnly.Unlock()
	return mock.RunReadOnlyFunc(ctx, fn)
}

func (mock *txManagerMock) RunReadOnlyCalls() []struct{} {
	mock.lockRunReadOnly.RLock()
	defer mock.lockRunReadOnly.RUnlock()
	return mock.calls.RunReadOnly
}

// permissiveLookups knows every code and no registry record.
type permissiveLookups struct{}

func (permissiveLookups) LanguageExists(context.Context, string) (bool, error)     { return true, nil }
func (permissiveLookups) CountryExists(context.Context, string) (bool, error)      { return true, nil }
func (permissiveLookups) MunicipalityExists(context.Context, string) (bool, error) { return true, nil }
func (permissiveLookups) PostalCodeExists(context.Context, string) (bool, error)   { return true, nil }
func (permissiveLookups) DialCodeExists(context.Context, string) (bool, error)     { return true, nil }
func (permissiveLookups) AreaExists(context.Context, domain.SubAreaType, string) (bool, error) {
	return true, nil
}
func (permissiveLookups) ServiceClassExists(context.Context, string) (bool, error) { return true, nil }
func (permissiveLookups) OntologyTermExists(context.Context, string) (bool, error) { return true, nil }
func (permissiveLookups) TargetGroupExists(context.Context, string) (bool, error)  { return true, nil }
func (permissiveLookups) LifeEventExists(context.Context, string) (bool, error)    { return true, nil }
func (permissiveLookups) IndustrialClassExists(context.Context, string) (bool, error) {
	return true, nil
}

func (permissiveLookups) Organization(context.Context, uuid.UUID) (domain.OrganizationInfo, error) {
	return domain.OrganizationInfo{}, domain.ErrNotFound
}
func (permissiveLookups) OrganizationByOID(context.Context, string) (domain.OrganizationInfo, error) {
	return domain.OrganizationInfo{}, domain.ErrNotFound
}
func (permissiveLookups) Service(context.Context, uuid.UUID) (domain.ServiceInfo, error) {
	return domain.ServiceInfo{}, domain.ErrNotFound
}
func (permissiveLookups) Channel(context.Context, uuid.UUID) (domain.ChannelInfo, error) {
	return domain.ChannelInfo{}, domain.ErrNotFound
}
func (permissiveLookups) GeneralDescription(context.Context, uuid.UUID) (domain.GeneralDescriptionInfo, error) {
	return domain.GeneralDescriptionInfo{}, domain.ErrNotFound
}
func (permissiveLookups) NameInUse(context.Context, domain.EntityKind, uuid.UUID, string, string, uuid.UUID) (bool, error) {
	return false, nil
}
func (permissiveLookups) ASTIConnectionExists(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return false, nil
}
