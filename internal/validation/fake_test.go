package validation

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
)

var (
	_ CodeLookup     = (*fakeLookups)(nil)
	_ TaxonomyLookup = (*fakeLookups)(nil)
	_ RegistryLookup = (*fakeLookups)(nil)
)

// fakeLookups is an in-memory implementation of every lookup port. Codes
// exist unless listed in unknown ("country:XX", "serviceClass:P1", ...).
type fakeLookups struct {
	unknown       map[string]bool
	organizations map[uuid.UUID]domain.OrganizationInfo
	services      map[uuid.UUID]domain.ServiceInfo
	channels      map[uuid.UUID]domain.ChannelInfo
	descriptions  map[uuid.UUID]domain.GeneralDescriptionInfo
	oids          map[string]domain.OrganizationInfo
	namesInUse    map[string]bool
	asti          map[[2]uuid.UUID]bool
	err           error

	mu    sync.Mutex
	calls int
}

func newFakeLookups() *fakeLookups {
	return &fakeLookups{
		unknown:       make(map[string]bool),
		organizations: make(map[uuid.UUID]domain.OrganizationInfo),
		services:      make(map[uuid.UUID]domain.ServiceInfo),
		channels:      make(map[uuid.UUID]domain.ChannelInfo),
		descriptions:  make(map[uuid.UUID]domain.GeneralDescriptionInfo),
		oids:          make(map[string]domain.OrganizationInfo),
		namesInUse:    make(map[string]bool),
		asti:          make(map[[2]uuid.UUID]bool),
	}
}

func (f *fakeLookups) env(caller domain.Caller) Env {
	return Env{
		Codes:      f,
		Taxonomy:   f,
		Registry:   f,
		APIVersion: 11,
		Caller:     caller,
		Rules:      DefaultRules(),
	}
}

func (f *fakeLookups) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeLookups) code(kind, code string) (bool, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	return !f.unknown[kind+":"+code], nil
}

func (f *fakeLookups) LanguageExists(_ context.Context, c string) (bool, error) {
	return f.code("language", c)
}

func (f *fakeLookups) CountryExists(_ context.Context, c string) (bool, error) {
	return f.code("country", c)
}

func (f *fakeLookups) MunicipalityExists(_ context.Context, c string) (bool, error) {
	return f.code("municipality", c)
}

func (f *fakeLookups) PostalCodeExists(_ context.Context, c string) (bool, error) {
	return f.code("postalCode", c)
}

func (f *fakeLookups) DialCodeExists(_ context.Context, c string) (bool, error) {
	return f.code("dialCode", c)
}

func (f *fakeLookups) AreaExists(_ context.Context, sub domain.SubAreaType, c string) (bool, error) {
	return f.code(string(sub), c)
}

func (f *fakeLookups) ServiceClassExists(_ context.Context, c string) (bool, error) {
	return f.code("serviceClass", c)
}

func (f *fakeLookups) OntologyTermExists(_ context.Context, c string) (bool, error) {
	return f.code("ontologyTerm", c)
}

func (f *fakeLookups) TargetGroupExists(_ context.Context, c string) (bool, error) {
	return f.code("targetGroup", c)
}

func (f *fakeLookups) LifeEventExists(_ context.Context, c string) (bool, error) {
	return f.code("lifeEvent", c)
}

func (f *fakeLookups) IndustrialClassExists(_ context.Context, c string) (bool, error) {
	return f.code("industrialClass", c)
}

func (f *fakeLookups) Organization(_ context.Context, id uuid.UUID) (domain.OrganizationInfo, error) {
	if f.err != nil {
		return domain.OrganizationInfo{}, f.err
	}
	info, ok := f.organizations[id]
	if !ok {
		return domain.OrganizationInfo{}, domain.ErrNotFound
	}
	return info, nil
}

func (f *fakeLookups) OrganizationByOID(_ context.Context, oid string) (domain.OrganizationInfo, error) {
	if f.err != nil {
		return domain.OrganizationInfo{}, f.err
	}
	info, ok := f.oids[oid]
	if !ok {
		return domain.OrganizationInfo{}, domain.ErrNotFound
	}
	return info, nil
}

func (f *fakeLookups) Service(_ context.Context, id uuid.UUID) (domain.ServiceInfo, error) {
	if f.err != nil {
		return domain.ServiceInfo{}, f.err
	}
	info, ok := f.services[id]
	if !ok {
		return domain.ServiceInfo{}, domain.ErrNotFound
	}
	return info, nil
}

func (f *fakeLookups) Channel(_ context.Context, id uuid.UUID) (domain.ChannelInfo, error) {
	if f.err != nil {
		return domain.ChannelInfo{}, f.err
	}
	info, ok := f.channels[id]
	if !ok {
		return domain.ChannelInfo{}, domain.ErrNotFound
	}
	return info, nil
}

func (f *fakeLookups) GeneralDescription(_ context.Context, id uuid.UUID) (domain.GeneralDescriptionInfo, error) {
	if f.err != nil {
		return domain.GeneralDescriptionInfo{}, f.err
	}
	info, ok := f.descriptions[id]
	if !ok {
		return domain.GeneralDescriptionInfo{}, domain.ErrNotFound
	}
	return info, nil
}

func (f *fakeLookups) NameInUse(_ context.Context, _ domain.EntityKind, _ uuid.UUID, lang, name string, _ uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.namesInUse[lang+":"+name], nil
}

func (f *fakeLookups) ASTIConnectionExists(_ context.Context, serviceID, channelID uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.asti[[2]uuid.UUID{serviceID, channelID}], nil
}

// --- fixtures ---

func names(pairs ...string) domain.LocalizedList {
	var out domain.LocalizedList
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, domain.LocalizedItem{Language: pairs[i], Type: domain.NameTypeName, Value: pairs[i+1]})
	}
	return out
}

func descriptions(langs ...string) domain.LocalizedList {
	var out domain.LocalizedList
	for _, l := range langs {
		out = append(out,
			domain.LocalizedItem{Language: l, Type: domain.DescriptionTypeSummary, Value: "summary " + l},
			domain.LocalizedItem{Language: l, Type: domain.DescriptionTypeDescription, Value: "description " + l},
		)
	}
	return out
}

func day(d domain.Weekday) *domain.Weekday { return &d }

func pathsOf(vs []Violation) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Path)
	}
	return out
}

func countKind(vs []Violation, kind Kind) int {
	n := 0
	for _, v := range vs {
		if v.Kind == kind {
			n++
		}
	}
	return n
}
