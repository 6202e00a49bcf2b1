package validation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
)

// CodeLookup answers existence questions about reference codes.
type CodeLookup interface {
	LanguageExists(ctx context.Context, code string) (bool, error)
	CountryExists(ctx context.Context, code string) (bool, error)
	MunicipalityExists(ctx context.Context, code string) (bool, error)
	PostalCodeExists(ctx context.Context, code string) (bool, error)
	DialCodeExists(ctx context.Context, code string) (bool, error)
	AreaExists(ctx context.Context, subType domain.SubAreaType, code string) (bool, error)
}

// TaxonomyLookup answers existence questions about classification vocabularies.
type TaxonomyLookup interface {
	ServiceClassExists(ctx context.Context, code string) (bool, error)
	OntologyTermExists(ctx context.Context, code string) (bool, error)
	TargetGroupExists(ctx context.Context, code string) (bool, error)
	LifeEventExists(ctx context.Context, code string) (bool, error)
	IndustrialClassExists(ctx context.Context, code string) (bool, error)
}

// RegistryLookup reads existing registry records. Missing records are
// reported with domain.ErrNotFound.
type RegistryLookup interface {
	Organization(ctx context.Context, id uuid.UUID) (domain.OrganizationInfo, error)
	OrganizationByOID(ctx context.Context, oid string) (domain.OrganizationInfo, error)
	Service(ctx context.Context, id uuid.UUID) (domain.ServiceInfo, error)
	Channel(ctx context.Context, id uuid.UUID) (domain.ChannelInfo, error)
	GeneralDescription(ctx context.Context, id uuid.UUID) (domain.GeneralDescriptionInfo, error)
	NameInUse(ctx context.Context, kind domain.EntityKind, organizationID uuid.UUID, language, name string, exclude uuid.UUID) (bool, error)
	ASTIConnectionExists(ctx context.Context, serviceID, channelID uuid.UUID) (bool, error)
}

// Rules holds the configurable thresholds of the engine.
type Rules struct {
	MaxServiceClasses int
	MaxOntologyTerms  int
	// LimitsFromVersion is the first API version the ceilings apply to.
	LimitsFromVersion int
	// SupportLanguagesFromVersion is the first API version that requires a
	// channel's organization to be published in the channel's new languages.
	SupportLanguagesFromVersion int

	CitizensTargetGroupPrefix   string
	BusinessesTargetGroupPrefix string
}

// DefaultRules returns the rule set used when nothing is configured.
func DefaultRules() Rules {
	return Rules{
		MaxServiceClasses:           4,
		MaxOntologyTerms:            10,
		LimitsFromVersion:           7,
		SupportLanguagesFromVersion: 9,
		CitizensTargetGroupPrefix:   "KR1",
		BusinessesTargetGroupPrefix: "KR2",
	}
}

// Env is the read-only lookup context of one validation pass.
type Env struct {
	Codes    CodeLookup
	Taxonomy TaxonomyLookup
	Registry RegistryLookup

	APIVersion int
	Caller     domain.Caller
	Rules      Rules
}

func (e Env) check() error {
	switch {
	case e.Codes == nil:
		return fmt.Errorf("%w: code lookup is nil", ErrContractViolation)
	case e.Taxonomy == nil:
		return fmt.Errorf("%w: taxonomy lookup is nil", ErrContractViolation)
	case e.Registry == nil:
		return fmt.Errorf("%w: registry lookup is nil", ErrContractViolation)
	}
	return nil
}

type existsFunc func(ctx context.Context, code string) (bool, error)

// checkCode reports an unknown reference code. Empty codes are skipped; a
// missing required value is the caller's rule.
func checkCode(ctx context.Context, path Path, what, code string, exists existsFunc) ([]Violation, error) {
	if code == "" {
		return nil, nil
	}
	ok, err := exists(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("lookup %s %q: %w", what, code, err)
	}
	if !ok {
		return []Violation{violation(path, KindUnknownReferenceCode, fmt.Sprintf("unknown %s %q", what, code))}, nil
	}
	return nil, nil
}

// checkCodes runs checkCode for every element, indexing the path.
func checkCodes(ctx context.Context, path Path, what string, codes []string, exists existsFunc) ([]Violation, error) {
	var out []Violation
	for i, code := range codes {
		vs, err := checkCode(ctx, path.Index(i), what, code, exists)
		if err != nil {
			return nil, err
		}
		out = append(out, vs...)
	}
	return out, nil
}

// found maps a registry lookup error: nil means the record exists, a
// RecordNotFound violation means it does not, an error aborts the pass.
func found(path Path, what string, id uuid.UUID, err error) ([]Violation, error) {
	if err == nil {
		return nil, nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return []Violation{violation(path, KindRecordNotFound, fmt.Sprintf("%s %s does not exist", what, id))}, nil
	}
	return nil, fmt.Errorf("lookup %s %s: %w", what, id, err)
}
