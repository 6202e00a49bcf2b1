package validation

import (
	"context"
	"fmt"

	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
)

// Validate runs every rule for record and returns the aggregate report.
// previous is the last saved version, nil for a new record. Only contract
// violations and lookup failures are returned as errors.
func Validate(ctx context.Context, env Env, record domain.Record, previous *domain.Snapshot) (*Report, error) {
	if err := env.check(); err != nil {
		return nil, err
	}

	var (
		vs  []Violation
		err error
	)
	switch r := record.(type) {
	case *domain.Organization:
		if r == nil {
			return nil, fmt.Errorf("%w: nil organization", ErrContractViolation)
		}
		vs, err = validateOrganization(ctx, env, r, previous)
	case *domain.Service:
		if r == nil {
			return nil, fmt.Errorf("%w: nil service", ErrContractViolation)
		}
		vs, err = validateService(ctx, env, r, previous)
	case *domain.ServiceChannel:
		if r == nil || r.Details == nil {
			return nil, fmt.Errorf("%w: service channel without details", ErrContractViolation)
		}
		vs, err = validateChannel(ctx, env, r, previous)
	case *domain.GeneralDescription:
		if r == nil {
			return nil, fmt.Errorf("%w: nil general description", ErrContractViolation)
		}
		vs, err = validateGeneralDescription(ctx, env, r, previous)
	default:
		return nil, fmt.Errorf("%w: unsupported record %T", ErrContractViolation, record)
	}
	if err != nil {
		return nil, err
	}

	report := NewReport()
	report.Add(vs...)
	return report, nil
}

// recordState is what every composite derives before running its rules.
type recordState struct {
	required          RequiredLanguages
	available         []string
	explicit          bool
	previousLanguages []string
	current           domain.PublishingStatus
	next              domain.PublishingStatus
}

func newRecordState(r domain.Record, previous *domain.Snapshot) recordState {
	meta := r.Meta()
	st := recordState{
		available: r.AvailableLanguageSet(),
		explicit:  meta.AvailableLanguages != nil,
		next:      meta.PublishingStatus.Normalize(),
	}
	if previous != nil {
		st.previousLanguages = previous.AvailableLanguages
		st.current = previous.PublishingStatus
	}
	st.required = ResolveRequiredLanguages(st.available, st.previousLanguages, meta.RequiredPropertyLanguages)
	return st
}

func (s recordState) publishing() bool { return s.next == domain.PublishingStatusPublished }

func (s recordState) newlyAdded() []string {
	return NewlyAddedLanguages(s.available, s.previousLanguages)
}

// pass accumulates the violations of one record. The first lookup error
// poisons the pass and is returned by result.
type pass struct {
	out []Violation
	err error
}

func (p *pass) add(vs ...Violation) {
	p.out = append(p.out, vs...)
}

// merge is shaped to take a check's results directly: p.merge(check(...)).
func (p *pass) merge(vs []Violation, err error) {
	if p.err != nil {
		return
	}
	if err != nil {
		p.err = err
		return
	}
	p.out = append(p.out, vs...)
}

func (p *pass) result() ([]Violation, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.out, nil
}

// checkRecordMeta runs the rules shared by every record: available-language
// consistency, language codes and the publishing lifecycle.
func checkRecordMeta(ctx context.Context, env Env, p *pass, st recordState, meta *domain.RecordMeta, used ...[]string) {
	if st.explicit {
		p.add(checkAvailableLanguages(Path("AvailableLanguages"), st.available, used...)...)
	}
	p.merge(checkLanguageCodes(ctx, env, Path("AvailableLanguages"), st.available))
	p.add(CheckPublishing("", st.current, meta.PublishingStatus, meta.ValidFrom, meta.ValidTo)...)
}
