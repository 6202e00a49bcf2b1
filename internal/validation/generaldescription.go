package validation

import (
	"context"
	"fmt"

	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
)

func validateGeneralDescription(ctx context.Context, env Env, gd *domain.GeneralDescription, previous *domain.Snapshot) ([]Violation, error) {
	st := newRecordState(gd, previous)
	p := &pass{}

	p.add(CheckLocalized(gd.Names, LocalizedRule{
		Path:      "Names",
		Required:  st.required,
		Types:     []string{domain.NameTypeName},
		Available: st.available,
	})...)
	p.add(checkItemTypes("Names", gd.Names, domain.NameTypeName, domain.NameTypeAlternateName)...)
	p.add(CheckLocalized(gd.Descriptions, LocalizedRule{
		Path:     "Descriptions",
		Required: st.required,
		Types:    []string{domain.DescriptionTypeSummary, domain.DescriptionTypeDescription},
	})...)
	if st.publishing() {
		p.add(checkNameNotSummary("Descriptions", gd.Names, gd.Descriptions, previous)...)
	}
	for i, law := range gd.Laws {
		lp := Path("Legislation").Index(i)
		p.add(CheckLocalized(law.Names, LocalizedRule{Path: lp.Field("Names"), Required: st.required})...)
		p.add(checkWebPages(lp.Field("WebPages"), law.WebPages)...)
	}

	checkRecordMeta(ctx, env, p, st, &gd.RecordMeta,
		gd.Names.Languages(), gd.Descriptions.Languages(), gd.Requirements.Languages())

	switch {
	case gd.Type == "":
		p.add(violation("Type", KindStructuralConflict, "service type is required"))
	case !gd.Type.IsValid():
		p.add(violation("Type", KindStructuralConflict, fmt.Sprintf("unknown service type %q", gd.Type)))
	}
	if gd.ChargeType != "" && !gd.ChargeType.IsValid() {
		p.add(violation("ServiceChargeType", KindStructuralConflict,
			fmt.Sprintf("unknown charge type %q", gd.ChargeType)))
	}
	if len(gd.ServiceClasses) == 0 {
		p.add(violation("ServiceClasses", KindStructuralConflict, "at least one service class is required"))
	}
	if len(gd.OntologyTerms) == 0 {
		p.add(violation("OntologyTerms", KindStructuralConflict, "at least one ontology term is required"))
	}
	if len(gd.TargetGroups) == 0 {
		p.add(violation("TargetGroups", KindStructuralConflict, "at least one target group is required"))
	}

	p.merge(checkClassification(ctx, env, "", classification{
		ServiceClasses:    gd.ServiceClasses,
		OntologyTerms:     gd.OntologyTerms,
		TargetGroups:      gd.TargetGroups,
		LifeEvents:        gd.LifeEvents,
		IndustrialClasses: gd.IndustrialClasses,
	}, nil))

	return p.result()
}
