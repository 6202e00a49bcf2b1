package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/serviceregistry-backend/internal/app/seeder/codelist"
	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
)

// Phase names.
const (
	PhaseLanguages      = "languages"
	PhaseCountries      = "countries"
	PhaseMunicipalities = "municipalities"
	PhasePostalCodes    = "postal_codes"
	PhaseDialCodes      = "dial_codes"
	PhaseAreas          = "areas"
	PhaseTaxonomy       = "taxonomy"
)

// allPhases defines the canonical execution order.
var allPhases = []string{
	PhaseLanguages, PhaseCountries, PhaseMunicipalities, PhasePostalCodes,
	PhaseDialCodes, PhaseAreas, PhaseTaxonomy,
}

// PhaseResult holds the outcome of a single pipeline phase.
type PhaseResult struct {
	Parsed   int
	Inserted int
	Skipped  int
	Duration time.Duration
	Err      error
}

// Pipeline orchestrates the seeding phases.
type Pipeline struct {
	log     *slog.Logger
	repo    ReferenceBulkRepo
	tx      TxRunner
	cfg     Config
	results map[string]PhaseResult
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, repo ReferenceBulkRepo, cfg Config) *Pipeline {
	return &Pipeline{
		log:     log,
		repo:    repo,
		cfg:     cfg,
		results: make(map[string]PhaseResult),
	}
}

// WithTx makes every phase all-or-nothing: its batches share one
// transaction, so a failed batch leaves the code list as it was.
func (p *Pipeline) WithTx(tx TxRunner) *Pipeline {
	p.tx = tx
	return p
}

// Results returns phase results after Run completes.
func (p *Pipeline) Results() map[string]PhaseResult {
	return p.results
}

// HasErrors returns true if any phase failed.
func (p *Pipeline) HasErrors() bool {
	for _, r := range p.results {
		if r.Err != nil {
			return true
		}
	}
	return false
}

// Run executes the pipeline. If phases is non-empty, only the listed phases
// run; unknown names are rejected before anything is written.
func (p *Pipeline) Run(ctx context.Context, phases []string) error {
	toRun := allPhases
	if len(phases) > 0 {
		filter := make(map[string]bool, len(phases))
		for _, ph := range phases {
			filter[ph] = true
		}
		var filtered []string
		for _, ph := range allPhases {
			if filter[ph] {
				filtered = append(filtered, ph)
				delete(filter, ph)
			}
		}
		for ph := range filter {
			return fmt.Errorf("unknown phase %q", ph)
		}
		toRun = filtered
	}

	for _, phase := range toRun {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := time.Now()
		p.log.Info("starting phase", slog.String("phase", phase))

		result := p.runPhase(ctx, phase)
		result.Duration = time.Since(start)
		p.results[phase] = result

		if result.Err != nil {
			p.log.Warn("phase failed",
				slog.String("phase", phase),
				slog.String("error", result.Err.Error()),
				slog.Duration("duration", result.Duration),
			)
		} else {
			p.log.Info("phase completed",
				slog.String("phase", phase),
				slog.Int("parsed", result.Parsed),
				slog.Int("inserted", result.Inserted),
				slog.Int("skipped", result.Skipped),
				slog.Duration("duration", result.Duration),
			)
		}
	}

	p.log.Info("pipeline completed", slog.Int("phases_run", len(toRun)))
	return nil
}

func (p *Pipeline) runPhase(ctx context.Context, phase string) PhaseResult {
	switch phase {
	case PhaseLanguages:
		return p.runCodes(ctx, domain.CodeListLanguages, p.cfg.LanguagesPath)
	case PhaseCountries:
		return p.runCodes(ctx, domain.CodeListCountries, p.cfg.CountriesPath)
	case PhaseMunicipalities:
		return p.runCodes(ctx, domain.CodeListMunicipalities, p.cfg.MunicipalitiesPath)
	case PhasePostalCodes:
		return p.runCodes(ctx, domain.CodeListPostalCodes, p.cfg.PostalCodesPath)
	case PhaseDialCodes:
		return p.runCodes(ctx, domain.CodeListDialCodes, p.cfg.DialCodesPath)
	case PhaseAreas:
		return p.runAreas(ctx)
	case PhaseTaxonomy:
		return p.runTaxonomy(ctx)
	}
	return PhaseResult{Err: fmt.Errorf("unknown phase %q", phase)}
}

func (p *Pipeline) runCodes(ctx context.Context, list domain.CodeList, path string) PhaseResult {
	if path == "" {
		return PhaseResult{Skipped: 1}
	}

	codes, err := codelist.ParseCodes(path)
	if err != nil {
		return PhaseResult{Err: err}
	}
	return load(ctx, p, codes, func(ctx context.Context, batch []string) (int, error) {
		return p.repo.BulkInsertCodes(ctx, list, batch)
	})
}

func (p *Pipeline) runAreas(ctx context.Context) PhaseResult {
	if p.cfg.AreasPath == "" {
		return PhaseResult{Skipped: 1}
	}

	areas, err := codelist.ParseAreas(p.cfg.AreasPath)
	if err != nil {
		return PhaseResult{Err: err}
	}
	return load(ctx, p, areas, func(ctx context.Context, batch []domain.AreaCode) (int, error) {
		return p.repo.BulkInsertAreas(ctx, batch)
	})
}

func (p *Pipeline) runTaxonomy(ctx context.Context) PhaseResult {
	if p.cfg.TaxonomyPath == "" {
		return PhaseResult{Skipped: 1}
	}

	terms, err := codelist.ParseTerms(p.cfg.TaxonomyPath)
	if err != nil {
		return PhaseResult{Err: err}
	}
	return load(ctx, p, terms, func(ctx context.Context, batch []domain.TaxonomyTerm) (int, error) {
		return p.repo.BulkInsertTerms(ctx, batch)
	})
}

// load writes parsed items in batches unless the pipeline is a dry run.
// Under WithTx a failure rolls the whole phase back and reports nothing
// inserted.
func load[T any](ctx context.Context, p *Pipeline, items []T, fn func(context.Context, []T) (int, error)) PhaseResult {
	result := PhaseResult{Parsed: len(items)}
	if p.cfg.DryRun {
		result.Skipped = len(items)
		return result
	}

	var inserted int
	write := func(ctx context.Context) error {
		var err error
		inserted, err = batchProcess(items, p.cfg.BatchSize, func(batch []T) (int, error) {
			return fn(ctx, batch)
		})
		return err
	}

	var err error
	if p.tx != nil {
		err = p.tx.RunInTx(ctx, write)
		if err != nil {
			inserted = 0
		}
	} else {
		err = write(ctx)
	}

	result.Inserted = inserted
	if err != nil {
		result.Err = fmt.Errorf("insert: %w", err)
		return result
	}
	result.Skipped = len(items) - inserted
	return result
}

// batchProcess splits items into batches and calls fn for each.
func batchProcess[T any](items []T, batchSize int, fn func([]T) (int, error)) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = 500
	}

	total := 0
	for i := 0; i < len(items); i += batchSize {
		end := min(i+batchSize, len(items))
		n, err := fn(items[i:end])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
