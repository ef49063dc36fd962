// Package scoring is the top-level pipeline orchestrator. It drives each
// raw answer record through consolidated analysis (or the per-operation
// fallback components), the local mention math, and persistence, running
// records through a bounded worker pool and aggregating per-record outcomes
// into a batch report.
package scoring

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/brandlens/brandlens/internal/domain"
	"github.com/brandlens/brandlens/internal/domain/mention"
	"github.com/brandlens/brandlens/internal/domain/run"
	"github.com/brandlens/brandlens/internal/metrics"
)

const defaultConcurrency = 4

// BatchRequest parameterizes one scoring run.
type BatchRequest struct {
	// Rerun reprocesses records already marked processed.
	Rerun bool `json:"rerun"`
}

// Service coordinates the scoring pipeline.
type Service struct {
	answers      AnswerSource
	results      ResultWriter
	consolidated ConsolidatedAnalyzer
	citations    CitationClassifier
	sentiment    SentimentAnalyzer

	brand       domain.EntityProfile
	competitors []domain.EntityProfile
	concurrency int
	logger      *zap.Logger
}

// New creates the scoring orchestrator. consolidated may be nil, in which
// case every record runs through the per-operation components directly.
func New(
	answers AnswerSource,
	results ResultWriter,
	consolidated ConsolidatedAnalyzer,
	citations CitationClassifier,
	sentiment SentimentAnalyzer,
	brand domain.EntityProfile,
	competitors []domain.EntityProfile,
	concurrency int,
	logger *zap.Logger,
) *Service {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Service{
		answers:      answers,
		results:      results,
		consolidated: consolidated,
		citations:    citations,
		sentiment:    sentiment,
		brand:        brand,
		competitors:  competitors,
		concurrency:  concurrency,
		logger:       logger,
	}
}

// ProcessBatch scores every pending record. Records are independent units
// of work and run concurrently; a sub-operation failure degrades that
// record's output but does not fail the batch. The returned report lists
// outcomes in the source's record order regardless of completion order.
func (s *Service) ProcessBatch(ctx context.Context, req BatchRequest) (run.Report, error) {
	runID := uuid.NewString()
	report := run.Report{RunID: runID}

	records, err := s.answers.List(ctx)
	if err != nil {
		return report, fmt.Errorf("list answer records: %w", err)
	}
	if len(records) == 0 {
		return report, nil
	}

	log := s.logger.With(zap.String("run_id", runID))
	log.Info("scoring run started",
		zap.Int("records", len(records)),
		zap.Bool("rerun", req.Rerun),
	)

	jobs := make(chan int)
	outcomes := make([]run.RecordOutcome, len(records))

	var wg sync.WaitGroup
	for w := 0; w < s.concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = s.processRecord(ctx, log, &records[i], req.Rerun)
			}
		}()
	}
	for i := range records {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	// Indexed outcome slots make aggregation order-independent of worker
	// scheduling.
	for _, out := range outcomes {
		report.Processed++
		switch {
		case out.Skipped:
			report.Skipped++
			metrics.RecordsProcessedTotal.WithLabelValues("skipped").Inc()
		case out.Succeeded:
			report.Succeeded++
			metrics.RecordsProcessedTotal.WithLabelValues("succeeded").Inc()
		default:
			metrics.RecordsProcessedTotal.WithLabelValues("failed").Inc()
		}
		report.Errors = append(report.Errors, out.Errors...)
	}

	log.Info("scoring run finished",
		zap.Int("processed", report.Processed),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("skipped", report.Skipped),
		zap.Int("errors", len(report.Errors)),
	)
	return report, nil
}

// processRecord drives one record through the pipeline:
// validate → consolidated attempt → (fallback components) → mention math →
// persist. Recoverable sub-failures are collected as operation errors while
// the record continues with degraded output.
func (s *Service) processRecord(ctx context.Context, log *zap.Logger, rec *domain.RawAnswerRecord, rerun bool) run.RecordOutcome {
	out := run.RecordOutcome{RecordID: rec.ID}

	if err := rec.Validate(); err != nil {
		out.Errors = append(out.Errors, opError(rec.ID, run.OpValidate, err))
		return out
	}

	if !rerun {
		done, err := s.answers.IsProcessed(ctx, rec.ID)
		if err != nil {
			out.Errors = append(out.Errors, opError(rec.ID, run.OpPersist, err))
			return out
		}
		if !done {
			// A crash between persisting results and marking the record can
			// leave metrics without the processed flag.
			done, err = s.results.HasMetrics(ctx, rec.ID)
			if err != nil {
				out.Errors = append(out.Errors, opError(rec.ID, run.OpPersist, err))
				return out
			}
		}
		if done {
			out.Skipped = true
			return out
		}
	}

	var (
		cons   domain.ConsolidatedAnalysisResult
		consOK bool
	)
	if s.consolidated != nil {
		res, err := s.consolidated.Analyze(ctx, rec, s.brand, s.competitors)
		if err != nil {
			log.Warn("consolidated analysis failed, falling back",
				zap.String("record_id", rec.ID),
				zap.Error(err),
			)
			out.Errors = append(out.Errors, opError(rec.ID, run.OpConsolidated, err))
		} else {
			cons = res
			consOK = true
		}
	}

	var citations []domain.CitationCategory
	if consOK {
		citations = cons.Citations
	} else {
		citations = s.citations.ClassifyURLs(ctx, rec.CitedURLs)
	}

	sentiments := make([]domain.SentimentResult, 0, 1+len(s.competitors))
	for _, profile := range s.entityProfiles() {
		if consOK {
			if ea, ok := cons.EntityByName(profile.CanonicalName); ok {
				sentiments = append(sentiments, ea.Sentiment)
				continue
			}
		}
		sr, err := s.sentiment.Analyze(ctx, rec.ID, profile.CanonicalName, rec.AnswerText)
		if err != nil {
			// Exhausted chains still yield a flagged neutral result; record
			// the failure and keep it.
			out.Errors = append(out.Errors, opError(rec.ID, run.OpSentiment, err))
		}
		sentiments = append(sentiments, sr)
	}

	// Occurrence and visibility math always runs locally so consolidated
	// and fallback paths produce identical metrics for the same text.
	metricsOut := s.computeMetrics(rec, cons)

	if err := s.persist(ctx, rec, metricsOut, sentiments, citations); err != nil {
		out.Errors = append(out.Errors, opError(rec.ID, run.OpPersist, err))
		return out
	}

	out.Succeeded = true
	return out
}

// computeMetrics runs the mention math for the brand and every competitor.
// When the consolidated result extracted product names they are merged into
// the matching profile before scanning.
func (s *Service) computeMetrics(rec *domain.RawAnswerRecord, cons domain.ConsolidatedAnalysisResult) []domain.MetricResult {
	profiles := s.entityProfiles()
	for i, p := range profiles {
		if ea, ok := cons.EntityByName(p.CanonicalName); ok {
			profiles[i] = p.WithProducts(ea.Products)
		}
	}

	totalWords := mention.CountWords(rec.AnswerText)
	sets := make([]mention.OccurrenceSet, len(profiles))
	allMentions := 0
	for i, p := range profiles {
		sets[i] = mention.FindOccurrences(rec.AnswerText, p)
		allMentions += sets[i].TotalMentions
	}

	out := make([]domain.MetricResult, len(profiles))
	for i, set := range sets {
		out[i] = domain.MetricResult{
			RecordID:        rec.ID,
			Entity:          profiles[i].CanonicalName,
			VisibilityIndex: mention.VisibilityIndex(set, totalWords),
			ShareOfAnswers:  mention.ShareOfAnswers(set.TotalMentions, allMentions-set.TotalMentions),
			FirstPosition:   set.FirstPosition(),
			TotalMentions:   set.TotalMentions,
		}
	}
	return out
}

func (s *Service) persist(
	ctx context.Context,
	rec *domain.RawAnswerRecord,
	metricResults []domain.MetricResult,
	sentiments []domain.SentimentResult,
	citations []domain.CitationCategory,
) error {
	for _, m := range metricResults {
		if err := s.results.SaveMetric(ctx, m); err != nil {
			return fmt.Errorf("save metric for %s/%s: %w", rec.ID, m.Entity, err)
		}
	}
	for _, sr := range sentiments {
		if err := s.results.SaveSentiment(ctx, sr); err != nil {
			return fmt.Errorf("save sentiment for %s/%s: %w", rec.ID, sr.Entity, err)
		}
	}
	if err := s.results.SaveCitations(ctx, rec.ID, citations); err != nil {
		return fmt.Errorf("save citations for %s: %w", rec.ID, err)
	}
	if err := s.answers.MarkProcessed(ctx, rec.ID); err != nil {
		return fmt.Errorf("mark %s processed: %w", rec.ID, err)
	}
	return nil
}

func (s *Service) entityProfiles() []domain.EntityProfile {
	profiles := make([]domain.EntityProfile, 0, 1+len(s.competitors))
	profiles = append(profiles, s.brand)
	profiles = append(profiles, s.competitors...)
	return profiles
}

// opError buckets an error into the reporting taxonomy.
func opError(recordID string, op run.Operation, err error) run.OperationError {
	return run.OperationError{
		RecordID:  recordID,
		Operation: op,
		Kind:      kindOf(err),
		Detail:    err.Error(),
	}
}

func kindOf(err error) run.ErrorKind {
	switch {
	case errors.Is(err, domain.ErrProviderUnavailable):
		return run.KindProviderUnavailable
	case errors.Is(err, domain.ErrMalformedResponse):
		return run.KindMalformedResponse
	case errors.Is(err, domain.ErrValidation):
		return run.KindValidation
	case errors.Is(err, domain.ErrProviderExhausted):
		return run.KindProviderExhausted
	default:
		return run.KindInternal
	}
}
