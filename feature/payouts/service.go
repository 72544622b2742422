package payouts

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"leaderboard-payouts/core/reconcile"
	"leaderboard-payouts/feature/payouts/history"
	"leaderboard-payouts/feature/payouts/mapping"
	"leaderboard-payouts/feature/payouts/report"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrHistoryDisabled is returned by Recent when no history store is configured.
var ErrHistoryDisabled = errors.New("run history is disabled")

// finalizeTimeout bounds archival and persistence once the sources are done.
const finalizeTimeout = 30 * time.Second

// Fetcher returns the leaderboard of one source.
type Fetcher interface {
	Leaderboard(ctx context.Context, sourceID string) ([]reconcile.Record, error)
}

// Publisher archives a written report and returns its object key.
type Publisher interface {
	Publish(ctx context.Context, runID, filePath string) (string, error)
}

// HistoryStore persists completed runs.
type HistoryStore interface {
	Save(ctx context.Context, run *history.Run) error
	Recent(ctx context.Context, limit int) ([]history.Run, error)
}

// Service runs payout reconciliations.
type Service struct {
	cfg       Config
	sources   []Source
	fetcher   Fetcher
	mappings  *reconcile.MappingCache
	publisher Publisher
	history   HistoryStore
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string

	mu       sync.Mutex
	inflight *runCall
}

// runCall is a run shared by every caller that asked for it while it was in flight.
type runCall struct {
	done    chan struct{}
	cancel  context.CancelCauseFunc
	waiters int
	rep     *RunReport
	err     error
}

// Option configures optional Service collaborators.
type Option func(*Service)

// WithPublisher archives every written report.
func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithHistory persists every completed run.
func WithHistory(h HistoryStore) Option {
	return func(s *Service) {
		if h != nil {
			s.history = h
		}
	}
}

// WithMappingLoader replaces the xlsx mapping loader.
func WithMappingLoader(load reconcile.LoadFunc) Option {
	return func(s *Service) {
		if load != nil {
			s.mappings = reconcile.NewMappingCache(s.mappingTTL(), load)
		}
	}
}

// WithClock sets the time source used for report names and run timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator sets the run ID generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// NewService creates a payout service for the configured sources.
func NewService(cfg Config, fetcher Fetcher, logger *zap.Logger, opts ...Option) (*Service, error) {
	sources, err := cfg.ParseSources()
	if err != nil {
		return nil, err
	}
	if fetcher == nil {
		return nil, errors.New("payouts: fetcher is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Service{
		cfg:     cfg,
		sources: sources,
		fetcher: fetcher,
		logger:  logger,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	s.mappings = reconcile.NewMappingCache(s.mappingTTL(), mapping.Load)

	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Service) mappingTTL() time.Duration {
	return time.Duration(s.cfg.MappingCacheSeconds) * time.Second
}

// Sources returns the configured sources in processing order.
func (s *Service) Sources() []Source {
	out := make([]Source, len(s.sources))
	copy(out, s.sources)
	return out
}

// Run processes every source in order and writes the reports.
//
// Mapping, fetch, write, publish and history failures are recovered and recorded as
// diagnostics. The only error returned is the context's, when the run was cut short;
// the partial report is returned with it.
//
// Concurrent calls share a single run. The run is detached from any one caller and
// is canceled only once every caller waiting on it has gone. A caller that leaves
// while others still wait gets its own context error and no report.
func (s *Service) Run(ctx context.Context) (*RunReport, error) {
	s.mu.Lock()
	call := s.inflight
	if call == nil {
		call = s.startRun(ctx)
	} else {
		s.logger.Debug("Joined in-flight payout run")
	}
	call.waiters++
	s.mu.Unlock()

	select {
	case <-call.done:
		return call.rep, call.err
	case <-ctx.Done():
	}

	s.mu.Lock()
	call.waiters--
	last := call.waiters == 0
	s.mu.Unlock()

	if !last {
		return nil, ctx.Err()
	}
	call.cancel(context.Cause(ctx))
	<-call.done
	return call.rep, call.err
}

// startRun launches a run; s.mu must be held.
func (s *Service) startRun(ctx context.Context) *runCall {
	runCtx, cancel := context.WithCancelCause(context.WithoutCancel(ctx))
	if ctx.Err() != nil {
		cancel(context.Cause(ctx))
	}

	call := &runCall{done: make(chan struct{}), cancel: cancel}
	s.inflight = call

	go func() {
		defer close(call.done)
		call.rep, call.err = s.run(runCtx)
		cancel(nil)

		s.mu.Lock()
		if s.inflight == call {
			s.inflight = nil
		}
		s.mu.Unlock()
	}()
	return call
}

func (s *Service) run(ctx context.Context) (*RunReport, error) {
	rep := &RunReport{
		RunID:       s.newID(),
		StartedAt:   s.now(),
		Sources:     []SourceReport{},
		Unmatched:   []string{},
		Diagnostics: []Diagnostic{},
	}
	log := s.logger.With(zap.String("run_id", rep.RunID))

	log.Info("Loading username mappings", zap.String("path", s.cfg.MappingPath))
	table, err := s.mappings.Get(ctx, s.cfg.MappingPath)
	if err != nil {
		log.Error("Failed to load username mappings; every username will be unmatched", zap.Error(err))
		rep.addDiagnostic(KindMappingLoad, "", err)
	} else {
		log.Info("Username mappings loaded", zap.Int("entries", len(table)))
	}
	rep.MappingEntries = len(table)

	var runErr error
	for _, src := range s.sources {
		if ctx.Err() != nil {
			err := context.Cause(ctx)
			log.Warn("Run canceled before all sources were processed", zap.Error(err))
			rep.addDiagnostic(KindCanceled, src.Prefix, err)
			runErr = err
			break
		}
		rep.Sources = append(rep.Sources, s.processSource(ctx, log, rep, src, table))
	}

	if len(rep.Unmatched) > 0 {
		path, err := report.WriteUnmatchedReport(s.cfg.OutputDir, s.cfg.UnmatchedFile, rep.Unmatched)
		if err != nil {
			log.Error("Failed to write unmatched report", zap.Error(err))
			rep.addDiagnostic(KindWrite, "", err)
		} else {
			rep.UnmatchedReport = path
			log.Info("Unmatched usernames saved", zap.String("file", path), zap.Int("count", len(rep.Unmatched)))
		}
	} else {
		log.Info("All usernames have a match")
	}

	rep.summarize()

	// Reports written before a cancellation are still archived and recorded.
	finalCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), finalizeTimeout)
	defer cancel()
	s.publish(finalCtx, log, rep)
	rep.FinishedAt = s.now()
	s.persist(finalCtx, log, rep)

	log.Info("Payout run finished",
		zap.Int("sources_processed", rep.Summary.SourcesProcessed),
		zap.Int("sources_skipped", rep.Summary.SourcesSkipped),
		zap.Int("records", rep.Summary.Records),
		zap.Int("unmatched", rep.Summary.Unmatched),
		zap.Int("diagnostics", len(rep.Diagnostics)),
	)
	return rep, runErr
}

// processSource fetches, resolves and writes one source. Unmatched identifiers are
// accumulated into rep even when the CSV write fails.
func (s *Service) processSource(ctx context.Context, log *zap.Logger, rep *RunReport, src Source, table reconcile.Mapping) SourceReport {
	sr := SourceReport{Source: src, Unmatched: []string{}}
	log = log.With(zap.String("source", src.Prefix), zap.String("source_id", src.ID))

	log.Info("Fetching leaderboard")
	records, err := s.fetcher.Leaderboard(ctx, src.ID)
	if err != nil {
		log.Error("Failed to fetch leaderboard", zap.Error(err))
		rep.addDiagnostic(KindFetch, src.Prefix, err)
	}
	if len(records) == 0 {
		log.Info("No data to save")
		sr.Skipped = true
		return sr
	}

	result := reconcile.Resolve(records, table)
	sr.Records = len(records)
	sr.Matched, _ = result.Summary()
	sr.Unmatched = result.Unmatched
	rep.Unmatched = append(rep.Unmatched, result.Unmatched...)

	path, err := report.WriteSourceReport(s.cfg.OutputDir, src.Prefix, result.Resolved, s.now())
	if err != nil {
		log.Error("Failed to save CSV", zap.Error(err))
		rep.addDiagnostic(KindWrite, src.Prefix, err)
		return sr
	}
	sr.ReportPath = path
	log.Info("Data saved", zap.String("file", path), zap.Int("rows", len(result.Resolved)), zap.Int("unmatched", len(result.Unmatched)))
	return sr
}

func (s *Service) publish(ctx context.Context, log *zap.Logger, rep *RunReport) {
	if s.publisher == nil {
		return
	}
	for _, file := range rep.Files() {
		key, err := s.publisher.Publish(ctx, rep.RunID, file)
		if err != nil {
			log.Warn("Failed to archive report", zap.String("file", file), zap.Error(err))
			rep.addDiagnostic(KindPublish, "", err)
			continue
		}
		rep.Published = append(rep.Published, key)
	}
}

func (s *Service) persist(ctx context.Context, log *zap.Logger, rep *RunReport) {
	if s.history == nil {
		return
	}
	if err := s.history.Save(ctx, rep.historyRun()); err != nil {
		log.Warn("Failed to record run history", zap.Error(err))
		rep.addDiagnostic(KindHistory, "", err)
	}
}

// Lookup resolves a single identifier against the current mapping.
func (s *Service) Lookup(ctx context.Context, identifier string) (LookupResult, error) {
	table, err := s.mappings.Get(ctx, s.cfg.MappingPath)
	if err != nil {
		return LookupResult{}, err
	}
	res := reconcile.Resolve([]reconcile.Record{{Identifier: identifier}}, table)
	return LookupResult{
		Identifier:  identifier,
		DisplayName: res.Resolved[0].DisplayName,
		Matched:     res.Resolved[0].Matched,
	}, nil
}

// Recent lists the latest persisted runs.
func (s *Service) Recent(ctx context.Context, limit int) ([]history.Run, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	return s.history.Recent(ctx, limit)
}

func (r *RunReport) addDiagnostic(kind DiagnosticKind, source string, err error) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Kind: kind, Source: source, Message: err.Error()})
}

func (r *RunReport) summarize() {
	sum := RunSummary{Unmatched: len(r.Unmatched)}
	for _, s := range r.Sources {
		if s.Skipped {
			sum.SourcesSkipped++
			continue
		}
		sum.SourcesProcessed++
		sum.Records += s.Records
		sum.Matched += s.Matched
	}
	r.Summary = sum
}

func (r *RunReport) historyRun() *history.Run {
	run := &history.Run{
		ID:               r.RunID,
		StartedAt:        r.StartedAt,
		FinishedAt:       r.FinishedAt,
		SourcesProcessed: r.Summary.SourcesProcessed,
		SourcesSkipped:   r.Summary.SourcesSkipped,
		Records:          r.Summary.Records,
		UnmatchedCount:   r.Summary.Unmatched,
	}
	position := 0
	for _, s := range r.Sources {
		for _, name := range s.Unmatched {
			run.UnmatchedNames = append(run.UnmatchedNames, history.UnmatchedName{
				RunID:        r.RunID,
				SourcePrefix: s.Prefix,
				Username:     name,
				Position:     position,
			})
			position++
		}
	}
	return run
}

// String renders a one-line summary for console output.
func (r RunSummary) String() string {
	return fmt.Sprintf("%d sources processed, %d skipped, %d records, %d matched, %d unmatched",
		r.SourcesProcessed, r.SourcesSkipped, r.Records, r.Matched, r.Unmatched)
}
