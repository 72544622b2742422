package payouts

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"leaderboard-payouts/core/reconcile"
	"leaderboard-payouts/feature/payouts/history"
	"leaderboard-payouts/feature/payouts/mapping"
	"leaderboard-payouts/feature/payouts/mee6"
	"leaderboard-payouts/feature/payouts/publish"
	"leaderboard-payouts/feature/payouts/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type fakeFetcher struct {
	mu     sync.Mutex
	boards map[string][]reconcile.Record
	errs   map[string]error
	calls  []string
}

func (f *fakeFetcher) Leaderboard(ctx context.Context, sourceID string) ([]reconcile.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, sourceID)
	if err := f.errs[sourceID]; err != nil {
		return nil, err
	}
	return f.boards[sourceID], nil
}

type fakePublisher struct {
	files []string
	err   error
}

func (p *fakePublisher) Publish(ctx context.Context, runID, filePath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if p.err != nil {
		return "", p.err
	}
	p.files = append(p.files, filepath.Base(filePath))
	return "reports/" + runID + "/" + filepath.Base(filePath), nil
}

type fakeHistory struct {
	saved []*history.Run
	err   error
}

func (h *fakeHistory) Save(ctx context.Context, run *history.Run) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if h.err != nil {
		return h.err
	}
	h.saved = append(h.saved, run)
	return nil
}

func (h *fakeHistory) Recent(ctx context.Context, limit int) ([]history.Run, error) {
	var runs []history.Run
	for _, r := range h.saved {
		runs = append(runs, *r)
	}
	return runs, h.err
}

var fixedNow = time.Date(2024, 6, 1, 18, 30, 15, 0, time.Local)

func staticMapping(m reconcile.Mapping) reconcile.LoadFunc {
	return func(ctx context.Context, key string) (reconcile.Mapping, error) {
		return m, nil
	}
}

func newTestService(t *testing.T, fetcher Fetcher, opts ...Option) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := Config{
		MappingPath:   filepath.Join(dir, "Usernames.xlsx"),
		OutputDir:     dir,
		UnmatchedFile: "NEWNAMES.xlsx",
		Sources:       "100:ISFL,200:DSFL",
	}
	base := []Option{
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { return "run-1" }),
	}
	svc, err := NewService(cfg, fetcher, zap.NewNop(), append(base, opts...)...)
	require.NoError(t, err)
	return svc, dir
}

func readUnmatched(t *testing.T, path string) []string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(report.UnmatchedSheet)
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, []string{report.UnmatchedHeader}, rows[0])

	var names []string
	for _, row := range rows[1:] {
		names = append(names, row[0])
	}
	return names
}

func TestService_Run_MixedMatch(t *testing.T) {
	fetcher := &fakeFetcher{boards: map[string][]reconcile.Record{
		"100": {{Identifier: "Alice", Level: 3}, {Identifier: "bob", Level: 5}},
	}}
	svc, dir := newTestService(t, fetcher, WithMappingLoader(staticMapping(reconcile.Mapping{"alice": "Alice A."})))

	rep, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "run-1", rep.RunID)
	assert.Equal(t, []string{"100", "200"}, fetcher.calls)
	assert.Equal(t, []string{"bob"}, rep.Unmatched)
	assert.False(t, rep.AllMatched())
	assert.Empty(t, rep.Diagnostics)

	require.Len(t, rep.Sources, 2)
	assert.False(t, rep.Sources[0].Skipped)
	assert.True(t, rep.Sources[1].Skipped)
	assert.Empty(t, rep.Sources[1].ReportPath)

	csvPath := filepath.Join(dir, "ISFLUsers_2024-06-01_18-30-15.csv")
	assert.Equal(t, csvPath, rep.Sources[0].ReportPath)
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, "Alice A.,300000\r\nbob,500000\r\n", string(data))

	matches, err := filepath.Glob(filepath.Join(dir, "DSFLUsers_*.csv"))
	require.NoError(t, err)
	assert.Empty(t, matches)

	assert.Equal(t, filepath.Join(dir, "NEWNAMES.xlsx"), rep.UnmatchedReport)
	assert.Equal(t, []string{"bob"}, readUnmatched(t, rep.UnmatchedReport))

	assert.Equal(t, RunSummary{SourcesProcessed: 1, SourcesSkipped: 1, Records: 2, Matched: 1, Unmatched: 1}, rep.Summary)
}

func TestService_Run_AllMatched(t *testing.T) {
	fetcher := &fakeFetcher{boards: map[string][]reconcile.Record{
		"100": {{Identifier: "ALICE", Level: 1}},
		"200": {{Identifier: "carol", Level: 2}},
	}}
	svc, dir := newTestService(t, fetcher, WithMappingLoader(staticMapping(reconcile.Mapping{"alice": "A", "carol": "C"})))

	rep, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, rep.AllMatched())
	assert.Empty(t, rep.UnmatchedReport)
	assert.NoFileExists(t, filepath.Join(dir, "NEWNAMES.xlsx"))
	assert.Len(t, rep.Files(), 2)
}

func TestService_Run_DuplicatesAcrossSources(t *testing.T) {
	fetcher := &fakeFetcher{boards: map[string][]reconcile.Record{
		"100": {{Identifier: "ghost", Level: 1}, {Identifier: "zed", Level: 1}},
		"200": {{Identifier: "ghost", Level: 4}},
	}}
	svc, _ := newTestService(t, fetcher, WithMappingLoader(staticMapping(reconcile.Mapping{})))

	rep, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"ghost", "zed", "ghost"}, rep.Unmatched)
	assert.Equal(t, []string{"ghost", "zed", "ghost"}, readUnmatched(t, rep.UnmatchedReport))
	assert.Equal(t, []string{"ghost", "zed"}, rep.Sources[0].Unmatched)
	assert.Equal(t, []string{"ghost"}, rep.Sources[1].Unmatched)
}

func TestService_Run_MalformedMapping(t *testing.T) {
	fetcher := &fakeFetcher{boards: map[string][]reconcile.Record{
		"100": {{Identifier: "alice", Level: 1}, {Identifier: "bob", Level: 2}},
	}}
	svc, dir := newTestService(t, fetcher)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Usernames.xlsx"), []byte("not a workbook"), 0o644))

	rep, err := svc.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, rep.Diagnostics, 1)
	assert.Equal(t, KindMappingLoad, rep.Diagnostics[0].Kind)
	assert.Equal(t, 0, rep.MappingEntries)
	assert.Equal(t, []string{"alice", "bob"}, rep.Unmatched)
}

func TestService_Run_RealWorkbook(t *testing.T) {
	fetcher := &fakeFetcher{boards: map[string][]reconcile.Record{
		"200": {{Identifier: "Alice", Level: 2}},
	}}
	svc, dir := newTestService(t, fetcher)

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Discord", "Desired"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"alice", "Alice A."}))
	require.NoError(t, f.SaveAs(filepath.Join(dir, "Usernames.xlsx")))
	require.NoError(t, f.Close())

	rep, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, rep.MappingEntries)
	assert.True(t, rep.AllMatched())

	data, err := os.ReadFile(rep.Sources[1].ReportPath)
	require.NoError(t, err)
	assert.Equal(t, "Alice A.,200000\r\n", string(data))
}

func TestService_Run_FetchErrorContinues(t *testing.T) {
	fetcher := &fakeFetcher{
		boards: map[string][]reconcile.Record{"200": {{Identifier: "dave", Level: 1}}},
		errs:   map[string]error{"100": mee6.ErrFetch},
	}
	svc, _ := newTestService(t, fetcher, WithMappingLoader(staticMapping(reconcile.Mapping{})))

	rep, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"100", "200"}, fetcher.calls)
	require.Len(t, rep.Diagnostics, 1)
	assert.Equal(t, Diagnostic{Kind: KindFetch, Source: "ISFL", Message: mee6.ErrFetch.Error()}, rep.Diagnostics[0])
	assert.True(t, rep.Sources[0].Skipped)
	assert.Equal(t, []string{"dave"}, rep.Unmatched)
}

func TestService_Run_WriteFailureKeepsUnmatched(t *testing.T) {
	fetcher := &fakeFetcher{boards: map[string][]reconcile.Record{
		"100": {{Identifier: "bob", Level: 5}},
	}}
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	cfg := Config{MappingPath: "unused", OutputDir: blocker, Sources: "100:ISFL"}
	svc, err := NewService(cfg, fetcher, zap.NewNop(), WithMappingLoader(staticMapping(reconcile.Mapping{})))
	require.NoError(t, err)

	rep, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"bob"}, rep.Unmatched)
	assert.Empty(t, rep.Sources[0].ReportPath)
	assert.Empty(t, rep.UnmatchedReport)
	require.Len(t, rep.Diagnostics, 2)
	assert.Equal(t, KindWrite, rep.Diagnostics[0].Kind)
	assert.Equal(t, "ISFL", rep.Diagnostics[0].Source)
	assert.Equal(t, KindWrite, rep.Diagnostics[1].Kind)
	assert.Empty(t, rep.Diagnostics[1].Source)
}

func TestService_Run_PublishAndHistory(t *testing.T) {
	fetcher := &fakeFetcher{boards: map[string][]reconcile.Record{
		"100": {{Identifier: "alice", Level: 1}, {Identifier: "bob", Level: 1}},
		"200": {{Identifier: "erin", Level: 3}},
	}}
	pub := &fakePublisher{}
	hist := &fakeHistory{}
	svc, _ := newTestService(t, fetcher,
		WithMappingLoader(staticMapping(reconcile.Mapping{"alice": "Alice"})),
		WithPublisher(pub),
		WithHistory(hist),
	)

	rep, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"ISFLUsers_2024-06-01_18-30-15.csv",
		"DSFLUsers_2024-06-01_18-30-15.csv",
		"NEWNAMES.xlsx",
	}, pub.files)
	assert.Len(t, rep.Published, 3)
	assert.Equal(t, "reports/run-1/NEWNAMES.xlsx", rep.Published[2])

	require.Len(t, hist.saved, 1)
	saved := hist.saved[0]
	assert.Equal(t, "run-1", saved.ID)
	assert.Equal(t, 2, saved.SourcesProcessed)
	assert.Equal(t, 3, saved.Records)
	assert.Equal(t, 2, saved.UnmatchedCount)
	assert.Equal(t, []history.UnmatchedName{
		{RunID: "run-1", SourcePrefix: "ISFL", Username: "bob", Position: 0},
		{RunID: "run-1", SourcePrefix: "DSFL", Username: "erin", Position: 1},
	}, saved.UnmatchedNames)

	runs, err := svc.Recent(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestService_Run_PublishAndHistoryFailuresAreDiagnostics(t *testing.T) {
	fetcher := &fakeFetcher{boards: map[string][]reconcile.Record{
		"100": {{Identifier: "alice", Level: 1}},
	}}
	svc, _ := newTestService(t, fetcher,
		WithMappingLoader(staticMapping(reconcile.Mapping{"alice": "Alice"})),
		WithPublisher(&fakePublisher{err: publish.ErrPublish}),
		WithHistory(&fakeHistory{err: history.ErrHistory}),
	)

	rep, err := svc.Run(context.Background())
	require.NoError(t, err)

	var kinds []DiagnosticKind
	for _, d := range rep.Diagnostics {
		kinds = append(kinds, d.Kind)
	}
	assert.Equal(t, []DiagnosticKind{KindPublish, KindHistory}, kinds)
	assert.Empty(t, rep.Published)
}

func TestService_Run_Canceled(t *testing.T) {
	fetcher := &fakeFetcher{}
	svc, _ := newTestService(t, fetcher, WithMappingLoader(staticMapping(reconcile.Mapping{})))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep, err := svc.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, rep)
	assert.Empty(t, fetcher.calls)
	require.Len(t, rep.Diagnostics, 1)
	assert.Equal(t, KindCanceled, rep.Diagnostics[0].Kind)
}

func TestService_Run_CanceledStillArchives(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fetcher := fetcherFunc(func(runCtx context.Context, sourceID string) ([]reconcile.Record, error) {
		// The caller gives up while the first source is in flight.
		cancel()
		<-runCtx.Done()
		return []reconcile.Record{{Identifier: "alice", Level: 2}, {Identifier: "bob", Level: 1}}, nil
	})
	pub := &fakePublisher{}
	hist := &fakeHistory{}
	svc, _ := newTestService(t, fetcher,
		WithMappingLoader(staticMapping(reconcile.Mapping{"alice": "Alice"})),
		WithPublisher(pub),
		WithHistory(hist),
	)

	rep, err := svc.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, rep)

	require.Len(t, rep.Diagnostics, 1)
	assert.Equal(t, KindCanceled, rep.Diagnostics[0].Kind)
	assert.Equal(t, "DSFL", rep.Diagnostics[0].Source)

	assert.Equal(t, []string{"ISFLUsers_2024-06-01_18-30-15.csv", "NEWNAMES.xlsx"}, pub.files)
	require.Len(t, hist.saved, 1)
	assert.Equal(t, 1, hist.saved[0].SourcesProcessed)
}

func TestService_Run_JoinedCallerOutlivesFirst(t *testing.T) {
	started := make(chan struct{}, 2)
	release := make(chan struct{})
	fetcher := fetcherFunc(func(ctx context.Context, sourceID string) ([]reconcile.Record, error) {
		started <- struct{}{}
		select {
		case <-release:
			return []reconcile.Record{{Identifier: "alice", Level: 1}}, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	})
	svc, _ := newTestService(t, fetcher, WithMappingLoader(staticMapping(reconcile.Mapping{"alice": "Alice"})))

	shortCtx, cancelShort := context.WithCancel(context.Background())
	defer cancelShort()

	type result struct {
		rep *RunReport
		err error
	}
	short := make(chan result, 1)
	long := make(chan result, 1)

	go func() {
		rep, err := svc.Run(shortCtx)
		short <- result{rep, err}
	}()
	<-started

	go func() {
		rep, err := svc.Run(context.Background())
		long <- result{rep, err}
	}()
	require.Eventually(t, func() bool {
		svc.mu.Lock()
		defer svc.mu.Unlock()
		return svc.inflight != nil && svc.inflight.waiters == 2
	}, time.Second, time.Millisecond)

	cancelShort()
	first := <-short
	assert.ErrorIs(t, first.err, context.Canceled)
	assert.Nil(t, first.rep)

	close(release)
	second := <-long
	require.NoError(t, second.err)
	require.NotNil(t, second.rep)
	assert.Empty(t, second.rep.Diagnostics)
	assert.Equal(t, 2, second.rep.Summary.SourcesProcessed)
	assert.Zero(t, second.rep.Summary.SourcesSkipped)
	for _, src := range second.rep.Sources {
		assert.False(t, src.Skipped, src.Prefix)
	}
}

func TestService_Run_Idempotent(t *testing.T) {
	fetcher := &fakeFetcher{boards: map[string][]reconcile.Record{
		"100": {{Identifier: "Alice", Level: 3}, {Identifier: "bob", Level: 5}},
		"200": {{Identifier: "bob", Level: 1}},
	}}
	svc, _ := newTestService(t, fetcher, WithMappingLoader(staticMapping(reconcile.Mapping{"alice": "Alice A."})))

	first, err := svc.Run(context.Background())
	require.NoError(t, err)
	second, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Unmatched, second.Unmatched)
	assert.Equal(t, first.Sources, second.Sources)
}

func TestService_Lookup(t *testing.T) {
	svc, _ := newTestService(t, &fakeFetcher{}, WithMappingLoader(staticMapping(reconcile.Mapping{"alice": "Alice A."})))

	res, err := svc.Lookup(context.Background(), "ALICE")
	require.NoError(t, err)
	assert.Equal(t, LookupResult{Identifier: "ALICE", DisplayName: "Alice A.", Matched: true}, res)

	res, err = svc.Lookup(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, LookupResult{Identifier: "bob", DisplayName: "bob", Matched: false}, res)
}

func TestService_Lookup_MappingError(t *testing.T) {
	svc, _ := newTestService(t, &fakeFetcher{})

	_, err := svc.Lookup(context.Background(), "alice")
	assert.ErrorIs(t, err, mapping.ErrLoad)
}

func TestService_Recent_Disabled(t *testing.T) {
	svc, _ := newTestService(t, &fakeFetcher{})
	_, err := svc.Recent(context.Background(), 5)
	assert.ErrorIs(t, err, ErrHistoryDisabled)
}

func TestNewService_Validation(t *testing.T) {
	_, err := NewService(Config{Sources: ""}, &fakeFetcher{}, nil)
	assert.Error(t, err)

	_, err = NewService(Config{Sources: "1:A"}, nil, nil)
	assert.Error(t, err)

	svc, err := NewService(Config{Sources: "1:A"}, &fakeFetcher{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []Source{{ID: "1", Prefix: "A"}}, svc.Sources())
}

func TestConfig_ParseSources(t *testing.T) {
	tests := []struct {
		name    string
		sources string
		want    []Source
		wantErr bool
	}{
		{
			name:    "Default",
			sources: "317388657994760194:ISFL,360525334472556544:DSFL",
			want:    []Source{{ID: "317388657994760194", Prefix: "ISFL"}, {ID: "360525334472556544", Prefix: "DSFL"}},
		},
		{
			name:    "Whitespace",
			sources: " 1 : A ,, 2:B ",
			want:    []Source{{ID: "1", Prefix: "A"}, {ID: "2", Prefix: "B"}},
		},
		{name: "MissingPrefix", sources: "1:", wantErr: true},
		{name: "MissingSeparator", sources: "123", wantErr: true},
		{name: "DuplicatePrefix", sources: "1:A,2:A", wantErr: true},
		{name: "Empty", sources: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Config{Sources: tt.sources}.ParseSources()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunSummary_String(t *testing.T) {
	s := RunSummary{SourcesProcessed: 2, SourcesSkipped: 0, Records: 5, Matched: 4, Unmatched: 1}
	assert.Equal(t, "2 sources processed, 0 skipped, 5 records, 4 matched, 1 unmatched", s.String())
}
