package chi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chirouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/brandlens/brandlens/internal/domain"
	"github.com/brandlens/brandlens/internal/domain/run"
	"github.com/brandlens/brandlens/internal/repository/results"
	scoringuc "github.com/brandlens/brandlens/internal/usecase/scoring"
)

type fakeRunner struct {
	lastReq scoringuc.BatchRequest
	report  run.Report
	err     error
}

func (f *fakeRunner) ProcessBatch(_ context.Context, req scoringuc.BatchRequest) (run.Report, error) {
	f.lastReq = req
	return f.report, f.err
}

type fakeReader struct {
	stored map[string]results.RecordResults
}

func (f *fakeReader) Get(_ context.Context, recordID string) (results.RecordResults, error) {
	r, ok := f.stored[recordID]
	if !ok {
		return results.RecordResults{}, fmt.Errorf("record %s: %w", recordID, domain.ErrNotFound)
	}
	return r, nil
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func newTestRouter(runner BatchRunner, reader ResultReader) http.Handler {
	r := chirouter.NewRouter()
	NewServer(runner, reader, okPinger{}, zap.NewNop()).Routes(r)
	return r
}

func TestTriggerRun(t *testing.T) {
	runner := &fakeRunner{report: run.Report{RunID: "run-1", Processed: 2, Succeeded: 2}}
	router := newTestRouter(runner, &fakeReader{})

	req := httptest.NewRequest("POST", "/v1/runs", strings.NewReader(`{"rerun": true}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if !runner.lastReq.Rerun {
		t.Error("rerun flag not forwarded")
	}

	var report run.Report
	if err := json.NewDecoder(rr.Body).Decode(&report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.RunID != "run-1" || report.Succeeded != 2 {
		t.Errorf("report = %+v", report)
	}
}

func TestTriggerRunEmptyBody(t *testing.T) {
	runner := &fakeRunner{report: run.Report{RunID: "run-1"}}
	router := newTestRouter(runner, &fakeReader{})

	req := httptest.NewRequest("POST", "/v1/runs", http.NoBody)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if runner.lastReq.Rerun {
		t.Error("empty body must default to rerun=false")
	}
}

func TestGetRecordMetrics(t *testing.T) {
	reader := &fakeReader{stored: map[string]results.RecordResults{
		"rec-1": {
			Metrics: []domain.MetricResult{{
				RecordID: "rec-1", Entity: "Acme", VisibilityIndex: 0.75, TotalMentions: 3, FirstPosition: 1,
			}},
			Sentiments: []domain.SentimentResult{
				domain.NewSentimentResult("rec-1", "Acme", 0, []string{}, nil),
			},
			Citations: []domain.CitationCategory{{
				Domain: "techcrunch.com", Category: domain.CategoryEditorial, Source: domain.SourceHardcoded,
			}},
		},
	}}
	router := newTestRouter(&fakeRunner{}, reader)

	req := httptest.NewRequest("GET", "/v1/records/rec-1/metrics", http.NoBody)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp struct {
		RecordID   string `json:"record_id"`
		Sentiments []struct {
			Score    float64 `json:"score"`
			Score100 int     `json:"score_100"`
			Label    string  `json:"label"`
		} `json:"sentiments"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.RecordID != "rec-1" || len(resp.Sentiments) != 1 {
		t.Fatalf("response = %+v", resp)
	}
	// Midpoint of the internal scale renders as 51 on the 1-100 scale.
	if got := resp.Sentiments[0]; got.Score != 0 || got.Score100 != 51 || got.Label != "NEUTRAL" {
		t.Errorf("sentiment view = %+v", got)
	}
}

func TestGetRecordMetricsNotFound(t *testing.T) {
	router := newTestRouter(&fakeRunner{}, &fakeReader{})

	req := httptest.NewRequest("GET", "/v1/records/missing/metrics", http.NoBody)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}

	var errResp errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Code != codeNotFound {
		t.Errorf("error code = %s, want %s", errResp.Code, codeNotFound)
	}
}
