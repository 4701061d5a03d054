package cleanup

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/lucendex/phantomclear/internal/notion"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
	)
}

type fakeResult struct {
	resp *notion.Response
	err  error
}

type mockClient struct {
	results  map[string]fakeResult
	calls    []string
	property string
}

func (m *mockClient) ClearRichText(ctx context.Context, pageID, property string) (*notion.Response, error) {
	m.calls = append(m.calls, pageID)
	m.property = property
	if r, ok := m.results[pageID]; ok {
		return r.resp, r.err
	}
	return &notion.Response{StatusCode: http.StatusOK, Body: []byte(`{"object":"page"}`)}, nil
}

type recordingReporter struct {
	begun    []ClearTask
	results  []Result
	finished *Summary
}

func (r *recordingReporter) Begin(task ClearTask) { r.begun = append(r.begun, task) }
func (r *recordingReporter) Result(res Result) { r.results = append(r.results, res) }
func (r *recordingReporter) Finish(s Summary) { r.finished = &s }

func instantPacer(waits *int) *Pacer {
	p := NewPacer(DefaultDelay)
	p.after = func(time.Duration) <-chan time.Time {
		*waits++
		ch := make(chan time.Time, 1)
		ch <- time.Now()
		return ch
	}
	return p
}

func TestRunner_AllCleared(t *testing.T) {
	client := &mockClient{}
	reporter := &recordingReporter{}
	metrics := NewMetrics()
	waits := 0

	runner := NewRunner(client, instantPacer(&waits), reporter, metrics, zaptest.NewLogger(t))
	summary := runner.Run(context.Background(), PhantomTasks())

	assert.Equal(t, 11, summary.Cleared)
	assert.Equal(t, 11, summary.Total)
	assert.Equal(t, MotionTaskIDProperty, client.property)
	assert.Len(t, client.calls, 11)
	assert.Equal(t, 11, waits)

	assert.Len(t, reporter.begun, 11)
	require.NotNil(t, reporter.finished)
	assert.Equal(t, 11, reporter.finished.Cleared)

	assert.Equal(t, 11.0, testutil.ToFloat64(metrics.PagesTotal.WithLabelValues(string(OutcomeCleared))))
}

func TestRunner_ContinuesAfterFailures(t *testing.T) {
	tasks := PhantomTasks()
	longBody := strings.Repeat("x", 250)

	client := &mockClient{results: map[string]fakeResult{
		tasks[0].RecordID: {err: errors.New("dial tcp: connection refused")},
		tasks[3].RecordID: {resp: &notion.Response{StatusCode: http.StatusNotFound, Body: []byte(`{"object":"error","status":404,"code":"object_not_found","message":"gone"}`)}},
		tasks[7].RecordID: {resp: &notion.Response{StatusCode: http.StatusBadGateway, Body: []byte(longBody)}},
	}}
	reporter := &recordingReporter{}
	metrics := NewMetrics()
	waits := 0

	runner := NewRunner(client, instantPacer(&waits), reporter, metrics, zaptest.NewLogger(t))
	summary := runner.Run(context.Background(), tasks)

	assert.Len(t, client.calls, 11, "every record is attempted")
	assert.Equal(t, 11, waits, "pacer waits after failures too")
	assert.Equal(t, 8, summary.Cleared)
	assert.Equal(t, 11, summary.Total)

	first := summary.Results[0]
	assert.Equal(t, OutcomeError, first.Outcome)
	assert.EqualError(t, first.Err, "dial tcp: connection refused")

	notFound := summary.Results[3]
	assert.Equal(t, OutcomeFailed, notFound.Outcome)
	assert.Equal(t, http.StatusNotFound, notFound.StatusCode)

	gateway := summary.Results[7]
	assert.Equal(t, OutcomeFailed, gateway.Outcome)
	assert.Len(t, gateway.Snippet, SnippetLength)

	assert.Equal(t, 8.0, testutil.ToFloat64(metrics.PagesTotal.WithLabelValues(string(OutcomeCleared))))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.PagesTotal.WithLabelValues(string(OutcomeFailed))))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.PagesTotal.WithLabelValues(string(OutcomeError))))
}

func TestRunner_CountMatchesOKResponses(t *testing.T) {
	tasks := PhantomTasks()
	statuses := []int{200, 201, 200, 204, 400, 200, 429, 500, 200, 200, 409}

	results := make(map[string]fakeResult)
	wantCleared := 0
	for i, task := range tasks {
		results[task.RecordID] = fakeResult{resp: &notion.Response{StatusCode: statuses[i]}}
		if statuses[i] == http.StatusOK {
			wantCleared++
		}
	}

	waits := 0
	runner := NewRunner(&mockClient{results: results}, instantPacer(&waits), &recordingReporter{}, nil, nil)
	summary := runner.Run(context.Background(), tasks)

	assert.Equal(t, wantCleared, summary.Cleared)
	assert.LessOrEqual(t, summary.Cleared, summary.Total)
}

func TestRunner_StopsWhenContextDone(t *testing.T) {
	client := &mockClient{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(client, NewPacer(time.Hour), &recordingReporter{}, nil, nil)
	summary := runner.Run(ctx, PhantomTasks())

	assert.Len(t, client.calls, 1)
	assert.Equal(t, 11, summary.Total)
}

type notionFake struct {
	mu     sync.Mutex
	fields map[string]string
	bodies []string
}

func (f *notionFake) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		if r.Header.Get("Authorization") != "Bearer test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		buf := new(bytes.Buffer)
		if _, err := buf.ReadFrom(r.Body); err != nil {
			t.Errorf("read body: %v", err)
		}
		f.bodies = append(f.bodies, buf.String())

		pageID := strings.TrimPrefix(r.URL.Path, "/pages/")
		f.fields[pageID] = ""
		w.Write([]byte(`{"object":"page","id":"` + pageID + `"}`))
	}
}

func TestRunner_RerunIsIdempotent(t *testing.T) {
	fake := &notionFake{fields: make(map[string]string)}
	for _, task := range PhantomTasks() {
		fake.fields[task.RecordID] = task.StaleReferenceID
	}
	server := httptest.NewServer(fake.handler(t))
	defer server.Close()

	client := notion.NewClient("test-key",
		notion.WithBaseURL(server.URL),
		notion.WithHTTPClient(server.Client()))

	for run := 0; run < 2; run++ {
		waits := 0
		summary := NewRunner(client, instantPacer(&waits), &recordingReporter{}, nil, zaptest.NewLogger(t)).
			Run(context.Background(), PhantomTasks())
		assert.Equal(t, 11, summary.Cleared, "run %d", run+1)
	}

	for id, value := range fake.fields {
		assert.Empty(t, value, "page %s", id)
	}
	want := `{"properties":{"Motion Task ID":{"rich_text":[]}}}`
	require.Len(t, fake.bodies, 22)
	for _, body := range fake.bodies {
		assert.Equal(t, want, body)
	}
}

func TestSnippet(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "short", body: "oops", want: "oops"},
		{name: "exact", body: strings.Repeat("a", 100), want: strings.Repeat("a", 100)},
		{name: "truncated", body: strings.Repeat("b", 101), want: strings.Repeat("b", 100)},
		{name: "multibyte", body: strings.Repeat("é", 150), want: strings.Repeat("é", 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := snippet([]byte(tt.body)); got != tt.want {
				t.Errorf("snippet() = %q, want %q", got, tt.want)
			}
		})
	}
}
