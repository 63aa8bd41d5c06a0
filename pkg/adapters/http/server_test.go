package http

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/tasklist"
	"github.com/aretw0/tasklist/pkg/adapters/memory"
	"github.com/aretw0/tasklist/pkg/domain"
	"github.com/aretw0/tasklist/pkg/ports"
	"github.com/aretw0/tasklist/pkg/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	*memory.Store
}

func (failingStore) Save(context.Context, string, []byte) error {
	return errors.New("read-only filesystem")
}

func newTestServer(t *testing.T, store ports.SnapshotStore) (*Server, http.Handler) {
	t.Helper()
	srv := NewServer()
	s, err := tasklist.Open(context.Background(),
		tasklist.WithStore(store),
		tasklist.WithConfirmer(ports.AlwaysConfirm),
		tasklist.WithOnChange(srv.Publish),
	)
	require.NoError(t, err)
	return srv, srv.Handler(s)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func create(t *testing.T, h http.Handler, text string) domain.Record {
	t.Helper()
	w := do(t, h, http.MethodPost, "/api/tasks", `{"text":`+strconv.Quote(text)+`}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var rec domain.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	return rec
}

func TestAPI_Lifecycle(t *testing.T) {
	_, h := newTestServer(t, memory.NewStore())

	milk := create(t, h, "  Buy milk ")
	assert.Equal(t, "Buy milk", milk.Text)
	assert.False(t, milk.Done)
	create(t, h, "Walk dog")

	w := do(t, h, http.MethodPost, "/api/tasks/"+strconv.FormatInt(milk.ID, 10)+"/toggle", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"done":true`)

	w = do(t, h, http.MethodGet, "/api/tasks?q=DOG", "")
	require.Equal(t, http.StatusOK, w.Code)
	var m view.Model
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	require.Len(t, m.Items, 1)
	assert.Equal(t, "Walk dog", m.Items[0].Text)
	assert.Equal(t, domain.Counts{Total: 2, Pending: 1, Completed: 1}, m.Counts)

	w = do(t, h, http.MethodDelete, "/api/tasks/completed", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"removed":1}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/api/stats", "")
	assert.JSONEq(t, `{"total":1,"pending":1,"completed":0,"degraded":false}`, w.Body.String())

	w = do(t, h, http.MethodDelete, "/api/tasks", "")
	assert.JSONEq(t, `{"removed":1}`, w.Body.String())

	w = do(t, h, http.MethodDelete, "/api/tasks", "")
	assert.JSONEq(t, `{"removed":0}`, w.Body.String(), "clearing an empty list is a no-op")
}

func TestAPI_Errors(t *testing.T) {
	_, h := newTestServer(t, memory.NewStore())

	w := do(t, h, http.MethodPost, "/api/tasks", `{"text":"   "}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), tasklist.NoticeEmptyText)

	w = do(t, h, http.MethodPost, "/api/tasks", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPost, "/api/tasks", `{"text":"`+strings.Repeat("a", 5000)+`"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPost, "/api/tasks/abc/toggle", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPost, "/api/tasks/42/toggle", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodDelete, "/api/tasks/42", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPI_Delete(t *testing.T) {
	_, h := newTestServer(t, memory.NewStore())
	rec := create(t, h, "Temporary")

	w := do(t, h, http.MethodDelete, "/api/tasks/"+strconv.FormatInt(rec.ID, 10), "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, http.MethodGet, "/api/stats", "")
	assert.Contains(t, w.Body.String(), `"total":0`)
}

func TestPage_EscapesText(t *testing.T) {
	_, h := newTestServer(t, memory.NewStore())
	create(t, h, `<script>alert("x")</script>`)

	w := do(t, h, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "&lt;script&gt;")
	assert.NotContains(t, body, `<script>alert("x")</script>`)

	w = do(t, h, http.MethodGet, "/?q=nothing", "")
	assert.Contains(t, w.Body.String(), view.EmptyPlaceholder)
}

func TestHealthAndDegraded(t *testing.T) {
	_, h := newTestServer(t, failingStore{memory.NewStore()})

	w := do(t, h, http.MethodGet, "/health", "")
	assert.Contains(t, w.Body.String(), `"status":"ok"`)

	create(t, h, "Only in memory")

	w = do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"degraded"`)

	w = do(t, h, http.MethodGet, "/metrics", "")
	assert.Contains(t, w.Body.String(), "tasklist_degraded 1")
	assert.Contains(t, w.Body.String(), `tasklist_mutations_total{op="add",result="applied"} 1`)
	assert.Contains(t, w.Body.String(), `tasklist_tasks{state="pending"} 1`)
}

func TestSubscribeEvents(t *testing.T) {
	srv, h := newTestServer(t, memory.NewStore())
	ts := httptest.NewServer(h)
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: ping\n", line)
	assert.Equal(t, 1, srv.Streams.Len())

	create(t, h, "Pushed")

	for {
		line, err = reader.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "data: {") {
			break
		}
	}
	var m view.Model
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(strings.TrimSpace(line), "data: ")), &m))
	require.Len(t, m.Items, 1)
	assert.Equal(t, "Pushed", m.Items[0].Text)
}
