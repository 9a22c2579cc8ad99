package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/ironplan/internal/domain"
	"github.com/alexanderramin/ironplan/internal/repository"
	"github.com/alexanderramin/ironplan/internal/service"
	"github.com/alexanderramin/ironplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chatBlock = `JSON: {
  "Title": "Push Pull",
  "NumberOfWeeks": 2,
  "Days": [
    {"name": "Push", "exercises": [{"name": "Overhead Press", "sets": 1, "reps": 5}]},
    {"name": "Pull", "exercises": [{"name": "Chin Up", "sets": 1, "reps": 8}]}
  ]
}`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	database := testutil.NewTestDB(t)
	blocks := repository.NewSQLiteBlockRepo(database)
	sessions := repository.NewSQLiteSessionRepo(database)
	library := repository.NewSQLiteExerciseLibrary(database)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(
		service.NewBlockService(blocks, library, testutil.NewTestUoW(database), nil),
		service.NewRunService(blocks, sessions),
		log,
		WithWeightUnit("kg"),
	)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func createBlock(t *testing.T, s *Server) *domain.Block {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/api/v1/blocks", chatBlock)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[importResponse](t, rec).Block
}

func TestParse_DoesNotSave(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/v1/parse", chatBlock)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, "json_section", body["strategy"])

	rec = do(t, s, http.MethodGet, "/api/v1/blocks", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]*domain.Block](t, rec))
}

func TestParse_Errors(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/v1/parse", `JSON: {"Title": "Broken"`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode[map[string]string](t, rec)
	assert.Equal(t, "decode_failed", body["kind"])
	assert.NotEmpty(t, body["error"])

	rec = do(t, s, http.MethodPost, "/api/v1/parse?origin=fax", chatBlock)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestParse_RejectsOversizedBody(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/api/v1/parse", strings.Repeat("x", maxBodyBytes+1))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestBlocks_CreateGetListDelete(t *testing.T) {
	s := newTestServer(t)
	b := createBlock(t, s)
	assert.Equal(t, "Push Pull", b.Name)
	assert.NotEmpty(t, b.ID)

	rec := do(t, s, http.MethodGet, "/api/v1/blocks/"+b.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[domain.Block](t, rec)
	assert.Equal(t, 2, got.NumberOfWeeks)
	assert.Len(t, got.Days, 2)

	rec = do(t, s, http.MethodGet, "/api/v1/blocks", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]*domain.Block](t, rec), 1)

	rec = do(t, s, http.MethodDelete, "/api/v1/blocks/"+b.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/v1/blocks/"+b.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodDelete, "/api/v1/blocks/"+b.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWhiteboard_JSONAndText(t *testing.T) {
	s := newTestServer(t)
	b := createBlock(t, s)

	rec := do(t, s, http.MethodGet, "/api/v1/blocks/"+b.ID+"/whiteboard", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, "Push Pull", body["title"])
	assert.EqualValues(t, 2, body["weekCount"])

	rec = do(t, s, http.MethodGet, "/api/v1/blocks/"+b.ID+"/whiteboard?format=text", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, rec.Body.String(), "PUSH PULL")
	assert.Contains(t, rec.Body.String(), "loads in kg")
}

func TestRun_GetAndUpdateSet(t *testing.T) {
	s := newTestServer(t)
	b := createBlock(t, s)

	rec := do(t, s, http.MethodGet, "/api/v1/blocks/"+b.ID+"/run", "")
	require.Equal(t, http.StatusOK, rec.Code)
	run := decode[runResponse](t, rec)
	assert.Equal(t, 0, run.ActiveWeek)
	require.Len(t, run.Weeks, 2)
	require.Len(t, run.Weeks[0].Days, 2)

	rec = do(t, s, http.MethodPost, "/api/v1/blocks/"+b.ID+"/run/sets",
		`{"week": 0, "day": 0, "exercise": 0, "set": 0, "reps": 5, "weight": 40, "completed": true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[setUpdateResponse](t, rec)
	assert.Equal(t, "none", resp.Transition)
	assert.Nil(t, resp.Week)
	assert.True(t, resp.Set.IsCompleted)
	require.NotNil(t, resp.Set.Weight)
	assert.Equal(t, 40.0, *resp.Set.Weight)

	rec = do(t, s, http.MethodPost, "/api/v1/blocks/"+b.ID+"/run/sets",
		`{"week": 0, "day": 1, "exercise": 0, "set": 0, "completed": true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decode[setUpdateResponse](t, rec)
	assert.Equal(t, "week_complete", resp.Transition)
	require.NotNil(t, resp.Week)
	assert.Equal(t, 0, *resp.Week)

	rec = do(t, s, http.MethodGet, "/api/v1/blocks/"+b.ID+"/run", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[runResponse](t, rec).ActiveWeek)
}

func TestRun_UpdateSetErrors(t *testing.T) {
	s := newTestServer(t)
	b := createBlock(t, s)

	rec := do(t, s, http.MethodPost, "/api/v1/blocks/"+b.ID+"/run/sets", `{"week": 0, "day": 0, "exercise": 0, "set": 7}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/v1/blocks/"+b.ID+"/run/sets", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/v1/blocks/missing/run/sets", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/v1/blocks/missing/run", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRun_WeeksAddressedByBlockIndex(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/api/v1/blocks", `JSON: {"Title": "Gap", "Weeks": [
		[{"name": "A", "exercises": [{"name": "Squat", "sets": 1, "reps": 5}]}],
		[],
		[{"name": "B", "exercises": [{"name": "Row", "sets": 1, "reps": 8}]}]
	]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := decode[importResponse](t, rec).Block.ID

	rec = do(t, s, http.MethodGet, "/api/v1/blocks/"+id+"/run", "")
	require.Equal(t, http.StatusOK, rec.Code)
	run := decode[runResponse](t, rec)
	require.Len(t, run.Weeks, 2)
	assert.Equal(t, 2, run.Weeks[1].Index)

	rec = do(t, s, http.MethodPost, "/api/v1/blocks/"+id+"/run/sets", `{"week": 1, "day": 0, "exercise": 0, "set": 0, "completed": true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/v1/blocks/"+id+"/run/sets", `{"week": 2, "day": 0, "exercise": 0, "set": 0, "reps": 8, "completed": true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[setUpdateResponse](t, rec)
	assert.True(t, resp.Set.IsCompleted)
	require.NotNil(t, resp.Set.Reps)
	assert.Equal(t, 8, *resp.Set.Reps)
}

func TestBlocks_RejectsWeeksWithoutDays(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/api/v1/blocks", `JSON: {"Title": "Hollow", "Weeks": [[]]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "decode_failed", decode[map[string]string](t, rec)["kind"])
}

func TestRequestLogging(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	h := RequestLogging(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/blocks", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Contains(t, buf.String(), "path=/api/v1/blocks")
	assert.Contains(t, buf.String(), "status=418")
}

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	s := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
