package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/alexanderramin/ironplan/internal/cli/formatter"
	"github.com/alexanderramin/ironplan/internal/domain"
	"github.com/alexanderramin/ironplan/internal/importer"
	"github.com/alexanderramin/ironplan/internal/repository"
	"github.com/alexanderramin/ironplan/internal/runmode"
	"github.com/go-chi/chi/v5"
)

type importResponse struct {
	Block    *domain.Block     `json:"block"`
	Strategy importer.Strategy `json:"strategy"`
	Warnings []string          `json:"warnings,omitempty"`
	Linked   int               `json:"linked"`
}

type runResponse struct {
	BlockID string `json:"blockId"`
	Name    string `json:"name"`
	// ActiveWeek is a 0-based block week index.
	ActiveWeek int                   `json:"activeWeek"`
	Weeks      []domain.RunWeekState `json:"weeks"`
}

// setUpdateRequest addresses a set by 0-based block week index and 0-based
// day, exercise and set positions. Omitted value fields are left unchanged.
type setUpdateRequest struct {
	Week        int      `json:"week"`
	Day         int      `json:"day"`
	Exercise    int      `json:"exercise"`
	Set         int      `json:"set"`
	Reps        *int     `json:"reps"`
	Weight      *float64 `json:"weight"`
	Time        *int     `json:"time"`
	Distance    *float64 `json:"distance"`
	Calories    *float64 `json:"calories"`
	Rounds      *int     `json:"rounds"`
	RPE         *float64 `json:"rpe"`
	RIR         *float64 `json:"rir"`
	Tempo       *string  `json:"tempo"`
	RestSeconds *int     `json:"restSeconds"`
	Notes       *string  `json:"notes"`
	Completed   *bool    `json:"completed"`
}

func (req setUpdateRequest) ref(weekPos int) runmode.SetRef {
	return runmode.SetRef{
		ExerciseRef: runmode.ExerciseRef{Week: weekPos, Day: req.Day, Exercise: req.Exercise},
		Set:         req.Set,
	}
}

func (req setUpdateRequest) update() runmode.SetUpdate {
	return runmode.SetUpdate{
		Reps:        req.Reps,
		Weight:      req.Weight,
		Time:        req.Time,
		Distance:    req.Distance,
		Calories:    req.Calories,
		Rounds:      req.Rounds,
		RPE:         req.RPE,
		RIR:         req.RIR,
		Tempo:       req.Tempo,
		RestSeconds: req.RestSeconds,
		Notes:       req.Notes,
		Completed:   req.Completed,
	}
}

type setUpdateResponse struct {
	Transition string             `json:"transition"`
	Week       *int               `json:"week,omitempty"`
	Set        domain.RunSetState `json:"set"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	text, origin, ok := s.readImport(w, r)
	if !ok {
		return
	}
	imported, err := s.blocks.Parse(r.Context(), text, origin)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, imported)
}

func (s *Server) handleCreateBlock(w http.ResponseWriter, r *http.Request) {
	text, origin, ok := s.readImport(w, r)
	if !ok {
		return
	}
	res, err := s.blocks.ImportText(r.Context(), text, origin)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, importResponse{
		Block:    res.Block,
		Strategy: res.Strategy,
		Warnings: res.Warnings,
		Linked:   res.Linked,
	})
}

// readImport reads the raw request body as block text. The origin query
// parameter defaults to chat.
func (s *Server) readImport(w http.ResponseWriter, r *http.Request) (string, importer.Origin, bool) {
	origin, err := importer.ParseOrigin(r.URL.Query().Get("origin"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return "", "", false
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "reading body: " + err.Error()})
		return "", "", false
	}
	return string(data), origin, true
}

func (s *Server) handleListBlocks(w http.ResponseWriter, r *http.Request) {
	blocks, err := s.blocks.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if blocks == nil {
		blocks = []*domain.Block{}
	}
	writeJSON(w, http.StatusOK, blocks)
}

func (s *Server) handleGetBlock(w http.ResponseWriter, r *http.Request) {
	b, err := s.blocks.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleDeleteBlock(w http.ResponseWriter, r *http.Request) {
	if err := s.blocks.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleWhiteboard returns the unified block as JSON, or the rendered
// whiteboard with ?format=text.
func (s *Server) handleWhiteboard(w http.ResponseWriter, r *http.Request) {
	ub, err := s.blocks.Whiteboard(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, formatter.FormatWhiteboard(ub, s.weightUnit))
		return
	}
	writeJSON(w, http.StatusOK, ub)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.runs.Open(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, runResponse{
		BlockID:    run.Block().ID,
		Name:       run.Block().Name,
		ActiveWeek: run.WeekIndex(run.ActiveWeek()),
		Weeks:      run.Weeks(),
	})
}

func (s *Server) handleUpdateSet(w http.ResponseWriter, r *http.Request) {
	var req setUpdateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	ctx := r.Context()
	run, err := s.runs.Open(ctx, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	pos, err := run.WeekPosition(req.Week)
	if err != nil {
		s.writeError(w, err)
		return
	}
	ref := req.ref(pos)
	t, err := run.UpdateSet(ctx, ref, req.update())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := run.Close(ctx); err != nil {
		s.writeError(w, err)
		return
	}

	resp := setUpdateResponse{
		Transition: t.Kind.String(),
		Set:        run.Weeks()[ref.Week].Days[ref.Day].Exercises[ref.Exercise].Sets[ref.Set],
	}
	if t.Kind != runmode.TransitionNone {
		week := t.Week
		resp.Week = &week
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeError maps service errors to status codes. Parse failures carry
// their typed detail.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	if pe, ok := importer.AsParseError(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error":  pe.Error(),
			"kind":   string(pe.Kind),
			"decode": string(pe.Decode),
			"key":    pe.Key,
			"path":   pe.Path,
		})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, runmode.ErrOutOfRange), errors.Is(err, importer.ErrInvalidEncoding):
		status = http.StatusBadRequest
	case errors.Is(err, runmode.ErrNoRunnableWeeks):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, runmode.ErrSaveIntegrity):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
