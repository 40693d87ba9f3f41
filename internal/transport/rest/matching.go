package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/namematch-backend/internal/domain"
	"github.com/heartmarshall/namematch-backend/internal/service/matching"
)

type matchingService interface {
	Match(ctx context.Context, in matching.Input) (*matching.Result, error)
}

// MatchingHandler serves the name matching endpoint.
type MatchingHandler struct {
	svc matchingService
	log *slog.Logger
}

// NewMatchingHandler creates a MatchingHandler.
func NewMatchingHandler(svc matchingService, logger *slog.Logger) *MatchingHandler {
	return &MatchingHandler{svc: svc, log: logger.With("handler", "matching")}
}

type matchResponse struct {
	InputString  string       `json:"inputString"`
	SearchString string       `json:"searchString"`
	Match        *nameObject  `json:"match"`
	Candidates   []nameObject `json:"candidates"`
	Method       string       `json:"method"`
	Error        bool         `json:"error"`
	ErrorMessage string       `json:"errorMessage,omitempty"`
	Narrative    []string     `json:"narrative"`
}

type nameObject struct {
	ID                  string `json:"id"`
	FullNameStringPlain string `json:"fullNameStringPlain"`
	AuthorsString       string `json:"authorsString"`
	Rank                string `json:"rank"`
	Role                string `json:"role"`
	NomenclaturalStatus string `json:"nomenclaturalStatus"`
	Distance            *int   `json:"distance,omitempty"`
}

// Match handles GET /matching_rest. Without input_string it returns the help
// page. Flags are enabled only by the literal value "true".
func (h *MatchingHandler) Match(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("input_string") {
		writeDocs(w)
		return
	}

	in := matching.Input{
		InputString:   q.Get("input_string"),
		CheckHomonyms: q.Get("check_homonyms") == "true",
		CheckRank:     q.Get("check_rank") == "true",
	}

	res, err := h.svc.Match(r.Context(), in)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, toMatchResponse(res))
	case errors.Is(err, domain.ErrIndexUnavailable):
		w.Header().Set("Retry-After", "30")
		writeJSON(w, http.StatusServiceUnavailable, toMatchResponse(res))
	default:
		h.log.ErrorContext(r.Context(), "match failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func toMatchResponse(res *matching.Result) matchResponse {
	if res == nil {
		return matchResponse{Candidates: []nameObject{}, Narrative: []string{}}
	}

	out := matchResponse{
		InputString:  res.InputString,
		SearchString: res.SearchString,
		Candidates:   make([]nameObject, 0, len(res.Candidates)),
		Method:       res.Method.String(),
		Error:        res.Error,
		ErrorMessage: res.ErrorMessage,
		Narrative:    res.Narrative,
	}
	if out.Narrative == nil {
		out.Narrative = []string{}
	}

	if res.Match != nil {
		m := toNameObject(res.Match)
		out.Match = &m
	}

	approx := res.Method == domain.MatchMethodApproximate
	for _, c := range res.Candidates {
		obj := toNameObject(c.Entry)
		if approx {
			d := c.Distance
			obj.Distance = &d
		}
		out.Candidates = append(out.Candidates, obj)
	}
	return out
}

func toNameObject(e *domain.NameEntry) nameObject {
	return nameObject{
		ID:                  e.ID(),
		FullNameStringPlain: e.FullNameStringPlain(),
		AuthorsString:       e.AuthorsString(),
		Rank:                e.Rank().String(),
		Role:                e.Role().String(),
		NomenclaturalStatus: e.NomenclaturalStatus(),
	}
}
