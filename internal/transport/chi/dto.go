package chi

import (
	domcorpus "github.com/thesisdesk/titledex/internal/domain/corpus"
	"github.com/thesisdesk/titledex/internal/domain/title"
	checkuc "github.com/thesisdesk/titledex/internal/usecase/check"
	corpusuc "github.com/thesisdesk/titledex/internal/usecase/corpus"
)

// errorCode is the machine-readable error discriminator in error responses.
type errorCode string

const (
	codeBadRequest       errorCode = "bad_request"
	codeValidationFailed errorCode = "validation_failed"
	codeInvalidQuery     errorCode = "invalid_query"
	codeInvalidTopK      errorCode = "invalid_top_k"
	codeCorpusNotFound   errorCode = "corpus_not_found"
	codeUnauthorized     errorCode = "unauthorized"
	codeInternalError    errorCode = "internal_error"
)

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

type checkRequest struct {
	Title string `json:"title"`
	TopK  int    `json:"top_k,omitempty"`
}

type matchItem struct {
	Index    int               `json:"index"`
	Title    string            `json:"title"`
	Score    float64           `json:"score"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type checkResponse struct {
	Corpus         string      `json:"corpus"`
	CorpusRevision string      `json:"corpus_revision,omitempty"`
	CorpusSize     int         `json:"corpus_size"`
	BestScore      *float64    `json:"best_score,omitempty"`
	RiskTier       string      `json:"risk_tier,omitempty"`
	Matches        []matchItem `json:"matches"`
}

type titleItem struct {
	Title    string            `json:"title"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type replaceCorpusRequest struct {
	Titles []titleItem `json:"titles"`
}

type loadCorpusRequest struct {
	URL string `json:"url"`
}

type corpusResponse struct {
	Name      string `json:"name"`
	Size      int    `json:"size"`
	Revision  string `json:"revision"`
	UpdatedAt int64  `json:"updated_at"`
}

type corpusListResponse struct {
	Items []string `json:"items"`
}

type supervisorRow struct {
	Supervisor string `json:"supervisor"`
	Count      int    `json:"count"`
}

type statsResponse struct {
	TotalTitles         int             `json:"total_titles"`
	DistinctSupervisors int             `json:"distinct_supervisors"`
	ByProgram           map[string]int  `json:"by_program"`
	ByYear              map[string]int  `json:"by_year"`
	TopSupervisors      []supervisorRow `json:"top_supervisors"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func checkOutcomeToDTO(corpusName string, out checkuc.Outcome) checkResponse {
	matches := out.Report.Matches()
	items := make([]matchItem, len(matches))
	for i := range matches {
		items[i] = matchItem{
			Index:    matches[i].CorpusIndex(),
			Title:    matches[i].Title(),
			Score:    matches[i].Score(),
			Metadata: matches[i].Metadata(),
		}
	}

	resp := checkResponse{
		Corpus:         corpusName,
		CorpusRevision: out.CorpusRevision,
		CorpusSize:     out.CorpusSize,
		Matches:        items,
	}
	if best, ok := out.Report.BestScore(); ok {
		resp.BestScore = &best
		resp.RiskTier = string(out.Tier)
	}
	return resp
}

func corpusToDTO(c *domcorpus.Corpus) corpusResponse {
	return corpusResponse{
		Name:      c.Name(),
		Size:      c.Size(),
		Revision:  c.Revision(),
		UpdatedAt: c.UpdatedAt(),
	}
}

func statsToDTO(st corpusuc.Stats) statsResponse {
	rows := make([]supervisorRow, len(st.TopSupervisors))
	for i, r := range st.TopSupervisors {
		rows[i] = supervisorRow{Supervisor: r.Supervisor, Count: r.Count}
	}
	return statsResponse{
		TotalTitles:         st.TotalTitles,
		DistinctSupervisors: st.DistinctSupervisors,
		ByProgram:           st.ByProgram,
		ByYear:              st.ByYear,
		TopSupervisors:      rows,
	}
}

func titlesFromDTO(items []titleItem) ([]title.Title, error) {
	titles := make([]title.Title, len(items))
	for i, it := range items {
		t, err := title.New(it.Title, it.Metadata)
		if err != nil {
			return nil, err
		}
		titles[i] = t
	}
	return titles, nil
}
