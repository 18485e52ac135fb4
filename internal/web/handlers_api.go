package web

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/JonMunkholm/regions/internal/core"
)

// BulkDeleteRequest is the body of POST /api/regions/bulk-delete.
type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// BulkDeleteFailure is one failed id in a bulk delete response.
type BulkDeleteFailure struct {
	ID    string `json:"id"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

// BulkDeleteResponse reports every outcome of a bulk delete.
type BulkDeleteResponse struct {
	Requested int                 `json:"requested"`
	Deleted   []string            `json:"deleted"`
	Failed    []BulkDeleteFailure `json:"failed"`
}

func newBulkDeleteResponse(res core.BulkDeleteResult) BulkDeleteResponse {
	resp := BulkDeleteResponse{
		Requested: res.Requested,
		Deleted:   make([]string, 0, len(res.Deleted)),
		Failed:    make([]BulkDeleteFailure, 0, len(res.Failed)),
	}
	resp.Deleted = append(resp.Deleted, res.Deleted...)
	for _, f := range res.Failed {
		resp.Failed = append(resp.Failed, BulkDeleteFailure{
			ID:    f.ID,
			Code:  core.MapError(f.Err).Code,
			Error: f.Err.Error(),
		})
	}
	return resp
}

// handleAPIList returns every region, filtered by name when q is set.
func (s *Server) handleAPIList(w http.ResponseWriter, r *http.Request) {
	regions, err := s.service.List(requestContext(r))
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	regions = core.FilterByName(regions, r.URL.Query().Get("q"))
	if regions == nil {
		regions = []core.Region{}
	}
	writeJSON(w, http.StatusOK, regions)
}

func (s *Server) handleAPIGet(w http.ResponseWriter, r *http.Request) {
	region, err := s.service.Get(requestContext(r), regionID(r))
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, region)
}

// handleAPICreate inserts a region, generating its id when the body has none.
func (s *Server) handleAPICreate(w http.ResponseWriter, r *http.Request) {
	var in core.Region
	if err := decodeJSON(w, r, &in); err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}
	if in.ID == "" {
		in.ID = core.NewRegionID()
	}

	created, err := s.service.Create(requestContext(r), in)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	w.Header().Set("Location", "/api/regions/"+url.PathEscape(created.ID))
	writeJSON(w, http.StatusCreated, created)
}

// handleAPIUpdate replaces a region. The path id wins over any body id.
func (s *Server) handleAPIUpdate(w http.ResponseWriter, r *http.Request) {
	var in core.Region
	if err := decodeJSON(w, r, &in); err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}
	in.ID = regionID(r)

	updated, err := s.service.Update(requestContext(r), in)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleAPIDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Delete(requestContext(r), regionID(r)); err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAPIBulkDelete deletes every id in the body and reports each outcome.
// A partial failure is still a 200; the failures are in the body.
func (s *Server) handleAPIBulkDelete(w http.ResponseWriter, r *http.Request) {
	var req BulkDeleteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}
	if req.IDs == nil {
		respondError(w, r, errors.New("invalid request: ids is required"), http.StatusBadRequest)
		return
	}

	res := s.service.DeleteMany(requestContext(r), req.IDs)
	writeJSON(w, http.StatusOK, newBulkDeleteResponse(res))
}
