package call

import (
	"encoding/json"
	"net/http"

	"github.com/spandan3/sentiment-flow/internal/response"
)

// Handler holds HTTP handlers for call catalog endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new call Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type registerRequest struct {
	ObjectKey        string `json:"objectKey"        example:"calls/e7eedc79-0707-4fe4-8734-526b7ef13a7b.wav"`
	OriginalFilename string `json:"originalFilename" example:"recording.wav"`
}

// Register godoc
//
//	@Summary		Register an uploaded call
//	@Description	Creates a catalog row with status "uploaded" for an object key obtained from /uploads/presign. Registration is metadata-only; the object is not checked for existence.
//	@Tags			calls
//	@Accept			json
//	@Produce		json
//	@Param			request	body		registerRequest	true	"Object key and original filename"
//	@Success		201		{object}	response.Envelope{data=Call}
//	@Failure		400		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/calls/ [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if req.ObjectKey == "" {
		response.BadRequest(w, "objectKey is required")
		return
	}

	c, err := h.svc.Register(r.Context(), req.ObjectKey, req.OriginalFilename)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.Created(w, c)
}

// List godoc
//
//	@Summary		List registered calls
//	@Description	Returns all calls ordered by creation time, most recent first.
//	@Tags			calls
//	@Produce		json
//	@Success		200	{object}	response.Envelope{data=[]Call}
//	@Failure		500	{object}	response.Envelope
//	@Router			/calls/ [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	calls, err := h.svc.List(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, calls)
}
