package upload

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/spandan3/sentiment-flow/internal/response"
	"github.com/spandan3/sentiment-flow/internal/storage"
)

// Handler holds HTTP handlers for upload endpoints.
type Handler struct {
	coord    *Coordinator
	selector *storage.Selector
}

// NewHandler creates a new upload Handler.
func NewHandler(coord *Coordinator, selector *storage.Selector) *Handler {
	return &Handler{coord: coord, selector: selector}
}

type presignRequest struct {
	Filename    string `json:"filename"    example:"recording.wav"`
	ContentType string `json:"contentType" example:"audio/wav"`
}

type presignResponse struct {
	UploadURL string `json:"uploadUrl" example:"https://bucket.s3.amazonaws.com/calls/..."`
	ObjectKey string `json:"objectKey" example:"calls/e7eedc79-0707-4fe4-8734-526b7ef13a7b.wav"`
}

type localUploadResponse struct {
	Status    string `json:"status"    example:"stored"`
	ObjectKey string `json:"objectKey" example:"calls/e7eedc79-0707-4fe4-8734-526b7ef13a7b.wav"`
	Path      string `json:"path"      example:"storage/calls/e7eedc79-0707-4fe4-8734-526b7ef13a7b.wav"`
}

type storageModeResponse struct {
	Mode storage.Mode `json:"mode" example:"local"`
}

// Presign godoc
//
//	@Summary		Request an upload destination
//	@Description	Mints a unique object key for the file and returns where to send the bytes: a presigned S3 PUT URL in remote mode, or a local upload endpoint path in local mode.
//	@Tags			uploads
//	@Accept			json
//	@Produce		json
//	@Param			request	body		presignRequest	true	"Filename and content type"
//	@Success		200		{object}	response.Envelope{data=presignResponse}
//	@Failure		400		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/uploads/presign [post]
func (h *Handler) Presign(w http.ResponseWriter, r *http.Request) {
	var req presignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if req.Filename == "" {
		response.BadRequest(w, "filename is required")
		return
	}

	objectKey, dest, err := h.coord.RequestUpload(r.Context(), req.Filename, req.ContentType)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not issue upload destination")
		return
	}

	response.OK(w, presignResponse{
		UploadURL: dest.UploadURL(),
		ObjectKey: objectKey,
	})
}

// UploadLocal godoc
//
//	@Summary		Upload bytes through the service (local mode)
//	@Description	Accepts the raw file body and persists it under the local storage root at the path derived from the object key. Re-uploading the same key overwrites the previous bytes.
//	@Tags			uploads
//	@Accept			octet-stream
//	@Produce		json
//	@Param			objectKey	path		string	true	"Object key, e.g. calls/<uuid>.wav"
//	@Success		200			{object}	response.Envelope{data=localUploadResponse}
//	@Failure		400			{object}	response.Envelope
//	@Failure		404			{object}	response.Envelope
//	@Failure		500			{object}	response.Envelope
//	@Router			/uploads/local/{objectKey} [post]
func (h *Handler) UploadLocal(w http.ResponseWriter, r *http.Request) {
	local, ok := h.selector.Local()
	if !ok {
		response.NotFound(w, "local uploads are disabled in remote storage mode")
		return
	}

	objectKey := chi.URLParam(r, "*")
	if objectKey == "" {
		response.BadRequest(w, "object key is required")
		return
	}

	path, err := local.Persist(objectKey, r.Body)
	if errors.Is(err, storage.ErrPersist) {
		response.Error(w, http.StatusInternalServerError, "could not persist file")
		return
	}
	if err != nil {
		response.BadRequest(w, "invalid object key")
		return
	}

	response.OK(w, localUploadResponse{
		Status:    "stored",
		ObjectKey: objectKey,
		Path:      path,
	})
}

// StorageMode godoc
//
//	@Summary		Report the active storage mode
//	@Description	Returns "remote" when presigned S3 uploads are configured, "local" when files are stored on the server's disk. Fixed for the lifetime of the process.
//	@Tags			uploads
//	@Produce		json
//	@Success		200	{object}	response.Envelope{data=storageModeResponse}
//	@Router			/uploads/storage-mode [get]
func (h *Handler) StorageMode(w http.ResponseWriter, r *http.Request) {
	response.OK(w, storageModeResponse{Mode: h.selector.Mode()})
}
