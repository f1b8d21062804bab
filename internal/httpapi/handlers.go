package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"genrelay/internal/relay"
	"genrelay/pkg/types"
)

// handleText answers a plain message.
//
// @Summary      Generate text
// @Description  Answers a message briefly.
// @Tags         generate
// @Accept       json
// @Produce      json
// @Param        body  body      types.TextRequest  true  "Prompt"
// @Success      200   {object}  types.ReplyResponse
// @Failure      400   {object}  types.ErrorResponse
// @Failure      500   {object}  types.ErrorResponse
// @Router       /generate-text [post]
func handleText(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var req types.TextRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				writeJSONError(w, http.StatusRequestEntityTooLarge, msgTooLarge, "")
				return
			}
			writeJSONError(w, http.StatusBadRequest, msgInvalidMessage, "")
			return
		}
		if req.Message == "" {
			writeJSONError(w, http.StatusBadRequest, msgInvalidMessage, "")
			return
		}
		respond(w, r, func(ctx context.Context) (string, error) { return svc.Text(ctx, req.Message) })
	}
}

// handleUpload reads the multipart "file" field and passes it to fn.
//
// @Summary      Analyze an uploaded file
// @Description  /generate-image and /generate-audio run a raw pass and a cleanup pass; /generate-pdf summarizes in one pass.
// @Tags         generate
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Image, audio or PDF file"
// @Success      200   {object}  types.ReplyResponse
// @Failure      400   {object}  types.ErrorResponse
// @Failure      413   {object}  types.ErrorResponse
// @Failure      500   {object}  types.ErrorResponse
// @Router       /generate-image [post]
// @Router       /generate-audio [post]
// @Router       /generate-pdf [post]
func handleUpload(fn func(context.Context, *relay.Upload) (string, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, status, msg := readUpload(w, r)
		if status != 0 {
			writeJSONError(w, status, msg, "")
			return
		}
		uploadBytes.WithLabelValues(routePatternOrPath(r)).Observe(float64(len(u.Data)))
		respond(w, r, func(ctx context.Context) (string, error) { return fn(ctx, u) })
	}
}

// readUpload returns a non-zero status when the request carries no usable file.
func readUpload(w http.ResponseWriter, r *http.Request) (*relay.Upload, int, string) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, http.StatusRequestEntityTooLarge, msgTooLarge
		}
		return nil, http.StatusBadRequest, msgNoFile
	}
	defer r.MultipartForm.RemoveAll()
	f, hdr, err := r.FormFile("file")
	if err != nil {
		return nil, http.StatusBadRequest, msgNoFile
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, http.StatusBadRequest, msgNoFile
	}
	return &relay.Upload{
		Filename: hdr.Filename,
		MIMEType: hdr.Header.Get("Content-Type"),
		Data:     data,
	}, 0, ""
}

// respond runs one pipeline and writes exactly one JSON response.
func respond(w http.ResponseWriter, r *http.Request, run func(context.Context) (string, error)) {
	ctx, cancel := inferContext(r.Context())
	defer cancel()
	out, err := run(ctx)
	if err != nil {
		// Client went away; nobody is left to read the response.
		if r.Context().Err() != nil {
			return
		}
		status, msg := statusFor(err)
		detail := ""
		if status == http.StatusInternalServerError {
			detail = err.Error()
			if detail == "" {
				detail = "unknown error"
			}
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("inference failed")
		}
		writeJSONError(w, status, msg, detail)
		return
	}
	writeJSON(w, http.StatusOK, types.ReplyResponse{Reply: out})
}

// handleModels reports the model configured for each modality.
//
// @Summary  List configured models
// @Tags     meta
// @Produce  json
// @Success  200  {object}  types.ModelsResponse
// @Router   /models [get]
func handleModels(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.ModelsResponse{Models: svc.ModelInfo()})
	}
}
