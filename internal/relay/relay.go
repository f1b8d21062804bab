// Package relay composes inference calls into the per-route pipelines.
package relay

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"genrelay/internal/gemini"
	"genrelay/internal/reply"
	"genrelay/pkg/types"
)

// Validation errors. Both are returned before any remote call.
var (
	ErrEmptyMessage = errors.New("message is missing or has an invalid format")
	ErrNoFile       = errors.New("no file was uploaded")
)

const (
	textSuffix = "\n\nAnswer briefly, clearly, and neatly."

	pdfInstruction = "Summarize the contents of this PDF document so it is clear, neat, and easy to understand."
)

// Upload is a file received from a client.
type Upload struct {
	Filename string
	MIMEType string
	Data     []byte
}

// mimeType falls back to content sniffing when the client sent no type.
func (u Upload) mimeType() string {
	if u.MIMEType != "" && u.MIMEType != "application/octet-stream" {
		return u.MIMEType
	}
	return http.DetectContentType(u.Data)
}

// ModelLister is implemented by generators that can report their model mapping.
type ModelLister interface {
	Models() gemini.ModelSet
}

// Service runs the pipelines. It holds no per-request state.
type Service struct {
	gen gemini.Generator
}

// New returns a Service backed by gen.
func New(gen gemini.Generator) *Service { return &Service{gen: gen} }

// ModelInfo reports the modality to model mapping, if the generator exposes it.
func (s *Service) ModelInfo() map[types.Modality]string {
	if ml, ok := s.gen.(ModelLister); ok {
		return ml.Models().Map()
	}
	return nil
}

// Text answers a plain message in one call.
func (s *Service) Text(ctx context.Context, message string) (string, error) {
	if message == "" {
		return "", ErrEmptyMessage
	}
	return s.once(ctx, types.ModalityText, types.TextPayload(message+textSuffix))
}

// PDF summarizes a document in one call. The MIME type is not checked.
func (s *Service) PDF(ctx context.Context, u *Upload) (string, error) {
	if u == nil {
		return "", ErrNoFile
	}
	return s.once(ctx, types.ModalityPDF, types.InlinePayload(pdfInstruction, u.mimeType(), u.Data))
}

// Image describes an image, then tidies the description.
func (s *Service) Image(ctx context.Context, u *Upload) (string, error) {
	if u == nil {
		return "", ErrNoFile
	}
	return s.refine(ctx, imageStage, u)
}

// Audio transcribes a recording, then fixes its punctuation.
func (s *Service) Audio(ctx context.Context, u *Upload) (string, error) {
	if u == nil {
		return "", ErrNoFile
	}
	return s.refine(ctx, audioStage, u)
}

func (s *Service) once(ctx context.Context, m types.Modality, p types.Payload) (string, error) {
	res, err := s.gen.Generate(ctx, m, p)
	if err != nil {
		return "", err
	}
	return reply.Extract(res), nil
}

// refine runs the raw multimodal call followed by the text cleanup call.
// A stage one failure skips stage two.
func (s *Service) refine(ctx context.Context, st Stage, u *Upload) (string, error) {
	log := zerolog.Ctx(ctx).With().Str("pipeline_id", uuid.NewString()).Str("modality", string(st.Modality)).Logger()

	start := time.Now()
	raw, err := s.once(ctx, st.Modality, types.InlinePayload(st.Instruction, u.mimeType(), u.Data))
	if err != nil {
		return "", err
	}
	log.Debug().Dur("dur", time.Since(start)).Int("raw_len", len(raw)).Msg("refine stage 1 done")

	start = time.Now()
	out, err := s.once(ctx, types.ModalityText, types.TextPayload(st.cleanup(raw)))
	if err != nil {
		return "", err
	}
	log.Debug().Dur("dur", time.Since(start)).Msg("refine stage 2 done")
	return out, nil
}
