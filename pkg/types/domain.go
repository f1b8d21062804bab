package types

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Modality selects the route and the configured model for an inference call.
type Modality string

const (
	ModalityText  Modality = "text"
	ModalityImage Modality = "image"
	ModalityAudio Modality = "audio"
	ModalityPDF   Modality = "pdf"
)

// Modalities lists every supported modality in a stable order.
var Modalities = []Modality{ModalityText, ModalityImage, ModalityAudio, ModalityPDF}

// Valid reports whether m is one of the known modalities.
func (m Modality) Valid() bool {
	switch m {
	case ModalityText, ModalityImage, ModalityAudio, ModalityPDF:
		return true
	}
	return false
}

// ParseModality parses a case-insensitive modality name.
func ParseModality(s string) (Modality, error) {
	m := Modality(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("unknown modality: %q", s)
	}
	return m, nil
}

// InlineData is binary content embedded directly in an inference request.
// Data holds raw bytes; the provider SDK base64-encodes them on the wire.
type InlineData struct {
	MIMEType string
	Data     []byte
}

// Base64 returns the wire encoding of the data.
func (d InlineData) Base64() string { return base64.StdEncoding.EncodeToString(d.Data) }

// Part is one element of an inference payload: either text or inline data.
type Part struct {
	Text   string
	Inline *InlineData
}

// Payload is the ordered sequence of parts submitted in one inference call.
type Payload struct {
	Parts []Part
}

// TextPayload builds a payload holding a single text prompt.
func TextPayload(prompt string) Payload {
	return Payload{Parts: []Part{{Text: prompt}}}
}

// InlinePayload builds an instruction followed by one inline blob.
func InlinePayload(instruction, mimeType string, data []byte) Payload {
	return Payload{Parts: []Part{
		{Text: instruction},
		{Inline: &InlineData{MIMEType: mimeType, Data: data}},
	}}
}

// Result is the provider response. Every level is optional and must be
// checked before use.
type Result struct {
	Candidates []*Candidate
}

// Candidate is one generated alternative.
type Candidate struct {
	Content      *Content
	FinishReason string
}

// Content holds the parts of a candidate.
type Content struct {
	Parts []ResultPart
}

// ResultPart is a response fragment. Text is nil for non-text parts.
type ResultPart struct {
	Text *string
}

// TextPart is a helper for building results in adapters and tests.
func TextPart(s string) ResultPart { return ResultPart{Text: &s} }
