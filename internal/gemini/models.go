package gemini

import (
	"fmt"

	"genrelay/pkg/types"
)

// DefaultModel is used for any modality left unset.
const DefaultModel = "gemini-1.5-flash"

// ModelSet maps each modality to a Gemini model identifier.
type ModelSet struct {
	Text  string `json:"text" yaml:"text" toml:"text" env:"TEXT"`
	Image string `json:"image" yaml:"image" toml:"image" env:"IMAGE"`
	Audio string `json:"audio" yaml:"audio" toml:"audio" env:"AUDIO"`
	PDF   string `json:"pdf" yaml:"pdf" toml:"pdf" env:"PDF"`
}

// DefaultModels returns the deployment default: one model for all modalities.
func DefaultModels() ModelSet {
	return ModelSet{Text: DefaultModel, Image: DefaultModel, Audio: DefaultModel, PDF: DefaultModel}
}

// WithDefaults fills empty entries with DefaultModel.
func (s ModelSet) WithDefaults() ModelSet {
	for _, p := range []*string{&s.Text, &s.Image, &s.Audio, &s.PDF} {
		if *p == "" {
			*p = DefaultModel
		}
	}
	return s
}

// For returns the model id configured for m.
func (s ModelSet) For(m types.Modality) (string, error) {
	var id string
	switch m {
	case types.ModalityText:
		id = s.Text
	case types.ModalityImage:
		id = s.Image
	case types.ModalityAudio:
		id = s.Audio
	case types.ModalityPDF:
		id = s.PDF
	default:
		return "", fmt.Errorf("unknown modality: %q", m)
	}
	if id == "" {
		return "", fmt.Errorf("no model configured for %s", m)
	}
	return id, nil
}

// Map returns the set keyed by modality.
func (s ModelSet) Map() map[types.Modality]string {
	return map[types.Modality]string{
		types.ModalityText:  s.Text,
		types.ModalityImage: s.Image,
		types.ModalityAudio: s.Audio,
		types.ModalityPDF:   s.PDF,
	}
}
