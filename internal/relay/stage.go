package relay

import "genrelay/pkg/types"

// Stage parameterizes a two-call refinement run.
type Stage struct {
	Modality    types.Modality
	Instruction string
	// Cleanup prefixes the raw stage one text in the stage two prompt.
	Cleanup string
}

func (st Stage) cleanup(raw string) string { return st.Cleanup + "\n\n" + raw }

var (
	imageStage = Stage{
		Modality:    types.ModalityImage,
		Instruction: "Analyze this image and describe its contents briefly.",
		Cleanup:     "Tidy up the following description so it is clear, neat, and easy to read:",
	}
	audioStage = Stage{
		Modality:    types.ModalityAudio,
		Instruction: "Transcribe this audio into Indonesian-language text.",
		Cleanup:     "Tidy up the following transcript so it is clear, neat, and correctly punctuated:",
	}
)
