package pipeline

import "github.com/handiism/tunefetch/internal/model"

// Outcome is how a run ended.
type Outcome int

const (
	// OutcomeDone means the MP3 was acquired and tagged.
	OutcomeDone Outcome = iota

	// OutcomeNoMatch means the video search returned nothing.
	OutcomeNoMatch

	// OutcomeRetry means the video choice was invalid.
	OutcomeRetry

	// OutcomeExit means the user chose 0 at the video stage.
	OutcomeExit

	// OutcomeAcquisitionFailed means no MP3 was produced.
	OutcomeAcquisitionFailed

	// OutcomeTaggingFailed means the MP3 exists but carries no new tags.
	OutcomeTaggingFailed

	// OutcomeInvalid means the query was rejected before any search.
	OutcomeInvalid
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDone:
		return "done"
	case OutcomeNoMatch:
		return "no match"
	case OutcomeRetry:
		return "retry"
	case OutcomeExit:
		return "exit"
	case OutcomeAcquisitionFailed:
		return "acquisition failed"
	case OutcomeTaggingFailed:
		return "tagging failed"
	case OutcomeInvalid:
		return "invalid query"
	default:
		return "unknown"
	}
}

// AsksAnother reports whether a front-end should ask "another song?" after
// this outcome. Invalid input, no match and retry go straight back to the
// prompts; exit stops.
func (o Outcome) AsksAnother() bool {
	switch o {
	case OutcomeDone, OutcomeAcquisitionFailed, OutcomeTaggingFailed:
		return true
	default:
		return false
	}
}

// Result describes a finished run.
type Result struct {
	Outcome Outcome
	Query   model.SearchQuery

	// Video is the chosen candidate, nil if none was chosen.
	Video *model.VideoCandidate

	// Cover is the embedded cover, nil if the run had none.
	Cover *model.CoverImage

	// Artifact is set whenever an MP3 was produced, including when tagging failed.
	Artifact *model.AudioArtifact

	// Err is the cause for failed outcomes.
	Err error
}
