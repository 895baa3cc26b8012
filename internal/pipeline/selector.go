package pipeline

import (
	"context"
	"errors"

	"github.com/handiism/tunefetch/internal/model"
)

// ErrInvalidSelection is returned for a choice outside the offered list.
var ErrInvalidSelection = errors.New("invalid selection")

// Selector asks for a choice among candidates.
//
// Both methods return a 1-based index into the list, or 0 to skip the
// cover or to exit at the video stage. Any error, or an index outside
// 0..len, is treated as an invalid selection.
type Selector interface {
	SelectCover(ctx context.Context, candidates []model.ImageCandidate) (int, error)
	SelectVideo(ctx context.Context, candidates []model.VideoCandidate) (int, error)
}

// FixedSelector answers every prompt with preset choices.
type FixedSelector struct {
	Cover int
	Video int
}

func (s FixedSelector) SelectCover(context.Context, []model.ImageCandidate) (int, error) {
	return s.Cover, nil
}

func (s FixedSelector) SelectVideo(context.Context, []model.VideoCandidate) (int, error) {
	return s.Video, nil
}

// ChooseCover maps a cover choice to a candidate. Zero returns nil with
// no error.
func ChooseCover(choice int, candidates []model.ImageCandidate) (*model.ImageCandidate, error) {
	if choice == 0 {
		return nil, nil
	}
	if choice < 0 || choice > len(candidates) {
		return nil, ErrInvalidSelection
	}
	return &candidates[choice-1], nil
}

// ChooseVideo maps a video choice to a candidate. Zero returns nil with
// no error and means the user wants to stop.
func ChooseVideo(choice int, candidates []model.VideoCandidate) (*model.VideoCandidate, error) {
	if choice == 0 {
		return nil, nil
	}
	if choice < 0 || choice > len(candidates) {
		return nil, ErrInvalidSelection
	}
	return &candidates[choice-1], nil
}
