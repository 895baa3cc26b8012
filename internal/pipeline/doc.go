// Package pipeline runs one song request from search to tagged MP3.
//
// # Pipeline
//
// A run moves through fixed stages:
//
//	START → COVER_SEARCH → COVER_SELECT → VIDEO_SEARCH → VIDEO_SELECT → ACQUIRE → TAG → DONE
//
// Cover art is optional: no candidates, a skipped choice, an invalid
// choice or a failed download all continue without a cover. The video
// stages are not optional: no results end the run with OutcomeNoMatch,
// choice 0 with OutcomeExit, an invalid choice with OutcomeRetry, and a
// failed download with OutcomeAcquisitionFailed. A tagging failure keeps
// the untagged MP3 and ends with OutcomeTaggingFailed.
//
// # Basic Usage
//
//	p := pipeline.New(components, pipeline.Options{
//	    DownloadsDir: "Downloads",
//	    CoversDir:    "Album Covers",
//	}, func(event pipeline.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	result := p.Run(ctx, query, selector)
//
// # Selection
//
// Choices come from a Selector. Indices are 1-based and 0 means skip
// (cover) or exit (video). Interactive front-ends prompt a human;
// FixedSelector answers from preset values.
//
// Front-ends that cannot block inside a callback, such as the TUI, call
// the stage methods (ResolveCovers, FetchCover, Locate, Acquire, Tag)
// themselves and use ChooseCover and ChooseVideo to interpret input.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
package pipeline
