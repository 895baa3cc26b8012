// Package acquire turns a playback URL into an MP3 file on disk.
//
// Acquisition has three stages:
//
//  1. resolve: a StreamResolver picks the best audio-only stream for the URL
//  2. transcode: a Transcoder pipes that stream through ffmpeg into a
//     192 kbps MP3 at the output path
//  3. verify: the output must exist and be non-empty
//
// Every failure is reported as an *Error naming the stage. A failed
// acquisition leaves no output file behind.
//
// # Basic Usage
//
//	acq := acquire.NewAcquirer(
//	    acquire.NewYouTubeResolver(nil),
//	    acquire.NewFFmpeg("/usr/bin/ffmpeg"),
//	    logger,
//	)
//	artifact, err := acq.Acquire(ctx, "https://www.youtube.com/watch?v=...", "Downloads/Imagine - John Lennon.mp3")
package acquire
