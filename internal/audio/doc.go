// Package audio writes and reads MP3 metadata.
//
// # ID3 Tagging
//
// Use the Tagger to write ID3 tags to a transcoded MP3 in place:
//
//	tagger := audio.NewTagger(logger)
//	embedded, err := tagger.Tag("Downloads/Imagine - John Lennon.mp3", query.TagRecord(cover))
//
// The tagger writes:
//   - Title, Artist, Album, Genre
//   - Cover Art (front cover, JPEG)
//
// Tags are always saved as ID3v2.3, which older players and car stereos
// still expect, with UTF-16 text frames. Tagging the same file twice with the same record yields
// the same tags.
//
// # Reading Tags Back
//
// Inspect reads the tags of a file independently of the writer, which
// is how the command-line front-end prints its final summary:
//
//	summary, err := audio.Inspect(path)
//	fmt.Println(summary)
package audio
