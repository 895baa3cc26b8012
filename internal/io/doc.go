// Package ioutils provides file system and image helpers for tunefetch.
//
// # File Operations
//
//	err := ioutils.EnsureDir("/music/Downloads")
//	err := ioutils.WriteFile("/music/Album Covers/a.jpg", data)
//	ok, err := ioutils.NonEmptyFile("/music/Downloads/a.mp3")
//
// # Cover Images
//
// ImageService normalizes downloaded cover art to JPEG, the only picture
// format the tagger embeds:
//
//	svc := ioutils.NewImageService()
//	jpeg, err := svc.ToJPEG(data, 1000) // fit within 1000x1000
package ioutils
