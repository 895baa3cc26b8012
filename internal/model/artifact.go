package model

const (
	// AudioFormat is the only container produced by the acquirer.
	AudioFormat = "mp3"

	// AudioBitrateKbps is the fixed transcode bitrate.
	AudioBitrateKbps = 192

	// CoverMIMEType is the MIME type cover art is embedded with.
	CoverMIMEType = "image/jpeg"
)

// AudioArtifact is a transcoded audio file on disk.
//
// An AudioArtifact only exists after a successful transcode. The tagger
// mutates the file in place; the artifact is never copied.
type AudioArtifact struct {
	FilePath    string
	Format      string
	BitrateKbps int
}

// NewAudioArtifact returns the artifact descriptor for a finished MP3.
func NewAudioArtifact(path string) *AudioArtifact {
	return &AudioArtifact{
		FilePath:    path,
		Format:      AudioFormat,
		BitrateKbps: AudioBitrateKbps,
	}
}

// CoverImage holds downloaded cover art between download and embedding.
//
// Path is where the image was saved. Data may be nil, in which case the
// tagger reads Path.
type CoverImage struct {
	Path     string
	Data     []byte
	MIMEType string
}

// TagRecord is the metadata written into an artifact.
type TagRecord struct {
	Title  string
	Artist string
	Album  string
	Genre  string

	// Cover is optional; nil means no embedded picture.
	Cover *CoverImage
}
