package metadata

import (
	"bytes"
	"io"

	"github.com/dhowden/tag"
	"github.com/tcolgate/mp3"
)

// AudioInfo is what can be sniffed from an uploaded audio payload.
type AudioInfo struct {
	Title       string
	Genre       string
	ContentType string
	// Duration in whole seconds; nil when the payload is not an mp3 or the
	// frames could not be walked.
	Duration *int
}

// Extractor sniffs uploaded audio payloads
type Extractor struct{}

// NewExtractor creates a new metadata extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract reads tags and, for mp3 payloads, the playing time. A payload the
// tag reader cannot identify yields an empty AudioInfo rather than an error:
// uploads are accepted on the caller's say-so, tags only enrich them.
func (e *Extractor) Extract(data []byte) AudioInfo {
	var info AudioInfo

	m, err := tag.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return info
	}

	info.Title = m.Title()
	info.Genre = m.Genre()
	info.ContentType = contentTypeFor(m.FileType())

	if m.FileType() == tag.MP3 {
		if d, ok := e.mp3Duration(bytes.NewReader(data)); ok {
			info.Duration = &d
		}
	}
	return info
}

// mp3Duration sums frame durations across the whole payload.
func (e *Extractor) mp3Duration(r io.Reader) (int, bool) {
	decoder := mp3.NewDecoder(r)

	var (
		frame   mp3.Frame
		skipped int
		total   float64
	)
	for {
		if err := decoder.Decode(&frame, &skipped); err != nil {
			if err == io.EOF {
				break
			}
			return 0, false
		}
		total += frame.Duration().Seconds()
	}
	if total <= 0 {
		return 0, false
	}
	return int(total), true
}

func contentTypeFor(ft tag.FileType) string {
	switch ft {
	case tag.MP3:
		return "audio/mpeg"
	case tag.FLAC:
		return "audio/flac"
	case tag.OGG:
		return "audio/ogg"
	case tag.M4A, tag.M4B, tag.M4P, tag.ALAC:
		return "audio/mp4"
	default:
		return ""
	}
}
