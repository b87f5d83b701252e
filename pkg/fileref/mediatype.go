package fileref

import "strings"

// MediaType classifies the coarse content category of a reference.
type MediaType string

const (
	MediaFile  MediaType = "file"
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// MediaTypeOf maps a MIME type to its media category using the primary
// component (the part before "/"): "image" and "video" get their own
// categories, everything else including an absent MIME type is a
// generic file.
func MediaTypeOf(mimeType string) MediaType {
	primary, _, _ := strings.Cut(NormalizeMIME(mimeType), "/")
	switch primary {
	case "image":
		return MediaImage
	case "video":
		return MediaVideo
	default:
		return MediaFile
	}
}

// Media returns the derived media category.
func (r *Ref) Media() MediaType {
	return r.media
}

// IsImage reports whether the MIME type classifies as an image.
func (r *Ref) IsImage() bool {
	return r.media == MediaImage
}

// IsVideo reports whether the MIME type classifies as a video.
func (r *Ref) IsVideo() bool {
	return r.media == MediaVideo
}

// IsFile reports whether the reference is a generic file, neither image
// nor video. Exactly one of IsImage, IsVideo and IsFile is true for any
// reference.
func (r *Ref) IsFile() bool {
	return r.media == MediaFile
}
