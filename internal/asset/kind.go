package asset

import "fmt"

// Geometry is the target shape of an image kind. With Fill set the image is
// scaled and center-cropped to exactly Width×Height; otherwise it is only
// scaled down, keeping its aspect ratio, until it is at most Width wide.
type Geometry struct {
	Width  int
	Height int
	Fill   bool
	// MaxPixels caps the area of the resized image; zero means no cap.
	MaxPixels int64
}

// Kind describes one category of stored character asset. All kind-specific
// behavior is carried as data here.
type Kind struct {
	Name     string
	MaxBytes int64
	// Geometry is nil for kinds stored verbatim.
	Geometry *Geometry
	MimeType string
	// ReadProtected kinds require a bearer token to read, not only to write.
	ReadProtected bool
	noun          string
	missing       string
}

var (
	Token = Kind{
		Name:          "token",
		MaxBytes:      2 << 20,
		Geometry:      &Geometry{Width: 400, Height: 400, Fill: true},
		MimeType:      "image/webp",
		ReadProtected: true,
		noun:          "Images",
		missing:       "No token found",
	}
	Portrait = Kind{
		Name:          "portrait",
		MaxBytes:      5 << 20,
		Geometry:      &Geometry{Width: 1024, MaxPixels: 1024 * 4096},
		MimeType:      "image/webp",
		ReadProtected: true,
		noun:          "Images",
		missing:       "No portrait found",
	}
	JSON = Kind{
		Name:     "json",
		MaxBytes: 1 << 20,
		MimeType: "application/json",
		noun:     "JSON documents",
		missing:  "No json found",
	}
)

// Kinds returns the served asset kinds, with the json ceiling set to
// jsonMaxBytes.
func Kinds(jsonMaxBytes int64) []Kind {
	return []Kind{Token, Portrait, JSON.WithMaxBytes(jsonMaxBytes)}
}

// WithMaxBytes returns a copy of k with a different upload ceiling.
func (k Kind) WithMaxBytes(n int64) Kind {
	k.MaxBytes = n
	return k
}

// IsImage reports whether uploads of this kind are normalized images.
func (k Kind) IsImage() bool {
	return k.Geometry != nil
}

// TooLargeDetail is the message returned when an upload exceeds MaxBytes.
func (k Kind) TooLargeDetail() string {
	if k.MaxBytes >= 1<<20 && k.MaxBytes%(1<<20) == 0 {
		return fmt.Sprintf("%s must be <= %dMB", k.noun, k.MaxBytes>>20)
	}
	return fmt.Sprintf("%s must be <= %d bytes", k.noun, k.MaxBytes)
}

// MissingDetail is the message returned when a character has no asset of
// this kind.
func (k Kind) MissingDetail() string {
	return k.missing
}
