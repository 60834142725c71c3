package slideshare

import "io"

// Bool returns a pointer to b, for the optional flags of the options structs.
func Bool(b bool) *bool {
	return &b
}

// String returns a pointer to s.
func String(s string) *string {
	return &s
}

// GetSlideshowOptions selects the slideshow to fetch and what to include.
// ID takes precedence over URL; one of them is required.
type GetSlideshowOptions struct {
	ID  int
	URL string

	// Username and Password of the requesting user, falling back to the
	// client defaults. Sent only when both resolve.
	Username string
	Password string

	ExcludeTags *bool
	// Detailed includes optional information such as tags.
	Detailed *bool
	// GetTranscript returns the transcript; the service also needs Detailed.
	GetTranscript *bool
}

// TagOptions page through the slideshows carrying a tag.
// Limit and Offset accept ints or numeric strings. Limit defaults to 10.
type TagOptions struct {
	Limit    interface{}
	Offset   interface{}
	Detailed *bool
}

// Privacy holds the privacy flags shared by edit and upload.
type Privacy struct {
	// MakeSrcPublic lets users download the source file. Defaults to true.
	MakeSrcPublic        *bool
	MakeSlideshowPrivate bool

	// These require MakeSlideshowPrivate.
	GenerateSecretURL bool
	AllowEmbeds       bool
	ShareWithContacts bool
}

// EditOptions change an existing slideshow. Username and Password fall back
// to the client defaults and must resolve.
type EditOptions struct {
	Username    string
	Password    string
	Title       string
	Description *string
	// Tags are sent comma separated. A single pre-joined element is sent as is.
	Tags []string
	Privacy
}

// DeleteOptions carry the owner credentials of the slideshow being deleted.
type DeleteOptions struct {
	Username string
	Password string
}

// File is an in-memory upload source. Name is only used for its extension.
type File struct {
	Name string
	Body io.Reader
}

// UploadOptions describe the deck to upload. A local source (SrcFile or Src)
// takes precedence over UploadURL.
type UploadOptions struct {
	SrcFile   string
	Src       *File
	UploadURL string

	// Username and Password of the account receiving the upload, falling
	// back to the client defaults. They need not belong to the api key owner.
	Username string
	Password string

	Description string
	Tags        []string
	Privacy
}
