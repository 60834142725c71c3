package slideshare

import (
	"encoding/xml"
	"strings"
)

// Slideshow is the document returned by get_slideshow, and each entry of a
// tag search.
type Slideshow struct {
	XMLName           xml.Name `xml:"Slideshow"`
	ID                uint32   `xml:"ID"`
	Title             string   `xml:"Title"`
	Description       string   `xml:"Description"`
	Username          string   `xml:"Username"`
	Status            uint8    `xml:"Status"`
	URL               string   `xml:"URL"`
	ThumbnailURL      string   `xml:"ThumbnailURL"`
	ThumbnailSize     string   `xml:"ThumbnailSize"`
	ThumbnailSmallURL string   `xml:"ThumbnailSmallURL"`
	Embed             string   `xml:"Embed"`
	Created           string   `xml:"Created"`
	Updated           string   `xml:"Updated"`
	Language          string   `xml:"Language"`
	Format            string   `xml:"Format"`
	Download          bool     `xml:"Download"`
	DownloadURL       string   `xml:"DownloadUrl"`
	SlideshowType     uint8    `xml:"SlideshowType"`
	InContest         bool     `xml:"InContest"`

	// Present only for detailed requests.
	Tags       []Tag  `xml:"Tags>Tag"`
	Transcript string `xml:"Transcript"`
}

// TagNames returns the plain tag names of the slideshow.
func (s *Slideshow) TagNames() []string {
	names := make([]string, 0, len(s.Tags))
	for _, t := range s.Tags {
		if name := strings.TrimSpace(t.Name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Tag is a tag attached to a slideshow.
type Tag struct {
	Name  string `xml:",chardata"`
	Count int    `xml:"Count,attr"`
	Owner int    `xml:"Owner,attr"`
}

// TagResult is the document returned by get_slideshows_by_tag. Slideshows
// is a slice even when the service returns a single match.
type TagResult struct {
	XMLName    xml.Name    `xml:"Tag"`
	Name       string      `xml:"Name"`
	Count      int         `xml:"Count"`
	Slideshows []Slideshow `xml:"Slideshow"`
}

// SlideshowEdited acknowledges edit_slideshow.
type SlideshowEdited struct {
	XMLName     xml.Name `xml:"SlideShowEdited"`
	SlideshowID uint32   `xml:"SlideShowID"`
}

// SlideshowDeleted acknowledges delete_slideshow.
type SlideshowDeleted struct {
	XMLName     xml.Name `xml:"SlideShowDeleted"`
	SlideshowID uint32   `xml:"SlideShowID"`
}

// SlideshowUploaded acknowledges upload_slideshow. The id is needed to
// fetch the slideshow once the service has converted it.
type SlideshowUploaded struct {
	XMLName     xml.Name `xml:"SlideShowUploaded"`
	SlideshowID uint32   `xml:"SlideShowID"`
}
