package slideshare

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const slideshowXML = `<?xml version="1.0" encoding="UTF-8"?>
<Slideshow>
  <ID>56441607</ID>
  <Title>Python SlideShare API</Title>
  <Description>test deck</Description>
  <Username>pacahon</Username>
  <Status>2</Status>
  <URL>https://www.slideshare.net/pacahon/python-slideshare-api</URL>
  <Format>pdf</Format>
  <Download>1</Download>
  <DownloadUrl>https://www.slideshare.net/download/56441607</DownloadUrl>
  <Tags>
    <Tag Count="1" Owner="1">test1</Tag>
    <Tag Count="3" Owner="1">test2</Tag>
  </Tags>
</Slideshow>`

const notFoundXML = `<?xml version="1.0" encoding="UTF-8"?>
<SlideShareServiceError>
  <Message ID="9">SlideShow Not Found</Message>
</SlideShareServiceError>`

func tagXML(slideshows ...string) string {
	doc := `<Tag><Name>crisis</Name><Count>120</Count>`
	for _, s := range slideshows {
		doc += `<Slideshow><ID>` + s + `</ID><Title>deck ` + s + `</Title></Slideshow>`
	}
	return doc + `</Tag>`
}

func TestParseServiceError(t *testing.T) {
	resp, err := Parse([]byte(notFoundXML))
	assert.Nil(t, resp)

	var svcErr *ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, 9, svcErr.Code)
	assert.Equal(t, "SlideShow Not Found", svcErr.Message)
	assert.True(t, svcErr.IsNotFound())
	assert.False(t, svcErr.IsAuthFailure())
}

func TestParseMalformed(t *testing.T) {
	for _, body := range []string{"", "<Slideshow><ID>1</Slideshow>", "not xml"} {
		_, err := Parse([]byte(body))
		var decodeErr *DecodeError
		assert.True(t, errors.As(err, &decodeErr), "body %q", body)

		var svcErr *ServiceError
		assert.False(t, errors.As(err, &svcErr))
	}
}

func TestParseDocument(t *testing.T) {
	resp, err := Parse([]byte(slideshowXML))
	require.NoError(t, err)

	assert.Equal(t, "Slideshow", resp.Root())
	slideshow, ok := resp.Map["Slideshow"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "56441607", slideshow["ID"])
	assert.Equal(t, "56441607", resp.Value("Slideshow.ID"))
	assert.Equal(t, "", resp.Value("Slideshow.Missing"))
	assert.Len(t, resp.List("Slideshow.Tags.Tag"), 2)
}

func TestListNormalizesCardinality(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
	}{
		{"none", nil},
		{"one", []string{"1"}},
		{"many", []string{"1", "2", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := Parse([]byte(tagXML(tt.ids...)))
			require.NoError(t, err)
			assert.Len(t, resp.List("Tag.Slideshow"), len(tt.ids))

			var result TagResult
			require.NoError(t, resp.Decode(&result))
			assert.Equal(t, "crisis", result.Name)
			assert.Equal(t, 120, result.Count)
			require.Len(t, result.Slideshows, len(tt.ids))
			for i, id := range tt.ids {
				assert.Equal(t, "deck "+id, result.Slideshows[i].Title)
			}
		})
	}
}

func TestDecodeSlideshow(t *testing.T) {
	resp, err := Parse([]byte(slideshowXML))
	require.NoError(t, err)

	var s Slideshow
	require.NoError(t, resp.Decode(&s))
	assert.Equal(t, uint32(56441607), s.ID)
	assert.True(t, s.Download)
	assert.Equal(t, "pdf", s.Format)
	assert.ElementsMatch(t, []string{"test1", "test2"}, s.TagNames())
	assert.Equal(t, 3, s.Tags[1].Count)
}

func TestDecodeWrongDocument(t *testing.T) {
	resp, err := Parse([]byte(slideshowXML))
	require.NoError(t, err)

	var result TagResult
	err = resp.Decode(&result)
	var decodeErr *DecodeError
	assert.True(t, errors.As(err, &decodeErr))
}
