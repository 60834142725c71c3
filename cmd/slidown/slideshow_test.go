package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/pacahon/slideshare"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const slideshowXML = `<?xml version="1.0" encoding="UTF-8"?>
<Slideshow>
  <ID>56441607</ID>
  <Title>Go at scale</Title>
  <Username>pacahon</Username>
  <URL>https://www.slideshare.net/pacahon/go-at-scale</URL>
  <Format>pdf</Format>
  <Download>1</Download>
  <DownloadUrl>https://cdn.slidesharecdn.com/go-at-scale.pdf</DownloadUrl>
  <Tags><Tag Count="1" Owner="1">golang</Tag></Tags>
</Slideshow>`

type apiStub struct {
	*httptest.Server
	last *http.Request
}

func newAPIStub(t *testing.T) *apiStub {
	stub := &apiStub{}
	stub.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.last = r
		switch r.URL.Path {
		case "/get_slideshow":
			io.WriteString(w, slideshowXML)
		case "/delete_slideshow":
			fmt.Fprintf(w, "<SlideShowDeleted><SlideShowID>%s</SlideShowID></SlideShowDeleted>", r.URL.Query().Get("slideshow_id"))
		case "/get_slideshows_by_tag":
			io.WriteString(w, `<Tag><Name>golang</Name><Count>1</Count>`+slideshowXML[len(`<?xml version="1.0" encoding="UTF-8"?>`):]+`</Tag>`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(stub.Close)
	return stub
}

func writeConfig(t *testing.T, baseURL, extra string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := fmt.Sprintf(`
slideshare:
  api_key: OX5YoPYg
  shared_secret: R3lITlTK
  base_url: %s
%s
logging:
  level: error
  format: json
`, baseURL, extra)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestGetCommand(t *testing.T) {
	stub := newAPIStub(t)
	cfg := writeConfig(t, stub.URL, "")

	out, err := execute(t, "--config", cfg, "get", "56441607", "--detailed")
	require.NoError(t, err)
	assert.Contains(t, out, "Go at scale (56441607)")
	assert.Contains(t, out, "Tags: golang")
	assert.Equal(t, "56441607", stub.last.URL.Query().Get("slideshow_id"))
	assert.Equal(t, "1", stub.last.URL.Query().Get("detailed"))

	out, err = execute(t, "--config", cfg, "--raw", "get", "https://www.slideshare.net/pacahon/go-at-scale")
	require.NoError(t, err)
	assert.Contains(t, out, "<Slideshow>")
	assert.Equal(t, "https://www.slideshare.net/pacahon/go-at-scale", stub.last.URL.Query().Get("slideshow_url"))
}

func TestTagCommand(t *testing.T) {
	stub := newAPIStub(t)
	cfg := writeConfig(t, stub.URL, "")

	out, err := execute(t, "--config", cfg, "tag", "golang", "--limit", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "golang: 1 slideshows")
	assert.Contains(t, out, "56441607 Go at scale")
	assert.Equal(t, "5", stub.last.URL.Query().Get("limit"))

	_, err = execute(t, "--config", cfg, "tag", "golang", "--limit", "abc")
	assert.ErrorIs(t, err, slideshare.ErrInvalidArgument)
}

func TestDeleteCommand(t *testing.T) {
	stub := newAPIStub(t)

	t.Run("configured user", func(t *testing.T) {
		cfg := writeConfig(t, stub.URL, "  username: pacahon\n  password: secret")
		out, err := execute(t, "--config", cfg, "delete", "42")
		require.NoError(t, err)
		assert.Equal(t, "deleted slideshow 42\n", out)
		assert.Equal(t, "pacahon", stub.last.URL.Query().Get("username"))
	})

	t.Run("missing credentials", func(t *testing.T) {
		stub.last = nil
		cfg := writeConfig(t, stub.URL, "")
		_, err := execute(t, "--config", cfg, "delete", "42")
		assert.ErrorIs(t, err, slideshare.ErrMissingCredentials)
		assert.Nil(t, stub.last)
	})

	t.Run("bad id", func(t *testing.T) {
		cfg := writeConfig(t, stub.URL, "")
		_, err := execute(t, "--config", cfg, "delete", "abc")
		assert.ErrorIs(t, err, slideshare.ErrInvalidArgument)
	})
}

func TestUploadCommandNeedsSource(t *testing.T) {
	stub := newAPIStub(t)
	cfg := writeConfig(t, stub.URL, "  username: pacahon\n  password: secret")

	_, err := execute(t, "--config", cfg, "upload", "Deck")
	assert.ErrorIs(t, err, slideshare.ErrInvalidArgument)
}
