package api

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pacahon/slideshare"
	"github.com/pacahon/slideshare/model"
	"github.com/pacahon/slideshare/service"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSlideShare struct {
	slide *slideshare.Slideshow
	links []service.Link
	err   error
}

func (f *fakeSlideShare) Fetch(ctx context.Context, url string) (*slideshare.Slideshow, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.slide, nil
}

func (f *fakeSlideShare) FetchImageLinks(ctx context.Context, url string) ([]service.Link, error) {
	return f.links, nil
}

type fakeStorage struct {
	uploaded map[string][]byte
}

func (f *fakeStorage) Upload(ctx context.Context, rc io.ReadCloser, fileName string) (string, error) {
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	if f.uploaded == nil {
		f.uploaded = map[string][]byte{}
	}
	f.uploaded[fileName] = data
	return "https://storage.googleapis.com/decks/" + fileName, nil
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 8, 6))))
	return buf.Bytes()
}

func newFileServer(t *testing.T) *httptest.Server {
	img := pngBytes(t)
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/download/56441607":
			w.Header().Set("Content-Type", "application/pdf")
			io.WriteString(w, "%PDF-1.4 original deck")
		case "/slide-1.png", "/slide-2.png":
			w.Header().Set("Content-Type", "image/png")
			w.Write(img)
		default:
			http.NotFound(w, r)
		}
	}))
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/slideshare/download", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp model.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Message
}

const deckRequest = `{"url": "https://www.slideshare.net/pacahon/deck"}`

func TestHandleSlideShareBadRequest(t *testing.T) {
	h := HandleSlideShare(&fakeSlideShare{}, &fakeStorage{}, Options{})

	for _, body := range []string{"", "{", `{"url": ""}`, `{"url": "ftp://x/y"}`} {
		rec := post(t, h, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
	}
}

func TestHandleSlideShareNotFound(t *testing.T) {
	h := HandleSlideShare(&fakeSlideShare{err: errors.Wrap(service.ErrNotFound, "x")}, &fakeStorage{}, Options{})

	rec := post(t, h, deckRequest)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleSlideShareDownload(t *testing.T) {
	files := newFileServer(t)
	defer files.Close()

	slide := &slideshare.Slideshow{
		ID:          56441607,
		Format:      "pdf",
		Download:    true,
		DownloadURL: files.URL + "/download/56441607",
	}

	t.Run("stream", func(t *testing.T) {
		h := HandleSlideShare(&fakeSlideShare{slide: slide}, &fakeStorage{}, Options{HTTPClient: files.Client()})

		rec := post(t, h, deckRequest)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "attachment; filename=56441607.pdf", rec.Header().Get("Content-Disposition"))
		assert.Equal(t, "56441607.pdf", rec.Header().Get("X-FileName"))
		assert.Equal(t, "%PDF-1.4 original deck", rec.Body.String())
	})

	t.Run("offload large file", func(t *testing.T) {
		storage := &fakeStorage{}
		h := HandleSlideShare(&fakeSlideShare{slide: slide}, storage, Options{HTTPClient: files.Client(), MaxFileSize: 4})

		rec := post(t, h, deckRequest)
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "https://storage.googleapis.com/decks/56441607.pdf", message(t, rec))
		assert.Equal(t, "%PDF-1.4 original deck", string(storage.uploaded["56441607.pdf"]))
	})
}

func TestHandleSlideShareDownloadForbidden(t *testing.T) {
	slide := &slideshare.Slideshow{ID: 1, Format: "pdf"}
	h := HandleSlideShare(&fakeSlideShare{slide: slide}, &fakeStorage{}, Options{CreatePDF: false})

	rec := post(t, h, deckRequest)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSlideShareCreatePDF(t *testing.T) {
	files := newFileServer(t)
	defer files.Close()

	fake := &fakeSlideShare{
		slide: &slideshare.Slideshow{ID: 7, Format: "ppt"},
		links: []service.Link{
			{Normal: files.URL + "/slide-1.png"},
			{Normal: files.URL + "/slide-2.png"},
		},
	}
	h := HandleSlideShare(fake, &fakeStorage{}, Options{CreatePDF: true, HTTPClient: files.Client()})

	rec := post(t, h, deckRequest)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "7.pdf", rec.Header().Get("X-FileName"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))

	t.Run("missing image", func(t *testing.T) {
		fake.links = append(fake.links, service.Link{Normal: files.URL + "/missing.png"})
		rec := post(t, h, deckRequest)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
