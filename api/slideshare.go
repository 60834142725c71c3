package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/pacahon/slideshare/library/log"
	"github.com/pacahon/slideshare/service"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const (
	defaultMaxFileSize     = 29360128 // 28MB
	defaultDownloadTimeout = 60 * time.Second
	imageConcurrency       = 4
)

// Options tune the download handler. Zero values fall back to defaults.
type Options struct {
	CreatePDF       bool
	MaxFileSize     int64
	DownloadTimeout time.Duration
	HTTPClient      *http.Client
}

func HandleSlideShare(slideshare service.SlideShareService, storage service.Storage, opts Options) http.Handler {
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = defaultMaxFileSize
	}
	if opts.DownloadTimeout <= 0 {
		opts.DownloadTimeout = defaultDownloadTimeout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	return &SlideShareHandler{
		slideshare: slideshare,
		storage:    storage,
		opts:       opts,
	}
}

type SlideShareHandler struct {
	slideshare service.SlideShareService
	storage    service.Storage
	opts       Options
}

func (h *SlideShareHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, err := parseFrom(r)
	if err != nil {
		log.Infof(ctx, "failed to parse request : %v", err)
		writeMessage(w, "Invalid request format!!", http.StatusBadRequest)
		return
	}

	slide, err := h.slideshare.Fetch(ctx, req.URL)
	if err != nil {
		log.Errorf(ctx, "fetch slideshow error: %v", err)
		writeMessage(w, "スライドが見つかりませんでした。", http.StatusNotFound)
		return
	}

	log.Debugf(ctx, "slide: %+v", slide)
	fileName := fmt.Sprint(slide.ID) + "." + slide.Format
	if slide.Download && slide.DownloadURL != "" {
		h.download(ctx, w, slide.DownloadURL, fileName)
		return
	}

	if !h.opts.CreatePDF {
		msg := "指定されたスライドはダウンロードが禁止されています。"
		log.Infof(ctx, "%s", msg)
		writeMessage(w, msg, http.StatusBadRequest)
		return
	}

	links, err := h.slideshare.FetchImageLinks(ctx, req.URL)
	if err != nil {
		log.Errorf(ctx, "fetch image links error: %v", err)
		writeMessage(w, "ダウンロード中にエラーが発生しました。", http.StatusInternalServerError)
		return
	}

	log.Debugf(ctx, "start write pdf")
	pdf := &pdfWriter{client: h.opts.HTTPClient, timeout: h.opts.DownloadTimeout}
	pdf.write(ctx, w, links, fmt.Sprint(slide.ID)+".pdf")
	log.Debugf(ctx, "finished write pdf")
}

func (h *SlideShareHandler) download(ctx context.Context, w http.ResponseWriter, downloadURL, fileName string) {
	resp, cancel, err := httpGetWithTimeout(ctx, h.opts.HTTPClient, downloadURL, h.opts.DownloadTimeout)
	if err != nil {
		log.Errorf(ctx, "download error: %v", err)
		writeMessage(w, "ダウンロード中にエラーが発生しました。", http.StatusInternalServerError)
		return
	}
	defer cancel()

	if resp.ContentLength > h.opts.MaxFileSize {
		url, err := h.storage.Upload(ctx, resp.Body, fileName)
		if err != nil {
			log.Errorf(ctx, "upload error %v", err)
			writeMessage(w, "ダウンロード中にエラーが発生しました。", http.StatusInternalServerError)
			return
		}
		writeMessage(w, url, http.StatusCreated)
		return
	}

	log.Debugf(ctx, "content length is %d", resp.ContentLength)
	copyResponseAndClose(ctx, w, resp, fileName)
}

type pdfWriter struct {
	client  *http.Client
	timeout time.Duration
}

type slideImage struct {
	link      string
	imageType string
	data      []byte
}

func (p *pdfWriter) write(ctx context.Context, w http.ResponseWriter, links []service.Link, fileName string) {
	images, err := p.fetchAll(ctx, links)
	if err != nil {
		log.Errorf(ctx, "fetch slide images error: %v", err)
		writeMessage(w, "ダウンロード中にエラーが発生しました。", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	for i, img := range images {
		if err := p.addPage(pdf, img); err != nil {
			log.Errorf(ctx, "addPage2PDF error idx = %d: %v", i, err)
			writeMessage(w, "PDF作成中にエラーが発生しました。", http.StatusInternalServerError)
			return
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		log.Errorf(ctx, "PDF作成中にエラーが発生しました。 %v", err)
		writeMessage(w, "PDF作成中にエラーが発生しました。", http.StatusInternalServerError)
		return
	}

	writeAttachmentHeaders(w, "application/octet-stream", int64(buf.Len()), fileName)
	if _, err := buf.WriteTo(w); err != nil {
		log.Errorf(ctx, "write pdf error: %v", err)
	}
}

// fetchAll downloads the slide images concurrently, keeping slide order.
func (p *pdfWriter) fetchAll(ctx context.Context, links []service.Link) ([]slideImage, error) {
	images := make([]slideImage, len(links))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(imageConcurrency)
	for i, link := range links {
		g.Go(func() error {
			img, err := p.fetch(ctx, link.Normal)
			if err != nil {
				return errors.Wrapf(err, "slide %d", i+1)
			}
			images[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}

func (p *pdfWriter) fetch(ctx context.Context, link string) (slideImage, error) {
	resp, cancel, err := httpGetWithTimeout(ctx, p.client, link, p.timeout)
	if err != nil {
		return slideImage{}, err
	}
	defer cancel()
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return slideImage{}, errors.Wrapf(err, "read %s", link)
	}
	return slideImage{
		link:      link,
		imageType: resp.Header.Get("Content-Type"),
		data:      data,
	}, nil
}

func (p *pdfWriter) addPage(pdf *gofpdf.Fpdf, img slideImage) error {
	pdf.AddPage()
	imageType := strings.TrimPrefix(path.Ext(img.link), ".")
	if img.imageType != "" {
		imageType = pdf.ImageTypeFromMime(img.imageType)
	}
	options := gofpdf.ImageOptions{
		ReadDpi:   false,
		ImageType: imageType,
	}
	infoPtr := pdf.RegisterImageOptionsReader(img.link, options, bytes.NewReader(img.data))
	if pdf.Err() {
		return pdf.Error()
	}
	imgWd, imgHt := infoPtr.Extent()
	pdf.ImageOptions(img.link, 35, 40, imgWd, imgHt, false, options, 0, "")

	if pdf.Err() {
		return pdf.Error()
	}
	return nil
}
