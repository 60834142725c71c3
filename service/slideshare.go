package service

import (
	"context"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pacahon/slideshare"
	"github.com/pkg/errors"
)

// ErrNotFound means no slideshow exists at the given URL.
var ErrNotFound = errors.New("slideshow not found")

const imageSelector = "div.slide_container > section > img.slide_image"

type Link struct {
	Full, Normal string
}

type SlideShareService interface {
	Fetch(ctx context.Context, url string) (*slideshare.Slideshow, error)
	FetchImageLinks(ctx context.Context, url string) ([]Link, error)
}

type SlideShareServiceImpl struct {
	client     *slideshare.Client
	httpClient *http.Client
}

func NewSlideShareService(client *slideshare.Client, httpClient *http.Client) SlideShareService {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &SlideShareServiceImpl{
		client:     client,
		httpClient: httpClient,
	}
}

func (s *SlideShareServiceImpl) Fetch(ctx context.Context, url string) (*slideshare.Slideshow, error) {
	resp, err := s.client.GetSlideshow(ctx, slideshare.GetSlideshowOptions{URL: url})
	if err != nil {
		var svcErr *slideshare.ServiceError
		if errors.As(err, &svcErr) && svcErr.IsNotFound() {
			return nil, errors.Wrap(ErrNotFound, url)
		}
		return nil, err
	}

	slide := &slideshare.Slideshow{}
	if err := resp.Decode(slide); err != nil {
		return nil, err
	}

	// compare with zero value.
	if slide.ID == 0 && slide.Title == "" {
		return nil, errors.Wrap(ErrNotFound, url)
	}
	return slide, nil
}

func (s *SlideShareServiceImpl) FetchImageLinks(ctx context.Context, url string) ([]Link, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch slideshow page")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("fetch slideshow page: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "parse slideshow page")
	}

	links := []Link{}
	doc.Find(imageSelector).Each(func(i int, s *goquery.Selection) {
		links = append(links, Link{
			Normal: strings.Split(s.AttrOr("data-normal", ""), "?")[0],
			Full:   strings.Split(s.AttrOr("data-full", ""), "?")[0],
		})
	})

	if len(links) == 0 {
		return nil, errors.Wrap(ErrNotFound, "no slide images on page")
	}
	return links, nil
}
