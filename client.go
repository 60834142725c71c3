// Package slideshare is a client for the SlideShare API v2.
//
// Every call is signed with the api key, the current unix timestamp and
// sha1(shared secret + timestamp). Responses are XML documents decoded into
// a Response; an error envelope from the service becomes a *ServiceError.
package slideshare

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/pacahon/slideshare/library/log"
	"github.com/pkg/errors"
	"go.opencensus.io/plugin/ochttp"
)

const (
	// BaseURL is the API v2 endpoint.
	BaseURL = "https://www.slideshare.net/api/2/"

	defaultTimeout = 30 * time.Second
)

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client calls the SlideShare API. It is safe for concurrent use as long
// as its Doer is.
type Client struct {
	creds      Credentials
	baseURL    string
	httpClient Doer
	timeout    time.Duration
	now        func() time.Time
	debug      bool
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default transport.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) {
		c.httpClient = d
	}
}

// WithBaseURL points the client at another endpoint, e.g. a test server.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if !strings.HasSuffix(u, "/") {
			u += "/"
		}
		c.baseURL = u
	}
}

// WithTimeout sets the request timeout of the default transport.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithClock replaces time.Now when signing requests.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// WithDebug logs every request and raw response at debug level.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// NewClient returns a client for creds. It fails with ErrConfiguration when
// the api key or shared secret is missing.
func NewClient(creds Credentials, opts ...Option) (*Client, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		creds:   creds,
		baseURL: BaseURL,
		timeout: defaultTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Timeout:   c.timeout,
			Transport: &ochttp.Transport{},
		}
	}
	return c, nil
}

// New returns a client without default user credentials.
func New(apiKey, sharedSecret string, opts ...Option) (*Client, error) {
	return NewClient(Credentials{APIKey: apiKey, SharedSecret: sharedSecret}, opts...)
}

// GetSlideshow fetches a slideshow by id or url.
func (c *Client) GetSlideshow(ctx context.Context, opts GetSlideshowOptions) (*Response, error) {
	params, err := getSlideshowParams(c.creds, opts)
	if err != nil {
		return nil, err
	}
	return c.get(ctx, "get_slideshow", params)
}

// GetSlideshowsByTag lists slideshows carrying tag.
func (c *Client) GetSlideshowsByTag(ctx context.Context, tag string, opts TagOptions) (*Response, error) {
	params, err := tagParams(tag, opts)
	if err != nil {
		return nil, err
	}
	return c.get(ctx, "get_slideshows_by_tag", params)
}

// EditSlideshow changes title, description, tags or privacy of slideshow id.
func (c *Client) EditSlideshow(ctx context.Context, id int, opts EditOptions) (*Response, error) {
	params, err := editParams(c.creds, id, opts)
	if err != nil {
		return nil, err
	}
	return c.get(ctx, "edit_slideshow", params)
}

// DeleteSlideshow deletes slideshow id.
func (c *Client) DeleteSlideshow(ctx context.Context, id int, opts DeleteOptions) (*Response, error) {
	params, err := deleteParams(c.creds, id, opts)
	if err != nil {
		return nil, err
	}
	return c.get(ctx, "delete_slideshow", params)
}

// UploadSlideshow uploads a deck into the account of the resolved user.
// A local source is streamed as a multipart body, otherwise the service
// fetches UploadURL itself. A failed read of the source surfaces as a
// *TransportError.
//
// Uploading requires extra permissions on the api key; ask SlideShare
// for them before use.
func (c *Client) UploadSlideshow(ctx context.Context, title string, opts UploadOptions) (*Response, error) {
	params, src, err := uploadParams(c.creds, title, opts)
	if err != nil {
		return nil, err
	}
	if src == nil {
		return c.get(ctx, "upload_slideshow", params)
	}

	if src.path != "" {
		f, err := os.Open(src.path)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidArgument, "upload_slideshow: %v", err)
		}
		defer f.Close()
		src.body = f
	}
	return c.post(ctx, "upload_slideshow", params, src)
}

// signed returns a copy of params carrying the api key and a signature
// computed now.
func (c *Client) signed(params url.Values) url.Values {
	values := url.Values{}
	for k, vs := range params {
		values[k] = append([]string(nil), vs...)
	}
	values.Set("api_key", c.creds.APIKey)
	Sign(c.creds.SharedSecret, c.now()).apply(values)
	return values
}

func (c *Client) endpoint(method string) string {
	return c.baseURL + method
}

func (c *Client) get(ctx context.Context, method string, params url.Values) (*Response, error) {
	target := c.endpoint(method) + "?" + c.signed(params).Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &TransportError{Op: method, Err: err}
	}
	return c.do(method, req)
}

// post streams the multipart body through a pipe, so the deck is never held
// in memory. The signature is computed when the request is dispatched.
func (c *Client) post(ctx context.Context, method string, params url.Values, src *uploadSource) (*Response, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	done := make(chan struct{})
	go func() {
		defer close(done)
		pw.CloseWithError(writeMultipart(mw, method, params, src))
	}()
	defer func() {
		// Unblocks the writer when the transport never drained the body.
		pr.Close()
		<-done
	}()

	target := c.endpoint(method) + "?" + c.signed(url.Values{}).Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, pr)
	if err != nil {
		return nil, &TransportError{Op: method, Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(method, req)
}

func writeMultipart(mw *multipart.Writer, method string, params url.Values, src *uploadSource) error {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range params[k] {
			if err := mw.WriteField(k, v); err != nil {
				return errors.Wrapf(err, "%s: write field %s", method, k)
			}
		}
	}

	part, err := mw.CreateFormFile(srcFileField, src.filename)
	if err != nil {
		return errors.Wrapf(err, "%s: create file part", method)
	}
	if _, err := io.Copy(part, src.body); err != nil {
		return errors.Wrapf(err, "%s: read source", method)
	}
	return errors.Wrapf(mw.Close(), "%s: close multipart body", method)
}

func (c *Client) do(method string, req *http.Request) (*Response, error) {
	ctx := req.Context()
	if c.debug {
		log.Debugf(ctx, "slideshare request: %s %s", req.Method, redact(req.URL))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf(ctx, "slideshare %s failed: %v", method, err)
		return nil, &TransportError{Op: method, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: method, Err: errors.Wrap(err, "read response body")}
	}
	if c.debug {
		log.Debugf(ctx, "slideshare response: %d %s", resp.StatusCode, raw)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Errorf(ctx, "slideshare %s: status %d", method, resp.StatusCode)
		return nil, &TransportError{
			Op:         method,
			StatusCode: resp.StatusCode,
			Err:        errors.New(snippet(raw)),
		}
	}
	return Parse(raw)
}

var secretParams = []string{"hash", "password"}

func redact(u *url.URL) string {
	q := u.Query()
	for _, k := range secretParams {
		if q.Get(k) != "" {
			q.Set(k, "REDACTED")
		}
	}
	r := *u
	r.RawQuery = q.Encode()
	return r.String()
}

func snippet(raw []byte) string {
	const max = 256
	s := strings.TrimSpace(string(raw))
	if len(s) > max {
		s = s[:max] + "..."
	}
	if s == "" {
		s = "empty body"
	}
	return s
}
