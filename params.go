package slideshare

import (
	"fmt"
	"io"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

const (
	defaultLimit = 10

	// srcFileField names both the multipart field and the placeholder
	// filename of an uploaded deck.
	srcFileField = "slideshow_srcfile"
)

func getSlideshowParams(creds Credentials, opts GetSlideshowOptions) (url.Values, error) {
	params := url.Values{}
	switch {
	case opts.ID > 0:
		params.Set("slideshow_id", strconv.Itoa(opts.ID))
	case opts.URL != "":
		params.Set("slideshow_url", opts.URL)
	default:
		return nil, errors.Wrap(ErrInvalidArgument, "get_slideshow: slideshow id or url must be specified")
	}

	// Read-only: go out unauthenticated unless a full pair resolves.
	if username, password := creds.user(opts.Username, opts.Password); username != "" && password != "" {
		params.Set("username", username)
		params.Set("password", password)
	}

	setFlag(params, "exclude_tags", opts.ExcludeTags)
	setFlag(params, "detailed", opts.Detailed)
	setFlag(params, "get_transcript", opts.GetTranscript)
	return params, nil
}

func tagParams(tag string, opts TagOptions) (url.Values, error) {
	if strings.TrimSpace(tag) == "" {
		return nil, errors.Wrap(ErrInvalidArgument, "get_slideshows_by_tag: tag must be specified")
	}
	params := url.Values{}
	params.Set("tag", tag)

	limit := defaultLimit
	if opts.Limit != nil {
		n, err := toInt("limit", opts.Limit, 1)
		if err != nil {
			return nil, errors.Wrap(err, "get_slideshows_by_tag")
		}
		limit = n
	}
	params.Set("limit", strconv.Itoa(limit))

	if opts.Offset != nil {
		n, err := toInt("offset", opts.Offset, 0)
		if err != nil {
			return nil, errors.Wrap(err, "get_slideshows_by_tag")
		}
		params.Set("offset", strconv.Itoa(n))
	}

	setFlag(params, "detailed", opts.Detailed)
	return params, nil
}

func editParams(creds Credentials, id int, opts EditOptions) (url.Values, error) {
	if id <= 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "edit_slideshow: invalid slideshow id %d", id)
	}
	params := url.Values{}
	if err := setUser(params, creds, opts.Username, opts.Password); err != nil {
		return nil, errors.Wrap(err, "edit_slideshow")
	}
	params.Set("slideshow_id", strconv.Itoa(id))

	if opts.Title != "" {
		params.Set("slideshow_title", opts.Title)
	}
	if opts.Description != nil {
		params.Set("slideshow_description", *opts.Description)
	}
	setTags(params, opts.Tags)

	if err := setPrivacy(params, opts.Privacy); err != nil {
		return nil, errors.Wrap(err, "edit_slideshow")
	}
	return params, nil
}

func deleteParams(creds Credentials, id int, opts DeleteOptions) (url.Values, error) {
	if id <= 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "delete_slideshow: invalid slideshow id %d", id)
	}
	params := url.Values{}
	if err := setUser(params, creds, opts.Username, opts.Password); err != nil {
		return nil, errors.Wrap(err, "delete_slideshow")
	}
	params.Set("slideshow_id", strconv.Itoa(id))
	return params, nil
}

// uploadSource is the local deck of an upload, nil when uploading by url.
type uploadSource struct {
	filename string
	path     string
	body     io.Reader
}

func uploadParams(creds Credentials, title string, opts UploadOptions) (url.Values, *uploadSource, error) {
	if strings.TrimSpace(title) == "" {
		return nil, nil, errors.Wrap(ErrInvalidArgument, "upload_slideshow: slideshow title must be specified")
	}
	params := url.Values{}
	if err := setUser(params, creds, opts.Username, opts.Password); err != nil {
		return nil, nil, errors.Wrap(err, "upload_slideshow")
	}
	params.Set("slideshow_title", title)

	var src *uploadSource
	switch {
	case opts.SrcFile != "":
		src = &uploadSource{filename: placeholderName(opts.SrcFile), path: opts.SrcFile}
	case opts.Src != nil && opts.Src.Body != nil:
		src = &uploadSource{filename: placeholderName(opts.Src.Name), body: opts.Src.Body}
	case opts.UploadURL != "":
		params.Set("upload_url", opts.UploadURL)
	default:
		return nil, nil, errors.Wrap(ErrInvalidArgument, "upload_slideshow: source file or upload url must be provided")
	}

	params.Set("slideshow_description", opts.Description)
	setTags(params, opts.Tags)

	if err := setPrivacy(params, opts.Privacy); err != nil {
		return nil, nil, errors.Wrap(err, "upload_slideshow")
	}
	return params, src, nil
}

// placeholderName keeps only the extension of name, so non-ASCII
// filenames never reach the multipart headers.
func placeholderName(name string) string {
	ext := path.Ext(strings.ReplaceAll(name, "\\", "/"))
	if !isASCII(ext) {
		ext = ""
	}
	return srcFileField + ext
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7e || s[i] < 0x20 {
			return false
		}
	}
	return true
}

func setUser(params url.Values, creds Credentials, username, password string) error {
	username, password = creds.user(username, password)
	if username == "" || password == "" {
		return errors.Wrap(ErrMissingCredentials, "username and password are required")
	}
	params.Set("username", username)
	params.Set("password", password)
	return nil
}

func setFlag(params url.Values, key string, v *bool) {
	if v == nil {
		return
	}
	if *v {
		params.Set(key, "1")
	} else {
		params.Set(key, "0")
	}
}

func setTags(params url.Values, tags []string) {
	var kept []string
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			kept = append(kept, t)
		}
	}
	if len(kept) > 0 {
		params.Set("slideshow_tags", strings.Join(kept, ","))
	}
}

func setPrivacy(params url.Values, p Privacy) error {
	if p.MakeSrcPublic != nil && !*p.MakeSrcPublic {
		params.Set("make_src_public", "N")
	}
	if p.MakeSlideshowPrivate {
		params.Set("make_slideshow_private", "Y")
	}

	dependent := []struct {
		key string
		set bool
	}{
		{"generate_secret_url", p.GenerateSecretURL},
		{"allow_embeds", p.AllowEmbeds},
		{"share_with_contacts", p.ShareWithContacts},
	}
	for _, d := range dependent {
		if !d.set {
			continue
		}
		if !p.MakeSlideshowPrivate {
			return errors.Wrapf(ErrDependency, "%s requires make_slideshow_private to be Y", d.key)
		}
		params.Set(d.key, "Y")
	}
	return nil
}

// toInt reads numeric strings as plain decimal; cast would take a leading
// zero or 0x as a base prefix.
func toInt(name string, v interface{}, min int) (int, error) {
	var (
		n   int
		err error
	)
	if s, ok := v.(string); ok {
		n, err = strconv.Atoi(strings.TrimSpace(s))
	} else {
		n, err = cast.ToIntE(v)
	}
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidArgument, "invalid value for %s: %s", name, fmt.Sprint(v))
	}
	if n < min {
		return 0, errors.Wrapf(ErrInvalidArgument, "%s must be at least %d, got %d", name, min, n)
	}
	return n, nil
}
