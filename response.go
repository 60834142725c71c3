package slideshare

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/clbanning/mxj/v2"
	"github.com/pkg/errors"
)

const (
	errorEnvelope = "SlideShareServiceError"

	// Key conventions of the decoded map.
	attrPrefix = "-"
	textKey    = "#text"
)

// Response is a decoded service document. Map mirrors the XML: element
// names are keys, attributes are prefixed with "-", element text sits under
// "#text" when the element also has attributes, and repeated siblings become
// a slice. Use List for elements that may repeat.
type Response struct {
	Map mxj.Map
	Raw []byte
}

// Parse decodes raw and surfaces the service error envelope as *ServiceError.
func Parse(raw []byte) (*Response, error) {
	m, err := mxj.NewMapXml(raw)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	if envelope, ok := m[errorEnvelope]; ok {
		return nil, serviceError(envelope)
	}
	return &Response{Map: m, Raw: raw}, nil
}

func serviceError(envelope interface{}) *ServiceError {
	e := &ServiceError{Code: -1}
	body, ok := envelope.(map[string]interface{})
	if !ok {
		return e
	}
	switch msg := body["Message"].(type) {
	case map[string]interface{}:
		if id, ok := msg[attrPrefix+"ID"].(string); ok {
			if code, err := strconv.Atoi(strings.TrimSpace(id)); err == nil {
				e.Code = code
			}
		}
		e.Message, _ = msg[textKey].(string)
	case string:
		e.Message = msg
	}
	return e
}

// Root returns the name of the document element.
func (r *Response) Root() string {
	for k := range r.Map {
		return k
	}
	return ""
}

// Value returns the text at a dot separated path such as "Slideshow.ID",
// or "" when the path is absent or not a leaf.
func (r *Response) Value(path string) string {
	v, err := r.Map.ValueForPath(path)
	if err != nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case map[string]interface{}:
		s, _ := t[textKey].(string)
		return s
	}
	return ""
}

// List returns the elements at path as a sequence whatever their
// cardinality on the wire: none, one or many.
func (r *Response) List(path string) []interface{} {
	values, err := r.Map.ValuesForPath(path)
	if err != nil || values == nil {
		return []interface{}{}
	}
	return values
}

// Decode unmarshals the document into one of the typed models.
func (r *Response) Decode(v interface{}) error {
	if err := xml.Unmarshal(r.Raw, v); err != nil {
		return &DecodeError{Err: errors.Wrapf(err, "decode %s", r.Root())}
	}
	return nil
}
