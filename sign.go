package slideshare

import (
	"crypto/sha1"
	"encoding/hex"
	"io"
	"net/url"
	"strconv"
	"time"
)

// Signature authenticates a single request. It must not be reused:
// the service rejects timestamps outside its tolerance window.
type Signature struct {
	Timestamp int64
	Hash      string
}

// Sign computes the signature for a request issued at now.
func Sign(sharedSecret string, now time.Time) Signature {
	ts := now.Unix()
	h := sha1.New()
	io.WriteString(h, sharedSecret+strconv.FormatInt(ts, 10))
	return Signature{
		Timestamp: ts,
		Hash:      hex.EncodeToString(h.Sum(nil)),
	}
}

func (s Signature) apply(values url.Values) {
	values.Set("ts", strconv.FormatInt(s.Timestamp, 10))
	values.Set("hash", s.Hash)
}
