package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/pacahon/slideshare/library/log"
	"github.com/pacahon/slideshare/model"
	"github.com/pkg/errors"
)

func parseFrom(r *http.Request) (*model.Request, error) {
	var req model.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errors.Wrap(err, "decode request")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

func httpGetWithTimeout(ctx context.Context, client *http.Client, url string, timeout time.Duration) (*http.Response, context.CancelFunc, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	req, err := http.NewRequestWithContext(ctxWithTimeout, http.MethodGet, url, nil)
	if err != nil {
		cancel()
		return nil, nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		cancel()
		return nil, nil, errors.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
	return resp, cancel, nil
}

func writeMessage(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(model.Response{Message: message})
}

func writeAttachmentHeaders(w http.ResponseWriter, contentType string, contentLength int64, fileName string) {
	w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
	w.Header().Set("Content-Type", contentType)
	if contentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(contentLength, 10))
	}
	w.Header().Set("X-FileName", fileName)
}

func copyResponseAndClose(ctx context.Context, w http.ResponseWriter, resp *http.Response, fileName string) {
	defer resp.Body.Close()
	writeAttachmentHeaders(w, resp.Header.Get("Content-Type"), resp.ContentLength, fileName)

	if _, err := io.Copy(w, resp.Body); err != nil {
		log.Errorf(ctx, "io.Copy error: %#v", err)
	}
}
