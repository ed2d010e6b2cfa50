package httpout

import (
	"aisfeed/internal/global"
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"
)

// Transport for one envelope submission
type Poster interface {
	Post(ctx context.Context, body []byte, compressed bool, multipart bool, fieldName string) (status int, response string, err error)
}

// net/http transport with optional basic auth
type HTTPPoster struct {
	client   *http.Client
	url      string
	user     string
	password string
	auth     bool
}

// userpwd is "user:password", split at the first colon
func NewHTTPPoster(url string, userpwd string, timeout time.Duration) (poster *HTTPPoster) {
	poster = &HTTPPoster{
		client: &http.Client{Timeout: timeout},
		url:    url,
	}
	if userpwd != "" {
		poster.auth = true
		poster.user, poster.password, _ = strings.Cut(userpwd, ":")
	}
	return
}

func (poster *HTTPPoster) Post(ctx context.Context, body []byte, compressed bool, isMultipart bool, fieldName string) (status int, response string, err error) {
	payload := body
	contentType := "application/json"

	if isMultipart {
		var form bytes.Buffer
		writer := multipart.NewWriter(&form)

		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"`, fieldName))
		header.Set("Content-Type", "application/json")

		var part io.Writer
		part, err = writer.CreatePart(header)
		if err != nil {
			err = fmt.Errorf("failed multipart creation: %w", err)
			return
		}
		if _, err = part.Write(body); err != nil {
			err = fmt.Errorf("failed multipart write: %w", err)
			return
		}
		if err = writer.Close(); err != nil {
			err = fmt.Errorf("failed multipart finalization: %w", err)
			return
		}

		payload = form.Bytes()
		contentType = writer.FormDataContentType()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, poster.url, bytes.NewReader(payload))
	if err != nil {
		err = fmt.Errorf("failed request creation: %w", err)
		return
	}

	req.Header.Set("Content-Type", contentType)
	if compressed && !isMultipart {
		req.Header.Set("Content-Encoding", "gzip")
	}
	if poster.auth {
		req.SetBasicAuth(poster.user, poster.password)
	}

	resp, err := poster.client.Do(req)
	if err != nil {
		err = fmt.Errorf("failed HTTP request: %w", err)
		return
	}
	defer resp.Body.Close()

	status = resp.StatusCode

	buf, err := io.ReadAll(io.LimitReader(resp.Body, int64(global.MaxHTTPResponseBytes)))
	if err != nil {
		err = fmt.Errorf("failed reading response body: %w", err)
		return
	}
	response = string(buf)

	// Drain so the connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body)
	return
}
