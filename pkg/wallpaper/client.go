package wallpaper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/dixieflatline76/Backdrop/util/log"
)

// imageResponse is the body returned by the image-URL service.
type imageResponse struct {
	URL string `json:"url"`
}

// Client talks to the image-URL service and downloads the images it points to.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient returns a Client for endpoint. A nil httpClient gets NewHTTPClient("").
func NewClient(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = NewHTTPClient("")
	}
	return &Client{endpoint: endpoint, httpClient: httpClient}
}

// FetchImageURL asks the service for the next image and returns its URL.
func (c *Client) FetchImageURL(ctx context.Context) (string, error) {
	resp, err := c.get(ctx, "fetch image url", c.endpoint)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var body imageResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxServiceResponse)).Decode(&body); err != nil {
		return "", &NetworkError{Op: "fetch image url", URL: c.endpoint, Err: fmt.Errorf("decoding response: %w", err)}
	}
	if strings.TrimSpace(body.URL) == "" {
		return "", &NetworkError{Op: "fetch image url", URL: c.endpoint, Err: fmt.Errorf("response has no url")}
	}

	return body.URL, nil
}

// Download saves the image at imageURL into dir and returns the file's path.
func (c *Client) Download(ctx context.Context, imageURL, dir string) (string, error) {
	name, err := FileNameFromURL(imageURL)
	if err != nil {
		return "", &NetworkError{Op: "download", URL: imageURL, Err: err}
	}

	resp, err := c.get(ctx, "download", imageURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	dest := filepath.Join(dir, name)
	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", dest, err)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(dest)
		return "", &NetworkError{Op: "download", URL: imageURL, Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("writing %s: %w", dest, err)
	}

	log.Debugf("Downloaded %s to %s", imageURL, dest)
	return dest, nil
}

// get issues a GET and turns transport failures and non-2xx answers into a NetworkError.
func (c *Client) get(ctx context.Context, op, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &NetworkError{Op: op, URL: rawURL, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: op, URL: rawURL, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &NetworkError{Op: op, URL: rawURL, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	return resp, nil
}

// FileNameFromURL returns the last path segment of rawURL, ignoring any query.
// Unusable segments are replaced with a random name that keeps the extension.
func FileNameFromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing url: %w", err)
	}

	name := path.Base(u.Path)
	switch {
	case name == "" || name == "." || name == ".." || name == "/":
		return uuid.NewString(), nil
	case strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, filepath.Separator):
		return uuid.NewString() + path.Ext(name), nil
	}

	return name, nil
}
