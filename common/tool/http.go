package tool

import (
	"fmt"
	"time"

	"github.com/imroc/req"
)

func init() {
	req.SetTimeout(30 * time.Second)
}

// PostUrl POST a JSON body to url and return the raw response body
func PostUrl(url string, body interface{}, headers map[string]string) (string, error) {
	header := req.Header{"Content-Type": "application/json"}
	for k, v := range headers {
		header[k] = v
	}

	resp, err := req.Post(url, header, req.BodyJSON(body))
	if err != nil {
		return "", fmt.Errorf("post %s failed: %w", url, err)
	}
	if resp.Response().StatusCode >= 400 {
		return "", fmt.Errorf("post %s failed: status %d", url, resp.Response().StatusCode)
	}

	return resp.String(), nil
}
