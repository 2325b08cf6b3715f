package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNoImage is returned when a prediction response carries no image data
var ErrNoImage = errors.New("no image in response")

// Client is the HTTP client for the image-generation API
type Client struct {
	baseURL    string
	model      string
	key        string
	httpClient *http.Client
}

// NewClient creates a new API client
func NewClient(baseURL, model, key string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		key:     key,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

// Model returns the model name requests are sent to
func (c *Client) Model() string {
	return c.model
}

type instance struct {
	Prompt string `json:"prompt"`
}

type parameters struct {
	SampleCount      int    `json:"sampleCount"`
	AspectRatio      string `json:"aspectRatio"`
	PersonGeneration string `json:"personGeneration"`
}

type predictRequest struct {
	Instances  []instance `json:"instances"`
	Parameters parameters `json:"parameters"`
}

type prediction struct {
	BytesBase64Encoded string `json:"bytesBase64Encoded"`
	MimeType           string `json:"mimeType"`
}

type predictResponse struct {
	Predictions []prediction `json:"predictions"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// request makes an HTTP request to the API
func (c *Client) request(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(data)
	}

	u := c.baseURL + path
	if c.key != "" {
		u += "?key=" + url.QueryEscape(c.key)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.httpClient.Do(req)
}

// parseResponse reads and unmarshals the response body
func parseResponse[T any](resp *http.Response) (T, error) {
	var result T
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return result, err
	}

	if resp.StatusCode >= 400 {
		var errResp errorResponse
		if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error.Message == "" {
			return result, fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		}
		return result, fmt.Errorf("HTTP %d: %s", resp.StatusCode, errResp.Error.Message)
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return result, fmt.Errorf("unable to decode response: %w", err)
	}

	return result, nil
}

// GenerateImage requests a single 16:9 image for prompt and returns its bytes
func (c *Client) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	resp, err := c.request(ctx, http.MethodPost, "/models/"+c.model+":predict", predictRequest{
		Instances: []instance{{Prompt: prompt}},
		Parameters: parameters{
			SampleCount:      1,
			AspectRatio:      "16:9",
			PersonGeneration: "dont_allow",
		},
	})
	if err != nil {
		return nil, err
	}

	result, err := parseResponse[predictResponse](resp)
	if err != nil {
		return nil, err
	}
	if len(result.Predictions) == 0 || result.Predictions[0].BytesBase64Encoded == "" {
		return nil, ErrNoImage
	}

	data, err := base64.StdEncoding.DecodeString(result.Predictions[0].BytesBase64Encoded)
	if err != nil {
		return nil, fmt.Errorf("unable to decode image data: %w", err)
	}
	return data, nil
}
