package probe

import (
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/trazo-ml/trazo/internal/domain/pixel"
)

// fragmentPattern matches one encoded prediction value.
var fragmentPattern = regexp.MustCompile(`<resultado>([^<]*)</resultado>`)

// HTTPClient wraps http.Client with a per-request timeout.
type HTTPClient struct {
	client *http.Client
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{Timeout: timeout},
	}
}

// payloadPath renders the vector as the comma-separated request path.
func payloadPath(v pixel.Vector) string {
	tokens := make([]string, len(v))
	for i, val := range v {
		tokens[i] = strconv.FormatFloat(val, 'f', -1, 64)
	}
	return "/" + strings.Join(tokens, ",")
}

// predict submits one drawing and returns the first predicted value.
func (c *HTTPClient) predict(baseURL string, v pixel.Vector) (string, error) {
	resp, err := c.client.Get(baseURL + payloadPath(v))
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	m := fragmentPattern.FindSubmatch(body)
	if m == nil {
		return "", fmt.Errorf("no prediction fragment in response: %q", string(body))
	}
	return string(m[1]), nil
}

// checkHealth probes /healthz before the run starts.
func (c *HTTPClient) checkHealth(baseURL string) error {
	resp, err := c.client.Get(baseURL + "/healthz")
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service unhealthy: status %d", resp.StatusCode)
	}
	return nil
}
