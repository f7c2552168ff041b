package enrich

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"time"
)

type HunterClient struct {
	apiKey     string
	httpClient *http.Client
}

func NewHunterClient(apiKey string) *HunterClient {
	return &HunterClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

// DomainSearch returns the first known email address for a domain, or
// "" when Hunter has none.
func (c *HunterClient) DomainSearch(domain string) (string, error) {
	if domain == "" {
		return "", nil
	}

	params := url.Values{}
	params.Set("domain", domain)
	params.Set("api_key", c.apiKey)
	params.Set("limit", "1")

	resp, err := c.httpClient.Get("https://api.hunter.io/v2/domain-search?" + params.Encode())
	if err != nil {
		return "", fmt.Errorf("hunter fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("hunter request failed (%d)", resp.StatusCode)
	}

	var raw hunterResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", fmt.Errorf("hunter decode: %w", err)
	}

	if len(raw.Data.Emails) == 0 {
		return "", nil
	}
	return raw.Data.Emails[0].Value, nil
}

type hunterResponse struct {
	Data hunterData `json:"data"`
}

type hunterData struct {
	Emails []hunterEmail `json:"emails"`
}

type hunterEmail struct {
	Value string `json:"value"`
}

var domainRe = regexp.MustCompile(`^https?://([^/]+)/?`)

// ExtractDomain returns the host part of an http(s) URL, or "".
func ExtractDomain(rawURL string) string {
	m := domainRe.FindStringSubmatch(rawURL)
	if m == nil {
		return ""
	}
	return m[1]
}
