package metadata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/datapoolml/outreach-crm/internal/logger"
)

const (
	// defaultHTTPTimeout is the default timeout for HTTP requests
	defaultHTTPTimeout = 30 * time.Second

	maxTags = 8
)

// Suggestion holds values extracted from a company website, used to
// prefill the lead form before a record exists.
type Suggestion struct {
	CompanyName  string   `json:"company_name"`
	URL          string   `json:"url"`
	Description  string   `json:"description,omitempty"`
	Keywords     []string `json:"keywords,omitempty"`
	ContactEmail string   `json:"contact_email,omitempty"`
	LinkedinURL  string   `json:"linkedin_url,omitempty"`
}

// Extractor handles metadata extraction from URLs
type Extractor struct {
	logger logger.Logger
	client *http.Client
}

// NewExtractor creates a new metadata extractor
func NewExtractor(log logger.Logger) *Extractor {
	return &Extractor{
		logger: log,
		client: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
	}
}

// blockedHosts are never fetched. Keeps the extractor from being used to
// probe loopback services or cloud metadata endpoints.
var blockedHosts = map[string]struct{}{
	"localhost":                {},
	"127.0.0.1":                {},
	"0.0.0.0":                  {},
	"169.254.169.254":          {},
	"metadata.google.internal": {},
}

// validateURL parses siteURL and rejects non-HTTP schemes and blocked hosts.
func validateURL(siteURL string) (*url.URL, error) {
	parsed, err := url.Parse(siteURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid URL scheme: %q", parsed.Scheme)
	}
	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return nil, fmt.Errorf("invalid URL: missing host")
	}
	if _, blocked := blockedHosts[host]; blocked {
		return nil, fmt.Errorf("blocked hostname: %s", host)
	}
	return parsed, nil
}

// Extract fetches a URL and extracts metadata for form prefilling
func (e *Extractor) Extract(ctx context.Context, siteURL string) (*Suggestion, error) {
	e.logger.Info("Extracting metadata from URL",
		logger.String("url", siteURL),
	)

	parsedURL, err := validateURL(siteURL)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, siteURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set user agent to avoid bot blocking
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; OutreachCRM/1.0)")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	suggestion := &Suggestion{
		URL:          siteURL,
		CompanyName:  extractName(doc, parsedURL),
		Description:  extractDescription(doc),
		Keywords:     extractKeywords(doc),
		ContactEmail: extractContactEmail(doc),
		LinkedinURL:  extractLinkedinURL(doc),
	}

	e.logger.Info("Metadata extraction complete",
		logger.String("url", siteURL),
		logger.String("company_name", suggestion.CompanyName),
	)

	return suggestion, nil
}

// extractName picks a suggested company name from the page, preferring
// OpenGraph tags over the title tag over the bare host.
func extractName(doc *goquery.Document, parsedURL *url.URL) string {
	if ogSite, exists := doc.Find("meta[property='og:site_name']").Attr("content"); exists && ogSite != "" {
		return ogSite
	}

	if ogTitle, exists := doc.Find("meta[property='og:title']").Attr("content"); exists && ogTitle != "" {
		return ogTitle
	}

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		// Strip common "Name | Tagline" suffixes
		for _, sep := range []string{" | ", " – ", " :: "} {
			if idx := strings.Index(title, sep); idx > 0 {
				return strings.TrimSpace(title[:idx])
			}
		}
		return title
	}

	return strings.TrimPrefix(parsedURL.Host, "www.")
}

func extractDescription(doc *goquery.Document) string {
	if ogDesc, exists := doc.Find("meta[property='og:description']").Attr("content"); exists && ogDesc != "" {
		return strings.TrimSpace(ogDesc)
	}
	if desc, exists := doc.Find("meta[name='description']").Attr("content"); exists {
		return strings.TrimSpace(desc)
	}
	return ""
}

func extractKeywords(doc *goquery.Document) []string {
	content, exists := doc.Find("meta[name='keywords']").Attr("content")
	if !exists || strings.TrimSpace(content) == "" {
		return nil
	}

	parts := strings.Split(content, ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			keywords = append(keywords, p)
		}
		if len(keywords) == maxTags {
			break
		}
	}
	return keywords
}

func extractContactEmail(doc *goquery.Document) string {
	var email string
	doc.Find("a[href^='mailto:']").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		addr := strings.TrimPrefix(href, "mailto:")
		// Drop query params like ?subject=
		if idx := strings.Index(addr, "?"); idx != -1 {
			addr = addr[:idx]
		}
		if strings.Contains(addr, "@") {
			email = addr
			return false
		}
		return true
	})
	return email
}

func extractLinkedinURL(doc *goquery.Document) string {
	var link string
	doc.Find("a[href*='linkedin.com']").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if href, exists := s.Attr("href"); exists && strings.Contains(href, "linkedin.com/") {
			link = href
			return false
		}
		return true
	})
	return link
}
