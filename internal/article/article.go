package article

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/skim/internal/models"
	"github.com/desertthunder/skim/internal/shared"
	"github.com/go-shiori/go-readability"
	"github.com/pemistahl/lingua-go"
)

// DefaultMaxChars is the number of characters of article text sent to a summarizer.
const DefaultMaxChars = 4000

const (
	userAgent    = "Mozilla/5.0 (compatible; skim/0.1; +https://github.com/desertthunder/skim)"
	maxPageBytes = 10 << 20
)

var detectable = []lingua.Language{
	lingua.English,
	lingua.French,
	lingua.German,
	lingua.Spanish,
	lingua.Portuguese,
	lingua.Italian,
	lingua.Dutch,
	lingua.Russian,
	lingua.Japanese,
	lingua.Chinese,
}

// Fetcher downloads and extracts articles.
type Fetcher struct {
	client   *http.Client
	maxChars int
	detector lingua.LanguageDetector
	logger   *log.Logger
}

// NewFetcher builds a fetcher. A nil client gets a 30 second timeout; maxChars <= 0 uses [DefaultMaxChars].
func NewFetcher(client *http.Client, maxChars int, logger *log.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}

	return &Fetcher{
		client:   client,
		maxChars: maxChars,
		detector: lingua.NewLanguageDetectorBuilder().FromLanguages(detectable...).Build(),
		logger:   logger,
	}
}

// Fetch downloads rawURL and returns its extracted, truncated text.
//
// Transport failures and non-2xx responses wrap [shared.ErrArticleFetch]; a page with no
// readable text wraps [shared.ErrEmptyArticle].
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*models.Article, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", shared.ErrInvalidURL, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrArticleFetch, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrArticleFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s for url: %s", shared.ErrArticleFetch, resp.Status, rawURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read body: %v", shared.ErrArticleFetch, err)
	}

	base := u
	if resp.Request != nil && resp.Request.URL != nil {
		base = resp.Request.URL
	}

	title, text, err := Extract(body, base)
	if err != nil {
		return nil, err
	}

	text = Truncate(text, f.maxChars)
	a := &models.Article{URL: rawURL, Title: title, Text: text, Language: f.Language(text)}

	f.logger.Debug("article extracted", "url", rawURL, "title", title, "chars", utf8.RuneCountInString(text), "language", a.Language)
	return a, nil
}

// Language returns the ISO 639-1 code of text's language, or "" when unsure.
func (f *Fetcher) Language(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	lang, ok := f.detector.DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}

// Extract returns the page title and the text of every <p> joined by single spaces.
//
// Pages without paragraph text fall back to readability's text content.
func Extract(page []byte, base *url.URL) (string, string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", "", fmt.Errorf("%w: failed to parse HTML: %v", shared.ErrArticleFetch, err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())

	parts := doc.Find("p").Map(func(_ int, s *goquery.Selection) string {
		return s.Text()
	})
	text := strings.Join(parts, " ")

	if strings.TrimSpace(text) == "" {
		text, title = readable(page, base, title)
	}

	if strings.TrimSpace(text) == "" {
		return title, "", shared.ErrEmptyArticle
	}
	return title, text, nil
}

func readable(page []byte, base *url.URL, title string) (string, string) {
	if base == nil {
		base = &url.URL{}
	}

	parser := readability.NewParser()
	a, err := parser.Parse(bytes.NewReader(page), base)
	if err != nil {
		return "", title
	}
	if title == "" {
		title = strings.TrimSpace(a.Title)
	}
	return strings.TrimSpace(a.TextContent), title
}

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}

	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
