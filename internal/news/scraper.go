package news

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/gatherctl/gather/internal/config"
	"github.com/gatherctl/gather/internal/fetch"
	"github.com/gatherctl/gather/internal/model"
)

// summarySentences is how many leading sentences the extractive summary keeps.
const summarySentences = 3

// Scraper collects articles from the configured listing pages.
type Scraper struct {
	fetcher *fetch.Client
	cfg     *config.Config
	logger  *slog.Logger
	sleepFn func(ctx context.Context, d time.Duration) error
}

// NewScraper creates a Scraper using cfg's news settings.
func NewScraper(fetcher *fetch.Client, cfg *config.Config, logger *slog.Logger) *Scraper {
	return &Scraper{
		fetcher: fetcher,
		cfg:     cfg,
		logger:  logger,
		sleepFn: sleepContext,
	}
}

// Collect visits up to cfg.MaxCategories listing pages in order and scrapes
// up to cfg.ArticlesPerCategory articles from each. Failures are recorded
// per category or per article and never abort the run; only context
// cancellation does.
func (s *Scraper) Collect(ctx context.Context, run *model.Run) error {
	sources := s.cfg.Sources.News
	base, err := url.Parse(sources.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", sources.BaseURL, err)
	}

	categories := sources.Categories
	if len(categories) > s.cfg.MaxCategories {
		categories = categories[:s.cfg.MaxCategories]
	}

	for page, category := range categories {
		if page > 0 {
			if err := s.sleepFn(ctx, s.cfg.CategoryDelay); err != nil {
				return err
			}
		}

		s.logger.Debug("scraping category", "category", category.Name, "url", category.URL)

		if err := s.scrapeCategory(ctx, run, base, page+1, category); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			run.AddError(fmt.Sprintf("%s: %v", category.Name, err))
			s.logger.Warn("category failed", "category", category.Name, "error", err)
		}
	}

	return nil
}

// scrapeCategory processes one listing page.
func (s *Scraper) scrapeCategory(ctx context.Context, run *model.Run, base *url.URL, page int, category config.Category) error {
	body, err := s.fetcher.Get(ctx, category.URL, nil)
	if err != nil {
		return err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to parse listing page: %w", err)
	}

	titles := findTitles(doc, s.cfg.Sources.News.TitleSelectors)
	if len(titles) == 0 {
		return fmt.Errorf("no articles found")
	}

	if len(titles) > s.cfg.ArticlesPerCategory {
		titles = titles[:s.cfg.ArticlesPerCategory]
	}

	for i, titleSel := range titles {
		if i > 0 {
			if err := s.sleepFn(ctx, s.cfg.ArticleDelay); err != nil {
				return err
			}
		}

		article, err := s.scrapeArticle(ctx, base, page, category, titleSel)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			run.AddError(fmt.Sprintf("%s article %d: %v", category.Name, i+1, err))
			s.logger.Warn("article failed", "category", category.Name, "index", i+1, "error", err)
			continue
		}

		run.Articles = append(run.Articles, *article)
	}

	return nil
}

// findTitles tries each selector in order and returns the matches of the
// first selector that finds anything.
func findTitles(doc *goquery.Document, selectors []string) []*goquery.Selection {
	for _, selector := range selectors {
		matched := doc.Find(selector)
		if matched.Length() == 0 {
			continue
		}
		titles := make([]*goquery.Selection, 0, matched.Length())
		matched.Each(func(_ int, sel *goquery.Selection) {
			titles = append(titles, sel)
		})
		return titles
	}
	return nil
}

// scrapeArticle resolves the link behind one headline, fetches the article
// body, and builds the record.
func (s *Scraper) scrapeArticle(ctx context.Context, base *url.URL, page int, category config.Category, titleSel *goquery.Selection) (*model.Article, error) {
	title := CleanText(titleSel.Text())

	href, ok := findLink(titleSel)
	if !ok {
		return nil, fmt.Errorf("no link found for %q", truncateForLog(title))
	}

	link, err := resolveLink(base, href)
	if err != nil {
		return nil, fmt.Errorf("bad link %q: %w", href, err)
	}

	content, err := s.extractContent(ctx, link)
	if err != nil {
		return nil, err
	}

	return &model.Article{
		Page:           page,
		Category:       category.Name,
		Title:          title,
		Link:           link,
		ContentPreview: Preview(content),
		Summary:        Summarize(content, summarySentences),
		ContentLength:  len([]rune(content)),
		ScrapedAt:      model.FormatTimestamp(time.Now()),
	}, nil
}

// findLink locates the anchor belonging to a headline: inside the headline
// element first, then the nearest ancestor anchor, then the first anchor
// anywhere under an ancestor. Listing layouts vary per section, so all
// three shapes occur.
func findLink(titleSel *goquery.Selection) (string, bool) {
	if href, ok := titleSel.Find("a").First().Attr("href"); ok {
		return href, true
	}
	if href, ok := titleSel.Closest("a").Attr("href"); ok {
		return href, true
	}

	var href string
	var found bool
	titleSel.Parents().EachWithBreak(func(_ int, parent *goquery.Selection) bool {
		if h, ok := parent.Find("a").First().Attr("href"); ok {
			href, found = h, true
			return false
		}
		return true
	})
	return href, found
}

// resolveLink makes href absolute against base.
func resolveLink(base *url.URL, href string) (string, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}

// extractContent fetches an article page and extracts the body text using
// the configured selector chain. The first selector that matches a
// container wins; the text of every paragraph and div under it is joined.
// An article whose container matches nothing yields empty content rather
// than an error, mirroring listing entries that point at video or
// interactive pages.
func (s *Scraper) extractContent(ctx context.Context, link string) (string, error) {
	body, err := s.fetcher.Get(ctx, link, nil)
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to parse article page: %w", err)
	}

	for _, selector := range s.cfg.Sources.News.ContentSelectors {
		container := doc.Find(selector).First()
		if container.Length() == 0 {
			continue
		}
		return CleanText(containerText(container.Get(0))), nil
	}

	return "", nil
}

// containerText walks the container's DOM subtree and joins the text of
// every paragraph and div element, skipping empty ones.
func containerText(root *html.Node) string {
	var parts []string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.DataAtom == atom.P || n.DataAtom == atom.Div) {
			if text := strings.TrimSpace(nodeText(n)); text != "" {
				parts = append(parts, text)
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for child := root.FirstChild; child != nil; child = child.NextSibling {
		walk(child)
	}

	return strings.Join(parts, " ")
}

// nodeText concatenates all text nodes under n.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return b.String()
}

// truncateForLog shortens titles for error messages.
func truncateForLog(s string) string {
	runes := []rune(s)
	if len(runes) > 50 {
		return string(runes[:50]) + "..."
	}
	return s
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
