package crawler

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/nao1215/philowalk/internal/model"
	"github.com/nao1215/philowalk/internal/wiki"
)

const (
	// mainContentSelector locates the container holding the rendered article body.
	mainContentSelector = "#mw-content-text .mw-parser-output"

	// proseBlockSelector keeps paragraphs without id or class. Infoboxes,
	// hatnotes and other decorations are rendered with one or the other.
	proseBlockSelector = "p:not([id]):not([class])"
)

// headingMatcher finds the rendered article title.
var headingMatcher = cascadia.MustCompile("h1#firstHeading")

// ArticleContent is the main prose of one fetched article.
type ArticleContent struct {
	// URL is the article the content was fetched from.
	URL model.ArticleURL

	// Title is the text of the first heading, empty if the page has none.
	Title string

	// Blocks are the prose paragraphs in document order.
	Blocks []*html.Node

	// pruned is set once the parenthetical asides have been removed from Blocks.
	pruned bool
}

// ParseArticle parses an article HTML document and selects its prose blocks.
// It returns ErrContentNotFound if the main content container is missing.
func ParseArticle(u model.ArticleURL, r io.Reader) (*ArticleContent, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", u, err)
	}
	return NewArticleContent(u, doc)
}

// NewArticleContent selects the prose blocks from an already parsed document.
func NewArticleContent(u model.ArticleURL, doc *goquery.Document) (*ArticleContent, error) {
	container := doc.Find(mainContentSelector).First()
	if container.Length() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrContentNotFound, u)
	}

	return &ArticleContent{
		URL:    u,
		Title:  strings.TrimSpace(doc.FindMatcher(headingMatcher).First().Text()),
		Blocks: container.ChildrenFiltered(proseBlockSelector).Nodes,
	}, nil
}

// Links returns the qualifying links of the article in reading order, resolved
// against origin. The first call strips the first parenthetical aside of every
// block; later calls reuse the pruned blocks and return the same links.
// Duplicates are kept.
func (c *ArticleContent) Links(origin string) []model.ArticleURL {
	if !c.pruned {
		for _, block := range c.Blocks {
			RemoveParens(block)
		}
		c.pruned = true
	}

	links := make([]model.ArticleURL, 0)
	for _, block := range c.Blocks {
		links = append(links, ExtractLinks(block, origin)...)
	}
	return links
}

// RemoveParens removes the first parenthetical span from the direct children
// of block. Scanning stops at the first text node containing ")", which is
// removed too, so later parentheses in the block are left alone. Only text
// nodes move the inside/outside state; elements inside the span are removed
// without being inspected.
func RemoveParens(block *html.Node) {
	inside := false

	for c := block.FirstChild; c != nil; {
		next := c.NextSibling

		if c.Type == html.TextNode {
			opens := strings.Contains(c.Data, "(")
			closes := strings.Contains(c.Data, ")")
			switch {
			case opens:
				inside = true
			case closes:
				inside = false
			}
			if closes {
				block.RemoveChild(c)
				return
			}
		}

		if inside {
			block.RemoveChild(c)
		}
		c = next
	}
}

// ExtractLinks collects the anchors under block in document order. Each href
// has its fragment stripped, is dropped unless wiki.IsQualifyingLink accepts
// it, and is then resolved against origin.
func ExtractLinks(block *html.Node, origin string) []model.ArticleURL {
	links := make([]model.ArticleURL, 0)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			href := wiki.StripFragment(getAttr(n, "href"))
			if wiki.IsQualifyingLink(href) {
				links = append(links, wiki.NormalizeLink(href, origin))
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for c := block.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return links
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
