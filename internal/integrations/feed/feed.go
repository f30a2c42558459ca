package feed

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/silsilah/bloglist-service/internal/config"
	"github.com/silsilah/bloglist-service/internal/models"
)

// Renderer produces an RSS 2.0 document from a blog listing
type Renderer struct {
	title       string
	link        string
	description string
}

// NewRenderer initializes a feed renderer from configuration
func NewRenderer(cfg *config.Config) *Renderer {
	return &Renderer{
		title:       cfg.FeedTitle,
		link:        cfg.FeedLink,
		description: cfg.FeedDescription,
	}
}

// Render builds the RSS document. Items appear in the order given, which
// the caller is expected to have sorted by likes already.
func (r *Renderer) Render(blogs []*models.BlogView) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	rss := doc.CreateElement("rss")
	rss.CreateAttr("version", "2.0")

	channel := rss.CreateElement("channel")
	channel.CreateElement("title").SetText(r.title)
	channel.CreateElement("link").SetText(r.link)
	channel.CreateElement("description").SetText(r.description)

	for _, blog := range blogs {
		item := channel.CreateElement("item")
		item.CreateElement("title").SetText(blog.Title)
		item.CreateElement("link").SetText(blog.URL)
		item.CreateElement("description").SetText(
			fmt.Sprintf("by %s, %d likes", blog.Author, blog.Likes))
		guid := item.CreateElement("guid")
		guid.CreateAttr("isPermaLink", "false")
		guid.SetText(blog.ID)
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render feed: %w", err)
	}
	return out, nil
}
