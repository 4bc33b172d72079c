package extract

import (
	"regexp"
	"strings"

	"wxr_validator/internal/models"
	"wxr_validator/internal/urlset"

	"github.com/PuerkitoBio/goquery"
)

var reImageRef = regexp.MustCompile(`(?i)^(?:https?://[^\n]+?)?/[^\n]+?\.(?:png|gif|jpe?g)(?:\?[^\n]*)?$`)

var refAttributes = []string{"src", "href"}

// MarkupReferences walks the HTML of every post body and excerpt and returns
// the src and href values that look like image references.
func MarkupReferences(posts []models.PostRecord) []string {
	var refs []string
	for _, post := range posts {
		for _, fragment := range []string{post.Content, post.Excerpt} {
			if strings.TrimSpace(fragment) == "" {
				continue
			}
			refs = append(refs, fragmentReferences(fragment)...)
		}
	}
	return refs
}

func fragmentReferences(fragment string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil
	}

	var refs []string
	doc.Find("[src], [href]").Each(func(i int, s *goquery.Selection) {
		for _, attr := range refAttributes {
			value, exists := s.Attr(attr)
			if !exists {
				continue
			}
			value = strings.TrimSpace(value)
			if reImageRef.MatchString(value) {
				refs = append(refs, value)
			}
		}
	})
	return refs
}

// ScanMarkup is the structured counterpart of ScanInline. Only post bodies
// and excerpts are searched, so references held in post meta or comments
// are not reported.
func ScanMarkup(posts []models.PostRecord, exclude *urlset.Set, baseURL string, opts ScanOptions) *urlset.Set {
	return Collect(MarkupReferences(posts), exclude, baseURL, opts)
}
