// Package extract builds the two URL sets checked for every export: the
// attachment posts, and the image references found in the file's text.
package extract

import (
	"wxr_validator/internal/models"
	"wxr_validator/internal/urlset"
)

// Attachments returns the image attachments of posts keyed by post id.
// A URL shared by several attachments is kept once, under the first id.
func Attachments(posts []models.PostRecord) *urlset.Set {
	all := urlset.New()
	for _, post := range posts {
		if post.PostType != models.PostTypeAttachment {
			continue
		}
		all.Add(post.PostID, post.URL())
	}

	return all.Filter(func(e urlset.Entry) bool {
		return urlset.HasImageExtension(e.URL)
	})
}
