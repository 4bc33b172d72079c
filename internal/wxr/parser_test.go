package wxr

import (
	"errors"
	"strings"
	"testing"
)

const sampleExport = `<?xml version="1.0" encoding="UTF-8" ?>
<rss version="2.0"
	xmlns:excerpt="http://wordpress.org/export/1.2/excerpt/"
	xmlns:content="http://purl.org/rss/1.0/modules/content/"
	xmlns:wfw="http://wellformedweb.org/CommentAPI/"
	xmlns:dc="http://purl.org/dc/elements/1.1/"
	xmlns:wp="http://wordpress.org/export/1.2/">
<channel>
	<title>Example</title>
	<wp:wxr_version>1.2</wp:wxr_version>
	<wp:base_site_url>http://example.com</wp:base_site_url>
	<wp:base_blog_url>http://blog.example.com</wp:base_blog_url>
	<item>
		<title>Hello</title>
		<guid isPermaLink="false">http://blog.example.com/?p=1</guid>
		<content:encoded><![CDATA[<p><img src="/wp-content/uploads/a-300x200.jpg" /></p>]]></content:encoded>
		<excerpt:encoded><![CDATA[short]]></excerpt:encoded>
		<wp:post_id>1</wp:post_id>
		<wp:post_type>post</wp:post_type>
		<wp:postmeta>
			<wp:meta_key>_thumbnail_id</wp:meta_key>
			<wp:meta_value><![CDATA[5]]></wp:meta_value>
		</wp:postmeta>
	</item>
	<item>
		<title>a</title>
		<guid isPermaLink="false">http://blog.example.com/?attachment_id=5</guid>
		<wp:post_id>5</wp:post_id>
		<wp:post_type>attachment</wp:post_type>
		<wp:attachment_url>http://blog.example.com/wp-content/uploads/a.jpg</wp:attachment_url>
	</item>
</channel>
</rss>`

func TestParse(t *testing.T) {
	data, err := Parse(strings.NewReader(sampleExport))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if data.Version != "1.2" {
		t.Fatalf("expected version 1.2, got %q", data.Version)
	}
	if data.BaseURL != "http://blog.example.com" {
		t.Fatalf("expected blog url, got %q", data.BaseURL)
	}
	if data.BaseSiteURL != "http://example.com" {
		t.Fatalf("expected site url, got %q", data.BaseSiteURL)
	}
	if len(data.Posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(data.Posts))
	}

	post := data.Posts[0]
	if post.PostID != "1" || post.PostType != "post" || post.Title != "Hello" {
		t.Fatalf("unexpected post: %+v", post)
	}
	if !strings.Contains(post.Content, `src="/wp-content/uploads/a-300x200.jpg"`) {
		t.Fatalf("content not captured: %q", post.Content)
	}
	if post.Excerpt != "short" {
		t.Fatalf("expected excerpt, got %q", post.Excerpt)
	}

	att := data.Posts[1]
	if att.PostType != "attachment" || att.PostID != "5" {
		t.Fatalf("unexpected attachment: %+v", att)
	}
	if att.URL() != "http://blog.example.com/wp-content/uploads/a.jpg" {
		t.Fatalf("unexpected attachment url %q", att.URL())
	}
}

func TestParseFallsBackToSiteURL(t *testing.T) {
	doc := `<rss xmlns:wp="http://wordpress.org/export/1.1/"><channel>
		<wp:wxr_version>1.1</wp:wxr_version>
		<wp:base_site_url>http://site.example.com</wp:base_site_url>
	</channel></rss>`

	data, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if data.BaseURL != "http://site.example.com" {
		t.Fatalf("expected site url fallback, got %q", data.BaseURL)
	}
	if len(data.Posts) != 0 {
		t.Fatalf("expected no posts, got %d", len(data.Posts))
	}
}

func TestParseGUIDFallback(t *testing.T) {
	doc := `<rss xmlns:wp="http://wordpress.org/export/1.0/"><channel>
		<wp:wxr_version>1.0</wp:wxr_version>
		<item>
			<guid>http://example.com/wp-content/uploads/b.png</guid>
			<wp:post_id>9</wp:post_id>
			<wp:post_type>attachment</wp:post_type>
		</item>
	</channel></rss>`

	data, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := data.Posts[0].URL(); got != "http://example.com/wp-content/uploads/b.png" {
		t.Fatalf("expected guid fallback, got %q", got)
	}
}

func TestParseLatin1(t *testing.T) {
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
		`<rss xmlns:wp="http://wordpress.org/export/1.2/"><channel>
		<wp:wxr_version>1.2</wp:wxr_version>
		<item><title>caf` + "\xe9" + `</title><wp:post_id>3</wp:post_id><wp:post_type>post</wp:post_type></item>
	</channel></rss>`

	data, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if data.Posts[0].Title != "café" {
		t.Fatalf("expected transcoded title, got %q", data.Posts[0].Title)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "malformed", doc: `<rss><channel><item><title>x</channel></rss>`},
		{name: "not xml", doc: `just some text`},
		{name: "missing version", doc: `<rss><channel><title>x</title></channel></rss>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.doc)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParseBytesWrapsFile(t *testing.T) {
	_, err := ParseBytes("dir/broken.xml", []byte(`<rss><channel>`))
	if err == nil {
		t.Fatal("expected error")
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if perr.File != "dir/broken.xml" {
		t.Fatalf("unexpected file %q", perr.File)
	}
	if !strings.Contains(err.Error(), "`dir/broken.xml`") {
		t.Fatalf("message should name the file: %q", err.Error())
	}
}
