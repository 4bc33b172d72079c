package urlset

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

var (
	reSizeSuffix = regexp.MustCompile(`(?i)-\d+x\d+(\.(?:png|gif|jpe?g))(\?[^?#]*)?$`)
	reScheme     = regexp.MustCompile(`(?i)^https?://`)
)

var imageExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
	"png":  true,
}

type Entry struct {
	Key string
	URL string
}

// Set keeps entries in insertion order, unique by URL. The first key added
// for a URL wins.
type Set struct {
	urls    map[string]bool
	entries []Entry
}

func New() *Set {
	return &Set{
		urls:    make(map[string]bool),
		entries: make([]Entry, 0),
	}
}

func (s *Set) Add(key, urlStr string) bool {
	if s.urls == nil {
		s.urls = make(map[string]bool)
	}
	if s.urls[urlStr] {
		return false
	}
	s.urls[urlStr] = true
	s.entries = append(s.entries, Entry{Key: key, URL: urlStr})
	return true
}

func (s *Set) Contains(urlStr string) bool {
	if s == nil {
		return false
	}
	return s.urls[urlStr]
}

func (s *Set) Entries() []Entry {
	if s == nil {
		return nil
	}
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Filter returns a new set holding the entries for which keep returns true.
func (s *Set) Filter(keep func(Entry) bool) *Set {
	out := New()
	for _, e := range s.Entries() {
		if keep(e) {
			out.Add(e.Key, e.URL)
		}
	}
	return out
}

// StripSizeSuffix drops the "-WxH" token WordPress appends to resized
// image filenames, e.g. photo-150x150.jpg -> photo.jpg. Only the token at
// the end of the path counts; a query string may follow it. Stacked suffixes
// (a-1x2-3x4.jpg) are stripped until none is left so the result is stable.
func StripSizeSuffix(urlStr string) string {
	for {
		stripped := reSizeSuffix.ReplaceAllString(urlStr, "$1$2")
		if stripped == urlStr {
			return stripped
		}
		urlStr = stripped
	}
}

// Qualify prefixes base to references that carry no http(s) scheme.
func Qualify(urlStr, base string) string {
	if reScheme.MatchString(urlStr) {
		return urlStr
	}
	if strings.HasPrefix(urlStr, "//") {
		scheme := "https"
		if parsed, err := url.Parse(base); err == nil && parsed.Scheme != "" {
			scheme = parsed.Scheme
		}
		return scheme + ":" + urlStr
	}
	return base + urlStr
}

func HasImageExtension(urlStr string) bool {
	p := urlStr
	if parsed, err := url.Parse(urlStr); err == nil {
		p = parsed.Path
	} else if i := strings.IndexAny(p, "?#"); i != -1 {
		p = p[:i]
	}
	ext := strings.TrimPrefix(path.Ext(p), ".")
	return imageExtensions[strings.ToLower(ext)]
}
