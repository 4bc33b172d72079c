package extract

import (
	"regexp"

	"wxr_validator/internal/urlset"
)

// A reference is an optional http(s) scheme and host, a "/", a path, an image
// extension and an optional query string, enclosed in matching quotes. The
// body may hold the other quote character but never its own, nor a newline:
// "/foo/bar's.jpg" is one reference.
var reQuotedImage = regexp.MustCompile(
	`(?i)"((?:https?://[^"\n]+?)?/[^"\n]+?\.(?:png|gif|jpe?g)(?:\?[^"\n]*?)?)"` +
		`|'((?:https?://[^'\n]+?)?/[^'\n]+?\.(?:png|gif|jpe?g)(?:\?[^'\n]*?)?)'`,
)

type ScanOptions struct {
	// ProbeOriginal keeps the reference as written (with its -WxH suffix)
	// as the URL to check. Exclusion and dedup always use the stripped form.
	ProbeOriginal bool
}

// MatchReferences returns every quoted image reference in raw, in order of
// appearance, before any normalization.
func MatchReferences(raw []byte) []string {
	var refs []string
	for _, m := range reQuotedImage.FindAllSubmatch(raw, -1) {
		if len(m[1]) > 0 {
			refs = append(refs, string(m[1]))
		} else {
			refs = append(refs, string(m[2]))
		}
	}
	return refs
}

// ScanInline finds image references in the raw export text that are not
// already covered by exclude.
func ScanInline(raw []byte, exclude *urlset.Set, baseURL string, opts ScanOptions) *urlset.Set {
	return Collect(MatchReferences(raw), exclude, baseURL, opts)
}

// Collect qualifies each reference against baseURL, strips size suffixes and
// drops references already in exclude or seen earlier.
func Collect(refs []string, exclude *urlset.Set, baseURL string, opts ScanOptions) *urlset.Set {
	known := make(map[string]bool, exclude.Len())
	for _, e := range exclude.Entries() {
		known[e.URL] = true
		known[urlset.StripSizeSuffix(e.URL)] = true
	}

	seen := make(map[string]bool)
	out := urlset.New()
	for _, ref := range refs {
		qualified := urlset.Qualify(ref, baseURL)
		normalized := urlset.StripSizeSuffix(qualified)
		if known[qualified] || known[normalized] || seen[normalized] {
			continue
		}
		seen[normalized] = true

		if opts.ProbeOriginal {
			out.Add(ref, qualified)
		} else {
			out.Add(ref, normalized)
		}
	}
	return out
}
