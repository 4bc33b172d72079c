package models

const PostTypeAttachment = "attachment"

// PostRecord is one <item> of a WXR export.
type PostRecord struct {
	PostID        string
	PostType      string
	Title         string
	GUID          string
	AttachmentURL string
	Content       string
	Excerpt       string
}

// URL returns attachment_url when set, guid otherwise.
func (p PostRecord) URL() string {
	if p.AttachmentURL != "" {
		return p.AttachmentURL
	}
	return p.GUID
}

type ImportData struct {
	Posts       []PostRecord
	BaseURL     string
	BaseSiteURL string
	Version     string
}

type Outcome struct {
	File string
	URL  string
	Key  string
	Err  string
}

func (o Outcome) Success() bool {
	return o.Err == ""
}
