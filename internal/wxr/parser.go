// Package wxr reads WordPress eXtended RSS exports into post records.
package wxr

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"wxr_validator/internal/models"

	"golang.org/x/net/html/charset"
)

var ErrMissingVersion = errors.New("missing or invalid WXR version number")

type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Sorry, there was an error parsing `%s`. Is it a valid WXR file?", e.File)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseBytes parses raw and tags any failure with file.
func ParseBytes(file string, raw []byte) (*models.ImportData, error) {
	data, err := Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, &ParseError{File: file, Err: err}
	}
	return data, nil
}

// Parse streams the export and collects every <item> in document order.
// Documents that declare a non UTF-8 encoding are transcoded on the fly.
func Parse(r io.Reader) (*models.ImportData, error) {
	d := xml.NewDecoder(r)
	d.CharsetReader = charset.NewReaderLabel

	data := &models.ImportData{}
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch {
		case se.Name.Local == "item":
			post, err := decodeItem(d)
			if err != nil {
				return nil, err
			}
			data.Posts = append(data.Posts, post)
		case isWP(se.Name, "wxr_version"):
			if data.Version, err = text(d, se); err != nil {
				return nil, err
			}
		case isWP(se.Name, "base_site_url"):
			if data.BaseSiteURL, err = text(d, se); err != nil {
				return nil, err
			}
		case isWP(se.Name, "base_blog_url"):
			if data.BaseURL, err = text(d, se); err != nil {
				return nil, err
			}
		}
	}

	if data.Version == "" {
		return nil, ErrMissingVersion
	}
	if data.BaseURL == "" {
		data.BaseURL = data.BaseSiteURL
	}
	return data, nil
}

func decodeItem(d *xml.Decoder) (models.PostRecord, error) {
	var post models.PostRecord
	for {
		tok, err := d.Token()
		if err != nil {
			return post, fmt.Errorf("decode item: %w", err)
		}

		switch t := tok.(type) {
		case xml.EndElement:
			return post, nil
		case xml.StartElement:
			var dst *string
			trim := true
			switch {
			case t.Name.Local == "title" && !isWPSpace(t.Name.Space):
				dst = &post.Title
			case t.Name.Local == "guid":
				dst = &post.GUID
			case t.Name.Local == "encoded" && strings.Contains(t.Name.Space, "excerpt"):
				dst, trim = &post.Excerpt, false
			case t.Name.Local == "encoded":
				dst, trim = &post.Content, false
			case isWP(t.Name, "post_id"):
				dst = &post.PostID
			case isWP(t.Name, "post_type"):
				dst = &post.PostType
			case isWP(t.Name, "attachment_url"):
				dst = &post.AttachmentURL
			}

			if dst == nil {
				if err := d.Skip(); err != nil {
					return post, fmt.Errorf("decode item: %w", err)
				}
				continue
			}

			var s string
			if err := d.DecodeElement(&s, &t); err != nil {
				return post, fmt.Errorf("decode %s: %w", t.Name.Local, err)
			}
			if trim {
				s = strings.TrimSpace(s)
			}
			*dst = s
		}
	}
}

func text(d *xml.Decoder, se xml.StartElement) (string, error) {
	var s string
	if err := d.DecodeElement(&s, &se); err != nil {
		return "", fmt.Errorf("decode %s: %w", se.Name.Local, err)
	}
	return strings.TrimSpace(s), nil
}

// isWPSpace accepts the versioned export namespaces
// (http://wordpress.org/export/1.0/ through 1.2) and a bare undeclared prefix.
func isWPSpace(space string) bool {
	if space == "wp" {
		return true
	}
	return strings.HasPrefix(space, "http://wordpress.org/export/") && !strings.Contains(space, "excerpt")
}

func isWP(name xml.Name, local string) bool {
	return name.Local == local && isWPSpace(name.Space)
}
