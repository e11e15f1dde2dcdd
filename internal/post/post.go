package post

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Post is a single portfolio entry. Posts are built once by the Loader
// and never mutated afterwards.
type Post struct {
	ID          string
	Title       string
	Date        time.Time
	RawDate     string // original date string, kept for display
	Description string
	Tags        []string
	Image       string       // banner/thumbnail image URL
	Gallery     []GalleryRef // additional images
	Content     Content
	Featured    bool
	Pinned      bool
}

// GalleryRef is an image reference as it appears in post data, before
// any load verification has happened.
type GalleryRef struct {
	Src     string `json:"src"`
	Alt     string `json:"alt"`
	Caption string `json:"caption,omitempty"`
}

// Content is either a pre-built HTML string or an ordered block sequence.
// Exactly one of HTML and Blocks is populated.
type Content struct {
	HTML   string
	Blocks []Block
}

// IsHTML reports whether the content came in as a raw HTML string.
func (c Content) IsHTML() bool { return len(c.Blocks) == 0 && c.HTML != "" }

// UnmarshalJSON accepts both content shapes: a plain string, or an
// array of typed blocks.
func (c *Content) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		return json.Unmarshal(data, &c.HTML)
	}
	return json.Unmarshal(data, &c.Blocks)
}

// BlockKind enumerates every supported content block type. The set is
// closed: decoding maps anything else to KindUnknown, which renderers
// must handle as an explicit fallback case.
type BlockKind string

const (
	KindParagraph  BlockKind = "paragraph"
	KindHeading    BlockKind = "heading"
	KindList       BlockKind = "list"
	KindCode       BlockKind = "code"
	KindBlockquote BlockKind = "blockquote"
	KindImage      BlockKind = "image"
	KindLink       BlockKind = "link"
	KindTwoColumn  BlockKind = "twoColumn"
	KindCallout    BlockKind = "callout"
	KindDivider    BlockKind = "divider"
	KindVideo      BlockKind = "video"
	KindUnknown    BlockKind = "unknown"
)

// Block is one typed unit of structured post content. Only the fields
// relevant to its Kind are populated.
type Block struct {
	Kind    BlockKind
	RawType string // the original type tag, kept so unknown kinds stay diagnosable

	Text     string  // paragraph, blockquote, callout body, heading text, list heading
	Level    int     // heading level 1-6
	Items    []string
	Ordered  bool
	Language string
	Code     string
	Src      string
	Alt      string
	Caption  string
	URL      string
	Label    string
	Title    string  // callout title
	Left     []Block // twoColumn
	Right    []Block
}

// blockJSON mirrors the wire shape of a block.
type blockJSON struct {
	Type     string   `json:"type"`
	Text     string   `json:"text"`
	Content  string   `json:"content"`
	Level    int      `json:"level"`
	Items    []string `json:"items"`
	Ordered  bool     `json:"ordered"`
	Language string   `json:"language"`
	Code     string   `json:"code"`
	Src      string   `json:"src"`
	Alt      string   `json:"alt"`
	Caption  string   `json:"caption"`
	URL      string   `json:"url"`
	Label    string   `json:"label"`
	Title    string   `json:"title"`
	Left     []Block  `json:"left"`
	Right    []Block  `json:"right"`
}

var kindByTag = map[string]BlockKind{
	"paragraph":  KindParagraph,
	"heading":    KindHeading,
	"list":       KindList,
	"code":       KindCode,
	"blockquote": KindBlockquote,
	"quote":      KindBlockquote,
	"image":      KindImage,
	"link":       KindLink,
	"twoColumn":  KindTwoColumn,
	"two-column": KindTwoColumn,
	"callout":    KindCallout,
	"divider":    KindDivider,
	"video":      KindVideo,
}

// UnmarshalJSON maps the wire "type" tag onto the closed BlockKind set.
func (b *Block) UnmarshalJSON(data []byte) error {
	var raw blockJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	kind, ok := kindByTag[raw.Type]
	if !ok {
		kind = KindUnknown
	}

	text := raw.Text
	if text == "" {
		text = raw.Content
	}

	*b = Block{
		Kind:     kind,
		RawType:  raw.Type,
		Text:     text,
		Level:    raw.Level,
		Items:    raw.Items,
		Ordered:  raw.Ordered,
		Language: raw.Language,
		Code:     raw.Code,
		Src:      raw.Src,
		Alt:      raw.Alt,
		Caption:  raw.Caption,
		URL:      raw.URL,
		Label:    raw.Label,
		Title:    raw.Title,
		Left:     raw.Left,
		Right:    raw.Right,
	}
	return nil
}

// postJSON mirrors the wire shape of a full post record, including the
// legacy gallery/thumbnail structure.
type postJSON struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Tags        []string        `json:"tags"`
	Image       string          `json:"image"`
	Thumbnail   string          `json:"thumbnail"`
	Gallery     json.RawMessage `json:"gallery"`
	Content     Content         `json:"content"`
	Featured    bool            `json:"featured"`
	Pinned      bool            `json:"pinned"`
}

// legacyGallery is the older object form: {thumbnail, images: [...]}.
type legacyGallery struct {
	Thumbnail string       `json:"thumbnail"`
	Images    []GalleryRef `json:"images"`
}

// UnmarshalJSON decodes a post record, tolerating both the current and
// legacy gallery shapes and missing optional fields.
func (p *Post) UnmarshalJSON(data []byte) error {
	var raw postJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	date, err := ParseDate(raw.Date)
	if err != nil {
		return fmt.Errorf("post %s: %w", raw.ID, err)
	}

	*p = Post{
		ID:          raw.ID,
		Title:       raw.Title,
		Date:        date,
		RawDate:     raw.Date,
		Description: raw.Description,
		Tags:        DedupeTags(raw.Tags),
		Image:       raw.Image,
		Content:     raw.Content,
		Featured:    raw.Featured,
		Pinned:      raw.Pinned,
	}
	if p.Image == "" {
		p.Image = raw.Thumbnail
	}

	if len(raw.Gallery) > 0 {
		gallery, thumb, err := parseGallery(raw.Gallery)
		if err != nil {
			return fmt.Errorf("post %s: gallery: %w", raw.ID, err)
		}
		p.Gallery = gallery
		if p.Image == "" {
			p.Image = thumb
		}
	}

	return nil
}

// parseGallery accepts either an array of image refs or the legacy
// {thumbnail, images} object.
func parseGallery(data json.RawMessage) ([]GalleryRef, string, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		return nil, "", nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var refs []GalleryRef
		if err := json.Unmarshal(data, &refs); err != nil {
			return nil, "", err
		}
		return refs, "", nil
	}
	var legacy legacyGallery
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, "", err
	}
	return legacy.Images, legacy.Thumbnail, nil
}

// dateFormats are the accepted post date layouts, most specific first.
var dateFormats = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01",
	"2006",
}

// ParseDate parses a post date string. An empty date is an error: dates
// drive ordering everywhere and cannot be defaulted silently.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("missing date")
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// DedupeTags returns the tags with duplicates removed, first occurrence
// wins, original order preserved.
func DedupeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	var out []string
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// TagUniverse returns the sorted set of distinct tags across all posts.
func TagUniverse(posts []Post) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range posts {
		for _, t := range p.Tags {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	sort.Strings(out)
	return out
}
