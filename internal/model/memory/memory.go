package memory

import "time"

// ExcerptLength is the number of characters of content kept in a Summary.
const ExcerptLength = 115

// ExcerptSuffix is appended to every excerpt, even when content is shorter
// than ExcerptLength.
const ExcerptSuffix = "..."

// Memory is a note owned by a single user.
//
// ID, UserID and CreatedAt are fixed at creation. Content, ConvertURL and
// IsPublic are the only mutable fields.
type Memory struct {
	ID         string    `json:"id" db:"id"`
	Content    string    `json:"content" db:"content"`
	ConvertURL string    `json:"convertUrl" db:"convert_url"`
	IsPublic   bool      `json:"isPublic" db:"is_public"`
	UserID     string    `json:"userId" db:"user_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// Summary is the list projection of a Memory. It never carries the full
// content, the owner or the visibility flag.
type Summary struct {
	ID         string    `json:"id"`
	ConvertURL string    `json:"convertUrl"`
	Excerpt    string    `json:"excerpt"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CanRead reports whether subject may read m: owners always can, everyone
// else only when m is public.
func (m *Memory) CanRead(subject string) bool {
	return m.IsPublic || m.UserID == subject
}

// CanWrite reports whether subject may update or delete m.
func (m *Memory) CanWrite(subject string) bool {
	return m.UserID == subject
}

// Summarize projects m into its list view.
func (m *Memory) Summarize() Summary {
	return Summary{
		ID:         m.ID,
		ConvertURL: m.ConvertURL,
		Excerpt:    Excerpt(m.Content),
		CreatedAt:  m.CreatedAt,
	}
}

// Excerpt returns the first ExcerptLength characters of content followed by
// ExcerptSuffix. Characters are counted as runes so multi-byte text is never
// cut in half.
func Excerpt(content string) string {
	n := 0
	for i := range content {
		if n == ExcerptLength {
			return content[:i] + ExcerptSuffix
		}
		n++
	}
	return content + ExcerptSuffix
}

// Summaries projects a slice of memories, preserving order. The result is
// never nil so it always encodes as a JSON array.
func Summaries(memories []Memory) []Summary {
	out := make([]Summary, 0, len(memories))
	for i := range memories {
		out = append(out, memories[i].Summarize())
	}
	return out
}
