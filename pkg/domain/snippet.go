// Package domain defines the snippet entity, the persistence contract that
// storage adapters implement, and the error taxonomy shared by the store,
// the adapters, and the CLI.
package domain

// Snippet is a single stored code fragment with its metadata.
type Snippet struct {
	ID       int      `json:"id"`
	Code     string   `json:"code"`
	Language string   `json:"lang"`
	Tags     []string `json:"tags"`
}

// CloneSnippet returns a deep copy so callers never share tag slices with the collection.
func CloneSnippet(s Snippet) Snippet {
	cp := s
	cp.Tags = cloneTags(s.Tags)
	return cp
}

// CloneSnippets deep copies a collection preserving order.
func CloneSnippets(in []Snippet) []Snippet {
	if in == nil {
		return nil
	}
	out := make([]Snippet, len(in))
	for i, s := range in {
		out[i] = CloneSnippet(s)
	}
	return out
}

// tags always serialize as an array, never null
func cloneTags(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
