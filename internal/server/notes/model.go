package notes

// Note is a single note record. Notes live in one shared space; there is
// no per-user ownership. The id is assigned by the backing store at
// creation and is never reused after deletion.
type Note struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Patch describes a partial update. Nil fields keep their stored value.
type Patch struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// Empty reports whether the patch carries no fields at all.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Content == nil
}
