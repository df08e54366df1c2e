package model

import "time"

// DefaultAuthor is stored when an article is created without an author.
const DefaultAuthor = "Anónimo"

// MinTitleLength is the minimum number of characters of a trimmed title.
const MinTitleLength = 2

// Article data model. Stores hand out copies, never the stored value.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Author      string    `json:"author"`
	Views       int64     `json:"views"`
	Likes       int64     `json:"likes"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewArticle is the validated create command passed from the API layer to a
// store. ID, CreatedAt and Likes are always assigned by the store.
type NewArticle struct {
	Title       string
	Description string
	Author      string
	Views       int64
}

// Normalize enforces the representation invariants every store applies on
// create, whatever the caller already did.
func (n NewArticle) Normalize() NewArticle {
	if n.Author == "" {
		n.Author = DefaultAuthor
	}
	if n.Views < 0 {
		n.Views = 0
	}

	return n
}
