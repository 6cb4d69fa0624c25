package domain

// Domain contains core models and interfaces.

// Article is the normalized result unit produced by every news source.
// It is a plain value: two articles are equal when all fields are equal.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// NewArticle builds an Article from already-normalized fields.
func NewArticle(title, description, url string) Article {
	return Article{Title: title, Description: description, URL: url}
}
