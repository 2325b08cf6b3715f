package models

// Book is a fixed, ordered sequence of pages plus its table of contents
type Book struct {
	Title string     `yaml:"title" json:"title"`
	Pages []Page     `yaml:"pages" json:"pages"`
	TOC   []TOCEntry `yaml:"toc" json:"toc"`

	// Source path the book was loaded from (not persisted)
	Source string `yaml:"-" json:"-"`
}

// PageCount returns the number of pages in the book
func (b *Book) PageCount() int {
	return len(b.Pages)
}

// Page is a single renderable unit of a book
type Page struct {
	Title        string    `yaml:"title" json:"title"`
	Body         string    `yaml:"body" json:"body"`
	Illustration string    `yaml:"illustration,omitempty" json:"illustration,omitempty"`
	Refs         []PageRef `yaml:"refs,omitempty" json:"refs,omitempty"`
}

// TOCEntry links a table of contents title to a page index
type TOCEntry struct {
	Title string `yaml:"title" json:"title"`
	Page  int    `yaml:"page" json:"page"`
}

// PageRef is a page-reference link embedded in page content
type PageRef struct {
	Text string `yaml:"text" json:"text"`
	Page int    `yaml:"page" json:"page"`
}

// Prompt describes one illustration to pre-render
type Prompt struct {
	Name   string `yaml:"name"`
	Title  string `yaml:"title,omitempty"`
	Prompt string `yaml:"prompt"`
}

// PromptFile is the on-disk list of illustration prompts
type PromptFile struct {
	Prompts []Prompt `yaml:"prompts"`
}
