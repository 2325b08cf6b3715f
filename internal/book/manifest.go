package book

import (
	"fmt"
	"io"

	yaml "gopkg.in/yaml.v3"

	"github.com/justyntemme/folio/pkg/models"
)

// ParseManifest reads a YAML book:
//
//	title: My Book
//	pages:
//	  - title: Cover
//	    body: |
//	      ...
//	    illustration: assets/images/cover.png
//	    refs: [{text: Chapter 1, page: 1}]
//	toc:
//	  - {title: Chapter 1, page: 1}
func ParseManifest(r io.Reader) (*models.Book, error) {
	var b models.Book
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&b); err != nil {
		if err == io.EOF {
			return nil, ErrNoPages
		}
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &b, nil
}
