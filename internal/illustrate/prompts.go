package illustrate

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
	"gopkg.in/yaml.v3"

	"github.com/justyntemme/folio/pkg/models"
)

// LoadPrompts reads the YAML prompt list at path
func LoadPrompts(path string) ([]models.Prompt, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open prompts: %w", err)
	}
	defer f.Close()

	prompts, err := ParsePrompts(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return prompts, nil
}

// ParsePrompts decodes a prompt list and fills in default file names. Every
// prompt needs text and either a name or a title, and names must be unique.
func ParsePrompts(r io.Reader) ([]models.Prompt, error) {
	var pf models.PromptFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&pf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unable to parse prompts: %w", err)
	}

	seen := make(map[string]int, len(pf.Prompts))
	for i := range pf.Prompts {
		p := &pf.Prompts[i]
		p.Prompt = strings.TrimSpace(p.Prompt)
		if p.Prompt == "" {
			return nil, fmt.Errorf("prompt %d has no text", i+1)
		}
		if p.Name == "" {
			if p.Title == "" {
				return nil, fmt.Errorf("prompt %d has neither name nor title", i+1)
			}
			base := slug.Make(p.Title)
			if base == "" {
				return nil, fmt.Errorf("prompt %d: title %q gives no file name, set a name", i+1, p.Title)
			}
			p.Name = base + ".png"
		}
		if filepath.Base(p.Name) != p.Name {
			return nil, fmt.Errorf("prompt %d: name %q must be a plain file name", i+1, p.Name)
		}
		if prev, ok := seen[p.Name]; ok {
			return nil, fmt.Errorf("prompts %d and %d both write %q", prev, i+1, p.Name)
		}
		seen[p.Name] = i + 1
	}
	return pf.Prompts, nil
}
