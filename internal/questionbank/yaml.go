package questionbank

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// yamlBank is the document shape of a YAML bank:
//
//	questions:
//	  - id: 1
//	    concept: Fractions
//	    ...
type yamlBank struct {
	Questions []Row `yaml:"questions"`
}

// ReadYAML reads a YAML bank. Rows are numbered by list position.
func ReadYAML(r io.Reader) ([]Row, error) {
	var doc yamlBank
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, ErrEmptyBank
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	for i := range doc.Questions {
		doc.Questions[i].Line = i + 1
	}
	return doc.Questions, nil
}
