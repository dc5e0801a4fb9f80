package questionbank

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const bankSchemaURL = "schema://question-bank.json"

// bankSchema describes the structure of a JSON bank. Field semantics
// (key letters, difficulty range, defaults) are left to sanitization so a
// single bad row does not reject the whole file.
const bankSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "id":           {"type": ["integer", "string"]},
      "concept":      {"type": ["string", "null"]},
      "difficulty":   {"type": ["number", "string", "null"]},
      "question":     {"type": "string"},
      "option_a":     {"type": ["string", "number"]},
      "option_b":     {"type": ["string", "number"]},
      "option_c":     {"type": ["string", "number"]},
      "option_d":     {"type": ["string", "number"]},
      "correct":      {"type": "string"},
      "explanation":  {"type": ["string", "null"]},
      "resource_url": {"type": ["string", "null"]}
    },
    "required": ["id", "question", "correct"]
  }
}`

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func bankSchemaValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var doc any
		if err := json.Unmarshal([]byte(bankSchema), &doc); err != nil {
			compileErr = fmt.Errorf("parse bank schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(bankSchemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add bank schema: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(bankSchemaURL)
	})
	return compiledSchema, compileErr
}

// ReadJSON reads a JSON bank: an array of row objects using the CSV column
// names as keys. The document is validated against bankSchema first.
func ReadJSON(r io.Reader) ([]Row, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read json: %w", err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := bankSchemaValidator()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	items, _ := doc.([]any)
	rows := make([]Row, 0, len(items))
	for i, item := range items {
		obj, _ := item.(map[string]any)
		field := func(name string) string { return jsonString(obj[name]) }
		rows = append(rows, Row{
			Line:        i + 1,
			ID:          field(colID),
			Concept:     field(colConcept),
			Difficulty:  field(colDifficulty),
			Question:    field(colQuestion),
			OptionA:     field(colOptionA),
			OptionB:     field(colOptionB),
			OptionC:     field(colOptionC),
			OptionD:     field(colOptionD),
			Correct:     field(colCorrect),
			Explanation: field(colExplanation),
			ResourceURL: field(colResourceURL),
		})
	}
	return rows, nil
}

func jsonString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
