package candidate

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// StdinPath makes the loaders read from standard input.
const StdinPath = "-"

//go:embed schema/record.json
var recordSchemaJSON string

var recordSchema = gojsonschema.NewStringLoader(recordSchemaJSON)

// LoadRecord reads a single candidate record from a JSON or YAML file.
func LoadRecord(path string) (*Record, error) {
	data, err := readPath(path)
	if err != nil {
		return nil, err
	}
	return DecodeRecord(bytes.NewReader(data))
}

// DecodeRecord parses, validates and decodes one candidate record.
func DecodeRecord(r io.Reader) (*Record, error) {
	doc, err := parseDocument(r)
	if err != nil {
		return nil, err
	}

	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, errors.New("candidate record must be an object")
	}

	return decodeRecord(obj)
}

// LoadRecords reads a roster of candidate records. The document is either a list
// of records or an object with a "candidates" list. Records without an id get
// a positional one.
func LoadRecords(path string) ([]*Record, error) {
	data, err := readPath(path)
	if err != nil {
		return nil, err
	}

	doc, err := parseDocument(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var items []any
	switch val := doc.(type) {
	case []any:
		items = val
	case map[string]any:
		list, ok := val["candidates"].([]any)
		if !ok {
			return nil, errors.New(`roster must contain a "candidates" list`)
		}
		items = list
	default:
		return nil, errors.New("roster must be a list or an object with candidates")
	}

	records := make([]*Record, 0, len(items))
	for idx, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("candidate #%d: must be an object", idx+1)
		}

		record, err := decodeRecord(obj)
		if err != nil {
			return nil, fmt.Errorf("candidate #%d: %w", idx+1, err)
		}

		if strings.TrimSpace(record.ID) == "" {
			record.ID = fmt.Sprintf("candidate-%d", idx+1)
		}
		records = append(records, record)
	}

	return records, nil
}

// ToFile writes the record as YAML.
func (r *Record) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	return r.Encode(file)
}

// Encode writes the record as YAML to w.
func (r *Record) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode candidate record: %w", err)
	}
	return enc.Close()
}

func decodeRecord(obj map[string]any) (*Record, error) {
	if err := validate(obj); err != nil {
		return nil, err
	}

	var record Record
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &record,
		TagName: "mapstructure",
	})
	if err != nil {
		return nil, fmt.Errorf("creating record decoder: %w", err)
	}

	if err := decoder.Decode(obj); err != nil {
		return nil, fmt.Errorf("decoding candidate record: %w", err)
	}

	return &record, nil
}

func validate(obj map[string]any) error {
	result, err := gojsonschema.Validate(recordSchema, gojsonschema.NewGoLoader(obj))
	if err != nil {
		return fmt.Errorf("validating candidate record: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("invalid candidate record: %s", strings.Join(errs, "; "))
	}

	return nil
}

func readPath(path string) ([]byte, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("input path is required")
	}

	if path == StdinPath {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return data, nil
}

// parseDocument accepts JSON or YAML. JSON is detected by its leading brace or bracket.
func parseDocument(r io.Reader) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("document is empty")
	}

	var doc any
	if trimmed[0] == '{' || trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
		return doc, nil
	}

	if err := yaml.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return doc, nil
}
