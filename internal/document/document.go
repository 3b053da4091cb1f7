// Package document decodes and encodes whole JSON documents as a generic
// tree, keeping numbers as json.Number so their literal text survives a
// decode/encode round trip.
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	stderrors "errors"

	"github.com/mcncl/jsonflex/internal/errors"
)

// Value is any decoded JSON value: string, json.Number, bool, nil,
// Object, or Array.
type Value interface{}

// Object represents a JSON object.
type Object map[string]Value

// Array represents a JSON array.
type Array []Value

// Decode reads a single JSON document from reader into a Value tree.
// Numbers are decoded as json.Number. Empty input and trailing root
// values are rejected.
func Decode(reader io.Reader) (Value, error) {
	decoder := json.NewDecoder(reader)
	decoder.UseNumber()

	var root Value
	if err := decoder.Decode(&root); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.NewDecodeError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		var syntaxError *json.SyntaxError
		if stderrors.As(err, &syntaxError) {
			return nil, errors.NewDecodeError(
				fmt.Sprintf("JSON syntax error at offset %d", syntaxError.Offset),
				errors.ErrInvalidJSON,
			)
		}
		return nil, errors.NewDecodeError("failed to decode JSON", err)
	}

	// Anything after the first root value besides whitespace means the
	// input held more than one document.
	if decoder.More() {
		var trailing interface{}
		if err := decoder.Decode(&trailing); err != nil {
			if !stderrors.Is(err, io.EOF) {
				return nil, errors.NewDecodeError("invalid trailing data after first JSON value", err)
			}
		} else {
			return nil, errors.NewDecodeError("multiple JSON values found at the root", errors.ErrMultipleJSON)
		}
	}

	return normalize(root), nil
}

// DecodeString decodes a JSON document from a string.
func DecodeString(input string) (Value, error) {
	if strings.TrimSpace(input) == "" {
		return nil, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return Decode(strings.NewReader(input))
}

// DecodeFile decodes a JSON document from a file path.
func DecodeFile(filePath string) (Value, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return nil, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return Decode(file)
}

// Encode serializes a Value tree back to JSON. A non-empty indent
// produces pretty-printed output; otherwise the output is compact.
// json.Number values are written with their literal text.
func Encode(v Value, indent string) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if indent != "" {
		encoder.SetIndent("", indent)
	}
	if err := encoder.Encode(v); err != nil {
		return nil, errors.NewOutputError("failed to encode JSON", err)
	}
	// Encoder appends a trailing newline; keep it, callers write the
	// buffer as a complete document.
	return buf.Bytes(), nil
}

// normalize converts raw decoded containers into Object and Array
func normalize(val Value) Value {
	switch v := val.(type) {
	case map[string]interface{}:
		obj := make(Object, len(v))
		for key, value := range v {
			obj[key] = normalize(value)
		}
		return obj
	case []interface{}:
		arr := make(Array, len(v))
		for i, value := range v {
			arr[i] = normalize(value)
		}
		return arr
	default:
		return v
	}
}
