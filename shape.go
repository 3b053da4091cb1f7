package jsonflex

import "bytes"

// wireShape classifies the raw JSON text of a single value by its leading
// byte. Text and number are the only shapes the coercions accept; the rest
// exist so that ShapeError can name what was actually found.
type wireShape int

const (
	shapeInvalid wireShape = iota
	shapeString
	shapeNumber
	shapeBool
	shapeNull
	shapeObject
	shapeArray
)

func shapeOf(raw []byte) wireShape {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return shapeInvalid
	}
	switch raw[0] {
	case '"':
		return shapeString
	case '{':
		return shapeObject
	case '[':
		return shapeArray
	case 't', 'f':
		return shapeBool
	case 'n':
		return shapeNull
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return shapeNumber
	default:
		return shapeInvalid
	}
}

func (s wireShape) String() string {
	switch s {
	case shapeString:
		return "a string"
	case shapeNumber:
		return "a number"
	case shapeBool:
		return "a boolean"
	case shapeNull:
		return "null"
	case shapeObject:
		return "an object"
	case shapeArray:
		return "an array"
	default:
		return "malformed JSON"
	}
}
