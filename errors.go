package jsonflex

// ShapeError reports a JSON value whose wire shape matches none of the
// shapes a coercion accepts. It is terminal for the field being decoded;
// the caller decides whether that aborts the whole document.
type ShapeError struct {
	Want string // description of the accepted shapes
	Got  string // description of the shape actually found
}

func (e *ShapeError) Error() string {
	return "jsonflex: expected " + e.Want + " but found " + e.Got
}
