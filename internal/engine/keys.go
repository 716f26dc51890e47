package engine

// KeyTracker tells object keys apart from string values for token decoders
// that report both as plain strings (encoding/json, go-json).
type KeyTracker struct {
	frames []keyFrame
}

type keyFrame struct {
	object       bool
	expectingKey bool
}

// Open records the start of an object or array.
func (t *KeyTracker) Open(object bool) {
	t.frames = append(t.frames, keyFrame{object: object, expectingKey: object})
}

// Close records the end of the innermost compound, which completes a value
// of its parent.
func (t *KeyTracker) Close() {
	if n := len(t.frames); n > 0 {
		t.frames = t.frames[:n-1]
	}
	t.Value()
}

// Classify reports whether a string token is an object key (KindKey) or a
// string value (KindString).
func (t *KeyTracker) Classify() Kind {
	if n := len(t.frames); n > 0 {
		top := &t.frames[n-1]
		if top.object && top.expectingKey {
			top.expectingKey = false
			return KindKey
		}
	}
	t.Value()
	return KindString
}

// Value records a completed scalar value.
func (t *KeyTracker) Value() {
	if n := len(t.frames); n > 0 {
		top := &t.frames[n-1]
		if top.object {
			top.expectingKey = true
		}
	}
}
