package huse

// Type classifies the value at the cursor's current position.
type Type int

const (
	TypeNull Type = iota
	TypeTrue
	TypeFalse
	TypeInteger
	TypeFloat
	TypeString
	TypeObject
	TypeArray
)

var typeNames = [...]string{
	TypeNull:    "null",
	TypeTrue:    "true",
	TypeFalse:   "false",
	TypeInteger: "integer",
	TypeFloat:   "float",
	TypeString:  "string",
	TypeObject:  "object",
	TypeArray:   "array",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "unknown"
	}
	return typeNames[t]
}

// Is reports whether t is one of set.
func (t Type) Is(set ...Type) bool {
	for _, s := range set {
		if t == s {
			return true
		}
	}
	return false
}

// IsBoolean reports whether t is TypeTrue or TypeFalse.
func (t Type) IsBoolean() bool { return t.Is(TypeTrue, TypeFalse) }

// IsNumber reports whether t is TypeInteger or TypeFloat.
func (t Type) IsNumber() bool { return t.Is(TypeInteger, TypeFloat) }

// IsCompound reports whether t is TypeObject or TypeArray.
func (t Type) IsCompound() bool { return t.Is(TypeObject, TypeArray) }

// IsScalar reports whether t is neither a compound nor null.
func (t Type) IsScalar() bool { return !t.IsCompound() && t != TypeNull }

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Strictness configures enforcement for duplicate keys.
type Strictness struct {
	OnDuplicateKey Severity // Ignore, Warn (report through IssueSink) or Error.
}

// DecodeOpt bundles options applied by readers while loading a document.
type DecodeOpt struct {
	Strictness Strictness
	MaxDepth   int   // 0 disables the check.
	MaxBytes   int64 // 0 disables the check.
	// IssueSink receives non-fatal issues such as duplicate keys in Warn mode.
	IssueSink func(Issue)
}
