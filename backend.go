package huse

// Writer is the contract a format backend implements to produce documents.
// Nesting and key/value pairing are enforced by Serializer before a call
// reaches the backend, so implementations only track layout state.
//
// Writes may refuse a value with a data error (see NewIssue), for example a
// number the format cannot represent. Nothing is silently truncated.
type Writer interface {
	WriteBool(v bool) error
	// WriteInt and WriteUint receive the bit width of the source type.
	WriteInt(v int64, bits int) error
	WriteUint(v uint64, bits int) error
	WriteFloat(v float64, bits int) error
	WriteString(v string) error
	WriteNull() error
	// WriteRaw splices an already encoded fragment verbatim.
	WriteRaw(fragment string) error

	// WriteKey names the next value inside the open object.
	WriteKey(k string) error
	OpenObject() error
	CloseObject() error
	OpenArray() error
	CloseArray() error

	// Flush completes the document once every scope is closed.
	Flush() error
}

// Reader is the contract a format backend implements to consume documents.
// The backend keeps a current position; Load* calls move it and Read* calls
// convert the value found there.
type Reader interface {
	ReadBool() (bool, error)
	// ReadInt, ReadUint and ReadFloat fail with CodeOverflow when the value
	// does not fit in bits.
	ReadInt(bits int) (int64, error)
	ReadUint(bits int) (uint64, error)
	ReadFloat(bits int) (float64, error)
	ReadString() (string, error)

	LoadObject() error
	UnloadObject() error
	LoadArray() error
	UnloadArray() error

	// Len returns the number of entries of the open compound.
	Len() int
	// LoadKey positions on the named member and fails when it is absent.
	LoadKey(k string) error
	// TryLoadKey positions on the named member and reports whether it exists.
	TryLoadKey(k string) bool
	LoadIndex(i int) error
	// LoadNextKey positions on the next member in document order that has not
	// been enumerated yet.
	LoadNextKey() (string, bool)

	// PendingType returns the type of the value at the current position.
	PendingType() Type
}
