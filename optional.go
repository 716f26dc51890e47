package huse

// An absent optional is not written at all: PutOpt drops the member (or the
// array element) entirely. A nullable value is always present and is written
// as null when unset.

// PutOpt writes *v, or omits the node when v is nil.
func PutOpt[T Scalar](n *SerializerNode, v *T) error {
	if v == nil {
		n.Omit()
		return nil
	}
	return Put(n, *v)
}

// PutNullable writes *v, or null when v is nil.
func PutNullable[T Scalar](n *SerializerNode, v *T) error {
	if v == nil {
		return n.Null()
	}
	return Put(n, *v)
}

// PutOptVal writes v through its MarshalHuse, or omits the node when v is nil.
func PutOptVal[T any, P interface {
	*T
	Marshaler
}](n *SerializerNode, v P) error {
	if v == nil {
		n.Omit()
		return nil
	}
	return n.Val(v)
}

// GetOpt reads the member k into v when it exists and reports whether it did.
// v is left unchanged when the member is absent.
func GetOpt[T Scalar](o *DeserializerObject, k string, v *T) (bool, error) {
	n, ok := o.OptKey(k)
	if !ok {
		return false, nil
	}
	return true, Get(n, v)
}

// GetPtr reads the member k into a newly allocated value. *v is set to nil
// when the member is absent or null.
func GetPtr[T Scalar](o *DeserializerObject, k string, v **T) error {
	n, ok := o.OptKey(k)
	if !ok {
		*v = nil
		return nil
	}
	return GetNullable(n, v)
}

// GetNullable reads the value at n into a newly allocated value, or sets *v
// to nil when it is null.
func GetNullable[T Scalar](n *DeserializerNode, v **T) error {
	if n.Type() == TypeNull {
		n.Skip()
		*v = nil
		return nil
	}
	p := new(T)
	if err := Get(n, p); err != nil {
		return err
	}
	*v = p
	return nil
}

// GetPtrVal reads the member k through UnmarshalHuse into a newly allocated
// value. *v is set to nil when the member is absent or null.
func GetPtrVal[T any, P interface {
	*T
	Unmarshaler
}](o *DeserializerObject, k string, v *P) error {
	n, ok := o.OptKey(k)
	if !ok || n.Type() == TypeNull {
		if ok {
			n.Skip()
		}
		*v = nil
		return nil
	}
	p := P(new(T))
	if err := n.Val(p); err != nil {
		return err
	}
	*v = p
	return nil
}
