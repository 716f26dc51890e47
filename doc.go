// Package huse provides format-agnostic (de)serialization:
//
//   - Scoped document cursors (Serializer/Deserializer) with Object and Array nodes
//   - Capability dispatch: the type's own MarshalHuse/UnmarshalHuse hooks first,
//     then free functions (PutWith/GetWith), then backend scalar primitives
//   - A stable error model via Issues (JSON Pointer, code, message)
//   - Token sources with duplicate-key/depth/size enforcement shared by readers
//
// Design policy:
//   - The root package knows no format. Backends implement Writer and Reader
//     (json/, yaml/) and wrap them in a Serializer or Deserializer.
//   - Misuse of the scope discipline (writing to a parent while a child is open,
//     using a closed scope, leaving a key without a value) panics with
//     *UsageError. Data errors are returned.
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	func (u *User) MarshalHuse(n *huse.SerializerNode) error {
//		return n.Object(func(o *huse.SerializerObject) error {
//			if err := huse.PutKey(o, "id", u.ID); err != nil {
//				return err
//			}
//			return huse.PutOpt(o.Key("email"), u.Email)
//		})
//	}
//
//	data, err := json.Marshal(&u, json.Options{Pretty: true})
//	err = json.Unmarshal(data, &u)
package huse
