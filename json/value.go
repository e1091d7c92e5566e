package json

import (
	"bytes"
	"sync/atomic"
)

// Value type bits. Exactly one bit is set on a non-null value.
const (
	TypeNull   = 0
	TypeInt    = 1 << iota
	TypeBool
	TypeDouble
	TypeString
	TypeArray
	TypeObject
)

// mem is the heap record backing a non-null Value: a type bitset, an atomic
// reference count and the payload. Arrays store one element word per entry;
// objects additionally store one key block per entry, in insertion order.
type mem struct {
	typ  uint32
	refn int32

	i int64
	f float64
	b bool
	s []byte // slab block for strings

	elems []Value
	keys  [][]byte // slab blocks; non-empty only for objects
}

// Value is a JSON document node. The zero Value is the logical null.
// Values are trees: sharing is expressed through the reference count, and a
// value must be treated as immutable once its count exceeds one.
type Value struct {
	m *mem
}

// Null returns the empty value.
func Null() Value { return Value{} }

// NewInt returns an integer value.
func NewInt(i int64) Value {
	m := ja.allocMem()
	m.typ = TypeInt
	m.refn = 1
	m.i = i
	return Value{m}
}

// NewBool returns a boolean value.
func NewBool(b bool) Value {
	m := ja.allocMem()
	m.typ = TypeBool
	m.refn = 1
	m.b = b
	return Value{m}
}

// NewFloat returns a double value.
func NewFloat(f float64) Value {
	m := ja.allocMem()
	m.typ = TypeDouble
	m.refn = 1
	m.f = f
	return Value{m}
}

// NewString copies s into a slab block and returns a string value.
func NewString(s string) Value {
	return newStringBytes([]byte(s))
}

func newStringBytes(p []byte) Value {
	m := ja.allocMem()
	m.typ = TypeString
	m.refn = 1
	m.s = ja.newBlock(p)
	return Value{m}
}

// NewArray returns an empty array.
func NewArray() Value {
	m := ja.allocMem()
	m.typ = TypeArray
	m.refn = 1
	return Value{m}
}

// NewObject returns an empty object.
func NewObject() Value {
	m := ja.allocMem()
	m.typ = TypeObject
	m.refn = 1
	return Value{m}
}

// Retain increments the reference count and returns the value. Use it when
// a value is stored in more than one place; every Retain needs a matching
// Release.
func (v Value) Retain() Value {
	if v.m != nil {
		atomic.AddInt32(&v.m.refn, 1)
	}
	return v
}

// Release drops one reference. When the count reaches zero the children are
// released depth-first and the backing storage returns to the allocator.
// The receiver becomes null.
func (v *Value) Release() {
	m := v.m
	if m == nil {
		return
	}
	v.m = nil
	if atomic.AddInt32(&m.refn, -1) != 0 {
		return
	}

	switch {
	case m.typ&TypeObject != 0:
		for i := range m.elems {
			ja.dealloc(m.keys[i])
			m.elems[i].Release()
		}
	case m.typ&TypeArray != 0:
		for i := range m.elems {
			m.elems[i].Release()
		}
	case m.typ&TypeString != 0:
		ja.dealloc(m.s)
	}
	ja.deallocMem(m)
}

// Type returns the type bit of the value, TypeNull for the empty value.
func (v Value) Type() uint32 {
	if v.m == nil {
		return TypeNull
	}
	return v.m.typ
}

func (v Value) IsNull() bool   { return v.m == nil }
func (v Value) IsInt() bool    { return v.m != nil && v.m.typ&TypeInt != 0 }
func (v Value) IsBool() bool   { return v.m != nil && v.m.typ&TypeBool != 0 }
func (v Value) IsDouble() bool { return v.m != nil && v.m.typ&TypeDouble != 0 }
func (v Value) IsString() bool { return v.m != nil && v.m.typ&TypeString != 0 }
func (v Value) IsArray() bool  { return v.m != nil && v.m.typ&TypeArray != 0 }
func (v Value) IsObject() bool { return v.m != nil && v.m.typ&TypeObject != 0 }

// GetInt returns the integer payload. Panics on type mismatch.
func (v Value) GetInt() int64 {
	v.assertType(TypeInt)
	return v.m.i
}

// GetBool returns the boolean payload. Panics on type mismatch.
func (v Value) GetBool() bool {
	v.assertType(TypeBool)
	return v.m.b
}

// GetFloat returns the double payload. Panics on type mismatch.
func (v Value) GetFloat() float64 {
	v.assertType(TypeDouble)
	return v.m.f
}

// GetString returns a copy of the string payload. Panics on type mismatch.
func (v Value) GetString() string {
	v.assertType(TypeString)
	return string(blockBytes(v.m.s))
}

// strBytes returns the string payload without copying. The view is valid
// only while the value holds a reference.
func (v Value) strBytes() []byte {
	return blockBytes(v.m.s)
}

func (v Value) assertType(t uint32) {
	if v.m == nil || v.m.typ&t == 0 {
		panic("json: value type mismatch")
	}
}

// Size returns the byte length of a string, the element count of an array
// or the entry count of an object; 0 otherwise.
func (v Value) Size() int {
	if v.m == nil {
		return 0
	}
	switch {
	case v.m.typ&TypeString != 0:
		return len(blockBytes(v.m.s))
	case v.m.typ&(TypeArray|TypeObject) != 0:
		return len(v.m.elems)
	}
	return 0
}

// PushBack appends e to an array, taking ownership of the reference.
// A null receiver becomes an empty array first.
func (v *Value) PushBack(e Value) {
	if v.m == nil {
		*v = NewArray()
	}
	v.assertType(TypeArray)
	v.m.elems = append(v.m.elems, e)
}

// Elem returns the i-th array element, or the value of the i-th object
// entry, as a borrowed reference.
func (v Value) Elem(i int) Value {
	v.assertType(TypeArray | TypeObject)
	return v.m.elems[i]
}

// Key returns the key of the i-th object entry in insertion order.
func (v Value) Key(i int) string {
	v.assertType(TypeObject)
	return string(blockBytes(v.m.keys[i]))
}

// AddMember appends a key/value entry to an object, taking ownership of the
// value reference. Duplicate keys are permitted; lookups return the first.
// A null receiver becomes an empty object first.
func (v *Value) AddMember(key string, e Value) {
	if v.m == nil {
		*v = NewObject()
	}
	v.assertType(TypeObject)
	v.m.keys = append(v.m.keys, ja.newBlock([]byte(key)))
	v.m.elems = append(v.m.elems, e)
}

// Member returns a pointer to the value slot for key, inserting a null entry
// if the key is absent. A null receiver becomes an empty object first.
// The pointer stays valid until the object grows again.
func (v *Value) Member(key string) *Value {
	if v.m == nil {
		*v = NewObject()
	}
	v.assertType(TypeObject)
	m := v.m
	k := []byte(key)
	for i := range m.keys {
		if bytes.Equal(blockBytes(m.keys[i]), k) {
			return &m.elems[i]
		}
	}
	m.keys = append(m.keys, ja.newBlock(k))
	m.elems = append(m.elems, Value{})
	return &m.elems[len(m.elems)-1]
}

// Find returns the value for key as a borrowed reference, or null when the
// receiver is not an object or the key is absent. It never mutates.
func (v Value) Find(key string) Value {
	if !v.IsObject() {
		return Value{}
	}
	k := []byte(key)
	for i := range v.m.keys {
		if bytes.Equal(blockBytes(v.m.keys[i]), k) {
			return v.m.elems[i]
		}
	}
	return Value{}
}

// HasMember reports whether an object contains key.
func (v Value) HasMember(key string) bool {
	if !v.IsObject() {
		return false
	}
	k := []byte(key)
	for i := range v.m.keys {
		if bytes.Equal(blockBytes(v.m.keys[i]), k) {
			return true
		}
	}
	return false
}

// Range calls fn for each entry of an object or element of an array, in
// insertion order, until fn returns false. Keys are empty for arrays.
func (v Value) Range(fn func(key string, val Value) bool) {
	if v.m == nil || v.m.typ&(TypeArray|TypeObject) == 0 {
		return
	}
	obj := v.m.typ&TypeObject != 0
	for i := range v.m.elems {
		var k string
		if obj {
			k = string(blockBytes(v.m.keys[i]))
		}
		if !fn(k, v.m.elems[i]) {
			return
		}
	}
}
