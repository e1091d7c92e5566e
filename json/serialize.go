package json

import "github.com/TingfengGu/cocoyaxi/fastream"

// e2s maps bytes that must be escaped on emit to their escape character.
// Other control characters are written raw; the parser on the other side is
// permissive about them.
var e2s = func() [256]byte {
	var tb [256]byte
	tb['\r'] = 'r'
	tb['\n'] = 'n'
	tb['\t'] = 't'
	tb['\b'] = 'b'
	tb['\f'] = 'f'
	tb['"'] = '"'
	tb['\\'] = '\\'
	return tb
}()

// Str returns the compact JSON form of the value.
func (v Value) Str() string {
	fs := fastream.New(256)
	v.json2str(fs, false)
	return fs.String()
}

// Dbg returns the compact form with strings longer than 256 bytes truncated,
// for log output.
func (v Value) Dbg() string {
	fs := fastream.New(256)
	v.json2str(fs, true)
	return fs.String()
}

// Pretty returns the indented form. Indent is the number of spaces per
// nesting level; 4 is the conventional value.
func (v Value) Pretty(indent int) string {
	fs := fastream.New(256)
	v.json2pretty(fs, indent, indent)
	return fs.String()
}

// String implements fmt.Stringer as the compact form.
func (v Value) String() string { return v.Str() }

// MarshalJSON implements json.Marshaler for interoperability with the
// standard encoding interfaces.
func (v Value) MarshalJSON() ([]byte, error) {
	fs := fastream.New(256)
	v.json2str(fs, false)
	return fs.Bytes(), nil
}

// AppendTo serializes the compact form into fs, avoiding an intermediate
// allocation for callers that already hold a buffer.
func (v Value) AppendTo(fs *fastream.Buffer) {
	v.json2str(fs, false)
}

func appendEscaped(fs *fastream.Buffer, b []byte, trunc bool) {
	fs.AppendByte('"')
	s := 0
	for p := 0; p < len(b); p++ {
		if c := e2s[b[p]]; c != 0 {
			fs.Append(b[s:p])
			fs.AppendByte('\\')
			fs.AppendByte(c)
			s = p + 1
		}
	}
	if s != len(b) {
		fs.Append(b[s:])
	}
	if trunc {
		fs.AppendFill(3, '.')
	}
	fs.AppendByte('"')
}

func (v Value) json2str(fs *fastream.Buffer, debug bool) {
	m := v.m
	if m == nil {
		fs.AppendString("null")
		return
	}

	switch {
	case m.typ&TypeString != 0:
		b := blockBytes(m.s)
		trunc := debug && len(b) > 256
		if trunc {
			b = b[:256]
		}
		appendEscaped(fs, b, trunc)

	case m.typ&TypeObject != 0:
		fs.AppendByte('{')
		for i := range m.elems {
			if i > 0 {
				fs.AppendByte(',')
			}
			fs.AppendByte('"')
			fs.Append(blockBytes(m.keys[i]))
			fs.AppendByte('"')
			fs.AppendByte(':')
			m.elems[i].json2str(fs, debug)
		}
		fs.AppendByte('}')

	case m.typ&TypeArray != 0:
		fs.AppendByte('[')
		for i := range m.elems {
			if i > 0 {
				fs.AppendByte(',')
			}
			m.elems[i].json2str(fs, debug)
		}
		fs.AppendByte(']')

	case m.typ&TypeInt != 0:
		fs.AppendInt(m.i)

	case m.typ&TypeBool != 0:
		fs.AppendBool(m.b)

	default:
		fs.AppendFloat(m.f)
	}
}

// json2pretty writes the indented form. n is the indentation of members at
// the current nesting level.
func (v Value) json2pretty(fs *fastream.Buffer, indent, n int) {
	m := v.m
	if m == nil {
		fs.AppendString("null")
		return
	}

	switch {
	case m.typ&TypeObject != 0:
		fs.AppendByte('{')
		for i := range m.elems {
			if i > 0 {
				fs.AppendByte(',')
			}
			fs.AppendByte('\n')
			fs.AppendFill(n, ' ')
			fs.AppendByte('"')
			fs.Append(blockBytes(m.keys[i]))
			fs.AppendString("\": ")

			e := m.elems[i]
			if e.IsObject() || e.IsArray() {
				e.json2pretty(fs, indent, n+indent)
			} else {
				e.json2str(fs, false)
			}
		}
		if len(m.elems) > 0 {
			fs.AppendByte('\n')
		}
		fs.AppendFill(n-indent, ' ')
		fs.AppendByte('}')

	case m.typ&TypeArray != 0:
		fs.AppendByte('[')
		for i := range m.elems {
			if i > 0 {
				fs.AppendByte(',')
			}
			fs.AppendByte('\n')
			fs.AppendFill(n, ' ')

			e := m.elems[i]
			if e.IsObject() || e.IsArray() {
				e.json2pretty(fs, indent, n+indent)
			} else {
				e.json2str(fs, false)
			}
		}
		if len(m.elems) > 0 {
			fs.AppendByte('\n')
		}
		fs.AppendFill(n-indent, ' ')
		fs.AppendByte(']')

	default:
		v.json2str(fs, false)
	}
}
