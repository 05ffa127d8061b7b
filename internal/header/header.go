// Package header implements the tagged metadata-record container the assembler
// core treats as an opaque external collaborator (SPEC_FULL.md §1, §3). No
// third-party Go package implements this on-disk format; see DESIGN.md for why this
// is one of the module's few standard-library-only pieces.
package header

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Type is the wire type of a header entry, matching the classic RPM type codes.
type Type int32

const (
	TypeNull        Type = 0
	TypeChar        Type = 1
	TypeInt8        Type = 2
	TypeInt16       Type = 3
	TypeInt32       Type = 4
	TypeString      Type = 6
	TypeBin         Type = 7
	TypeStringArray Type = 8
)

const magic0, magic1, magic2 = 0x8e, 0xad, 0xe8

type entry struct {
	typ   Type
	count int32
	strs  []string
	i8    []int8
	i16   []int16
	i32   []int32
	bin   []byte
}

func (e entry) clone() entry {
	c := e
	c.strs = append([]string(nil), e.strs...)
	c.i8 = append([]int8(nil), e.i8...)
	c.i16 = append([]int16(nil), e.i16...)
	c.i32 = append([]int32(nil), e.i32...)
	c.bin = append([]byte(nil), e.bin...)
	return c
}

// Header is an ordered, append-only (per tag) collection of typed entries.
type Header struct {
	order   []Tag
	entries map[Tag]entry
}

// New returns an empty header.
func New() *Header {
	return &Header{entries: make(map[Tag]entry)}
}

// Copy returns a deep copy of h.
func (h *Header) Copy() *Header {
	c := New()
	c.order = append([]Tag(nil), h.order...)
	for tag, e := range h.entries {
		c.entries[tag] = e.clone()
	}
	return c
}

// Has reports whether tag is already present.
func (h *Header) Has(tag Tag) bool {
	_, ok := h.entries[tag]
	return ok
}

func (h *Header) add(tag Tag, e entry) error {
	if h.Has(tag) {
		return fmt.Errorf("header: duplicate tag %d", tag)
	}
	h.entries[tag] = e
	h.order = append(h.order, tag)
	return nil
}

// AddString adds a single string-valued entry.
func (h *Header) AddString(tag Tag, v string) error {
	return h.add(tag, entry{typ: TypeString, count: 1, strs: []string{v}})
}

// AddStringArray adds a string-array entry. v is copied.
func (h *Header) AddStringArray(tag Tag, v []string) error {
	return h.add(tag, entry{typ: TypeStringArray, count: int32(len(v)), strs: append([]string(nil), v...)})
}

// AddInt8 adds an int8-array entry.
func (h *Header) AddInt8(tag Tag, v []int8) error {
	return h.add(tag, entry{typ: TypeInt8, count: int32(len(v)), i8: append([]int8(nil), v...)})
}

// AddInt16 adds an int16-array entry.
func (h *Header) AddInt16(tag Tag, v []int16) error {
	return h.add(tag, entry{typ: TypeInt16, count: int32(len(v)), i16: append([]int16(nil), v...)})
}

// AddInt32 adds an int32-array entry.
func (h *Header) AddInt32(tag Tag, v []int32) error {
	return h.add(tag, entry{typ: TypeInt32, count: int32(len(v)), i32: append([]int32(nil), v...)})
}

// AddBinary adds a raw binary blob entry.
func (h *Header) AddBinary(tag Tag, v []byte) error {
	return h.add(tag, entry{typ: TypeBin, count: int32(len(v)), bin: append([]byte(nil), v...)})
}

// GetString returns a single string entry's value.
func (h *Header) GetString(tag Tag) (string, bool) {
	e, ok := h.entries[tag]
	if !ok || len(e.strs) == 0 {
		return "", false
	}
	return e.strs[0], true
}

// GetStringArray returns a string-array entry's values.
func (h *Header) GetStringArray(tag Tag) ([]string, bool) {
	e, ok := h.entries[tag]
	if !ok {
		return nil, false
	}
	return e.strs, true
}

// GetInt32 returns an int32-array entry's values.
func (h *Header) GetInt32(tag Tag) ([]int32, bool) {
	e, ok := h.entries[tag]
	if !ok {
		return nil, false
	}
	return e.i32, true
}

// GetInt8 returns an int8-array entry's values.
func (h *Header) GetInt8(tag Tag) ([]int8, bool) {
	e, ok := h.entries[tag]
	if !ok {
		return nil, false
	}
	return e.i8, true
}

// Entries returns tags in insertion order, the order WriteTo serializes them in.
func (h *Header) Entries() []Tag {
	return append([]Tag(nil), h.order...)
}

// Iterator walks a Header's entries in insertion order.
type Iterator struct {
	h *Header
	i int
}

// Iterate returns a fresh iterator positioned before the first entry.
func (h *Header) Iterate() *Iterator {
	return &Iterator{h: h}
}

// Next advances the iterator, returning the tag, type and count of the next entry.
// ok is false once the iterator is exhausted.
func (it *Iterator) Next() (tag Tag, typ Type, count int32, ok bool) {
	if it.i >= len(it.h.order) {
		return 0, 0, 0, false
	}
	tag = it.h.order[it.i]
	it.i++
	e := it.h.entries[tag]
	return tag, e.typ, e.count, true
}

// WriteTo serializes the header to w: a fixed preamble, an index of (tag, type,
// offset, count) entries, then the data store the offsets point into. Entries are
// written in insertion order.
func (h *Header) WriteTo(w io.Writer) (int64, error) {
	var data bytes.Buffer
	type indexEntry struct {
		tag, typ, offset, count uint32
	}
	idx := make([]indexEntry, 0, len(h.order))

	pad := func(align int) {
		for data.Len()%align != 0 {
			data.WriteByte(0)
		}
	}

	for _, tag := range h.order {
		e := h.entries[tag]
		var offset int
		switch e.typ {
		case TypeString:
			offset = data.Len()
			data.WriteString(e.strs[0])
			data.WriteByte(0)
		case TypeStringArray:
			offset = data.Len()
			for _, s := range e.strs {
				data.WriteString(s)
				data.WriteByte(0)
			}
		case TypeInt8:
			offset = data.Len()
			for _, v := range e.i8 {
				data.WriteByte(byte(v))
			}
		case TypeInt16:
			pad(2)
			offset = data.Len()
			for _, v := range e.i16 {
				var b [2]byte
				binary.BigEndian.PutUint16(b[:], uint16(v))
				data.Write(b[:])
			}
		case TypeInt32:
			pad(4)
			offset = data.Len()
			for _, v := range e.i32 {
				var b [4]byte
				binary.BigEndian.PutUint32(b[:], uint32(v))
				data.Write(b[:])
			}
		case TypeBin:
			offset = data.Len()
			data.Write(e.bin)
		default:
			return 0, fmt.Errorf("header: unknown type %d for tag %d", e.typ, tag)
		}
		idx = append(idx, indexEntry{tag: uint32(tag), typ: uint32(e.typ), offset: uint32(offset), count: uint32(e.count)})
	}

	var out bytes.Buffer
	out.Write([]byte{magic0, magic1, magic2})
	out.WriteByte(1) // version
	out.Write([]byte{0, 0, 0, 0})
	var u32 [4]byte
	binary.BigEndian.PutUint32(u32[:], uint32(len(idx)))
	out.Write(u32[:])
	binary.BigEndian.PutUint32(u32[:], uint32(data.Len()))
	out.Write(u32[:])
	for _, e := range idx {
		binary.BigEndian.PutUint32(u32[:], e.tag)
		out.Write(u32[:])
		binary.BigEndian.PutUint32(u32[:], e.typ)
		out.Write(u32[:])
		binary.BigEndian.PutUint32(u32[:], e.offset)
		out.Write(u32[:])
		binary.BigEndian.PutUint32(u32[:], e.count)
		out.Write(u32[:])
	}
	out.Write(data.Bytes())

	n, err := w.Write(out.Bytes())
	return int64(n), err
}
