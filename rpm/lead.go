package rpm

import (
	"bytes"
	"encoding/binary"
)

// Package type codes for the lead record's "type" field.
const (
	LeadTypeBinary int16 = 0
	LeadTypeSource int16 = 1
)

// signatureTypeNone is the historical value meaning "no signature block follows the
// header" (SPEC_FULL.md §1 non-goal: cryptographic signing is out of scope, so this
// module always writes it).
const signatureTypeNone int16 = 5

const leadNameWidth = 66
const leadMagic uint32 = 0xedabeedb

// Lead is the 96-byte fixed record that precedes the header and archive
// (SPEC_FULL.md §4.5, §6).
type Lead struct {
	Type    int16
	ArchNum int16
	Name    string
	OSNum   int16
}

// WriteTo serializes the lead to its exact 96-byte wire layout.
func (l Lead) WriteTo(buf *bytes.Buffer) error {
	var u32 [4]byte
	binary.BigEndian.PutUint32(u32[:], leadMagic)
	buf.Write(u32[:])

	buf.WriteByte(2) // major
	buf.WriteByte(0) // minor

	writeInt16 := func(v int16) {
		var b [2]byte
		binary.BigEndian.PutUint16(b[:], uint16(v))
		buf.Write(b[:])
	}
	writeInt16(l.Type)
	writeInt16(l.ArchNum)

	name := make([]byte, leadNameWidth)
	copy(name, l.Name)
	buf.Write(name)

	writeInt16(l.OSNum)
	writeInt16(signatureTypeNone)

	buf.Write(make([]byte, 16)) // reserved
	return nil
}

// Bytes returns the lead's full 96-byte wire representation.
func (l Lead) Bytes() []byte {
	var buf bytes.Buffer
	l.WriteTo(&buf)
	return buf.Bytes()
}
