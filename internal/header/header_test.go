package header

import (
	"bytes"
	"testing"
)

func TestAddDuplicateTagRejected(t *testing.T) {
	h := New()
	if err := h.AddString(TagName, "foo"); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := h.AddString(TagName, "bar"); err == nil {
		t.Fatalf("expected error adding duplicate tag, got nil")
	}
}

func TestCopyIsIndependent(t *testing.T) {
	h := New()
	if err := h.AddStringArray(TagFilenames, []string{"/a", "/b"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	c := h.Copy()
	if !c.Has(TagFilenames) {
		t.Fatalf("copy missing tag")
	}
	// Adding a tag to the original after Copy must not affect the copy.
	if err := h.AddString(TagName, "pkg"); err != nil {
		t.Fatalf("add to original: %v", err)
	}
	if c.Has(TagName) {
		t.Fatalf("copy should not see tags added to the original after Copy")
	}
}

func TestIterateOrderMatchesInsertion(t *testing.T) {
	h := New()
	_ = h.AddString(TagName, "pkg")
	_ = h.AddString(TagVersion, "1.0")
	_ = h.AddInt32(TagSize, []int32{42})

	var got []Tag
	it := h.Iterate()
	for {
		tag, _, _, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, tag)
	}
	want := []Tag{TagName, TagVersion, TagSize}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestWriteToPreambleAndSizes(t *testing.T) {
	h := New()
	_ = h.AddString(TagName, "pkg")
	_ = h.AddStringArray(TagFilenames, []string{"/a", "/b/c"})
	_ = h.AddInt32(TagFileSizes, []int32{1, 2})

	var buf bytes.Buffer
	n, err := h.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if n != int64(buf.Len()) {
		t.Fatalf("returned count %d != written bytes %d", n, buf.Len())
	}
	out := buf.Bytes()
	if len(out) < 16 {
		t.Fatalf("output too short: %d bytes", len(out))
	}
	if out[0] != magic0 || out[1] != magic1 || out[2] != magic2 {
		t.Fatalf("bad magic: % x", out[:3])
	}
	if out[3] != 1 {
		t.Fatalf("bad version byte: %d", out[3])
	}
}

func TestIsScriptHook(t *testing.T) {
	for _, tag := range []Tag{TagPreIn, TagPostIn, TagPreUn, TagPostUn} {
		if !IsScriptHook(tag) {
			t.Errorf("expected %d to be a script hook tag", tag)
		}
	}
	if IsScriptHook(TagName) {
		t.Errorf("TagName should not be a script hook tag")
	}
}
