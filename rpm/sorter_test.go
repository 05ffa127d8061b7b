package rpm

import "testing"

func TestSortManifestReverseLexicographic(t *testing.T) {
	m := FileManifest{
		{Path: "/a"},
		{Path: "/c"},
		{Path: "/b"},
	}
	SortManifest(m)
	want := []string{"/c", "/b", "/a"}
	for i, w := range want {
		if m[i].Path != w {
			t.Errorf("m[%d].Path = %q, want %q", i, m[i].Path, w)
		}
	}
}

func TestSortManifestStableOnTies(t *testing.T) {
	m := FileManifest{
		{Path: "/a", UID: 1},
		{Path: "/a", UID: 2},
	}
	SortManifest(m)
	if m[0].UID != 1 || m[1].UID != 2 {
		t.Errorf("stable sort did not preserve relative order of equal paths")
	}
}
