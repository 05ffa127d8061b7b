package archtab

import "testing"

func TestArchCodeKnownAndUnknown(t *testing.T) {
	if ArchCode("amd64") == 0 {
		t.Fatalf("expected a non-zero code for amd64")
	}
	if ArchCode("made-up-arch") != 0 {
		t.Fatalf("expected 0 for an unknown architecture")
	}
}

func TestOSCodeKnownAndUnknown(t *testing.T) {
	if OSCode("linux") == 0 {
		t.Fatalf("expected a non-zero code for linux")
	}
	if OSCode("made-up-os") != 0 {
		t.Fatalf("expected 0 for an unknown OS")
	}
}

func TestHostLookupsAreConsistent(t *testing.T) {
	if HostArchCode() != ArchCode(HostArchName()) {
		t.Fatalf("HostArchCode inconsistent with ArchCode(HostArchName())")
	}
	if HostOSCode() != OSCode(HostOSName()) {
		t.Fatalf("HostOSCode inconsistent with OSCode(HostOSName())")
	}
}
