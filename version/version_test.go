package version

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	info := Get()
	if info.Version == "" {
		t.Error("version must never be empty")
	}
}

func TestString(t *testing.T) {
	i := Info{Version: "1.2.3", GitCommit: "0123456789abcdef"}
	got := i.String()
	if !strings.HasPrefix(got, "1.2.3-0123456") {
		t.Errorf("String() = %q", got)
	}

	i.Dirty = true
	if got := i.String(); !strings.HasSuffix(got, "-dirty") {
		t.Errorf("String() = %q, want -dirty suffix", got)
	}
}

func TestShorten(t *testing.T) {
	if got := shorten("abc"); got != "abc" {
		t.Errorf("shorten(abc) = %q", got)
	}
	if got := shorten("0123456789"); got != "0123456" {
		t.Errorf("shorten long = %q", got)
	}
}
