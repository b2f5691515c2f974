package main

import (
	"os"
	"testing"
)

func TestResolveHostID(t *testing.T) {
	if got := resolveHostID("rack-7"); got != "rack-7" {
		t.Errorf("resolveHostID(configured) = %q", got)
	}

	want, err := os.Hostname()
	if err != nil || want == "" {
		want = unknownHost
	}
	if got := resolveHostID(""); got != want {
		t.Errorf("resolveHostID(\"\") = %q, want %q", got, want)
	}
}
