package version_test

import (
	"strings"
	"testing"

	"github.com/vsariola/levelmeter/version"
)

func TestString(t *testing.T) {
	s := version.String("levelmeter-demo")
	if !strings.HasPrefix(s, "levelmeter-demo ") || len(s) <= len("levelmeter-demo ") {
		t.Fatalf("unexpected version string %q", s)
	}
}
