package theme

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestRenderLink(t *testing.T) {
	url := "https://example.com/fractions"
	out := RenderLink(url)

	if !strings.Contains(out, url) {
		t.Errorf("link text is not contiguous: %q", out)
	}
	if !strings.HasPrefix(out, ansi.SetHyperlink(url)) {
		t.Errorf("missing hyperlink start: %q", out)
	}
	if !strings.HasSuffix(out, ansi.ResetHyperlink()) {
		t.Errorf("missing hyperlink reset: %q", out)
	}
	if got := ansi.Strip(out); got != url {
		t.Errorf("stripped link = %q, want %q", got, url)
	}
}
