package avatar_test

import (
	"strings"
	"testing"

	"github.com/web-rebel/devlink/internal/app/system/avatar"
)

func TestURL_NormalizesEmail(t *testing.T) {
	a := avatar.URL("", "Ada@Example.COM")
	b := avatar.URL("", "  ada@example.com  ")
	if a != b {
		t.Errorf("case/whitespace variants must hash identically:\n%s\n%s", a, b)
	}
}

func TestURL_KnownHash(t *testing.T) {
	// md5("ada@example.com")
	got := avatar.URL("", "ada@example.com")
	want := "https://www.gravatar.com/avatar/3e3417d7ef77d5932a6734b916515ed5?s=200&r=pg&d=mm"
	if got != want {
		t.Errorf("URL:\n got %s\nwant %s", got, want)
	}
}

func TestURL_CustomBase(t *testing.T) {
	got := avatar.URL("https://avatars.internal/", "ada@example.com")
	if !strings.HasPrefix(got, "https://avatars.internal/") {
		t.Errorf("custom base ignored: %s", got)
	}
}
