package cache

import (
	"context"
	"strings"
	"testing"

	"github.com/saferoom-id/judolguard/pkg/detector"
)

func TestKeyIsDeterministic(t *testing.T) {
	opts := &detector.Options{SensitivityLevel: 3, Language: "id"}
	a := Key("slot gacor", opts)
	b := Key("slot gacor", &detector.Options{SensitivityLevel: 3, Language: "id"})
	if a != b {
		t.Errorf("identical inputs should produce identical keys: %s vs %s", a, b)
	}
	if !strings.HasPrefix(a, "judolguard:result:") {
		t.Errorf("key missing namespace prefix: %s", a)
	}
}

func TestKeyVariesWithInputs(t *testing.T) {
	base := Key("slot gacor", nil)
	if Key("slot gacor!", nil) == base {
		t.Error("different text should change the key")
	}
	if Key("slot gacor", &detector.Options{SensitivityLevel: 5}) == base {
		t.Error("different options should change the key")
	}
}

func TestNilCacheIsSafe(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	if got := c.Get(ctx, "whatever"); got != nil {
		t.Errorf("nil cache Get = %+v, want nil", got)
	}
	if err := c.Set(ctx, "whatever", &detector.Result{}); err != nil {
		t.Errorf("nil cache Set should be a no-op, got %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("nil cache Close should be a no-op, got %v", err)
	}
}

func TestNewWithoutAddrDisablesCache(t *testing.T) {
	c, err := New(context.Background(), "", "", 0, 0)
	if err != nil {
		t.Fatalf("empty addr should not error, got %v", err)
	}
	if c != nil {
		t.Error("empty addr should return a nil cache")
	}
}
