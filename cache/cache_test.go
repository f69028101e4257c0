package cache

import (
	"testing"
	"time"

	"github.com/Furafrafrfr/readability/models"
)

func TestKeyStability(t *testing.T) {
	k1 := Key("<html>a</html>", "html", false, 500)
	k2 := Key("<html>a</html>", "html", false, 500)
	if k1 != k2 {
		t.Error("Key should be deterministic for identical inputs")
	}

	k3 := Key("<html>a</html>", "markdown", false, 500)
	if k1 == k3 {
		t.Error("different output formats should produce different keys")
	}

	k4 := Key("<html>a</html>", "html", true, 500)
	if k1 == k4 {
		t.Error("different KeepClasses should produce different keys")
	}
}

func TestSetGet(t *testing.T) {
	c := New(10, time.Hour)
	key := Key("<html>a</html>", "html", false, 500)
	resp := &models.ExtractResponse{Content: "<p>a</p>"}

	if _, ok := c.Get(key); ok {
		t.Fatal("expected miss before Set")
	}

	c.Set(key, resp)
	got, ok := c.Get(key)
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if got.Content != resp.Content {
		t.Errorf("Content = %q, want %q", got.Content, resp.Content)
	}
}

func TestGetExpired(t *testing.T) {
	c := New(10, time.Millisecond)
	key := Key("<html>a</html>", "html", false, 500)
	c.Set(key, &models.ExtractResponse{Content: "<p>a</p>"})

	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get(key); ok {
		t.Error("expected miss once ttl has elapsed")
	}
}

func TestSetEvictsAtCapacity(t *testing.T) {
	c := New(2, time.Hour)
	c.Set("a", &models.ExtractResponse{Content: "a"})
	c.Set("b", &models.ExtractResponse{Content: "b"})
	c.Set("c", &models.ExtractResponse{Content: "c"})

	if c.Len() > 2 {
		t.Errorf("Len() = %d, want at most 2", c.Len())
	}
}
