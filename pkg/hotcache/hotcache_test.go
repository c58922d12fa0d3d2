package hotcache

import "testing"

func TestPutGetRoundTrip(t *testing.T) {
	c := New(4)
	entries := []Entry{{Word: "hello", EditDistance: 0, Confidence: 0.9}}
	c.Put("hel", entries)

	got, ok := c.Get("hel")
	if !ok {
		t.Fatal("expected cache hit for hel")
	}
	if len(got) != 1 || got[0].Word != "hello" {
		t.Fatalf("expected cached hello entry, got %+v", got)
	}
}

func TestGetMissReportsFalse(t *testing.T) {
	c := New(4)
	if _, ok := c.Get("nope"); ok {
		t.Fatal("expected cache miss for an unset key")
	}
}

func TestEvictsLeastRecentlyUsedAtCapacity(t *testing.T) {
	c := New(2)
	c.Put("a", []Entry{{Word: "a"}})
	c.Put("b", []Entry{{Word: "b"}})
	c.Get("a") // bump a's recency above b
	c.Put("c", []Entry{{Word: "c"}})

	if _, ok := c.Get("b"); ok {
		t.Fatal("expected b to have been evicted as least recently used")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatal("expected a to survive eviction, it was accessed more recently")
	}
	if _, ok := c.Get("c"); !ok {
		t.Fatal("expected c to be present, it was just inserted")
	}
}

func TestInvalidateDropsPrefixedEntries(t *testing.T) {
	c := New(8)
	c.Put("hel", []Entry{{Word: "hello"}})
	c.Put("help", []Entry{{Word: "help"}})
	c.Put("wor", []Entry{{Word: "world"}})

	c.Invalidate("hel")

	if _, ok := c.Get("hel"); ok {
		t.Fatal("expected hel to be invalidated")
	}
	if _, ok := c.Get("wor"); !ok {
		t.Fatal("expected wor to survive invalidation of a different prefix")
	}
}

func TestInvalidateDropsEntriesThatArePrefixesOfWord(t *testing.T) {
	c := New(8)
	c.Put("hel", []Entry{{Word: "hello"}})
	c.Put("wor", []Entry{{Word: "world"}})

	c.Invalidate("hello")

	if _, ok := c.Get("hel"); ok {
		t.Fatal("expected hel to be invalidated as a prefix of the learned word")
	}
	if _, ok := c.Get("wor"); !ok {
		t.Fatal("expected wor to survive invalidation of an unrelated word")
	}
}
