package handler

import "testing"

func TestExtractLinks(t *testing.T) {
	rawHTML := `<html><body>
		<a href="/about">About</a>
		<a href="https://other.example/page">Other</a>
		<a href="javascript:void(0)">Skip me</a>
	</body></html>`

	got := extractLinks(rawHTML, "https://example.com/article")
	if len(got.Internal) != 1 || got.Internal[0].Href != "https://example.com/about" {
		t.Errorf("Internal = %+v, want one link to https://example.com/about", got.Internal)
	}
	if len(got.External) != 1 || got.External[0].Href != "https://other.example/page" {
		t.Errorf("External = %+v, want one link to https://other.example/page", got.External)
	}
}

func TestExtractImages(t *testing.T) {
	rawHTML := `<html><body>
		<img src="photo.jpg" alt="a photo">
		<img src="data:image/png;base64,aaaa">
	</body></html>`

	got := extractImages(rawHTML, "https://example.com/article/")
	if len(got) != 1 {
		t.Fatalf("len(images) = %d, want 1 (data: URI should be skipped)", len(got))
	}
	if got[0].Src != "https://example.com/article/photo.jpg" || got[0].Alt != "a photo" {
		t.Errorf("images[0] = %+v", got[0])
	}
}

func TestExtractOGMetadata(t *testing.T) {
	rawHTML := `<html><head>
		<meta property="og:title" content="A Title">
		<meta property="og:type" content="article">
	</head></html>`

	got := extractOGMetadata(rawHTML)
	if got.Title != "A Title" || got.Type != "article" {
		t.Errorf("OGMetadata = %+v", got)
	}
}

func TestEstimateTokens(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"abcdef", 2},
		{"abcdefghi", 3},
	}
	for _, tc := range cases {
		if got := estimateTokens(tc.text); got != tc.want {
			t.Errorf("estimateTokens(%q) = %d, want %d", tc.text, got, tc.want)
		}
	}
}

func TestApplyCSSSelector(t *testing.T) {
	rawHTML := `<html><body><nav>skip</nav><article><p>keep me</p></article></body></html>`

	got, err := applyCSSSelector(rawHTML, "article")
	if err != nil {
		t.Fatalf("applyCSSSelector: %v", err)
	}
	if got == rawHTML {
		t.Error("expected the selector to narrow the HTML")
	}

	got, err = applyCSSSelector(rawHTML, ".nonexistent")
	if err != nil {
		t.Fatalf("applyCSSSelector: %v", err)
	}
	if got != rawHTML {
		t.Error("expected a non-matching selector to fall back to the original HTML")
	}
}
