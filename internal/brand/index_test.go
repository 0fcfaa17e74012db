package brand

import (
	"testing"
	"time"

	"github.com/nelson960/Trend-Analysis/internal/post"
)

func indexPosts() []post.Post {
	texts := []string{
		"I just bought a new Apple phone!",
		"Samsung's new release is impressive.",
		"Loving my new Nike sneakers.",
		"Nothing beats a cold Coca-Cola on a hot day.",
		"Just attended a tech conference.",
		"The latest from Nike and Apple is trending.",
	}
	posts := make([]post.Post, len(texts))
	for i, text := range texts {
		posts[i] = post.Post{
			PostID:    string(rune('a' + i)),
			Text:      text,
			CreatedAt: time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC),
		}
	}
	return posts
}

func TestBuildIndexLexical(t *testing.T) {
	ix, err := BuildIndex(indexPosts(), testVocabulary, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Every post containing the literal brand word must appear in its set.
	if got := ix.Mentions("nike"); len(got) != 2 {
		t.Errorf("expected 2 nike mentions, got %v", got)
	}
	if got := ix.Mentions("apple"); len(got) != 2 {
		t.Errorf("expected 2 apple mentions, got %v", got)
	}
	if !ix.Found("coca-cola") {
		t.Error("expected coca-cola to be found")
	}
	if ix.Found("google") {
		t.Errorf("expected no google mentions, got %v", ix.Mentions("google"))
	}
}

func TestBuildIndexWordBoundaries(t *testing.T) {
	posts := []post.Post{
		{PostID: "1", Text: "pineapple smoothies all day", CreatedAt: time.Now()},
		{PostID: "2", Text: "APPLE keynote today", CreatedAt: time.Now()},
	}
	ix, err := BuildIndex(posts, []string{"apple"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := ix.Mentions("apple")
	if len(got) != 1 || got[0] != "2" {
		t.Errorf("expected only whole-word case-insensitive match, got %v", got)
	}
}

func TestBuildIndexEmptyVocabulary(t *testing.T) {
	if _, err := BuildIndex(indexPosts(), nil, nil); err != ErrEmptyVocabulary {
		t.Errorf("expected ErrEmptyVocabulary, got %v", err)
	}
}

func TestSearchMultiple(t *testing.T) {
	ix, err := BuildIndex(indexPosts(), testVocabulary, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resolver, _ := NewResolver(testVocabulary, DefaultCutoff)

	available, unavailable := ix.SearchMultiple(resolver, []string{"nike", "xyzcorp"})
	if len(available) != 1 || available[0] != "nike" {
		t.Errorf("expected available=[nike], got %v", available)
	}
	if len(unavailable) != 1 || unavailable[0] != "xyzcorp" {
		t.Errorf("expected unavailable=[xyzcorp], got %v", unavailable)
	}
}

func TestSearchMultipleResolvedButUnmentioned(t *testing.T) {
	ix, _ := BuildIndex(indexPosts(), testVocabulary, nil)
	resolver, _ := NewResolver(testVocabulary, DefaultCutoff)

	// "gogle" resolves to "google" but nothing mentions it: the resolved
	// form is reported, not the raw query.
	_, unavailable := ix.SearchMultiple(resolver, []string{"gogle"})
	if len(unavailable) != 1 || unavailable[0] != "google" {
		t.Errorf("expected unavailable=[google], got %v", unavailable)
	}
}

func TestSearchMultipleDedupesAndCorrects(t *testing.T) {
	ix, _ := BuildIndex(indexPosts(), testVocabulary, nil)
	resolver, _ := NewResolver(testVocabulary, DefaultCutoff)

	available, _ := ix.SearchMultiple(resolver, []string{"aple", "apple", "Nike"})
	if len(available) != 2 || available[0] != "apple" || available[1] != "nike" {
		t.Errorf("expected available=[apple nike], got %v", available)
	}
}
