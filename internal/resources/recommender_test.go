package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skill-gap-navigator/internal/types"
)

func urls(in []types.Resource) []string {
	out := make([]string, 0, len(in))
	for _, r := range in {
		out = append(out, r.URL)
	}
	return out
}

func TestRecommend_SingleCategory(t *testing.T) {
	tests := []struct {
		skill    string
		count    int
		firstURL string
	}{
		{"docker", 3, "https://docs.docker.com/get-started/"},
		{"Containerization", 3, "https://docs.docker.com/get-started/"},
		{"k8s", 3, "https://kubernetes.io/docs/tutorials/kubernetes-basics/"},
		{"React", 3, "https://react.dev/learn"},
		{"node.js", 2, "https://nodejs.org/en/docs/guides/getting-started-guide/"},
		{"python", 3, "https://docs.python.org/3/tutorial/"},
		{"penetration testing", 3, "https://owasp.org/www-project-top-ten/"},
		{"Web3", 3, "https://ethereum.org/en/developers/docs/"},
		{"postgresql", 2, "https://www.w3schools.com/sql/"},
	}

	for _, tt := range tests {
		t.Run(tt.skill, func(t *testing.T) {
			got := RecommendResources(tt.skill)
			require.Len(t, got, tt.count)
			assert.Equal(t, tt.firstURL, got[0].URL)
		})
	}
}

func TestRecommend_AccumulatesAcrossCategories(t *testing.T) {
	// "docker security" matches containers then security.
	got := RecommendResources("docker security")
	require.Len(t, got, 6)
	assert.Equal(t, "https://docs.docker.com/get-started/", got[0].URL)
	assert.Equal(t, "https://owasp.org/www-project-top-ten/", got[3].URL)

	// "react native node" matches react then node.
	got = RecommendResources("react native node")
	assert.Len(t, got, 5)
}

func TestRecommend_Fallback(t *testing.T) {
	got := RecommendResources("Leadership")
	assert.Equal(t, []types.Resource{
		{Name: "Leadership - Google Search", URL: "https://www.google.com/search?q=learn+Leadership"},
		{Name: "Leadership - YouTube", URL: "https://www.youtube.com/results?search_query=learn+Leadership"},
	}, got)
}

func TestRecommend_FallbackEncoding(t *testing.T) {
	got := RecommendResources("c++ & rust (beginner)")
	require.Len(t, got, 2)
	assert.Equal(t, "https://www.google.com/search?q=learn+c%2B%2B%20%26%20rust%20(beginner)", got[0].URL)
	assert.Equal(t, "c++ & rust (beginner) - YouTube", got[1].Name)
}

func TestRecommend_Empty(t *testing.T) {
	for _, skill := range []string{"", "   ", "\t"} {
		got := RecommendResources(skill)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
}

func TestRecommend_NoDuplicateURLs(t *testing.T) {
	for _, skill := range []string{
		"docker", "kubernetes container", "react node", "python sql database",
		"cyber security penetration", "blockchain web3 ethereum", "unknown skill",
	} {
		got := RecommendResources(skill)
		seen := make(map[string]bool)
		for _, u := range urls(got) {
			assert.False(t, seen[u], "duplicate url %s for %q", u, skill)
			seen[u] = true
		}
	}
}

func TestRecommender_CustomRules(t *testing.T) {
	shared := types.Resource{Name: "Shared", URL: "https://example.com/shared"}
	rec := NewRecommender([]Rule{
		{Category: "a", Keywords: []string{"go"}, Resources: []types.Resource{shared, {Name: "Tour", URL: "https://go.dev/tour"}}},
		{Category: "b", Keywords: []string{"golang"}, Resources: []types.Resource{{Name: "Shared again", URL: shared.URL}}},
	})

	got := rec.Recommend("Golang")
	assert.Equal(t, []string{"https://example.com/shared", "https://go.dev/tour"}, urls(got))
	assert.Equal(t, "Shared", got[0].Name, "first occurrence wins")
}

func TestDedupeByURL(t *testing.T) {
	in := []types.Resource{
		{Name: "A", URL: "u1"},
		{Name: "B", URL: "u2"},
		{Name: "A2", URL: "u1"},
		{Name: "C", URL: "u3"},
	}
	got := DedupeByURL(in)
	assert.Equal(t, []types.Resource{{Name: "A", URL: "u1"}, {Name: "B", URL: "u2"}, {Name: "C", URL: "u3"}}, got)
	assert.Empty(t, DedupeByURL(nil))
}

func TestEncodeURIComponent(t *testing.T) {
	tests := map[string]string{
		"go":          "go",
		"a b":         "a%20b",
		"c#":          "c%23",
		"it's (fun)*": "it's%20(fun)*",
		"~-_.!":       "~-_.!",
		"é":           "%C3%A9",
	}
	for in, want := range tests {
		assert.Equal(t, want, encodeURIComponent(in), in)
	}
}
