// Package resources maps a skill name to learning-resource links through keyword rules.
package resources

import (
	"net/url"
	"strings"

	"github.com/jonathan/skill-gap-navigator/internal/types"
)

// Rule attaches a fixed resource list to every skill containing one of its keywords.
type Rule struct {
	Category  string
	Keywords  []string
	Resources []types.Resource
}

func (r Rule) matches(skill string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(skill, kw) {
			return true
		}
	}
	return false
}

// DefaultRules returns the built-in categories in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		{
			Category: "containers",
			Keywords: []string{"docker", "container"},
			Resources: []types.Resource{
				{Name: "Docker Docs", URL: "https://docs.docker.com/get-started/"},
				{Name: "Docker for Beginners (YouTube)", URL: "https://www.youtube.com/watch?v=fqMOX6JJhGo"},
				{Name: "Play with Docker", URL: "https://labs.play-with-docker.com/"},
			},
		},
		{
			Category: "kubernetes",
			Keywords: []string{"kubernetes", "k8s"},
			Resources: []types.Resource{
				{Name: "Kubernetes Docs", URL: "https://kubernetes.io/docs/tutorials/kubernetes-basics/"},
				{Name: "K8s for Beginners (YouTube)", URL: "https://www.youtube.com/watch?v=X48VuDVv0do"},
				{Name: "Minikube Tutorial", URL: "https://minikube.sigs.k8s.io/docs/start/"},
			},
		},
		{
			Category: "react",
			Keywords: []string{"react"},
			Resources: []types.Resource{
				{Name: "React Official Docs", URL: "https://react.dev/learn"},
				{Name: "FreeCodeCamp React Course", URL: "https://www.youtube.com/watch?v=bMknfKXIFA8"},
				{Name: "Scrimba Learn React", URL: "https://scrimba.com/learn/learnreact"},
			},
		},
		{
			Category: "node",
			Keywords: []string{"node"},
			Resources: []types.Resource{
				{Name: "Node.js Docs", URL: "https://nodejs.org/en/docs/guides/getting-started-guide/"},
				{Name: "Node.js Crash Course", URL: "https://www.youtube.com/watch?v=fBNz5xF-Kx4"},
			},
		},
		{
			Category: "python",
			Keywords: []string{"python"},
			Resources: []types.Resource{
				{Name: "Python.org Docs", URL: "https://docs.python.org/3/tutorial/"},
				{Name: "Automate the Boring Stuff", URL: "https://automatetheboringstuff.com/"},
				{Name: "Real Python", URL: "https://realpython.com/"},
			},
		},
		{
			Category: "security",
			Keywords: []string{"security", "cyber", "penetration"},
			Resources: []types.Resource{
				{Name: "OWASP Top 10", URL: "https://owasp.org/www-project-top-ten/"},
				{Name: "TryHackMe", URL: "https://tryhackme.com/"},
				{Name: "Hack The Box", URL: "https://www.hackthebox.com/"},
			},
		},
		{
			Category: "blockchain",
			Keywords: []string{"blockchain", "web3", "ethereum"},
			Resources: []types.Resource{
				{Name: "Ethereum Docs", URL: "https://ethereum.org/en/developers/docs/"},
				{Name: "CryptoZombies", URL: "https://cryptozombies.io/"},
				{Name: "Solidity Docs", URL: "https://docs.soliditylang.org/"},
			},
		},
		{
			Category: "databases",
			Keywords: []string{"sql", "database"},
			Resources: []types.Resource{
				{Name: "W3Schools SQL", URL: "https://www.w3schools.com/sql/"},
				{Name: "SQLBolt", URL: "https://sqlbolt.com/"},
			},
		},
	}
}

// Recommender evaluates rules against skill names.
type Recommender struct {
	rules []Rule
}

// NewRecommender creates a Recommender. Rules are non-exclusive: every matching rule contributes.
func NewRecommender(rules []Rule) *Recommender {
	return &Recommender{rules: rules}
}

var defaultRecommender = NewRecommender(DefaultRules())

// Default returns the recommender built from DefaultRules.
func Default() *Recommender {
	return defaultRecommender
}

// RecommendResources recommends resources with the default rule set.
func RecommendResources(skill string) []types.Resource {
	return defaultRecommender.Recommend(skill)
}

// Recommend returns the resources of all matching rules in rule order, deduplicated by URL.
// When nothing matches, two search links for the skill are returned instead.
func (r *Recommender) Recommend(skill string) []types.Resource {
	trimmed := strings.TrimSpace(skill)
	if trimmed == "" {
		return []types.Resource{}
	}
	key := strings.ToLower(trimmed)

	var out []types.Resource
	for _, rule := range r.rules {
		if rule.matches(key) {
			out = append(out, rule.Resources...)
		}
	}
	if len(out) == 0 {
		out = searchLinks(trimmed)
	}
	return DedupeByURL(out)
}

func searchLinks(skill string) []types.Resource {
	enc := encodeURIComponent(skill)
	return []types.Resource{
		{Name: skill + " - Google Search", URL: "https://www.google.com/search?q=learn+" + enc},
		{Name: skill + " - YouTube", URL: "https://www.youtube.com/results?search_query=learn+" + enc},
	}
}

// componentUnescaper restores the characters browsers leave unescaped in URI components.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func encodeURIComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// DedupeByURL drops resources whose URL was already seen. The first occurrence wins.
func DedupeByURL(in []types.Resource) []types.Resource {
	seen := make(map[string]bool, len(in))
	out := make([]types.Resource, 0, len(in))
	for _, res := range in {
		if seen[res.URL] {
			continue
		}
		seen[res.URL] = true
		out = append(out, res)
	}
	return out
}
