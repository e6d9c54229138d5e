package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "Python", "python"},
		{"trims", "  Machine Learning ", "machine learning"},
		{"keeps punctuation", "Node.js", "node.js"},
		{"tabs and newlines", "\tDocker\n", "docker"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"inner spacing untouched", "Spring  Boot", "spring  boot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"", " ", "Python", " NumPy ", "C++ or C#", "IDS/IPS", "  3D Math\t", "ÄBC"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalize should be idempotent for %q", in)
	}
}

func TestCanonicalSkill(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Node.js", "node.js"},
		{"node js", "node.js"},
		{"NodeJS", "node.js"},
		{"node", "node.js"},
		{"K8s", "kubernetes"},
		{"Golang", "go"},
		{"ReactJS", "react"},
		{"Postgres", "postgresql"},
		{"leadership", "leadership"},
		{"  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanonicalSkill(tt.input))
		})
	}
}

func TestNormalizeAll(t *testing.T) {
	got := NormalizeAll([]string{"Python", " python ", "", "React", "   ", "Docker", "REACT"})
	assert.Equal(t, []string{"python", "react", "docker"}, got)
}

func TestNormalizeAll_Empty(t *testing.T) {
	assert.Empty(t, NormalizeAll(nil))
	assert.NotNil(t, NormalizeAll(nil), "should return an empty slice, not nil")
}

func TestCanonicalizeAll_MergesAliases(t *testing.T) {
	got := CanonicalizeAll([]string{"Node.js", "nodejs", "node js", "K8s", "kubernetes"})
	assert.Equal(t, []string{"node.js", "kubernetes"}, got)
}
