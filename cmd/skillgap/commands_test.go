package main

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skill-gap-navigator/internal/config"
	"github.com/jonathan/skill-gap-navigator/internal/intake"
	"github.com/jonathan/skill-gap-navigator/internal/server"
	"github.com/jonathan/skill-gap-navigator/internal/types"
)

// clearEnv isolates commands from the developer's .env.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"DATABASE_URL", "PORT", "CATALOG_PATH", "ALIAS_MATCHING", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}
}

func TestAnalyzeCommand(t *testing.T) {
	clearEnv(t)
	stdout, _, err := executeCommand(t, "", "analyze", "--resume", "Python, React ", "--required", "python,react,node.js")
	require.NoError(t, err)

	var result types.GapResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, []string{"python", "react"}, result.Matched)
	assert.Equal(t, []string{"node.js"}, result.Missing)
	assert.Empty(t, result.Extra)
	assert.Equal(t, 67, result.MatchPercentage)
}

func TestAnalyzeCommand_InferredRole(t *testing.T) {
	clearEnv(t)
	stdout, stderr, err := executeCommand(t, "", "analyze", "--resume", "solidity", "--role", "Blockchain Developer", "--verbose")
	require.NoError(t, err)

	var result types.GapResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, []string{"solidity"}, result.Matched)
	assert.Contains(t, stderr, "SKILL GAP ANALYSIS")
	assert.Contains(t, stderr, "Blockchain Developer")
}

func TestAnalyzeCommand_Aliases(t *testing.T) {
	clearEnv(t)
	stdout, _, err := executeCommand(t, "", "analyze", "--resume", "nodejs,k8s", "--required", "Node.js,Kubernetes", "--aliases")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"matchPercentage": 100`)

	stdout, _, err = executeCommand(t, "", "analyze", "--resume", "nodejs,k8s", "--required", "Node.js,Kubernetes")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"matchPercentage": 0`)
}

func TestAnalyzeCommand_FlagsValidation(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{"missing --resume", []string{"analyze", "--required", "go"}, "required"},
		{"missing requirements", []string{"analyze", "--resume", "go"}, "required"},
		{"blank role", []string{"analyze", "--resume", "go", "--role", "  "}, "--required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCommand(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestAnalyzeCommand_WritesFile(t *testing.T) {
	clearEnv(t)
	out := filepath.Join(t.TempDir(), "nested", "gap.json")
	stdout, stderr, err := executeCommand(t, "", "analyze", "--resume", "go", "--required", "go,rust", "--out", out)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Wrote")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var result types.GapResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, 50, result.MatchPercentage)
}

func TestInferCommand(t *testing.T) {
	stdout, _, err := executeCommand(t, "", "infer", "--role", "Blockchain Security Auditor")
	require.NoError(t, err)

	var res inferResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	assert.Equal(t, "cyber_security", res.Rule)
	assert.Contains(t, res.Skills, "firewalls")

	stdout, _, err = executeCommand(t, "", "infer", "--role", "Generic Software Dev")
	require.NoError(t, err)
	var fallback inferResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &fallback))
	assert.Empty(t, fallback.Rule)
	assert.NotEmpty(t, fallback.Skills)
}

func TestResourcesCommand(t *testing.T) {
	stdout, stderr, err := executeCommand(t, "", "resources", "--skill", "Docker", "-v")
	require.NoError(t, err)

	var list []types.Resource
	require.NoError(t, json.Unmarshal([]byte(stdout), &list))
	require.NotEmpty(t, list)
	assert.Contains(t, stderr, "LEARNING RESOURCES")

	_, _, err = executeCommand(t, "", "resources", "--skill", " ")
	assert.Error(t, err)
}

func TestRoadmapCommand(t *testing.T) {
	clearEnv(t)
	stdout, _, err := executeCommand(t, "", "roadmap", "--skills", "Docker,React,Leadership", "--weeks", "3")
	require.NoError(t, err)

	var resp types.RoadmapResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	require.Len(t, resp.Roadmap, 3)
	assert.Equal(t, "Mastering Leadership", resp.Roadmap[0].Title)
	assert.Equal(t, 3, resp.Roadmap[2].Week)
}

func TestRoadmapCommand_CustomCatalog(t *testing.T) {
	clearEnv(t)
	stdout, stderr, err := executeCommand(t, "", "roadmap", "--skills", "rust,go", "--weeks", "2",
		"--catalog", filepath.Join("testdata", "catalog.yaml"), "--verbose")
	require.NoError(t, err)

	var resp types.RoadmapResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	require.Len(t, resp.Roadmap, 2)
	assert.Equal(t, "Mastering Go", resp.Roadmap[0].Title)
	assert.Equal(t, "https://go.dev/tour/", resp.Roadmap[0].Resources[0].URL)
	assert.Equal(t, "Mastering Rust", resp.Roadmap[1].Title)
	assert.Contains(t, stderr, "WEEK 2 of 2")

	_, _, err = executeCommand(t, "", "roadmap", "--skills", "go", "--catalog", "testdata/missing.yaml")
	assert.Error(t, err)
}

func TestRoadmapCommand_CatalogFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("CATALOG_PATH", filepath.Join("testdata", "catalog.yaml"))

	stdout, _, err := executeCommand(t, "", "roadmap", "--skills", "go")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Tour of Go")
}

func TestExtractCommand(t *testing.T) {
	stdout, _, err := executeCommand(t, "", "extract", "--file", filepath.Join("testdata", "resume.txt"))
	require.NoError(t, err)

	var res map[string][]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	for _, want := range []string{"python", "react", "docker", "sql", "git"} {
		assert.Contains(t, res["skills"], want)
	}

	stdout, _, err = executeCommand(t, "I run Kubernetes clusters", "extract", "--file", "-")
	require.NoError(t, err)
	assert.Contains(t, stdout, "kubernetes")

	_, _, err = executeCommand(t, "", "extract", "--file", "testdata/nope.txt")
	assert.Error(t, err)
}

func TestExtractCommand_DOCX(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body><w:p><w:r><w:t>Kubernetes and AWS</w:t></w:r></w:p></w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "cv.docx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	stdout, _, err := executeCommand(t, "", "extract", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "kubernetes")
	assert.Contains(t, stdout, "aws")

	blank := filepath.Join(t.TempDir(), "blank.txt")
	require.NoError(t, os.WriteFile(blank, []byte("\n"), 0o644))
	_, _, err = executeCommand(t, "", "extract", "--file", blank)
	assert.ErrorIs(t, err, intake.ErrEmptyDocument)
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-test-secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "2")
	userID := uuid.New()

	stdout, _, err := executeCommand(t, "", "token", "--user", userID.String())
	require.NoError(t, err)

	jwtConfig, err := config.NewJWTConfig()
	require.NoError(t, err)
	claims, err := server.NewJWTService(jwtConfig).ValidateToken(strings.TrimSpace(stdout))
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)

	_, _, err = executeCommand(t, "", "token", "--user", "not-a-uuid")
	assert.Error(t, err)

	_, _, err = executeCommand(t, "", "token", "--user", userID.String(), "--email", "a@example.com")
	assert.Error(t, err)

	_, _, err = executeCommand(t, "", "token", "--email", "not-an-email")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --email")

	t.Setenv("JWT_SECRET", "")
	_, _, err = executeCommand(t, "", "token")
	assert.Error(t, err)
}

func TestDatabaseCommandsRequireURL(t *testing.T) {
	clearEnv(t)
	for _, args := range [][]string{
		{"migrate"},
		{"seed", "--file", filepath.Join("testdata", "job_roles.json")},
	} {
		_, _, err := executeCommand(t, "", args...)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DATABASE_URL")
	}

	_, _, err := executeCommand(t, "", "token", "--email", "dev@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")

	t.Setenv("JWT_SECRET", "x")
	_, _, err = executeCommand(t, "", "serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadSeedFile(t *testing.T) {
	seed, err := loadSeedFile(filepath.Join("testdata", "job_roles.json"))
	require.NoError(t, err)
	require.Len(t, seed, 2)
	assert.Equal(t, "Engineering", seed[0].Domain)
	assert.Len(t, seed[0].Roles, 2)
	assert.Equal(t, []string{"SQL", "Python", "Excel", "Tableau"}, seed[1].Roles[0].RequiredSkills)
}

func TestLoadSeedFile_Errors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{"missing file", filepath.Join(dir, "none.json"), "failed to read seed file"},
		{"bad json", write("bad.json", `{`), "failed to parse seed JSON"},
		{"no title", write("title.json", `[{"domain": "X", "roles": [{"required_skills": ["go"]}]}]`), "has no title"},
		{"no skills", write("skills.json", `[{"domain": "X", "roles": [{"title": "Dev"}]}]`), "no required_skills"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadSeedFile(tt.path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b c", "d"}, splitList(" a, b c ,,d,"))
	assert.Empty(t, splitList(""))
	assert.Empty(t, splitList(" , "))
}
