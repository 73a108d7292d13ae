package storage

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/en-o/codeshelf/pkg/types"
)

func TestParseProjects_ShapeEquivalence(t *testing.T) {
	items := `[{"id":"p1","name":"Demo","path":"/src/demo"},{"id":"p2","name":"Other","isFavorite":true}]`
	want := []types.Project{
		{ID: "p1", Name: "Demo", Path: "/src/demo"},
		{ID: "p2", Name: "Other", IsFavorite: true},
	}

	shapes := map[string]string{
		"bare array":         items,
		"versioned envelope": `{"version":0,"data":{"projects":` + items + `}}`,
		"wrapped object":     `{"projects":` + items + `}`,
	}
	for name, content := range shapes {
		t.Run(name, func(t *testing.T) {
			got, err := ParseProjects([]byte(content))
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("ParseProjects mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseProjects_Failures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid JSON", `{"projects": [`},
		{"no matching shape", `{"items": []}`},
		{"scalar", `42`},
		{"wrong element type", `[1, 2, 3]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseProjects([]byte(tt.content))
			assert.ErrorIs(t, err, types.ErrParse)
		})
	}
}

func TestParseProjects_EmptyAndNull(t *testing.T) {
	got, err := ParseProjects([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)

	got, err = ParseProjects([]byte(`{"projects": null}`))
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestParseProjects_PreservesUnknownKeys(t *testing.T) {
	got, err := ParseProjects([]byte(`[{"id":"p1","name":"Demo","editor":"vim","order":3}]`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.JSONEq(t, `"vim"`, string(got[0].Extra["editor"]))

	out, err := json.Marshal(got[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"p1","name":"Demo","editor":"vim","order":3}`, string(out))
}

func TestRun_ProjectsRoundTripExactly(t *testing.T) {
	tests := []struct {
		name   string
		legacy string
	}{
		{"explicit zero values", `[{"id":"p1","name":"Demo","path":"","isFavorite":false,"tags":[],"labels":[]}]`},
		{"case variant of a known key", `[{"id":"p1","name":"Demo","ID":"other"}]`},
		{"explicit null", `[{"id":"p1","name":"Demo","createdAt":null,"tags":null}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := legacyInstall(t)
			writeFile(t, filepath.Join(loc.data, "projects.json"), tt.legacy)
			cfg := newTestConfig(t)

			result, err := newTestMigrator(loc).Run(cfg)
			require.NoError(t, err)
			assert.True(t, result.Success)

			doc, err := ReadDocument[map[string]json.RawMessage](cfg.ProjectsFile())
			require.NoError(t, err)
			assert.JSONEq(t, tt.legacy, string(doc.Data["projects"]))
		})
	}
}

func TestParseProjects_CaseVariantKeepsID(t *testing.T) {
	got, err := ParseProjects([]byte(`[{"id":"p1","name":"Demo","ID":"other","Name":"x"}]`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)
	assert.Equal(t, "Demo", got[0].Name)
	assert.JSONEq(t, `"other"`, string(got[0].Extra["ID"]))
	assert.JSONEq(t, `"x"`, string(got[0].Extra["Name"]))
}

func TestParseStringArray_ShapeEquivalence(t *testing.T) {
	want := []string{"Go", "Rust", "Vue"}
	shapes := map[string]string{
		"bare array":         `["Go","Rust","Vue"]`,
		"versioned envelope": `{"version":1,"last_updated":"x","data":{"labels":["Go","Rust","Vue"]}}`,
		"wrapped object":     `{"labels":["Go","Rust","Vue"]}`,
	}
	for name, content := range shapes {
		t.Run(name, func(t *testing.T) {
			got, err := ParseStringArray([]byte(content), "labels")
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestParseStringArray_NoMatchIsEmpty(t *testing.T) {
	for _, content := range []string{`{"tags":["a"]}`, `{"data":{"other":[]}}`, `"labels"`, `null`} {
		got, err := ParseStringArray([]byte(content), "labels")
		require.NoError(t, err, content)
		assert.Equal(t, []string{}, got, content)
	}
}

func TestParseStringArray_Errors(t *testing.T) {
	_, err := ParseStringArray([]byte(`["a",`), "labels")
	assert.ErrorIs(t, err, types.ErrParse)

	_, err = ParseStringArray([]byte(`{"labels":[1,2]}`), "labels")
	assert.ErrorIs(t, err, types.ErrParse)
}

func TestParseStringArray_FieldPriority(t *testing.T) {
	content := []byte(`{"tags":["t"],"categories":["c"]}`)

	got, err := parseStringArray(content, "categories", "tags")
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, got)

	got, err = parseStringArray([]byte(`{"tags":["t"]}`), "categories", "tags")
	require.NoError(t, err)
	assert.Equal(t, []string{"t"}, got)
}

func TestSequenceShapes_Matchers(t *testing.T) {
	tests := []struct {
		name    string
		match   func([]byte, string) (json.RawMessage, bool)
		content string
		want    string
		ok      bool
	}{
		{"bare array matches array", matchBareArray, ` [1]`, ` [1]`, true},
		{"bare array rejects object", matchBareArray, `{"x":[1]}`, "", false},
		{"envelope matches data.field", matchEnvelopeField, `{"data":{"x":[1]}}`, `[1]`, true},
		{"envelope rejects top-level field", matchEnvelopeField, `{"x":[1]}`, "", false},
		{"envelope rejects non-object data", matchEnvelopeField, `{"data":[1]}`, "", false},
		{"object matches field", matchObjectField, `{"x":[1]}`, `[1]`, true},
		{"object rejects array", matchObjectField, `[1]`, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.match([]byte(tt.content), "x")
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, string(got))
			}
		})
	}
}

func TestParseStatsCache(t *testing.T) {
	bare := `{"projects":{"/src/demo":{"name":"demo","path":"/src/demo","dirty":false,"today_commits":2,"week_commits":5,"unpushed_commits":0,"unmerged_branches":1}},"dashboard":{"total_projects":1,"today_commits":2,"week_commits":5,"unpushed_commits":0,"unmerged_branches":1}}`

	t.Run("bare object", func(t *testing.T) {
		got, err := ParseStatsCache([]byte(bare))
		require.NoError(t, err)
		assert.Equal(t, 1, got.Dashboard.TotalProjects)
		assert.Equal(t, 5, got.Projects["/src/demo"].WeekCommits)
		assert.NotNil(t, got.HeatmapData)
		assert.NotNil(t, got.RecentCommits)
	})

	t.Run("versioned envelope", func(t *testing.T) {
		got, err := ParseStatsCache([]byte(`{"version":1,"last_updated":"x","data":` + bare + `}`))
		require.NoError(t, err)
		assert.Equal(t, 1, got.Dashboard.TotalProjects)
	})

	t.Run("empty object", func(t *testing.T) {
		got, err := ParseStatsCache([]byte(`{}`))
		require.NoError(t, err)
		assert.Equal(t, types.NewStatsCacheData(), got)
	})

	for _, bad := range []string{`[]`, `"cache"`, `{"dashboard":`, `{"dashboard":[]}`} {
		t.Run("rejects "+bad, func(t *testing.T) {
			_, err := ParseStatsCache([]byte(bad))
			assert.ErrorIs(t, err, types.ErrParse)
		})
	}
}

func TestParseProfiles(t *testing.T) {
	got, err := ParseProfiles([]byte(`[{"id":"a","name":"Work","settings":{"env":{"K":"V"}}}]`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Work", got[0].Name)
	assert.JSONEq(t, `{"env":{"K":"V"}}`, string(got[0].Extra["settings"]))

	_, err = ParseProfiles([]byte(`{"other":[]}`))
	assert.ErrorIs(t, err, types.ErrParse)
}
