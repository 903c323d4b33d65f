package requests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brettbedarf/fileflow"
)

func TestGetNodeType(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		data    string
		want    fileflow.Kind
		wantErr bool
	}{
		{"file", `{"type":"file","path":"/a"}`, fileflow.KindFile, false},
		{"folder", `{"type":"folder","path":"/a"}`, fileflow.KindFolder, false},
		{"dir alias", `{"type":"dir","path":"/a"}`, fileflow.KindFolder, false},
		{"unknown", `{"type":"socket"}`, 0, true},
		{"missing", `{"path":"/a"}`, 0, true},
		{"bad json", `{`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := GetNodeType([]byte(tt.data))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnmarshalNodeRequest(t *testing.T) {
	t.Parallel()

	t.Run("file with all fields", func(t *testing.T) {
		t.Parallel()
		req, err := UnmarshalNodeRequest([]byte(`{"type":"file","path":"/a/b.txt","uuid":"abc","content":"hi"}`))

		require.NoError(t, err)
		assert.Equal(t, "/a/b.txt", req.Path)
		assert.Equal(t, fileflow.KindFile, req.Type)
		assert.Equal(t, "abc", req.UUID)
		require.NotNil(t, req.Content)
		assert.Equal(t, "hi", *req.Content)
	})

	t.Run("generates uuid", func(t *testing.T) {
		t.Parallel()
		a, err := UnmarshalNodeRequest([]byte(`{"type":"folder","path":"/a"}`))
		require.NoError(t, err)
		b, err := UnmarshalNodeRequest([]byte(`{"type":"folder","path":"/a"}`))
		require.NoError(t, err)

		assert.NotEmpty(t, a.UUID)
		assert.NotEqual(t, a.UUID, b.UUID)
	})

	t.Run("folder drops content", func(t *testing.T) {
		t.Parallel()
		req, err := UnmarshalNodeRequest([]byte(`{"type":"folder","path":"/a","content":"x"}`))

		require.NoError(t, err)
		assert.Nil(t, req.Content)
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()
		_, err := UnmarshalNodeRequest([]byte(`{"type":"file","path":"  "}`))

		assert.ErrorIs(t, err, fileflow.ErrInvalidPath)
	})
}

func TestParseNodes(t *testing.T) {
	t.Parallel()

	jsonData := `[
		{"type": "folder", "path": "/docs", "uuid": "d"},
		{"type": "file", "path": "/docs/a.txt", "content": "A"}
	]`
	yamlData := `
- type: folder
  path: /docs
  uuid: d
- type: file
  path: /docs/a.txt
  content: A
`
	for _, tc := range []struct {
		format Format
		data   string
	}{{JSONFormat, jsonData}, {YAMLFormat, yamlData}} {
		t.Run(string(tc.format), func(t *testing.T) {
			t.Parallel()
			reqs, err := ParseNodes([]byte(tc.data), tc.format)

			require.NoError(t, err)
			require.Len(t, reqs, 2)
			assert.Equal(t, fileflow.KindFolder, reqs[0].Type)
			assert.Equal(t, "d", reqs[0].UUID)
			assert.Equal(t, "/docs/a.txt", reqs[1].Path)
			require.NotNil(t, reqs[1].Content)
			assert.Equal(t, "A", *reqs[1].Content)
		})
	}

	t.Run("invalid entry", func(t *testing.T) {
		t.Parallel()
		_, err := ParseNodes([]byte(`[{"type":"folder","path":"/a"},{"type":"pipe","path":"/b"}]`), JSONFormat)

		require.Error(t, err)
		assert.ErrorIs(t, err, fileflow.ErrValidation)
		assert.Contains(t, err.Error(), "node 1")
	})

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()
		_, err := ParseNodes([]byte(`[]`), Format("toml"))

		assert.Error(t, err)
	})
}

func TestFormatFromPath(t *testing.T) {
	t.Parallel()
	tests := map[string]Format{
		"nodes.json": JSONFormat,
		"nodes.YAML": YAMLFormat,
		"nodes.yml":  YAMLFormat,
	}
	for p, want := range tests {
		got, err := FormatFromPath(p)
		require.NoError(t, err, p)
		assert.Equal(t, want, got, p)
	}

	_, err := FormatFromPath("nodes.txt")
	assert.Error(t, err)
}

func TestLoadNodesFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	p := filepath.Join(dir, "nodes.yaml")
	require.NoError(t, os.WriteFile(p, []byte("- type: file\n  path: /x.md\n"), 0o644))

	reqs, err := LoadNodesFile(p)

	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, "/x.md", reqs[0].Path)
	assert.Nil(t, reqs[0].Content)

	_, err = LoadNodesFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestDefaultNodes(t *testing.T) {
	t.Parallel()
	reqs := DefaultNodes()

	require.Len(t, reqs, 7)
	byID := make(map[string]*fileflow.NodeRequest, len(reqs))
	for _, r := range reqs {
		byID[r.UUID] = r
	}
	assert.Equal(t, "/Documents", byID["1"].Path)
	assert.Equal(t, fileflow.KindFolder, byID["6"].Type)
	require.NotNil(t, byID["7"].Content)
	assert.Equal(t, "Vacation notes.", *byID["7"].Content)
}
