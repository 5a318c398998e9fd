package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/xkilldash9x/beacon/internal/render"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const fixtureLHR = `{
	"lighthouseVersion": "12.0.0",
	"requestedUrl": "https://example.com/",
	"finalUrl": "https://example.com/",
	"fetchTime": "2024-03-01T10:00:00.000Z",
	"gatherMode": "navigation",
	"userAgent": "Mozilla/5.0 Chrome/121.0.6167.85 Safari/537.36",
	"environment": {
		"networkUserAgent": "Mozilla/5.0 Chrome/121.0.6167.85",
		"hostUserAgent": "Mozilla/5.0 Chrome/121.0.6167.85",
		"benchmarkIndex": 1500
	},
	"configSettings": {"locale": "en-US", "formFactor": "mobile", "channel": "cli"},
	"categories": {
		"performance": {
			"title": "Performance",
			"score": 0.95,
			"auditRefs": [{"id": "fast-audit", "weight": 1}]
		},
		"seo": {"title": "SEO", "score": 0.4, "auditRefs": []}
	},
	"categoryGroups": {},
	"audits": {
		"fast-audit": {"id": "fast-audit", "title": "Loads fast", "score": 1}
	}
}`

func writeFixture(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(fixtureLHR), 0o644))
	return path
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		dir   string
		want  string
	}{
		{"alongside input", "/data/run.json", "", "/data/run.report.html"},
		{"relocated", "/data/run.json", "/out", "/out/run.report.html"},
		{"no extension", "/data/run", "", "/data/run.report.html"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, outputPath(tc.input, tc.dir))
		})
	}
}

func TestWrapDocument(t *testing.T) {
	page := wrapDocument([]byte(`<div class="lh-root"></div>`), `Report: <Example> & Co`)

	out := string(page)
	assert.True(t, bytes.HasPrefix(page, []byte("<!doctype html>")))
	assert.Contains(t, out, "<title>Report: &lt;Example&gt; &amp; Co</title>")
	assert.Contains(t, out, `<div class="lh-root"></div>`)
	assert.Contains(t, out, "</html>")
}

func TestRenderFile(t *testing.T) {
	renderer := render.New(zap.NewNop())
	opts := render.Options{Mode: render.CreateRoot}

	t.Run("writes report html", func(t *testing.T) {
		dir := t.TempDir()
		input := writeFixture(t, dir, "run.json")

		out, err := renderFile(renderer, input, "", false, opts)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "run.report.html"), out)

		page, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(page), "lh-root")
		assert.Contains(t, string(page), "<title>Lighthouse Report: https://example.com/</title>")
		// Both category bodies landed in document order.
		assert.Contains(t, string(page), `id="performance"`)
		assert.Contains(t, string(page), `id="seo"`)
	})

	t.Run("relocates to output dir", func(t *testing.T) {
		inDir, outDir := t.TempDir(), t.TempDir()
		input := writeFixture(t, inDir, "run.json")

		out, err := renderFile(renderer, input, outDir, false, opts)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(outDir, "run.report.html"), out)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"audits": {}}`), 0o644))

		_, err := renderFile(renderer, path, "", false, opts)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "categories")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := renderFile(renderer, filepath.Join(t.TempDir(), "nope.json"), "", false, opts)
		assert.Error(t, err)
	})
}

func TestBadgeCommand(t *testing.T) {
	dir := t.TempDir()
	input := writeFixture(t, dir, "run.json")

	t.Run("stdout default category", func(t *testing.T) {
		cmd := newBadgeCmd()
		var buf bytes.Buffer
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{input})

		require.NoError(t, cmd.Execute())
		assert.Contains(t, buf.String(), "<svg")
		assert.Contains(t, buf.String(), ">Performance</text>")
	})

	t.Run("named category to file", func(t *testing.T) {
		out := filepath.Join(dir, "seo.svg")
		cmd := newBadgeCmd()
		cmd.SetOut(new(bytes.Buffer))
		cmd.SetArgs([]string{input, "--category", "seo", "--output", out})

		require.NoError(t, cmd.Execute())
		svg, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(svg), ">SEO</text>")
	})

	t.Run("unknown category", func(t *testing.T) {
		cmd := newBadgeCmd()
		cmd.SetOut(new(bytes.Buffer))
		cmd.SetErr(new(bytes.Buffer))
		cmd.SetArgs([]string{input, "--category", "bogus"})

		assert.Error(t, cmd.Execute())
	})
}
