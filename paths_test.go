package staticize

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelPrefix(t *testing.T) {
	assert.Equal(t, "../", RelPrefix(0))
	assert.Equal(t, "../../", RelPrefix(1))
	assert.Equal(t, "../../../", RelPrefix(2))
	assert.Equal(t, "../", RelPrefix(-1))
}

func TestDepth(t *testing.T) {
	root := filepath.Join("out", "html")
	tests := []struct {
		dest string
		want int
	}{
		{filepath.Join(root, "dashboard.html"), 0},
		{filepath.Join(root, "voc", "voc-list.html"), 1},
		{filepath.Join(root, "a", "b", "c.html"), 2},
		{filepath.Join("elsewhere", "x", "y.html"), 0},
		{filepath.Join(root, "..x", "p.html"), 1},
		{root, 0},
	}
	for _, tt := range tests {
		t.Run(tt.dest, func(t *testing.T) {
			assert.Equal(t, tt.want, Depth(tt.dest, root))
		})
	}
}

func TestRewritePaths(t *testing.T) {
	page := `<link th:href="@{/css/common.css}" rel="stylesheet">` +
		`<script th:src="@{/js/lib/app.js}"></script>` +
		`<img th:src="@{/images/logo.png}" alt="">` +
		`<link href="../css/literal.css">` +
		`<a th:href="@{/voc/list}">list</a>`

	tests := []struct {
		name  string
		depth int
		want  string
	}{
		{
			name:  "root page goes up once",
			depth: 0,
			want: `<link href="../css/common.css" rel="stylesheet">` +
				`<script src="../js/lib/app.js"></script>` +
				`<img src="../images/logo.png" alt="">` +
				`<link href="../css/literal.css">` +
				`<a th:href="@{/voc/list}">list</a>`,
		},
		{
			name:  "nested page goes up twice",
			depth: 1,
			want: `<link href="../../css/common.css" rel="stylesheet">` +
				`<script src="../../js/lib/app.js"></script>` +
				`<img src="../../images/logo.png" alt="">` +
				`<link href="../css/literal.css">` +
				`<a th:href="@{/voc/list}">list</a>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RewritePaths(page, tt.depth, DefaultAssetRules()))
		})
	}
}

func TestRewritePathsOnlyMatchesConfiguredAttr(t *testing.T) {
	// stylesheets are matched on href only
	in := `<x th:src="@{/css/a.css}">`
	assert.Equal(t, in, RewritePaths(in, 0, DefaultAssetRules()))

	custom := []AssetRule{{Attr: "src", Folder: "fonts"}}
	assert.Equal(t, `<x src="../../fonts/a.woff">`, RewritePaths(`<x th:src="@{/fonts/a.woff}">`, 1, custom))
}

func TestRewriteRootLinks(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`<a href="/dashboard.html">`, `<a href="../../dashboard.html">`},
		{`<a href="/">`, `<a href="../../">`},
		{`<a href="//cdn.example.com/x">`, `<a href="//cdn.example.com/x">`},
		{`<a href="voc/list.html">`, `<a href="voc/list.html">`},
		{`<a th:href="@{/voc}">`, `<a th:href="@{/voc}">`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RewriteRootLinks(tt.in, "../../"), tt.in)
	}
}
