package staticize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindLeftovers(t *testing.T) {
	page := `<html xmlns:th="http://www.thymeleaf.org"><body>
<a th:href="@{/voc/list}" class="nav">VOC</a>
<p th:utext="${msg}">hi</p>
<img src="../images/a.png">
</body></html>`

	found, err := FindLeftovers(strings.NewReader(page))
	require.NoError(t, err)
	require.Len(t, found, 3)
	assert.Equal(t, Leftover{Element: "html", Attr: "xmlns:th", Value: "http://www.thymeleaf.org"}, found[0])
	assert.Equal(t, Leftover{Element: "a", Attr: "th:href", Value: "@{/voc/list}"}, found[1])
	assert.Equal(t, "th:utext", found[2].Attr)
	assert.Equal(t, `<a th:href="@{/voc/list}">`, found[1].String())
}

func TestFindLeftoversClean(t *testing.T) {
	found, err := FindLeftovers(strings.NewReader(`<div class="th:not-an-attr"><a href="x.html">x</a></div>`))
	require.NoError(t, err)
	assert.Empty(t, found)
}
