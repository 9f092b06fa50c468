package staticize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripDirectives(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "namespace declaration",
			in:   `<html lang="ko" xmlns:th="http://www.thymeleaf.org">`,
			want: `<html lang="ko">`,
		},
		{
			name: "attr binding",
			in:   `<div class="card" th:attr="data-count=${count}">x</div>`,
			want: `<div class="card">x</div>`,
		},
		{
			name: "text binding keeps the sample text",
			in:   `<td th:text="${voc.title}">샘플 VOC</td>`,
			want: `<td>샘플 VOC</td>`,
		},
		{
			name: "each renders a single row",
			in:   "<tr th:each=\"voc : ${vocList}\" class=\"row\">\n<td>1</td>\n</tr>",
			want: "<tr class=\"row\">\n<td>1</td>\n</tr>",
		},
		{
			name: "if and id",
			in:   "<span\n    th:if=\"${ok}\" th:id=\"${'x-' + id}\">ok</span>",
			want: `<span>ok</span>`,
		},
		{
			name: "other th attributes stay",
			in:   `<a th:href="@{/voc}" th:utext="${x}">v</a>`,
			want: `<a th:href="@{/voc}" th:utext="${x}">v</a>`,
		},
		{
			name: "removal that splices a new directive",
			in:   `<p th:th:if="x"text="y">`,
			want: `<p>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripDirectives(tt.in))
		})
	}
}

func TestStripDirectivesIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		`<html xmlns:th="http://www.thymeleaf.org"><body th:if="${a}"><p th:text="${b}">b</p></body></html>`,
		`<p th:th:if="x"text="y">`,
		`<p th:te th:id="1"xt="2" th:attr="a">`,
		`<div th:each="a : ${as}" th:each="b : ${bs}"></div>`,
		`th:text="unterminated`,
	}
	for _, in := range inputs {
		once := StripDirectives(in)
		assert.Equal(t, once, StripDirectives(once), in)
	}
}

func TestStripperCustomAttrs(t *testing.T) {
	s := NewStripper([]string{"th:text"})
	assert.Equal(t, `<p th:if="${a}">x</p>`, s.Strip(`<p th:if="${a}" th:text="${b}">x</p>`))
}
