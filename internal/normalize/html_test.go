package normalize

import "testing"

func TestStripHTML(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"<p>A</p><p>B</p>", "A\n\nB"},
		{"a<br>b", "a\nb"},
		{"a<br/>b<BR />c", "a\nb\nc"},
		{"A &amp; B", "A & B"},
		{"&lt;b&gt; &quot;x&quot; &#39;y&#39;", `<b> "x" 'y'`},
		{"a&nbsp;b", "a b"},
		{"&amp;lt;", "&lt;"},
		{"<ul><li>one</li><li>two</li></ul>", "one\ntwo"},
		{"<div>x</div>\n\n\n\n<div>y</div>", "x\n\ny"},
		{"  <span class=\"k\">plain</span>  ", "plain"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := StripHTML(tc.in); got != tc.want {
			t.Fatalf("StripHTML(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
