package escape

import (
	"strings"
)

// Stages holds the results of the escape room stages a player completed.
type Stages struct {
	FormatFixed string `json:"format_fixed,omitempty"`
	DebugDone   bool   `json:"debug_done,omitempty"`
	Numbers     string `json:"numbers,omitempty"`
	JSON        string `json:"json,omitempty"`
}

// Empty reports whether no stage produced output.
func (s Stages) Empty() bool {
	return s.FormatFixed == "" && !s.DebugDone && s.Numbers == "" && s.JSON == ""
}

// RenderOutput renders one HTML section per completed stage.
func RenderOutput(s Stages) string {
	var parts []string
	if s.FormatFixed != "" {
		parts = append(parts, "<section><h3>FormatFix</h3><pre>"+escapeHTML(s.FormatFixed)+"</pre></section>")
	}
	if s.DebugDone {
		parts = append(parts, "<section><h3>DebugHunt</h3><p>Bug fixed ✓</p></section>")
	}
	if s.Numbers != "" {
		parts = append(parts, "<section><h3>PrintNumbers</h3><pre>"+escapeHTML(s.Numbers)+"</pre></section>")
	}
	if s.JSON != "" {
		parts = append(parts, "<section><h3>CSV→JSON</h3><pre>"+escapeHTML(s.JSON)+"</pre></section>")
	}
	return strings.Join(parts, "\n")
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// escapeHTML escapes only &, < and >; quotes are left alone inside <pre>.
func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
