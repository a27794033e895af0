package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aiweb/codec"
)

var angleEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

func example(v any) string {
	return angleEscaper.Replace(codec.PrettyJSON(v))
}

// Render produces the HTML documentation snippet for an endpoint: the intro,
// request line, accepted inputs, examples and error codes.
func Render(e Endpoint) string {
	var b strings.Builder
	hasText := slices.Contains(e.Inputs, codec.ModalityText)
	hasFile := slices.Contains(e.Inputs, codec.ModalityFile)

	b.WriteString(e.Intro)

	fmt.Fprintf(&b, "<h4>Request</h4><p><strong>URL:</strong> <code>%s</code><br><strong>Method:</strong> %s", e.Path, e.Method)
	if hasFile {
		b.WriteString("<br><strong>Content-Type:</strong> multipart/form-data")
	} else if e.Request != nil {
		b.WriteString("<br><strong>Content-Type:</strong> application/json")
	}
	b.WriteString("</p>")

	if hasText || hasFile {
		b.WriteString("<h4>Inputs</h4><ul>")
		if hasText {
			b.WriteString("<li><code>text</code>: text</li>")
		}
		if hasFile {
			b.WriteString("<li><code>file(s)</code>: files</li>")
		}
		b.WriteString("</ul>")
	}

	if e.Request != nil {
		fmt.Fprintf(&b, "<h4>Request example</h4><pre><code>%s</code></pre>", example(e.Request))
	}
	for _, r := range e.Responses {
		fmt.Fprintf(&b, "<h4>%s</h4><pre><code>%s</code></pre>", r.Title, example(r.Data))
	}
	if len(e.Errors) > 0 {
		b.WriteString("<h4>Errors</h4><ul>")
		for _, er := range e.Errors {
			fmt.Fprintf(&b, "<li><code>%d</code>: %s</li>", er.Code, er.Msg)
		}
		b.WriteString("</ul>")
	}
	return b.String()
}
