// Package web holds the page template and static assets served to browsers.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"slices"

	"golang.org/x/net/html"

	"weather-predictor/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// HiddenClass marks a display region that is not shown
const HiddenClass = "hidden"

// RequiredIDs are the element IDs the display binds to
var RequiredIDs = []string{
	"predictionForm",
	"cityInput",
	"predictBtn",
	"btnText",
	"loader",
	"resultsSection",
	"errorSection",
	"errorMessage",
	"predictedTemp",
	"cityName",
	"mseValue",
	"maeValue",
	"r2Value",
	"trainingSamples",
	"weatherChart",
}

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Page is the data the index template is executed with
type Page struct {
	Display view.Display
	City    string
}

// RenderPage writes the full HTML page for p
func RenderPage(w io.Writer, p Page) error {
	if err := pageTemplate.ExecuteTemplate(w, "index.html", p); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}

// IdleMarkup renders the page as it looks before any submission
func IdleMarkup() ([]byte, error) {
	var buf bytes.Buffer
	if err := RenderPage(&buf, Page{Display: view.Render(view.Idle())}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Static returns the embedded assets rooted at the static directory
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// CheckMarkup returns the RequiredIDs that markup does not contain, in
// RequiredIDs order. Unparseable markup is missing everything.
func CheckMarkup(markup []byte) []string {
	doc, err := html.Parse(bytes.NewReader(markup))
	if err != nil {
		return slices.Clone(RequiredIDs)
	}

	found := make(map[string]bool)
	collectIDs(doc, found)

	var missing []string
	for _, id := range RequiredIDs {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	return missing
}

func collectIDs(n *html.Node, found map[string]bool) {
	if n.Type == html.ElementNode {
		for _, attr := range n.Attr {
			if attr.Key == "id" {
				found[attr.Val] = true
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectIDs(c, found)
	}
}
