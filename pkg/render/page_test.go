package render

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vango-dev/uploadkit/pkg/vdom"
)

func TestRenderPage(t *testing.T) {
	doc := vdom.NewDocument()
	vdom.AppendChild(doc.Body(), vdom.Div(vdom.ID("uploader")))
	doc.Body().SetAttr("class", "app")

	var sb strings.Builder
	err := NewRenderer(RendererConfig{}).RenderPage(&sb, PageData{
		Title:  "Upload <files>",
		Body:   doc.Body(),
		Styles: []string{"body{margin:0}"},
		Script: "console.log(1)",
	})
	if err != nil {
		t.Fatalf("RenderPage() error = %v", err)
	}
	got := sb.String()

	for _, want := range []string{
		"<!DOCTYPE html>\n",
		`<html lang="en">`,
		"<title>Upload &lt;files&gt;</title>",
		"<style>body{margin:0}</style>",
		`<body class="app">`,
		`<div id="uploader"></div>`,
		"<script>console.log(1)</script>\n</body>\n</html>\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("page missing %q:\n%s", want, got)
		}
	}
	if strings.Count(got, "<body") != 1 {
		t.Errorf("expected one body element:\n%s", got)
	}
}

func TestRenderPageWrapsNonBody(t *testing.T) {
	var sb strings.Builder
	err := NewRenderer(RendererConfig{}).RenderPage(&sb, PageData{Body: vdom.Div("x"), Lang: "fr"})
	if err != nil {
		t.Fatal(err)
	}
	got := sb.String()
	if !strings.Contains(got, `<html lang="fr">`) || !strings.Contains(got, "<body>\n<div>x</div>") {
		t.Errorf("page = %s", got)
	}
}

func TestStreamingRenderer(t *testing.T) {
	rec := httptest.NewRecorder()
	err := NewStreamingRenderer(rec, RendererConfig{}).RenderPage(PageData{Title: "t", Body: vdom.Div()})
	if err != nil {
		t.Fatal(err)
	}
	if !rec.Flushed {
		t.Error("expected response to be flushed")
	}
	if !strings.HasSuffix(rec.Body.String(), "</html>\n") {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestRenderPageHead(t *testing.T) {
	tests := []struct {
		name   string
		pretty bool
		want   []string
	}{
		{
			name: "compact",
			want: []string{
				`<head><meta charset="utf-8"><meta content="width=device-width, initial-scale=1" name="viewport"><title>Files</title><style>img{margin:4px}</style></head>` + "\n",
				"<script>go()</script>\n</body>",
			},
		},
		{
			name:   "pretty",
			pretty: true,
			want: []string{
				"<head>\n  <meta charset=\"utf-8\">\n",
				"  <title>Files</title>\n  <style>img{margin:4px}</style>\n</head>\n",
				"<script>go()</script>\n</body>",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sb strings.Builder
			err := NewRenderer(RendererConfig{Pretty: tt.pretty}).RenderPage(&sb, PageData{
				Title:  "Files",
				Body:   vdom.Div(),
				Styles: []string{"img{margin:4px}"},
				Script: "go()",
			})
			if err != nil {
				t.Fatalf("RenderPage() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(sb.String(), want) {
					t.Errorf("page missing %q:\n%s", want, sb.String())
				}
			}
		})
	}
}
