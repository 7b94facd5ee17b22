package server

import (
	"bytes"
	_ "embed"
	"html/template"
	"sync"

	"github.com/shouni/gemini-image-studio/pkg/domain"
	"github.com/shouni/gemini-image-studio/pkg/session"
)

//go:embed assets/index.html
var indexTmpl string

type pageParams struct {
	State       session.State
	Ratios      []domain.AspectRatioOption
	Prompt      string
	AspectRatio domain.AspectRatio
}

// templator は index.html を一度だけパースして描画します。
type templator struct {
	tmpl *template.Template
	once sync.Once
}

func (t *templator) render(params pageParams) ([]byte, error) {
	t.once.Do(func() {
		t.tmpl = template.Must(template.New("index").Funcs(template.FuncMap{
			// data URL は生成結果から組み立てたものだけを渡す
			"safeURL": func(s string) template.URL { return template.URL(s) },
		}).Parse(indexTmpl))
	})

	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, params); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
