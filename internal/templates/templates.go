// Package templates renders the files frontpl generates: project baseline
// files, tool configs, package.json and GitHub workflow definitions. Text
// bodies live in the embedded files/ directory; JSON and YAML documents whose
// key order matters are built programmatically.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"text/template"
)

//go:embed files/*.tmpl
var filesFS embed.FS

var (
	parsed     *template.Template
	parseOnce  sync.Once
	parseError error
)

var funcs = template.FuncMap{
	"quote": strconv.Quote,
}

func load() (*template.Template, error) {
	parseOnce.Do(func() {
		parsed, parseError = template.New("files").Funcs(funcs).ParseFS(filesFS, "files/*.tmpl")
		if parseError != nil {
			parseError = fmt.Errorf("parsing templates: %w", parseError)
		}
	})
	return parsed, parseError
}

// Render executes the named template file (without the .tmpl suffix).
func Render(name string, data any) ([]byte, error) {
	t, err := load()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name+".tmpl", data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func mustRender(name string, data any) []byte {
	out, err := Render(name, data)
	if err != nil {
		panic(err)
	}
	return out
}

// Editorconfig returns the .editorconfig body.
func Editorconfig() []byte { return mustRender("editorconfig", nil) }

// Gitignore returns the .gitignore body.
func Gitignore() []byte { return mustRender("gitignore", nil) }

// Gitattributes returns the .gitattributes body.
func Gitattributes() []byte { return mustRender("gitattributes", nil) }

// SrcIndex returns src/index.ts.
func SrcIndex() []byte { return mustRender("index.ts", nil) }

// SrcVitest returns src/index.test.ts.
func SrcVitest() []byte { return mustRender("index.test.ts", nil) }

// Tsconfig returns tsconfig.json.
func Tsconfig() []byte { return mustRender("tsconfig.json", nil) }

// TsdownConfig returns tsdown.config.ts.
func TsdownConfig() []byte { return mustRender("tsdown.config.ts", nil) }

// OxfmtConfig returns the default .oxfmtrc.json.
func OxfmtConfig() []byte { return mustRender("oxfmtrc.json", nil) }

// OxlintOptions parameterizes oxlint.config.ts.
type OxlintOptions struct {
	UseVitest bool
}

// OxlintConfig returns oxlint.config.ts using the @kingsword/lint-config preset.
func OxlintConfig(opts OxlintOptions) []byte { return mustRender("oxlint.config.ts", opts) }

// ReadmeOptions parameterizes README.md.
type ReadmeOptions struct {
	Name    string
	Install string
	Scripts []string
}

// Readme returns README.md for a new project.
func Readme(opts ReadmeOptions) []byte { return mustRender("readme.md", opts) }

// WorkingDirectoryPath maps a workflow working directory to a repository path
// rooted at "/". "." and "" map to "/".
func WorkingDirectoryPath(dir string) string {
	dir = strings.Trim(strings.ReplaceAll(dir, "\\", "/"), "/")
	if dir == "" || dir == "." {
		return "/"
	}
	return "/" + strings.TrimPrefix(dir, "./")
}
