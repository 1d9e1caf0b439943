// Package translator rewrites WebGL2 style fragment sources into the GLSL
// dialect of the running driver.
package translator

import (
	"context"
	"fmt"

	"github.com/richinsley/goshaderview/program"
	gst "github.com/richinsley/goshadertranslator"
)

// Translator wraps a goshadertranslator instance. It is not safe for
// concurrent use.
type Translator struct {
	st     *gst.ShaderTranslator
	isGLES bool
}

var _ program.Translator = (*Translator)(nil)

// New starts the translator runtime. isGLES selects ESSL output instead of
// desktop GLSL 4.10.
func New(ctx context.Context, isGLES bool) (*Translator, error) {
	st, err := gst.NewShaderTranslator(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start shader translator: %w", err)
	}
	return &Translator{st: st, isGLES: isGLES}, nil
}

// Translate validates source as a WebGL2 fragment shader and returns the
// translated code together with the renamed uniform identifiers.
func (t *Translator) Translate(source string) (*program.Translation, error) {
	outputFormat := gst.OutputFormatGLSL410
	if t.isGLES {
		outputFormat = gst.OutputFormatESSL
	}
	fsShader, err := t.st.TranslateShader(source, "fragment", gst.ShaderSpecWebGL2, outputFormat)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(fsShader.Variables))
	for name, v := range fsShader.Variables {
		names[name] = v.MappedName
	}
	return &program.Translation{Code: fsShader.Code, Names: names}, nil
}
