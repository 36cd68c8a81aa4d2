// Package shader compiles and links GLSL programs.
//
// Each stage is read from its file when the file exists, otherwise the
// compiled-in source is used, so shaders can be edited on disk without a
// rebuild. Failures are typed so the binary can exit with a status code
// per failure class.
package shader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/sciviz/internal/engine/shader/shaders"
	"github.com/Faultbox/sciviz/internal/logger"
)

// Stage types.
const (
	Vertex   uint32 = gl.VERTEX_SHADER
	Fragment uint32 = gl.FRAGMENT_SHADER
)

// compiledIn is reported as the origin of embedded sources.
const compiledIn = "compiled-in"

// Stage is one shader stage of a program.
type Stage struct {
	Type     uint32
	Filename string
	Embedded string
}

// Resolve returns the stage source and where it came from: the file when
// it exists, the embedded source otherwise.
func (s Stage) Resolve() (src, origin string, err error) {
	if s.Filename != "" {
		data, err := os.ReadFile(s.Filename)
		switch {
		case err == nil:
			return string(data), s.Filename, nil
		case !errors.Is(err, os.ErrNotExist):
			return "", s.Filename, fmt.Errorf("%w: %s: %w", ErrRead, s.Filename, err)
		}
	}
	if s.Embedded == "" {
		return "", "", fmt.Errorf("%w: %s shader %q", ErrNoSource, typeName(s.Type), s.Filename)
	}
	return s.Embedded, compiledIn, nil
}

func typeName(t uint32) string {
	switch t {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// ModelStages returns the visual model program, looking for overrides in dir.
func ModelStages(dir string) []Stage {
	return []Stage{
		{Type: Vertex, Filename: inDir(dir, shaders.ModelVertexFile), Embedded: shaders.ModelVertexShader},
		{Type: Fragment, Filename: inDir(dir, shaders.ModelFragmentFile), Embedded: shaders.ModelFragmentShader},
	}
}

// TextStages returns the label program, looking for overrides in dir.
func TextStages(dir string) []Stage {
	return []Stage{
		{Type: Vertex, Filename: inDir(dir, shaders.TextVertexFile), Embedded: shaders.TextVertexShader},
		{Type: Fragment, Filename: inDir(dir, shaders.TextFragmentFile), Embedded: shaders.TextFragmentShader},
	}
}

func inDir(dir, name string) string {
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, name)
}

// Load compiles every stage and links them into a program. A context must
// be current.
func Load(stages []Stage) (uint32, error) {
	if len(stages) == 0 {
		return 0, ErrNoStages
	}
	log := logger.Named("shader")

	program := gl.CreateProgram()
	for _, st := range stages {
		src, origin, err := st.Resolve()
		if err != nil {
			gl.DeleteProgram(program)
			return 0, err
		}
		log.Debug("compiling shader", zap.String("type", typeName(st.Type)), zap.String("source", origin))

		sh, err := compileShader(src, st.Type, typeName(st.Type))
		if err != nil {
			gl.DeleteProgram(program)
			return 0, err
		}
		gl.AttachShader(program, sh)
		// flagged for deletion; freed with the program
		gl.DeleteShader(sh)
	}

	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		info := infoLog(logLen, func(buf *uint8) { gl.GetProgramInfoLog(program, logLen, nil, buf) })
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("%w: %s", ErrLink, info)
	}

	log.Debug("program linked", zap.Uint32("program", program), zap.Int("stages", len(stages)))
	return program, nil
}

// CompileProgram compiles a vertex and a fragment source into a program.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	return Load([]Stage{
		{Type: Vertex, Embedded: vertexSrc},
		{Type: Fragment, Embedded: fragmentSrc},
	})
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		info := infoLog(logLen, func(buf *uint8) { gl.GetShaderInfoLog(shader, logLen, nil, buf) })
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%w: %s shader: %s", ErrCompile, name, info)
	}

	switch gl.GetError() {
	case gl.INVALID_VALUE:
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%w: %s shader", ErrInvalidValue, name)
	case gl.INVALID_OPERATION:
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%w: %s shader", ErrInvalidOperation, name)
	}

	return shader, nil
}

func infoLog(n int32, read func(*uint8)) string {
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n)
	read(&buf[0])
	return strings.TrimRight(string(buf), "\x00\n")
}

// GetUniform returns the uniform location for the given name.
// Returns -1 if the uniform is not found or inactive.
func GetUniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// MustGetUniform returns the uniform location for the given name.
// Panics if the uniform is not found (useful for required uniforms).
func MustGetUniform(program uint32, name string) int32 {
	loc := GetUniform(program, name)
	if loc < 0 {
		panic(fmt.Sprintf("uniform %q not found in program %d", name, program))
	}
	return loc
}

// Delete releases a program returned by Load.
func Delete(program uint32) {
	if program != 0 {
		gl.DeleteProgram(program)
	}
}
