package shader

import "errors"

var (
	ErrNoStages         = errors.New("shader: no stages")
	ErrNoSource         = errors.New("shader: no file and no compiled-in source")
	ErrRead             = errors.New("shader: read failed")
	ErrCompile          = errors.New("shader: compilation failed")
	ErrInvalidValue     = errors.New("shader: compilation resulted in GL_INVALID_VALUE")
	ErrInvalidOperation = errors.New("shader: compilation resulted in GL_INVALID_OPERATION")
	ErrLink             = errors.New("shader: linking failed")
)

// ExitCode maps a Load error to the process exit status for its failure
// class. Errors from other sources map to 1.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrCompile):
		return 2
	case errors.Is(err, ErrInvalidValue):
		return 3
	case errors.Is(err, ErrInvalidOperation):
		return 4
	case errors.Is(err, ErrLink):
		return 5
	default:
		return 1
	}
}
