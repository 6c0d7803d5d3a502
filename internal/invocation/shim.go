// SPDX-License-Identifier: MPL-2.0

package invocation

import (
	"bytes"
	"cmp"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"text/template"
	"unicode"

	"github.com/jython/jbang-catalog/internal/resolve"
)

// ShimExtension is the file extension of generated shims.
const ShimExtension = ".java"

var (
	// ErrInvalidScriptName is returned when no class name can be derived from the script path.
	ErrInvalidScriptName = errors.New("cannot derive a class name from the script name")

	// ErrShimWrite is the sentinel error wrapped by ShimWriteError.
	ErrShimWrite = errors.New("cannot write shim")

	//go:embed shim.java.tmpl
	shimSource   string
	shimTemplate = template.Must(template.New("shim").Parse(shimSource))
)

type (
	// Shim is a generated Java source file that runs the Jython main class.
	Shim struct {
		ClassName string
		FileName  string
		Text      string
	}

	// ShimFile is a shim written to disk. Remove it when the launch is over.
	ShimFile struct {
		Path string

		once sync.Once
		err  error
	}

	// ShimWriteError is returned when the shim cannot be written.
	ShimWriteError struct {
		Path string
		Err  error
	}

	shimData struct {
		ClassName      string
		Dependencies   []string
		JavaVersion    string
		RuntimeOptions string
		MainClass      string
		MainSimpleName string
	}
)

// Error implements the error interface.
func (e *ShimWriteError) Error() string {
	return fmt.Sprintf("cannot write shim %s: %v", e.Path, e.Err)
}

// Unwrap returns ErrShimWrite and the underlying cause.
func (e *ShimWriteError) Unwrap() []error { return []error{ErrShimWrite, e.Err} }

// NewShim renders the shim for the script at scriptPath. The class name is
// the script's base name with every non-identifier character, including the
// extension dot, replaced by an underscore.
func NewShim(cfg resolve.EffectiveConfig, scriptPath string, opts Options) (Shim, error) {
	className, err := ClassName(scriptPath)
	if err != nil {
		return Shim{}, err
	}

	mainClass := cmp.Or(opts.MainClass, DefaultMainClass)
	data := shimData{
		ClassName:      className,
		Dependencies:   dependencies(cfg, opts),
		JavaVersion:    cfg.HostVersion(),
		RuntimeOptions: cfg.HostRuntimeOptions(),
		MainClass:      mainClass,
		MainSimpleName: mainClass[strings.LastIndex(mainClass, ".")+1:],
	}

	var buf bytes.Buffer
	if err := shimTemplate.Execute(&buf, data); err != nil {
		return Shim{}, err
	}
	return Shim{ClassName: className, FileName: className + ShimExtension, Text: buf.String()}, nil
}

// ClassName derives a Java class name from a script path: "hello.py"
// becomes "hello_py".
func ClassName(scriptPath string) (string, error) {
	base := filepath.Base(scriptPath)
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidScriptName, scriptPath)
	}

	var sb strings.Builder
	for i, r := range base {
		switch {
		case r == '_' || unicode.IsLetter(r):
			sb.WriteRune(r)
		case unicode.IsDigit(r):
			if i == 0 {
				sb.WriteRune('_')
			}
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String(), nil
}

// WriteShim creates the shim in dir. An existing file is never overwritten.
func WriteShim(dir string, shim Shim) (*ShimFile, error) {
	path := filepath.Join(dir, shim.FileName)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, &ShimWriteError{Path: path, Err: err}
	}

	_, err = f.WriteString(shim.Text)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, &ShimWriteError{Path: path, Err: err}
	}
	return &ShimFile{Path: path}, nil
}

// Remove deletes the shim. It is safe to call more than once and on a nil
// receiver; a file that is already gone is not an error.
func (f *ShimFile) Remove() error {
	if f == nil {
		return nil
	}
	f.once.Do(func() {
		if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			f.err = err
		}
	})
	return f.err
}
