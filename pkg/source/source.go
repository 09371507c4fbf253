// Package source recovers call sites and the source text of call arguments so
// assertion failures can show what the test author wrote.
package source

import (
	"bytes"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
)

// Site is a source position.
type Site struct {
	File string
	Line int
}

// String returns "file:line" using the base name of the file.
func (s Site) String() string {
	if s.File == "" {
		return "???:0"
	}
	return filepath.Base(s.File) + ":" + strconv.Itoa(s.Line)
}

// Locate returns the site of the caller skip frames above the function that
// calls Locate. Locate(0) is the caller itself.
func Locate(skip int) Site {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Site{}
	}
	return Site{File: file, Line: line}
}

type parsed struct {
	fset *token.FileSet
	file *ast.File
}

// Index caches parsed files. The zero value is ready to use.
type Index struct {
	mu    sync.Mutex
	files map[string]*parsed
}

var shared Index

// Args returns the source text of each argument of the call to callee at s,
// using a process-wide cache. ok is false when the file cannot be read or no
// matching call is found.
//
// A Site carries no column, so when callee is called more than once on the
// same line the arguments of the first such call are returned for all of
// them.
func Args(s Site, callee string) ([]string, bool) {
	return shared.Args(s, callee)
}

// Args is the cached lookup behind the package-level Args.
func (ix *Index) Args(s Site, callee string) ([]string, bool) {
	if s.File == "" {
		return nil, false
	}
	p := ix.load(s.File)
	if p == nil {
		return nil, false
	}

	var found *ast.CallExpr
	ast.Inspect(p.file, func(n ast.Node) bool {
		if found != nil {
			return false
		}
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		start := p.fset.Position(call.Pos()).Line
		end := p.fset.Position(call.End()).Line
		if s.Line < start || s.Line > end {
			return true
		}
		if calleeName(call.Fun) == callee {
			found = call
			return false
		}
		return true
	})
	if found == nil {
		return nil, false
	}

	out := make([]string, 0, len(found.Args))
	for _, arg := range found.Args {
		var buf bytes.Buffer
		if err := printer.Fprint(&buf, p.fset, arg); err != nil {
			return nil, false
		}
		out = append(out, buf.String())
	}
	return out, true
}

func (ix *Index) load(path string) *parsed {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.files == nil {
		ix.files = make(map[string]*parsed)
	}
	if p, ok := ix.files[path]; ok {
		return p
	}
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, path, nil, parser.SkipObjectResolution)
	if err != nil {
		// Remember the miss so a failing file is not re-read for every assertion.
		ix.files[path] = nil
		return nil
	}
	p := &parsed{fset: fset, file: f}
	ix.files[path] = p
	return p
}

// calleeName returns the final identifier of a call target, looking through
// selectors and generic instantiations.
func calleeName(fun ast.Expr) string {
	switch f := fun.(type) {
	case *ast.Ident:
		return f.Name
	case *ast.SelectorExpr:
		return f.Sel.Name
	case *ast.IndexExpr:
		return calleeName(f.X)
	case *ast.IndexListExpr:
		return calleeName(f.X)
	default:
		return ""
	}
}
