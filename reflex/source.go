package reflex

import (
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"os"
	"reflect"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// Declaration renders the declaration of the Go function fn from its source
// file, with parameter types, results and body removed:
//
//	func add(a, b int) int { ... }   =>   "func add(a, b)"
//	func(_ string, n int) {...}      =>   "func(_, n)"
//	func (s *S) Put(k string, v any) =>   "func Put(k, v)"
//
// Unnamed parameters render as "_" and a variadic parameter renders by its
// name. The second result is false when the source cannot be located, which
// happens for generated wrappers and for binaries built with
// -trimpath or run away from their sources.
func Declaration(fn any) (string, bool) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return "", false
	}

	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return "", false
	}

	file, line := f.FileLine(f.Entry())

	src, err := loadSource(file)
	if err != nil {
		return "", false
	}

	typ, name, ok := src.find(line, f.Name())
	if !ok {
		return "", false
	}

	return render(name, typ), true
}

// render builds the declaration text for a function type.
func render(name string, typ *ast.FuncType) string {
	var names []string

	if typ.Params != nil {
		for _, field := range typ.Params.List {
			if len(field.Names) == 0 {
				names = append(names, "_")

				continue
			}

			for _, id := range field.Names {
				names = append(names, id.Name)
			}
		}
	}

	var sb strings.Builder

	sb.WriteString("func")

	if name != "" {
		sb.WriteByte(' ')
		sb.WriteString(name)
	}

	sb.WriteByte('(')
	sb.WriteString(strings.Join(names, ", "))
	sb.WriteByte(')')

	return sb.String()
}

// sourceFile indexes the functions of one parsed Go file by the line of
// their func keyword.
type sourceFile struct {
	decls map[int][]*ast.FuncDecl
	lits  map[int][]*ast.FuncLit
}

// find returns the function type starting on line. A declaration whose name
// matches the tail of the runtime symbol is preferred, then the first
// literal, then the first declaration.
func (s *sourceFile) find(line int, symbol string) (*ast.FuncType, string, bool) {
	base := strings.TrimSuffix(symbol[strings.LastIndexByte(symbol, '.')+1:], "-fm")

	for _, d := range s.decls[line] {
		if d.Name.Name == base {
			return d.Type, d.Name.Name, true
		}
	}

	if lits := s.lits[line]; len(lits) > 0 {
		return lits[0].Type, "", true
	}

	if decls := s.decls[line]; len(decls) > 0 {
		return decls[0].Type, decls[0].Name.Name, true
	}

	return nil, "", false
}

// sourceEntry parses one version of a file exactly once.
type sourceEntry struct {
	once sync.Once
	file *sourceFile
	err  error
}

// sourceCache maps a content key (path plus xxh3 of the bytes) to its
// *sourceEntry, so an edited file is parsed again.
var sourceCache sync.Map

func loadSource(path string) (*sourceFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ra := readahead.NewReader(f)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, err
	}

	key := path + "#" + strconv.FormatUint(xxh3.Hash(data), 16)

	value, _ := sourceCache.LoadOrStore(key, new(sourceEntry))
	entry := value.(*sourceEntry)

	entry.once.Do(func() {
		entry.file, entry.err = parseSource(path, data)
	})

	return entry.file, entry.err
}

func parseSource(path string, data []byte) (*sourceFile, error) {
	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, path, data, parser.SkipObjectResolution)
	if file == nil {
		return nil, err
	}

	src := &sourceFile{
		decls: make(map[int][]*ast.FuncDecl),
		lits:  make(map[int][]*ast.FuncLit),
	}

	ast.Inspect(file, func(n ast.Node) bool {
		switch fn := n.(type) {
		case *ast.FuncDecl:
			line := fset.Position(fn.Pos()).Line
			src.decls[line] = append(src.decls[line], fn)

		case *ast.FuncLit:
			line := fset.Position(fn.Pos()).Line
			src.lits[line] = append(src.lits[line], fn)
		}

		return true
	})

	return src, nil
}
