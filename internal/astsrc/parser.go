// Package astsrc is errorck's AST source: it parses a C/C++ translation
// unit with tree-sitter and adapts the result into the internal/ast facade
// the classification engine consumes. It is the "out of scope external
// collaborator" the specification describes - thin by design, since all of
// the classification logic lives in internal/classify.
package astsrc

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
)

// Language selects which tree-sitter grammar to parse a file with.
type Language int

const (
	LangC Language = iota
	LangCPP
)

// LanguageForPath guesses a translation unit's language from its file
// extension, matching the project's own convention rather than clang's
// driver-mode detection (we have no compiler driver here).
func LanguageForPath(path string) Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cc", ".cpp", ".cxx", ".c++", ".hpp", ".hxx", ".hh", ".h++":
		return LangCPP
	default:
		return LangC
	}
}

// parserPool hands out a *sitter.Parser per language without a global lock:
// every translation unit that's handed to a worker goroutine gets its own
// parser from the pool and returns it when done, so concurrent Parse calls
// never share a parser instance. Adapted from the teacher's per-language
// sync.Pool of tree-sitter parsers.
type parserPool struct {
	c   sync.Pool
	cpp sync.Pool
}

var pools = &parserPool{
	c: sync.Pool{
		New: func() interface{} {
			p := sitter.NewParser()
			p.SetLanguage(c.GetLanguage())
			return p
		},
	},
	cpp: sync.Pool{
		New: func() interface{} {
			p := sitter.NewParser()
			p.SetLanguage(cpp.GetLanguage())
			return p
		},
	},
}

func getParser(lang Language) *sitter.Parser {
	if lang == LangCPP {
		return pools.cpp.Get().(*sitter.Parser)
	}
	return pools.c.Get().(*sitter.Parser)
}

func putParser(lang Language, p *sitter.Parser) {
	p.Reset()
	if lang == LangCPP {
		pools.cpp.Put(p)
		return
	}
	pools.c.Put(p)
}

// ParseSource parses source as a single translation unit under filename
// (used only for reporting; no file I/O happens here) and language lang,
// with no compilation-database context attached.
func ParseSource(filename string, source []byte, lang Language) (*Tree, error) {
	return ParseSourceWithOptions(filename, source, lang, Options{})
}

// ParseSourceWithOptions is ParseSource plus the include/define flags
// recovered from this translation unit's compile_commands.json entry,
// threaded through for diagnostics per the frontend's build-context
// preservation contract.
func ParseSourceWithOptions(filename string, source []byte, lang Language, opts Options) (*Tree, error) {
	parser := getParser(lang)
	defer putParser(lang, parser)

	sitterTree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	if sitterTree == nil || sitterTree.RootNode() == nil {
		return nil, fmt.Errorf("parse %s: empty syntax tree", filename)
	}

	return newTree(filename, source, lang, sitterTree, opts), nil
}
