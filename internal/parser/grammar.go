package parser

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// annotationLexer tokenizes the expression subset used in annotations.
// Keyword must precede Ident so that "bound=int" lexes as a single keyword token.
var annotationLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "whitespace", Pattern: `\s+`, Action: nil},
		{Name: "Ellipsis", Pattern: `\.\.\.`, Action: nil},
		{Name: "String", Pattern: `"(?:\\.|[^"\\])*"|'(?:\\.|[^'\\])*'`, Action: nil},
		{Name: "Int", Pattern: `\d+`, Action: nil},
		{Name: "Keyword", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*\s*=`, Action: nil},
		{Name: "Ident", Pattern: `[a-zA-Z_$][a-zA-Z0-9_$]*`, Action: nil},
		{Name: "Punct", Pattern: `[-.,:()\[\]{}]`, Action: nil},
	},
})

type expressionNode struct {
	Pos      lexer.Position
	Atom     *atomNode      `parser:"@@"`
	Trailers []*trailerNode `parser:"@@*"`
}

type atomNode struct {
	Pos        lexer.Position
	Ellipsis   bool            `parser:"  @Ellipsis"`
	String     *string         `parser:"| @String"`
	Negative   *int64          `parser:"| '-' @Int"`
	Integer    *int64          `parser:"| @Int"`
	Name       *string         `parser:"| @Ident"`
	List       *listNode       `parser:"| @@"`
	Tuple      *tupleNode      `parser:"| @@"`
	Dictionary *dictionaryNode `parser:"| @@"`
}

type trailerNode struct {
	Pos       lexer.Position
	Attribute *string        `parser:"  '.' @Ident"`
	Subscript *listNode      `parser:"| @@"`
	Call      *argumentsNode `parser:"| @@"`
}

// The opening bracket is captured so that empty displays still match.
type listNode struct {
	Pos   lexer.Position
	Open  string      `parser:"@'['"`
	Items []*itemNode `parser:"@@* ']'"`
}

type tupleNode struct {
	Pos   lexer.Position
	Open  string      `parser:"@'('"`
	Items []*itemNode `parser:"@@* ')'"`
}

type itemNode struct {
	Pos   lexer.Position
	Value *expressionNode `parser:"@@"`
	Comma bool            `parser:"@','?"`
}

type argumentsNode struct {
	Pos   lexer.Position
	Open  string          `parser:"@'('"`
	Items []*argumentNode `parser:"@@* ')'"`
}

type argumentNode struct {
	Pos        lexer.Position
	Named      *namedArgumentNode `parser:"(  @@"`
	Positional *expressionNode    `parser:" | @@ )"`
	Comma      bool               `parser:"@','?"`
}

type namedArgumentNode struct {
	Keyword string          `parser:"@Keyword"`
	Value   *expressionNode `parser:"@@"`
}

type dictionaryNode struct {
	Pos     lexer.Position
	Open    string       `parser:"@'{'"`
	Entries []*entryNode `parser:"@@* '}'"`
}

type entryNode struct {
	Pos   lexer.Position
	Key   *expressionNode `parser:"@@"`
	Value *expressionNode `parser:"':' @@"`
	Comma bool            `parser:"@','?"`
}

var annotationParser = participle.MustBuild[expressionNode](
	participle.Lexer(annotationLexer),
	participle.Elide("whitespace"),
)
