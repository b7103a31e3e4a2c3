package lexer

type Kind int

const (
	EOF Kind = iota
	ID
	NUM
	STRING

	GIVE
	FIND
	INPUT
	IF
	ELSE
	WHILE
	FOR
	TO
	BREAK
	CONTINUE
	FUNC
	RETURN
	CALL
	END
	ARRAY
	PUSH
	POP
	LEN
	AND
	OR
	NOT
	MATHFN
	PRINT
	PRINTLN
	PREC

	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	POWER
	ASSIGN
	PLUSEQ
	MINUSEQ
	STAREQ
	SLASHEQ
	LT
	GT
	LTE
	GTE
	EQ
	NEQ

	LPAREN
	RPAREN
	LBRACKET
	RBRACKET
	COMMA
)

var kindNames = map[Kind]string{
	EOF:      "EOF",
	ID:       "ID",
	NUM:      "NUM",
	STRING:   "STRING",
	GIVE:     "GIVE",
	FIND:     "FIND",
	INPUT:    "INPUT",
	IF:       "IF",
	ELSE:     "ELSE",
	WHILE:    "WHILE",
	FOR:      "FOR",
	TO:       "TO",
	BREAK:    "BREAK",
	CONTINUE: "CONTINUE",
	FUNC:     "FUNC",
	RETURN:   "RETURN",
	CALL:     "CALL",
	END:      "END",
	ARRAY:    "ARRAY",
	PUSH:     "PUSH",
	POP:      "POP",
	LEN:      "LEN",
	AND:      "AND",
	OR:       "OR",
	NOT:      "NOT",
	MATHFN:   "MATHFN",
	PRINT:    "PRINT",
	PRINTLN:  "PRINTLN",
	PREC:     "PREC",
	PLUS:     "+",
	MINUS:    "-",
	STAR:     "*",
	SLASH:    "/",
	PERCENT:  "%",
	POWER:    "**",
	ASSIGN:   "=",
	PLUSEQ:   "+=",
	MINUSEQ:  "-=",
	STAREQ:   "*=",
	SLASHEQ:  "/=",
	LT:       "<",
	GT:       ">",
	LTE:      "<=",
	GTE:      ">=",
	EQ:       "==",
	NEQ:      "!=",
	LPAREN:   "(",
	RPAREN:   ")",
	LBRACKET: "[",
	RBRACKET: "]",
	COMMA:    ",",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// Token is a single lexeme of one source line. Text holds the literal
// spelling; for STRING it is the unquoted content and for MATHFN the
// canonical function name.
type Token struct {
	Kind Kind
	Text string
}

// IsBlockOpener reports whether a line starting with k owns a body closed
// by END.
func (k Kind) IsBlockOpener() bool {
	switch k {
	case IF, WHILE, FOR, FUNC:
		return true
	default:
		return false
	}
}

// IsCompoundAssign reports whether k is one of += -= *= /=.
func (k Kind) IsCompoundAssign() bool {
	switch k {
	case PLUSEQ, MINUSEQ, STAREQ, SLASHEQ:
		return true
	default:
		return false
	}
}

// IsComparison reports whether k is a relational operator.
func (k Kind) IsComparison() bool {
	switch k {
	case LT, GT, LTE, GTE, EQ, NEQ:
		return true
	default:
		return false
	}
}
