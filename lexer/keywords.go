package lexer

import (
	"strings"
	"unicode/utf8"
)

// rule is one entry of the keyword table. Thai spellings match as plain
// prefixes because Thai script is written without spaces between words;
// ASCII spellings must be followed by a non-identifier rune.
type rule struct {
	spelling  string
	kind      Kind
	canonical string
	ascii     bool
}

// rules is checked top to bottom. A spelling that is a prefix of another
// spelling must come after it.
var rules = []rule{
	{spelling: "จบฟังก์ชัน", kind: END},
	{spelling: "จบ", kind: END},
	{spelling: "ฟังก์ชัน", kind: FUNC},
	{spelling: "ถ้าไม่", kind: ELSE},
	{spelling: "ถ้า", kind: IF},
	{spelling: "ให้", kind: GIVE},
	{spelling: "หา", kind: FIND},
	{spelling: "รับค่า", kind: INPUT},
	{spelling: "ขณะที่", kind: WHILE},
	{spelling: "สำหรับ", kind: FOR},
	{spelling: "ถึง", kind: TO},
	{spelling: "หยุด", kind: BREAK},
	{spelling: "ข้าม", kind: CONTINUE},
	{spelling: "คืนค่า", kind: RETURN},
	{spelling: "เรียก", kind: CALL},
	{spelling: "อาเรย์", kind: ARRAY},
	{spelling: "เพิ่ม", kind: PUSH},
	{spelling: "ดึง", kind: POP},
	{spelling: "ความยาว", kind: LEN},
	{spelling: "และ", kind: AND},
	{spelling: "หรือ", kind: OR},
	{spelling: "ไม่", kind: NOT},
	{spelling: "พิมพ์บรรทัด", kind: PRINTLN},
	{spelling: "พิมพ์", kind: PRINT},
	{spelling: "ทศนิยม", kind: PREC},

	{spelling: "give", kind: GIVE, ascii: true},
	{spelling: "find", kind: FIND, ascii: true},
	{spelling: "input", kind: INPUT, ascii: true},
	{spelling: "if", kind: IF, ascii: true},
	{spelling: "else", kind: ELSE, ascii: true},
	{spelling: "while", kind: WHILE, ascii: true},
	{spelling: "for", kind: FOR, ascii: true},
	{spelling: "to", kind: TO, ascii: true},
	{spelling: "break", kind: BREAK, ascii: true},
	{spelling: "continue", kind: CONTINUE, ascii: true},
	{spelling: "func", kind: FUNC, ascii: true},
	{spelling: "return", kind: RETURN, ascii: true},
	{spelling: "call", kind: CALL, ascii: true},
	{spelling: "end", kind: END, ascii: true},
	{spelling: "array", kind: ARRAY, ascii: true},
	{spelling: "push", kind: PUSH, ascii: true},
	{spelling: "pop", kind: POP, ascii: true},
	{spelling: "len", kind: LEN, ascii: true},
	{spelling: "and", kind: AND, ascii: true},
	{spelling: "or", kind: OR, ascii: true},
	{spelling: "not", kind: NOT, ascii: true},
	{spelling: "println", kind: PRINTLN, ascii: true},
	{spelling: "print", kind: PRINT, ascii: true},
	{spelling: "precision", kind: PREC, ascii: true},

	{spelling: "sqrt", kind: MATHFN, canonical: "sqrt", ascii: true},
	{spelling: "abs", kind: MATHFN, canonical: "abs", ascii: true},
	{spelling: "sin", kind: MATHFN, canonical: "sin", ascii: true},
	{spelling: "cos", kind: MATHFN, canonical: "cos", ascii: true},
	{spelling: "tan", kind: MATHFN, canonical: "tan", ascii: true},
	{spelling: "log", kind: MATHFN, canonical: "log", ascii: true},
	{spelling: "exp", kind: MATHFN, canonical: "exp", ascii: true},
	{spelling: "floor", kind: MATHFN, canonical: "floor", ascii: true},
	{spelling: "ceil", kind: MATHFN, canonical: "ceil", ascii: true},
	{spelling: "round", kind: MATHFN, canonical: "round", ascii: true},
}

// matchKeyword returns the first rule matching at the start of s and the
// number of bytes it consumes. ASCII spellings match case-sensitively and
// only up to an identifier boundary.
func matchKeyword(s string) (rule, int, bool) {
	for _, r := range rules {
		if r.ascii {
			if !strings.HasPrefix(s, r.spelling) {
				continue
			}
			next, _ := utf8.DecodeRuneInString(s[len(r.spelling):])
			if len(s) > len(r.spelling) && isIdentRune(next) {
				continue
			}
			return r, len(r.spelling), true
		}
		if strings.HasPrefix(s, r.spelling) {
			return r, len(r.spelling), true
		}
	}
	return rule{}, 0, false
}

// Spellings lists every keyword spelling that lexes to k, in table order.
func Spellings(k Kind) []string {
	out := []string{}
	for _, r := range rules {
		if r.kind == k {
			out = append(out, r.spelling)
		}
	}
	return out
}
