package parser

import "github.com/gosuda/aeroki/lexer"

// Block is the line extent of one control construct inside a line list.
// Body is lines[BodyStart:BodyEnd]; when HasElse is set the else branch is
// lines[ElseStart:ElseEnd]. Next is the index of the first line after the
// closing END.
type Block struct {
	Opener    lexer.Kind
	BodyStart int
	BodyEnd   int
	HasElse   bool
	ElseStart int
	ElseEnd   int
	Next      int
	Closed    bool
}

// Structure finds the body of the construct opened at lines[from] without
// executing or fully lexing it: only the leading token of each line is
// read. Nested openers raise the depth, END lowers it, and for IF an ELSE
// seen at depth 1 splits the two branches. An opener with no matching END
// extends to the end of lines.
func Structure(lines []Line, from int) Block {
	opener := lexer.First(lines[from].Content).Kind
	b := Block{
		Opener:    opener,
		BodyStart: from + 1,
		BodyEnd:   len(lines),
		ElseStart: len(lines),
		ElseEnd:   len(lines),
		Next:      len(lines),
	}
	depth := 1
	for i := from + 1; i < len(lines); i++ {
		k := lexer.First(lines[i].Content).Kind
		switch {
		case k == lexer.ELSE && opener == lexer.IF && depth == 1 && !b.HasElse:
			b.HasElse = true
			b.BodyEnd = i
			b.ElseStart = i + 1
		case k.IsBlockOpener():
			depth++
		case k == lexer.END:
			depth--
		}
		if depth == 0 {
			if b.HasElse {
				b.ElseEnd = i
			} else {
				b.BodyEnd = i
			}
			b.Next = i + 1
			b.Closed = true
			return b
		}
	}
	return b
}

// Body returns the primary body lines of b.
func (b Block) Body(lines []Line) []Line {
	return lines[b.BodyStart:b.BodyEnd]
}

// Else returns the else-branch lines of b, or nil.
func (b Block) Else(lines []Line) []Line {
	if !b.HasElse {
		return nil
	}
	return lines[b.ElseStart:b.ElseEnd]
}

// OpenDepth reports how many block openers in lines are still waiting for
// their END. Interactive front ends buffer input until it drops to zero.
func OpenDepth(lines []Line) int {
	depth := 0
	for _, l := range lines {
		k := lexer.First(l.Content).Kind
		switch {
		case k.IsBlockOpener():
			depth++
		case k == lexer.END && depth > 0:
			depth--
		}
	}
	return depth
}
