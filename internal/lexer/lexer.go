// Package lexer implements the streaming ECMAScript tokenizer. It exposes a
// one-token lookahead stream over a padded source buffer and never fails: on
// malformed input it reports a diagnostic and produces a best-effort token so
// the parser can keep going.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kasumi-lint/kasumi/internal/diag"
	"github.com/kasumi-lint/kasumi/internal/source"
)

// Lexer scans tokens on demand. The current token is always fully scanned;
// Peek returns it by reference and Skip advances to the next one.
//
// Tokens are produced purely from the buffer position, except for template
// literals: after the '}' that closes a substitution, the parser must call
// SkipInTemplate instead of Skip so scanning resumes in template mode.
type Lexer struct {
	src      *source.PaddedString
	input    []byte // includes the trailing NUL sentinel
	reporter diag.Reporter

	pos     int // offset of the first unscanned byte
	lastEnd int // end offset of the token before the current one
	tok     Token
}

// New creates a lexer over src and scans the first token.
func New(src *source.PaddedString, reporter diag.Reporter) *Lexer {
	l := &Lexer{
		src:      src,
		input:    src.WithSentinel(),
		reporter: reporter,
	}
	l.parseToken()
	return l
}

// Peek returns the current token. The pointer is invalidated by Skip.
func (l *Lexer) Peek() *Token {
	return &l.tok
}

// Skip advances to the next token.
func (l *Lexer) Skip() {
	l.lastEnd = l.tok.End
	l.parseToken()
}

// EndOfPreviousToken returns the end offset of the token before the current
// one. Used for zero-width insertion-point diagnostics.
func (l *Lexer) EndOfPreviousToken() int {
	return l.lastEnd
}

// Snapshot captures the lexer state for bounded backtracking.
type Snapshot struct {
	pos     int
	lastEnd int
	tok     Token
}

// Snapshot returns a state that RollBack can later restore. Tokens scanned
// past the snapshot are discarded by the roll back.
func (l *Lexer) Snapshot() Snapshot {
	return Snapshot{pos: l.pos, lastEnd: l.lastEnd, tok: l.tok}
}

// RollBack restores a previously captured state.
func (l *Lexer) RollBack(s Snapshot) {
	l.pos = s.pos
	l.lastEnd = s.lastEnd
	l.tok = s.tok
}

// ReparseAsRegExp re-interprets the current '/' or '/=' token as a regular
// expression literal. The lexer scans '/' as division by default; the parser
// calls this when grammatical context requires a regexp.
func (l *Lexer) ReparseAsRegExp() {
	begin := l.tok.Begin
	newline := l.tok.NewlineBefore
	l.tok = Token{Begin: begin}
	l.scanRegexp(begin)
	l.tok.NewlineBefore = newline
}

// SkipInTemplate advances past the current '}' token, resuming the scan in
// template-middle/tail mode. The parser calls this after the expression
// inside a `${...}` substitution.
func (l *Lexer) SkipInTemplate() {
	begin := l.tok.Begin
	l.lastEnd = l.tok.End
	l.tok = Token{Begin: begin}
	l.pos = begin + 1 // past '}'
	l.scanTemplateBody(begin, false)
}

// SkipInJSXText advances past the current token and scans raw JSX child
// text, ending before the next '<', '{', '}' or end-of-input. If a
// delimiter follows immediately, it is lexed as a normal token instead, so
// the parser always sees either a non-empty JSXText token or a delimiter.
// The parser calls this between JSX children, where normal lexing rules do
// not apply.
func (l *Lexer) SkipInJSXText() {
	l.lastEnd = l.tok.End
	l.pos = l.tok.End
	begin := l.pos
	if c := l.input[l.pos]; c == '<' || c == '{' || c == '}' || c == 0 && l.atEOF() {
		l.parseToken()
		return
	}
	for {
		c := l.input[l.pos]
		if c == '<' || c == '{' || c == '}' || c == 0 && l.atEOF() {
			break
		}
		if c >= 0x80 {
			_, size := utf8.DecodeRune(l.input[l.pos:])
			l.pos += size
		} else {
			l.pos++
		}
	}
	l.tok = Token{Begin: begin}
	l.tok.Literal = string(l.input[begin:l.pos])
	l.finish(TokenJSXText)
}

// parseToken scans the next token into l.tok.
func (l *Lexer) parseToken() {
	newlineBefore := l.skipWhitespaceAndComments()
	begin := l.pos
	l.tok = Token{Begin: begin, NewlineBefore: newlineBefore}

	c := l.input[l.pos]
	switch {
	case c == 0:
		if l.pos >= l.src.Len() {
			l.tok.Type = TokenEOF
			l.tok.End = l.pos
			return
		}
		// Embedded NUL byte inside the content.
		l.report(diag.UnexpectedCharacter{Character: source.NewSpan(l.pos, l.pos+1)})
		l.pos++
		l.parseToken()
		l.tok.NewlineBefore = l.tok.NewlineBefore || newlineBefore
		return

	case isASCIIIdentifierStart(c) || c == '\\' || c >= 0x80 && l.isIdentifierStartAt(l.pos):
		l.scanIdentifierOrKeyword(begin)
		return

	case isDigit(c):
		l.scanNumber(begin)
		return

	case c == '"' || c == '\'':
		l.scanString(begin, c)
		return

	case c == '`':
		l.pos++
		l.scanTemplateBody(begin, true)
		return
	}

	l.scanPunctuator(begin, c)
}

func (l *Lexer) finish(tt TokenType) {
	l.tok.Type = tt
	l.tok.End = l.pos
}

func (l *Lexer) report(d diag.Diag) {
	if l.reporter != nil {
		l.reporter.Report(d)
	}
}

// skipWhitespaceAndComments advances past insignificant input and reports
// whether a line terminator was crossed.
func (l *Lexer) skipWhitespaceAndComments() bool {
	newline := l.pos == 0 // start-of-input behaves like start-of-line
	if l.pos == 0 && l.src.Len() >= 2 && l.input[0] == '#' && l.input[1] == '!' {
		// Hashbang line.
		for !l.atLineTerminator() && !l.atEOF() {
			l.pos++
		}
	}
	for {
		switch c := l.input[l.pos]; c {
		case ' ', '\t', '\v', '\f':
			l.pos++
		case '\r', '\n':
			newline = true
			l.pos++
		case '/':
			switch l.input[l.pos+1] {
			case '/':
				l.pos += 2
				for !l.atLineTerminator() && !l.atEOF() {
					l.pos++
				}
			case '*':
				if l.skipBlockComment() {
					newline = true
				}
			default:
				return newline
			}
		default:
			if c < 0x80 {
				return newline
			}
			r, size := utf8.DecodeRune(l.input[l.pos:])
			switch r {
			case 0x2028, 0x2029: // LINE SEPARATOR, PARAGRAPH SEPARATOR
				newline = true
				l.pos += size
			case 0x00a0, 0xfeff: // NBSP, BOM
				l.pos += size
			default:
				if unicode.Is(unicode.Zs, r) {
					l.pos += size
				} else {
					return newline
				}
			}
		}
	}
}

func (l *Lexer) skipBlockComment() (sawNewline bool) {
	begin := l.pos
	l.pos += 2 // past '/*'
	for {
		if l.atEOF() {
			l.report(diag.UnclosedBlockComment{Comment: source.NewSpan(begin, begin+2)})
			return sawNewline
		}
		if l.input[l.pos] == '*' && l.input[l.pos+1] == '/' {
			l.pos += 2
			return sawNewline
		}
		if l.atLineTerminator() {
			sawNewline = true
		}
		l.pos++
	}
}

func (l *Lexer) atEOF() bool {
	return l.pos >= l.src.Len()
}

func (l *Lexer) atLineTerminator() bool {
	switch l.input[l.pos] {
	case '\n', '\r':
		return true
	case 0xe2:
		return l.pos+2 < len(l.input) &&
			l.input[l.pos+1] == 0x80 && (l.input[l.pos+2] == 0xa8 || l.input[l.pos+2] == 0xa9)
	}
	return false
}

// ====== Identifiers and keywords ======

func isASCIIIdentifierStart(c byte) bool {
	return c == '$' || c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isASCIIIdentifierContinue(c byte) bool {
	return isASCIIIdentifierStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// isIdentifierStartRune implements ECMAScript ID_Start for non-ASCII runes.
func isIdentifierStartRune(r rune) bool {
	return unicode.In(r, unicode.L, unicode.Nl, unicode.Other_ID_Start)
}

// isIdentifierContinueRune implements ECMAScript ID_Continue for non-ASCII
// runes. ZWNJ and ZWJ are allowed in identifiers.
func isIdentifierContinueRune(r rune) bool {
	if r == 0x200c || r == 0x200d {
		return true
	}
	return unicode.In(r, unicode.L, unicode.Nl, unicode.Other_ID_Start,
		unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc, unicode.Other_ID_Continue)
}

// scanIdentifierOrKeyword scans an identifier, decoding \u escapes into the
// normalized text. If the text contained an escape and equals a keyword, the
// token stays an identifier and a diagnostic is reported, so parsing can
// continue.
func (l *Lexer) scanIdentifierOrKeyword(begin int) {
	// Fast path: pure ASCII, no escapes.
	i := l.pos
	for isASCIIIdentifierContinue(l.input[i]) {
		i++
	}
	if l.input[i] != '\\' && l.input[i] < 0x80 {
		l.pos = i
		text := string(l.input[begin:i])
		l.tok.Literal = text
		l.finish(lookupIdent(text))
		return
	}

	// Slow path: escapes or non-ASCII code points.
	var normalized strings.Builder
	normalized.Write(l.input[begin:i])
	l.pos = i
	hasEscape := false
	var firstEscape source.Span
	for {
		first := normalized.Len() == 0
		c := l.input[l.pos]
		if isASCIIIdentifierContinue(c) {
			normalized.WriteByte(c)
			l.pos++
			continue
		}
		if c == '\\' {
			escBegin := l.pos
			r, ok := l.scanIdentifierEscape()
			if !ok {
				continue // diagnostic already reported; drop the escape
			}
			escSpan := source.NewSpan(escBegin, l.pos)
			var valid bool
			if r < 0x80 {
				if first {
					valid = isASCIIIdentifierStart(byte(r))
				} else {
					valid = isASCIIIdentifierContinue(byte(r))
				}
			} else if first {
				valid = isIdentifierStartRune(r)
			} else {
				valid = isIdentifierContinueRune(r)
			}
			if !valid {
				l.report(diag.EscapedCharacterDisallowedInIdentifiers{EscapeSequence: escSpan})
			}
			if !hasEscape {
				hasEscape = true
				firstEscape = escSpan
			}
			normalized.WriteRune(r)
			continue
		}
		if c >= 0x80 {
			r, size := utf8.DecodeRune(l.input[l.pos:])
			var valid bool
			if first {
				valid = isIdentifierStartRune(r)
			} else {
				valid = isIdentifierContinueRune(r)
			}
			if !valid {
				break
			}
			normalized.WriteRune(r)
			l.pos += size
			continue
		}
		break
	}

	text := normalized.String()
	l.tok.Literal = text
	l.tok.HasEscape = hasEscape
	if text == "" {
		// Every scanned byte was a malformed escape.
		l.finish(TokenIncomplete)
		return
	}
	if hasEscape {
		if _, isKeyword := keywords[text]; isKeyword {
			l.report(diag.KeywordsCannotContainEscapeSequences{EscapeSequence: firstEscape})
		}
		l.finish(TokenIdentifier)
		return
	}
	l.finish(lookupIdent(text))
}

// scanIdentifierEscape decodes \uXXXX or \u{...} at l.pos (pointing at '\').
func (l *Lexer) scanIdentifierEscape() (rune, bool) {
	begin := l.pos
	l.pos++ // past '\'
	if l.input[l.pos] != 'u' {
		l.report(diag.UnexpectedCharacter{Character: source.NewSpan(begin, l.pos)})
		return 0, false
	}
	l.pos++
	return l.scanUnicodeEscapeTail(begin)
}

// scanUnicodeEscapeTail decodes the part after "\u": either XXXX or {H+}.
func (l *Lexer) scanUnicodeEscapeTail(escBegin int) (rune, bool) {
	if l.input[l.pos] == '{' {
		l.pos++
		value := rune(0)
		digits := 0
		for isHexDigit(l.input[l.pos]) {
			value = value*16 + rune(hexValue(l.input[l.pos]))
			if value > unicode.MaxRune {
				value = unicode.MaxRune
			}
			digits++
			l.pos++
		}
		if l.input[l.pos] == '}' {
			l.pos++
		}
		if digits == 0 {
			l.report(diag.ExpectedHexDigitsInUnicodeEscape{EscapeSequence: source.NewSpan(escBegin, l.pos)})
			return 0, false
		}
		return value, true
	}
	value := rune(0)
	for i := 0; i < 4; i++ {
		if !isHexDigit(l.input[l.pos]) {
			l.report(diag.ExpectedHexDigitsInUnicodeEscape{EscapeSequence: source.NewSpan(escBegin, l.pos)})
			return 0, false
		}
		value = value*16 + rune(hexValue(l.input[l.pos]))
		l.pos++
	}
	return value, true
}

func hexValue(c byte) int {
	switch {
	case isDigit(c):
		return int(c - '0')
	case 'a' <= c && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}

// ====== Numbers ======

// scanNumber scans decimal, hex, octal, binary, legacy octal and BigInt
// literals, with separators. Overflow is not an error; the lexeme is kept.
func (l *Lexer) scanNumber(begin int) {
	if l.input[l.pos] == '0' {
		switch l.input[l.pos+1] {
		case 'x', 'X':
			l.pos += 2
			l.scanDigits(isHexDigit)
		case 'o', 'O':
			l.pos += 2
			l.scanDigits(isOctalDigit)
		case 'b', 'B':
			l.pos += 2
			l.scanDigits(isBinaryDigit)
		default:
			if isDigit(l.input[l.pos+1]) {
				// Legacy octal with a leading zero.
				l.pos++
				l.scanDigits(isDigit)
				l.tok.LegacyOctal = true
			} else {
				l.scanDecimalTail()
			}
		}
	} else {
		l.scanDecimalTail()
	}
	l.scanNumberSuffix(begin)
}

// scanDecimalTail scans digits, an optional fraction and an optional
// exponent, all allowing '_' separators.
func (l *Lexer) scanDecimalTail() {
	l.scanDigits(isDigit)
	if l.input[l.pos] == '.' && isDigit(l.input[l.pos+1]) {
		l.pos++
		l.scanDigits(isDigit)
	}
	l.scanExponent()
}

func (l *Lexer) scanExponent() {
	if c := l.input[l.pos]; c == 'e' || c == 'E' {
		next := l.input[l.pos+1]
		if isDigit(next) {
			l.pos++
			l.scanDigits(isDigit)
		} else if (next == '+' || next == '-') && isDigit(l.input[l.pos+2]) {
			l.pos += 2
			l.scanDigits(isDigit)
		}
	}
}

func (l *Lexer) scanDigits(valid func(byte) bool) {
	for valid(l.input[l.pos]) || l.input[l.pos] == '_' {
		l.pos++
	}
}

func isOctalDigit(c byte) bool  { return '0' <= c && c <= '7' }
func isBinaryDigit(c byte) bool { return c == '0' || c == '1' }

func (l *Lexer) scanNumberSuffix(begin int) {
	kind := TokenNumber
	lexeme := l.input[begin:l.pos]
	if l.input[l.pos] == 'n' {
		l.pos++
		kind = TokenBigInt
		if containsByte(lexeme, '.') {
			l.report(diag.BigIntLiteralContainsDecimalPoint{Where: source.NewSpan(begin, l.pos)})
		} else if containsExponent(lexeme) {
			l.report(diag.BigIntLiteralContainsExponent{Where: source.NewSpan(begin, l.pos)})
		}
	}
	// Garbage glued onto the number, e.g. 123abc.
	if isASCIIIdentifierContinue(l.input[l.pos]) || l.isIdentifierContinueAt(l.pos) {
		garbageBegin := l.pos
		for {
			if isASCIIIdentifierContinue(l.input[l.pos]) {
				l.pos++
				continue
			}
			if l.isIdentifierContinueAt(l.pos) {
				_, size := utf8.DecodeRune(l.input[l.pos:])
				l.pos += size
				continue
			}
			break
		}
		l.report(diag.UnexpectedCharactersInNumber{Characters: source.NewSpan(garbageBegin, l.pos)})
	}
	l.tok.Literal = string(l.input[begin:l.pos])
	l.finish(kind)
}

func (l *Lexer) isIdentifierStartAt(pos int) bool {
	if l.input[pos] < 0x80 {
		return isASCIIIdentifierStart(l.input[pos])
	}
	r, _ := utf8.DecodeRune(l.input[pos:])
	return isIdentifierStartRune(r)
}

func (l *Lexer) isIdentifierContinueAt(pos int) bool {
	if l.input[pos] < 0x80 {
		return false
	}
	r, _ := utf8.DecodeRune(l.input[pos:])
	return isIdentifierContinueRune(r)
}

func containsByte(b []byte, c byte) bool {
	for _, x := range b {
		if x == c {
			return true
		}
	}
	return false
}

func containsExponent(b []byte) bool {
	// 'e' is a digit in 0x... literals, not an exponent.
	if len(b) > 1 && b[0] == '0' && (b[1] == 'x' || b[1] == 'X') {
		return false
	}
	return containsByte(b, 'e') || containsByte(b, 'E')
}

// ====== Strings ======

// scanString scans a single- or double-quoted string literal, decoding
// escapes into the token's Literal. An unterminated string reports a
// diagnostic and synthesizes a token spanning to the end of the line.
func (l *Lexer) scanString(begin int, quote byte) {
	l.pos++ // past opening quote
	var value strings.Builder
	for {
		c := l.input[l.pos]
		switch {
		case c == quote:
			l.pos++
			l.tok.Literal = value.String()
			l.finish(TokenString)
			return
		case c == '\\':
			l.scanStringEscape(&value)
		case l.atLineTerminator() || l.atEOF():
			l.report(diag.UnclosedStringLiteral{StringLiteral: source.NewSpan(begin, l.pos)})
			l.tok.Literal = value.String()
			l.finish(TokenString)
			return
		case c >= 0x80:
			r, size := utf8.DecodeRune(l.input[l.pos:])
			value.WriteRune(r)
			l.pos += size
		default:
			value.WriteByte(c)
			l.pos++
		}
	}
}

// scanStringEscape decodes one escape sequence at l.pos (pointing at '\').
func (l *Lexer) scanStringEscape(value *strings.Builder) {
	escBegin := l.pos
	l.pos++ // past '\'
	c := l.input[l.pos]
	switch c {
	case 'n':
		value.WriteByte('\n')
		l.pos++
	case 't':
		value.WriteByte('\t')
		l.pos++
	case 'r':
		value.WriteByte('\r')
		l.pos++
	case 'b':
		value.WriteByte('\b')
		l.pos++
	case 'f':
		value.WriteByte('\f')
		l.pos++
	case 'v':
		value.WriteByte('\v')
		l.pos++
	case '0':
		value.WriteByte(0)
		l.pos++
	case 'x':
		l.pos++
		if isHexDigit(l.input[l.pos]) && isHexDigit(l.input[l.pos+1]) {
			value.WriteRune(rune(hexValue(l.input[l.pos])*16 + hexValue(l.input[l.pos+1])))
			l.pos += 2
		} else {
			l.report(diag.ExpectedHexDigitsInUnicodeEscape{EscapeSequence: source.NewSpan(escBegin, l.pos)})
		}
	case 'u':
		l.pos++
		if r, ok := l.scanUnicodeEscapeTail(escBegin); ok {
			value.WriteRune(r)
		}
	case '\r', '\n':
		// Line continuation.
		if c == '\r' && l.input[l.pos+1] == '\n' {
			l.pos++
		}
		l.pos++
	default:
		switch {
		case c >= 0x80:
			r, size := utf8.DecodeRune(l.input[l.pos:])
			value.WriteRune(r)
			l.pos += size
		case c == 0 && l.atEOF():
			// Leave the sentinel for the caller to report unclosed string.
		default:
			value.WriteByte(c)
			l.pos++
		}
	}
}

// ====== Templates ======

// scanTemplateBody scans from just past '`' (head) or '}' (continuation) to
// the closing '`' or the next '${'. head selects Complete/Head kinds over
// Tail/Middle kinds.
func (l *Lexer) scanTemplateBody(begin int, head bool) {
	var value strings.Builder
	finish := func(tt TokenType) {
		l.tok.Literal = value.String()
		l.finish(tt)
	}
	for {
		c := l.input[l.pos]
		switch {
		case c == '`':
			l.pos++
			if head {
				finish(TokenTemplateComplete)
			} else {
				finish(TokenTemplateTail)
			}
			return
		case c == '$' && l.input[l.pos+1] == '{':
			l.pos += 2
			if head {
				finish(TokenTemplateHead)
			} else {
				finish(TokenTemplateMiddle)
			}
			return
		case c == '\\':
			l.scanStringEscape(&value)
		case l.atEOF():
			l.report(diag.UnclosedTemplate{Template: source.NewSpan(begin, l.pos)})
			if head {
				finish(TokenTemplateComplete)
			} else {
				finish(TokenTemplateTail)
			}
			return
		case c >= 0x80:
			r, size := utf8.DecodeRune(l.input[l.pos:])
			value.WriteRune(r)
			l.pos += size
		default:
			value.WriteByte(c)
			l.pos++
		}
	}
}

// ====== Regular expressions ======

// scanRegexp scans a regexp literal starting at the '/' at begin.
func (l *Lexer) scanRegexp(begin int) {
	l.pos = begin + 1
	inClass := false
	for {
		c := l.input[l.pos]
		switch {
		case c == '\\':
			l.pos++
			if !l.atLineTerminator() && !l.atEOF() {
				l.pos++
			}
		case c == '[':
			inClass = true
			l.pos++
		case c == ']':
			inClass = false
			l.pos++
		case c == '/' && !inClass:
			l.tok.Literal = string(l.input[begin+1 : l.pos])
			l.pos++
			flagsBegin := l.pos
			for isASCIIIdentifierContinue(l.input[l.pos]) {
				l.pos++
			}
			l.tok.RegexpFlags = string(l.input[flagsBegin:l.pos])
			l.finish(TokenRegexp)
			return
		case l.atLineTerminator() || l.atEOF():
			l.report(diag.UnclosedRegexpLiteral{RegexpLiteral: source.NewSpan(begin, l.pos)})
			l.tok.Literal = string(l.input[begin+1 : l.pos])
			l.finish(TokenRegexp)
			return
		default:
			if c >= 0x80 {
				_, size := utf8.DecodeRune(l.input[l.pos:])
				l.pos += size
			} else {
				l.pos++
			}
		}
	}
}

// ====== Punctuators ======

func (l *Lexer) scanPunctuator(begin int, c byte) {
	one := func(tt TokenType) {
		l.pos++
		l.finish(tt)
	}
	two := func(tt TokenType) {
		l.pos += 2
		l.finish(tt)
	}
	three := func(tt TokenType) {
		l.pos += 3
		l.finish(tt)
	}

	switch c {
	case '(':
		one(TokenLParen)
	case ')':
		one(TokenRParen)
	case '[':
		one(TokenLBracket)
	case ']':
		one(TokenRBracket)
	case '{':
		one(TokenLBrace)
	case '}':
		one(TokenRBrace)
	case ';':
		one(TokenSemicolon)
	case ',':
		one(TokenComma)
	case ':':
		one(TokenColon)
	case '~':
		one(TokenTilde)
	case '.':
		if isDigit(l.input[l.pos+1]) {
			l.scanFractionOnlyNumber(begin)
			return
		}
		if l.input[l.pos+1] == '.' && l.input[l.pos+2] == '.' {
			three(TokenDotDotDot)
		} else {
			one(TokenDot)
		}
	case '?':
		switch l.input[l.pos+1] {
		case '?':
			if l.input[l.pos+2] == '=' {
				three(TokenNullishAssign)
			} else {
				two(TokenNullish)
			}
		case '.':
			if isDigit(l.input[l.pos+2]) {
				// `x?.5` is a conditional, not optional chaining.
				one(TokenQuestion)
			} else {
				two(TokenQuestionDot)
			}
		default:
			one(TokenQuestion)
		}
	case '=':
		switch l.input[l.pos+1] {
		case '=':
			if l.input[l.pos+2] == '=' {
				three(TokenStrictEq)
			} else {
				two(TokenEq)
			}
		case '>':
			two(TokenArrow)
		default:
			one(TokenAssign)
		}
	case '!':
		if l.input[l.pos+1] == '=' {
			if l.input[l.pos+2] == '=' {
				three(TokenStrictNe)
			} else {
				two(TokenNe)
			}
		} else {
			one(TokenBang)
		}
	case '<':
		switch l.input[l.pos+1] {
		case '=':
			two(TokenLe)
		case '<':
			if l.input[l.pos+2] == '=' {
				three(TokenShlAssign)
			} else {
				two(TokenShl)
			}
		default:
			one(TokenLt)
		}
	case '>':
		switch l.input[l.pos+1] {
		case '=':
			two(TokenGe)
		case '>':
			switch l.input[l.pos+2] {
			case '=':
				three(TokenShrAssign)
			case '>':
				if l.input[l.pos+3] == '=' {
					l.pos += 4
					l.finish(TokenUShrAssign)
				} else {
					three(TokenUShr)
				}
			default:
				two(TokenShr)
			}
		default:
			one(TokenGt)
		}
	case '+':
		switch l.input[l.pos+1] {
		case '+':
			two(TokenPlusPlus)
		case '=':
			two(TokenPlusAssign)
		default:
			one(TokenPlus)
		}
	case '-':
		switch l.input[l.pos+1] {
		case '-':
			two(TokenMinusMinus)
		case '=':
			two(TokenMinusAssign)
		default:
			one(TokenMinus)
		}
	case '*':
		switch l.input[l.pos+1] {
		case '*':
			if l.input[l.pos+2] == '=' {
				three(TokenStarStarAssign)
			} else {
				two(TokenStarStar)
			}
		case '=':
			two(TokenStarAssign)
		default:
			one(TokenStar)
		}
	case '/':
		if l.input[l.pos+1] == '=' {
			two(TokenSlashAssign)
		} else {
			one(TokenSlash)
		}
	case '%':
		if l.input[l.pos+1] == '=' {
			two(TokenPercentAssign)
		} else {
			one(TokenPercent)
		}
	case '&':
		switch l.input[l.pos+1] {
		case '&':
			if l.input[l.pos+2] == '=' {
				three(TokenAndAndAssign)
			} else {
				two(TokenAndAnd)
			}
		case '=':
			two(TokenAmpAssign)
		default:
			one(TokenAmp)
		}
	case '|':
		switch l.input[l.pos+1] {
		case '|':
			if l.input[l.pos+2] == '=' {
				three(TokenOrOrAssign)
			} else {
				two(TokenOrOr)
			}
		case '=':
			two(TokenPipeAssign)
		default:
			one(TokenPipe)
		}
	case '^':
		if l.input[l.pos+1] == '=' {
			two(TokenCaretAssign)
		} else {
			one(TokenCaret)
		}
	default:
		l.report(diag.UnexpectedCharacter{Character: source.NewSpan(l.pos, l.pos+1)})
		if c >= 0x80 {
			_, size := utf8.DecodeRune(l.input[l.pos:])
			l.pos += size
		} else {
			l.pos++
		}
		l.finish(TokenIncomplete)
	}
}

// scanFractionOnlyNumber scans a number of the form `.5`.
func (l *Lexer) scanFractionOnlyNumber(begin int) {
	l.pos++ // past '.'
	l.scanDigits(isDigit)
	l.scanExponent()
	l.scanNumberSuffix(begin)
}
