package rdf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

type ntDecoder struct {
	scanner *bufio.Scanner
	format  Format
	opts    Options
	line    int
	err     error
}

func newNTDecoder(r io.Reader, format Format, opts Options) *ntDecoder {
	scanner := bufio.NewScanner(r)
	if opts.MaxLineBytes > 0 {
		initial := 64 << 10
		if opts.MaxLineBytes < initial {
			initial = opts.MaxLineBytes
		}
		scanner.Buffer(make([]byte, 0, initial), opts.MaxLineBytes)
	} else {
		scanner.Buffer(nil, int(^uint(0)>>1))
	}
	return &ntDecoder{scanner: scanner, format: format, opts: opts}
}

func (d *ntDecoder) Next() (Statement, error) {
	if d.err != nil {
		return Statement{}, d.err
	}
	for {
		if d.opts.Context != nil && d.opts.Context.Err() != nil {
			d.err = d.opts.Context.Err()
			return Statement{}, d.err
		}
		if !d.scanner.Scan() {
			err := d.scanner.Err()
			switch {
			case err == nil:
				d.err = io.EOF
			case errors.Is(err, bufio.ErrTooLong):
				d.err = &ParseError{Format: d.format, Line: d.line + 1, Err: ErrLineTooLong}
			default:
				d.err = err
			}
			return Statement{}, d.err
		}
		d.line++
		line := strings.TrimSpace(d.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		stmt, err := parseNTLine(line, d.format, d.opts)
		if err != nil {
			d.err = &ParseError{Format: d.format, Line: d.line, Err: err}
			return Statement{}, d.err
		}
		if stmt.Why == nil {
			stmt.Why = d.opts.Why
		}
		return stmt, nil
	}
}

func (d *ntDecoder) Close() error { return nil }

func parseNTLine(line string, format Format, opts Options) (Statement, error) {
	cursor := &ntCursor{input: line, base: opts.Base, bnodePrefix: opts.BlankNodePrefix}
	subject, err := cursor.parseTerm(false)
	if err != nil {
		return Statement{}, err
	}
	predicate, err := cursor.parseSymbol()
	if err != nil {
		return Statement{}, err
	}
	object, err := cursor.parseTerm(true)
	if err != nil {
		return Statement{}, err
	}

	var graph Term
	cursor.skipWS()
	if cursor.pos < len(cursor.input) && cursor.input[cursor.pos] != '.' {
		if format != FormatNQuads {
			return Statement{}, cursor.errorf("graph term not allowed in N-Triples")
		}
		graph, err = cursor.parseTerm(false)
		if err != nil {
			return Statement{}, err
		}
	}
	if !cursor.consume('.') {
		return Statement{}, cursor.errorf("expected '.' at end of statement")
	}
	cursor.skipWS()
	if cursor.pos < len(cursor.input) && cursor.input[cursor.pos] != '#' {
		return Statement{}, cursor.errorf("trailing content after '.'")
	}
	return Statement{Subject: subject, Predicate: predicate, Object: object, Why: graph}, nil
}

type ntCursor struct {
	input       string
	pos         int
	base        string
	bnodePrefix string
}

func (c *ntCursor) skipWS() {
	for c.pos < len(c.input) {
		switch c.input[c.pos] {
		case ' ', '\t', '\r', '\n':
			c.pos++
		default:
			return
		}
	}
}

func (c *ntCursor) consume(ch byte) bool {
	c.skipWS()
	if c.pos < len(c.input) && c.input[c.pos] == ch {
		c.pos++
		return true
	}
	return false
}

func (c *ntCursor) parseTerm(allowLiteral bool) (Term, error) {
	c.skipWS()
	if c.pos >= len(c.input) {
		return nil, c.errorf("unexpected end of line")
	}
	switch {
	case c.input[c.pos] == '<':
		return c.parseSymbol()
	case strings.HasPrefix(c.input[c.pos:], "_:"):
		return c.parseBlankNode()
	case c.input[c.pos] == '"':
		if !allowLiteral {
			return nil, c.errorf("literal not allowed here")
		}
		return c.parseLiteral()
	default:
		return nil, c.errorf("unexpected token %q", c.input[c.pos])
	}
}

func (c *ntCursor) parseSymbol() (Symbol, error) {
	if !c.consume('<') {
		return Symbol{}, c.errorf("expected IRI")
	}
	var builder strings.Builder
	closed := false
	for c.pos < len(c.input) {
		ch := c.input[c.pos]
		if ch == '>' {
			c.pos++
			closed = true
			break
		}
		if ch == '\\' {
			if c.pos+1 >= len(c.input) || (c.input[c.pos+1] != 'u' && c.input[c.pos+1] != 'U') {
				return Symbol{}, c.errorf("invalid escape in IRI")
			}
			r, width, err := c.parseUnicodeEscape(c.input[c.pos+1])
			if err != nil {
				return Symbol{}, err
			}
			builder.WriteRune(r)
			c.pos += width
			continue
		}
		builder.WriteByte(ch)
		c.pos++
	}
	if !closed {
		return Symbol{}, c.errorf("unterminated IRI")
	}
	iri, err := ResolveIRI(c.base, builder.String())
	if err != nil {
		return Symbol{}, c.errorf("%v", err)
	}
	if err := ValidateIRI(iri); err != nil {
		return Symbol{}, c.errorf("%v", err)
	}
	return Symbol{URI: iri}, nil
}

func (c *ntCursor) parseBlankNode() (BlankNode, error) {
	c.pos += 2
	start := c.pos
	for c.pos < len(c.input) && !isTermDelimiter(c.input[c.pos]) {
		c.pos++
	}
	if start == c.pos {
		return BlankNode{}, c.errorf("blank node id missing")
	}
	return BlankNode{ID: c.bnodePrefix + c.input[start:c.pos]}, nil
}

func (c *ntCursor) parseLiteral() (Literal, error) {
	c.pos++
	var builder strings.Builder
	closed := false
	for c.pos < len(c.input) {
		ch := c.input[c.pos]
		if ch == '"' {
			c.pos++
			closed = true
			break
		}
		if ch == '\\' {
			if c.pos+1 >= len(c.input) {
				return Literal{}, c.errorf("unterminated escape")
			}
			next := c.input[c.pos+1]
			switch next {
			case 'n':
				builder.WriteByte('\n')
			case 't':
				builder.WriteByte('\t')
			case 'r':
				builder.WriteByte('\r')
			case '"', '\\', '\'':
				builder.WriteByte(next)
			case 'u', 'U':
				r, width, err := c.parseUnicodeEscape(next)
				if err != nil {
					return Literal{}, err
				}
				builder.WriteRune(r)
				c.pos += width
				continue
			default:
				return Literal{}, c.errorf("invalid escape \\%c", next)
			}
			c.pos += 2
			continue
		}
		builder.WriteByte(ch)
		c.pos++
	}
	if !closed {
		return Literal{}, c.errorf("unterminated literal")
	}
	lit := Literal{Value: builder.String()}
	if strings.HasPrefix(c.input[c.pos:], "@") {
		c.pos++
		start := c.pos
		for c.pos < len(c.input) && !isTermDelimiter(c.input[c.pos]) {
			c.pos++
		}
		if start == c.pos {
			return Literal{}, c.errorf("empty language tag")
		}
		lit.Lang = c.input[start:c.pos]
		if !isValidLangTag(lit.Lang) {
			return Literal{}, c.errorf("invalid language tag %q", lit.Lang)
		}
		return lit, nil
	}
	if strings.HasPrefix(c.input[c.pos:], "^^") {
		c.pos += 2
		dt, err := c.parseSymbol()
		if err != nil {
			return Literal{}, err
		}
		lit.Datatype = dt
	}
	return lit, nil
}

// parseUnicodeEscape decodes \uXXXX or \UXXXXXXXX at the cursor and returns the
// rune with the number of bytes consumed.
func (c *ntCursor) parseUnicodeEscape(marker byte) (rune, int, error) {
	digits := 4
	if marker == 'U' {
		digits = 8
	}
	start := c.pos + 2
	end := start + digits
	if end > len(c.input) {
		return 0, 0, c.errorf("short unicode escape")
	}
	var r rune
	for _, ch := range c.input[start:end] {
		r <<= 4
		switch {
		case ch >= '0' && ch <= '9':
			r |= ch - '0'
		case ch >= 'a' && ch <= 'f':
			r |= ch - 'a' + 10
		case ch >= 'A' && ch <= 'F':
			r |= ch - 'A' + 10
		default:
			return 0, 0, c.errorf("invalid unicode escape")
		}
	}
	return r, end - c.pos, nil
}

func (c *ntCursor) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("col %d: "+format, append([]interface{}{c.pos + 1}, args...)...)
}

func isTermDelimiter(ch byte) bool {
	switch ch {
	case ' ', '\t', '\r', '\n', '.':
		return true
	default:
		return false
	}
}

type ntEncoder struct {
	writer *bufio.Writer
	format Format
	err    error
}

func newNTEncoder(w io.Writer, format Format) *ntEncoder {
	return &ntEncoder{writer: bufio.NewWriter(w), format: format}
}

func (e *ntEncoder) Write(s Statement) error {
	if e.err != nil {
		return e.err
	}
	if s.Subject == nil || s.Predicate.URI == "" || s.Object == nil {
		return fmt.Errorf("%s: missing statement fields", e.format)
	}
	line := renderTerm(s.Subject) + " " + renderTerm(s.Predicate) + " " + renderTerm(s.Object)
	if e.format == FormatNQuads && s.Why != nil {
		line += " " + renderTerm(s.Why)
	}
	line += " .\n"
	_, err := e.writer.WriteString(line)
	if err != nil {
		e.err = err
	}
	return err
}

func (e *ntEncoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	return e.writer.Flush()
}

func (e *ntEncoder) Close() error {
	return e.Flush()
}

func renderTerm(term Term) string {
	switch value := term.(type) {
	case Symbol:
		return "<" + value.URI + ">"
	case BlankNode:
		return value.String()
	case Literal:
		out := `"` + escapeLiteral(value.Value) + `"`
		if value.Lang != "" {
			return out + "@" + value.Lang
		}
		if value.Datatype.URI != "" && value.Datatype != XSDString {
			return out + "^^<" + value.Datatype.URI + ">"
		}
		return out
	default:
		return ""
	}
}

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func escapeLiteral(s string) string { return literalEscaper.Replace(s) }
