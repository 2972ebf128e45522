package template

import (
	"fmt"
	"strconv"

	"github.com/arthur-debert/progtmpl/pkg/errors"
	"github.com/arthur-debert/progtmpl/pkg/style"
)

type state uint8

const (
	stateLiteral state = iota
	stateMaybeOpen
	stateDoubleClose
	stateKey
	stateAlign
	stateWidth
	stateFirstStyle
	stateAltStyle
)

var stateNames = [...]string{"Literal", "MaybeOpen", "DoubleClose", "Key", "Align", "Width", "FirstStyle", "AltStyle"}

func (s state) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// inPlaceholder reports whether a placeholder builder is open in s.
func (s state) inPlaceholder() bool {
	return s >= stateAlign
}

// Limits bounds the resources a single compilation may use. Zero means
// unbounded.
type Limits struct {
	MaxParts  int `koanf:"max_parts" toml:"max_parts" json:"max_parts" yaml:"max_parts"`
	MaxBuffer int `koanf:"max_buffer" toml:"max_buffer" json:"max_buffer" yaml:"max_buffer"`
	MaxKey    int `koanf:"max_key" toml:"max_key" json:"max_key" yaml:"max_key"`
}

// move is the outcome of matching one input byte: the next state and an
// optional byte to append to the buffer once field commits are done.
type move struct {
	next state
	push bool
	char byte
}

func enter(next state) move { return move{next: next} }

func enterWith(next state, c byte) move { return move{next: next, push: true, char: c} }

// scanner is a single-use state machine over one template source.
type scanner struct {
	src    string
	limits Limits

	state state
	pos   int
	// open is the offset of the '{' that started the current placeholder
	// attempt. Abandoned attempts are restored from src[open:].
	open  int
	buf   []byte
	ph    *Placeholder
	parts []Part
}

func newScanner(src string, limits Limits) *scanner {
	return &scanner{src: src, limits: limits}
}

func (s *scanner) run() []Part {
	for s.pos = 0; s.pos < len(s.src); s.pos++ {
		s.feed(s.src[s.pos])
	}
	s.finish()
	return s.parts
}

// feed advances the machine by one byte. Recognizing a delimiter (match)
// is kept apart from committing the field it closes (commit), which is
// keyed on the state pair so an abandoned field never commits.
func (s *scanner) feed(c byte) {
	if s.state == stateDoubleClose && c != '}' {
		// the buffered '}' stays literal text
		s.state = stateLiteral
	}

	m := s.match(c)
	// match rewinds s.state to Literal when it abandons an attempt, so the
	// pair seen here never commits a half-read placeholder.
	s.commit(s.state, m.next)
	s.state = m.next
	if m.push {
		s.push(m.char)
	}
}

func (s *scanner) match(c byte) move {
	switch s.state {
	case stateLiteral:
		switch c {
		case '{':
			s.open = s.pos
			return enter(stateMaybeOpen)
		case '\n':
			s.newLine()
			return enter(stateLiteral)
		case '}':
			return enterWith(stateDoubleClose, c)
		default:
			return enterWith(stateLiteral, c)
		}

	case stateDoubleClose:
		// only a second '}' reaches here
		return enter(stateLiteral)

	case stateMaybeOpen:
		switch {
		case c == '{':
			return enterWith(stateLiteral, c)
		case isSpace(c):
			return s.backtrack()
		case c == '}' || c == ':':
			s.appendLiteral(s.src[s.open : s.pos+1])
			return enter(stateLiteral)
		default:
			return enterWith(stateKey, c)
		}

	case stateKey:
		switch {
		case isSpace(c):
			return s.backtrack()
		case c == '!':
			return enter(stateWidth)
		case c == ':':
			return enter(stateAlign)
		case c == '}':
			return enter(stateLiteral)
		default:
			return enterWith(stateKey, c)
		}

	case stateAlign:
		if a, ok := alignmentFor(c); ok {
			s.ph.Align = a
			return enter(stateWidth)
		}
		switch {
		case isDigit(c):
			return enterWith(stateWidth, c)
		case c == '!':
			s.ph.Truncate = true
			return enter(stateWidth)
		case c == '.':
			return enter(stateFirstStyle)
		case c == '/':
			return enter(stateAltStyle)
		case c == '}':
			return enter(stateLiteral)
		default:
			return enterWith(stateFirstStyle, c)
		}

	case stateWidth:
		switch {
		case isDigit(c):
			return enterWith(stateWidth, c)
		case c == '!':
			s.ph.Truncate = true
			return enter(stateWidth)
		case c == '.':
			return enter(stateFirstStyle)
		case c == '/':
			return enter(stateAltStyle)
		case c == '}':
			return enter(stateLiteral)
		default:
			return enterWith(stateFirstStyle, c)
		}

	case stateFirstStyle:
		switch c {
		case '/':
			return enter(stateAltStyle)
		case '}':
			return enter(stateLiteral)
		default:
			return enterWith(stateFirstStyle, c)
		}

	case stateAltStyle:
		if c == '}' {
			return enter(stateLiteral)
		}
		return enterWith(stateAltStyle, c)
	}

	panic(errors.Newf(errors.ErrInternal, "unreachable scanner state %s on %q", s.state, c).
		WithDetail("offset", s.pos))
}

// commit turns buffered text into the field closed by leaving from for next.
func (s *scanner) commit(from, next state) {
	if from == next {
		return
	}

	switch from {
	case stateMaybeOpen:
		if next == stateKey {
			s.flushLiteral()
		}
		return
	case stateKey:
		s.openPlaceholder(next == stateWidth)
	case stateWidth:
		s.flushWidth()
	case stateFirstStyle:
		s.ph.Style = s.flushStyle()
	case stateAltStyle:
		s.ph.AltStyle = s.flushStyle()
	}

	if next == stateLiteral && s.ph != nil {
		s.closePlaceholder()
	}
}

// backtrack abandons a placeholder attempt: everything from the opening
// '{' through the current byte is read again as literal text.
func (s *scanner) backtrack() move {
	if s.state == stateKey {
		s.buf = s.buf[:0]
	}
	s.state = stateLiteral
	s.appendLiteral(s.src[s.open : s.pos+1])
	return enter(stateLiteral)
}

func (s *scanner) finish() {
	from := s.state
	s.state = stateLiteral

	switch {
	case from == stateMaybeOpen:
		s.appendLiteral(s.src[s.open:])
	case from == stateKey:
		s.buf = s.buf[:0]
		s.appendLiteral(s.src[s.open:])
	case from.inPlaceholder():
		// unterminated: the raw text survives, the half-built part does not
		s.ph = nil
		s.buf = s.buf[:0]
		s.appendLiteral(s.src[s.open:])
	}
	s.flushLiteral()
}

func (s *scanner) openPlaceholder(truncate bool) {
	if len(s.buf) == 0 {
		panic(errors.New(errors.ErrInternal, "placeholder opened without a key").
			WithDetail("offset", s.pos))
	}
	s.ph = &Placeholder{Key: s.take(), Truncate: truncate}
}

func (s *scanner) closePlaceholder() {
	ph := s.ph
	s.ph = nil
	s.emit(*ph)
}

func (s *scanner) flushWidth() {
	if len(s.buf) == 0 {
		return
	}
	// widths beyond 16 bits are dropped rather than wrapped
	if n, err := strconv.ParseUint(s.take(), 10, 16); err == nil {
		w := int(n)
		s.ph.Width = &w
	}
}

func (s *scanner) flushStyle() *style.Style {
	if len(s.buf) == 0 {
		return nil
	}
	st := style.Decode(s.take())
	return &st
}

func (s *scanner) flushLiteral() {
	if len(s.buf) == 0 {
		return
	}
	s.emit(Literal{Text: s.take()})
}

func (s *scanner) newLine() {
	s.flushLiteral()
	s.emit(NewLine{})
}

// appendLiteral adds restored source text to the literal buffer, keeping
// line breaks as NewLine parts.
func (s *scanner) appendLiteral(text string) {
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			s.newLine()
			continue
		}
		s.push(text[i])
	}
}

func (s *scanner) push(c byte) {
	if s.limits.MaxBuffer > 0 && len(s.buf) >= s.limits.MaxBuffer {
		s.capacity("buffer", s.limits.MaxBuffer)
	}
	if s.state == stateKey && s.limits.MaxKey > 0 && len(s.buf) >= s.limits.MaxKey {
		s.capacity("key", s.limits.MaxKey)
	}
	s.buf = append(s.buf, c)
}

func (s *scanner) emit(p Part) {
	if s.limits.MaxParts > 0 && len(s.parts) >= s.limits.MaxParts {
		s.capacity("parts", s.limits.MaxParts)
	}
	s.parts = append(s.parts, p)
}

// take returns the buffer contents and clears it.
func (s *scanner) take() string {
	text := string(s.buf)
	s.buf = s.buf[:0]
	return text
}

func (s *scanner) capacity(limit string, max int) {
	panic(errors.Newf(errors.ErrCapacity, "template exceeds %s limit of %d", limit, max).
		WithDetail("limit", limit).
		WithDetail("max", max).
		WithDetail("offset", s.pos))
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
