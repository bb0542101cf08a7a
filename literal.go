package lispscan

// rawDelim delimits raw strings; doubling it inside the body escapes it.
const rawDelim = '¬'

func digitVal(ch rune) int {
	switch {
	case '0' <= ch && ch <= '9':
		return int(ch - '0')
	case 'a' <= lower(ch) && lower(ch) <= 'f':
		return int(lower(ch) - 'a' + 10)
	}
	return 16 // larger than any legal digit val
}

// scanDigits consumes up to n digits of the given base, beginning with ch,
// and reports an escape error when fewer are present.
func (s *Scanner) scanDigits(ch rune, base, n int) rune {
	for n > 0 && digitVal(ch) < base {
		ch = s.next()
		n--
	}
	if n > 0 {
		s.error(ErrLiteral, "invalid char escape")
	}
	return ch
}

// scanEscape consumes an escape sequence whose backslash has been consumed
// and returns the rune following it.
func (s *Scanner) scanEscape(quote rune) rune {
	ch := s.next() // read character after '\\'
	switch ch {
	case 'a', 'b', 'f', 'n', 'r', 't', 'v', '\\', quote:
		// nothing to do
		ch = s.next()
	case '0', '1', '2', '3', '4', '5', '6', '7':
		ch = s.scanDigits(ch, 8, 3)
	case 'x':
		ch = s.scanDigits(s.next(), 16, 2)
	case 'u':
		ch = s.scanDigits(s.next(), 16, 4)
	case 'U':
		ch = s.scanDigits(s.next(), 16, 8)
	default:
		s.error(ErrLiteral, "invalid char escape")
	}
	return ch
}

// scanString consumes a quoted string whose opening quote has been
// consumed, up to and including the closing quote, and returns the number
// of characters in its body. A newline or EOF ends an unterminated string.
func (s *Scanner) scanString(quote rune) (n int) {
	ch := s.next() // read character after quote
	for ch != quote {
		if ch == '\n' || ch == eof {
			s.error(ErrLiteral, "literal not terminated")
			return
		}
		if ch == '\\' {
			ch = s.scanEscape(quote)
		} else {
			ch = s.next()
		}
		n++
	}
	return
}

// scanRawString consumes a raw string whose opening delimiter has been
// consumed, including the closing delimiter, and returns the rune after
// it. Inside the body "¬¬" stands for a literal '¬'.
func (s *Scanner) scanRawString() rune {
	for {
		ch := s.next() // read character after '¬'
		for ch != rawDelim {
			if ch == eof {
				s.error(ErrLiteral, "literal not terminated")
				return eof
			}
			ch = s.next()
		}
		if ch = s.next(); ch != rawDelim {
			return ch
		}
	}
}

// scanComment consumes the rest of a line comment. ch is the character
// after ';'. The terminating newline is returned, not consumed into the
// comment.
func (s *Scanner) scanComment(ch rune) rune {
	for ch != '\n' && ch != eof {
		ch = s.next()
	}
	return ch
}
