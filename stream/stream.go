// Package stream reads dependency-annotated text in the Apertium stream
// format:
//
//	[[t:b:x]]^el<det><def><@det><#1→2>$ ^gato<n><@nsubj><#2→3>$ ^.<sent>$
//
// Lexical units are delimited by ^ and $, [...] are superblanks kept as free
// text, [[...]] are word-bound blanks attached to the following unit, and \
// escapes the next character. A sentence ends after a unit tagged <sent>.
package stream

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	sent "github.com/mr-martian/ap-ud-linearize/sentence"
)

// Reader splits a stream into sentences.
type Reader struct {
	r    *bufio.Reader
	next int
	done bool
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Next returns the next sentence, or io.EOF at the end of the stream. Free
// text at the end of the stream is returned as the Tail of a last sentence
// (with no units if needed).
func (rd *Reader) Next() (sent.Sentence, error) {
	if rd.done {
		return sent.Sentence{}, io.EOF
	}

	s := sent.Sentence{Id: rd.next}
	var blank strings.Builder
	wblank := ""

	flushWBlank := func() {
		blank.WriteString(wblank)
		wblank = ""
	}

	for {
		c, _, err := rd.r.ReadRune()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return sent.Sentence{}, err
		}

		switch c {
		case '\\':
			flushWBlank()
			blank.WriteRune(c)
			if err := rd.copyRune(&blank); err != nil {
				return sent.Sentence{}, rd.wrap(err)
			}

		case '[':
			flushWBlank()
			if rd.peek() == '[' {
				text, err := rd.readUntil("]]")
				if err != nil {
					return sent.Sentence{}, rd.wrap(err)
				}
				wblank = "[" + text
				continue
			}

			text, err := rd.readUntil("]")
			if err != nil {
				return sent.Sentence{}, rd.wrap(err)
			}
			blank.WriteString("[" + text)

		case '^':
			form, err := rd.readUntil("$")
			if err != nil {
				return sent.Sentence{}, rd.wrap(err)
			}
			form = strings.TrimSuffix(form, "$")

			lu, err := sent.Parse(wblank, form)
			if err != nil {
				return sent.Sentence{}, rd.wrap(err)
			}
			wblank = ""

			s.Blanks = append(s.Blanks, blank.String())
			blank.Reset()
			s.Units = append(s.Units, lu)

			if strings.Contains(lu.Tags, "<sent>") {
				rd.next++
				return s, nil
			}

		default:
			flushWBlank()
			blank.WriteRune(c)
		}
	}

	rd.done = true
	flushWBlank()
	s.Tail = blank.String()

	if len(s.Units) == 0 && s.Tail == "" {
		return sent.Sentence{}, io.EOF
	}

	rd.next++
	return s, nil
}

func (rd *Reader) wrap(err error) error {
	return fmt.Errorf("sentence %d: %w", rd.next, err)
}

func (rd *Reader) peek() rune {
	c, _, err := rd.r.ReadRune()
	if err != nil {
		return 0
	}
	_ = rd.r.UnreadRune()
	return c
}

func (rd *Reader) copyRune(b *strings.Builder) error {
	c, _, err := rd.r.ReadRune()
	if err != nil {
		return fmt.Errorf("dangling escape: %w", io.ErrUnexpectedEOF)
	}
	b.WriteRune(c)
	return nil
}

// readUntil reads up to and including the unescaped delimiter delim.
func (rd *Reader) readUntil(delim string) (string, error) {
	var b strings.Builder
	// unescaped runes read since the last escape
	tail := ""
	for {
		c, _, err := rd.r.ReadRune()
		if err != nil {
			return "", fmt.Errorf("unterminated %q: %w", b.String(), io.ErrUnexpectedEOF)
		}

		b.WriteRune(c)
		if c == '\\' {
			if err := rd.copyRune(&b); err != nil {
				return "", err
			}
			tail = ""
			continue
		}

		tail += string(c)
		if strings.HasSuffix(tail, delim) {
			return b.String(), nil
		}
		if len(tail) > len(delim) {
			tail = tail[len(tail)-len(delim):]
		}
	}
}

// ReadAll returns all the sentences of r.
func ReadAll(r io.Reader) ([]sent.Sentence, error) {
	rd := NewReader(r)

	var sentences []sent.Sentence
	for {
		s, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return sentences, nil
		}
		if err != nil {
			return nil, err
		}

		sentences = append(sentences, s)
	}
}

// ReadFile returns all the sentences of the file at path, or of the standard
// input if path is empty or "-".
func ReadFile(path string) ([]sent.Sentence, error) {
	if path == "" || path == "-" {
		return ReadAll(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}
	defer f.Close()

	return ReadAll(f)
}
