package jsontree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// SyntaxError describes malformed input. Line and Column are 1-based.
type SyntaxError struct {
	Msg    string
	Offset int64
	Line   int
	Column int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: line %d column %d (char %d)", e.Msg, e.Line, e.Column, e.Offset)
}

// EncodingError reports input that is not valid UTF-8.
type EncodingError struct {
	Byte   byte
	Offset int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("invalid UTF-8: cannot decode byte 0x%02x in position %d", e.Byte, e.Offset)
}

// Parse decodes exactly one JSON value from data. Anything other than
// whitespace after that value is a syntax error.
func Parse(data []byte) (Value, error) {
	if !utf8.Valid(data) {
		return nil, encodingError(data)
	}

	// A whole-buffer pass reports absolute offsets; the token stream does not.
	if err := json.Unmarshal(data, new(json.RawMessage)); err != nil {
		return nil, syntaxError(data, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, syntaxError(data, err)
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, fmt.Errorf("unexpected %q", rune(t))
	case string:
		return String(t), nil
	case json.Number:
		return Number(t), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null{}, nil
	}

	return nil, fmt.Errorf("unexpected token %v", tok)
}

func decodeObject(dec *json.Decoder) (Value, error) {
	obj := NewObject()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expecting property name, got %v", tok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Set(key, val)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) (Value, error) {
	arr := Array{}
	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

func syntaxError(data []byte, err error) error {
	msg := err.Error()
	offset := int64(len(data))

	var se *json.SyntaxError
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		msg = "unexpected end of JSON input"
	case errors.As(err, &se):
		msg = se.Error()
		offset = se.Offset
		if msg != "unexpected end of JSON input" && offset > 0 {
			offset-- // Offset counts the offending byte
		}
	}

	line, col := position(data, offset)
	return &SyntaxError{Msg: msg, Offset: offset, Line: line, Column: col}
}

func encodingError(data []byte) error {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return &EncodingError{Byte: data[i], Offset: i}
		}
		i += size
	}
	return &EncodingError{Offset: len(data)}
}

func position(data []byte, offset int64) (line, col int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	line, col = 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}
