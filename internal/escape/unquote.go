// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON string literals.
package escape

import (
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// Unquote decodes a JSON string literal, including its enclosing double
// quotation marks, and returns the plain string.
//
// Escape sequences are replaced with their unescaped equivalents, and UTF-16
// surrogate pairs written as adjacent \u escapes are combined. Unquote
// reports an error for a missing quotation mark or a malformed escape.
func Unquote(lit mem.RO) (string, error) {
	if lit.Len() < 2 || lit.At(0) != '"' || lit.At(lit.Len()-1) != '"' {
		return "", errors.New("missing quotations")
	}
	src := lit.Slice(1, lit.Len()-1)
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return src.StringCopy(), nil // fast path: nothing to decode
	}

	dec := make([]byte, 0, src.Len())
	for {
		dec = mem.Append(dec, src.SliceTo(i))
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return "", errors.New("incomplete escape sequence")
		}
		c := src.At(0)
		src = src.SliceFrom(1)
		switch c {
		case '"', '\\', '/':
			dec = append(dec, c)
		case 'b':
			dec = append(dec, '\b')
		case 'f':
			dec = append(dec, '\f')
		case 'n':
			dec = append(dec, '\n')
		case 'r':
			dec = append(dec, '\r')
		case 't':
			dec = append(dec, '\t')
		case 'u':
			r, rest, err := decodeU(src)
			if err != nil {
				return "", err
			}
			if utf16.IsSurrogate(r) {
				if lo, tail, err := decodeSurrogate(rest); err == nil && lo >= 0xdc00 && lo <= 0xdfff {
					r = utf16.DecodeRune(r, lo)
					rest = tail
				} else {
					r = utf8.RuneError
				}
			}
			dec = utf8.AppendRune(dec, r)
			src = rest
		default:
			return "", fmt.Errorf("invalid escape %q", c)
		}

		i = mem.IndexByte(src, '\\')
		if i < 0 {
			return string(mem.Append(dec, src)), nil
		}
	}
}

// decodeSurrogate decodes a "\uXXXX" escape at the front of src, if present.
func decodeSurrogate(src mem.RO) (rune, mem.RO, error) {
	if src.Len() < 2 || src.At(0) != '\\' || src.At(1) != 'u' {
		return 0, src, errors.New("no low surrogate")
	}
	return decodeU(src.SliceFrom(2))
}

// decodeU decodes the four hex digits following "\u".
func decodeU(src mem.RO) (rune, mem.RO, error) {
	if src.Len() < 4 {
		return 0, src, errors.New("incomplete Unicode escape")
	}
	var v rune
	for i := range 4 {
		b := src.At(i)
		v <<= 4
		switch {
		case '0' <= b && b <= '9':
			v += rune(b - '0')
		case 'a' <= b && b <= 'f':
			v += rune(b - 'a' + 10)
		case 'A' <= b && b <= 'F':
			v += rune(b - 'A' + 10)
		default:
			return 0, src, fmt.Errorf("invalid hex digit %q", b)
		}
	}
	return v, src.SliceFrom(4), nil
}
