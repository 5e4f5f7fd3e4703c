// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

const hexDigit = "0123456789abcdef"

// AppendQuote appends the JSON string literal for src to buf, with escapes
// and enclosing double quotation marks, and returns the extended slice.
func AppendQuote(buf []byte, src mem.RO) []byte {
	buf = append(buf, '"')
	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		src = src.SliceFrom(n)
		switch {
		case r < ' ':
			if b := controlEsc[r]; b != 0 {
				buf = append(buf, '\\', b)
			} else {
				buf = append(buf, '\\', 'u', '0', '0', hexDigit[r>>4], hexDigit[r&15])
			}
		case r == '\\' || r == '"':
			buf = append(buf, '\\', byte(r))
		case r < utf8.RuneSelf:
			buf = append(buf, byte(r))
		case r == '\u2028' || r == '\u2029':
			buf = append(buf, `\u202`...)
			buf = append(buf, hexDigit[r&15])
		default:
			buf = utf8.AppendRune(buf, r)
		}
	}
	return append(buf, '"')
}

// Quote returns src as a JSON string literal.
func Quote(src string) string { return string(AppendQuote(nil, mem.S(src))) }
