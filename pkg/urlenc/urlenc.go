// Package urlenc implements the percent-coding rules shared by the URL
// engine and the mutation pipeline: every byte outside the RFC 3986
// unreserved set is escaped, and decoding never produces control bytes.
package urlenc

import (
	"errors"
	"strings"
)

const upperhex = "0123456789ABCDEF"

// ErrControlByte reports decoded output containing an ASCII control byte.
var ErrControlByte = errors.New("control byte in decoded data")

// Escape percent-encodes every byte of s that is not unreserved
// (ALPHA / DIGIT / "-" / "." / "_" / "~"). Multibyte runes are encoded
// byte by byte.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}

		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0f])
	}

	return b.String()
}

// EscapePath escapes like Escape but leaves "/" alone, so a whole path can
// be stored without its separators turning into %2F.
func EscapePath(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) || c == '/' {
			b.WriteByte(c)
			continue
		}

		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0f])
	}

	return b.String()
}

// EscapeQuery escapes like Escape but turns spaces into "+", the form wanted
// inside query strings.
func EscapeQuery(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isUnreserved(c):
			b.WriteByte(c)
		case c == ' ':
			b.WriteByte('+')
		default:
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&0x0f])
		}
	}

	return b.String()
}

// Unescape decodes %XX sequences in s. A "%" not followed by two hex digits
// is copied through untouched rather than rejected. Output containing bytes
// below 0x20 fails with ErrControlByte, so decoded URLs stay printable.
func Unescape(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			c = hexValue(s[i+1])<<4 | hexValue(s[i+2])
			i += 2
		}

		if c < 0x20 {
			return "", ErrControlByte
		}

		b.WriteByte(c)
	}

	return b.String(), nil
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z':
		return true
	case 'A' <= c && c <= 'Z':
		return true
	case '0' <= c && c <= '9':
		return true
	}

	return c == '-' || c == '.' || c == '_' || c == '~'
}

func isHex(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}

	return false
}

func hexValue(c byte) byte {
	switch {
	case c >= 'a':
		return c - 'a' + 10
	case c >= 'A':
		return c - 'A' + 10
	}

	return c - '0'
}
