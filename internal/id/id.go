package id

import (
	"crypto/rand"
	"fmt"
	"strings"
)

const charset = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"
const hashLen = 5

const (
	minLen = 5
	maxLen = 50
)

// Prefix names the kind of object an ID is generated for.
type Prefix string

const (
	Slide Prefix = "slide"
	Shape Prefix = "shape"
	Table Prefix = "table"
	Image Prefix = "image"
	Line  Prefix = "line"
	Group Prefix = "group"
)

var allPrefixes = []Prefix{Slide, Shape, Table, Image, Line, Group}

// New returns a fresh object ID such as "shape_K7Q2M".
func New(p Prefix) (string, error) {
	b := make([]byte, hashLen)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating id: %w", err)
	}
	for i := range b {
		b[i] = charset[int(b[i])%len(charset)]
	}
	return string(p) + "_" + string(b), nil
}

// Validate checks an object ID against the document API's rules: 5 to 50
// characters from [A-Za-z0-9_-:], starting with a letter, digit or underscore.
func Validate(objectID string) error {
	if len(objectID) < minLen || len(objectID) > maxLen {
		return fmt.Errorf("must be %d-%d characters long", minLen, maxLen)
	}
	for i, c := range objectID {
		if isWord(c) {
			continue
		}
		if i > 0 && (c == '-' || c == ':') {
			continue
		}
		return fmt.Errorf("invalid character %q at position %d", c, i)
	}
	return nil
}

// ParsePrefix converts s to one of the generated prefixes.
func ParsePrefix(s string) (Prefix, bool) {
	for _, p := range allPrefixes {
		if string(p) == strings.ToLower(s) {
			return p, true
		}
	}
	return "", false
}

// PrefixOf reports which generated prefix objectID carries, if any.
func PrefixOf(objectID string) (Prefix, bool) {
	idx := strings.Index(objectID, "_")
	if idx < 0 {
		return "", false
	}
	return ParsePrefix(objectID[:idx])
}

func isWord(c rune) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
