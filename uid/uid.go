// Package uid generates DICOM unique identifiers.
package uid

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Root is the UID root for identifiers derived from a UUID (PS3.5 B.2).
const Root = "2.25"

// MaxLength is the longest UID DICOM allows.
const MaxLength = 64

// ErrInvalid is returned when a generator produces a malformed UID.
var ErrInvalid = errors.New("uid: invalid UID")

// Generator produces new UIDs.
type Generator interface {
	NewUID() string
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func() string

// NewUID calls f.
func (f GeneratorFunc) NewUID() string { return f() }

// UUIDGenerator derives UIDs from random (version 4) UUIDs.
type UUIDGenerator struct{}

// NewUID returns a new random UID.
func (UUIDGenerator) NewUID() string { return New() }

// New returns a new UID of the form 2.25.<uuid as an unsigned decimal>.
func New() string {
	return FromUUID(uuid.New())
}

// FromUUID converts u to its 2.25 UID form.
func FromUUID(u uuid.UUID) string {
	n := new(big.Int).SetBytes(u[:])
	return Root + "." + n.String()
}

// Next draws a UID from g and checks it with Valid.
func Next(g Generator) (string, error) {
	u := g.NewUID()
	if !Valid(u) {
		return "", fmt.Errorf("%w: %q", ErrInvalid, u)
	}
	return u, nil
}

// Valid reports whether s is a syntactically valid UID: dot separated
// numeric components without leading zeros, at most MaxLength characters.
func Valid(s string) bool {
	if s == "" || len(s) > MaxLength {
		return false
	}
	for _, component := range strings.Split(s, ".") {
		if component == "" {
			return false
		}
		if len(component) > 1 && component[0] == '0' {
			return false
		}
		for _, r := range component {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}

// Sequence is a deterministic Generator that appends an increasing counter
// to a prefix. It is meant for tests and reproducible output.
type Sequence struct {
	Prefix string
	next   int
}

// NewUID returns Prefix.1, Prefix.2, ...
func (s *Sequence) NewUID() string {
	s.next++
	return s.Prefix + "." + strconv.Itoa(s.next)
}
