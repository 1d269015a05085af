// Package errors provides the error conditions raised while reading,
// editing and writing structured report documents.
package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrMalformedContentItem = errors.New("sr: malformed content item")
	ErrIndexOutOfRange      = errors.New("sr: index out of range")
	ErrMissingAttribute     = errors.New("sr: missing required attribute")
	ErrIO                   = errors.New("sr: i/o failure")
	ErrDepthExceeded        = errors.New("sr: content tree nesting too deep")
	ErrInvalidDataset       = errors.New("dicom: invalid dataset encoding")
	ErrUnsupportedTransfer  = errors.New("dicom: unsupported transfer syntax")
	ErrNotPart10            = errors.New("dicom: not a Part 10 file")
)

// ContentItemError reports a content item whose declared value type has no
// matching payload.
type ContentItemError struct {
	// Path locates the item, e.g. "1.3.2" (1-based positions from the root).
	Path      string
	ValueType string
	Attribute string
	Msg       string
}

func (e *ContentItemError) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = fmt.Sprintf("%s item has no %s", e.ValueType, e.Attribute)
	}
	return fmt.Sprintf("malformed content item %s: %s", e.Path, msg)
}

func (e *ContentItemError) Unwrap() error {
	return ErrMalformedContentItem
}

// NewContentItemError creates a new content item error
func NewContentItemError(path, valueType, attribute string) *ContentItemError {
	return &ContentItemError{
		Path:      path,
		ValueType: valueType,
		Attribute: attribute,
	}
}

// IndexOutOfRangeError reports a finding position that does not exist in
// the container being filtered.
type IndexOutOfRangeError struct {
	Index  int
	Length int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("finding index %d out of range (container has %d items)", e.Index, e.Length)
}

func (e *IndexOutOfRangeError) Unwrap() error {
	return ErrIndexOutOfRange
}

// NewIndexOutOfRangeError creates a new index error
func NewIndexOutOfRangeError(index, length int) *IndexOutOfRangeError {
	return &IndexOutOfRangeError{
		Index:  index,
		Length: length,
	}
}

// MissingAttributeError reports a required attribute absent from a document.
type MissingAttributeError struct {
	Tag     string
	Name    string
	Context string
}

func (e *MissingAttributeError) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("missing required attribute %s %s", e.Name, e.Tag)
	}
	return fmt.Sprintf("missing required attribute %s %s (%s)", e.Name, e.Tag, e.Context)
}

func (e *MissingAttributeError) Unwrap() error {
	return ErrMissingAttribute
}

// NewMissingAttributeError creates a new missing attribute error
func NewMissingAttributeError(tag, name, context string) *MissingAttributeError {
	return &MissingAttributeError{
		Tag:     tag,
		Name:    name,
		Context: context,
	}
}

// IOError represents a failure reading or writing a document path
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() []error {
	return []error{ErrIO, e.Err}
}

// NewIOError creates a new i/o error
func NewIOError(op, path string, err error) *IOError {
	return &IOError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// DecodeError reports a dataset that cannot be decoded at a byte offset.
type DecodeError struct {
	Offset int
	Msg    string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("dataset decode error at offset %d: %s", e.Offset, e.Msg)
}

func (e *DecodeError) Unwrap() error {
	return ErrInvalidDataset
}

// NewDecodeError creates a new decode error
func NewDecodeError(offset int, format string, args ...any) *DecodeError {
	return &DecodeError{
		Offset: offset,
		Msg:    fmt.Sprintf(format, args...),
	}
}
