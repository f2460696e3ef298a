/*
DESCRIPTION
  errors.go defines the error taxonomy used throughout the decoder: a small
  set of Kinds that callers can branch on, wrapped with context via
  github.com/pkg/errors so a stack trace survives up to the caller.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package h263dec

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a DecodeError so callers can decide whether to resync and
// keep decoding or give up entirely.
type Kind uint8

const (
	// KindBitstream indicates the bitstream violated a syntax constraint
	// (an invalid VLC codeword, an out-of-range field).
	KindBitstream Kind = iota
	// KindEOF indicates the source ran out of data mid-syntax-element.
	KindEOF
	// KindUnimplemented indicates a field decoded correctly, but describes
	// a mode this decoder does not reconstruct (see SPEC_FULL.md §9).
	KindUnimplemented
	// KindInternal indicates a bug in the decoder itself, as opposed to a
	// problem with its input.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindBitstream:
		return "bitstream"
	case KindEOF:
		return "eof"
	case KindUnimplemented:
		return "unimplemented"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// DecodeError wraps a decoding failure with the Kind of failure and the
// syntax element being decoded when it happened.
type DecodeError struct {
	Kind    Kind
	Element string
	cause   error
}

func (e *DecodeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("h263dec: %s: %s: %v", e.Kind, e.Element, e.cause)
	}
	return fmt.Sprintf("h263dec: %s: %s", e.Kind, e.Element)
}

func (e *DecodeError) Unwrap() error { return e.cause }

// newDecodeError builds a DecodeError, attaching a stack trace to errs that
// don't already carry one.
func newDecodeError(kind Kind, element string, cause error) *DecodeError {
	if cause != nil {
		if _, ok := cause.(interface{ StackTrace() errors.StackTrace }); !ok {
			cause = errors.WithStack(cause)
		}
	}
	return &DecodeError{Kind: kind, Element: element, cause: cause}
}

var (
	// errInvalidBitstream marks a syntax element whose coded value is
	// reserved or otherwise disallowed.
	errInvalidBitstream = errors.New("invalid bitstream")
	// errUnimplementedDecoding marks a correctly-parsed mode this decoder
	// does not reconstruct.
	errUnimplementedDecoding = errors.New("unimplemented decoding path")
	// errMiddleOfBitstream marks the absence of a picture start code at
	// the reader's current position (spec.md §7 MiddleOfBitstream).
	errMiddleOfBitstream = errors.New("no picture start code at current position")
	// errInvalidGOBHeader marks a GOB header with a reserved or
	// out-of-range field (spec.md §7 InvalidGOBHeader).
	errInvalidGOBHeader = errors.New("invalid GOB header")
	// errInvalidMVD marks a motion vector differential outside its legal
	// range (spec.md §7 InvalidMVD).
	errInvalidMVD = errors.New("invalid motion vector differential")
	// errUncodedIFrameBlocks marks an uncoded (COD=1) macroblock inside an
	// I-picture, which H.263 never permits (spec.md §7
	// UncodedIFrameBlocks).
	errUncodedIFrameBlocks = errors.New("uncoded macroblock in I-picture")
	// errPictureFormatMissing marks a picture whose SourceFormat could not
	// be resolved, carried forward or explicit (spec.md §7
	// PictureFormatMissing).
	errPictureFormatMissing = errors.New("picture format missing")
	// errPictureFormatInvalid marks a SourceFormat that cannot be resolved
	// to concrete pixel dimensions, e.g. SourceFormatReserved (spec.md §7
	// PictureFormatInvalid).
	errPictureFormatInvalid = errors.New("picture format invalid")
)

// IsEOFError reports whether err is, or wraps, an end-of-stream DecodeError.
func IsEOFError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de) && de.Kind == KindEOF
}

// IsMacroblockError reports whether err was raised while decoding a
// macroblock header.
func IsMacroblockError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de) && de.Element == "macroblock"
}

// IsGOBError reports whether err was raised while decoding a group of
// blocks / slice header.
func IsGOBError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de) && (de.Element == "gob" || de.Element == "slice")
}
