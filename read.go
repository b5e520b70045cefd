// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package statedict

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// Load reads and parses a state-dict JSON file, returning the ordered
// name→Tensor dictionary it describes.
//
// The file is closed on every exit path. On failure no dictionary is
// returned, not even a partial one.
func Load(path string) (*Dict, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open state dict: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses a state-dict JSON document from "r", returning the
// ordered name→Tensor dictionary it describes.
//
// The document must hold exactly one top-level object of the form
//
//	{"<name>": [<shape>, <data>], ...}
//
// where <shape> is an array of non-negative integers (empty for a
// scalar) and <data> is a nested array of numbers with exactly
// product(<shape>) leaves, or a single bare number when the element
// count is 1.
//
// Failures are reported as *SyntaxError (malformed JSON), *SchemaError
// (well-formed JSON outside the grammar above, including duplicate
// parameter names) or *ShapeError (shape/data element count mismatch).
// All are fatal: the first error aborts the parse and no partial
// dictionary is exposed.
//
// Each call uses fresh parse state, so concurrent calls on different
// readers are independent and need no synchronization.
//
// Decode reads "r" to completion and makes no attempt to limit the
// amount of data consumed. The caller is responsible for guarding
// against oversized or malicious inputs, for example with an
// io.LimitedReader.
func Decode(r io.Reader) (*Dict, error) {
	in := newInterpreter()
	if err := tokenize(r, in); err != nil {
		return nil, err
	}
	return in.dict, nil
}

// frame tracks one open container while pumping tokens: whether it is
// an object or an array, how many members/elements it has seen, and,
// for objects, whether the next string token is a member name.
type frame struct {
	object  bool
	count   int
	keyNext bool
}

// tokenize pulls tokens from a JSON decoder and pushes them into "h" as
// primitive parse events, until end of input or the first error. It
// enforces exactly one top-level value per input.
func tokenize(r io.Reader, h Handler) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var frames []frame
	done := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			if !done {
				return &SyntaxError{Offset: dec.InputOffset(), Err: io.ErrUnexpectedEOF}
			}
			return nil
		}
		if err != nil {
			return syntaxError(dec, err)
		}
		if done {
			return &SyntaxError{Offset: dec.InputOffset(), Err: errors.New("unexpected trailing data")}
		}

		switch tok := tok.(type) {
		case json.Delim:
			switch tok {
			case '{', '[':
				if len(frames) > 0 && !frames[len(frames)-1].object {
					frames[len(frames)-1].count++
				}
				frames = append(frames, frame{object: tok == '{', keyNext: tok == '{'})
				if tok == '{' {
					err = h.BeginObject()
				} else {
					err = h.BeginArray()
				}
			case '}', ']':
				closed := frames[len(frames)-1]
				frames = frames[:len(frames)-1]
				if closed.object {
					err = h.EndObject(closed.count)
				} else {
					err = h.EndArray(closed.count)
				}
				if len(frames) == 0 {
					done = true
				} else if parent := &frames[len(frames)-1]; parent.object {
					parent.keyNext = true
				}
			}
		case string:
			if len(frames) > 0 && frames[len(frames)-1].object && frames[len(frames)-1].keyNext {
				top := &frames[len(frames)-1]
				top.keyNext = false
				top.count++
				err = h.Key(tok)
				break
			}
			err = &SchemaError{Event: fmt.Sprintf("string %q", tok)}
		case json.Number:
			if err = h.Number(tok); err == nil {
				scalarDone(frames, &done)
			}
		case bool:
			err = &SchemaError{Event: fmt.Sprintf("%t", tok)}
		case nil:
			err = &SchemaError{Event: "null"}
		}
		if err != nil {
			return err
		}
	}
}

// scalarDone records the completion of a non-container value in the
// enclosing frame's bookkeeping.
func scalarDone(frames []frame, done *bool) {
	if len(frames) == 0 {
		*done = true
		return
	}
	top := &frames[len(frames)-1]
	if top.object {
		top.keyNext = true
	} else {
		top.count++
	}
}

func syntaxError(dec *json.Decoder, err error) *SyntaxError {
	offset := dec.InputOffset()
	var jsonErr *json.SyntaxError
	if errors.As(err, &jsonErr) {
		offset = jsonErr.Offset
	}
	return &SyntaxError{Offset: offset, Err: err}
}
