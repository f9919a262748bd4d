// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v with Core Deterministic Encoding.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes one CBOR item into v. Trailing bytes are an error.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// DecodeSequence splits data into consecutive CBOR items and hands each
// raw item to visit. It stops at the first malformed or truncated item
// and returns its error; items before it have already been visited.
func DecodeSequence(data []byte, visit func(item []byte)) error {
	for len(data) > 0 {
		var raw cbor.RawMessage
		rest, err := decMode.UnmarshalFirst(data, &raw)
		if err != nil {
			return err
		}
		visit(raw)
		data = rest
	}
	return nil
}
