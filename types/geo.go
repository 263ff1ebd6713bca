/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package types

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// Geo represents geo-spatial data, the value of a shape field.
type Geo struct {
	geom.T
}

// MarshalBinary marshals to little endian WKB.
func (v Geo) MarshalBinary() ([]byte, error) {
	if v.T == nil {
		return nil, errors.Errorf("Cannot marshal an empty geo value")
	}
	return wkb.Marshal(v.T, binary.LittleEndian)
}

// MarshalText marshals to GeoJSON.
func (v Geo) MarshalText() ([]byte, error) {
	if v.T == nil {
		return nil, errors.Errorf("Cannot marshal an empty geo value")
	}
	return geojson.Marshal(v.T)
}

// MarshalJSON is the same as MarshalText.
func (v Geo) MarshalJSON() ([]byte, error) {
	return v.MarshalText()
}

// UnmarshalBinary unmarshals the data from WKB.
func (v *Geo) UnmarshalBinary(data []byte) error {
	w, err := wkb.Unmarshal(data)
	if err != nil {
		return errors.Wrapf(err, "while reading WKB")
	}
	v.T = w
	return nil
}

// UnmarshalText parses the data from GeoJSON. Single quotes are accepted in place of double
// quotes, so geometries can be passed on a command line.
func (v *Geo) UnmarshalText(text []byte) error {
	var g geom.T
	text = bytes.ReplaceAll(text, []byte("'"), []byte("\""))
	if err := geojson.Unmarshal(text, &g); err != nil {
		return errors.Wrapf(err, "while reading GeoJSON")
	}
	if g == nil {
		return errors.Errorf("No geometry in %q", text)
	}
	v.T = g
	return nil
}

// UnmarshalJSON is the same as UnmarshalText.
func (v *Geo) UnmarshalJSON(data []byte) error {
	return v.UnmarshalText(data)
}

func (v Geo) String() string {
	return "<geodata>"
}
