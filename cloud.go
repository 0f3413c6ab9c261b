/*
Copyright © 2026 the rrtmio authors.
This file is part of rrtmio.

rrtmio is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

rrtmio is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with rrtmio.  If not, see <http://www.gnu.org/licenses/>.
*/

package rrtmio

import (
	"fmt"

	"github.com/spatialmodel/rrtmio/record"
)

// CloudInput is the content of an IN_CLD_RRTM file, which the solver
// reads when ICLD is 1 or 2.
type CloudInput struct {
	// Method is INFLAG: 0 if the cloud optical depths are given
	// directly, 1 or 2 if they are computed from water paths.
	Method int

	// IceMethod is ICEFLAG and LiquidMethod is LIQFLAG. They select the
	// ice and liquid optical parameterizations when Method is 2.
	IceMethod    int
	LiquidMethod int

	// Layers holds the cloudy layers in file order.
	Layers []CloudLayer
}

// CloudLayer is the cloud in one layer (record C1.2 or C1.3).
type CloudLayer struct {
	// Layer is the 1-based layer number in the matching INPUT_RRTM file.
	Layer int

	// Fraction is the cloud fraction, CLDFRAC.
	Fraction float64

	// WaterPath [g/m2], IceFraction, IceSize [μm] and LiquidSize [μm]
	// are read when Method is 1 or 2.
	WaterPath   float64
	IceFraction float64
	IceSize     float64
	LiquidSize  float64

	// OpticalDepth, SingleScatteringAlbedo and the first two phase
	// function moments are read when Method is 0.
	OpticalDepth           float64
	SingleScatteringAlbedo float64
	Moments                [2]float64
}

var (
	// (3X,I2,4X,I1,4X,I1)
	recCloudControl = record.Define("C1.1",
		record.Int("INFLAG", 4, 2).OneOf(0, 1, 2, 10),
		record.Int("ICEFLAG", 10, 1).Within(0, 3),
		record.Int("LIQFLAG", 15, 1).Within(0, 1),
	)

	// (A1,1X,I3,5ES10.3)
	recCloudPath = cloudSchema("C1.2",
		record.Sci("CLDFRAC", 6, 10, 3).Within(0, 1),
		record.Sci("CWP", 16, 10, 3).AtLeast(0).In("g/m2"),
		record.Sci("FRACICE", 26, 10, 3).Within(0, 1),
		record.Sci("EFFSIZEICE", 36, 10, 3).AtLeast(0).In("μm"),
		record.Sci("EFFSIZELIQ", 46, 10, 3).AtLeast(0).In("μm"),
	)

	// (A1,1X,I3,5ES10.3)
	recCloudOptics = cloudSchema("C1.3",
		record.Sci("CLDFRAC", 6, 10, 3).Within(0, 1),
		record.Sci("TAUCLD", 16, 10, 3).AtLeast(0),
		record.Sci("SSA", 26, 10, 3).Within(0, 1),
		record.Sci("PMOM(0)", 36, 10, 3),
		record.Sci("PMOM(1)", 46, 10, 3),
	)
)

// cloudSchema returns a cloud layer record: a blank TESTCHAR, the layer
// number, then fields.
func cloudSchema(name string, fields ...record.Field) *record.Schema {
	return record.Define(name, append([]record.Field{
		record.Lit(1, " "),
		record.Int("LAY", 3, 3).Within(1, maxLayers),
	}, fields...)...)
}

func cloudRecord(method int) *record.Schema {
	if method == 0 {
		return recCloudOptics
	}
	return recCloudPath
}

// DecodeCloud parses the text of an IN_CLD_RRTM file. The file starts on
// its first line and ends at a line that starts with '%'. INFLAG=10, which
// gives optical properties per band, is not supported.
func DecodeCloud(text string) (*CloudInput, error) {
	d := &decoder{lines: record.NewLines(text, '%')}
	v, n, err := d.read(recCloudControl)
	if err != nil {
		return nil, err
	}
	c := &CloudInput{
		Method:       v.Int("INFLAG"),
		IceMethod:    v.Int("ICEFLAG"),
		LiquidMethod: v.Int("LIQFLAG"),
	}
	if c.Method == 10 {
		return nil, unsupported(recCloudControl, "INFLAG", n, "INFLAG=10 (optical properties per band) is not supported")
	}

	s := cloudRecord(c.Method)
	for !d.lines.AtTerminator() {
		v, _, err := d.read(s)
		if err != nil {
			return nil, err
		}
		l := CloudLayer{Layer: v.Int("LAY"), Fraction: v.Float("CLDFRAC")}
		if c.Method == 0 {
			l.OpticalDepth = v.Float("TAUCLD")
			l.SingleScatteringAlbedo = v.Float("SSA")
			l.Moments = [2]float64{v.Float("PMOM(0)"), v.Float("PMOM(1)")}
		} else {
			l.WaterPath = v.Float("CWP")
			l.IceFraction = v.Float("FRACICE")
			l.IceSize = v.Float("EFFSIZEICE")
			l.LiquidSize = v.Float("EFFSIZELIQ")
		}
		c.Layers = append(c.Layers, l)
	}
	return c, nil
}

// EncodeCloud writes c as the text of an IN_CLD_RRTM file.
func EncodeCloud(c *CloudInput) (string, error) {
	if c == nil {
		return "", fmt.Errorf("rrtmio: nil cloud input")
	}
	if c.Method == 10 {
		return "", &record.SchemaError{
			Location: record.Location{Record: recCloudControl.Name, Field: "INFLAG"},
			Err:      record.ErrUnsupported,
			Reason:   "INFLAG=10 (optical properties per band) is not supported",
		}
	}
	e := new(encoder)
	if err := e.write(recCloudControl, record.Values{
		"INFLAG":  c.Method,
		"ICEFLAG": c.IceMethod,
		"LIQFLAG": c.LiquidMethod,
	}); err != nil {
		return "", err
	}
	s := cloudRecord(c.Method)
	for _, l := range c.Layers {
		v := record.Values{"LAY": l.Layer, "CLDFRAC": l.Fraction}
		if c.Method == 0 {
			v["TAUCLD"] = l.OpticalDepth
			v["SSA"] = l.SingleScatteringAlbedo
			v["PMOM(0)"] = l.Moments[0]
			v["PMOM(1)"] = l.Moments[1]
		} else {
			v["CWP"] = l.WaterPath
			v["FRACICE"] = l.IceFraction
			v["EFFSIZEICE"] = l.IceSize
			v["EFFSIZELIQ"] = l.LiquidSize
		}
		if err := e.write(s, v); err != nil {
			return "", err
		}
	}
	if err := e.write(terminator, nil); err != nil {
		return "", err
	}
	return e.b.String(), nil
}
