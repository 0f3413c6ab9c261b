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

package rrtmioutil

import (
	"fmt"
	"io"
	"strings"

	"github.com/ctessum/unit"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/rrtmio"
	"github.com/spatialmodel/rrtmio/internal/hash"
)

// Encode reads the profile description at profileFile and writes it as an
// INPUT_RRTM file to outputFile, or to stdout if outputFile is empty. If
// cloudFile is not empty, the cloud description it names is written as an
// IN_CLD_RRTM file to cloudOutputFile. If quantize is true, values are
// rounded to the precision of their fields before writing.
func Encode(stdout io.Writer, profileFile, outputFile, cloudFile, cloudOutputFile string, quantize bool) error {
	p := new(rrtmio.Profile)
	if err := readDescription(profileFile, p); err != nil {
		return err
	}
	if quantize {
		var err error
		if p, err = rrtmio.Quantize(p); err != nil {
			return err
		}
	}
	text, err := rrtmio.Encode(p)
	if err != nil {
		return err
	}
	logProfile(p).Info("rrtmio: writing profile")
	if err := writeOutput(stdout, outputFile, []byte(text)); err != nil {
		return err
	}

	if cloudFile == "" {
		return nil
	}
	c := new(rrtmio.CloudInput)
	if err := readDescription(cloudFile, c); err != nil {
		return err
	}
	if err := checkCloudLayers(c, p); err != nil {
		return err
	}
	if p.Header.Clouds == 0 {
		Log.WithField("file", cloudOutputFile).Warn("rrtmio: writing a cloud file for a profile with ICLD=0; the solver will not read it")
	}
	text, err = rrtmio.EncodeCloud(c)
	if err != nil {
		return err
	}
	Log.WithFields(logrus.Fields{
		"file":         cloudOutputFile,
		"cloud layers": len(c.Layers),
	}).Info("rrtmio: writing clouds")
	return writeOutput(stdout, cloudOutputFile, []byte(text))
}

// checkCloudLayers makes sure every cloudy layer exists in the profile.
// The layers of an atmosphere are only known to the solver.
func checkCloudLayers(c *rrtmio.CloudInput, p *rrtmio.Profile) error {
	if p.Atmosphere != nil {
		return nil
	}
	for _, l := range c.Layers {
		if l.Layer > len(p.Layers) {
			return fmt.Errorf("rrtmio: cloud in layer %d but the profile has %d layers", l.Layer, len(p.Layers))
		}
	}
	return nil
}

// Decode reads inputFile, a file of the given kind, and writes its content
// as a description in the given format to outputFile, or to stdout if
// outputFile is empty.
func Decode(stdout io.Writer, inputFile, outputFile, kind, format string) error {
	text, err := readInput(inputFile)
	if err != nil {
		return err
	}
	v, _, err := decodeText(text, inputFile, kind)
	if err != nil {
		return err
	}
	var b strings.Builder
	if err := writeDescription(&b, v, format); err != nil {
		return err
	}
	return writeOutput(stdout, outputFile, []byte(b.String()))
}

// decodeText decodes text, the contents of inputFile, as a file of the
// given kind and returns its content along with the text the content
// encodes to.
func decodeText(text, inputFile, kind string) (interface{}, string, error) {
	switch kind {
	case kindProfile:
		p, err := rrtmio.Decode(text)
		if err != nil {
			return nil, "", err
		}
		logProfile(p).WithField("file", inputFile).Info("rrtmio: read profile")
		canonical, err := rrtmio.Encode(p)
		return p, canonical, err
	case kindCloud:
		c, err := rrtmio.DecodeCloud(text)
		if err != nil {
			return nil, "", err
		}
		Log.WithFields(logrus.Fields{
			"file":         inputFile,
			"cloud layers": len(c.Layers),
		}).Info("rrtmio: read clouds")
		canonical, err := rrtmio.EncodeCloud(c)
		return c, canonical, err
	case kindResult:
		r, err := rrtmio.DecodeResult(text)
		if err != nil {
			return nil, "", err
		}
		Log.WithFields(logrus.Fields{
			"file":  inputFile,
			"bands": len(r.Bands),
		}).Info("rrtmio: read result")
		canonical, err := rrtmio.EncodeResult(r)
		return r, canonical, err
	default:
		return nil, "", fmt.Errorf("rrtmio: invalid kind %q", kind)
	}
}

// logProfile returns a logger carrying a summary of p.
func logProfile(p *rrtmio.Profile) logrus.FieldLogger {
	fields := logrus.Fields{
		"title":  strings.TrimSpace(p.Header.Title),
		"layers": len(p.Layers),
	}
	if len(p.Layers) > 0 {
		depth := make([]*unit.Unit, len(p.Layers))
		for i, l := range p.Layers {
			depth[i] = l.ThicknessM()
		}
		fields["surface pressure"] = fmt.Sprintf("%.6g", p.Layers[0].PressurePa())
		fields["column depth"] = fmt.Sprintf("%.6g", unit.Add(depth...))
	}
	if len(p.CrossSections) > 0 {
		fields["cross sections"] = len(p.CrossSections)
	}
	if a := p.Atmosphere; a != nil {
		fields["model"] = a.Model
		fields["levels"] = len(a.Levels)
		if len(a.CrossSections) > 0 {
			fields["cross sections"] = len(a.CrossSections)
		}
	}
	return Log.WithFields(fields)
}

// Check reads inputFile, a file of the given kind, writes it back and
// reports to stdout whether the two texts are identical, along with a
// digest of the canonical text. If strict is true, a difference is an
// error.
func Check(stdout io.Writer, inputFile, kind string, strict bool) error {
	text, err := readInput(inputFile)
	if err != nil {
		return err
	}
	_, canonical, err := decodeText(text, inputFile, kind)
	if err != nil {
		return err
	}
	digest := hash.Hash(canonical)

	line := firstDifference(text, canonical)
	if line == 0 {
		fmt.Fprintf(stdout, "%s: canonical %s\n", inputFile, digest)
		return nil
	}
	fmt.Fprintf(stdout, "%s: not canonical from line %d %s\n", inputFile, line, digest)
	if strict {
		return fmt.Errorf("rrtmio: %s is not in canonical form; the first difference is on line %d", inputFile, line)
	}
	return nil
}

// firstDifference returns the 1-based number of the first line where a and
// b differ, or 0 if they are identical.
func firstDifference(a, b string) int {
	if a == b {
		return 0
	}
	al, bl := strings.Split(a, "\n"), strings.Split(b, "\n")
	for i := range al {
		if i >= len(bl) || al[i] != bl[i] {
			return i + 1
		}
	}
	return len(al) + 1
}
