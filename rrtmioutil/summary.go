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

	"github.com/gonum/floats"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/rrtmio"
	"github.com/tealeg/xlsx"
)

// BandSummary holds the headline fluxes of one spectral band.
type BandSummary struct {
	// Low and High bound the band [cm-1].
	Low, High float64

	// Outgoing is the upward flux at the top level [W/m2].
	Outgoing float64

	// SurfaceNet is the net flux at the bottom level [W/m2].
	SurfaceNet float64

	// Cooling is the net flux at the top level minus the net flux at the
	// bottom level: the energy the column loses [W/m2].
	Cooling float64

	// MinHeating and MaxHeating bound the heating rates [K/day].
	MinHeating, MaxHeating float64
}

// Summarize returns the headline fluxes of every band in r. The top and
// bottom levels are the ones with the largest and smallest level numbers.
// Bands without levels are skipped.
func Summarize(r *rrtmio.Result) []BandSummary {
	var o []BandSummary
	for _, b := range r.Bands {
		n := len(b.Levels)
		if n == 0 {
			continue
		}
		level := make([]float64, n)
		heating := make([]float64, n)
		for i, l := range b.Levels {
			level[i] = float64(l.Level)
			heating[i] = l.HeatingRate
		}
		top, bottom := b.Levels[floats.MaxIdx(level)], b.Levels[floats.MinIdx(level)]
		o = append(o, BandSummary{
			Low:        b.Low,
			High:       b.High,
			Outgoing:   top.Upward,
			SurfaceNet: bottom.Net,
			Cooling:    top.Net - bottom.Net,
			MinHeating: floats.Min(heating),
			MaxHeating: floats.Max(heating),
		})
		hot := b.Levels[floats.MaxIdx(heating)]
		Log.WithFields(logrus.Fields{
			"band":         fmt.Sprintf("%g-%g cm-1", b.Low, b.High),
			"top net flux": fmt.Sprintf("%.6g", top.NetFluxUnit()),
			"max heating":  fmt.Sprintf("%.6g", hot.HeatingRateUnit()),
			"max heat at":  fmt.Sprintf("%.6g", hot.PressurePa()),
			"levels":       n,
		}).Debug("rrtmio: band")
	}
	return o
}

const summaryHeading = "    LOW    HIGH     OUTGOING   SURFACE NET      COOLING  MIN HEATING  MAX HEATING"

// writeSummary writes s as a table.
func writeSummary(w io.Writer, s []BandSummary) error {
	var b strings.Builder
	b.WriteString(summaryHeading + "\n")
	for _, band := range s {
		fmt.Fprintf(&b, "%7.1f %7.1f %12.5g %13.5g %12.5g %12.5g %12.5g\n",
			band.Low, band.High, band.Outgoing, band.SurfaceNet, band.Cooling, band.MinHeating, band.MaxHeating)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Summary reads the OUTPUT_RRTM file at inputFile and writes a table of
// the headline fluxes of each band to outputFile, or to stdout if
// outputFile is empty. If xlsxFile is not empty, every level of every band
// is also written to an Excel workbook there.
func Summary(stdout io.Writer, inputFile, outputFile, xlsxFile string) error {
	text, err := readInput(inputFile)
	if err != nil {
		return err
	}
	v, _, err := decodeText(text, inputFile, kindResult)
	if err != nil {
		return err
	}
	r := v.(*rrtmio.Result)
	var b strings.Builder
	if err := writeSummary(&b, Summarize(r)); err != nil {
		return err
	}
	if err := writeOutput(stdout, outputFile, []byte(b.String())); err != nil {
		return err
	}
	if xlsxFile == "" {
		return nil
	}
	Log.WithField("file", xlsxFile).Info("rrtmio: writing workbook")
	return writeXLSX(r, xlsxFile)
}

var xlsxHeading = []string{"Level", "Pressure (hPa)", "Upward flux (W/m2)",
	"Downward flux (W/m2)", "Net flux (W/m2)", "Heating rate (K/day)"}

// writeXLSX writes the fluxes in r to an Excel workbook at path, with one
// sheet per band.
func writeXLSX(r *rrtmio.Result, path string) error {
	f := xlsx.NewFile()
	for i, band := range r.Bands {
		// Sheet names must be unique, so bands are numbered.
		sheet, err := f.AddSheet(fmt.Sprintf("%d %g-%g", i+1, band.Low, band.High))
		if err != nil {
			return fmt.Errorf("rrtmio: creating workbook: %v", err)
		}
		row := sheet.AddRow()
		for _, h := range xlsxHeading {
			row.AddCell().SetString(h)
		}
		for _, l := range band.Levels {
			row := sheet.AddRow()
			row.AddCell().SetInt(l.Level)
			for _, x := range []float64{l.Pressure, l.Upward, l.Downward, l.Net, l.HeatingRate} {
				row.AddCell().SetFloat(x)
			}
		}
	}
	if err := f.Save(path); err != nil {
		return fmt.Errorf("rrtmio: writing workbook: %v", err)
	}
	return nil
}
