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
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/kr/pretty"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/rrtmio"
	"github.com/tealeg/xlsx"
)

const testProfileTOML = `
[Header]
Title = "TEST CASE"
SurfaceTemperature = 288.0
Clouds = 1
NumMolecules = 7

[[Layers]]
Pressure = 1013.0
Temperature = 288.0
[Layers.Gases]
H2O = 2.5e22
CO2 = 7.9e21

[[Layers]]
Pressure = 850.0
Temperature = 278.5
[Layers.Gases]
H2O = 1.2e22
CO2 = 6.1e21

[[Layers]]
Pressure = 700.0
Temperature = 268.0
[Layers.Gases]
H2O = 5.0e21
CO2 = 5.2e21
`

func testProfile() *rrtmio.Profile {
	return &rrtmio.Profile{
		Header: rrtmio.Header{Title: "TEST CASE", SurfaceTemperature: 288.0, Clouds: 1, NumMolecules: 7},
		Layers: []rrtmio.Layer{
			{Pressure: 1013.0, Temperature: 288.0, Gases: map[rrtmio.Gas]float64{rrtmio.H2O: 2.5e22, rrtmio.CO2: 7.9e21}},
			{Pressure: 850.0, Temperature: 278.5, Gases: map[rrtmio.Gas]float64{rrtmio.H2O: 1.2e22, rrtmio.CO2: 6.1e21}},
			{Pressure: 700.0, Temperature: 268.0, Gases: map[rrtmio.Gas]float64{rrtmio.H2O: 5.0e21, rrtmio.CO2: 5.2e21}},
		},
	}
}

const testCloudTOML = `
Method = 2
IceMethod = 1
LiquidMethod = 1

[[Layers]]
Layer = 2
Fraction = 0.5
WaterPath = 20.0
IceFraction = 0.25
IceSize = 30.0
LiquidSize = 10.0
`

func testCloud() *rrtmio.CloudInput {
	return &rrtmio.CloudInput{
		Method:       2,
		IceMethod:    1,
		LiquidMethod: 1,
		Layers: []rrtmio.CloudLayer{
			{Layer: 2, Fraction: 0.5, WaterPath: 20, IceFraction: 0.25, IceSize: 30, LiquidSize: 10},
		},
	}
}

func testResult() *rrtmio.Result {
	return &rrtmio.Result{Bands: []rrtmio.BandFlux{
		{Low: 10, High: 3250, Levels: []rrtmio.LevelFlux{
			{Level: 2, Pressure: 700, Upward: 265.4, Downward: 0, Net: 265.4, HeatingRate: -1.5},
			{Level: 1, Pressure: 850, Upward: 300, Downward: 150, Net: 150, HeatingRate: -2},
			{Level: 0, Pressure: 1013, Upward: 390, Downward: 320, Net: 70, HeatingRate: 0},
		}},
		{Low: 10, High: 350, Levels: []rrtmio.LevelFlux{
			{Level: 2, Pressure: 700, Upward: 80, Downward: 0, Net: 80, HeatingRate: -0.5},
			{Level: 1, Pressure: 850, Upward: 90, Downward: 60, Net: 30, HeatingRate: -0.25},
			{Level: 0, Pressure: 1013, Upward: 100, Downward: 95, Net: 5, HeatingRate: 0.125},
		}},
	}}
}

// setOptions sets every command option except config and LogLevel to its
// default and then applies the given values.
func setOptions(values map[string]interface{}) {
	for _, option := range options {
		if option.name == "config" || option.name == "LogLevel" {
			continue
		}
		Cfg.Set(option.name, option.defaultVal)
	}
	for k, v := range values {
		Cfg.Set(k, v)
	}
}

// execute runs the root command with the given arguments and returns what
// it wrote to standard output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	Root.SetOutput(buf)
	Root.SetArgs(args)
	err := Root.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestVersion(t *testing.T) {
	out, err := execute("version")
	if err != nil {
		t.Fatal(err)
	}
	if want := "rrtmio v" + rrtmio.Version + "\n"; out != want {
		t.Errorf("want %q but have %q", want, out)
	}
}

func TestEncodeDecode(t *testing.T) {
	dir := t.TempDir()
	profileFile := writeFile(t, dir, "profile.toml", testProfileTOML)
	inputRRTM := filepath.Join(dir, "INPUT_RRTM")

	setOptions(map[string]interface{}{
		"ProfileFile": profileFile,
		"OutputFile":  inputRRTM,
	})
	if _, err := execute("encode"); err != nil {
		t.Fatal(err)
	}
	want, err := rrtmio.Encode(testProfile())
	if err != nil {
		t.Fatal(err)
	}
	if have := readFile(t, inputRRTM); have != want {
		t.Errorf("want:\n%s\nhave:\n%s", want, have)
	}

	jsonFile := filepath.Join(dir, "profile.json")
	setOptions(map[string]interface{}{
		"InputFile":  inputRRTM,
		"OutputFile": jsonFile,
		"Format":     "json",
	})
	if _, err := execute("decode"); err != nil {
		t.Fatal(err)
	}
	p := new(rrtmio.Profile)
	if err := readDescription(jsonFile, p); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(p, testProfile()) {
		t.Errorf("decoded profile differs: %v", pretty.Diff(testProfile(), p))
	}

	// The JSON description encodes to the same file.
	setOptions(map[string]interface{}{"ProfileFile": jsonFile})
	out, err := execute("encode")
	if err != nil {
		t.Fatal(err)
	}
	if out != want {
		t.Errorf("want:\n%s\nhave:\n%s", want, out)
	}
}

func TestDecodeTOML(t *testing.T) {
	dir := t.TempDir()
	text, err := rrtmio.Encode(testProfile())
	if err != nil {
		t.Fatal(err)
	}
	inputRRTM := writeFile(t, dir, "INPUT_RRTM", text)
	tomlFile := filepath.Join(dir, "out.toml")
	setOptions(map[string]interface{}{
		"InputFile":  inputRRTM,
		"OutputFile": tomlFile,
	})
	if _, err := execute("decode"); err != nil {
		t.Fatal(err)
	}
	p := new(rrtmio.Profile)
	if err := readDescription(tomlFile, p); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(p, testProfile()) {
		t.Errorf("decoded profile differs: %v", pretty.Diff(testProfile(), p))
	}
}

func TestEncodeQuantize(t *testing.T) {
	dir := t.TempDir()
	rough := strings.Replace(testProfileTOML, "Temperature = 278.5", "Temperature = 278.50004", 1)
	profileFile := writeFile(t, dir, "rough.toml", rough)

	setOptions(map[string]interface{}{"ProfileFile": profileFile})
	if _, err := execute("encode"); err == nil {
		t.Error("want an error for a value that does not read back exactly")
	}

	setOptions(map[string]interface{}{"ProfileFile": profileFile, "Quantize": true})
	out, err := execute("encode")
	if err != nil {
		t.Fatal(err)
	}
	want, err := rrtmio.Encode(testProfile())
	if err != nil {
		t.Fatal(err)
	}
	if out != want {
		t.Errorf("want:\n%s\nhave:\n%s", want, out)
	}
}

func TestEncodeCloud(t *testing.T) {
	dir := t.TempDir()
	profileFile := writeFile(t, dir, "profile.toml", testProfileTOML)
	cloudFile := writeFile(t, dir, "cloud.toml", testCloudTOML)
	cloudRRTM := filepath.Join(dir, "IN_CLD_RRTM")

	setOptions(map[string]interface{}{
		"ProfileFile":     profileFile,
		"OutputFile":      filepath.Join(dir, "INPUT_RRTM"),
		"CloudFile":       cloudFile,
		"CloudOutputFile": cloudRRTM,
	})
	if _, err := execute("encode"); err != nil {
		t.Fatal(err)
	}
	want, err := rrtmio.EncodeCloud(testCloud())
	if err != nil {
		t.Fatal(err)
	}
	if have := readFile(t, cloudRRTM); have != want {
		t.Errorf("want:\n%s\nhave:\n%s", want, have)
	}

	setOptions(map[string]interface{}{
		"InputFile": cloudRRTM,
		"Kind":      "cloud",
	})
	out, err := execute("decode")
	if err != nil {
		t.Fatal(err)
	}
	c := new(rrtmio.CloudInput)
	if err := readDescription(writeFile(t, dir, "cloud2.toml", out), c); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(c, testCloud()) {
		t.Errorf("decoded clouds differ: %v", pretty.Diff(testCloud(), c))
	}
}

func TestEncodeCloudMissingLayer(t *testing.T) {
	dir := t.TempDir()
	profileFile := writeFile(t, dir, "profile.toml", testProfileTOML)
	cloudFile := writeFile(t, dir, "cloud.toml", strings.Replace(testCloudTOML, "Layer = 2", "Layer = 5", 1))
	setOptions(map[string]interface{}{
		"ProfileFile":     profileFile,
		"OutputFile":      filepath.Join(dir, "INPUT_RRTM"),
		"CloudFile":       cloudFile,
		"CloudOutputFile": filepath.Join(dir, "IN_CLD_RRTM"),
	})
	_, err := execute("encode")
	if err == nil || !strings.Contains(err.Error(), "cloud in layer 5 but the profile has 3 layers") {
		t.Errorf("have error %v", err)
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	text, err := rrtmio.Encode(testProfile())
	if err != nil {
		t.Fatal(err)
	}
	canonical := writeFile(t, dir, "canonical", text)
	commented := writeFile(t, dir, "commented", "\n\nwritten by hand\n"+text)

	setOptions(map[string]interface{}{"InputFile": canonical})
	out, err := execute("check")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, canonical+": canonical ") {
		t.Errorf("have %q", out)
	}
	digest := strings.TrimPrefix(strings.TrimSpace(out), canonical+": canonical ")
	if len(digest) != 64 {
		t.Errorf("want a 64-character digest but have %q", digest)
	}

	setOptions(map[string]interface{}{"InputFile": commented})
	out, err = execute("check")
	if err != nil {
		t.Fatal(err)
	}
	if want := commented + ": not canonical from line 1 " + digest + "\n"; out != want {
		t.Errorf("want %q but have %q", want, out)
	}

	setOptions(map[string]interface{}{"InputFile": commented, "Strict": true})
	if _, err = execute("check"); err == nil {
		t.Error("want an error in strict mode")
	}
}

func TestCheckErrors(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad", "$TITLE\n")
	for _, test := range []struct {
		name    string
		options map[string]interface{}
		want    string
	}{
		{
			name:    "no input",
			options: map[string]interface{}{},
			want:    "you need to specify the InputFile",
		},
		{
			name:    "missing input",
			options: map[string]interface{}{"InputFile": filepath.Join(dir, "missing")},
			want:    "the InputFile doesn't exist",
		},
		{
			name:    "kind",
			options: map[string]interface{}{"InputFile": bad, "Kind": "spectrum"},
			want:    `invalid Kind "spectrum"`,
		},
		{
			name:    "truncated",
			options: map[string]interface{}{"InputFile": bad},
			want:    "unexpected end of input",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			setOptions(test.options)
			_, err := execute("check")
			if err == nil || !strings.Contains(err.Error(), test.want) {
				t.Errorf("want error containing %q but have %v", test.want, err)
			}
		})
	}
}

func TestDecodeFormat(t *testing.T) {
	dir := t.TempDir()
	text, err := rrtmio.Encode(testProfile())
	if err != nil {
		t.Fatal(err)
	}
	setOptions(map[string]interface{}{
		"InputFile": writeFile(t, dir, "INPUT_RRTM", text),
		"Format":    "yaml",
	})
	_, err = execute("decode")
	if err == nil || !strings.Contains(err.Error(), `invalid Format "yaml"`) {
		t.Errorf("have error %v", err)
	}
}

func TestSummarize(t *testing.T) {
	have := Summarize(testResult())
	outgoing, surface := 265.4, 70.0
	want := []BandSummary{
		{Low: 10, High: 3250, Outgoing: outgoing, SurfaceNet: surface, Cooling: outgoing - surface, MinHeating: -2, MaxHeating: 0},
		{Low: 10, High: 350, Outgoing: 80, SurfaceNet: 5, Cooling: 75, MinHeating: -0.5, MaxHeating: 0.125},
	}
	if !reflect.DeepEqual(have, want) {
		t.Errorf("summary differs: %v", pretty.Diff(want, have))
	}
}

func TestSummary(t *testing.T) {
	dir := t.TempDir()
	text, err := rrtmio.EncodeResult(testResult())
	if err != nil {
		t.Fatal(err)
	}
	outputRRTM := writeFile(t, dir, "OUTPUT_RRTM", text)
	xlsxFile := filepath.Join(dir, "fluxes.xlsx")
	setOptions(map[string]interface{}{
		"InputFile": outputRRTM,
		"XLSXFile":  xlsxFile,
	})
	out, err := execute("summary")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 3 || lines[0] != summaryHeading {
		t.Fatalf("have summary:\n%s", out)
	}
	if !strings.HasPrefix(lines[1], "   10.0  3250.0") {
		t.Errorf("have row %q", lines[1])
	}

	f, err := xlsx.OpenFile(xlsxFile)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"1 10-3250", "2 10-350"} {
		s, ok := f.Sheet[name]
		if !ok {
			t.Fatalf("missing sheet %s", name)
		}
		if v := s.Cell(0, 0).Value; v != "Level" {
			t.Errorf("%s: want heading Level but have %q", name, v)
		}
		for i, want := range []string{"2", "1", "0"} {
			if v := s.Cell(i+1, 0).Value; v != want {
				t.Errorf("%s row %d: want level %s but have %q", name, i+1, want, v)
			}
		}
	}
}

func TestReadDescriptionUnknownKey(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "typo.toml", strings.Replace(testProfileTOML, "SurfaceTemperature", "SurfaceTemp", 1))
	err := readDescription(path, new(rrtmio.Profile))
	if err == nil || !strings.Contains(err.Error(), "unknown keys Header.SurfaceTemp") {
		t.Errorf("have error %v", err)
	}

	path = writeFile(t, dir, "profile.yaml", "")
	if err := readDescription(path, new(rrtmio.Profile)); err == nil {
		t.Error("want an error for an unknown extension")
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "config.toml", "LogLevel = \"debug\"\n")
	Cfg.Set("config", cfg)
	defer func() {
		Cfg.Set("config", "")
		Cfg.Set("LogLevel", "info")
		setLogLevel("info")
	}()
	if err := setConfig(); err != nil {
		t.Fatal(err)
	}
	if l := Log.(*logrus.Logger).Level; l != logrus.DebugLevel {
		t.Errorf("want log level debug but have %v", l)
	}

	Cfg.Set("config", filepath.Join(dir, "missing.toml"))
	if err := setConfig(); err == nil {
		t.Error("want an error for a missing configuration file")
	}
}

func TestFirstDifference(t *testing.T) {
	for _, test := range []struct {
		a, b string
		want int
	}{
		{"a\nb\n", "a\nb\n", 0},
		{"a\nb\n", "a\nc\n", 2},
		{"a\n", "a\nb\n", 2},
		{"a\nb\n", "a\n", 2},
	} {
		if have := firstDifference(test.a, test.b); have != test.want {
			t.Errorf("%q vs %q: want %d but have %d", test.a, test.b, test.want, have)
		}
	}
}

const testAtmosphereTOML = `
[Header]
Title = "STANDARD"
SurfaceTemperature = 288.0
Clouds = 1

[Atmosphere]
Model = 6
NumMolecules = 7
CO2 = 360.0
Top = 70.0

[Atmosphere.Spacing]
Ratio = 1.05
`

func TestEncodeAtmosphereCloud(t *testing.T) {
	dir := t.TempDir()
	profileFile := writeFile(t, dir, "profile.toml", testAtmosphereTOML)
	// The solver decides how many layers an atmosphere has.
	cloudFile := writeFile(t, dir, "cloud.toml", strings.Replace(testCloudTOML, "Layer = 2", "Layer = 50", 1))
	inputRRTM := filepath.Join(dir, "INPUT_RRTM")
	setOptions(map[string]interface{}{
		"ProfileFile":     profileFile,
		"OutputFile":      inputRRTM,
		"CloudFile":       cloudFile,
		"CloudOutputFile": filepath.Join(dir, "IN_CLD_RRTM"),
	})
	if _, err := execute("encode"); err != nil {
		t.Fatal(err)
	}
	p, err := rrtmio.Decode(readFile(t, inputRRTM))
	if err != nil {
		t.Fatal(err)
	}
	want := &rrtmio.Profile{
		Header: rrtmio.Header{Title: "STANDARD", SurfaceTemperature: 288, Clouds: 1},
		Atmosphere: &rrtmio.Atmosphere{
			Model:        6,
			NumMolecules: 7,
			CO2:          360,
			Top:          70,
			Spacing:      rrtmio.Spacing{Ratio: 1.05},
		},
	}
	if !reflect.DeepEqual(p, want) {
		t.Errorf("%v", pretty.Diff(want, p))
	}
}

func TestDecodeText(t *testing.T) {
	text, err := rrtmio.Encode(testProfile())
	if err != nil {
		t.Fatal(err)
	}
	// The file name is only used in log messages.
	missing := filepath.Join(t.TempDir(), "never-written")
	v, canonical, err := decodeText(text, missing, kindProfile)
	if err != nil {
		t.Fatal(err)
	}
	if canonical != text {
		t.Errorf("want:\n%s\nhave:\n%s", text, canonical)
	}
	if !reflect.DeepEqual(v, testProfile()) {
		t.Errorf("%v", pretty.Diff(testProfile(), v))
	}
	if _, _, err := decodeText(text, missing, "spreadsheet"); err == nil {
		t.Error("want an error for an invalid kind")
	}
}
