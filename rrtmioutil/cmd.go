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

// Package rrtmioutil contains the command-line interface to package rrtmio.
package rrtmioutil

import (
	"fmt"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/rrtmio"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to rrtmio.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel is the minimum severity of the progress messages
              written to standard error: one of debug, info, warning or error.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "ProfileFile",
			usage: `
              ProfileFile is the path to a TOML or JSON description of the
              atmospheric profile to write. The format is chosen by the file
              extension (.toml or .json).`,
			shorthand:  "p",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{encodeCmd.Flags()},
		},
		{
			name: "CloudFile",
			usage: `
              CloudFile is the path to a TOML or JSON description of the
              cloud layers to write alongside the profile. If it is empty,
              no cloud file is written.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{encodeCmd.Flags()},
		},
		{
			name: "Quantize",
			usage: `
              Quantize specifies whether to round every value to the
              precision of its field before writing, instead of rejecting
              values that would not read back exactly.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{encodeCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path to write the result to. If it is empty,
              the result is written to standard output. It can contain
              environment variables.`,
			shorthand:  "o",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{encodeCmd.Flags(), decodeCmd.Flags(), summaryCmd.Flags()},
		},
		{
			name: "CloudOutputFile",
			usage: `
              CloudOutputFile is the path the cloud file is written to when
              CloudFile is set.`,
			defaultVal: "IN_CLD_RRTM",
			flagsets:   []*pflag.FlagSet{encodeCmd.Flags()},
		},
		{
			name: "InputFile",
			usage: `
              InputFile is the path to a file in the solver's fixed-column
              format. It can contain environment variables.`,
			shorthand:  "i",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{decodeCmd.Flags(), checkCmd.Flags(), summaryCmd.Flags()},
		},
		{
			name: "Kind",
			usage: `
              Kind is the kind of file InputFile holds: profile (INPUT_RRTM),
              cloud (IN_CLD_RRTM) or result (OUTPUT_RRTM).`,
			shorthand:  "k",
			defaultVal: "profile",
			flagsets:   []*pflag.FlagSet{decodeCmd.Flags(), checkCmd.Flags()},
		},
		{
			name: "Format",
			usage: `
              Format is the description format to write: toml or json.`,
			shorthand:  "f",
			defaultVal: "toml",
			flagsets:   []*pflag.FlagSet{decodeCmd.Flags()},
		},
		{
			name: "XLSXFile",
			usage: `
              XLSXFile, if set, is the path of an Excel workbook to write the
              fluxes to, with one sheet per band.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{summaryCmd.Flags()},
		},
		{
			name: "Strict",
			usage: `
              Strict specifies whether check should fail when the file is not
              in canonical form, rather than only reporting it.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{checkCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("RRTMIO")
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(encodeCmd)
	Root.AddCommand(decodeCmd)
	Root.AddCommand(checkCmd)
	Root.AddCommand(summaryCmd)
}

// setConfig reads the configuration file, if one is specified, and sets
// the log level.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("rrtmio: problem reading configuration file: %v", err)
		}
	}
	return setLogLevel(Cfg.GetString("LogLevel"))
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "rrtmio",
	Short: "Read and write RRTM longwave input and output files.",
	Long: `rrtmio converts between the fixed-column text files of the RRTM longwave
radiative transfer solver and TOML or JSON descriptions of their contents.
Use the subcommands specified below to access the functionality.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'RRTMIO_var' where 'var' is the
name of the variable to be set. File paths are allowed to contain environment
variables within them.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of rrtmio.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "rrtmio v%s\n", rrtmio.Version)
	},
	DisableAutoGenTag: true,
}

// encodeCmd writes solver input files from descriptions.
var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Write solver input files from descriptions.",
	Long: `encode reads the TOML or JSON profile description at ProfileFile and
writes it as an INPUT_RRTM file. If CloudFile is set, the cloud description it
names is written as an IN_CLD_RRTM file to CloudOutputFile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		profileFile, err := checkInputFile(Cfg.GetString("ProfileFile"), "ProfileFile")
		if err != nil {
			return err
		}
		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		var cloudFile, cloudOutputFile string
		if f := Cfg.GetString("CloudFile"); f != "" {
			if cloudFile, err = checkInputFile(f, "CloudFile"); err != nil {
				return err
			}
			if cloudOutputFile, err = checkOutputFile(Cfg.GetString("CloudOutputFile")); err != nil {
				return err
			}
			if cloudOutputFile == "" {
				return fmt.Errorf("rrtmio: CloudOutputFile must be set when CloudFile is")
			}
		}
		return Encode(cmd.OutOrStdout(), profileFile, outputFile, cloudFile, cloudOutputFile, Cfg.GetBool("Quantize"))
	},
	DisableAutoGenTag: true,
}

// decodeCmd converts a solver file into a description.
var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Convert a solver file into a description.",
	Long: `decode reads InputFile, a file of the given Kind, and writes its contents
as a TOML or JSON description.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile, err := checkInputFile(Cfg.GetString("InputFile"), "InputFile")
		if err != nil {
			return err
		}
		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		kind, err := checkKind(Cfg.GetString("Kind"))
		if err != nil {
			return err
		}
		format, err := checkFormat(Cfg.GetString("Format"))
		if err != nil {
			return err
		}
		return Decode(cmd.OutOrStdout(), inputFile, outputFile, kind, format)
	},
	DisableAutoGenTag: true,
}

// checkCmd reports whether a solver file is in canonical form.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that a solver file reads and writes back unchanged.",
	Long: `check reads InputFile, a file of the given Kind, writes it back and
reports whether the result is identical to the input. Files written by encode
are always identical. A digest of the canonical text is printed so that
equivalent inputs can be recognized.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile, err := checkInputFile(Cfg.GetString("InputFile"), "InputFile")
		if err != nil {
			return err
		}
		kind, err := checkKind(Cfg.GetString("Kind"))
		if err != nil {
			return err
		}
		return Check(cmd.OutOrStdout(), inputFile, kind, Cfg.GetBool("Strict"))
	},
	DisableAutoGenTag: true,
}

// summaryCmd summarizes a solver output file.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize the fluxes in a solver output file.",
	Long: `summary reads the OUTPUT_RRTM file at InputFile and writes a table with
one row per band giving the outgoing flux at the top of the atmosphere, the net
flux at the surface and the range of heating rates. If XLSXFile is set, every
level of every band is also written to an Excel workbook.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile, err := checkInputFile(Cfg.GetString("InputFile"), "InputFile")
		if err != nil {
			return err
		}
		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		xlsxFile, err := checkOutputFile(Cfg.GetString("XLSXFile"))
		if err != nil {
			return err
		}
		return Summary(cmd.OutOrStdout(), inputFile, outputFile, xlsxFile)
	},
	DisableAutoGenTag: true,
}
