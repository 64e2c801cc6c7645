/*
Copyright © 2013 the InMAP authors.
This file is part of laharz.

laharz is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

laharz is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with laharz.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package laharzutil provides the command-line driver, configuration
// handling, and batch I/O around the laharz inundation engine.
package laharzutil

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
type Cfg struct {
	*viper.Viper

	// inputFiles holds the names of the configuration options that are input
	// files.
	inputFiles []string

	// outputFiles holds the names of the configuration options that are output
	// files.
	outputFiles []string

	Root, runCmd, versionCmd *cobra.Command

	Log *logrus.Logger
}

// InputFiles returns the names of the configuration options that are input
// files.
func (cfg *Cfg) InputFiles() []string { return cfg.inputFiles }

// OutputFiles returns the names of the configuration options that are output
// files.
func (cfg *Cfg) OutputFiles() []string { return cfg.outputFiles }

// version is set by the build, following the teacher's convention of a
// package-level build-stamped version string.
var version = "0.0.0-dev"

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
	isInputFile             bool
	isOutputFile            bool
}

// InitializeConfig builds the command tree and the declarative flag
// table that backs it, following the same options-table pattern as the
// teacher's inmaputil.InitializeConfig.
func InitializeConfig() *Cfg {
	cfg := &Cfg{
		Viper: viper.New(),
		Log:   logrus.New(),
	}

	cfg.Root = &cobra.Command{
		Use:   "laharz",
		Short: "An energy-cone lahar inundation model.",
		Long: `laharz predicts the ground footprint of a volcanic mudflow (lahar)
given a filled DEM, a D8 flow-direction raster, and a set of source points
with estimated flow volumes.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'LAHARZ_var' where 'var' is
the name of the variable to be set. Refer to
https://github.com/spf13/viper for additional configuration information.`,
		DisableAutoGenTag: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return setConfig(cfg)
		},
	}

	cfg.versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Long:  "version prints the version number of this build of laharz.",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("laharz v%s\n", version)
		},
		DisableAutoGenTag: true,
	}

	cfg.runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the inundation model over a coordinate file.",
		Long: `run reads a filled DEM and D8 raster, computes inundation rasters for
every source point in the coordinate file, and writes one output file per
point.`,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cfg)
		},
	}

	cfg.Root.AddCommand(cfg.versionCmd)
	cfg.Root.AddCommand(cfg.runCmd)

	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets                []*pflag.FlagSet
		isInputFile             bool
		isOutputFile            bool
	}{
		{
			name:        "config",
			usage:       `config specifies the configuration file location.`,
			defaultVal:  "",
			isInputFile: true,
			flagsets:    []*pflag.FlagSet{cfg.Root.PersistentFlags()},
		},
		{
			name: "DEMFile",
			usage: `DEMFile is the path to the filled DEM raster, whose name (before any
extension) must end in "fill"; the companion D8 raster is located by
replacing that suffix with "dir" in the same directory.
`,
			isInputFile: true,
			defaultVal:  "",
			flagsets:    []*pflag.FlagSet{cfg.runCmd.Flags()},
		},
		{
			name:        "CoordinateFile",
			usage:       `CoordinateFile is the path to the source point coordinate file.`,
			isInputFile: true,
			defaultVal:  "",
			flagsets:    []*pflag.FlagSet{cfg.runCmd.Flags()},
		},
		{
			name: "Volume",
			usage: `Volume, if zero or greater, overrides the volume given in the third
column of the coordinate file for every source point.
`,
			defaultVal: -1.0,
			flagsets:   []*pflag.FlagSet{cfg.runCmd.Flags()},
		},
		{
			name:       "ConfidenceLevel",
			usage:      `ConfidenceLevel is the two-tailed confidence percentage used for the area regression: one of 50, 70, 80, 90, 95, 97.5, 99.`,
			defaultVal: 95.0,
			flagsets:   []*pflag.FlagSet{cfg.runCmd.Flags()},
		},
		{
			name:         "OutputDir",
			usage:        `OutputDir is the directory output files are written to. Defaults to a "stream" subdirectory next to DEMFile.`,
			defaultVal:   "",
			isOutputFile: true,
			flagsets:     []*pflag.FlagSet{cfg.runCmd.Flags()},
		},
		{
			name:       "OutputType",
			usage:      `OutputType is either "raster" (one GeoTIFF-style raster per point) or "vector" (one shapefile per point).`,
			defaultVal: "vector",
			flagsets:   []*pflag.FlagSet{cfg.runCmd.Flags()},
		},
		{
			name:        "LogFile",
			usage:       `LogFile, if set, is the path log output is written to instead of standard error.`,
			defaultVal:  "",
			isOutputFile: true,
			flagsets:    []*pflag.FlagSet{cfg.runCmd.Flags()},
		},
		{
			name:       "NumProcessors",
			usage:      `NumProcessors is the number of source points processed concurrently.`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{cfg.runCmd.Flags()},
		},
	}

	cfg.SetEnvPrefix("LAHARZ")
	cfg.AutomaticEnv()

	for _, option := range options {
		if option.isInputFile {
			cfg.inputFiles = append(cfg.inputFiles, option.name)
		}
		if option.isOutputFile {
			cfg.outputFiles = append(cfg.outputFiles, option.name)
		}
		for i, set := range option.flagsets {
			if i != 0 {
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch v := option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, v, option.usage)
				} else {
					set.StringP(option.name, option.shorthand, v, option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, v, option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, v, option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, v, option.usage)
				} else {
					set.IntP(option.name, option.shorthand, v, option.usage)
				}
			case map[string]string:
				b := bytes.NewBuffer(nil)
				json.NewEncoder(b).Encode(v)
				if option.shorthand == "" {
					set.String(option.name, b.String(), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, b.String(), option.usage)
				}
			default:
				panic(fmt.Errorf("laharzutil: invalid option default type: %T", option.defaultVal))
			}
			cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
	return cfg
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig(cfg *Cfg) error {
	if cfgpath := cfg.GetString("config"); cfgpath != "" {
		cfg.SetConfigFile(cfgpath)
		if err := cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("laharzutil: problem reading configuration file: %w", err)
		}
	}
	return nil
}
