// This file is part of emotion2k.
//
// emotion2k is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// emotion2k is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with emotion2k.  If not, see <https://www.gnu.org/licenses/>.

// Package modalflag is a wrapper around the standard flag package, adding
// the idea of sub-modes: command-line modes that nest, each with its own
// flag set (emotion2k RUN -display ..., emotion2k DEBUG ...). After each
// Parse the caller inspects Mode and descends with NewMode, building the
// mode path one level at a time.
package modalflag

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// ParseResult is the outcome of a Parse.
type ParseResult int

const (
	// ParseContinue: the arguments parsed cleanly; the program should
	// carry on with Mode and RemainingArgs.
	ParseContinue ParseResult = iota

	// ParseHelp: help was requested and printed; the program should exit.
	ParseHelp

	// ParseError: the arguments did not parse.
	ParseError
)

// Modes is the parser state for one level of the mode hierarchy.
type Modes struct {
	// Output is where help text is written. Must be set before Parse.
	Output io.Writer

	args      []string
	flags     *flag.FlagSet
	subModes  []string
	path      []string
	mode      string
	remaining []string
}

// NewArgs starts a fresh parse of the given argument list (normally
// os.Args[1:] at the top level).
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.flags = flag.NewFlagSet("", flag.ContinueOnError)
	md.flags.SetOutput(io.Discard)
	md.subModes = nil
	md.remaining = nil
	md.mode = ""
}

// NewMode descends one level: the current mode joins the path and the
// remaining arguments become the new argument list.
func (md *Modes) NewMode() {
	if md.mode != "" {
		md.path = append(md.path, md.mode)
	}
	md.NewArgs(md.remaining)
}

// AddSubModes declares the valid sub-modes at this level. The first is the
// default when no mode argument is given.
func (md *Modes) AddSubModes(modes ...string) {
	md.subModes = append(md.subModes, modes...)
}

// AddBool adds a boolean flag to this level's flag set.
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.flags.Bool(name, value, usage)
}

// AddString adds a string flag to this level's flag set.
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.flags.String(name, value, usage)
}

// AddInt adds an integer flag to this level's flag set.
func (md *Modes) AddInt(name string, value int, usage string) *int {
	return md.flags.Int(name, value, usage)
}

// Parse processes the current argument list: flags first, then an optional
// sub-mode selector.
func (md *Modes) Parse() (ParseResult, error) {
	if len(md.args) > 0 && (md.args[0] == "-help" || md.args[0] == "--help") {
		md.printHelp()
		return ParseHelp, nil
	}

	if err := md.flags.Parse(md.args); err != nil {
		if err == flag.ErrHelp {
			md.printHelp()
			return ParseHelp, nil
		}
		return ParseError, err
	}
	md.remaining = md.flags.Args()

	if len(md.subModes) > 0 {
		md.mode = md.subModes[0]
		if len(md.remaining) > 0 {
			for _, m := range md.subModes {
				if strings.EqualFold(m, md.remaining[0]) {
					md.mode = m
					md.remaining = md.remaining[1:]
					break
				}
			}
		}
	}

	return ParseContinue, nil
}

func (md *Modes) printHelp() {
	hasFlags := false
	md.flags.VisitAll(func(*flag.Flag) { hasFlags = true })

	if !hasFlags && len(md.subModes) == 0 {
		fmt.Fprint(md.Output, "No help available\n")
		return
	}

	fmt.Fprint(md.Output, "Usage:\n")
	if hasFlags {
		md.flags.SetOutput(md.Output)
		md.flags.PrintDefaults()
		md.flags.SetOutput(io.Discard)
	}
	if hasFlags && len(md.subModes) > 0 {
		fmt.Fprint(md.Output, "\n")
	}
	if len(md.subModes) > 0 {
		fmt.Fprintf(md.Output, "  available sub-modes: %s\n    default: %s\n",
			strings.Join(md.subModes, ", "), md.subModes[0])
	}
}

// Mode returns the sub-mode the last Parse selected; the empty string when
// this level declared no sub-modes.
func (md *Modes) Mode() string {
	return md.mode
}

// Path returns the modes already descended through, slash-separated.
func (md *Modes) Path() string {
	return strings.Join(md.path, "/")
}

// RemainingArgs returns the arguments left over after flags and the mode
// selector have been consumed.
func (md *Modes) RemainingArgs() []string {
	return md.remaining
}

// String returns the full mode path including the current mode, for use in
// error messages.
func (md *Modes) String() string {
	if md.mode == "" {
		return md.Path()
	}
	if len(md.path) == 0 {
		return md.mode
	}
	return md.Path() + "/" + md.mode
}
