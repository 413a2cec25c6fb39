// seehuhn.de/go/fealayout - a feature-definition compiler for OpenType fonts
// Copyright (C) 2022  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package compile

import "fmt"

// Severity distinguishes diagnostics that abort compilation from those
// that merely describe a simplification or a skipped, unimplemented
// feature.
type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Diagnostic is one compiler message. Range is the source span the
// message applies to; it is zero (Start==End==0) for diagnostics that
// describe the file as a whole rather than a specific statement.
type Diagnostic struct {
	Severity Severity
	Message  string
	Range    Range
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// List collects diagnostics in emission order and answers whether any of
// them is severe enough to abort the build.
type List []Diagnostic

func (l *List) add(sev Severity, rng Range, format string, args ...any) {
	*l = append(*l, Diagnostic{Severity: sev, Message: fmt.Sprintf(format, args...), Range: rng})
}

func (l *List) errorf(rng Range, format string, args ...any) {
	l.add(Error, rng, format, args...)
}

func (l *List) warnf(rng Range, format string, args ...any) {
	l.add(Warning, rng, format, args...)
}

// HasErrors reports whether any diagnostic in the list has [Error]
// severity. [Compile] returns a nil *Output exactly when this is true.
func (l List) HasErrors() bool {
	for _, d := range l {
		if d.Severity == Error {
			return true
		}
	}
	return false
}
