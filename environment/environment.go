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

// Package environment describes the context a console instance runs in.
// More than one console can exist at once (a headless instance verifying a
// savestate next to the interactive one, a comparison run); the
// environment's label tells subsystems which instance they belong to, so
// cross-cutting concerns like logging can be limited to the instance the
// user is actually watching.
package environment

import (
	"github.com/retroswitch/emotion2k/hardware/instance"
)

// Label distinguishes console instances from one another.
type Label string

// MainEmulation is the label of the instance the user interacts with.
const MainEmulation = Label("main")

// Environment is the context of a console instance.
type Environment struct {
	ID       Label
	Instance *instance.Instance
}

// NewEnvironment is the preferred method of initialisation for the
// Environment type.
func NewEnvironment(id Label, ins *instance.Instance) *Environment {
	return &Environment{ID: id, Instance: ins}
}

// IsEmulation checks whether the environment is the named instance.
func (env *Environment) IsEmulation(id Label) bool {
	return env.ID == id
}

// AllowLogging reports whether subsystems in this instance should write to
// the central logger. Secondary instances run silent so their repetition
// of the main instance's activity doesn't double every entry.
func (env *Environment) AllowLogging() bool {
	return env.IsEmulation(MainEmulation)
}
