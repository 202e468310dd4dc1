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

package errors_test

import (
	"testing"

	"github.com/retroswitch/emotion2k/errors"
	"github.com/retroswitch/emotion2k/test"
)

func TestCuratedMatching(t *testing.T) {
	err := errors.Errorf(errors.AddressDecodeMiss, uint32(0xdeadbeef))
	test.ExpectEquality(t, errors.IsAny(err), true)
	test.ExpectEquality(t, errors.Is(err, errors.AddressDecodeMiss), true)
	test.ExpectEquality(t, errors.Is(err, errors.TLBMiss), false)
	test.ExpectEquality(t, errors.Head(err), errors.AddressDecodeMiss)
}

func TestFatalClassification(t *testing.T) {
	fatal := errors.Errorf(errors.UnimplementedOpcode, uint32(0x7c), uint32(0x1000))
	nonFatal := errors.Errorf(errors.TLBMiss, uint32(0x70000000), 0)

	test.ExpectEquality(t, errors.IsFatal(fatal), true)
	test.ExpectEquality(t, errors.IsFatal(nonFatal), false)
}

func TestHasTraversesWrappedCuratedErrors(t *testing.T) {
	inner := errors.Errorf(errors.TLBMiss, uint32(0x70000000), 0)
	outer := errors.Errorf("loader: could not build identity map: %v", inner)

	test.ExpectEquality(t, errors.Has(outer, errors.TLBMiss), true)
	test.ExpectEquality(t, errors.Has(outer, errors.DivideByZero), false)
}
