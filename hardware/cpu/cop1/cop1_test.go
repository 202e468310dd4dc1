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

package cop1_test

import (
	"testing"

	"github.com/retroswitch/emotion2k/hardware/cpu/cop1"
	"github.com/retroswitch/emotion2k/test"
)

func TestConvertWordToSingle(t *testing.T) {
	c := cop1.New()

	c.SetInt(4, -1234)
	c.CvtSW(5, 4)
	test.ExpectEquality(t, c.Float(5), float32(-1234))

	c.SetFloat(6, 99.75)
	c.CvtWS(7, 6)
	test.ExpectEquality(t, c.Int(7), int32(99))
}

func TestArithmetic(t *testing.T) {
	c := cop1.New()

	c.SetFloat(1, 1.5)
	c.SetFloat(2, 2.25)

	c.Add(3, 1, 2)
	test.ExpectEquality(t, c.Float(3), float32(3.75))
	c.Sub(3, 2, 1)
	test.ExpectEquality(t, c.Float(3), float32(0.75))
	c.Mul(3, 1, 2)
	test.ExpectEquality(t, c.Float(3), float32(3.375))
	c.Neg(3, 1)
	test.ExpectEquality(t, c.Float(3), float32(-1.5))
}

func TestAccumulator(t *testing.T) {
	c := cop1.New()

	c.SetFloat(1, 2)
	c.SetFloat(2, 3)
	c.Adda(1, 2) // acc = 5
	c.SetFloat(4, 10)
	c.SetFloat(5, 2)
	c.Madd(6, 4, 5) // 5 + 20
	test.ExpectEquality(t, c.Float(6), float32(25))
	c.Msub(7, 4, 5) // 5 - 20
	test.ExpectEquality(t, c.Float(7), float32(-15))
}

func TestConditionFlag(t *testing.T) {
	c := cop1.New()

	c.SetFloat(1, 1)
	c.SetFloat(2, 2)

	c.CompareLT(1, 2)
	test.ExpectEquality(t, c.Condition(), true)
	c.CompareLT(2, 1)
	test.ExpectEquality(t, c.Condition(), false)
	c.CompareEQ(1, 1)
	test.ExpectEquality(t, c.Condition(), true)

	test.ExpectEquality(t, c.ControlStatus(), uint32(1<<23))
	c.SetCondition(false)
	test.ExpectEquality(t, c.ControlStatus(), uint32(0))
}
