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

package cpu

import "github.com/retroswitch/emotion2k/logger"

// Kernel service numbers the HLE table recognises. Anything else falls
// through to the guest's own exception handler.
const (
	sysResetEE  = 0x01
	sysSetGsCrt = 0x02
	sysExit     = 0x04
	sysFlushCache = 0x64
	sysGsGetIMR = 0x70
	sysGsPutIMR = 0x71
)

// CRTMode is the display mode requested through SetGsCrt, forwarded to the
// GS privileged registers.
type CRTMode struct {
	Interlaced bool
	Mode       int
	FrameMode  bool
}

// BIOSHLE services the handful of kernel syscalls an ELF booted without a
// full BIOS needs before it can drive the hardware directly. NewPS2
// installs it on every console, whether or not a BIOS image is loaded;
// a call number it does not service goes through the guest's own
// exception vector.
type BIOSHLE struct {
	// SetCRT receives SetGsCrt's arguments, normally wired to the GS
	// privileged register bank.
	SetCRT func(CRTMode)

	// GetIMR/PutIMR expose the GS interrupt mask register.
	GetIMR func() uint64
	PutIMR func(uint64)

	// OnExit is called when the guest requests termination.
	OnExit func()
}

// Handle implements Syscall.
func (b *BIOSHLE) Handle(c *CPU, number int32) bool {
	switch number {
	case sysResetEE:
		// a full EE reset mid-boot is not meaningfully different from the
		// state an ELF boot starts from
		c.GPR.SetLo64(2, 0)
	case sysSetGsCrt:
		if b.SetCRT != nil {
			b.SetCRT(CRTMode{
				Interlaced: c.GPR.GetLo64(4) != 0,
				Mode:       int(c.GPR.GetLo64(5)),
				FrameMode:  c.GPR.GetLo64(6) != 0,
			})
		}
		c.GPR.SetLo64(2, 0)
	case sysExit:
		logger.Log("bios", "guest requested exit")
		if b.OnExit != nil {
			b.OnExit()
		}
	case sysFlushCache:
		// no modelled cache to flush
		c.GPR.SetLo64(2, 0)
	case sysGsGetIMR:
		if b.GetIMR != nil {
			c.GPR.SetLo64(2, b.GetIMR())
		}
	case sysGsPutIMR:
		if b.PutIMR != nil {
			b.PutIMR(c.GPR.GetLo64(4))
		}
		c.GPR.SetLo64(2, 0)
	default:
		return false
	}
	return true
}
