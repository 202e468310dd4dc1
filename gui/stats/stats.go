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

// Package stats launches the live performance dashboard: a small HTTP
// server charting the process's runtime behaviour while the emulation
// runs, plus a periodic log line summarising the emulation-side counters
// (EE cycle count, scheduler backlog) that the runtime view can't see.
package stats

import (
	"time"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"

	"github.com/retroswitch/emotion2k/hardware"
	"github.com/retroswitch/emotion2k/logger"
)

// Launch starts the dashboard server and the emulation-counter sampler.
// It returns immediately; the server lives until the process exits.
func Launch(console *hardware.PS2) {
	viewer.SetConfiguration(viewer.WithAddr("localhost:12600"))

	mgr := statsview.New()
	go func() {
		// Start blocks serving HTTP
		_ = mgr.Start()
	}()

	go func() {
		tick := time.NewTicker(5 * time.Second)
		defer tick.Stop()
		for range tick.C {
			logger.Logf("stats", "ee cycle %d, pending events %d",
				console.Scheduler.EECycle(), console.Scheduler.Pending())
		}
	}()

	logger.Log("stats", "dashboard listening on localhost:12600/debug/statsview")
}
