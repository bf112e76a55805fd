// Copyright 2026 SCION Association
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package processmetrics exports the scheduling times of the controller
// process. They tell how much CPU the scheduler granted to the packet-in
// workers, independently of whether they used it.
//
// A thread is either running, runnable or sleeping. The time all threads spent
// runnable is core time the process was denied. The available CPU time can be
// derived in queries, for example:
//
//	rate(controller_packet_in_total[1m])
//	  / on (instance, job) group_left ()
//	(go_sched_maxprocs_threads - rate(process_runnable_seconds_total[1m]))
//
// This implementation is restricted to Linux. The generic one does nothing.

//go:build linux

package processmetrics

import (
	"os"
	"runtime"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/procfs"

	"github.com/ringsdn/ringsdn/pkg/log"
	"github.com/ringsdn/ringsdn/pkg/private/serrors"
)

var (
	runningTime = prometheus.NewDesc(
		"process_running_seconds_total",
		"CPU time the process used (running state) since it started (all threads summed).",
		nil, nil,
	)
	runnableTime = prometheus.NewDesc(
		"process_runnable_seconds_total",
		"CPU time the process was denied (runnable state) since it started (all threads summed).",
		nil, nil,
	)
	goCores = prometheus.NewDesc(
		"go_sched_maxprocs_threads",
		"The current runtime.GOMAXPROCS setting.",
		nil, nil,
	)
)

type schedCollector struct {
	pid int

	mu       sync.Mutex
	running  uint64
	runnable uint64
}

// update sums the schedstat of all threads. Threads that vanish between
// listing and reading are skipped; their time is lost until the next scrape.
func (c *schedCollector) update() error {
	threads, err := procfs.AllThreads(c.pid)
	if err != nil {
		return serrors.Wrap("listing threads", err, "pid", c.pid)
	}
	var running, runnable uint64
	for _, t := range threads {
		s, err := t.Schedstat()
		if err != nil {
			continue
		}
		running += s.RunningNanoseconds
		runnable += s.WaitingNanoseconds
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	// Counters must not go backwards when threads disappear.
	c.running = max(c.running, running)
	c.runnable = max(c.runnable, runnable)
	return nil
}

func (c *schedCollector) Describe(ch chan<- *prometheus.Desc) {
	prometheus.DescribeByCollect(c, ch)
}

func (c *schedCollector) Collect(ch chan<- prometheus.Metric) {
	if err := c.update(); err != nil {
		log.Debug("Updating process metrics", "err", err)
	}
	c.mu.Lock()
	running, runnable := c.running, c.runnable
	c.mu.Unlock()

	ch <- prometheus.MustNewConstMetric(runningTime, prometheus.CounterValue,
		float64(running)/1e9)
	ch <- prometheus.MustNewConstMetric(runnableTime, prometheus.CounterValue,
		float64(runnable)/1e9)
	ch <- prometheus.MustNewConstMetric(goCores, prometheus.GaugeValue,
		float64(runtime.GOMAXPROCS(-1)))
}

// Init registers the process collector with reg. Errors can be ignored, the
// controller works without these metrics.
func Init(reg prometheus.Registerer) error {
	c := &schedCollector{pid: os.Getpid()}
	if err := c.update(); err != nil {
		return serrors.Wrap("first update failed", err)
	}
	if err := reg.Register(c); err != nil {
		return serrors.Wrap("registering process metrics", err)
	}
	return nil
}
