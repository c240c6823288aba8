// Copyright (C) 2022-2025, VigilantDoomer
//
// This file is part of VigilantFBSP program.
//
// VigilantFBSP is free software: you can redistribute it
// and/or modify it under the terms of GNU General Public License
// as published by the Free Software Foundation, either version 2 of
// the License, or (at your option) any later version.
//
// VigilantFBSP is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with VigilantFBSP.  If not, see <https://www.gnu.org/licenses/>.
package main

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	faceBSPBuilds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "facebsp_builds_total",
		Help: "The number of face BSP trees built.",
	})

	faceBSPFaces = promauto.NewCounter(prometheus.CounterOpts{
		Name: "facebsp_faces_total",
		Help: "The number of faces fed to face BSP builds.",
	})

	faceBSPLeafs = promauto.NewCounter(prometheus.CounterOpts{
		Name: "facebsp_leafs_total",
		Help: "The number of leaves produced by face BSP builds.",
	})

	faceBSPSplitFaces = promauto.NewCounter(prometheus.CounterOpts{
		Name: "facebsp_split_faces_total",
		Help: "The number of faces clipped in two by partitions.",
	})

	faceBSPForcedSplits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "facebsp_forced_splits_total",
		Help: "The number of partitions placed at block boundaries.",
	})

	faceBSPDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "facebsp_build_duration_seconds",
		Help:    "The time it took to build a face BSP tree.",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
	})

	levelBrushes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "level_brushes_total",
		Help: "The number of brushes loaded from level descriptions.",
	}, []string{brushKindLabel})
)

const (
	brushKindLabel = "kind"
)

func instrumentFaceBSP(stats FaceBSPStats, duration time.Duration) {
	faceBSPBuilds.Inc()
	faceBSPFaces.Add(float64(stats.Faces))
	faceBSPLeafs.Add(float64(stats.Leafs))
	faceBSPSplitFaces.Add(float64(stats.SplitFaces))
	faceBSPForcedSplits.Add(float64(stats.ForcedSplits))
	faceBSPDuration.Observe(duration.Seconds())
}

func instrumentLevelBrush(detail bool) {
	kind := "structural"
	if detail {
		kind = "detail"
	}
	levelBrushes.
		With(prometheus.Labels{brushKindLabel: kind}).
		Inc()
}

// WriteMetrics dumps everything gathered so far in text exposition format
func WriteMetrics(fileName string) error {
	return prometheus.WriteToTextfile(fileName, prometheus.DefaultGatherer)
}
