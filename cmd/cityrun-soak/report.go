package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/cityrun/ecs"
	"github.com/plus3/cityrun/internal/runner"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Seed     uint64
	MaxCoins int
	Hold     string

	// Results
	TotalTicks uint64
	TotalTime  time.Duration
	TickTime   Stats

	Score     int
	Collected uint64
	Recycled  uint64
	Spawned   uint64
	Skipped   uint64
	LiveCoins int
	PeakCoins int

	Entities   int
	Archetypes int
	Systems    []ecs.SystemStats

	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]
	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

func (r *Report) collect(session *runner.Session) {
	counters := session.Counters()
	spawner := session.Spawner()
	stats := session.Storage().CollectStats()

	r.Score = session.Score()
	r.Collected = counters.Collected
	r.Recycled = counters.Recycled
	r.PeakCoins = counters.PeakCoins
	r.Spawned = spawner.Spawned
	r.Skipped = spawner.Skipped
	r.LiveCoins = len(session.Coins())
	r.Entities = stats.TotalEntityCount
	r.Archetypes = stats.ArchetypeCount
	r.Systems = session.Scheduler().GetStats().Systems
}

const reportTemplate = `
# cityrun Soak Report

## Configuration
- **Run Duration:** {{.Duration}}
- **Seed:** {{.Seed}}
- **Max Coins:** {{if .MaxCoins}}{{.MaxCoins}}{{else}}unbounded{{end}}
- **Hold:** {{.Hold}}

## Simulation
- **Ticks:** {{.TotalTicks}} in {{.TotalTime}}
- **Score:** {{.Score}} ({{.Collected}} collected)
- **Coins:** {{.Spawned}} spawned, {{.Skipped}} skipped, {{.LiveCoins}} live, {{.PeakCoins}} peak
- **Scenery Recycled:** {{.Recycled}}
- **Storage:** {{.Entities}} entities in {{.Archetypes}} archetypes

## Tick Time
- **Avg:** {{.TickTime.Avg}}
- **Min:** {{.TickTime.Min}}
- **Max:** {{.TickTime.Max}}

| System | Runs | Avg | Max |
|---|---|---|---|
{{- range .Systems}}
| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{- end}}

## Memory Usage
- Heap Alloc:  {{mb .MemStatsStart.HeapAlloc}} MiB (start) -> {{mb .MemStatsEnd.HeapAlloc}} MiB (end)
- Total Alloc: {{mb .MemStatsStart.TotalAlloc}} MiB (start) -> {{mb .MemStatsEnd.TotalAlloc}} MiB (end)
- Sys Memory:  {{mb .MemStatsStart.Sys}} MiB (start) -> {{mb .MemStatsEnd.Sys}} MiB (end)
- Num GC:      {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{ns (usub64 .MemStatsEnd.PauseTotalNs .MemStatsStart.PauseTotalNs)}}
{{end}}`

var reportFuncs = template.FuncMap{
	"mb": func(v uint64) string {
		return fmt.Sprintf("%.2f", float64(v)/1024/1024)
	},
	"usub": func(a, b uint32) uint32 {
		return a - b
	},
	"usub64": func(a, b uint64) uint64 {
		return a - b
	},
	"ns": func(ns uint64) string {
		return time.Duration(ns).String()
	},
}

var reportTmpl = template.Must(template.New("report").Funcs(reportFuncs).Parse(reportTemplate))

func (r *Report) Generate(w io.Writer) error {
	return reportTmpl.Execute(w, r)
}
