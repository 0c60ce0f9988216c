package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/cityrun/ecs"
	"github.com/plus3/cityrun/internal/runner"
)

const historyFrames = 120

// Install registers the overlay components and system on the session and
// spawns its windows. backend becomes a singleton the host reads back each
// frame.
func Install(s *runner.Session, backend Backend) {
	RegisterComponents(s.Registry())
	storage := s.Storage()

	ecs.NewSingleton(storage, ImguiInputState{})
	ecs.NewSingleton(storage, backend)

	storage.Spawn(ImguiItem{Render: performanceWindow(s)})
	storage.Spawn(ImguiItem{Render: runnerWindow(s)})

	s.Register(&ImguiSystem{})
}

func performanceWindow(s *runner.Session) func() {
	history := NewHistory(historyFrames)
	timer := NewFrameTimer()

	return func() {
		history.Push(float32(timer.Tick().Seconds() * 1000))

		imgui.SetNextWindowPosV(imgui.NewVec2(10, 40), imgui.CondOnce, imgui.NewVec2(0, 0))
		imgui.SetNextWindowSizeV(imgui.NewVec2(340, 320), imgui.CondOnce)
		if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
			imgui.End()
			return
		}

		stats := s.Storage().CollectStats()
		imgui.Text(fmt.Sprintf("Entities: %d", stats.TotalEntityCount))
		imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
		imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

		avg, lo, hi := history.Stats()
		if avg > 0 {
			imgui.Text(fmt.Sprintf("Frame: %.2f ms avg (%.0f FPS)", avg, 1000/avg))
		}
		imgui.Text(fmt.Sprintf("Min/Max: %.2f / %.2f ms", lo, hi))
		imgui.PlotLinesFloatPtr("##frametime", &history.Samples()[0], int32(len(history.Samples())))

		imgui.Separator()
		systemTable(s.Scheduler().GetStats())

		if imgui.TreeNodeStr("Archetypes") {
			const flags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
			if imgui.BeginTableV("archetypes", 3, flags, imgui.NewVec2(0, 0), 0) {
				imgui.TableSetupColumn("ID")
				imgui.TableSetupColumn("Components")
				imgui.TableSetupColumn("Entities")
				imgui.TableHeadersRow()
				for _, arch := range stats.ArchetypeBreakdown {
					imgui.TableNextRow()
					imgui.TableNextColumn()
					imgui.Text(fmt.Sprintf("0x%X", arch.ID))
					imgui.TableNextColumn()
					imgui.Text(strings.Join(arch.ComponentTypes, ", "))
					imgui.TableNextColumn()
					imgui.Text(fmt.Sprintf("%d", arch.EntityCount))
				}
				imgui.EndTable()
			}
			imgui.TreePop()
		}

		if imgui.TreeNodeStr("Singletons") {
			for _, name := range stats.SingletonTypes {
				imgui.BulletText(name)
			}
			imgui.TreePop()
		}

		imgui.End()
	}
}

func systemTable(stats *ecs.SchedulerStats) {
	const flags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if !imgui.BeginTableV("systems", 4, flags, imgui.NewVec2(0, 0), 0) {
		return
	}
	imgui.TableSetupColumn("System")
	imgui.TableSetupColumn("Avg")
	imgui.TableSetupColumn("Max")
	imgui.TableSetupColumn("Last")
	imgui.TableHeadersRow()
	for _, sys := range stats.Systems {
		imgui.TableNextRow()
		imgui.TableNextColumn()
		imgui.Text(sys.Name)
		imgui.TableNextColumn()
		imgui.Text(sys.AvgDuration.String())
		imgui.TableNextColumn()
		imgui.Text(sys.MaxDuration.String())
		imgui.TableNextColumn()
		imgui.Text(sys.LastDuration.String())
	}
	imgui.EndTable()
}

func runnerWindow(s *runner.Session) func() {
	return func() {
		imgui.SetNextWindowPosV(imgui.NewVec2(360, 40), imgui.CondOnce, imgui.NewVec2(0, 0))
		imgui.SetNextWindowSizeV(imgui.NewVec2(260, 240), imgui.CondOnce)
		if !imgui.BeginV("Runner", nil, imgui.WindowFlagsNone) {
			imgui.End()
			return
		}

		counters := s.Counters()
		spawner := s.Spawner()
		imgui.Text(fmt.Sprintf("Tick: %d", s.Scheduler().Tick()))
		imgui.Text(fmt.Sprintf("Score: %d", s.Score()))
		imgui.Separator()
		imgui.Text(fmt.Sprintf("Live coins: %d (peak %d)", len(s.Coins()), counters.PeakCoins))
		imgui.Text(fmt.Sprintf("Spawned: %d  Skipped: %d", spawner.Spawned, spawner.Skipped))
		imgui.Text(fmt.Sprintf("Collected: %d", counters.Collected))
		imgui.Text(fmt.Sprintf("Recycled: %d", counters.Recycled))
		imgui.Separator()
		if p := s.Actor(runner.RolePlayer); p != nil {
			imgui.Text(fmt.Sprintf("Player x: %.2f", p.Position.X()))
		}
		if r := s.Actor(runner.RoleRival); r != nil {
			imgui.Text(fmt.Sprintf("Rival x: %.2f z: %.2f", r.Position.X(), r.Position.Z()))
		}
		imgui.Text(fmt.Sprintf("Keys: left=%t right=%t", s.Held(runner.KeyLeft), s.Held(runner.KeyRight)))

		imgui.End()
	}
}
