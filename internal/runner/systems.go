package runner

import (
	"iter"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/cityrun/ecs"
	"github.com/rs/zerolog"
)

type actorView = struct {
	*Transform
	*Actor
}

// InputSystem applies the key events queued since the last tick, in order.
type InputSystem struct {
	Queue ecs.Singleton[InputQueue]
	Keys  ecs.Singleton[KeyState]
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	queue := s.Queue.Get()
	keys := s.Keys.Get()
	for _, ev := range queue.Events {
		keys.Pressed[ev.Key] = ev.Down
	}
	queue.Events = queue.Events[:0]
}

// PlayerMoveSystem steers the player with the left and right keys. Holding
// both keys cancels out.
type PlayerMoveSystem struct {
	Actors ecs.Query[actorView]
	Keys   ecs.Singleton[KeyState]
}

func (s *PlayerMoveSystem) Execute(frame *ecs.UpdateFrame) {
	keys := s.Keys.Get()
	for actor := range s.Actors.Values() {
		if actor.Role != RolePlayer {
			continue
		}
		pos := &actor.Transform.Position
		if keys.Held(KeyLeft) {
			pos[0] -= PlayerStep
		}
		if keys.Held(KeyRight) {
			pos[0] += PlayerStep
		}
		pos[0] = mgl64.Clamp(pos[0], -LaneHalfWidth, LaneHalfWidth)
	}
}

// RivalPursuitSystem closes a fixed fraction of the lateral gap between each
// rival and the player every tick, and keeps the rival a fixed distance
// behind.
type RivalPursuitSystem struct {
	Actors ecs.Query[actorView]
}

func (s *RivalPursuitSystem) Execute(frame *ecs.UpdateFrame) {
	player, ok := findPlayer(s.Actors.Values())
	if !ok {
		return
	}
	for actor := range s.Actors.Values() {
		if actor.Role != RoleRival {
			continue
		}
		pos := &actor.Transform.Position
		pos[0] += (player[0] - pos[0]) * PursuitFactor
		pos[2] = player[2] + RivalTrailDepth
	}
}

func findPlayer(actors iter.Seq[actorView]) (mgl64.Vec3, bool) {
	for actor := range actors {
		if actor.Role == RolePlayer {
			return actor.Transform.Position, true
		}
	}
	return mgl64.Vec3{}, false
}

// ScrollSystem moves every scrollable entity towards the camera and sends it
// back by a full span once it is behind the camera.
type ScrollSystem struct {
	Scrollables ecs.Query[struct {
		*Transform
		*Scrollable
	}]
	Counters ecs.Singleton[Counters]
}

func (s *ScrollSystem) Execute(frame *ecs.UpdateFrame) {
	counters := s.Counters.Get()
	for item := range s.Scrollables.Values() {
		if scroll(&item.Transform.Position) {
			counters.Recycled++
		}
	}
}

// scroll advances pos by one tick and reports whether it wrapped.
func scroll(pos *mgl64.Vec3) bool {
	pos[2] += ScrollPerTick
	if pos[2] > RecycleAfterZ {
		pos[2] -= RecycleSpan
		return true
	}
	return false
}

// CoinSystem advances and spins live coins in spawn order and collects the
// ones within reach of the player. Coins move on top of ScrollSystem, so they
// approach at twice the speed of the scenery.
type CoinSystem struct {
	Actors   ecs.Query[actorView]
	Coins    ecs.Singleton[CoinList]
	Score    ecs.Singleton[Score]
	Hud      ecs.Singleton[Hud]
	Counters ecs.Singleton[Counters]

	log zerolog.Logger
}

func (s *CoinSystem) Execute(frame *ecs.UpdateFrame) {
	player, ok := findPlayer(s.Actors.Values())
	if !ok {
		return
	}

	coins := s.Coins.Get()
	live := coins.Refs[:0]
	for _, ref := range coins.Refs {
		id, ok := frame.Storage.ResolveEntityRef(ref)
		if !ok {
			continue
		}
		tr := ecs.ReadComponent[Transform](frame.Storage, id)
		tr.Position[2] += CoinStepPerTick
		tr.Rotation[1] += CoinSpinPerTick

		if !Collects(tr.Position, player) {
			live = append(live, ref)
			continue
		}

		s.collect()
		frame.Commands.Delete(id)
	}
	clear(coins.Refs[len(live):])
	coins.Refs = live
}

func (s *CoinSystem) collect() {
	score := s.Score.Get()
	score.Value++
	s.Hud.Get().Labels[ScoreLabel] = strconv.Itoa(score.Value)
	s.Counters.Get().Collected++
	s.log.Debug().Int("score", score.Value).Msg("coin collected")
}

// Collects reports whether a coin at coin is close enough to the player to be
// picked up.
func Collects(coin, player mgl64.Vec3) bool {
	return coin.Sub(player).Len() < CollectRadius
}
