package sim

import (
	"context"
	"log/slog"
	"math"
	"time"

	"dailyread/internal/config"
	"dailyread/internal/geom"
	"dailyread/internal/playbook"
	"dailyread/internal/util"
)

type State int

const (
	StateIdle State = iota
	StateReady
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	}
	return "unknown"
}

const (
	minZoom = 0.6
	maxZoom = 2.5
)

// View is the host camera: pan offset and zoom.
type View struct {
	X, Y, Scale float64
}

type Option func(*Session)

func WithTuning(t config.Tuning) Option {
	return func(s *Session) {
		s.tuning = t
		s.kernel = Kernel{Tuning: t}
	}
}

// WithSeed pins the RNG seed used on every load.
func WithSeed(seed uint32) Option {
	return func(s *Session) { s.seedFn = func() uint32 { return seed } }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// Session owns one play's transient state. It is single-threaded: every call,
// including scheduled ticks, must come from the host's one goroutine.
type Session struct {
	sched  Scheduler
	kernel Kernel
	tuning config.Tuning
	seedFn func() uint32
	logger *slog.Logger

	play         *config.Play
	entities     []*Entity
	byID         map[string]*Entity
	routes       *playbook.RouteBook
	objectives   []Objective
	rules        config.Rules
	selections   map[string]string
	controlledID string
	holderID     string

	state      State
	gen        uint64
	time       float64
	firstTick  bool
	lastFrame  time.Duration
	log        EventLog
	score      float64
	det        *Detector
	rng        *util.Stream
	passThrown bool
	view       View
}

// NewSession builds an idle session. sched may be nil when the caller drives
// ticks through Step.
func NewSession(sched Scheduler, opts ...Option) *Session {
	t := config.DefaultTuning()
	s := &Session{
		sched:      sched,
		kernel:     Kernel{Tuning: t},
		tuning:     t,
		seedFn:     func() uint32 { return uint32(time.Now().UnixNano()) },
		logger:     slog.New(slog.DiscardHandler),
		det:        NewDetector(),
		selections: map[string]string{},
		view:       View{Scale: 1},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadPlay replaces all session state with a fresh copy of p and leaves the
// session Ready. Any run in progress is abandoned.
func (s *Session) LoadPlay(p *config.Play) error {
	if p == nil {
		return ErrNilPlay
	}
	if err := p.Validate(); err != nil {
		return err
	}
	entities := make([]*Entity, 0, len(p.Entities))
	byID := make(map[string]*Entity, len(p.Entities))
	for _, def := range p.Entities {
		e, err := newEntity(def, s.tuning)
		if err != nil {
			return err
		}
		entities = append(entities, e)
		byID[e.ID] = e
	}

	s.gen++
	s.play = p
	s.entities = entities
	s.byID = byID
	s.routes = playbook.NewRouteBook(p.Routes)
	s.objectives = ObjectivesFromDefs(p.Objectives)
	s.rules = s.resolveRules(p.Rules)
	s.selections = map[string]string{}
	s.controlledID = ""
	for _, e := range entities {
		if _, ok := e.Behavior.(Controlled); ok {
			s.controlledID = e.ID
			break
		}
	}
	s.holderID = s.controlledID
	if _, ok := byID[s.rules.BallHolder]; ok {
		s.holderID = s.rules.BallHolder
	}

	s.state = StateReady
	s.time = 0
	s.firstTick = false
	s.lastFrame = 0
	s.log = EventLog{}
	s.det.Reset()
	s.passThrown = false
	s.view = View{Scale: 1}
	s.rng = util.NewStream(s.seedFn())

	for _, item := range p.BasePlan {
		if e := byID[item.ReceiverID]; e != nil && s.routes.Has(item.RouteID) {
			s.selections[e.ID] = item.RouteID
		}
	}
	for _, e := range entities {
		s.assignPath(e)
	}
	s.rescore()

	s.logger.Debug("play loaded",
		"play", p.Name, "entities", len(entities), "seed", s.rng.Seed(),
		"read", s.rules.ReadVariant(), "generation", s.gen)
	return nil
}

func (s *Session) resolveRules(r config.Rules) config.Rules {
	if r.PressureRadius <= 0 {
		r.PressureRadius = s.tuning.PressureRadius
	}
	if r.InterceptBelow <= 0 {
		r.InterceptBelow = s.tuning.InterceptBelow
	}
	if r.IncompleteBelow <= 0 {
		r.IncompleteBelow = s.tuning.IncompleteBelow
	}
	return r
}

// Unload drops the play and returns to Idle.
func (s *Session) Unload() {
	s.gen++
	s.state = StateIdle
	s.play = nil
	s.entities = nil
	s.byID = nil
	s.routes = nil
	s.objectives = nil
	s.rules = config.Rules{}
	s.selections = map[string]string{}
	s.controlledID = ""
	s.holderID = ""
	s.view = View{Scale: 1}
	s.log = EventLog{}
	s.score = 0
	s.time = 0
	s.det.Reset()
	s.passThrown = false
}

func (s *Session) routeFor(e *Entity) string {
	if r, ok := s.selections[e.ID]; ok {
		return r
	}
	if b, ok := e.Behavior.(RouteRunner); ok {
		return b.RouteID
	}
	return ""
}

// assignPath re-derives e's path from its spawn point.
func (s *Session) assignPath(e *Entity) {
	switch e.Behavior.(type) {
	case Controlled, RouteRunner:
	default:
		return
	}
	id := s.routeFor(e)
	path, _ := s.routes.Shape(id, e.motion.spawn)
	e.setPath(id, path)
}

// SelectRoute assigns routeID to a controlled entity or route runner. An
// empty entityID means the controlled entity.
func (s *Session) SelectRoute(entityID, routeID string) {
	if s.state == StateIdle {
		return
	}
	if entityID == "" {
		entityID = s.controlledID
	}
	e := s.byID[entityID]
	if e == nil || !s.routes.Has(routeID) {
		return
	}
	switch e.Behavior.(type) {
	case Controlled, RouteRunner:
	default:
		return
	}
	s.selections[e.ID] = routeID
	s.assignPath(e)
	s.emit(EventRouteSelected, map[string]any{"entity_id": e.ID, "route_id": routeID})
	s.rescore()
}

// CycleRoute steps entityID's route through the play's route list.
func (s *Session) CycleRoute(entityID string, dir int) {
	if s.state != StateReady {
		return
	}
	if e := s.byID[entityID]; e != nil {
		s.SelectRoute(entityID, s.routes.Cycle(s.routeFor(e), dir))
	}
}

// Nudge shifts an offensive player before the snap.
func (s *Session) Nudge(entityID string, dx, dy float64) {
	if s.state != StateReady {
		return
	}
	e := s.byID[entityID]
	if e == nil || e.Kind != KindPlayer {
		return
	}
	e.Pos = e.Pos.Add(geom.Vec2{X: dx, Y: dy})
	e.motion.spawn = e.Pos
	s.assignPath(e)
}

// ApplyFormation re-lays out the offense and reshapes every route from the
// new starting points.
func (s *Session) ApplyFormation(formation, tag string) {
	if s.state != StateReady {
		return
	}
	positions := playbook.FormationPositions(formation, tag)
	for _, e := range s.entities {
		p, ok := positions[e.ID]
		if !ok || e.Kind != KindPlayer {
			continue
		}
		e.Pos = p
		e.motion.spawn = p
		s.assignPath(e)
	}
}

func (s *Session) Start() {
	if s.state != StateReady {
		return
	}
	s.state = StateRunning
	s.gen++
	s.firstTick = true
	s.emit(EventStart, nil)
	s.logger.Debug("run started", "play", s.play.Name, "generation", s.gen)
	if s.sched != nil {
		s.sched.Schedule(s.tick(s.gen))
	}
}

func (s *Session) Stop() {
	if s.state != StateRunning {
		return
	}
	s.emit(EventStop, nil)
	s.state = StateReady
	s.gen++
	s.logger.Debug("run stopped", "t", s.time)
}

// tick is one scheduled frame bound to the generation that scheduled it.
func (s *Session) tick(gen uint64) func(time.Duration) {
	return func(now time.Duration) {
		if gen != s.gen || s.state != StateRunning {
			return
		}
		delta := 0.0
		if s.firstTick {
			s.firstTick = false
		} else {
			delta = (now - s.lastFrame).Seconds()
		}
		s.lastFrame = now
		s.Step(delta)
		if gen == s.gen && s.state == StateRunning {
			s.sched.Schedule(s.tick(gen))
		}
	}
}

// Step advances a running simulation by delta seconds.
func (s *Session) Step(delta float64) {
	if s.state != StateRunning {
		return
	}
	if delta < 0 || math.IsNaN(delta) || math.IsInf(delta, 0) {
		delta = 0
	}
	s.time += delta
	w := sessionWorld{s}
	for _, e := range s.entities {
		s.kernel.Advance(e, w, delta)
	}
	s.detect()
	s.rescore()
}

func (s *Session) detect() {
	if watched := s.byID[s.controlledID]; watched != nil {
		s.det.Collisions(watched, s.entities, s.emit)
		s.det.Zones(watched, s.objectives, s.emit)
	}
	if !s.rules.ReadVariant() || s.passThrown {
		return
	}
	holder := s.byID[s.holderID]
	if d := UnderPressure(holder, s.entities, s.rules.PressureRadius); d != nil {
		s.emit(EventSack, map[string]any{"reason": SackPressure, "by": d.ID})
		s.halt(SackPressure)
		return
	}
	if s.time >= s.rules.PassWindow {
		s.emit(EventSack, map[string]any{"reason": SackTimer})
		s.halt(SackTimer)
	}
}

// ThrowTo resolves the play's one pass against the nearest defender.
func (s *Session) ThrowTo(receiverID string) {
	if s.state != StateRunning || s.passThrown || !s.rules.ReadVariant() {
		return
	}
	r := s.byID[receiverID]
	if r == nil || r.Kind != KindPlayer || r.ID == s.holderID {
		return
	}
	s.passThrown = true
	sep := roundTime(MinSeparation(r.Pos, s.entities))
	s.emit(EventTarget, map[string]any{"receiver_id": r.ID, "separation": sep})
	outcome := ClassifyPass(sep, s.rules.InterceptBelow, s.rules.IncompleteBelow)
	s.emit(outcome, map[string]any{"receiver_id": r.ID})
	s.rescore()
	s.halt(string(outcome))
}

func (s *Session) halt(reason string) {
	s.state = StateReady
	s.gen++
	s.logger.Debug("run halted", "reason", reason, "t", s.time)
}

func (s *Session) emit(typ EventType, payload map[string]any) {
	s.log.Append(s.time, typ, payload)
}

func (s *Session) rescore() {
	s.score = Score(s.objectives, s.log.view())
}

// Pan moves the camera by a screen-space offset.
func (s *Session) Pan(dx, dy float64) {
	s.view.X += dx / s.view.Scale
	s.view.Y += dy / s.view.Scale
}

func (s *Session) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	s.view.Scale = math.Min(maxZoom, math.Max(minZoom, s.view.Scale*factor))
}

func (s *Session) State() State                { return s.state }
func (s *Session) Running() bool               { return s.state == StateRunning }
func (s *Session) Time() float64               { return s.time }
func (s *Session) Score() float64              { return s.score }
func (s *Session) Events() []Event             { return s.log.Events() }
func (s *Session) Generation() uint64          { return s.gen }
func (s *Session) Play() *config.Play          { return s.play }
func (s *Session) Rules() config.Rules         { return s.rules }
func (s *Session) Objectives() []Objective     { return append([]Objective(nil), s.objectives...) }
func (s *Session) Routes() *playbook.RouteBook { return s.routes }
func (s *Session) ControlledID() string        { return s.controlledID }
func (s *Session) BallHolderID() string        { return s.holderID }
func (s *Session) PassThrown() bool            { return s.passThrown }
func (s *Session) View() View                  { return s.view }

func (s *Session) Seed() uint32 {
	if s.rng == nil {
		return 0
	}
	return s.rng.Seed()
}

// Entities returns a snapshot for rendering.
func (s *Session) Entities() []Entity {
	out := make([]Entity, len(s.entities))
	for i, e := range s.entities {
		out[i] = e.clone()
	}
	return out
}

func (s *Session) Entity(id string) (Entity, bool) {
	e := s.byID[id]
	if e == nil {
		return Entity{}, false
	}
	return e.clone(), true
}

func (s *Session) Selections() map[string]string {
	out := make(map[string]string, len(s.selections))
	for k, v := range s.selections {
		out[k] = v
	}
	return out
}

// LogValue lets a session be logged as a single attribute.
func (s *Session) LogValue() slog.Value {
	name := ""
	if s.play != nil {
		name = s.play.Name
	}
	return slog.GroupValue(
		slog.String("play", name),
		slog.String("state", s.state.String()),
		slog.Float64("t", s.time),
		slog.Float64("score", s.score),
		slog.Int("events", s.log.Len()),
	)
}

// Log writes the session summary at info level.
func (s *Session) Log(ctx context.Context, msg string) {
	s.logger.InfoContext(ctx, msg, "session", s)
}

type sessionWorld struct{ s *Session }

func (w sessionWorld) Entity(id string) *Entity { return w.s.byID[id] }
func (w sessionWorld) BallHolder() *Entity      { return w.s.byID[w.s.holderID] }
func (w sessionWorld) Rand() float64            { return w.s.rng.Next() }
