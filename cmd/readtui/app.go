package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"dailyread/internal/attempt"
	"dailyread/internal/config"
	"dailyread/internal/geom"
	"dailyread/internal/playbook"
	"dailyread/internal/sim"
)

const (
	nudgeStep  = 10.0
	panStep    = 40.0
	zoomStep   = 1.1
	statusRows = 2
)

type submitResult struct {
	receipt attempt.Receipt
	err     error
}

type app struct {
	screen  tcell.Screen
	session *sim.Session
	frames  *sim.FrameQueue
	outbox  *attempt.Outbox

	play      *config.Play
	receivers []string
	selected  string
	guess     int
	formation int
	tag       int
	status    string
	pending   int
	start     time.Time

	submissions chan attempt.Attempt
	results     chan submitResult
}

func newApp(screen tcell.Screen, s *sim.Session, frames *sim.FrameQueue, ob *attempt.Outbox) *app {
	return &app{
		screen:      screen,
		session:     s,
		frames:      frames,
		outbox:      ob,
		guess:       -1,
		formation:   -1,
		start:       time.Now(),
		submissions: make(chan attempt.Attempt, 4),
		results:     make(chan submitResult, 4),
	}
}

func (a *app) load(p *config.Play) error {
	if err := a.session.LoadPlay(p); err != nil {
		return err
	}
	a.play = p
	a.receivers = receiverIDs(a.session)
	a.selected = ""
	if len(a.receivers) > 0 {
		a.selected = a.receivers[0]
	}
	a.formation = -1
	a.tag = 0
	a.status = "space: snap  1-5: pick/throw  q/e: route  f/t: formation  c/x: coverage  s: submit"
	return nil
}

// receiverIDs lists the offensive players a pass can go to, in key order.
func receiverIDs(s *sim.Session) []string {
	var out []string
	for _, id := range playbook.ReceiverOrder {
		if _, ok := s.Entity(id); ok {
			out = append(out, id)
		}
	}
	if len(out) > 0 {
		return out
	}
	for _, e := range s.Entities() {
		if e.Kind == sim.KindPlayer {
			out = append(out, e.ID)
		}
	}
	return out
}

func (a *app) guessName() string {
	if a.guess < 0 || a.guess >= len(playbook.Coverages) {
		return ""
	}
	return playbook.Coverages[a.guess]
}

// deliver hands finished attempts to the outbox off the UI goroutine.
func (a *app) deliver(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case at := <-a.submissions:
			r, err := a.outbox.Submit(ctx, at)
			if err == nil {
				a.outbox.Reconnect()
			}
			select {
			case a.results <- submitResult{receipt: r, err: err}:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

func (a *app) run(ctx context.Context) {
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	a.refreshPending(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-eventChan:
			if !a.handleInput(ev) {
				return
			}
		case res := <-a.results:
			a.showResult(res)
			a.refreshPending(ctx)
		case <-ticker.C:
			a.frames.Fire(time.Since(a.start))
			a.draw()
		}
	}
}

func (a *app) refreshPending(ctx context.Context) {
	if n, err := a.outbox.Pending(ctx); err == nil {
		a.pending = n
	}
}

func (a *app) showResult(res submitResult) {
	switch {
	case errors.Is(res.err, attempt.ErrQueued):
		a.status = "offline: attempt saved, will retry"
	case res.err != nil:
		a.status = "submit failed: " + res.err.Error()
	default:
		verdict := "missed"
		if res.receipt.CoverageCorrect {
			verdict = "correct"
		}
		a.status = fmt.Sprintf("scored %.0f  coverage was %s (%s)", res.receipt.Score, res.receipt.Coverage, verdict)
	}
}

func (a *app) handleInput(ev tcell.Event) bool {
	s := a.session
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			s.Nudge(a.selected, 0, -nudgeStep)
		case tcell.KeyDown:
			s.Nudge(a.selected, 0, nudgeStep)
		case tcell.KeyLeft:
			s.Nudge(a.selected, -nudgeStep, 0)
		case tcell.KeyRight:
			s.Nudge(a.selected, nudgeStep, 0)
		case tcell.KeyRune:
			a.handleRune(ev.Rune())
		}
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *app) handleRune(r rune) {
	s := a.session
	switch r {
	case '1', '2', '3', '4', '5':
		i := int(r - '1')
		if i >= len(a.receivers) {
			return
		}
		if s.Running() {
			s.ThrowTo(a.receivers[i])
			return
		}
		a.selected = a.receivers[i]
	case 'q':
		s.CycleRoute(a.selected, -1)
	case 'e':
		s.CycleRoute(a.selected, 1)
	case ' ':
		if s.Running() {
			s.Stop()
		} else {
			s.Start()
		}
	case 'c':
		a.guess = (a.guess + 1) % len(playbook.Coverages)
	case 'x':
		a.guess = (a.guess - 1 + len(playbook.Coverages)) % len(playbook.Coverages)
	case 'f':
		combos := formationCombos()
		a.formation = (a.formation + 1) % len(combos)
		s.ApplyFormation(combos[a.formation], a.tagName())
	case 't':
		a.tag = (a.tag + 1) % (len(playbook.FormationTags) + 1)
		if a.formation >= 0 {
			s.ApplyFormation(formationCombos()[a.formation], a.tagName())
		}
	case 'r':
		if err := a.load(a.play); err != nil {
			a.status = err.Error()
		}
	case 's':
		a.submit()
	case '+':
		s.Zoom(zoomStep)
	case '-':
		s.Zoom(1 / zoomStep)
	case 'H':
		s.Pan(panStep, 0)
	case 'L':
		s.Pan(-panStep, 0)
	case 'K':
		s.Pan(0, panStep)
	case 'J':
		s.Pan(0, -panStep)
	}
}

func (a *app) tagName() string {
	if a.tag == 0 {
		return ""
	}
	return playbook.FormationTags[a.tag-1]
}

// formationCombos lists every "formation subset" call in catalog order.
func formationCombos() []string {
	var out []string
	for _, f := range playbook.Formations {
		for _, sub := range f.Subsets {
			out = append(out, f.Name+" "+sub)
		}
	}
	return out
}

func (a *app) submit() {
	s := a.session
	if s.Running() || sim.Outcome(s.Events()) == "" {
		a.status = "finish a rep before submitting"
		return
	}
	at := attempt.FromSession(s, a.guessName(), time.Now())
	select {
	case a.submissions <- at:
		a.status = "submitting..."
	default:
		a.status = "still sending the last attempt"
	}
}

func canvasSize(p *config.Play) (float64, float64) {
	w, h := 900.0, 600.0
	if p != nil && p.Canvas.Width > 0 && p.Canvas.Height > 0 {
		w, h = p.Canvas.Width, p.Canvas.Height
	}
	return w, h
}

// project maps a field point to a terminal cell, zooming about the field
// centre and then panning.
func project(p geom.Vec2, cw, ch float64, v sim.View, cols, rows int) (int, int) {
	x := (p.X-cw/2+v.X)*v.Scale + cw/2
	y := (p.Y-ch/2+v.Y)*v.Scale + ch/2
	return int(x / cw * float64(cols)), int(y / ch * float64(rows))
}

func (a *app) draw() {
	a.screen.Clear()
	cols, rows := a.screen.Size()
	fieldRows := rows - statusRows
	if fieldRows <= 0 {
		a.screen.Show()
		return
	}
	s := a.session
	cw, ch := canvasSize(a.play)
	view := s.View()
	put := func(p geom.Vec2, r rune, style tcell.Style) {
		x, y := project(p, cw, ch, view, cols, fieldRows)
		if x >= 0 && x < cols && y >= 0 && y < fieldRows {
			a.screen.SetContent(x, y, r, nil, style)
		}
	}

	for _, o := range s.Objectives() {
		if o.Kind == sim.ObjectiveReachZone {
			put(o.Center, 'o', tcell.StyleDefault.Foreground(tcell.ColorYellow))
		}
	}
	if e, ok := s.Entity(a.selected); ok {
		for _, p := range e.Path() {
			put(p, '·', tcell.StyleDefault.Foreground(tcell.ColorGray))
		}
	}
	for _, e := range s.Entities() {
		put(e.Pos, glyph(e), entityStyle(e, e.ID == a.selected))
	}

	state := fmt.Sprintf("%s  t=%.1fs  score=%.1f  %s:%s  guess=%s  outbox=%d",
		s.State(), s.Time(), s.Score(), a.selected, s.Selections()[a.selected], a.guessName(), a.pending)
	if out := sim.Outcome(s.Events()); out != "" {
		state += "  " + out
	}
	drawText(a.screen, 0, rows-2, tcell.StyleDefault.Bold(true), state)
	drawText(a.screen, 0, rows-1, tcell.StyleDefault, a.status)
	a.screen.Show()
}

func glyph(e sim.Entity) rune {
	for _, r := range e.Label {
		if r != ' ' && (r < '0' || r > '9') {
			return r
		}
	}
	if e.ID != "" {
		return []rune(e.ID)[0]
	}
	return '?'
}

func entityStyle(e sim.Entity, selected bool) tcell.Style {
	style := tcell.StyleDefault
	switch {
	case e.Color != "":
		style = style.Foreground(tcell.GetColor(e.Color))
	case e.Kind == sim.KindPlayer:
		style = style.Foreground(tcell.ColorGreen)
	case e.Kind == sim.KindNPC:
		style = style.Foreground(tcell.ColorRed)
	default:
		style = style.Foreground(tcell.ColorYellow)
	}
	if selected {
		style = style.Reverse(true)
	}
	return style
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
