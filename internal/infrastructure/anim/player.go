// Package anim provides a timer-driven animation clip player.
package anim

import "github.com/younwookim/arena/internal/domain/entity"

type subscriber struct {
	fn        func()
	cancelled bool
}

// Player plays one named clip at a time. Clips with a positive duration
// finish once; the rest loop forever.
type Player struct {
	durations map[string]float64
	current   string
	elapsed   float64
	finished  bool
	subs      []*subscriber
}

var _ entity.Animator = (*Player)(nil)

// NewPlayer creates a player with clip durations in seconds
func NewPlayer(durations map[string]float64) *Player {
	return &Player{durations: durations}
}

// Play restarts the player on clip
func (p *Player) Play(clip string) {
	p.current = clip
	p.elapsed = 0
	p.finished = false
}

// OnceFinished registers fn for the next clip completion
func (p *Player) OnceFinished(fn func()) func() {
	sub := &subscriber{fn: fn}
	p.subs = append(p.subs, sub)
	return func() {
		sub.cancelled = true
	}
}

// Update advances the current clip and notifies subscribers when it ends
func (p *Player) Update(dt float64) {
	if p.current == "" || p.finished {
		return
	}
	d := p.durations[p.current]
	if d <= 0 {
		p.elapsed += dt
		return
	}

	p.elapsed += dt
	if p.elapsed < d {
		return
	}
	p.elapsed = d
	p.finished = true

	// Subscribers may play another clip and subscribe again
	subs := p.subs
	p.subs = nil
	for _, s := range subs {
		if !s.cancelled {
			s.cancelled = true
			s.fn()
		}
	}
}

// Current returns the clip being played
func (p *Player) Current() string {
	return p.current
}

// Progress returns the played fraction of a finite clip, 0 for looping clips
func (p *Player) Progress() float64 {
	d := p.durations[p.current]
	if d <= 0 {
		return 0
	}
	return p.elapsed / d
}

// Subscribers returns the number of live completion subscriptions
func (p *Player) Subscribers() int {
	n := 0
	for _, s := range p.subs {
		if !s.cancelled {
			n++
		}
	}
	return n
}
