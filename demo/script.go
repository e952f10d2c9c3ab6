// Package demo plays the scripted conversation shown on the landing page: a
// fixed list of lines typed out one after another, starting over after the
// last one.
package demo

import (
	"context"
	"time"
)

// Step is one line of the script. Speaker selects the avatar shown while the
// line is on screen.
type Step struct {
	Text    string
	Speaker string
	Delay   time.Duration
}

// DefaultScript is the landing page conversation.
var DefaultScript = []Step{
	{Text: "Human: What's the secret to happiness?", Speaker: "human1", Delay: 2 * time.Second},
	{Text: "Bot: Happiness is finding meaning in the small things.", Speaker: "bot", Delay: 2 * time.Second},
	{Text: "Human2: Do you think technology can make us happier?", Speaker: "human2", Delay: 2 * time.Second},
	{Text: "Bot: Technology enhances connection, but true happiness comes from within.", Speaker: "bot", Delay: 2 * time.Second},
}

// Player is a state machine over a script. Its state is the index of the
// current step; Advance moves to the next one and wraps to the first.
type Player struct {
	steps []Step
	index int
	loops int
}

// MinDelay is the shortest time a step stays on screen. Steps with a shorter
// delay are given this one.
const MinDelay = 10 * time.Millisecond

func NewPlayer(steps []Step) *Player {
	if len(steps) == 0 {
		steps = DefaultScript
	}
	p := &Player{steps: append([]Step{}, steps...)}
	for i := range p.steps {
		if p.steps[i].Delay < MinDelay {
			p.steps[i].Delay = MinDelay
		}
	}
	return p
}

func (p *Player) Current() Step {
	return p.steps[p.index]
}

// Loops is how many times the script has started over.
func (p *Player) Loops() int {
	return p.loops
}

func (p *Player) Advance() Step {
	p.index++
	if p.index == len(p.steps) {
		p.index = 0
		p.loops++
	}
	return p.steps[p.index]
}

// Run shows the current step, waits its delay and advances, until ctx is
// done. It returns ctx.Err().
func (p *Player) Run(ctx context.Context, show func(Step)) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		step := p.Current()
		show(step)

		timer := time.NewTimer(step.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
			p.Advance()
		}
	}
}
