// Package alarm plays the timer chime.
package alarm

import (
	"context"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

var (
	initOnce sync.Once
	initErr  error
)

// Init opens the audio device once. Later calls return the first result.
func Init() error {
	initOnce.Do(func() {
		initErr = speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	})
	return initErr
}

// Chime builds one ding-dong: two tones separated by a short gap, followed
// by a rest.
func Chime(sr beep.SampleRate) (beep.Streamer, error) {
	high, err := generators.SineTone(sr, 880)
	if err != nil {
		return nil, err
	}
	low, err := generators.SineTone(sr, 660)
	if err != nil {
		return nil, err
	}
	tone := func(s beep.Streamer) beep.Streamer {
		return &effects.Gain{Streamer: beep.Take(sr.N(180*time.Millisecond), s), Gain: -0.7}
	}
	return beep.Seq(
		tone(high),
		beep.Silence(sr.N(60*time.Millisecond)),
		tone(low),
		beep.Silence(sr.N(400*time.Millisecond)),
	), nil
}

// Play rings the chime repeats times, returning early when ctx is done.
func Play(ctx context.Context, repeats int) error {
	if err := Init(); err != nil {
		return err
	}

	var parts []beep.Streamer
	for range repeats {
		chime, err := Chime(sampleRate)
		if err != nil {
			return err
		}
		parts = append(parts, chime)
	}

	done := make(chan struct{})
	ctrl := &beep.Ctrl{Streamer: beep.Seq(append(parts, beep.Callback(func() { close(done) }))...)}
	speaker.Play(ctrl)

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		speaker.Lock()
		ctrl.Paused = true
		ctrl.Streamer = nil
		speaker.Unlock()
		return ctx.Err()
	}
}
