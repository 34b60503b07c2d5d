package simulation

import (
	"sync"

	"github.com/oomph-ac/locomotion/oerror"
	"github.com/oomph-ac/locomotion/worker"
)

// ScriptFrame is a single recorded frame: how long it took and what the player did.
type ScriptFrame struct {
	Delta float32
	Input FrameInput
}

// Replay runs a script on a started loop and returns every physics step it ran.
func Replay(l *Loop, script []ScriptFrame) []TickRecord {
	var records []TickRecord
	from := l.Tick()
	for _, f := range script {
		l.Advance(f.Delta, f.Input)
	}
	for _, r := range l.History() {
		if r.Tick > from {
			records = append(records, r)
		}
	}
	return records
}

// VerifyDeterminism replays script on runs loops built by build, concurrently on pool, and returns an error
// if any two runs diverged. build must return a fresh, started loop with a history large enough for the
// script.
func VerifyDeterminism(pool *worker.Pool, build func() *Loop, script []ScriptFrame, runs int) error {
	results := make([][]TickRecord, runs)
	done := make([]bool, runs)
	var wg sync.WaitGroup
	wg.Add(runs)
	for i := range runs {
		pool.Submit(func() {
			defer wg.Done()
			results[i] = Replay(build(), script)
			done[i] = true
		})
	}
	wg.Wait()

	for i := range runs {
		if !done[i] {
			return oerror.New("replay %d did not complete", i)
		}
		if i == 0 {
			continue
		}
		if idx := firstDivergence(results[0], results[i]); idx >= 0 {
			return oerror.New("replay %d diverged from replay 0 at record %d", i, idx)
		}
	}
	return nil
}

// firstDivergence returns the index of the first record that differs between a and b, or -1.
func firstDivergence(a, b []TickRecord) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i].Fingerprint != b[i].Fingerprint || a[i].Position != b[i].Position {
			return i
		}
	}
	if len(a) != len(b) {
		return n
	}
	return -1
}
