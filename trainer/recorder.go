package trainer

import (
	"encoding/binary"
	"math"

	"github.com/oomph-ac/strafebot/input"
	"github.com/oomph-ac/strafebot/movement"
	"github.com/oomph-ac/strafebot/omath"
	"github.com/oomph-ac/strafebot/utils"
	"github.com/zeebo/xxh3"
)

// Sample is the state of the player after a tick.
type Sample struct {
	Tick  uint64
	State movement.State
	Keys  input.KeyState
}

// Summary describes the samples held by a Recorder.
type Summary struct {
	// Ticks is the number of ticks recorded since the last reset, including those no longer held.
	Ticks uint64
	// TopSpeed is the highest horizontal speed of every tick recorded.
	TopSpeed float32

	// MeanSpeed, SpeedStdDev, MinSpeed and MaxSpeed cover the held samples only.
	MeanSpeed   float32
	SpeedStdDev float32
	MinSpeed    float32
	MaxSpeed    float32

	// Digest is a hash over every tick recorded. Two runs with the same inputs have the same digest.
	Digest uint64
}

// Recorder keeps the most recent samples of a run and a digest over all of them.
type Recorder struct {
	samples  *utils.CircularQueue[Sample]
	hasher   *xxh3.Hasher
	buf      []byte
	ticks    uint64
	topSpeed float32
}

// NewRecorder returns a recorder holding at most capacity samples.
func NewRecorder(capacity int) *Recorder {
	return &Recorder{
		samples: utils.NewCircularQueue[Sample](capacity),
		hasher:  xxh3.New(),
		buf:     make([]byte, 0, 64),
	}
}

// Record adds the state after a tick.
func (r *Recorder) Record(state movement.State, keys input.KeyState) {
	s := Sample{Tick: r.ticks, State: state, Keys: keys}
	r.ticks++
	r.topSpeed = max(r.topSpeed, state.HzSpeed())
	// A zero-capacity recorder only keeps the digest and the counters.
	_ = r.samples.Append(s)

	r.buf = r.buf[:0]
	for _, f := range [...]float32{
		state.Pos[0], state.Pos[1], state.Pos[2],
		state.Vel[0], state.Vel[1], state.Vel[2],
		state.Yaw, state.Pitch,
	} {
		r.buf = binary.LittleEndian.AppendUint32(r.buf, math.Float32bits(f))
	}
	r.buf = append(r.buf, []byte(keys.String())...)
	_, _ = r.hasher.Write(r.buf)
}

// Samples returns the held samples from oldest to newest.
func (r *Recorder) Samples() []Sample {
	out := make([]Sample, 0, r.samples.Len())
	for s := range r.samples.Iter() {
		out = append(out, s)
	}
	return out
}

// Last returns the newest sample.
func (r *Recorder) Last() (Sample, bool) {
	return r.samples.Last()
}

// Summary summarises the recording.
func (r *Recorder) Summary() Summary {
	speeds := make([]float32, 0, r.samples.Len())
	for s := range r.samples.Iter() {
		speeds = append(speeds, s.State.HzSpeed())
	}
	lo, hi := omath.MinMax(speeds)
	return Summary{
		Ticks:       r.ticks,
		TopSpeed:    r.topSpeed,
		MeanSpeed:   omath.Mean(speeds),
		SpeedStdDev: omath.StandardDeviation(speeds),
		MinSpeed:    lo,
		MaxSpeed:    hi,
		Digest:      r.hasher.Sum64(),
	}
}

// Reset forgets everything recorded.
func (r *Recorder) Reset() {
	r.samples.Clear()
	r.hasher.Reset()
	r.ticks = 0
	r.topSpeed = 0
}
