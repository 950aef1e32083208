package emotion

import (
	"math"
	"math/rand/v2"
)

// Label 表示摄像头情绪面板上的情绪类别。
type Label string

const (
	Happy     Label = "happy"
	Sad       Label = "sad"
	Angry     Label = "angry"
	Surprised Label = "surprised"
	Neutral   Label = "neutral"
)

// Order is the fixed evaluation order used when picking the dominant emotion.
var Order = []Label{Happy, Sad, Angry, Surprised, Neutral}

// Readings 是 0~100 之间的各情绪强度。
type Readings struct {
	Happy     float64 `json:"happy"`
	Sad       float64 `json:"sad"`
	Angry     float64 `json:"angry"`
	Surprised float64 `json:"surprised"`
	Neutral   float64 `json:"neutral"`
}

// Decision 给出主导情绪及其强度。
type Decision struct {
	Emotion Label   `json:"emotion"`
	Value   float64 `json:"value"`
}

// jitter is the maximum per-tick drift of each reading.
var jitter = map[Label]float64{
	Happy:     5,
	Sad:       3,
	Angry:     2,
	Surprised: 4,
	Neutral:   5,
}

// Baseline returns the readings shown before any sample is taken.
func Baseline() Readings {
	return Readings{Happy: 10, Sad: 5, Angry: 2, Surprised: 8, Neutral: 75}
}

// Value returns the reading for a label.
func (r Readings) Value(label Label) float64 {
	switch label {
	case Happy:
		return r.Happy
	case Sad:
		return r.Sad
	case Angry:
		return r.Angry
	case Surprised:
		return r.Surprised
	case Neutral:
		return r.Neutral
	default:
		return 0
	}
}

func (r *Readings) set(label Label, v float64) {
	switch label {
	case Happy:
		r.Happy = v
	case Sad:
		r.Sad = v
	case Angry:
		r.Angry = v
	case Surprised:
		r.Surprised = v
	case Neutral:
		r.Neutral = v
	}
}

// Dominant returns the strictly greatest reading. Ties keep the earlier label in Order;
// all-zero readings resolve to neutral with value 0.
func (r Readings) Dominant() Decision {
	best := Decision{Emotion: Neutral, Value: 0}
	for _, label := range Order {
		if v := r.Value(label); v > best.Value {
			best = Decision{Emotion: label, Value: v}
		}
	}
	return best
}

// Perturb drifts every reading by a uniform random delta within its jitter and clamps to [0,100].
func (r Readings) Perturb(rnd *rand.Rand) Readings {
	next := r
	for _, label := range Order {
		span := jitter[label]
		delta := rnd.Float64()*2*span - span
		next.set(label, clamp(r.Value(label)+delta))
	}
	return next
}

func clamp(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}
