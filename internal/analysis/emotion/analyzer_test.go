package emotion

import (
	"math/rand/v2"
	"testing"
)

func TestBaselineIsNeutral(t *testing.T) {
	decision := Baseline().Dominant()
	if decision.Emotion != Neutral {
		t.Fatalf("expected neutral emotion, got %s", decision.Emotion)
	}
	if decision.Value != 75 {
		t.Fatalf("expected value 75, got %f", decision.Value)
	}
}

func TestDominantTieKeepsEarlierLabel(t *testing.T) {
	decision := Readings{Happy: 40, Sad: 40}.Dominant()
	if decision.Emotion != Happy {
		t.Fatalf("expected happy to win the tie, got %s", decision.Emotion)
	}
}

func TestDominantAllZero(t *testing.T) {
	decision := Readings{}.Dominant()
	if decision.Emotion != Neutral || decision.Value != 0 {
		t.Fatalf("expected neutral/0, got %s/%f", decision.Emotion, decision.Value)
	}
}

func TestPerturbStaysWithinBounds(t *testing.T) {
	rnd := rand.New(rand.NewPCG(1, 2))
	r := Readings{Happy: 99, Sad: 1, Angry: 0, Surprised: 100, Neutral: 50}

	for i := 0; i < 500; i++ {
		next := r.Perturb(rnd)
		for _, label := range Order {
			v := next.Value(label)
			if v < 0 || v > 100 {
				t.Fatalf("%s out of range: %f", label, v)
			}
			if diff := v - r.Value(label); diff > jitter[label] || diff < -jitter[label] {
				t.Fatalf("%s drifted by %f, max %f", label, diff, jitter[label])
			}
		}
		r = next
	}
}
