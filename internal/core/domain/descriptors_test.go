package domain

import "testing"

func TestDescriptorsOverlay(t *testing.T) {
	fetched := Descriptors{
		Acousticness: Float(0.2),
		Energy:       Float(0.8),
		Key:          Int(5),
		Tempo:        Float(120),
	}

	t.Run("known fields win", func(t *testing.T) {
		known := Descriptors{Energy: Float(0.1), Mode: Int(1)}
		got := fetched.Overlay(known)

		if *got.Energy != 0.1 {
			t.Errorf("energy: got %v, want known value 0.1", *got.Energy)
		}
		if *got.Mode != 1 {
			t.Errorf("mode: got %v, want known value 1", *got.Mode)
		}
		if *got.Acousticness != 0.2 || *got.Tempo != 120 || *got.Key != 5 {
			t.Errorf("fetched fields lost: %+v", got)
		}
	})

	t.Run("absent known fields keep fetched values", func(t *testing.T) {
		got := fetched.Overlay(Descriptors{})
		if *got.Acousticness != 0.2 || *got.Energy != 0.8 {
			t.Errorf("fetched values changed: %+v", got)
		}
		if got.Valence != nil {
			t.Errorf("valence: expected nil, got %v", *got.Valence)
		}
	})
}

func TestDescriptorsComplete(t *testing.T) {
	if (Descriptors{}).Complete() {
		t.Error("empty bundle reported complete")
	}
	if !(Descriptors{Acousticness: Float(0.3)}).Complete() {
		t.Error("bundle with acousticness reported incomplete")
	}
}
