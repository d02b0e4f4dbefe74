package sal

import "testing"

func TestNewRoomRejectsNonPositiveDimensions(t *testing.T) {
	if _, err := NewRoom(0, 4, 3, Faces{}, FaceGains{}, 44100, nil); err != ErrInvalidRoomDimensions {
		t.Errorf("NewRoom with zero width: err = %v, want ErrInvalidRoomDimensions", err)
	}
}

func TestRoomImageSourcePositionFirstOrder(t *testing.T) {
	room, err := NewRoom(2, 2, 2, Faces{}, FaceGains{}, 44100, nil)
	if err != nil {
		t.Fatalf("NewRoom: %v", err)
	}
	source := NewPoint(0.5, 1, 1)

	near := room.ImageSourcePosition(source, 0, 0, 0, 1, 0, 0)
	if near.X != -0.5 {
		t.Errorf("near-wall image x = %v, want -0.5", near.X)
	}

	far := room.ImageSourcePosition(source, 1, 0, 0, 1, 0, 0)
	if far.X != 3.5 {
		t.Errorf("far-wall image x = %v, want 3.5 (2*2 - 0.5)", far.X)
	}

	direct := room.ImageSourcePosition(source, 0, 0, 0, 0, 0, 0)
	if direct != source {
		t.Errorf("direct image = %v, want %v", direct, source)
	}
}

func TestRoomWallFiltersDefaultToRigid(t *testing.T) {
	room, err := NewRoom(2, 2, 2, Faces{}, FaceGains{}, 44100, nil)
	if err != nil {
		t.Fatalf("NewRoom: %v", err)
	}
	for i, f := range room.WallFilters() {
		if g := f.NumeratorCoefficient(0); g != 1 {
			t.Errorf("face %d rigid-wall gain = %v, want 1", i, g)
		}
	}
}
