package sal

import "testing"

func TestBufferSubBufferSharesBackingStorage(t *testing.T) {
	b := NewBuffer(2, 8)
	sub := b.MakeSubBuffer(1, 1, 2, 4)

	sub.SetSample(0, 0, 42)
	if got := b.GetSample(1, 2); got != 42 {
		t.Errorf("parent buffer sample = %v, want 42 (sub-buffer write should be visible)", got)
	}
}

func TestMonoAndStereoBufferAccessors(t *testing.T) {
	mono := NewMonoBuffer(4)
	mono.Samples()[2] = 1.5
	if got := mono.GetSample(0, 2); got != 1.5 {
		t.Errorf("mono sample = %v, want 1.5", got)
	}

	stereo := NewStereoBuffer(4)
	stereo.Left()[0] = 1
	stereo.Right()[0] = -1
	if stereo.GetSample(0, 0) != 1 || stereo.GetSample(1, 0) != -1 {
		t.Errorf("stereo channels = (%v, %v), want (1, -1)", stereo.GetSample(0, 0), stereo.GetSample(1, 0))
	}
}

func TestHoaBufferAlias(t *testing.T) {
	buf := NewHoaBuffer(1, false, ACN, N3D, 4)
	buf.SetSample(1, 0, 0, 3.0)
	if got := buf.GetSample(1, 0, 0); got != 3.0 {
		t.Errorf("HoaBuffer sample = %v, want 3", got)
	}
	if buf.NumChannels() != 4 {
		t.Errorf("order-1 full HOA channel count = %d, want 4", buf.NumChannels())
	}
}
