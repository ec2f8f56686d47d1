package raster

import "testing"

func TestEncodeIsDeterministicForAGivenSeed(t *testing.T) {
	p := NewPixmap(8, 8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			p.AddPixel(x, y, Color{R: 0.25, G: 0.5, B: 0.75, A: 1})
		}
	}
	seed := [2]uint64{12345, 67890}
	a := Encode(p, seed)
	b := Encode(p, seed)
	if len(a.Pix) != len(b.Pix) {
		t.Fatalf("got different output lengths %d vs %d", len(a.Pix), len(b.Pix))
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("byte %d differs between two encodes of the same pixmap with the same seed: %d vs %d", i, a.Pix[i], b.Pix[i])
		}
	}
}

func TestEncodeDifferentSeedsCanDiffer(t *testing.T) {
	p := NewPixmap(8, 8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			p.AddPixel(x, y, Color{R: 0.251, G: 0.502, B: 0.753, A: 1})
		}
	}
	a := Encode(p, [2]uint64{1, 2})
	b := Encode(p, [2]uint64{3, 4})
	differs := false
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			differs = true
			break
		}
	}
	if !differs {
		t.Errorf("two different seeds produced byte-identical dithered output; expected dither noise to differ")
	}
}

func TestEncodeBoundedDiffUnderOnePixelChange(t *testing.T) {
	// S6: changing one source pixel must not change unrelated output
	// bytes, since the dither stream is consumed in fixed row-major
	// order and each pixel draws exactly 4 words.
	p1 := NewPixmap(4, 4)
	p2 := NewPixmap(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c := Color{R: 0.4, G: 0.4, B: 0.4, A: 1}
			p1.AddPixel(x, y, c)
			p2.AddPixel(x, y, c)
		}
	}
	p2.AddPixel(2, 2, Color{R: 0.1, A: 0.1})

	seed := [2]uint64{42, 99}
	a := Encode(p1, seed)
	b := Encode(p2, seed)

	changedPixel := (2*4 + 2) * 4
	for i := range a.Pix {
		if i >= changedPixel && i < changedPixel+4 {
			continue
		}
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("byte %d outside the changed pixel differs: %d vs %d", i, a.Pix[i], b.Pix[i])
		}
	}
}

func TestDitherChannelClampsRange(t *testing.T) {
	if got := ditherChannel(-1, 0); got != 0 {
		t.Errorf("got %d for channel -1, want 0", got)
	}
	if got := ditherChannel(2, 0.99); got != 255 {
		t.Errorf("got %d for channel 2, want 255", got)
	}
}

func TestNewDitherRNGHandlesZeroSeed(t *testing.T) {
	rng := newDitherRNG([2]uint64{0, 0})
	var anyNonzero bool
	for i := 0; i < 8; i++ {
		if rng.next() != 0 {
			anyNonzero = true
		}
	}
	if !anyNonzero {
		t.Errorf("zero seed should be nudged to a nonzero stream")
	}
}
