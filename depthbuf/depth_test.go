package depthbuf

import (
	"sync"
	"testing"

	"github.com/cpuforge/raster3d"
)

func TestTestAndSetAcceptsCloserDepth(t *testing.T) {
	b := New(4, 4)
	ok, err := b.TestAndSet(1, 1, 5, raster3d.Opaque(1, 2, 3))
	if err != nil {
		t.Fatalf("TestAndSet: %v", err)
	}
	if !ok {
		t.Fatal("TestAndSet(5) against +Inf should have succeeded")
	}
	got, err := b.DepthAt(1, 1)
	if err != nil {
		t.Fatalf("DepthAt: %v", err)
	}
	if got != 5 {
		t.Fatalf("DepthAt(1,1) = %v, want 5", got)
	}
	if c, err := b.ColorAt(1, 1); err != nil || c != raster3d.Opaque(1, 2, 3) {
		t.Fatalf("ColorAt(1,1) = %v, %v, want (1,2,3,255)", c, err)
	}
}

func TestTestAndSetRejectsFartherDepth(t *testing.T) {
	b := New(4, 4)
	if ok, err := b.TestAndSet(0, 0, 5, raster3d.Opaque(255, 0, 0)); err != nil || !ok {
		t.Fatalf("first TestAndSet failed: ok=%v err=%v", ok, err)
	}
	ok, err := b.TestAndSet(0, 0, 10, raster3d.Opaque(0, 255, 0))
	if err != nil {
		t.Fatalf("TestAndSet: %v", err)
	}
	if ok {
		t.Fatal("TestAndSet(10) should have lost to the closer existing depth 5")
	}
	got, _ := b.DepthAt(0, 0)
	if got != 5 {
		t.Fatalf("DepthAt(0,0) = %v, want unchanged 5", got)
	}
	if c, _ := b.ColorAt(0, 0); c != raster3d.Opaque(255, 0, 0) {
		t.Fatalf("ColorAt(0,0) = %v, want the winning fragment's red, unchanged by the losing write", c)
	}
}

func TestTestAndSetOutOfRange(t *testing.T) {
	b := New(2, 2)
	if _, err := b.TestAndSet(5, 5, 1, raster3d.Black); err == nil {
		t.Fatal("expected an out-of-range error")
	}
}

// TestTestAndSetConcurrentDepthAndColorStayPaired is the depth-ordering
// race finding 2 in the review describes: many fragments at the same
// pixel with distinct (z, color) pairs, racing TestAndSet concurrently.
// The buffer must never end up with one fragment's depth and another
// fragment's color — whichever fragment has the smallest z must be the
// one whose depth AND color both land.
func TestTestAndSetConcurrentDepthAndColorStayPaired(t *testing.T) {
	b := New(1, 1)
	const n = 200
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		z := float64(n - i)
		shade := uint8(i % 256)
		go func(z float64, shade uint8) {
			defer wg.Done()
			b.TestAndSet(0, 0, z, raster3d.Opaque(shade, shade, shade))
		}(z, shade)
	}
	wg.Wait()

	gotZ, _ := b.DepthAt(0, 0)
	if gotZ != 1 {
		t.Fatalf("final depth = %v, want 1 (the closest candidate)", gotZ)
	}
	// The fragment with z=1 was submitted with shade=(n-1)%256.
	wantShade := uint8((n - 1) % 256)
	gotColor, _ := b.ColorAt(0, 0)
	if gotColor != raster3d.Opaque(wantShade, wantShade, wantShade) {
		t.Fatalf("final color = %v, want the shade paired with the winning depth (%d,%d,%d)",
			gotColor, wantShade, wantShade, wantShade)
	}
}

// TestTestAndSetNearerFragmentWinsRegardlessOfArrivalOrder exercises S3
// (a nearer fragment arriving after a farther one still wins) and S4
// (a farther fragment arriving after a nearer one always loses), the
// scenarios SPEC_FULL §8's S3/S4 commit to testing.
func TestTestAndSetNearerFragmentWinsRegardlessOfArrivalOrder(t *testing.T) {
	t.Run("nearer arrives second", func(t *testing.T) {
		b := New(1, 1)
		far := raster3d.Opaque(255, 0, 0)
		near := raster3d.Opaque(0, 255, 0)

		if ok, err := b.TestAndSet(0, 0, 2, far); err != nil || !ok {
			t.Fatalf("far fragment should have won against +Inf: ok=%v err=%v", ok, err)
		}
		if ok, err := b.TestAndSet(0, 0, 1, near); err != nil || !ok {
			t.Fatalf("nearer fragment arriving second should still win: ok=%v err=%v", ok, err)
		}
		if c, _ := b.ColorAt(0, 0); c != near {
			t.Fatalf("ColorAt = %v, want the nearer fragment's color", c)
		}
	})

	t.Run("farther arrives second", func(t *testing.T) {
		b := New(1, 1)
		near := raster3d.Opaque(0, 255, 0)
		far := raster3d.Opaque(255, 0, 0)

		if ok, err := b.TestAndSet(0, 0, 1, near); err != nil || !ok {
			t.Fatalf("near fragment should have won against +Inf: ok=%v err=%v", ok, err)
		}
		if ok, err := b.TestAndSet(0, 0, 2, far); err != nil || ok {
			t.Fatalf("farther fragment arriving second should lose: ok=%v err=%v", ok, err)
		}
		if c, _ := b.ColorAt(0, 0); c != near {
			t.Fatalf("ColorAt = %v, want the still-winning nearer fragment's color", c)
		}
	})
}

func TestClearResetsToInfinity(t *testing.T) {
	b := New(2, 2)
	b.TestAndSet(0, 0, 3, raster3d.Opaque(9, 9, 9))
	b.Clear()
	if c, _ := b.ColorAt(0, 0); c != raster3d.Black {
		t.Fatalf("ColorAt immediately after Clear = %v, want Black", c)
	}

	ok, err := b.TestAndSet(0, 0, 1000, raster3d.Opaque(1, 1, 1))
	if err != nil {
		t.Fatalf("TestAndSet: %v", err)
	}
	if !ok {
		t.Fatal("TestAndSet(1000) after Clear should have succeeded against +Inf")
	}
	if c, _ := b.ColorAt(0, 0); c != raster3d.Opaque(1, 1, 1) {
		t.Fatalf("ColorAt after the post-clear write = %v, want (1,1,1,255)", c)
	}
}
