package clipmap

import (
	"errors"
	"testing"
)

func TestCheckCoverage(t *testing.T) {
	for levels := 0; levels <= 6; levels++ {
		tiles := Layout(1, 4, levels)
		if err := CheckCoverage(tiles, 1, levels); err != nil {
			t.Errorf("levels %d: %v", levels, err)
		}
	}
}

func TestCheckCoverageDetectsOverlap(t *testing.T) {
	tiles := Layout(1, 4, 2)
	tiles[5].X = tiles[4].X // second top tile on top of the first

	if err := CheckCoverage(tiles, 1, 2); !errors.Is(err, ErrCoverage) {
		t.Errorf("expected ErrCoverage, got %v", err)
	}
}

func TestCheckCoverageDetectsGap(t *testing.T) {
	tiles := Layout(1, 4, 2)
	tiles = append(tiles[:6], tiles[7:]...) // drop a shell tile

	if err := CheckCoverage(tiles, 1, 2); !errors.Is(err, ErrCoverage) {
		t.Errorf("expected ErrCoverage, got %v", err)
	}
}

func TestCheckIndices(t *testing.T) {
	g, err := New(Config{Scale: 1, Resolution: 4, Levels: 2})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := CheckIndices(g.Buffers, 4); err != nil {
		t.Errorf("CheckIndices failed on a fresh build: %v", err)
	}

	g.Buffers.Indices[len(g.Buffers.Indices)-1] = 0
	if err := CheckIndices(g.Buffers, 4); !errors.Is(err, ErrIndexRange) {
		t.Errorf("expected ErrIndexRange, got %v", err)
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name       string
		cfg        Config
		seamsError bool
	}{
		{"even resolution", Config{Scale: 1, Resolution: 8, Levels: 3}, false},
		{"odd resolution with shells", Config{Scale: 1, Resolution: 5, Levels: 2}, true},
		{"odd resolution center only", Config{Scale: 1, Resolution: 5, Levels: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.cfg)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}

			reports := Verify(g)
			if len(reports) != 3 {
				t.Fatalf("expected 3 reports, got %d", len(reports))
			}
			for _, r := range reports {
				if r.Name == "seams" {
					if got := errors.Is(r.Err, ErrSeams); got != tt.seamsError {
						t.Errorf("seams: got %v, want error=%v", r.Err, tt.seamsError)
					}
					continue
				}
				if r.Err != nil {
					t.Errorf("%s: %v", r.Name, r.Err)
				}
			}
		})
	}
}
