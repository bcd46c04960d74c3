package dieselcmd

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestValidateCopyRegions(t *testing.T) {
	tests := []struct {
		name     string
		src, dst uint64
		same     bool
		regions  []BufferCopy
		want     int
		err      error
	}{
		{"single", 32, 32, false, []BufferCopy{{0, 0, 16}}, 1, nil},
		{"empty", 32, 32, false, nil, 0, nil},
		{"all zero sized", 32, 32, false, []BufferCopy{{0, 0, 0}, {4, 4, 0}}, 0, nil},
		{"zero sized dropped", 32, 32, false, []BufferCopy{{0, 0, 0}, {0, 0, 8}}, 1, nil},
		{"exact fit", 16, 16, false, []BufferCopy{{0, 0, 16}}, 1, nil},
		{"src out of range", 16, 64, false, []BufferCopy{{8, 0, 16}}, 0, CopyOutOfRange},
		{"dst out of range", 64, 16, false, []BufferCopy{{0, 8, 16}}, 0, CopyOutOfRange},
		{"zero size out of range", 16, 16, false, []BufferCopy{{17, 0, 0}}, 0, CopyOutOfRange},
		{"offset overflow", math.MaxUint64, math.MaxUint64, false, []BufferCopy{{math.MaxUint64, 0, 2}}, 0, CopyOutOfRange},
		{"src overlap", 64, 256, false, []BufferCopy{{0, 0, 16}, {8, 100, 16}}, 0, CopyOverlappingRegions},
		{"dst overlap", 256, 64, false, []BufferCopy{{0, 0, 16}, {100, 8, 16}}, 0, CopyOverlappingRegions},
		{"adjacent counts as overlap", 64, 64, false, []BufferCopy{{0, 0, 16}, {16, 32, 8}}, 0, CopyOverlappingRegions},
		{"disjoint", 64, 64, false, []BufferCopy{{0, 0, 8}, {32, 32, 8}}, 2, nil},
		{"cross buffers may alias offsets", 64, 64, false, []BufferCopy{{0, 32, 8}, {32, 0, 8}}, 2, nil},
		{"same object crossing", 64, 64, true, []BufferCopy{{0, 32, 8}, {32, 0, 8}}, 0, CopyOverlappingRegions},
		{"same object self overlap", 64, 64, true, []BufferCopy{{0, 4, 8}}, 0, CopyOverlappingRegions},
		{"same object disjoint", 64, 64, true, []BufferCopy{{0, 32, 8}}, 1, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateCopyRegions(tt.src, tt.dst, tt.same, tt.regions)
			if !errors.Is(err, tt.err) {
				t.Fatalf("err = %v, want %v", err, tt.err)
			}
			if len(got) != tt.want {
				t.Fatalf("got %d regions, want %d", len(got), tt.want)
			}
		})
	}
}

func TestValidateCopyRegionsKeepsOrder(t *testing.T) {
	in := []BufferCopy{{40, 40, 4}, {0, 0, 0}, {0, 0, 4}, {20, 20, 4}}
	got, err := ValidateCopyRegions(64, 64, false, in)
	if err != nil {
		t.Fatal(err)
	}
	want := []BufferCopy{{40, 40, 4}, {0, 0, 4}, {20, 20, 4}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("region %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestValidateFillRegion(t *testing.T) {
	tests := []struct {
		name         string
		size, offset uint64
		length       uint64
		err          error
	}{
		{"ok", 64, 0, 64, nil},
		{"empty", 64, 8, 0, nil},
		{"misaligned offset", 64, 2, 8, FillWrongAlignment},
		{"misaligned size", 64, 0, 6, FillWrongAlignment},
		{"out of range", 64, 60, 8, FillOutOfRange},
		{"alignment checked first", 4, 2, 64, FillWrongAlignment},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateFillRegion(tt.size, tt.offset, tt.length); !errors.Is(err, tt.err) {
				t.Errorf("err = %v, want %v", err, tt.err)
			}
		})
	}
}

func TestValidateUpdateRegion(t *testing.T) {
	const big = 1 << 20
	tests := []struct {
		name         string
		size, offset uint64
		length       uint64
		data         int
		err          error
	}{
		{"ok", 64, 0, 16, 16, nil},
		{"longer data", 64, 0, 16, 32, nil},
		{"at limit", big, 0, MaxInlineUpdateSize, MaxInlineUpdateSize, nil},
		{"empty", 64, 0, 0, 0, nil},
		{"misaligned", 64, 1, 4, 4, UpdateWrongAlignment},
		{"out of range", 64, 60, 8, 8, UpdateOutOfRange},
		{"too large", big, 0, MaxInlineUpdateSize + 4, MaxInlineUpdateSize + 4, UpdateRegionTooLarge},
		{"data too small", 64, 0, 16, 8, UpdateDataTooSmall},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpdateRegion(tt.size, tt.offset, tt.length, tt.data, MaxInlineUpdateSize)
			if tt.err == nil {
				if err != nil {
					t.Fatalf("unexpected error %v", err)
				}
				return
			}
			if !errors.Is(err, tt.err) {
				t.Fatalf("err = %v, want %v", err, tt.err)
			}
		})
	}
}

func TestUpdateErrorDetails(t *testing.T) {
	err := ValidateUpdateRegion(64, 0, 16, 8, MaxInlineUpdateSize)
	var uerr *BufferUpdateError
	if !errors.As(err, &uerr) {
		t.Fatalf("got %T, want *BufferUpdateError", err)
	}
	if uerr.Requested != 16 || uerr.Max != 8 {
		t.Errorf("requested %d max %d, want 16 and 8", uerr.Requested, uerr.Max)
	}
}

func TestValidateCopyRegionsStable(t *testing.T) {
	in := []BufferCopy{{0, 0, 0}, {8, 8, 8}, {32, 40, 0}, {24, 24, 4}}
	orig := append([]BufferCopy(nil), in...)

	first, err := ValidateCopyRegions(64, 64, false, in)
	if err != nil {
		t.Fatal(err)
	}
	second, err := ValidateCopyRegions(64, 64, false, in)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("results differ: %v and %v", first, second)
	}
	again, err := ValidateCopyRegions(64, 64, false, first)
	if err != nil || !reflect.DeepEqual(again, first) {
		t.Fatalf("validating the result gave %v, %v", again, err)
	}
	if !reflect.DeepEqual(in, orig) {
		t.Fatalf("input changed to %v", in)
	}
}
