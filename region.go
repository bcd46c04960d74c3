package dieselcmd

import "math/bits"

// BufferCopy is one region of a buffer to buffer copy, in bytes.
type BufferCopy struct {
	SrcOffset uint64
	DstOffset uint64
	Size      uint64
}

// end returns offset+size and whether it fits into limit without overflow.
func end(offset, size, limit uint64) (uint64, bool) {
	sum, carry := bits.Add64(offset, size, 0)
	return sum, carry == 0 && sum <= limit
}

// touches reports whether the closed ranges [a, a+sa] and [b, b+sb] intersect.
// Ranges that only share an endpoint count as overlapping.
func touches(a, sa, b, sb uint64) bool {
	return a <= b+sb && b <= a+sa
}

// ValidateCopyRegions checks regions against the sizes of the source and
// destination buffers and returns the regions that must be recorded, zero
// sized ones removed and order preserved. A nil result with a nil error means
// there is nothing to copy. sameObject tells whether source and destination
// are the same device object.
func ValidateCopyRegions(srcSize, dstSize uint64, sameObject bool, regions []BufferCopy) ([]BufferCopy, error) {
	var out []BufferCopy
	for _, r := range regions {
		if _, ok := end(r.SrcOffset, r.Size, srcSize); !ok {
			return nil, CopyOutOfRange
		}
		if _, ok := end(r.DstOffset, r.Size, dstSize); !ok {
			return nil, CopyOutOfRange
		}
		if r.Size == 0 {
			continue
		}
		out = append(out, r)
	}
	if len(out) == 0 {
		return nil, nil
	}

	for i := range out {
		r1 := &out[i]
		if sameObject && touches(r1.SrcOffset, r1.Size, r1.DstOffset, r1.Size) {
			return nil, CopyOverlappingRegions
		}
		for j := i + 1; j < len(out); j++ {
			r2 := &out[j]
			if touches(r1.SrcOffset, r1.Size, r2.SrcOffset, r2.Size) {
				return nil, CopyOverlappingRegions
			}
			if touches(r1.DstOffset, r1.Size, r2.DstOffset, r2.Size) {
				return nil, CopyOverlappingRegions
			}
			if !sameObject {
				continue
			}
			if touches(r1.SrcOffset, r1.Size, r2.DstOffset, r2.Size) ||
				touches(r2.SrcOffset, r2.Size, r1.DstOffset, r1.Size) {
				return nil, CopyOverlappingRegions
			}
		}
	}
	return out, nil
}

// ValidateFillRegion checks a fill of size bytes at offset into a buffer of
// bufSize bytes.
func ValidateFillRegion(bufSize, offset, size uint64) error {
	if offset%4 != 0 || size%4 != 0 {
		return FillWrongAlignment
	}
	if _, ok := end(offset, size, bufSize); !ok {
		return FillOutOfRange
	}
	return nil
}

// ValidateUpdateRegion checks an inline update of size bytes at offset into a
// buffer of bufSize bytes, sourced from dataLen bytes. maxSize is the inline
// data limit.
func ValidateUpdateRegion(bufSize, offset, size uint64, dataLen int, maxSize uint64) error {
	if offset%4 != 0 || size%4 != 0 {
		return &BufferUpdateError{Kind: UpdateWrongAlignment}
	}
	if _, ok := end(offset, size, bufSize); !ok {
		return &BufferUpdateError{Kind: UpdateOutOfRange}
	}
	if size == 0 {
		return nil
	}
	if size > maxSize {
		return &BufferUpdateError{Kind: UpdateRegionTooLarge, Requested: size, Max: maxSize}
	}
	if uint64(dataLen) < size {
		return &BufferUpdateError{Kind: UpdateDataTooSmall, Requested: size, Max: uint64(dataLen)}
	}
	return nil
}
