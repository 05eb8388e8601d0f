package tof

import (
	"fmt"
	"iter"

	"github.com/arloliu/rawbit/endian"
	"github.com/arloliu/rawbit/errs"
	"github.com/arloliu/rawbit/internal/options"
)

// Kind classifies a readout word.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindDRMGlobalHeader
	KindDRMStatusHeader1
	KindDRMStatusHeader2
	KindDRMStatusHeader3
	KindDRMStatusHeader4
	KindDRMEventCRC
	KindDRMGlobalTrailer
	KindTRMGlobalHeader
	KindTRMGlobalTrailer
	KindTRMChainHeader
	KindTRMChainTrailer
	KindTDCHit
	KindFiller
)

var kindNames = [...]string{
	KindUnknown:          "Unknown",
	KindDRMGlobalHeader:  "DRMGlobalHeader",
	KindDRMStatusHeader1: "DRMStatusHeader1",
	KindDRMStatusHeader2: "DRMStatusHeader2",
	KindDRMStatusHeader3: "DRMStatusHeader3",
	KindDRMStatusHeader4: "DRMStatusHeader4",
	KindDRMEventCRC:      "DRMEventCRC",
	KindDRMGlobalTrailer: "DRMGlobalTrailer",
	KindTRMGlobalHeader:  "TRMGlobalHeader",
	KindTRMGlobalTrailer: "TRMGlobalTrailer",
	KindTRMChainHeader:   "TRMChainHeader",
	KindTRMChainTrailer:  "TRMChainTrailer",
	KindTDCHit:           "TDCHit",
	KindFiller:           "Filler",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return fmt.Sprintf("Kind(%d)", k)
}

// Layout returns the bit layout of words of kind k. Hits use the packed layout;
// fillers and unknown words have none.
func (k Kind) Layout() (*Layout, bool) {
	switch k {
	case KindDRMGlobalHeader:
		return drmGlobalHeaderLayout, true
	case KindDRMStatusHeader1:
		return drmStatusHeader1Layout, true
	case KindDRMStatusHeader2:
		return drmStatusHeader2Layout, true
	case KindDRMStatusHeader3:
		return drmStatusHeader3Layout, true
	case KindDRMStatusHeader4:
		return drmStatusHeader4Layout, true
	case KindDRMEventCRC:
		return drmEventCRCLayout, true
	case KindDRMGlobalTrailer:
		return drmGlobalTrailerLayout, true
	case KindTRMGlobalHeader:
		return trmGlobalHeaderLayout, true
	case KindTRMGlobalTrailer:
		return trmGlobalTrailerLayout, true
	case KindTRMChainHeader:
		return trmChainHeaderLayout, true
	case KindTRMChainTrailer:
		return trmChainTrailerLayout, true
	case KindTDCHit:
		return tdcPackedHitLayout, true
	default:
		return nil, false
	}
}

// Word types, bits 28-31 of every non-hit word.
const (
	wordTypeChainHeaderA  = 0
	wordTypeChainTrailerA = 1
	wordTypeChainHeaderB  = 2
	wordTypeChainTrailerB = 3
	wordTypeGlobalHeader  = 4
	wordTypeGlobalTrailer = 5
	wordTypeFiller        = 7
)

// Slot numbers.
const (
	SlotDRM         = 1
	SlotTRMFirst    = 3
	SlotTRMLast     = 12
	SlotTRMTrailer  = 15
	drmStatusWords  = 4
	hitMarkerOffset = 31
)

// WordType returns bits 28-31 of w.
func WordType(w uint32) uint32 {
	return w >> 28
}

// SlotID returns bits 0-3 of w.
func SlotID(w uint32) uint32 {
	return w & 0xF
}

// IsHit reports whether the must-be-one bit of a TDC hit is set.
func IsHit(w uint32) bool {
	return w>>hitMarkerOffset == 1
}

// Word is one classified readout word.
type Word struct {
	Kind   Kind
	Raw    uint32
	Offset int // Byte offset in the payload
}

// Fields decodes the named fields of w, or nil for words without a layout.
func (w Word) Fields() []FieldValue {
	l, ok := w.Kind.Layout()
	if !ok {
		return nil
	}

	return l.Unpack(w.Raw)
}

func (w Word) String() string {
	return fmt.Sprintf("%s(0x%08x)", w.Kind, w.Raw)
}

// ScannerOption configures a Scanner.
type ScannerOption = options.Option[*Scanner]

// WithEngine sets the byte order of the payload words. The default is little-endian.
func WithEngine(engine endian.EndianEngine) ScannerOption {
	return options.New(func(s *Scanner) error {
		if engine == nil {
			return fmt.Errorf("tof: nil endian engine")
		}
		s.engine = engine

		return nil
	})
}

// Scanner walks a TOF readout payload word by word.
//
// DRM status headers and the event CRC share their word type with the DRM global
// header; the scanner tells them apart by position, the four words after a DRM global
// header being status headers 1 to 4 and the fifth the event CRC.
//
// Unknown words are returned with KindUnknown; they do not stop the scan.
type Scanner struct {
	data   []byte
	off    int
	engine endian.EndianEngine
	drmPos int // words seen since the last DRM global header, -1 outside a DRM header block
}

// NewScanner creates a scanner over data.
func NewScanner(data []byte, opts ...ScannerOption) (*Scanner, error) {
	s := &Scanner{
		data:   data,
		engine: endian.GetLittleEndianEngine(),
		drmPos: -1,
	}
	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}

	return s, nil
}

// Next returns the next word.
//
// Returns errs.ErrOutOfData after the last word. A payload whose length is not a
// multiple of 4 ends with an error matching both errs.ErrTruncatedField and
// errs.ErrOutOfData.
func (s *Scanner) Next() (Word, error) {
	remaining := len(s.data) - s.off
	if remaining == 0 {
		return Word{}, errs.ErrOutOfData
	}
	if remaining < 4 {
		return Word{}, fmt.Errorf("%w: %d trailing bytes at offset %d: %w",
			errs.ErrTruncatedField, remaining, s.off, errs.ErrOutOfData)
	}

	raw := s.engine.Uint32(s.data[s.off:])
	w := Word{Kind: s.classify(raw), Raw: raw, Offset: s.off}
	s.off += 4

	return w, nil
}

// All iterates over the remaining words. A truncated payload yields one final error.
func (s *Scanner) All() iter.Seq2[Word, error] {
	return func(yield func(Word, error) bool) {
		for {
			w, err := s.Next()
			if err != nil {
				if err != errs.ErrOutOfData { //nolint: errorlint
					yield(Word{Offset: s.off}, err)
				}

				return
			}
			if !yield(w, nil) {
				return
			}
		}
	}
}

// Reset rewinds the scanner over new data.
func (s *Scanner) Reset(data []byte) {
	s.data = data
	s.off = 0
	s.drmPos = -1
}

func (s *Scanner) classify(w uint32) Kind {
	if s.drmPos >= 0 {
		s.drmPos++
		if SlotID(w) == SlotDRM && !IsHit(w) {
			switch {
			case s.drmPos <= drmStatusWords:
				return KindDRMStatusHeader1 + Kind(s.drmPos-1) //nolint: gosec
			case s.drmPos == drmStatusWords+1:
				s.drmPos = -1
				return KindDRMEventCRC
			}
		}
		// Short header block; classify normally from here on.
		s.drmPos = -1
	}

	if IsHit(w) {
		return KindTDCHit
	}

	slot := SlotID(w)
	switch WordType(w) {
	case wordTypeGlobalHeader:
		switch {
		case slot == SlotDRM:
			s.drmPos = 0
			return KindDRMGlobalHeader
		case slot >= SlotTRMFirst && slot <= SlotTRMLast:
			return KindTRMGlobalHeader
		}
	case wordTypeGlobalTrailer:
		switch slot {
		case SlotDRM:
			return KindDRMGlobalTrailer
		case SlotTRMTrailer:
			return KindTRMGlobalTrailer
		}
	case wordTypeChainHeaderA, wordTypeChainHeaderB:
		return KindTRMChainHeader
	case wordTypeChainTrailerA, wordTypeChainTrailerB:
		return KindTRMChainTrailer
	case wordTypeFiller:
		return KindFiller
	}

	return KindUnknown
}
