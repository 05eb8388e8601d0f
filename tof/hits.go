package tof

import (
	"fmt"

	"github.com/arloliu/rawbit/codec"
	"github.com/arloliu/rawbit/errs"
	"github.com/arloliu/rawbit/param"
)

// Hit parameter names, in cycling order.
const (
	ParamChan = "chan"
	ParamTDC  = "tdc"
	ParamTime = "time"
	ParamTOT  = "tot"
)

// hitParameters is shared read-only by every codec built from HitParameters.
var hitParameters = param.MustNewTable(
	param.Definition{Name: ParamChan, BitLength: 3},
	param.Definition{Name: ParamTDC, BitLength: 4},
	param.Definition{Name: ParamTime, BitLength: 13},
	param.Definition{Name: ParamTOT, BitLength: 8, ReducedBitLength: 5},
)

// HitParameters returns the parameter table that packs a TDCPackedHit as four
// values: channel, TDC, hit time and time-over-threshold. Short pulses dominate, so
// the time-over-threshold carries a reduced width.
func HitParameters() *param.Table {
	return hitParameters
}

// NewPackedHit builds a packed hit word. The must-be-one bit is set; EBit and PSBits
// are zero.
func NewPackedHit(ch, tdc, hitTime, tot uint32) (TDCPackedHit, error) {
	w, err := tdcPackedHitLayout.Pack(hitTime, tot, ch, tdc, 0, 0, 1)
	if err != nil {
		return 0, err
	}

	return TDCPackedHit(w), nil
}

// DeflateHit writes the four hit parameters of h to d. d must be configured with
// HitParameters and positioned at a hit boundary.
func DeflateHit(d codec.Deflater, h TDCPackedHit) error {
	for _, v := range [...]uint32{h.Chan(), h.TDCID(), h.HitTime(), h.TOTWidth()} {
		if err := d.Deflate(uint64(v)); err != nil {
			return err
		}
	}

	return nil
}

// InflateHit reads the four hit parameters of one hit from in.
//
// Returns errs.ErrOutOfData at a clean end of stream. A stream ending inside a hit
// is reported as errs.ErrTruncatedField joined with errs.ErrOutOfData.
func InflateHit(in codec.Inflater) (TDCPackedHit, error) {
	var vals [4]uint32
	for i := range vals {
		v, _, err := in.NextValue()
		if err != nil {
			if i > 0 && codec.IsEndOfStream(err) {
				return 0, fmt.Errorf("%w: hit ends after %d of 4 values: %w", errs.ErrTruncatedField, i, err)
			}

			return 0, err
		}
		vals[i] = uint32(v) //nolint: gosec
	}

	return NewPackedHit(vals[0], vals[1], vals[2], vals[3])
}

// HitTrainers returns one Huffman trainer per hit parameter, in cycling order.
func HitTrainers() []*codec.HuffmanTrainer {
	trainers := make([]*codec.HuffmanTrainer, 0, hitParameters.Len())
	for _, d := range hitParameters.Definitions() {
		t, err := codec.NewHuffmanTrainer(d.Name, d.BitLength)
		if err != nil {
			panic(fmt.Sprintf("tof: hit parameter %s: %v", d, err))
		}
		trainers = append(trainers, t)
	}

	return trainers
}

// TrainHitCoders builds Huffman coders for HitParameters from sample hits.
func TrainHitCoders(hits []TDCPackedHit) ([]*codec.HuffmanCoder, error) {
	trainers := HitTrainers()
	for _, h := range hits {
		vals := [...]uint32{h.Chan(), h.TDCID(), h.HitTime(), h.TOTWidth()}
		for i, v := range vals {
			if err := trainers[i].AddTrainingValue(uint64(v)); err != nil {
				return nil, err
			}
		}
	}

	coders := make([]*codec.HuffmanCoder, len(trainers))
	for i, t := range trainers {
		c, err := t.Build()
		if err != nil {
			return nil, err
		}
		coders[i] = c
	}

	return coders, nil
}
