package tof

// TRM (TDC Readout Module) and TDC word layouts.
var (
	// Bits 20-27 of the TRM global header are not defined by the hardware format.
	trmGlobalHeaderLayout = newLayout("TRMGlobalHeader",
		fieldDef{"SlotID", 4}, fieldDef{"EventWords", 13}, fieldDef{"ACQBits", 2},
		fieldDef{"LBit", 1}, fieldDef{rsv, 8}, fieldDef{"WordType", 4})

	trmGlobalTrailerLayout = newLayout("TRMGlobalTrailer",
		fieldDef{"SlotID", 4}, fieldDef{"EventCRC", 12}, fieldDef{"EventCounter", 12}, fieldDef{"WordType", 4})

	trmChainHeaderLayout = newLayout("TRMChainHeader",
		fieldDef{"SlotID", 4}, fieldDef{"BunchID", 12}, fieldDef{"PB24Temp", 8},
		fieldDef{"PB24ID", 3}, fieldDef{"TSBit", 1}, fieldDef{"WordType", 4})

	trmChainTrailerLayout = newLayout("TRMChainTrailer",
		fieldDef{"Status", 4}, fieldDef{"MBZ", 12}, fieldDef{"EventCounter", 12}, fieldDef{"WordType", 4})

	tdcPackedHitLayout = newLayout("TDCPackedHit",
		fieldDef{"HitTime", 13}, fieldDef{"TOTWidth", 8}, fieldDef{"Chan", 3}, fieldDef{"TDCID", 4},
		fieldDef{"EBit", 1}, fieldDef{"PSBits", 2}, fieldDef{"MBO", 1})

	tdcUnpackedHitLayout = newLayout("TDCUnpackedHit",
		fieldDef{"HitTime", 21}, fieldDef{"Chan", 3}, fieldDef{"TDCID", 4},
		fieldDef{"EBit", 1}, fieldDef{"PSBits", 2}, fieldDef{"MBO", 1})
)

// TRMGlobalHeader opens the data of one TRM. Its accessors return, from bit 0 up,
// SlotID (4 bits), EventWords (13), ACQBits (2), LBit (1) and WordType (4, bits 28-31).
type TRMGlobalHeader uint32

func (h TRMGlobalHeader) SlotID() uint32     { return trmGlobalHeaderLayout.get(0, uint32(h)) }
func (h TRMGlobalHeader) EventWords() uint32 { return trmGlobalHeaderLayout.get(1, uint32(h)) }

// ACQBits is the acquisition mode; it tells packed from unpacked hits.
func (h TRMGlobalHeader) ACQBits() uint32  { return trmGlobalHeaderLayout.get(2, uint32(h)) }
func (h TRMGlobalHeader) LBit() uint32     { return trmGlobalHeaderLayout.get(3, uint32(h)) }
func (h TRMGlobalHeader) WordType() uint32 { return trmGlobalHeaderLayout.get(5, uint32(h)) }

// TRMGlobalTrailer closes the data of one TRM. It always sits in slot 15.
// Its accessors return SlotID (4 bits), EventCRC (12), EventCounter (12) and WordType (4).
type TRMGlobalTrailer uint32

func (t TRMGlobalTrailer) SlotID() uint32       { return trmGlobalTrailerLayout.get(0, uint32(t)) }
func (t TRMGlobalTrailer) EventCRC() uint32     { return trmGlobalTrailerLayout.get(1, uint32(t)) }
func (t TRMGlobalTrailer) EventCounter() uint32 { return trmGlobalTrailerLayout.get(2, uint32(t)) }
func (t TRMGlobalTrailer) WordType() uint32     { return trmGlobalTrailerLayout.get(3, uint32(t)) }

// TRMChainHeader opens one TDC chain of a TRM. WordType 0 is chain A, 2 is chain B.
// Its accessors return SlotID (4 bits), BunchID (12), PB24Temp (8), PB24ID (3),
// TSBit (1) and WordType (4).
type TRMChainHeader uint32

func (h TRMChainHeader) SlotID() uint32   { return trmChainHeaderLayout.get(0, uint32(h)) }
func (h TRMChainHeader) BunchID() uint32  { return trmChainHeaderLayout.get(1, uint32(h)) }
func (h TRMChainHeader) PB24Temp() uint32 { return trmChainHeaderLayout.get(2, uint32(h)) }
func (h TRMChainHeader) PB24ID() uint32   { return trmChainHeaderLayout.get(3, uint32(h)) }
func (h TRMChainHeader) TSBit() uint32    { return trmChainHeaderLayout.get(4, uint32(h)) }
func (h TRMChainHeader) WordType() uint32 { return trmChainHeaderLayout.get(5, uint32(h)) }

// Chain returns 0 for chain A and 1 for chain B.
func (h TRMChainHeader) Chain() uint32 { return h.WordType() >> 1 }

// TRMChainTrailer closes one TDC chain. WordType 1 is chain A, 3 is chain B.
// Its accessors return Status (4 bits), MBZ (12, must be zero), EventCounter (12) and WordType (4).
type TRMChainTrailer uint32

func (t TRMChainTrailer) Status() uint32       { return trmChainTrailerLayout.get(0, uint32(t)) }
func (t TRMChainTrailer) MBZ() uint32          { return trmChainTrailerLayout.get(1, uint32(t)) }
func (t TRMChainTrailer) EventCounter() uint32 { return trmChainTrailerLayout.get(2, uint32(t)) }
func (t TRMChainTrailer) WordType() uint32     { return trmChainTrailerLayout.get(3, uint32(t)) }

// Chain returns 0 for chain A and 1 for chain B.
func (t TRMChainTrailer) Chain() uint32 { return t.WordType() >> 1 }

// TDCPackedHit is a hit with leading edge time and time-over-threshold.
// Its accessors return HitTime (13 bits), TOTWidth (8), Chan (3), TDCID (4), EBit (1),
// PSBits (2) and MBO (1, must be one).
type TDCPackedHit uint32

func (h TDCPackedHit) HitTime() uint32  { return tdcPackedHitLayout.get(0, uint32(h)) }
func (h TDCPackedHit) TOTWidth() uint32 { return tdcPackedHitLayout.get(1, uint32(h)) }
func (h TDCPackedHit) Chan() uint32     { return tdcPackedHitLayout.get(2, uint32(h)) }
func (h TDCPackedHit) TDCID() uint32    { return tdcPackedHitLayout.get(3, uint32(h)) }
func (h TDCPackedHit) EBit() uint32     { return tdcPackedHitLayout.get(4, uint32(h)) }
func (h TDCPackedHit) PSBits() uint32   { return tdcPackedHitLayout.get(5, uint32(h)) }
func (h TDCPackedHit) MBO() uint32      { return tdcPackedHitLayout.get(6, uint32(h)) }

// TDCUnpackedHit is a single leading or trailing edge with full time resolution.
// Its accessors return HitTime (21 bits), Chan (3), TDCID (4), EBit (1), PSBits (2)
// and MBO (1, must be one).
type TDCUnpackedHit uint32

func (h TDCUnpackedHit) HitTime() uint32 { return tdcUnpackedHitLayout.get(0, uint32(h)) }
func (h TDCUnpackedHit) Chan() uint32    { return tdcUnpackedHitLayout.get(1, uint32(h)) }
func (h TDCUnpackedHit) TDCID() uint32   { return tdcUnpackedHitLayout.get(2, uint32(h)) }
func (h TDCUnpackedHit) EBit() uint32    { return tdcUnpackedHitLayout.get(3, uint32(h)) }
func (h TDCUnpackedHit) PSBits() uint32  { return tdcUnpackedHitLayout.get(4, uint32(h)) }
func (h TDCUnpackedHit) MBO() uint32     { return tdcUnpackedHitLayout.get(5, uint32(h)) }
