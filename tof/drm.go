package tof

// DRM (Data Readout Module) word layouts.
var (
	drmGlobalHeaderLayout = newLayout("DRMGlobalHeader",
		fieldDef{"SlotID", 4}, fieldDef{"EventWords", 17}, fieldDef{"DRMID", 7}, fieldDef{"WordType", 4})

	drmGlobalTrailerLayout = newLayout("DRMGlobalTrailer",
		fieldDef{"SlotID", 4}, fieldDef{"LocalEventCounter", 12}, fieldDef{rsv, 12}, fieldDef{"WordType", 4})

	drmStatusHeader1Layout = newLayout("DRMStatusHeader1",
		fieldDef{"SlotID", 4}, fieldDef{"ParticipatingSlotID", 11}, fieldDef{"CBit", 1},
		fieldDef{"VersionID", 5}, fieldDef{"DRMHSize", 4}, fieldDef{rsv, 3}, fieldDef{"WordType", 4})

	drmStatusHeader2Layout = newLayout("DRMStatusHeader2",
		fieldDef{"SlotID", 4}, fieldDef{"SlotEnableMask", 11}, fieldDef{"MBZ", 1},
		fieldDef{"FaultID", 11}, fieldDef{"RTOBit", 1}, fieldDef{"WordType", 4})

	drmStatusHeader3Layout = newLayout("DRMStatusHeader3",
		fieldDef{"SlotID", 4}, fieldDef{"L0BCID", 12}, fieldDef{"RunTimeInfo", 12}, fieldDef{"WordType", 4})

	drmStatusHeader4Layout = newLayout("DRMStatusHeader4",
		fieldDef{"SlotID", 4}, fieldDef{"Temperature", 10}, fieldDef{"MBZ1", 1}, fieldDef{"ACKBit", 1},
		fieldDef{"SensAD", 3}, fieldDef{"MBZ2", 1}, fieldDef{rsv, 8}, fieldDef{"WordType", 4})

	drmEventCRCLayout = newLayout("DRMEventCRC",
		fieldDef{"SlotID", 4}, fieldDef{"EventCRC", 16}, fieldDef{rsv, 8}, fieldDef{"WordType", 4})
)

// DRMGlobalHeader opens the data of one DRM. Its accessors return, from bit 0 up,
// SlotID (4 bits), EventWords (17), DRMID (7) and WordType (4).
type DRMGlobalHeader uint32

func (h DRMGlobalHeader) SlotID() uint32     { return drmGlobalHeaderLayout.get(0, uint32(h)) }
func (h DRMGlobalHeader) EventWords() uint32 { return drmGlobalHeaderLayout.get(1, uint32(h)) }
func (h DRMGlobalHeader) DRMID() uint32      { return drmGlobalHeaderLayout.get(2, uint32(h)) }
func (h DRMGlobalHeader) WordType() uint32   { return drmGlobalHeaderLayout.get(3, uint32(h)) }

// DRMGlobalTrailer closes the data of one DRM. Its accessors return SlotID (4 bits),
// LocalEventCounter (12) and WordType (4, bits 28-31).
type DRMGlobalTrailer uint32

func (t DRMGlobalTrailer) SlotID() uint32            { return drmGlobalTrailerLayout.get(0, uint32(t)) }
func (t DRMGlobalTrailer) LocalEventCounter() uint32 { return drmGlobalTrailerLayout.get(1, uint32(t)) }
func (t DRMGlobalTrailer) WordType() uint32          { return drmGlobalTrailerLayout.get(3, uint32(t)) }

// DRMStatusHeader1 is the first status word after a DRM global header. Its accessors
// return SlotID (4 bits), ParticipatingSlotID (11), CBit (1), VersionID (5),
// DRMHSize (4) and WordType (4, bits 28-31).
type DRMStatusHeader1 uint32

func (h DRMStatusHeader1) SlotID() uint32 { return drmStatusHeader1Layout.get(0, uint32(h)) }

// ParticipatingSlotID is the mask of TRM slots taking part in the readout.
func (h DRMStatusHeader1) ParticipatingSlotID() uint32 {
	return drmStatusHeader1Layout.get(1, uint32(h))
}

func (h DRMStatusHeader1) CBit() uint32      { return drmStatusHeader1Layout.get(2, uint32(h)) }
func (h DRMStatusHeader1) VersionID() uint32 { return drmStatusHeader1Layout.get(3, uint32(h)) }
func (h DRMStatusHeader1) DRMHSize() uint32  { return drmStatusHeader1Layout.get(4, uint32(h)) }
func (h DRMStatusHeader1) WordType() uint32  { return drmStatusHeader1Layout.get(6, uint32(h)) }

// DRMStatusHeader2 carries slot enable and fault masks. Its accessors return
// SlotID (4 bits), SlotEnableMask (11), MBZ (1), FaultID (11), RTOBit (1) and WordType (4).
type DRMStatusHeader2 uint32

func (h DRMStatusHeader2) SlotID() uint32         { return drmStatusHeader2Layout.get(0, uint32(h)) }
func (h DRMStatusHeader2) SlotEnableMask() uint32 { return drmStatusHeader2Layout.get(1, uint32(h)) }
func (h DRMStatusHeader2) MBZ() uint32            { return drmStatusHeader2Layout.get(2, uint32(h)) }
func (h DRMStatusHeader2) FaultID() uint32        { return drmStatusHeader2Layout.get(3, uint32(h)) }
func (h DRMStatusHeader2) RTOBit() uint32         { return drmStatusHeader2Layout.get(4, uint32(h)) }
func (h DRMStatusHeader2) WordType() uint32       { return drmStatusHeader2Layout.get(5, uint32(h)) }

// DRMStatusHeader3 carries the L0 bunch crossing. Its accessors return SlotID (4 bits),
// L0BCID (12), RunTimeInfo (12) and WordType (4).
type DRMStatusHeader3 uint32

func (h DRMStatusHeader3) SlotID() uint32      { return drmStatusHeader3Layout.get(0, uint32(h)) }
func (h DRMStatusHeader3) L0BCID() uint32      { return drmStatusHeader3Layout.get(1, uint32(h)) }
func (h DRMStatusHeader3) RunTimeInfo() uint32 { return drmStatusHeader3Layout.get(2, uint32(h)) }
func (h DRMStatusHeader3) WordType() uint32    { return drmStatusHeader3Layout.get(3, uint32(h)) }

// DRMStatusHeader4 carries the board temperature readout. Its accessors return
// SlotID (4 bits), Temperature (10), MBZ1 (1), ACKBit (1), SensAD (3), MBZ2 (1)
// and WordType (4, bits 28-31).
type DRMStatusHeader4 uint32

func (h DRMStatusHeader4) SlotID() uint32      { return drmStatusHeader4Layout.get(0, uint32(h)) }
func (h DRMStatusHeader4) Temperature() uint32 { return drmStatusHeader4Layout.get(1, uint32(h)) }
func (h DRMStatusHeader4) MBZ1() uint32        { return drmStatusHeader4Layout.get(2, uint32(h)) }
func (h DRMStatusHeader4) ACKBit() uint32      { return drmStatusHeader4Layout.get(3, uint32(h)) }
func (h DRMStatusHeader4) SensAD() uint32      { return drmStatusHeader4Layout.get(4, uint32(h)) }
func (h DRMStatusHeader4) MBZ2() uint32        { return drmStatusHeader4Layout.get(5, uint32(h)) }
func (h DRMStatusHeader4) WordType() uint32    { return drmStatusHeader4Layout.get(7, uint32(h)) }

// DRMEventCRC holds the CRC of the DRM event data. Its accessors return SlotID (4 bits),
// EventCRC (16) and WordType (4, bits 28-31).
type DRMEventCRC uint32

func (c DRMEventCRC) SlotID() uint32   { return drmEventCRCLayout.get(0, uint32(c)) }
func (c DRMEventCRC) EventCRC() uint32 { return drmEventCRCLayout.get(1, uint32(c)) }
func (c DRMEventCRC) WordType() uint32 { return drmEventCRCLayout.get(3, uint32(c)) }
