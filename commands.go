package oled

const (
	setMemoryMode         = 0x20
	setColumnAddr         = 0x21
	setPageAddr           = 0x22
	setStartLine          = 0x40
	setContrast           = 0x81
	setChargePump         = 0x8D
	setSegmentRemap       = 0xA0
	setDisplayAllOnResume = 0xA4
	setNormalDisplay      = 0xA6
	setMultiplexRatio     = 0xA8
	setIRefSelect         = 0xAD
	setDisplay            = 0xAE
	setComScan            = 0xC0
	setDisplayOffset      = 0xD3
	setDisplayClockDiv    = 0xD5
	setPrecharge          = 0xD9
	setComPins            = 0xDA
	setVComDeselect       = 0xDB
)

const (
	displayOn          = setDisplay | 0x01
	displayOff         = setDisplay | 0x00
	memoryHorizontal   = 0x00
	segmentRemapped    = setSegmentRemap | 0x01 // column 127 is SEG0
	comScanRemapped    = setComScan | 0x08      // scan from COM[N-1] to COM0
	comPinsSequential  = 0x02
	comPinsAlternative = 0x12
)

// initSequence returns the one-time controller setup for g.
func initSequence(g Geometry, externalVCC bool) [][]byte {
	var (
		precharge  byte = 0xF1
		chargePump byte = 0x14
	)
	if externalVCC {
		precharge, chargePump = 0x22, 0x10
	}
	seq := [][]byte{
		{displayOff},
		{setMemoryMode, memoryHorizontal},
		{setStartLine | 0x00},
		{segmentRemapped},
		{setMultiplexRatio, byte(g.Height - 1)},
		{comScanRemapped},
		{setDisplayOffset, 0x00},
		{setComPins, g.comPins()},
		{setDisplayClockDiv, 0x80},
		{setPrecharge, precharge},
		{setVComDeselect, 0x30},
		{setContrast, 0xFF},
		{setDisplayAllOnResume},
		{setNormalDisplay},
		{setChargePump, chargePump},
		{displayOn},
	}
	if g.Width == 72 {
		// 72x40 modules need the internal current reference enabled.
		seq = append(seq, []byte{setIRefSelect, 0x30})
	}
	return seq
}
