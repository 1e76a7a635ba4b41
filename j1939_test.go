package j1939

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestParseCANID(t *testing.T) {
	var testCases = []struct {
		name   string
		canID  uint32
		expect Header
	}{
		{
			name:  "ok, 18FEF100 broadcast",
			canID: 0x18FEF100,
			expect: Header{
				Priority:      6,
				Reserved:      0,
				DataPage:      0,
				PDUFormat:     0xFE,
				PDUSpecific:   0xF1,
				SourceAddress: 0x00,
				PGN:           65265, // 0xFEF1
			},
		},
		{
			name:  "ok, 18EAFFFE ISO request is destination specific",
			canID: 0x18EAFFFE,
			expect: Header{
				Priority:      6,
				PDUFormat:     0xEA,
				PDUSpecific:   0xFF, // destination, not part of PGN
				SourceAddress: 0xFE,
				PGN:           59904, // 0xEA00
			},
		},
		{
			name:  "ok, 0F001DA1 reserved and data page set",
			canID: 251665825, // 0F001DA1
			expect: Header{
				Priority:      3,
				Reserved:      1,
				DataPage:      1,
				PDUFormat:     0x00,
				PDUSpecific:   0x1D,
				SourceAddress: 0xA1,
				PGN:           0x10000, // reserved bit is not part of PGN
			},
		},
		{
			name:  "ok, PDU format 240 is broadcast",
			canID: 0x18F00100,
			expect: Header{
				Priority:    6,
				PDUFormat:   0xF0,
				PDUSpecific: 0x01,
				PGN:         0xF001,
			},
		},
		{
			name:  "ok, PDU format 239 is destination specific",
			canID: 0x18EF0100,
			expect: Header{
				Priority:    6,
				PDUFormat:   0xEF,
				PDUSpecific: 0x01,
				PGN:         0xEF00,
			},
		},
		{
			name:  "ok, 00010005",
			canID: 0x00010005,
			expect: Header{
				PDUFormat:     0x01,
				SourceAddress: 0x05,
				PGN:           0x100,
			},
		},
		{
			name:  "ok, bits above 28 are ignored",
			canID: 0xFFFFFFFF,
			expect: Header{
				Priority:      7,
				Reserved:      1,
				DataPage:      1,
				PDUFormat:     0xFF,
				PDUSpecific:   0xFF,
				SourceAddress: 0xFF,
				PGN:           0x1FFFF,
			},
		},
		{
			name:   "ok, zero",
			canID:  0,
			expect: Header{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			header := ParseCANID(tc.canID)
			assert.Equal(t, tc.expect, header)
		})
	}
}

func TestHeader_IsPDU2(t *testing.T) {
	for pf := 0; pf <= 0xFF; pf++ {
		h := Header{PDUFormat: uint8(pf)}
		assert.Equal(t, pf >= 240, h.IsPDU2(), "pdu format %d", pf)
		assert.Equal(t, pf < 240, h.IsPDU1(), "pdu format %d", pf)
	}
}

func TestPGNFromFields(t *testing.T) {
	var testCases = []struct {
		name        string
		dataPage    uint8
		pduFormat   uint8
		pduSpecific uint8
		expect      uint32
	}{
		{
			name:        "ok, PDU2 includes PDU specific",
			pduFormat:   0xFE,
			pduSpecific: 0xEE,
			expect:      0xFEEE,
		},
		{
			name:        "ok, PDU1 drops PDU specific",
			pduFormat:   0xEA,
			pduSpecific: 0x21,
			expect:      0xEA00,
		},
		{
			name:        "ok, data page",
			dataPage:    1,
			pduFormat:   0xFD,
			pduSpecific: 0x07,
			expect:      0x1FD07,
		},
		{
			name:        "ok, data page is masked to single bit",
			dataPage:    0xFF,
			pduFormat:   0x01,
			pduSpecific: 0x07,
			expect:      0x10100,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, PGNFromFields(tc.dataPage, tc.pduFormat, tc.pduSpecific))
		})
	}
}

func TestHeader_Uint32(t *testing.T) {
	var testCases = []struct {
		name   string
		when   Header
		expect uint32
	}{
		{
			name: "ok, 65265 broadcast",
			when: Header{
				Priority:    6,
				PDUFormat:   0xFE,
				PDUSpecific: 0xF1,
			},
			expect: 0x18FEF100,
		},
		{
			name: "ok, PGN field is not consulted",
			when: Header{
				Priority:      6,
				PDUFormat:     0xEA,
				PDUSpecific:   0xFF,
				SourceAddress: 0xFE,
				PGN:           0x1FFFF,
			},
			expect: 0x18EAFFFE,
		},
		{
			name: "ok, out of range priority, reserved and data page are truncated",
			when: Header{
				Priority:    0xFF,
				Reserved:    0xFF,
				DataPage:    0xFE,
				PDUFormat:   0x01,
				PDUSpecific: 0x02,
			},
			expect: 0x1E010200,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.when.Uint32())
		})
	}
}

func TestBuildCANID(t *testing.T) {
	var testCases = []struct {
		name          string
		priority      uint8
		pgn           uint32
		sourceAddress uint8
		reserved      uint8
		expect        uint32
	}{
		{
			name:     "ok, 65262 from address 0",
			priority: 6,
			pgn:      65262, // 0xFEEE
			expect:   0x18FEEE00,
		},
		{
			name:          "ok, PDU1 PGN 256 from address 5",
			priority:      0,
			pgn:           0x100,
			sourceAddress: 0x05,
			expect:        0x00010005,
		},
		{
			name:          "ok, PDU1 PGN with destination bits keeps them in PDU specific",
			priority:      6,
			pgn:           0xEAFF,
			sourceAddress: 0xFE,
			expect:        0x18EAFFFE,
		},
		{
			name:          "ok, reserved and data page",
			priority:      3,
			pgn:           0x10000,
			sourceAddress: 0xA1,
			reserved:      1,
			expect:        0x0F0000A1,
		},
		{
			name:     "ok, priority and reserved are truncated",
			priority: 0xFF,
			pgn:      0xFEEE,
			reserved: 0xFF,
			expect:   0x1EFEEE00,
		},
		{
			name:     "ok, PGN bits above 16 are ignored",
			priority: 6,
			pgn:      0x3FEEE,
			expect:   0x19FEEE00,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := BuildCANID(tc.priority, tc.pgn, tc.sourceAddress, tc.reserved)
			assert.Equal(t, tc.expect, result)
		})
	}
}

func TestBuildCANIDFromInts(t *testing.T) {
	var testCases = []struct {
		name          string
		priority      int64
		pgn           int64
		sourceAddress int64
		reserved      int64
		expect        uint32
	}{
		{
			name:     "ok, in range values",
			priority: 6,
			pgn:      65262,
			expect:   0x18FEEE00,
		},
		{
			name:          "ok, negative values are masked",
			priority:      -1,
			pgn:           0xFEEE,
			sourceAddress: -1,
			expect:        0x1CFEEEFF,
		},
		{
			name:          "ok, values one past their width wrap to zero",
			priority:      8,
			pgn:           0x2FEEE,
			sourceAddress: 256,
			reserved:      2,
			expect:        0x00FEEE00,
		},
		{
			name:   "ok, negative PGN",
			pgn:    -1,
			expect: 0x01FFFF00,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := BuildCANIDFromInts(tc.priority, tc.pgn, tc.sourceAddress, tc.reserved)
			assert.Equal(t, tc.expect, result)
		})
	}
}

func TestParseCANID_roundTripPrimitiveFields(t *testing.T) {
	ids := []uint32{0, 1, 0xFF, 0x100, 0x10000, 0x1000000, 0x2000000, 0x4000000, CANIDMask}
	for id := uint32(0); id <= CANIDMask; id += 104729 {
		ids = append(ids, id)
	}
	for _, id := range ids {
		h := ParseCANID(id)
		if !assert.Equal(t, id, h.Uint32(), "can id 0x%08X", id) {
			return
		}
		assert.Equal(t, id, BuildCANID(h.Priority, uint32(h.DataPage)<<16|uint32(h.PDUFormat)<<8|uint32(h.PDUSpecific), h.SourceAddress, h.Reserved))
	}
}

func TestBuildCANID_roundTripPDU2(t *testing.T) {
	for pgn := uint32(0); pgn <= PGNMask; pgn++ {
		if (pgn>>8)&0xFF < PDU2FormatStart {
			continue
		}
		for _, prio := range []uint8{0, 3, 7} {
			for _, reserved := range []uint8{0, 1} {
				h := ParseCANID(BuildCANID(prio, pgn, 0x2A, reserved))
				if !assert.Equal(t, pgn, h.PGN) {
					return
				}
				assert.Equal(t, prio, h.Priority)
				assert.Equal(t, reserved, h.Reserved)
				assert.Equal(t, uint8(0x2A), h.SourceAddress)
			}
		}
	}
}

func TestBuildCANID_roundTripPDU1DropsPDUSpecific(t *testing.T) {
	for pgn := uint32(0); pgn <= PGNMask; pgn++ {
		pf := (pgn >> 8) & 0xFF
		if pf >= PDU2FormatStart {
			continue
		}
		h := ParseCANID(BuildCANID(6, pgn, 0x80, 0))

		expect := (pgn>>16)<<16 | pf<<8
		if !assert.Equal(t, expect, h.PGN, "pgn 0x%05X", pgn) {
			return
		}
		assert.Equal(t, uint8(pgn), h.PDUSpecific) // bits are still in identifier
	}
}

func TestBuildCANID_maskingLaw(t *testing.T) {
	for _, prio := range []int64{-9, -1, 0, 5, 7, 8, 13, 255, 1 << 40} {
		for _, reserved := range []int64{-1, 0, 1, 2, 3} {
			for _, sa := range []int64{-1, 0, 0x7F, 0xFF, 0x100, 0x1AB} {
				expect := BuildCANIDFromInts(prio&0x7, 0xFEEE, sa&0xFF, reserved&0x1)
				assert.Equal(t, expect, BuildCANIDFromInts(prio, 0xFEEE, sa, reserved))
			}
		}
	}
}
