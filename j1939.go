package j1939

// CANIDMask covers the 29 bits of extended CAN identifier. Everything above bit 28 is ignored.
const CANIDMask = 0x1FFFFFFF

// PDU2FormatStart is the first PDU Format value of broadcast (PDU2) messages. Formats 0-239 are
// destination specific (PDU1).
const PDU2FormatStart = 240

// PGNMask covers data page, PDU format and PDU specific bits of PGN.
const PGNMask = 0x1FFFF

const (
	bitSourceAddress = 0
	bitPDUSpecific   = 8
	bitPDUFormat     = 16
	bitDataPage      = 24
	bitReserved      = 25
	bitPriority      = 26
)

// Header contains fields of J1939 29-bit CAN identifier.
//
// For PDU1 messages (PDUFormat < 240) PDUSpecific holds what the protocol treats as destination
// address. It is kept here as raw bits but it is not part of PGN and no separate destination
// field is provided.
type Header struct {
	Priority      uint8 `json:"priority" yaml:"priority"`             // bits 26,27,28
	Reserved      uint8 `json:"reserved" yaml:"reserved"`             // bit 25
	DataPage      uint8 `json:"data_page" yaml:"data_page"`           // bit 24
	PDUFormat     uint8 `json:"pdu_format" yaml:"pdu_format"`         // bits 16-23
	PDUSpecific   uint8 `json:"pdu_specific" yaml:"pdu_specific"`     // bits 8-15
	SourceAddress uint8 `json:"source_address" yaml:"source_address"` // bits 0-7

	PGN uint32 `json:"pgn" yaml:"pgn"`
}

// ParseCANID parses header fields from CAN ID (29 bits of 32 bit).
func ParseCANID(canID uint32) Header {
	h := Header{
		Priority:      uint8((canID >> bitPriority) & 0x7),
		Reserved:      uint8((canID >> bitReserved) & 0x1),
		DataPage:      uint8((canID >> bitDataPage) & 0x1),
		PDUFormat:     uint8(canID >> bitPDUFormat),
		PDUSpecific:   uint8(canID >> bitPDUSpecific),
		SourceAddress: uint8(canID >> bitSourceAddress),
	}
	h.PGN = PGNFromFields(h.DataPage, h.PDUFormat, h.PDUSpecific)
	return h
}

// PGNFromFields calculates Parameter Group Number from identifier fields. PDU specific byte is
// included only for broadcast (PDU2) messages.
func PGNFromFields(dataPage uint8, pduFormat uint8, pduSpecific uint8) uint32 {
	pgn := uint32(dataPage&0x1)<<16 | uint32(pduFormat)<<8
	if pduFormat < PDU2FormatStart {
		return pgn
	}
	return pgn | uint32(pduSpecific)
}

// IsPDU2 returns true when header describes broadcast message.
func (h Header) IsPDU2() bool {
	return h.PDUFormat >= PDU2FormatStart
}

// IsPDU1 returns true when header describes destination specific message.
func (h Header) IsPDU1() bool {
	return !h.IsPDU2()
}

// Uint32 assembles CAN ID from header primitive fields. PGN field is not consulted.
func (h Header) Uint32() uint32 {
	return assemble(h.Priority, h.Reserved, h.DataPage, h.PDUFormat, h.PDUSpecific, h.SourceAddress)
}

// BuildCANID creates CAN ID from priority, PGN, source address and reserved bit. Priority and
// reserved are truncated to their bit width. PGN is split to data page (bit 16), PDU format
// (bits 8-15) and PDU specific (bits 0-7) as is, so for PDU1 PGNs whatever is in the lowest byte
// ends up in PDU specific slot.
func BuildCANID(priority uint8, pgn uint32, sourceAddress uint8, reserved uint8) uint32 {
	return assemble(
		priority,
		reserved,
		uint8(pgn>>16),
		uint8(pgn>>8),
		uint8(pgn),
		sourceAddress,
	)
}

// BuildCANIDFromInts is BuildCANID for callers that have plain integers. Every value is masked to
// its field width, out of range values are truncated and never rejected.
func BuildCANIDFromInts(priority int64, pgn int64, sourceAddress int64, reserved int64) uint32 {
	return BuildCANID(
		uint8(priority&0x7),
		uint32(pgn&PGNMask),
		uint8(sourceAddress&0xFF),
		uint8(reserved&0x1),
	)
}

func assemble(priority, reserved, dataPage, pduFormat, pduSpecific, sourceAddress uint8) uint32 {
	canID := uint32(sourceAddress)                 // bits 0-7
	canID |= uint32(pduSpecific) << bitPDUSpecific // bits 8-15
	canID |= uint32(pduFormat) << bitPDUFormat     // bits 16-23
	canID |= uint32(dataPage&0x1) << bitDataPage   // bit 24
	canID |= uint32(reserved&0x1) << bitReserved   // bit 25
	canID |= uint32(priority&0x7) << bitPriority   // bit 26,27,28
	return canID
}
