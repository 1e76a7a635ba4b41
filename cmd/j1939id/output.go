package main

import (
	"encoding/json"
	"fmt"
	"github.com/aldas/go-j1939-id"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
	"io"
)

// identifierView is what json and yaml outputs print for single identifier.
type identifierView struct {
	CANID    uint32 `json:"can_id" yaml:"can_id"`
	CANIDHex string `json:"can_id_hex" yaml:"can_id_hex"`
	PDU      string `json:"pdu" yaml:"pdu"`

	j1939.Header `yaml:",inline"`
}

func newIdentifierView(canID uint32) identifierView {
	h := j1939.ParseCANID(canID)
	pdu := "PDU1"
	if h.IsPDU2() {
		pdu = "PDU2"
	}
	return identifierView{
		CANID:    canID,
		CANIDHex: fmt.Sprintf("0x%08X", canID),
		PDU:      pdu,
		Header:   h,
	}
}

type printer struct {
	w      io.Writer
	format string

	title *color.Color
	value *color.Color

	yamlEncoder *yaml.Encoder
}

func newPrinter(w io.Writer, format string, noColor bool) *printer {
	p := &printer{
		w:      w,
		format: format,
		title:  color.New(color.Bold),
		value:  color.New(color.FgHiBlue),
	}
	if noColor {
		p.title.DisableColor()
		p.value.DisableColor()
	}
	if format == outputYAML {
		p.yamlEncoder = yaml.NewEncoder(w)
	}
	return p
}

// Parsed prints decoded identifier.
func (p *printer) Parsed(canID uint32) error {
	view := newIdentifierView(canID)
	if p.format != outputText {
		return p.encode(view)
	}
	fmt.Fprintf(p.w, "\n%s\n", p.title.Sprintf("Parsed J1939 CAN ID 0x%08X (%d):", canID, canID))
	p.components(view.Header)
	return nil
}

// Generated prints built identifier and its decoded components for verification.
func (p *printer) Generated(canID uint32) error {
	view := newIdentifierView(canID)
	if p.format != outputText {
		return p.encode(view)
	}
	fmt.Fprintf(p.w, "\n%s\n", p.title.Sprint("Generated J1939 CAN ID:"))
	fmt.Fprintf(p.w, "Decimal: %s\n", p.value.Sprintf("%d", canID))
	fmt.Fprintf(p.w, "Hex:     %s\n", p.value.Sprintf("0x%08X", canID))

	fmt.Fprintf(p.w, "\n%s\n", p.title.Sprint("Components (for verification):"))
	p.components(view.Header)
	return nil
}

func (p *printer) components(h j1939.Header) {
	p.line("Priority:", "%d (0x%X)", h.Priority, h.Priority)
	p.line("Reserved:", "%d (0x%X)", h.Reserved, h.Reserved)
	p.line("Data Page:", "%d (0x%X)", h.DataPage, h.DataPage)
	p.line("PDU Format:", "%d (0x%02X)", h.PDUFormat, h.PDUFormat)
	p.line("PDU Specific:", "%d (0x%02X)", h.PDUSpecific, h.PDUSpecific)
	p.line("Source Address:", "%d (0x%02X)", h.SourceAddress, h.SourceAddress)
	p.line("PGN:", "%d (0x%04X)", h.PGN, h.PGN)
}

func (p *printer) line(label string, format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%-17s%s\n", label, p.value.Sprintf(format, args...))
}

func (p *printer) encode(view identifierView) error {
	switch p.format {
	case outputJSON:
		b, err := json.Marshal(view)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(p.w, "%s\n", b)
		return err
	case outputYAML:
		return p.yamlEncoder.Encode(view)
	}
	return fmt.Errorf("unknown output format type given: %q", p.format)
}

// Close flushes buffered output.
func (p *printer) Close() error {
	if p.yamlEncoder != nil {
		return p.yamlEncoder.Close()
	}
	return nil
}
