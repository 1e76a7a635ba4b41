package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"github.com/aldas/go-j1939-id"
	"github.com/aldas/go-j1939-id/internal/utils"
	"github.com/spf13/cobra"
	"io"
	"log"
	"strings"
)

func newParseCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [CAN_ID...]",
		Short: "Parse J1939 CAN ID (decimal or hex)",
		Long: `Parse one or more J1939 CAN IDs given in decimal or hex (with 0x prefix).
When no CAN ID is given as argument, IDs are read from stdin one per line. Empty lines and lines
starting with # are skipped.`,
		Example: `  j1939id parse 0x18FEF100
  j1939id parse -o json 0x18FEF100 0x0CF00400
  candump -L can0 | awk '{split($3,f,"#"); print "0x" f[1]}' | j1939id parse`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := root.printer(cmd)
			run := &parseRun{
				printer: p,
				logger:  root.logger(cmd),
				errOut:  cmd.ErrOrStderr(),
			}

			var err error
			if len(args) > 0 {
				err = run.args(args)
			} else {
				run.logger.Printf("reading CAN IDs from stdin")
				err = run.lines(cmd.Context(), cmd.InOrStdin())
			}
			if cErr := p.Close(); err == nil {
				err = cErr
			}
			if err != nil {
				return err
			}
			if run.failed > 0 {
				return fmt.Errorf("failed to parse %d of %d CAN IDs", run.failed, run.total)
			}
			return nil
		},
	}
	return cmd
}

type parseRun struct {
	printer *printer
	logger  *log.Logger
	errOut  io.Writer

	total  int
	failed int
}

func (r *parseRun) args(args []string) error {
	for _, a := range args {
		if err := r.one(a); err != nil {
			return err
		}
	}
	return nil
}

// maxLineLength is size of stdin line buffer. Lines that do not fit are reported and skipped.
const maxLineLength = 4096

func (r *parseRun) lines(ctx context.Context, in io.Reader) error {
	reader := bufio.NewReaderSize(in, maxLineLength)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		raw, isPrefix, err := reader.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if isPrefix {
			r.total++
			r.failed++
			fmt.Fprintf(
				r.errOut,
				"error: invalid CAN ID format, line does not fit into %d bytes and is skipped: `%s`\n",
				maxLineLength,
				utils.QuoteInput(string(raw), 40),
			)
			for isPrefix && err == nil { // discard rest of the line
				_, isPrefix, err = reader.ReadLine()
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			continue
		}
		line := strings.TrimSpace(string(raw))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := r.one(line); err != nil {
			return err
		}
	}
}

// one parses and prints single CAN ID. Invalid input is reported and counted but does not stop
// processing of following IDs. Returned error is output failure.
func (r *parseRun) one(raw string) error {
	r.total++
	canID, err := j1939.ParseCANIDText(raw)
	if err != nil {
		r.failed++
		fmt.Fprintf(r.errOut, "error: invalid CAN ID format, use decimal or hex (with 0x prefix): %v\n", err)
		return nil
	}
	if canID > j1939.CANIDMask {
		r.logger.Printf("CAN ID 0x%X has bits above 28 set, they are ignored", canID)
	}
	h := j1939.ParseCANID(canID)
	if h.IsPDU1() {
		r.logger.Printf("CAN ID 0x%08X is PDU1, PDU specific 0x%02X is destination address and not part of PGN", canID, h.PDUSpecific)
	}
	return r.printer.Parsed(canID)
}
