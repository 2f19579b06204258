// asterix/record.go
package asterix

import "fmt"

// decodeRecord is the Record Dispatcher (component E, spec.md §4.E): it
// reads one record's FSPEC, walks the present FRNs in ascending order
// against the active UAP, and freezes the result into a typed Report.
// On any item Outcome of Error, the whole record is abandoned; the
// returned cursor then marks where the failing item stopped, not the end
// of the record, so the caller cannot resume at the next record.
func decodeRecord(cat Category, uap *UAP, payload []byte, ctx *DecoderContext) (Report, int, error) {
	if len(payload) == 0 {
		return nil, 0, ErrEmptyRecord
	}

	frns, cursor, err := decodeFSPEC(payload, 0, uap.MaxFSPECBytes())
	if err != nil {
		return nil, cursor, err
	}

	var rec RecordBuilder
	rec.reset(uap.ReportKind())

	if cat == Cat001 {
		// The plot/track switch lasts for one record only.
		ctx.activeCat001UAP = nil
	}
	activeUAP := uap
	for _, frn := range frns {
		// Category 1 carries two mutually exclusive UAPs (plot vs
		// track); the I001/020 decode function flips
		// ctx.activeCat001UAP once it has read the first FSPEC-present
		// byte (spec.md §3 invariant 2).
		if cat == Cat001 && ctx.activeCat001UAP != nil {
			activeUAP = ctx.activeCat001UAP
			rec.kind = activeUAP.ReportKind()
		}

		d, ok := activeUAP.Descriptor(frn)
		if !ok {
			if frn > activeUAP.MaxFRN() {
				return nil, cursor, fmt.Errorf("%w: FRN %d exceeds cat %d UAP (max %d)", ErrFRNOutOfRange, frn, cat, activeUAP.MaxFRN())
			}
			return nil, cursor, fmt.Errorf("%w: FRN %d has no descriptor in cat %d UAP", ErrUnknownDataItem, frn, cat)
		}

		next, outcome, err := decodeItem(d, payload, cursor, ctx, &rec)
		if outcome == Error {
			if err == nil {
				err = fmt.Errorf("%w: %s", ErrInvalidField, d.ID)
			}
			return nil, next, fmt.Errorf("decoding %s: %w", d.ID, err)
		}
		cursor = next
	}
	ctx.recordsInBlock++

	// Category-1 SAC/SIC inheritance: a plot without I001/010 takes the
	// last data-source identifier seen in this data block.
	if cat == Cat001 && rec.kind == KindPlot && !rec.plot.DataSource.Present {
		if dsi, ok := ctx.InheritSACSIC(); ok {
			dsi.Supplemented = true
			rec.plot.DataSource = Some(dsi)
		}
	}

	h := Header{
		Category:   cat,
		Format:     "ASTERIX",
		FrameTime:  Some(ctx.FrameTime),
		LineNumber: Some(ctx.LineNumber),
	}
	if ctx.FrameDate != "" {
		h.FrameDate = Some(ctx.FrameDate)
	}

	return rec.freeze(h), cursor, nil
}
