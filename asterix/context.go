// asterix/context.go
package asterix

// DecoderContext is the explicit, per-stream mutable state the teacher's
// gobelix package never carried (spec.md §3 "Decoder Context", design
// note §9 "global mutable state -> explicit context"). One Context is
// shared across every record of a stream; it is reset at data-block
// boundaries per the rules below and never across a whole stream. Its
// exported methods are the only surface category packages (cat/...) use
// to read or update cross-record state from their Descriptor.Decode/Read
// closures.
type DecoderContext struct {
	// SAC/SIC inheritance (spec.md §3 invariant 6, grounded on
	// original_source/src/astx_001.cpp last_sacsic/last_sacsic_available):
	// a record lacking I001/010 inherits the last seen data-source
	// identifier within the same data block.
	lastSACSIC          DataSourceIdentifier
	lastSACSICAvailable bool

	// Time-of-day fill-up (spec.md §3 invariant 7, grounded on
	// astx_001.cpp last_tod/last_tod_available): a 16-bit truncated ToD
	// field borrows its high-order octet from the last full ToD seen.
	lastToD          float64
	lastToDAvailable bool

	// FrameDate/FrameTime/LineNumber are stamped onto every Header by the
	// Record Dispatcher; they are supplied by the Framer per spec.md §6
	// and never invented by the core decoder.
	FrameDate  string
	FrameTime  float64
	LineNumber int

	// TrackNumberBits resolves the cat-030/032 Open Question (spec.md
	// design notes §9): legacy SASS-C feeds pack the system track number
	// into 12 bits, later profiles into 16. Defaults to 16; callers
	// supply 12 explicitly for legacy feeds.
	TrackNumberBits int

	// activeCat001UAP is the mutable active-profile slot for category 1's
	// plot/track dual UAP (spec.md §3 invariant 2, grounded on
	// astx_001.cpp's antenna-defined plot-vs-track switch on I001/020 bit
	// 0x80). nil selects the Decoder's registered default (plot) UAP.
	activeCat001UAP *UAP

	// recordsInBlock counts records decoded since the last Reset, purely
	// for diagnostics (spec.md §4.G).
	recordsInBlock int
}

// NewDecoderContext returns a Context ready for the first data block of a
// stream, with the 16-bit track-number convention as the default.
func NewDecoderContext() *DecoderContext {
	return &DecoderContext{TrackNumberBits: 16}
}

// Reset clears the per-data-block inheritance state (spec.md §3
// invariant 6: SAC/SIC and ToD inheritance never cross a data block).
// FrameDate/FrameTime/LineNumber and TrackNumberBits are stream-level and
// survive a Reset.
func (c *DecoderContext) Reset() {
	c.lastSACSICAvailable = false
	c.lastToDAvailable = false
	c.activeCat001UAP = nil
	c.recordsInBlock = 0
}

// RememberSACSIC records the data-source identifier of the record just
// decoded, for inheritance by later records in the same data block.
func (c *DecoderContext) RememberSACSIC(d DataSourceIdentifier) {
	c.lastSACSIC = d
	c.lastSACSICAvailable = true
}

// InheritSACSIC returns the last recorded data-source identifier within
// the current data block, if any.
func (c *DecoderContext) InheritSACSIC() (DataSourceIdentifier, bool) {
	return c.lastSACSIC, c.lastSACSICAvailable
}

// RememberToD records a full time-of-day reading for later fill-up of
// truncated readings in the same data block.
func (c *DecoderContext) RememberToD(tod float64) {
	c.lastToD = tod
	c.lastToDAvailable = true
}

// FillUpToD extends a truncated time-of-day reading using the high-order
// octet of the last full reading seen in this data block (spec.md §3
// invariant 7).
func (c *DecoderContext) FillUpToD(truncated float64) (float64, bool) {
	if !c.lastToDAvailable {
		return 0, false
	}
	const wrap = 512.0 // high octet of ToD wraps every 2^9 seconds
	full := truncated + wrap*float64(int(c.lastToD/wrap))
	if full < c.lastToD-wrap/2 {
		full += wrap
	}
	return full, true
}

// ActiveCat001UAP returns the UAP category 1 should use for the rest of
// the current record, or nil if the Decoder's registered default
// applies.
func (c *DecoderContext) ActiveCat001UAP() *UAP { return c.activeCat001UAP }

// SetActiveCat001UAP flips category 1's profile for the remainder of the
// current record (spec.md §3 invariant 2).
func (c *DecoderContext) SetActiveCat001UAP(u *UAP) { c.activeCat001UAP = u }

// ReportKind tags which Report variant a RecordBuilder is building.
type ReportKind int

const (
	KindNone ReportKind = iota
	KindPlot
	KindTrack
	KindService
	KindSensorStatus
	KindAds
	KindMlat
	KindAlert
)

// RecordBuilder is the current-record-under-construction state that
// Descriptor.Decode / Descriptor.Read functions mutate as the Record
// Dispatcher walks FRNs (spec.md §3 "Typed Report Model", §4.E). Exactly
// one of the accessor methods below is meaningful for a given record,
// selected by the owning UAP's ReportKind; it is frozen into a Report at
// end-of-record. Category packages reach their report's fields only
// through these accessors, since the builder itself carries no exported
// fields.
type RecordBuilder struct {
	kind ReportKind

	plot    Plot
	track   Track
	service ServiceMessage
	status  SensorStatus
	ads     AdsReport
	mlat    MlatReport
	alert   SafetyNetAlert
}

// reset zeroes the scratch and selects which report variant this record
// will build. Called once per record, before any FRN is decoded.
func (r *RecordBuilder) reset(kind ReportKind) {
	*r = RecordBuilder{kind: kind}
}

// Plot returns the Plot under construction. Valid only when the active
// UAP's ReportKind is KindPlot.
func (r *RecordBuilder) Plot() *Plot { return &r.plot }

// Track returns the Track under construction.
func (r *RecordBuilder) Track() *Track { return &r.track }

// Service returns the ServiceMessage under construction.
func (r *RecordBuilder) Service() *ServiceMessage { return &r.service }

// Status returns the SensorStatus under construction.
func (r *RecordBuilder) Status() *SensorStatus { return &r.status }

// Ads returns the AdsReport under construction.
func (r *RecordBuilder) Ads() *AdsReport { return &r.ads }

// Mlat returns the MlatReport under construction.
func (r *RecordBuilder) Mlat() *MlatReport { return &r.mlat }

// Alert returns the SafetyNetAlert under construction.
func (r *RecordBuilder) Alert() *SafetyNetAlert { return &r.alert }

// freeze produces the typed Report this record decoded into. Called once
// per record, after every present FRN has been processed.
func (r *RecordBuilder) freeze(h Header) Report {
	switch r.kind {
	case KindPlot:
		r.plot.Header = h
		return r.plot
	case KindTrack:
		r.track.Header = h
		return r.track
	case KindService:
		r.service.Header = h
		return r.service
	case KindSensorStatus:
		r.status.Header = h
		return r.status
	case KindAds:
		r.ads.Header = h
		return r.ads
	case KindMlat:
		r.mlat.Header = h
		return r.mlat
	case KindAlert:
		r.alert.Header = h
		return r.alert
	default:
		return nil
	}
}
