// asterix/uap.go
package asterix

import "fmt"

// UAPField is one row of a User Application Profile: the Field
// Reference Number that a category's FSPEC bit addresses, paired with
// the descriptor the kernel uses to decode it (spec.md §3 "Per-category
// UAP tables").
type UAPField struct {
	FRN        uint8
	Descriptor Descriptor
}

// UAP is a category's User Application Profile: an immutable FRN ->
// Descriptor table plus the bookkeeping the Record Dispatcher needs
// (spec.md §4.D). Unlike gobelix's UAP interface, it is a concrete,
// lazily-built value — there is exactly one shape per category version,
// not one implementation per category.
type UAP struct {
	category      Category
	version       string
	maxFSPECBytes int
	kind          ReportKind
	byFRN         map[uint8]Descriptor
	maxFRN        uint8
}

// NewUAP builds a UAP from its field table, rejecting FRN collisions and
// zero FRNs (spec.md §3 invariant 1). maxFSPECBytes bounds the FSPEC
// extension chain (invariant 4); kind selects which Report variant
// records of this category freeze into.
func NewUAP(cat Category, version string, maxFSPECBytes int, kind ReportKind, fields []UAPField) (*UAP, error) {
	if !cat.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCategory, cat)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields defined for cat %d", ErrInvalidMessage, cat)
	}

	byFRN := make(map[uint8]Descriptor, len(fields))
	var maxFRN uint8
	for _, f := range fields {
		if f.FRN == 0 {
			return nil, fmt.Errorf("%w: FRN cannot be 0 (%s)", ErrInvalidField, f.Descriptor.ID)
		}
		if existing, dup := byFRN[f.FRN]; dup {
			return nil, fmt.Errorf("%w: duplicate FRN %d for %s and %s", ErrInvalidField, f.FRN, existing.ID, f.Descriptor.ID)
		}
		byFRN[f.FRN] = f.Descriptor
		if f.FRN > maxFRN {
			maxFRN = f.FRN
		}
	}

	return &UAP{
		category:      cat,
		version:       version,
		maxFSPECBytes: maxFSPECBytes,
		kind:          kind,
		byFRN:         byFRN,
		maxFRN:        maxFRN,
	}, nil
}

func (u *UAP) Category() Category { return u.category }
func (u *UAP) Version() string    { return u.version }
func (u *UAP) MaxFSPECBytes() int { return u.maxFSPECBytes }
func (u *UAP) ReportKind() ReportKind { return u.kind }
func (u *UAP) MaxFRN() uint8       { return u.maxFRN }

// Descriptor looks up the descriptor for a Field Reference Number.
func (u *UAP) Descriptor(frn uint8) (Descriptor, bool) {
	d, ok := u.byFRN[frn]
	return d, ok
}
