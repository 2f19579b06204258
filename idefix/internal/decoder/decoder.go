// internal/decoder/decoder.go
package decoder

import (
	"fmt"

	"github.com/davidkohl/gobelix/asterix"
	"github.com/davidkohl/gobelix/cat/cat001"
	"github.com/davidkohl/gobelix/cat/cat002"
	"github.com/davidkohl/gobelix/cat/cat004"
	"github.com/davidkohl/gobelix/cat/cat020"
	"github.com/davidkohl/gobelix/cat/cat021"
	"github.com/davidkohl/gobelix/cat/cat030"
	"github.com/davidkohl/gobelix/cat/cat032"
	"github.com/davidkohl/gobelix/cat/cat034"
	"github.com/davidkohl/gobelix/cat/cat048"
	"github.com/davidkohl/gobelix/cat/cat062"
	"github.com/davidkohl/gobelix/cat/cat063"
	"github.com/davidkohl/gobelix/cat/cat252"
	"github.com/davidkohl/gobelix/encoding"
)

// Config represents decoder configuration options
type Config struct {
	DumpAll    bool
	DumpCat001 bool
	DumpCat002 bool
	DumpCat004 bool
	DumpCat020 bool
	DumpCat021 bool
	DumpCat030 bool
	DumpCat032 bool
	DumpCat034 bool
	DumpCat048 bool
	DumpCat062 bool
	DumpCat063 bool
	DumpCat252 bool
}

// registration pairs a Config flag with the category's Register func, so
// CreateDecoder can walk one table instead of repeating the same
// if/err/append block per category.
type registration struct {
	name     string
	selected bool
	register func(*asterix.Decoder) error
}

// CreateDecoder creates and configures a decoder with the UAPs selected
// by config. Each category registers itself onto the shared decoder
// through its own Register function rather than handing back a UAP for
// this package to wire up, so adding a category here never requires
// knowing its FRN table or version string.
func CreateDecoder(config Config) (*asterix.Decoder, error) {
	// Initialize the default buffer pool if it doesn't exist
	if encoding.DefaultBufferPool == nil {
		encoding.DefaultBufferPool = encoding.NewBufferPool()
	}

	decoder := asterix.NewDecoder()

	regs := []registration{
		{"Cat001", config.DumpAll || config.DumpCat001, cat001.Register},
		{"Cat002", config.DumpAll || config.DumpCat002, cat002.Register},
		{"Cat004", config.DumpAll || config.DumpCat004, cat004.Register},
		{"Cat020", config.DumpAll || config.DumpCat020, cat020.Register},
		{"Cat021", config.DumpAll || config.DumpCat021, cat021.Register},
		{"Cat030", config.DumpAll || config.DumpCat030, cat030.Register},
		{"Cat032", config.DumpAll || config.DumpCat032, cat032.Register},
		{"Cat034", config.DumpAll || config.DumpCat034, cat034.Register},
		{"Cat048", config.DumpAll || config.DumpCat048, cat048.Register},
		{"Cat062", config.DumpAll || config.DumpCat062, cat062.Register},
		{"Cat063", config.DumpAll || config.DumpCat063, cat063.Register},
		{"Cat252", config.DumpAll || config.DumpCat252, cat252.Register},
	}

	var registered int
	for _, r := range regs {
		if !r.selected {
			continue
		}
		if err := r.register(decoder); err != nil {
			return nil, fmt.Errorf("failed to register %s: %w", r.name, err)
		}
		registered++
	}

	if registered == 0 {
		return nil, fmt.Errorf("no categories selected, use --dumpAll or specify categories")
	}

	return decoder, nil
}
