// Package chartshape provides embeddable chart shapes: tabular data mapped
// to chart series, with OpenDocument persistence and xlsx import.
package chartshape

import (
	"github.com/rs/zerolog/log"

	"github.com/ukaji3/chartshape-go/pkg/chartshape/plot"
	"github.com/ukaji3/chartshape-go/pkg/chartshape/proxy"
	"github.com/ukaji3/chartshape-go/pkg/chartshape/table"
)

// Mode represents the import mode.
type Mode string

const (
	// ModeLight imports the charts of a workbook only.
	ModeLight Mode = "light"
	// ModeStandard also creates a default chart for sheets that hold a
	// table but no chart.
	ModeStandard Mode = "standard"
	// ModeVerbose additionally keeps table contents in inspection output.
	ModeVerbose Mode = "verbose"
)

// ParseMode reads a mode name.
func ParseMode(s string) (Mode, bool) {
	switch m := Mode(s); m {
	case ModeLight, ModeStandard, ModeVerbose:
		return m, true
	}
	return ModeStandard, false
}

// Reporter surfaces problems to the user, for example in a dialog.
type Reporter interface {
	Report(err error)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(err error)

// Report calls f(err).
func (f ReporterFunc) Report(err error) { f(err) }

// Interaction decides whether recoverable problems reach the user. It is
// scoped to one shape or one load call.
type Interaction struct {
	// Enabled turns on the Reporter. Problems are logged either way.
	Enabled  bool
	Reporter Reporter
}

// Report logs err and hands it to the reporter when interaction is enabled.
func (i Interaction) Report(err error) {
	if err == nil {
		return
	}
	log.Warn().Err(err).Msg("chart problem")
	if i.Enabled && i.Reporter != nil {
		i.Reporter.Report(err)
	}
}

// Options configures new shapes, loading and import.
type Options struct {
	// Mode specifies the import mode (light, standard, verbose).
	Mode Mode
	// Interaction controls user-facing error reporting.
	Interaction Interaction
	// Palette replaces the default series colours when not empty.
	Palette plot.Palette
	// Policy replaces the default chart type combinability when set.
	Policy *plot.Policy
	// FirstRowIsLabel, FirstColumnIsLabel and Direction apply to data
	// ranges chosen automatically, such as the default chart of a sheet.
	FirstRowIsLabel    bool
	FirstColumnIsLabel bool
	Direction          proxy.Direction
	// Sheets supplies external tables to every new shape. Shapes with a
	// sheet provider show its ranges instead of an internal table.
	Sheets table.SheetAccess
	// DefaultCharts specifies whether sheets without charts get one.
	// If nil, defaults to false for light mode, true otherwise.
	DefaultCharts *bool
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{
		Mode:               ModeStandard,
		FirstRowIsLabel:    true,
		FirstColumnIsLabel: true,
		Direction:          proxy.RowMajor,
	}
}

// ShouldCreateDefaultCharts returns whether sheets without charts get a
// default chart on import.
func (o Options) ShouldCreateDefaultCharts() bool {
	if o.DefaultCharts != nil {
		return *o.DefaultCharts
	}
	return o.Mode != ModeLight
}

// ShouldIncludeTables returns whether table contents go into inspection
// output.
func (o Options) ShouldIncludeTables() bool {
	return o.Mode == ModeVerbose
}
