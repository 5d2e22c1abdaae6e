package pcl

import (
	"sync/atomic"

	"github.com/pclgo/pcl-go/pkg/pcl/logging"
)

// Options holds process-wide settings for the bindings.
type Options struct {
	// Logger receives debug records for file IO and reclaimed handles. Nil
	// means logging.New(nil).
	Logger logging.Logger

	// PCDFormat is the encoding SavePointCloud writes. The zero value is
	// PCDBinary.
	PCDFormat PCDFormat
}

var current atomic.Pointer[Options]

func init() {
	current.Store(&Options{Logger: logging.New(nil)})
}

// Configure replaces the process-wide options.
func Configure(o Options) {
	if o.Logger == nil {
		o.Logger = logging.New(nil)
	}
	current.Store(&o)
}

// SetLogger replaces only the logger.
func SetLogger(l logging.Logger) {
	o := *current.Load()
	o.Logger = l
	Configure(o)
}

func options() Options { return *current.Load() }

func logger() logging.Logger { return current.Load().Logger }
