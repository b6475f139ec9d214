package enrich

import "errors"

// ErrBusy is returned by Enrich when a run is already in progress.
var ErrBusy = errors.New("enrich: a run is already in progress")
