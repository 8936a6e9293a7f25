package plot

import "errors"

// ErrNotCombinable is returned when a data set override would mix chart
// types that cannot share a plot area.
var ErrNotCombinable = errors.New("chart types cannot be combined")

// ErrUnknownDataSet is returned for data sets that do not belong to the
// plot area.
var ErrUnknownDataSet = errors.New("data set not in plot area")
