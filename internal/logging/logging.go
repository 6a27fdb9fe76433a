// Package logging configures glog for the imppc command.
package logging

import (
	"flag"
	"strconv"

	"github.com/golang/glog"
)

// InitLogging initializes glog with the given settings. glog is only
// controlled through the standard flag set, so the settings are applied
// by setting its flags.
func InitLogging(logToStderr bool, verbose int) {
	if !flag.Parsed() {
		flag.CommandLine.Parse(nil)
	}
	if logToStderr {
		setFlag("logtostderr", "true")
	}
	if verbose > 0 {
		setFlag("v", strconv.Itoa(verbose))
	}
	glog.V(5).Infof("logging initialized: logtostderr=%v verbose=%d", logToStderr, verbose)
}

func setFlag(name, value string) {
	if f := flag.Lookup(name); f != nil {
		f.Value.Set(value)
	}
}
