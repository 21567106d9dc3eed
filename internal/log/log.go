// Package log is a thin layer over glog that prefixes every message with
// the logging tags carried by a context.
package log

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/logtags"
	"github.com/golang/glog"
)

// Level is a glog verbosity level
type Level = glog.Level

// WithTag returns a context whose log messages carry key=value
func WithTag(ctx context.Context, key string, value interface{}) context.Context {
	return logtags.AddTag(ctx, key, value)
}

// Infof logs at the info severity
func Infof(ctx context.Context, format string, args ...interface{}) {
	glog.InfoDepth(1, render(ctx, format, args))
}

// Warningf logs at the warning severity
func Warningf(ctx context.Context, format string, args ...interface{}) {
	glog.WarningDepth(1, render(ctx, format, args))
}

// Errorf logs at the error severity
func Errorf(ctx context.Context, format string, args ...interface{}) {
	glog.ErrorDepth(1, render(ctx, format, args))
}

// V reports whether verbosity at the call site is at least level
func V(level Level) bool {
	return bool(glog.VDepth(1, level))
}

// VInfof logs at the info severity when verbosity is at least level
func VInfof(ctx context.Context, level Level, format string, args ...interface{}) {
	if glog.VDepth(1, level) {
		glog.InfoDepth(1, render(ctx, format, args))
	}
}

// Tags renders the tags of ctx as "[k=v,...] ", or "" when there are none
func Tags(ctx context.Context) string {
	tags := logtags.FromContext(ctx)
	if tags == nil || len(tags.Get()) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteByte('[')
	tags.FormatToString(&b)
	b.WriteString("] ")
	return b.String()
}

func render(ctx context.Context, format string, args []interface{}) string {
	return Tags(ctx) + fmt.Sprintf(format, args...)
}
