package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserID records the user identifier under the key "user_id".
func UserID(id string) slog.Attr {
	return slog.String("user_id", id)
}

// RequestID records the request identifier under the key "request_id".
func RequestID(id string) slog.Attr {
	return slog.String("request_id", id)
}

// PlanID records a plan id under the key "plan_id".
func PlanID(id string) slog.Attr {
	return slog.String("plan_id", id)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
