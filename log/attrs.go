package log

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// AttrText renders a slog attribute as a key and a plain-text value for the
// host's single-line log format.
func AttrText(attr slog.Attr) (key, value string) {
	key = attr.Key
	attr.Value = attr.Value.Resolve()

	switch attr.Value.Kind() {
	case slog.KindString:
		value = attr.Value.String()
	case slog.KindInt64:
		value = fmt.Sprintf("%d", attr.Value.Int64())
	case slog.KindUint64:
		value = fmt.Sprintf("%d", attr.Value.Uint64())
	case slog.KindBool:
		value = fmt.Sprintf("%t", attr.Value.Bool())
	case slog.KindFloat64:
		value = fmt.Sprintf("%g", attr.Value.Float64())
	case slog.KindTime:
		value = attr.Value.Time().Format(time.RFC3339Nano)
	case slog.KindDuration:
		value = attr.Value.Duration().String()
	case slog.KindAny:
		v := attr.Value.Any()
		if v == nil {
			value = "<nil>"
			break
		}
		if err, isErr := v.(error); isErr {
			value = err.Error()
			break
		}
		if data, marshalErr := json.Marshal(v); marshalErr == nil {
			value = string(data)
			break
		}
		value = fmt.Sprintf("%v", v)
	default:
		value = fmt.Sprintf("%v", attr.Value.Any())
	}
	return key, value
}
