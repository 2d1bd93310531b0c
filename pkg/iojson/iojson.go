// iojson writes command output as JSON for machine consumers. Commands
// render human text by default and switch to these helpers under --json.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
)

// fallbackError hand-builds a JSON error object when marshaling the real
// payload failed. json.Marshal on plain strings cannot fail, so the
// result is always valid JSON.
func fallbackError(context string, cause error) string {
	ctxBytes, _ := json.Marshal(context)
	causeBytes, _ := json.Marshal(cause.Error())
	return fmt.Sprintf(`{"message":%s,"data":{"json_error":%s}}`, ctxBytes, causeBytes)
}

// WriteWith pretty-prints obj to w. A payload that will not marshal is a
// bug in the caller; the error object goes to ew so the primary stream
// never carries half-written JSON.
func WriteWith(w io.Writer, ew io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		errStr := fallbackError("error marshaling in iojson.WriteWith", err)
		_, err = fmt.Fprintln(ew, errStr)
		return err
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}

// WriteLine writes obj as a single compact JSON line. Hook hosts read one
// object per invocation, so the output must not span lines.
func WriteLine(w io.Writer, obj any) error {
	bits, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("marshal in iojson.WriteLine: %w", err)
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}
