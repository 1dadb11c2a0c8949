package cli

import (
	"fmt"
	"io"
)

// writeLabels prints one comment line per label in encounter order:
//
//	# ?_c1 = <http://example.org/alice>
//	# ?name (param) = "Alice"
//	# ?who (param) unbound
func writeLabels(w io.Writer, labels []LabelView, bindings map[string]string) {
	for _, l := range labels {
		role := ""
		if l.Param {
			role = " (param)"
		}
		value, ok := bindings[l.Name]
		if !ok {
			fmt.Fprintf(w, "# ?%s%s unbound\n", l.Name, role)
			continue
		}
		fmt.Fprintf(w, "# ?%s%s = %s\n", l.Name, role, value)
	}
}
