package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dusk-indust/horizon/internal/horizon"
)

// WriteJSON encodes v as the {nodes, edges} document graph renderers such as
// vis.js consume.
func WriteJSON[K comparable](w io.Writer, v *horizon.View[K], pretty bool) error {
	var (
		out []byte
		err error
	)
	if pretty {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("marshal view: %w", err)
	}
	_, err = w.Write(append(out, '\n'))
	return err
}
