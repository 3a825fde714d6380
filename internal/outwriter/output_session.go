package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/talentops/ninebox/internal/contract"
	"github.com/talentops/ninebox/schema"
)

// WriteStoreStatus outputs the session store health report.
func WriteStoreStatus(status *schema.StoreStatus, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeStoreStatusText(w, status)
	}, "report")
}

func writeStoreStatusText(w io.Writer, status *schema.StoreStatus) error {
	connected := "no"
	if status.Connected {
		connected = "yes"
	}
	lastSaved := "never"
	if !status.LastSavedTime.IsZero() {
		lastSaved = status.LastSavedTime.Format(time.RFC3339)
	}

	if _, err := fmt.Fprintf(w, "Backend:        %s\n", status.Backend); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Connected:      %s\n", connected); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Sessions:       %d\n", status.TotalSessions); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Last saved:     %s\n", lastSaved); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Table size:     %d bytes\n", status.TableSizeBytes)
	return err
}
