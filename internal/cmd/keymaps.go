package cmd

import (
	"fmt"
	"log/slog"

	"github.com/mhuth/fnkeyd/internal/log"
	"github.com/mhuth/fnkeyd/keymap"
)

// Keymaps prints the built-in translation tables.
type Keymaps struct {
	Model string `arg:"" optional:"" help:"Print only the table for this model"`
}

func (k *Keymaps) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	models := keymap.Models()
	if k.Model != "" {
		models = []string{k.Model}
	}
	for i, model := range models {
		table, err := keymap.ForModel(model)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("%s (%d entries, %d keys)\n", table.Model(), table.Len(), len(table.Capabilities()))
		for _, e := range table.Entries() {
			switch e.Action {
			case keymap.ActionIgnore:
				fmt.Printf("  0x%02x  ignore\n", e.Scancode)
			default:
				fmt.Printf("  0x%02x  key     %s\n", e.Scancode, e.Key)
			}
		}
	}
	return nil
}
