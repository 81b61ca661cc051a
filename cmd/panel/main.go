// panel drives the device's control page from a terminal: it watches the
// temperatures and flips the LED switch the way the browser page does.
package main

import (
	"os"

	"esp_panel/cmd/panel/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
