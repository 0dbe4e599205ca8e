// sdbootconf inspects and edits the systemd-boot loader configuration
// on the EFI system partition.
package main

import "github.com/efikit/sdbootconf/internal/cmd"

func main() {
	cmd.Execute()
}
