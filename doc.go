/*
Package kernelogo draws the logos shown by JupyterLab next to every installed kernel.

Each kernel of a lookup table gets a colored square with a short label (e.g. "Py")
and an optional sublabel (e.g. "3.13") drawn beneath it. The logos are saved as
logo-32x32.png and logo-64x64.png into a per kernel directory, ready to be copied
into the kernel spec folder of a container image.

The package provides a command line interface. To check the supported commands type:

	$ kernelogo --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"log"
		"os"

		"github.com/esimov/kernelogo"
	)

	func main() {
		g := kernelogo.NewGenerator(kernelogo.NewRenderer(kernelogo.DefaultTable))
		g.Progress = os.Stdout

		if err := g.SaveAll("kernel-logos"); err != nil {
			log.Fatalf("Error generating the logos: %v", err)
		}
	}

When the bold and regular fonts can't be loaded the labels fall back to a built-in bitmap font.
*/
package kernelogo
