// Command groundtemp builds, inspects, and runs ground temperature models.
package main

import "github.com/sarchlab/groundtemp/cmd"

func main() {
	cmd.Execute()
}
