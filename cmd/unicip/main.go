// unicip CLI entry point.
package main

import "github.com/unicpatent/unic-ip/internal/interfaces/cli"

func main() {
	cli.Execute()
}
