// Command codeshelf manages the codeshelf local data store.
package main

import "github.com/en-o/codeshelf/internal/cli"

func main() {
	cli.Execute()
}
