// Command txlens assembles labeled transaction-graph data for compliance
// review.
package main

import "github.com/mesh-intelligence/txlens/internal/cli"

func main() {
	cli.Execute()
}
